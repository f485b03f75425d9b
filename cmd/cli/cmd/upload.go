package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/audionut/upload-assistant-go/pkg/core/release"
	"github.com/audionut/upload-assistant-go/pkg/core/tvmaze"
	"github.com/audionut/upload-assistant-go/pkg/core/unit3d"
)

// --- Dependency Injection Functions for Testing ---

// trackerClient is the slice of unit3d.Client the commands need.
type trackerClient interface {
	Name() string
	SearchExisting(ctx context.Context, r *release.Release) ([]string, error)
	Upload(ctx context.Context, r *release.Release) (string, error)
}

// showResolver is the slice of tvmaze.Resolver the commands need.
type showResolver interface {
	ResolveIDs(ctx context.Context, q tvmaze.Query) (tvmazeID, imdbID, tvdbID int)
}

var NewTrackerFunc = func(cfg unit3d.Config) trackerClient {
	return unit3d.New(cfg)
}

var NewResolverFunc = func() showResolver {
	return tvmaze.NewResolver(tvmaze.NewClient())
}

// --- End Dependency Injection ---

// releaseFlags are the metadata fields shared by the upload and dupes
// commands; whatever filename parsing cannot supply is given here.
type releaseFlags struct {
	baseDir  string
	uuid     string
	aka      string
	edition  string
	tmdb     int
	imdb     string
	tvdb     string
	genres   []string
	keywords []string
	anon     bool
	personal bool
	bdinfo   bool
	debug    bool
}

func (f *releaseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.baseDir, "base-dir", ".", "base directory containing the tmp/<uuid> staging tree")
	cmd.Flags().StringVar(&f.uuid, "uuid", "", "staging directory name (defaults to the cleaned release name)")
	cmd.Flags().StringVar(&f.aka, "aka", "", "alternate title token to strip from the display name")
	cmd.Flags().StringVar(&f.edition, "edition", "", "edition hint, e.g. \"Directors Cut\"")
	cmd.Flags().IntVar(&f.tmdb, "tmdb", 0, "TMDB ID")
	cmd.Flags().StringVar(&f.imdb, "imdb", "", "IMDb ID, with or without the tt prefix")
	cmd.Flags().StringVar(&f.tvdb, "tvdb", "", "TVDB ID")
	cmd.Flags().StringSliceVar(&f.genres, "genre", nil, "genre label (repeatable)")
	cmd.Flags().StringSliceVar(&f.keywords, "keyword", nil, "keyword (repeatable)")
	cmd.Flags().BoolVar(&f.anon, "anon", false, "upload anonymously")
	cmd.Flags().BoolVar(&f.personal, "personal", false, "flag as personal release")
	cmd.Flags().BoolVar(&f.bdinfo, "bdinfo", false, "disc release: use the staged BD summary instead of mediainfo")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "print the would-be upload form instead of sending it")
}

func (f *releaseFlags) build(path string) *release.Release {
	r := release.FromFilename(path)
	r.BaseDir = f.baseDir
	r.UUID = f.uuid
	if r.UUID == "" {
		r.UUID = r.CleanName
	}
	r.AKA = f.aka
	r.Edition = f.edition
	r.TMDBID = f.tmdb
	r.IMDbID = f.imdb
	r.TVDBID = f.tvdb
	r.Genres = f.genres
	r.Keywords = f.keywords
	r.Anonymous = f.anon
	r.PersonalRelease = f.personal
	r.HasBDInfo = f.bdinfo
	r.Debug = f.debug
	return r
}

var (
	uploadFlags releaseFlags
	uploadForce bool
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload [release file]",
	Short: "Check a release for duplicates and upload it to the tracker",
	Long: `Builds release metadata from the given filename and the provided flags,
resolves the show against TVmaze for TV releases, runs the tracker's
duplicate search, and uploads the staged torrent and metadata.

The staging directory <base-dir>/tmp/<uuid>/ must already contain the
mediainfo (or BD summary) dump, the rendered description, and the
per-tracker torrent file.`,
	Args: cobra.ExactArgs(1),
	RunE: runUploadCmd,
}

func init() {
	RootCmd.AddCommand(uploadCmd)
	uploadFlags.register(uploadCmd)
	uploadCmd.Flags().BoolVar(&uploadForce, "force", false, "upload even when duplicates are found or the search fails")
}

// runUploadCmd initializes dependencies and calls runUpload.
func runUploadCmd(cmd *cobra.Command, args []string) error {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	tc := NewTrackerFunc(trackerConfig(trackerName))
	resolver := NewResolverFunc()
	rel := uploadFlags.build(args[0])

	return runUpload(cmd.Context(), rel, tc, resolver, uploadForce, logger)
}

// runUpload contains the core upload flow.
func runUpload(ctx context.Context, rel *release.Release, tc trackerClient, resolver showResolver, force bool, logger *logrus.Logger) error {
	if rel.Category == release.CategoryTV {
		tvmazeID, imdbID, tvdbID := resolver.ResolveIDs(ctx, tvmaze.Query{
			Title:  rel.Name,
			TVDBID: rel.TVDBID,
			IMDbID: rel.IMDbID,
		})
		rel.TVMazeID = tvmazeID
		if imdbID != 0 {
			rel.IMDbID = strconv.Itoa(imdbID)
		}
		if tvdbID != 0 {
			rel.TVDBID = strconv.Itoa(tvdbID)
		}
		logger.Infof("Resolved show: TVmaze=%d IMDb=%s TVDB=%s", rel.TVMazeID, rel.IMDbID, rel.TVDBID)
	}

	dupes, err := tc.SearchExisting(ctx, rel)
	switch {
	case rel.Skipping != "":
		logger.Warnf("Release not eligible for %s, skipping.", rel.Skipping)
		return nil
	case err != nil && !force:
		return fmt.Errorf("duplicate search failed: %w", err)
	case err != nil:
		logger.Warnf("Duplicate search failed (%v), continuing because --force is set.", err)
	case len(dupes) > 0 && !force:
		logger.Warnf("Found %d potential duplicate(s):", len(dupes))
		for _, d := range dupes {
			logger.Warnf("  %s", d)
		}
		return errors.New("duplicates found, aborting (use --force to upload anyway)")
	case len(dupes) > 0:
		logger.Warnf("Found %d potential duplicate(s), continuing because --force is set.", len(dupes))
	}

	torrentURL, err := tc.Upload(ctx, rel)
	if err != nil {
		if errors.Is(err, unit3d.ErrUploadUnconfirmed) {
			logger.Warnf("%v", err)
			logger.Warn("It may have uploaded, go check.")
			return nil
		}
		return fmt.Errorf("upload to %s failed: %w", tc.Name(), err)
	}
	if torrentURL != "" {
		logger.Infof("Uploaded: %s", torrentURL)
	}
	return nil
}

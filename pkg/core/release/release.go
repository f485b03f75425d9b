package release

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	ptn "github.com/razsteinmetz/go-ptn"
	log "github.com/sirupsen/logrus"
)

// Category labels used across the tracker adapters.
const (
	CategoryMovie = "MOVIE"
	CategoryTV    = "TV"
)

// Release holds the metadata describing one media release. It is
// assembled by the caller (filename parsing plus external lookups) and
// read by the tracker adapters; the only fields an adapter writes back
// are Skipping and TrackerURLs.
type Release struct {
	Name       string `json:"name"`
	AKA        string `json:"aka,omitempty"`
	CleanName  string `json:"cleanName"`
	Category   string `json:"category"`   // MOVIE or TV
	Type       string `json:"type"`       // DISC, REMUX, ENCODE, WEBDL, WEBRIP, HDTV
	Resolution string `json:"resolution"` // e.g. "1080p"
	Source     string `json:"source"`     // e.g. "BluRay", "WEB-DL"
	Edition    string `json:"edition,omitempty"`
	Tag        string `json:"tag,omitempty"` // release group with leading dash, e.g. "-GRP"

	Season     string `json:"season,omitempty"` // display hint, e.g. "S02"
	SeasonInt  int    `json:"seasonInt,omitempty"`
	EpisodeInt int    `json:"episodeInt,omitempty"`

	Genres   []string `json:"genres,omitempty"`
	Keywords []string `json:"keywords,omitempty"`

	TMDBID   int    `json:"tmdbId,omitempty"`
	IMDbID   string `json:"imdbId,omitempty"` // raw form, may carry the tt prefix
	TVDBID   string `json:"tvdbId,omitempty"`
	TVMazeID int    `json:"tvmazeId,omitempty"`
	MALID    int    `json:"malId,omitempty"`

	SD              bool `json:"sd,omitempty"`
	Stream          bool `json:"stream,omitempty"`
	Anonymous       bool `json:"anonymous,omitempty"`
	PersonalRelease bool `json:"personalRelease,omitempty"`
	HasBDInfo       bool `json:"hasBdInfo,omitempty"`
	Debug           bool `json:"-"`

	Region      string `json:"region,omitempty"`
	Distributor string `json:"distributor,omitempty"`

	ImageList []string `json:"imageList,omitempty"`

	// Per-job staging directory coordinates.
	BaseDir string `json:"baseDir"`
	UUID    string `json:"uuid"`

	// Skipping names the tracker that rejected this release on policy
	// grounds. Empty means no rejection so far.
	Skipping string `json:"skipping,omitempty"`

	// TrackerURLs records the canonical torrent URL per tracker after a
	// confirmed upload.
	TrackerURLs map[string]string `json:"trackerUrls,omitempty"`
}

// GroupTag returns the release group without the leading dash, or ""
// when the release is untagged.
func (r *Release) GroupTag() string {
	return strings.TrimPrefix(r.Tag, "-")
}

// RegisterTrackerURL records the canonical torrent URL for a tracker.
func (r *Release) RegisterTrackerURL(tracker, url string) {
	if r.TrackerURLs == nil {
		r.TrackerURLs = map[string]string{}
	}
	r.TrackerURLs[tracker] = url
}

// HasGenre reports whether any of the wanted genres appears in the
// release's genre list.
func (r *Release) HasGenre(wanted ...string) bool {
	for _, g := range r.Genres {
		for _, w := range wanted {
			if g == w {
				return true
			}
		}
	}
	return false
}

var cleanNameRegexp = regexp.MustCompile(`[<>:"/\\|?*]`)

// CleanFileName strips characters that are unsafe in staged filenames.
func CleanFileName(name string) string {
	return strings.TrimSpace(cleanNameRegexp.ReplaceAllString(name, ""))
}

// sdResolutions are the labels treated as standard definition.
var sdResolutions = map[string]bool{
	"480p": true, "480i": true, "576p": true, "576i": true,
}

// typeFromQuality maps go-ptn quality strings onto the tracker type
// labels. Unrecognized qualities fall through to ENCODE, the most
// common case for untagged rips.
func typeFromQuality(quality string) string {
	q := strings.ToLower(strings.ReplaceAll(quality, "-", ""))
	switch {
	case strings.Contains(q, "remux"):
		return "REMUX"
	case strings.Contains(q, "webdl"):
		return "WEBDL"
	case strings.Contains(q, "webrip"):
		return "WEBRIP"
	case strings.Contains(q, "hdtv"):
		return "HDTV"
	case strings.Contains(q, "dvd") && !strings.Contains(q, "rip"):
		return "DISC"
	default:
		return "ENCODE"
	}
}

// FromFilename builds a Release skeleton from a release filename.
// Parsing failures degrade to a title derived from the base name; this
// never returns an error so a badly named file can still be staged and
// fixed up by hand.
func FromFilename(path string) *Release {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	r := &Release{
		Name:      strings.ReplaceAll(name, ".", " "),
		CleanName: CleanFileName(strings.ReplaceAll(name, ".", " ")),
		Category:  CategoryMovie,
		Type:      "ENCODE",
	}

	parsed, err := ptn.Parse(base)
	if err != nil {
		log.Warnf("Failed to parse release name %q: %v", base, err)
		return r
	}

	if parsed.Season > 0 || parsed.Episode > 0 {
		r.Category = CategoryTV
		r.SeasonInt = parsed.Season
		r.EpisodeInt = parsed.Episode
		if parsed.Season > 0 {
			r.Season = fmt.Sprintf("S%02d", parsed.Season)
		}
	}
	r.Resolution = parsed.Resolution
	r.Source = parsed.Quality
	r.Type = typeFromQuality(parsed.Quality)
	if parsed.Group != "" {
		r.Tag = "-" + parsed.Group
	}
	r.SD = sdResolutions[parsed.Resolution]

	return r
}

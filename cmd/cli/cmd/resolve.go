package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/audionut/upload-assistant-go/pkg/core/tvmaze"
)

var (
	resolveTVDB   string
	resolveIMDb   string
	resolveManual string
	resolveDate   string
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve [title]",
	Short: "Resolve a TV show against the TVmaze catalog",
	Long: `Resolves a show's TVmaze identifier from a TVDB ID, an IMDb ID, or a
free-text title, in that order of preference. With --date the lookup
gathers candidates from every source and prompts for a manual pick.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolveCmd,
}

func init() {
	RootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVar(&resolveTVDB, "tvdb", "", "TVDB ID")
	resolveCmd.Flags().StringVar(&resolveIMDb, "imdb", "", "IMDb ID, with or without the tt prefix")
	resolveCmd.Flags().StringVar(&resolveManual, "manual", "", "TVmaze ID to use directly, bypassing all lookups")
	resolveCmd.Flags().StringVar(&resolveDate, "date", "", "release date hint; enables interactive disambiguation")
}

func runResolveCmd(cmd *cobra.Command, args []string) error {
	resolver := NewResolverFunc()

	tvmazeID, imdbID, tvdbID := resolver.ResolveIDs(cmd.Context(), tvmaze.Query{
		Title:    args[0],
		TVDBID:   resolveTVDB,
		IMDbID:   resolveIMDb,
		ManualID: resolveManual,
		DateHint: resolveDate,
	})

	fmt.Printf("TVmaze ID: %d\n", tvmazeID)
	fmt.Printf("IMDb ID:   %d\n", imdbID)
	fmt.Printf("TVDB ID:   %d\n", tvdbID)
	return nil
}

package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/audionut/upload-assistant-go/pkg/core/release"
)

var dupesFlags releaseFlags

// dupesCmd represents the dupes command
var dupesCmd = &cobra.Command{
	Use:   "dupes [release file]",
	Short: "Run the tracker's duplicate search for a release without uploading",
	Args:  cobra.ExactArgs(1),
	RunE:  runDupesCmd,
}

func init() {
	RootCmd.AddCommand(dupesCmd)
	dupesFlags.register(dupesCmd)
}

func runDupesCmd(cmd *cobra.Command, args []string) error {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	tc := NewTrackerFunc(trackerConfig(trackerName))
	rel := dupesFlags.build(args[0])

	return runDupes(cmd.Context(), rel, tc, logger)
}

func runDupes(ctx context.Context, rel *release.Release, tc trackerClient, logger *logrus.Logger) error {
	dupes, err := tc.SearchExisting(ctx, rel)
	if rel.Skipping != "" {
		logger.Warnf("Release not eligible for %s.", rel.Skipping)
		return nil
	}
	if err != nil {
		return fmt.Errorf("duplicate search failed: %w", err)
	}
	if len(dupes) == 0 {
		logger.Infof("No duplicates found on %s.", tc.Name())
		return nil
	}
	logger.Infof("Found %d potential duplicate(s) on %s:", len(dupes), tc.Name())
	for _, d := range dupes {
		logger.Infof("  %s", d)
	}
	return nil
}

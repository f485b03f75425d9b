package cmd

import (
	"context"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audionut/upload-assistant-go/pkg/core/release"
	"github.com/audionut/upload-assistant-go/pkg/core/tvmaze"
	"github.com/audionut/upload-assistant-go/pkg/core/unit3d"
)

type stubTracker struct {
	name      string
	skip      bool
	dupes     []string
	searchErr error
	uploadURL string
	uploadErr error

	searchCalls int
	uploadCalls int
}

func (s *stubTracker) Name() string { return s.name }

func (s *stubTracker) SearchExisting(ctx context.Context, r *release.Release) ([]string, error) {
	s.searchCalls++
	if s.skip {
		r.Skipping = s.name
		return nil, nil
	}
	return s.dupes, s.searchErr
}

func (s *stubTracker) Upload(ctx context.Context, r *release.Release) (string, error) {
	s.uploadCalls++
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	r.RegisterTrackerURL(s.name, s.uploadURL)
	return s.uploadURL, nil
}

type stubResolver struct {
	id, imdb, tvdb int
	calls          int
}

func (s *stubResolver) ResolveIDs(ctx context.Context, q tvmaze.Query) (int, int, int) {
	s.calls++
	return s.id, s.imdb, s.tvdb
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestRunUploadSkippedRelease(t *testing.T) {
	tracker := &stubTracker{name: "OTW", skip: true}
	rel := &release.Release{Category: release.CategoryMovie}

	err := runUpload(context.Background(), rel, tracker, &stubResolver{}, false, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, tracker.searchCalls)
	assert.Zero(t, tracker.uploadCalls, "skipped releases are never uploaded")
}

func TestRunUploadAbortsOnDuplicates(t *testing.T) {
	tracker := &stubTracker{name: "OTW", dupes: []string{"Existing Release 1080p"}}
	rel := &release.Release{Category: release.CategoryMovie}

	err := runUpload(context.Background(), rel, tracker, &stubResolver{}, false, testLogger())
	require.Error(t, err)
	assert.Zero(t, tracker.uploadCalls)
}

func TestRunUploadForceOverridesDuplicates(t *testing.T) {
	tracker := &stubTracker{name: "OTW", dupes: []string{"Existing"}, uploadURL: "https://oldtoons.world/torrents/1"}
	rel := &release.Release{Category: release.CategoryMovie}

	err := runUpload(context.Background(), rel, tracker, &stubResolver{}, true, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, tracker.uploadCalls)
	assert.Equal(t, "https://oldtoons.world/torrents/1", rel.TrackerURLs["OTW"])
}

func TestRunUploadSearchFailure(t *testing.T) {
	tracker := &stubTracker{name: "OTW", searchErr: fmt.Errorf("status 500")}
	rel := &release.Release{Category: release.CategoryMovie}

	err := runUpload(context.Background(), rel, tracker, &stubResolver{}, false, testLogger())
	require.Error(t, err, "a failed search is not a clean no-duplicates result")
	assert.Zero(t, tracker.uploadCalls)

	// --force treats the failed search as advisory.
	tracker = &stubTracker{name: "OTW", searchErr: fmt.Errorf("status 500"), uploadURL: "u"}
	err = runUpload(context.Background(), rel, tracker, &stubResolver{}, true, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, tracker.uploadCalls)
}

func TestRunUploadUnconfirmedIsNotFatal(t *testing.T) {
	tracker := &stubTracker{name: "OTW", uploadErr: fmt.Errorf("%w: garbled body", unit3d.ErrUploadUnconfirmed)}
	rel := &release.Release{Category: release.CategoryMovie}

	err := runUpload(context.Background(), rel, tracker, &stubResolver{}, false, testLogger())
	require.NoError(t, err, "an unconfirmed upload is reported, not retried or failed")
}

func TestRunUploadResolvesTVShows(t *testing.T) {
	tracker := &stubTracker{name: "OTW", uploadURL: "u"}
	resolver := &stubResolver{id: 42, imdb: 96694, tvdb: 76121}
	rel := &release.Release{Category: release.CategoryTV, Name: "The Test Show S02"}

	err := runUpload(context.Background(), rel, tracker, resolver, false, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, resolver.calls)
	assert.Equal(t, 42, rel.TVMazeID)
	assert.Equal(t, "96694", rel.IMDbID)
	assert.Equal(t, "76121", rel.TVDBID)
}

func TestRunUploadMovieSkipsResolver(t *testing.T) {
	tracker := &stubTracker{name: "OTW", uploadURL: "u"}
	resolver := &stubResolver{}
	rel := &release.Release{Category: release.CategoryMovie}

	err := runUpload(context.Background(), rel, tracker, resolver, false, testLogger())
	require.NoError(t, err)
	assert.Zero(t, resolver.calls)
}

func TestRunDupes(t *testing.T) {
	tracker := &stubTracker{name: "OTW", dupes: []string{"A", "B"}}
	rel := &release.Release{Category: release.CategoryMovie}

	err := runDupes(context.Background(), rel, tracker, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, tracker.searchCalls)

	tracker = &stubTracker{name: "OTW", skip: true}
	require.NoError(t, runDupes(context.Background(), rel, tracker, testLogger()))

	tracker = &stubTracker{name: "OTW", searchErr: fmt.Errorf("timeout")}
	assert.Error(t, runDupes(context.Background(), rel, tracker, testLogger()))
}

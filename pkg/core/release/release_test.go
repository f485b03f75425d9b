package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFilenameTVRelease(t *testing.T) {
	r := FromFilename("/downloads/The.Test.Show.S02E03.1080p.WEB-DL.x264-GRP.mkv")
	require.NotNil(t, r)

	assert.Equal(t, CategoryTV, r.Category)
	assert.Equal(t, 2, r.SeasonInt)
	assert.Equal(t, 3, r.EpisodeInt)
	assert.Equal(t, "S02", r.Season)
	assert.Equal(t, "1080p", r.Resolution)
	assert.Equal(t, "WEBDL", r.Type)
	assert.False(t, r.SD)
}

func TestFromFilenameMovieRelease(t *testing.T) {
	r := FromFilename("Some.Film.1994.480p.DVDRip.x264.mkv")
	require.NotNil(t, r)

	assert.Equal(t, CategoryMovie, r.Category)
	assert.Zero(t, r.SeasonInt)
	assert.Equal(t, "480p", r.Resolution)
	assert.True(t, r.SD)
}

func TestFromFilenameUnparseableNeverFails(t *testing.T) {
	r := FromFilename("completely_unremarkable_name.mkv")
	require.NotNil(t, r)
	assert.NotEmpty(t, r.Name)
	assert.Equal(t, CategoryMovie, r.Category)
}

func TestGroupTag(t *testing.T) {
	assert.Equal(t, "GRP", (&Release{Tag: "-GRP"}).GroupTag())
	assert.Equal(t, "", (&Release{}).GroupTag())
}

func TestHasGenre(t *testing.T) {
	r := &Release{Genres: []string{"Animation", "Comedy"}}
	assert.True(t, r.HasGenre("Animation", "Family"))
	assert.False(t, r.HasGenre("Horror"))
	assert.False(t, (&Release{}).HasGenre("Animation"))
}

func TestRegisterTrackerURL(t *testing.T) {
	r := &Release{}
	r.RegisterTrackerURL("OTW", "https://oldtoons.world/torrents/1")
	r.RegisterTrackerURL("OTHER", "https://other.example/torrents/2")
	assert.Equal(t, "https://oldtoons.world/torrents/1", r.TrackerURLs["OTW"])
	assert.Len(t, r.TrackerURLs, 2)
}

func TestCleanFileName(t *testing.T) {
	assert.Equal(t, "Show Name 12", CleanFileName(`Show: Name? 1/2`))
	assert.Equal(t, "plain", CleanFileName("plain"))
}

func TestTypeFromQuality(t *testing.T) {
	tests := []struct {
		quality string
		want    string
	}{
		{"WEB-DL", "WEBDL"},
		{"WEBRip", "WEBRIP"},
		{"HDTV", "HDTV"},
		{"BluRay REMUX", "REMUX"},
		{"BluRay", "ENCODE"},
		{"", "ENCODE"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, typeFromQuality(tt.quality), "quality %q", tt.quality)
	}
}

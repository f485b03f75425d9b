package unit3d

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryID(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"MOVIE", "1"},
		{"TV", "2"},
		{"FANRES", "0"}, // unknown maps to the default, never errors
		{"", "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryID(tt.label), "category %q", tt.label)
	}
}

func TestTypeID(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"DISC", "1"},
		{"REMUX", "2"},
		{"ENCODE", "3"},
		{"WEBDL", "4"},
		{"WEBRIP", "5"},
		{"HDTV", "6"},
		{"DVDRIP", "0"},
		{"", "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TypeID(tt.label), "type %q", tt.label)
	}
}

func TestResolutionID(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"8640p", "10"},
		{"4320p", "1"},
		{"2160p", "2"},
		{"1440p", "3"},
		{"1080p", "3"},
		{"1080i", "4"},
		{"720p", "5"},
		{"576p", "6"},
		{"576i", "7"},
		{"480p", "8"},
		{"480i", "9"},
		{"144p", "10"}, // unknown maps to the default
		{"", "10"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolutionID(tt.label), "resolution %q", tt.label)
	}
}

func TestRegionAndDistributorIDs(t *testing.T) {
	assert.NotZero(t, RegionID("USA"))
	assert.NotZero(t, RegionID("usa"), "lookups are case-insensitive")
	assert.Zero(t, RegionID("NOWHERE"))
	assert.Zero(t, RegionID(""))

	assert.NotZero(t, DistributorID("CRITERION"))
	assert.Zero(t, DistributorID("UNKNOWN LABEL"))
	assert.Zero(t, DistributorID(""))
}

func TestBannedGroupReason(t *testing.T) {
	_, banned := BannedGroupReason("YIFY")
	assert.True(t, banned)

	reason, banned := BannedGroupReason("EVO")
	assert.True(t, banned)
	assert.Equal(t, "Raw Content Only", reason)

	// Matching is exact: the ViSION ban calls out its capitalization.
	_, banned = BannedGroupReason("vision")
	assert.False(t, banned)

	_, banned = BannedGroupReason("GoodGroup")
	assert.False(t, banned)
}

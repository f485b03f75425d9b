package staging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJob(t *testing.T) Job {
	t.Helper()
	job := Job{BaseDir: t.TempDir(), UUID: "job-1", Tracker: "OTW"}
	require.NoError(t, os.MkdirAll(job.Dir(), 0755))
	return job
}

func TestReadStagedArtifacts(t *testing.T) {
	job := newTestJob(t)
	require.NoError(t, os.WriteFile(filepath.Join(job.Dir(), "MEDIAINFO.txt"), []byte("mi dump"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(job.Dir(), "BD_SUMMARY_00.txt"), []byte("bd dump"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(job.Dir(), "[OTW]DESCRIPTION.txt"), []byte("desc"), 0644))

	mi, err := job.MediaInfo()
	require.NoError(t, err)
	assert.Equal(t, "mi dump", mi)

	bd, err := job.BDSummary()
	require.NoError(t, err)
	assert.Equal(t, "bd dump", bd)

	desc, err := job.Description()
	require.NoError(t, err)
	assert.Equal(t, "desc", desc)
}

func TestMissingArtifactsPropagate(t *testing.T) {
	job := newTestJob(t)

	_, err := job.MediaInfo()
	assert.True(t, os.IsNotExist(err))

	_, err = job.Description()
	assert.True(t, os.IsNotExist(err))
}

func TestTorrentPath(t *testing.T) {
	job := Job{BaseDir: "/base", UUID: "u1", Tracker: "OTW"}
	assert.Equal(t, filepath.Join("/base", "tmp", "u1", "[OTW]My Release.torrent"), job.TorrentPath("My Release"))
}

func TestFindNFO(t *testing.T) {
	job := newTestJob(t)

	path, err := job.FindNFO()
	require.NoError(t, err)
	assert.Empty(t, path, "no nfo staged")

	want := filepath.Join(job.Dir(), "release.nfo")
	require.NoError(t, os.WriteFile(want, []byte("nfo"), 0644))

	path, err = job.FindNFO()
	require.NoError(t, err)
	assert.Equal(t, want, path)
}

// Package staging locates the per-job artifacts a tracker upload
// consumes: the mediainfo or BDInfo dump, the rendered description, the
// per-tracker torrent and an optional nfo. Files are produced earlier
// in the pipeline; missing files surface as plain filesystem errors and
// are fatal to the upload attempt.
package staging

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	bdSummaryFile = "BD_SUMMARY_00.txt"
	mediaInfoFile = "MEDIAINFO.txt"
)

// Job addresses one release's staging directory, <base>/tmp/<uuid>/.
type Job struct {
	BaseDir string
	UUID    string
	Tracker string // tracker short name used in file prefixes, e.g. "OTW"
}

// Dir returns the staging directory for this job.
func (j Job) Dir() string {
	return filepath.Join(j.BaseDir, "tmp", j.UUID)
}

// MediaInfo reads the MEDIAINFO.txt dump.
func (j Job) MediaInfo() (string, error) {
	data, err := os.ReadFile(filepath.Join(j.Dir(), mediaInfoFile))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// BDSummary reads the BD_SUMMARY_00.txt dump for disc releases.
func (j Job) BDSummary() (string, error) {
	data, err := os.ReadFile(filepath.Join(j.Dir(), bdSummaryFile))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Description reads the tracker-specific rendered description.
func (j Job) Description() (string, error) {
	data, err := os.ReadFile(filepath.Join(j.Dir(), fmt.Sprintf("[%s]DESCRIPTION.txt", j.Tracker)))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// TorrentPath returns the path of the tracker-specific torrent file.
func (j Job) TorrentPath(cleanName string) string {
	return filepath.Join(j.Dir(), fmt.Sprintf("[%s]%s.torrent", j.Tracker, cleanName))
}

// FindNFO returns the path of the first nfo in the staging directory,
// or "" when none is staged. Glob errors only occur on malformed
// patterns, so they are reported rather than swallowed.
func (j Job) FindNFO() (string, error) {
	matches, err := filepath.Glob(filepath.Join(j.Dir(), "*.nfo"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", nil
	}
	return matches[0], nil
}

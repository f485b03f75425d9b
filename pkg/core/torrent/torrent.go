// Package torrent rewrites staged .torrent files for a specific
// tracker: private announce, source flag, and after a confirmed upload
// the canonical torrent URL as the comment.
package torrent

import (
	"errors"
	"fmt"
	"os"

	"github.com/zeebo/bencode"
)

// ErrNoInfoDict is returned when a file decodes but carries no info
// dictionary, which means it is not a usable torrent.
var ErrNoInfoDict = errors.New("torrent: missing info dictionary")

func load(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var meta map[string]interface{}
	if err := bencode.DecodeBytes(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return meta, nil
}

func save(path string, meta map[string]interface{}) error {
	data, err := bencode.EncodeBytes(meta)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}

// Rebrand points the torrent at the tracker: sets the announce URL,
// drops any announce-list, marks the info dict private and stamps the
// tracker's source flag. Changing the info dict is intentional, the
// per-tracker torrent must have its own infohash.
func Rebrand(path, announce, source string) error {
	meta, err := load(path)
	if err != nil {
		return err
	}
	info, ok := meta["info"].(map[string]interface{})
	if !ok {
		return ErrNoInfoDict
	}
	meta["announce"] = announce
	delete(meta, "announce-list")
	info["source"] = source
	info["private"] = int64(1)
	meta["info"] = info
	return save(path, meta)
}

// SetComment writes the torrent's comment field, used to carry the
// canonical tracker URL once the upload is confirmed.
func SetComment(path, comment string) error {
	meta, err := load(path)
	if err != nil {
		return err
	}
	meta["comment"] = comment
	return save(path, meta)
}

// Comment reads back the comment field, "" when unset.
func Comment(path string) (string, error) {
	meta, err := load(path)
	if err != nil {
		return "", err
	}
	c, _ := meta["comment"].(string)
	return c, nil
}

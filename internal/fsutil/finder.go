// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FirstExisting probes the candidate paths in order and returns the first one
// that exists on the file system. Relative candidates are joined onto root
// when root is not empty. Directories do not count as a match.
func FirstExisting(root string, candidates ...string) (string, bool, error) {
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		path := candidate
		if root != "" && !filepath.IsAbs(candidate) {
			path = filepath.Join(root, candidate)
		}

		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", false, err
		}
		if info.IsDir() {
			continue
		}
		return path, true, nil
	}
	return "", false, nil
}

// Package discover finds input documents in a folder.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches PDFs directly inside the folder.
const DefaultPattern = "*.pdf"

// ErrNotDir is returned when the input folder is missing or not a directory.
var ErrNotDir = errors.New("input folder not found")

// Match reports whether the slash-separated relative path matches pattern.
// Matching ignores case, so "*.pdf" also picks up "PAPER.PDF".
func Match(pattern, rel string) bool {
	ok, err := doublestar.Match(strings.ToLower(pattern), strings.ToLower(rel))
	return err == nil && ok
}

// Files returns the regular files under dir whose relative path matches
// pattern, sorted by name. Patterns without a slash only look at the top
// level of dir.
func Files(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDir, dir)
	}

	recursive := strings.Contains(pattern, "/")
	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if Match(pattern, filepath.ToSlash(rel)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}

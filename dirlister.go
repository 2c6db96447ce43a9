package dsprep

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// listDirectories returns all directories below root, excluding root itself, in walk order.
func listDirectories(fs afero.Fs, root string) ([]string, error) {
	var dirs []string
	err := afero.Walk(fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && p != root {
			dirs = append(dirs, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "cannot list directories below %q", root)
	}
	return dirs, nil
}

// removeDirsByName drops all directories whose path contains one of names.
func removeDirsByName(dirs []string, names []string) []string {
	kept := dirs[:0:0]
	for _, d := range dirs {
		if !containsAny(filepath.ToSlash(d), names) {
			kept = append(kept, d)
		}
	}
	return kept
}

// dirFilter selects paths that contain every filter and none of the ignore strings. The ambiguous
// strings are blanked out before the filters are checked, so a filter only matches outside them.
type dirFilter struct {
	filters   []string
	ignore    []string
	ambiguous []string
}

func (f dirFilter) match(p string) bool {
	if containsAny(p, f.ignore) {
		return false
	}
	for _, a := range f.ambiguous {
		if a != "" {
			p = strings.ReplaceAll(p, a, "\x00")
		}
	}
	for _, flt := range f.filters {
		if !strings.Contains(p, flt) {
			return false
		}
	}
	return true
}

// includeDirsByName returns the directories of dirs whose path relative to root satisfies f.
func includeDirsByName(root string, dirs []string, f dirFilter) []string {
	var kept []string
	for _, d := range dirs {
		if f.match(relPath(root, d)) {
			kept = append(kept, d)
		}
	}
	return kept
}

// filesByExt returns the files with extension ext directly in dir, skipping names that contain one
// of the ignore strings.
func filesByExt(fs afero.Fs, dir, ext string, ignore []string) ([]string, error) {
	files, err := filesByExtInDir(fs, dir, ext)
	if err != nil {
		return nil, err
	}
	kept := files[:0]
	for _, f := range files {
		if !containsAny(filepath.Base(f), ignore) {
			kept = append(kept, f)
		}
	}
	return kept, nil
}

// includeEntriesByFolder returns the indices of entries whose folder part contains filter.
func includeEntriesByFolder(entries []string, filter string) []int {
	var idx []int
	for i, e := range entries {
		if strings.Contains(filepath.ToSlash(filepath.Dir(e)), filter) {
			idx = append(idx, i)
		}
	}
	return idx
}

// includeByName returns the indices of names that contain filter.
func includeByName(names []string, filter string) []int {
	var idx []int
	for i, n := range names {
		if strings.Contains(n, filter) {
			idx = append(idx, i)
		}
	}
	return idx
}

package dsprep

import (
	"bufio"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// filesByExtInDir retuns all regular files with file extension ext found directly in directory
// dirPath. All files are returned if extension is empty.
func filesByExtInDir(fs afero.Fs, dirPath, ext string) ([]string, error) {
	infos, err := afero.ReadDir(fs, dirPath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read directory %q", dirPath)
	}

	files := make([]string, 0, len(infos))
	for _, info := range infos {
		name := info.Name()
		// Must be a regular file or a symlink and have the requested extension/suffix.
		if (!info.Mode().IsRegular() && (info.Mode()&os.ModeSymlink == 0)) ||
			!strings.HasSuffix(name, ext) {
			continue
		}
		files = append(files, filepath.Join(dirPath, name))
	}

	return files, nil
}

// splitPath splits the given file path into the dir name, the base name without extension and the
// extension (without the dot).
func splitPath(p string) (dir, baseNoExt, ext string, err error) {
	dir, file := path.Split(filepath.ToSlash(p))
	ext = path.Ext(file)
	if ext == "" {
		return "", "", "", errors.Wrapf(ErrMalformedName, "missing file extension in %q", p)
	}

	dir = strings.TrimSuffix(dir, "/")
	baseNoExt = file[0 : len(file)-len(ext)]
	ext = ext[1:]

	return dir, baseNoExt, ext, nil
}

// stem returns the base name of p without its extension.
func stem(p string) string {
	base := path.Base(filepath.ToSlash(p))
	return strings.TrimSuffix(base, path.Ext(base))
}

// dropFirstComponent removes the top level directory from the slash separated path rel.
func dropFirstComponent(rel string) string {
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		return rel[i+1:]
	}
	return rel
}

// firstComponent returns the top level directory of the slash separated path rel.
func firstComponent(rel string) string {
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		return rel[:i]
	}
	return rel
}

// relPath returns p relative to root with forward slashes, the form stored in manifests.
func relPath(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

// sortFold sorts paths lexicographically ignoring case. Paths that compare equal keep their order.
func sortFold(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		return strings.ToLower(paths[i]) < strings.ToLower(paths[j])
	})
}

// containsAny reports whether s contains at least one of subs.
func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// readLines returns a slice of lines read from the file at path.
func readLines(fs afero.Fs, path string) (lines []string, err error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read file %q", path)
	}
	defer closeWithErrCheck(file, &err)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read %q as lines", path)
	}

	return lines, nil
}

// closeWithErrCheck calls c.Close(). If it returns an error, and (*e == nil), e is set to that
// error.
func closeWithErrCheck(c io.Closer, e *error) {
	err := c.Close()
	if err != nil && *e == nil {
		*e = err
	}
}

// logClose closes c and only logs a failure. Used for read-only handles.
func logClose(c io.Closer, name string) {
	if err := c.Close(); err != nil {
		log.Warn().Err(err).Str("file", name).Msg("Close failed")
	}
}

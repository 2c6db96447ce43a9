package dsprep

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryFilters(t *testing.T) {
	dirs := []string{"/r/leftImg8bit/train", "/r/leftImg8bit_foggy/train", "/r/gtFine/train", "/r/gtFine/val"}
	assert.Equal(t, []string{"/r/leftImg8bit/train", "/r/gtFine/train", "/r/gtFine/val"},
		removeDirsByName(dirs, []string{"foggy"}))
	assert.Len(t, dirs, 4)

	f := dirFilter{filters: []string{"gtFine"}, ignore: []string{"val"}}
	assert.Equal(t, []string{"/r/gtFine/train"}, includeDirsByName("/r", dirs, f))

	entries := []string{"a/train/x.png", "a/val/y.png", "a/train_extra/z.png"}
	assert.Equal(t, []int{0, 2}, includeEntriesByFolder(entries, "train"))
	assert.Equal(t, []int{1}, includeByName(entries, "y.png"))
}

func TestFilesByExt(t *testing.T) {
	fs := afero.NewMemMapFs()
	touchAll(t, fs, "/d", "a.png", "b.jpg", "troisdorf_000000_000073_leftImg8bit.png", "sub/c.png")

	files, err := filesByExt(fs, "/d", ".png", []string{"troisdorf_000000_000073"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/d/a.png"}, files)

	all, err := filesByExtInDir(fs, "/d", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = filesByExtInDir(fs, "/missing", ".png")
	assert.Error(t, err)
}

func TestReadLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/list.txt", []byte("a\r\nb\n\nc"), 0644))
	lines, err := readLines(fs, "/list.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "", "c"}, lines)
}

func TestPathHelpers(t *testing.T) {
	assert.Equal(t, "b/c.png", dropFirstComponent("a/b/c.png"))
	assert.Equal(t, "c.png", dropFirstComponent("c.png"))
	assert.Equal(t, "a", firstComponent("a/b/c.png"))
	assert.Equal(t, "c", stem("a/b/c.png"))
	assert.Equal(t, "b/c.png", relPath("/a", "/a/b/c.png"))

	paths := []string{"B/x", "a/y", "C/z"}
	sortFold(paths)
	assert.Equal(t, []string{"a/y", "B/x", "C/z"}, paths)
}

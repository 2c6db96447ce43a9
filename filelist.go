package dsprep

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// foldersToIgnore are removed from every directory listing.
var foldersToIgnore = []string{"segmentation_trainid"}

// SupportedDatasets lists the dataset names for which a Layout exists.
var SupportedDatasets = []string{
	"cityscapes", "cityscapes_video", "cityscapes_sequence", "cityscapes_extra", "cityscapes_part",
	"kitti", "kitti_2012", "kitti_2015", "virtual_kitti", "mapillary", "mapillary_by_ID", "gta5",
	"synthia", "bdd100k", "voc2012", "a2d2", "lostandfound", "camvid", "make3d",
}

// isSupportedDataset reports whether name is one of SupportedDatasets.
func isSupportedDataset(name string) bool {
	for _, s := range SupportedDatasets {
		if s == name {
			return true
		}
	}
	return false
}

// CategorySpec describes how the files of one category are found.
type CategorySpec struct {
	Name    string
	Ext     string   // File extension including the dot.
	Filter  []string // All of these must appear in the directory path.
	Exclude []string // Files whose path contains one of these are dropped.
}

// Layout describes the directory layout and naming conventions of a dataset.
type Layout struct {
	Categories []CategorySpec // The first category is the canonical one.
	RemoveDirs []string       // Directories containing one of these are never listed.
	Ignore     []string       // Folders and files containing one of these are skipped.
	Ambiguous  []string       // Filters only match outside of these substrings.
	// StereoReplace maps a left camera substring to its right camera counterpart. Categories whose
	// name contains "right" are matched to the left camera files after the reverse replacement.
	StereoReplace map[string]string
	Strategy      IndexStrategy
	// SideData appends numeric categories after the file categories have been indexed.
	SideData func(b *Builder, m *Manifest) error
}

// Builder creates the basic manifest of a dataset directory.
type Builder struct {
	fs       afero.Fs
	root     string
	dirs     []string
	ignore   []string
	manifest *Manifest
}

// NewBuilder lists all directories below root.
func NewBuilder(fs afero.Fs, root string) (*Builder, error) {
	root = filepath.Clean(root)
	if ok, err := afero.DirExists(fs, root); err != nil || !ok {
		return nil, errors.Wrapf(ErrConfig, "dataset directory %q does not exist", root)
	}
	dirs, err := listDirectories(fs, root)
	if err != nil {
		return nil, err
	}
	return &Builder{fs: fs, root: root, dirs: removeDirsByName(dirs, foldersToIgnore)}, nil
}

// Root returns the dataset directory.
func (b *Builder) Root() string { return b.root }

// Manifest returns the last built manifest, or nil.
func (b *Builder) Manifest() *Manifest { return b.manifest }

// RemoveDirs drops all listed directories whose path contains one of names.
func (b *Builder) RemoveDirs(names ...string) {
	b.dirs = removeDirsByName(b.dirs, names)
}

// CreateFilelist returns the directories whose root relative path contains all filters and none of
// the ignore strings, and the files with extension ext inside them. Both lists are absolute and
// sorted case-insensitively.
func (b *Builder) CreateFilelist(filters []string, ext string, ignore, ambiguous []string) (
	folders, files []string, err error) {

	f := dirFilter{filters: filters, ignore: ignore, ambiguous: ambiguous}
	folders = includeDirsByName(b.root, b.dirs, f)
	sortFold(folders)
	for _, d := range folders {
		fs, err := filesByExt(b.fs, d, ext, ignore)
		if err != nil {
			return nil, nil, err
		}
		files = append(files, fs...)
	}
	sortFold(files)
	return folders, files, nil
}

// rel returns p relative to the dataset root.
func (b *Builder) rel(p string) string {
	return relPath(b.root, p)
}

// abs returns the absolute path of the root relative path rel.
func (b *Builder) abs(rel string) string {
	return filepath.Join(b.root, filepath.FromSlash(rel))
}

// relFilelist is CreateFilelist with root relative results and the layout's ignore list.
func (b *Builder) relFilelist(filters []string, ext string) (folders, files []string, err error) {
	af, fl, err := b.CreateFilelist(filters, ext, b.ignore, nil)
	if err != nil {
		return nil, nil, err
	}
	for _, f := range af {
		folders = append(folders, b.rel(f))
	}
	for _, f := range fl {
		files = append(files, b.rel(f))
	}
	return folders, files, nil
}

// Build indexes all categories of the layout.
func (b *Builder) Build(l *Layout) (*Manifest, error) {
	b.RemoveDirs(l.RemoveDirs...)
	b.ignore = l.Ignore

	m := &Manifest{Basic: true}
	var canonical map[string]int
	for i, cs := range l.Categories {
		absFolders, absFiles, err := b.CreateFilelist(cs.Filter, cs.Ext, l.Ignore, l.Ambiguous)
		if err != nil {
			return nil, err
		}
		folders := make([]string, len(absFolders))
		for k, f := range absFolders {
			folders[k] = b.rel(f)
		}
		rels := make([]string, 0, len(absFiles))
		for _, f := range absFiles {
			r := b.rel(f)
			if containsAny(r, cs.Exclude) {
				continue
			}
			rels = append(rels, r)
		}

		var stereo func(string) string
		if strings.Contains(cs.Name, "right") && len(l.StereoReplace) > 0 {
			stereo = func(p string) string {
				for left, right := range l.StereoReplace {
					p = strings.ReplaceAll(p, right, left)
				}
				return p
			}
		}

		var idx *categoryIndex
		if i == 0 {
			idx, err = l.Strategy.index(cs.Name, rels, nil, stereo)
			if err == nil {
				canonical = idx.ids
			}
		} else {
			if canonical == nil {
				canonical = map[string]int{}
			}
			idx, err = l.Strategy.index(cs.Name, rels, canonical, stereo)
		}
		if err != nil {
			return nil, errors.WithMessagef(err, "failed to index category %q", cs.Name)
		}

		files := make([]Value, len(idx.rels))
		for k, r := range idx.rels {
			files[k] = PathValue(r)
		}
		m.Categories = append(m.Categories, Category{
			Name:      cs.Name,
			Type:      cs.Ext,
			Filter:    append(Filter{}, cs.Filter...),
			Folders:   folders,
			Files:     files,
			Positions: idx.positions,
		})
		log.Info().Str("name", cs.Name).Int("items", len(files)).Msg("Category indexed")
	}

	if l.SideData != nil && len(m.Categories) > 0 {
		if err := l.SideData(b, m); err != nil {
			return nil, err
		}
	}
	b.manifest = m
	return m, nil
}

// Dump writes the last built manifest to basic_files.json in the dataset root.
func (b *Builder) Dump() error {
	if b.manifest == nil {
		return errors.New("no manifest has been built")
	}
	return WriteManifest(b.fs, filepath.Join(b.root, BasicFilesName), b.manifest)
}

// appendNumeric adds a numeric category whose entries mirror the files and positions of an image
// category. If the number of values differs from the number of files, the longer list is
// truncated.
func appendNumeric(m *Manifest, name, typ string, filter, folders []string, files []Value,
	positions []Position, values []Value) {

	n := len(values)
	if len(files) < n {
		n = len(files)
	}
	if len(positions) < n {
		n = len(positions)
	}
	if n != len(values) || n != len(files) {
		log.Warn().Str("name", name).Int("values", len(values)).Int("files", len(files)).
			Msg("Number of numerical values does not match the number of files, truncating")
	}
	m.Categories = append(m.Categories, Category{
		Name:      name,
		Type:      typ,
		Filter:    append(Filter{}, filter...),
		Folders:   orEmpty(append([]string{}, folders...)),
		Files:     append([]Value{}, files[:n]...),
		Positions: append([]Position{}, positions[:n]...),
		Numeric:   append([]Value{}, values[:n]...),
	})
	log.Info().Str("name", name).Int("items", n).Msg("Numerical category added")
}

// DatasetCreator creates the basic manifest of a named dataset below the data path.
type DatasetCreator struct {
	fs       afero.Fs
	dataPath string
	dataset  string
	rewrite  bool
}

// NewDatasetCreator returns a creator for dataset, which must be one of SupportedDatasets. If
// rewrite is set, an existing manifest is always rebuilt.
func NewDatasetCreator(fs afero.Fs, dataPath, dataset string, rewrite bool) (*DatasetCreator, error) {
	if !isSupportedDataset(dataset) {
		return nil, errors.Wrapf(ErrConfig, "dataset %q not supported", dataset)
	}
	return &DatasetCreator{fs: fs, dataPath: dataPath, dataset: dataset, rewrite: rewrite}, nil
}

// Root returns the dataset directory.
func (c *DatasetCreator) Root() string {
	return filepath.Join(c.dataPath, c.dataset)
}

// CheckState reports whether a valid basic manifest exists, i.e. whether creation can be skipped.
func (c *DatasetCreator) CheckState() bool {
	if c.rewrite {
		return false
	}
	m, err := ReadManifest(c.fs, filepath.Join(c.Root(), BasicFilesName))
	if err != nil {
		return false
	}
	if len(m.Categories) == 0 || len(m.Categories[0].Files) == 0 {
		return false
	}
	first := filepath.Join(c.Root(), filepath.FromSlash(m.Categories[0].Files[0].Path()))
	ok, err := afero.Exists(c.fs, first)
	return err == nil && ok
}

// CreateDataset builds the manifest of the dataset and writes it to basic_files.json.
func (c *DatasetCreator) CreateDataset() (*Manifest, error) {
	layout, err := LayoutFor(c.dataset)
	if err != nil {
		return nil, err
	}
	b, err := NewBuilder(c.fs, c.Root())
	if err != nil {
		return nil, err
	}
	m, err := b.Build(layout)
	if err != nil {
		return nil, err
	}
	if err := b.Dump(); err != nil {
		return nil, err
	}
	return m, nil
}

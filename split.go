package dsprep

// Creation of the train, validation and test splits from the basic manifest of a dataset.

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// SplitStrategy derives the split manifests from the basic manifest of a dataset.
type SplitStrategy interface {
	CreateSplits(b *SplitBuilder) (map[SplitName]*Manifest, error)
}

// SplitBuilder creates the splits of a single dataset. The basic manifest is never modified.
type SplitBuilder struct {
	fs     afero.Fs
	root   string
	output string
	basic  *Manifest
	splits map[SplitName]*Manifest

	// Folders per split and category assigned by the last random split.
	splitFolders map[SplitName]map[string][]string
}

// NewSplitBuilder reads the basic manifest of the dataset at root. The output path defaults to
// root.
func NewSplitBuilder(fs afero.Fs, root string) (*SplitBuilder, error) {
	if ok, err := afero.DirExists(fs, root); err != nil || !ok {
		return nil, errors.Wrapf(ErrConfig, "dataset path %q does not exist", root)
	}
	basic, err := ReadManifest(fs, filepath.Join(root, BasicFilesName))
	if err != nil {
		return nil, errors.WithMessage(err, "the filelist has to be created first")
	}
	return &SplitBuilder{
		fs:     fs,
		root:   root,
		output: root,
		basic:  basic,
		splits: make(map[SplitName]*Manifest),
	}, nil
}

// SetSplitPath selects the directory the splits are written to. A non-empty name is appended to
// the dataset directory name, separated by an underscore, e.g. kitti_eigen_split.
func (b *SplitBuilder) SetSplitPath(name string) {
	if name == "" {
		b.output = b.root
		return
	}
	b.output = filepath.Clean(b.root) + "_" + name
}

// OutputPath returns the directory the splits are written to.
func (b *SplitBuilder) OutputPath() string { return b.output }

// Basic returns the basic manifest. It must not be modified.
func (b *SplitBuilder) Basic() *Manifest { return b.basic }

// Splits returns the splits created so far.
func (b *SplitBuilder) Splits() map[SplitName]*Manifest { return b.splits }

// CreateSplits replaces the current splits with the ones created by s.
func (b *SplitBuilder) CreateSplits(s SplitStrategy) error {
	splits, err := s.CreateSplits(b)
	if err != nil {
		return err
	}
	b.splits = splits
	for _, name := range SplitNames {
		if m, ok := splits[name]; ok && len(m.Categories) > 0 {
			log.Info().Str("split", string(name)).Int("items", len(m.Categories[0].Files)).
				Msg("Split created")
		}
	}
	return nil
}

// Dump writes every split to <split>.json in the output path.
func (b *SplitBuilder) Dump() error {
	if ok, _ := afero.DirExists(b.fs, b.output); !ok {
		log.Info().Str("path", b.output).Msg("Creating output path")
		if err := b.fs.MkdirAll(b.output, 0755); err != nil {
			return errors.Wrapf(err, "cannot create output path %q", b.output)
		}
	}
	for _, name := range SplitNames {
		m, ok := b.splits[name]
		if !ok {
			continue
		}
		if err := WriteManifest(b.fs, filepath.Join(b.output, name.FileName()), m); err != nil {
			return err
		}
	}
	return nil
}

// FilterByResolution removes all samples whose color image is smaller than minHeight x minWidth. A
// bound of 0 disables the check of that dimension.
func (b *SplitBuilder) FilterByResolution(minHeight, minWidth int) error {
	for _, name := range SplitNames {
		m, ok := b.splits[name]
		if !ok || len(m.Categories) == 0 {
			continue
		}

		color := colorCategory(m)
		keep := make(map[int]bool, len(color.Files))
		for i, f := range color.Files {
			cfg, _, err := decodeImageConfig(b.fs, filepath.Join(b.root, f.Path()))
			if err != nil {
				return err
			}
			if (minHeight > 0 && cfg.Height < minHeight) || (minWidth > 0 && cfg.Width < minWidth) {
				continue
			}
			keep[color.Positions[i].GlobalID] = true
		}

		n := len(color.Files)
		for i := range m.Categories {
			c := &m.Categories[i]
			var idx []int
			for j, p := range c.Positions {
				if keep[p.GlobalID] {
					idx = append(idx, j)
				}
			}
			*c = subset(c, idx, c.Folders)
		}
		log.Info().Str("split", string(name)).Int("entries", n).Int("filtered", len(keep)).
			Int("removed", n-len(keep)).Msg("Resolution filter applied")
	}
	return nil
}

// colorCategory returns the first category whose name contains "color", or the first category.
func colorCategory(m *Manifest) *Category {
	for i := range m.Categories {
		if strings.Contains(strings.ToLower(m.Categories[i].Name), "color") {
			return &m.Categories[i]
		}
	}
	return &m.Categories[0]
}

// SaveSplitFolders writes <split>_folders.txt to the output path, one line per sample folder
// holding the common path of the folders of all categories. It requires a random split.
func (b *SplitBuilder) SaveSplitFolders() error {
	if b.splitFolders == nil {
		return errors.Wrap(ErrConfig, "split folders are only available after a random split")
	}
	names := b.basic.Names()
	key := names[0]
	if b.basic.Index("color") >= 0 {
		key = "color"
	}

	if err := b.fs.MkdirAll(b.output, 0755); err != nil {
		return err
	}
	for _, split := range randomFillOrder {
		folders := b.splitFolders[split]
		sorted := make(map[string][]string, len(folders))
		for name, f := range folders {
			s := append([]string(nil), f...)
			sort.Strings(s)
			sorted[name] = s
		}

		var lines []string
		for i := range sorted[key] {
			sample := make([]string, 0, len(names))
			for _, name := range names {
				if i < len(sorted[name]) {
					sample = append(sample, sorted[name][i])
				}
			}
			lines = append(lines, commonPath(sample))
		}
		p := filepath.Join(b.output, string(split)+"_folders.txt")
		if err := afero.WriteFile(b.fs, p, []byte(strings.Join(lines, "\n")), 0644); err != nil {
			return errors.Wrapf(err, "cannot write %q", p)
		}
	}
	return nil
}

// commonPath returns the longest common directory of the slash separated paths.
func commonPath(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	common := strings.Split(paths[0], "/")
	for _, p := range paths[1:] {
		parts := strings.Split(p, "/")
		n := 0
		for n < len(common) && n < len(parts) && common[n] == parts[n] {
			n++
		}
		common = common[:n]
	}
	return path.Join(common...)
}

// subset returns the split category holding the entries idx of c. Numeric categories export their
// numeric values in place of the file names.
func subset(c *Category, idx []int, folders []string) Category {
	n := Category{
		Name:      c.Name,
		Type:      c.Type,
		Folders:   append([]string{}, folders...),
		Files:     make([]Value, 0, len(idx)),
		Positions: make([]Position, 0, len(idx)),
	}
	for _, i := range idx {
		n.Files = append(n.Files, c.value(i))
		n.Positions = append(n.Positions, c.Positions[i])
	}
	return n
}

func newSplitManifest(n int) *Manifest {
	return &Manifest{Categories: make([]Category, 0, n)}
}

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// AllTrain uses the whole dataset as training data.
type AllTrain struct{}

func (AllTrain) CreateSplits(b *SplitBuilder) (map[SplitName]*Manifest, error) {
	m := newSplitManifest(len(b.basic.Categories))
	for i := range b.basic.Categories {
		c := &b.basic.Categories[i]
		m.Categories = append(m.Categories, subset(c, allIndices(len(c.Files)), c.Folders))
	}
	return map[SplitName]*Manifest{SplitTrain: m}, nil
}

// FolderFilter assigns entries by a unique substring of their folder names.
type FolderFilter struct {
	Train, Val, Test string // Defaults: train, validation and test.
	ValEqualTest     bool   // Use the test files as validation files.
}

func (f FolderFilter) CreateSplits(b *SplitBuilder) (map[SplitName]*Manifest, error) {
	filters := map[SplitName]string{
		SplitTrain:      orDefault(f.Train, "train"),
		SplitValidation: orDefault(f.Val, "validation"),
		SplitTest:       orDefault(f.Test, "test"),
	}
	if f.ValEqualTest {
		filters[SplitValidation] = filters[SplitTest]
	}

	splits := make(map[SplitName]*Manifest, len(SplitNames))
	for _, split := range SplitNames {
		filter := filters[split]
		m := newSplitManifest(len(b.basic.Categories))
		for i := range b.basic.Categories {
			c := &b.basic.Categories[i]
			var folders []string
			for _, d := range c.Folders {
				if strings.Contains(d, filter) {
					folders = append(folders, d)
				}
			}
			m.Categories = append(m.Categories, subset(c, includeEntriesByFolder(c.Paths(), filter), folders))
		}
		splits[split] = m
	}
	return splits, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// splitFromName maps a file or variable name to the split it describes.
func splitFromName(name string) (SplitName, bool) {
	switch {
	case strings.Contains(name, "train"):
		return SplitTrain, true
	case strings.Contains(name, "test"):
		return SplitTest, true
	case strings.Contains(name, "val"):
		return SplitValidation, true
	}
	return "", false
}

// byIndexList returns the split holding the entries idx of every category, keeping the folders of
// the basic manifest.
func byIndexList(basic *Manifest, idx []int) (*Manifest, error) {
	m := newSplitManifest(len(basic.Categories))
	for i := range basic.Categories {
		c := &basic.Categories[i]
		for _, j := range idx {
			if j < 0 || j >= len(c.Files) {
				return nil, errors.Wrapf(ErrConsistency, "index %d out of range for category %q with %d entries",
					j+1, c.Name, len(c.Files))
			}
		}
		m.Categories = append(m.Categories, subset(c, idx, c.Folders))
	}
	return m, nil
}

// MatFile reads the split from the single .mat file in the dataset root. Each variable whose name
// contains train, test or val holds the 1-based entry numbers of that split.
type MatFile struct{}

func (MatFile) CreateSplits(b *SplitBuilder) (map[SplitName]*Manifest, error) {
	files, err := filesByExtInDir(b.fs, b.root, ".mat")
	if err != nil {
		return nil, err
	}
	if len(files) != 1 {
		return nil, errors.Wrapf(ErrConfig, "expected exactly one .mat file in %q, found %d", b.root, len(files))
	}
	vars, err := ReadMatFile(b.fs, files[0])
	if err != nil {
		return nil, err
	}

	splits := make(map[SplitName]*Manifest)
	for _, v := range vars {
		split, ok := splitFromName(v.Name)
		if !ok {
			continue
		}
		idx := make([]int, len(v.Data))
		for i, n := range v.Data {
			idx[i] = int(n) - 1
		}
		m, err := byIndexList(b.basic, idx)
		if err != nil {
			return nil, errors.WithMessagef(err, "variable %q of %q", v.Name, files[0])
		}
		splits[split] = m
	}
	if len(splits) == 0 {
		return nil, errors.Wrapf(ErrConsistency, "no split data found in %q", files[0])
	}
	return splits, nil
}

// TextFile reads the split from <root>/<Dir>/<filter>.txt. Every line names a unique substring of
// the entries of the split. An empty filter skips the split.
type TextFile struct {
	Dir              string
	Train, Val, Test string
}

func (t TextFile) CreateSplits(b *SplitBuilder) (map[SplitName]*Manifest, error) {
	filters := map[SplitName]string{SplitTrain: t.Train, SplitValidation: t.Val, SplitTest: t.Test}
	splits := make(map[SplitName]*Manifest)
	for _, split := range SplitNames {
		filter := filters[split]
		if filter == "" {
			continue
		}
		p := filepath.Join(b.root, t.Dir, filter+".txt")
		if ok, _ := afero.Exists(b.fs, p); !ok {
			log.Warn().Str("split", string(split)).Str("file", p).Msg("Split file not found, skipping")
			continue
		}
		lines, err := readLines(b.fs, p)
		if err != nil {
			return nil, err
		}

		m := newSplitManifest(len(b.basic.Categories))
		for i := range b.basic.Categories {
			c := &b.basic.Categories[i]
			paths := c.Paths()
			var idx []int
			for _, line := range lines {
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				matches := includeByName(paths, line)
				if len(matches) == 0 {
					continue
				}
				if len(matches) > 1 {
					return nil, errors.Wrapf(ErrConsistency, "file name %q of %q is not unique in category %q",
						line, p, c.Name)
				}
				idx = append(idx, matches[0])
			}
			m.Categories = append(m.Categories, subset(c, idx, c.Folders))
		}
		splits[split] = m
	}
	return splits, nil
}

package dsprep

// The manifest representation shared by the filelist builder, the split builder and the bulk
// image tools.

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// File names of the persisted manifests.
const (
	BasicFilesName = "basic_files.json"
	ParametersName = "parameters.json"
)

// SplitName names one of the three split subsets.
type SplitName string

// The split subsets.
const (
	SplitTrain      SplitName = "train"
	SplitValidation SplitName = "validation"
	SplitTest       SplitName = "test"
)

// SplitNames lists the split subsets in the order their files are read.
var SplitNames = []SplitName{SplitTrain, SplitValidation, SplitTest}

// FileName is the manifest file name of the split.
func (s SplitName) FileName() string {
	return string(s) + ".json"
}

// Position is an entry of the position index.
type Position struct {
	GlobalID int // Index of the corresponding entry of the canonical category.
	Before   int // Number of contiguous frames before this one in its sequence.
	After    int // Number of contiguous frames after this one in its sequence.
	LocalID  int // Index of the entry within its own category.
}

// MarshalJSON encodes p as a 4-element array.
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]int{p.GlobalID, p.Before, p.After, p.LocalID})
}

// UnmarshalJSON decodes a 4-element integer array.
func (p *Position) UnmarshalJSON(b []byte) error {
	var a []int
	if err := json.Unmarshal(b, &a); err != nil {
		return errors.Wrap(err, "invalid position")
	}
	if len(a) != 4 {
		return errors.Errorf("invalid position %s: expected 4 values", b)
	}
	*p = Position{GlobalID: a[0], Before: a[1], After: a[2], LocalID: a[3]}
	return nil
}

// ValueKind discriminates the variants of Value.
type ValueKind int

// The kinds of category values.
const (
	PathKind ValueKind = iota
	ScalarKind
	MatrixKind
)

// Value is a single category entry: a file path, a scalar or a matrix.
type Value struct {
	kind   ValueKind
	path   string
	scalar float64
	matrix [][]float64
}

// PathValue returns a path value.
func PathValue(p string) Value {
	return Value{kind: PathKind, path: p}
}

// ScalarValue returns a scalar value.
func ScalarValue(f float64) Value {
	return Value{kind: ScalarKind, scalar: f}
}

// MatrixValue returns a matrix value. The rows are not copied.
func MatrixValue(m [][]float64) Value {
	return Value{kind: MatrixKind, matrix: m}
}

// Kind returns the variant of v.
func (v Value) Kind() ValueKind { return v.kind }

// Path returns the path, or "" if v is not a path.
func (v Value) Path() string { return v.path }

// Scalar returns the scalar, or 0 if v is not a scalar.
func (v Value) Scalar() float64 { return v.scalar }

// Matrix returns the matrix, or nil if v is not a matrix.
func (v Value) Matrix() [][]float64 { return v.matrix }

// MarshalJSON encodes paths as strings, scalars as numbers and matrices as nested arrays.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ScalarKind:
		return json.Marshal(v.scalar)
	case MatrixKind:
		return json.Marshal(v.matrix)
	default:
		return json.Marshal(v.path)
	}
}

// UnmarshalJSON selects the variant from the JSON token type.
func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return errors.New("empty value")
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = PathValue(s)
	case '[':
		var m [][]float64
		if err := json.Unmarshal(b, &m); err != nil {
			return errors.Wrapf(err, "invalid matrix value")
		}
		*v = MatrixValue(m)
	default:
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return errors.Wrapf(err, "invalid value %s", b)
		}
		*v = ScalarValue(f)
	}
	return nil
}

// Filter is the directory name filter of a category. It is stored as a list of substrings.
type Filter []string

// UnmarshalJSON accepts a single string or a list of strings.
func (f *Filter) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = Filter{s}
		return nil
	}
	var l []string
	if err := json.Unmarshal(b, &l); err != nil {
		return errors.Wrap(err, "invalid filter")
	}
	*f = l
	return nil
}

// Category is one named data stream of a manifest, e.g. color or depth.
type Category struct {
	Name      string
	Type      string   // File extension including the dot.
	Filter    Filter   // Only set in the basic manifest.
	Folders   []string // Directories relative to the dataset root.
	Files     []Value
	Positions []Position
	Numeric   []Value // Numeric values parallel to Files, nil for file categories.
}

// IsNumeric reports whether the category holds numeric values instead of files.
func (c *Category) IsNumeric() bool {
	return c.Numeric != nil
}

// Paths returns the file paths of the category. Non-path entries map to "".
func (c *Category) Paths() []string {
	paths := make([]string, len(c.Files))
	for i, f := range c.Files {
		paths[i] = f.Path()
	}
	return paths
}

// IndexOfGlobal returns the index of the first entry with global_id g, or -1.
func (c *Category) IndexOfGlobal(g int) int {
	for i, p := range c.Positions {
		if p.GlobalID == g {
			return i
		}
	}
	return -1
}

// value returns the value exported for entry i: the numeric value for numeric categories of the
// basic manifest, the stored entry otherwise.
func (c *Category) value(i int) Value {
	if c.Numeric != nil {
		return c.Numeric[i]
	}
	return c.Files[i]
}

// clone returns a deep copy of the category header and slices. Matrix rows are shared.
func (c *Category) clone() Category {
	n := Category{Name: c.Name, Type: c.Type}
	if c.Filter != nil {
		n.Filter = append(Filter{}, c.Filter...)
	}
	n.Folders = append([]string{}, c.Folders...)
	n.Files = append([]Value{}, c.Files...)
	n.Positions = append([]Position{}, c.Positions...)
	if c.Numeric != nil {
		n.Numeric = append([]Value{}, c.Numeric...)
	}
	return n
}

// Manifest is the set of categories of a dataset or of one split.
type Manifest struct {
	Categories []Category
	Basic      bool // Whether filters and numerical values are persisted.
}

// Index returns the index of the named category, or -1.
func (m *Manifest) Index(name string) int {
	for i := range m.Categories {
		if m.Categories[i].Name == name {
			return i
		}
	}
	return -1
}

// Category returns the named category, or nil.
func (m *Manifest) Category(name string) *Category {
	if i := m.Index(name); i >= 0 {
		return &m.Categories[i]
	}
	return nil
}

// Names returns the category names in order.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.Categories))
	for i := range m.Categories {
		names[i] = m.Categories[i].Name
	}
	return names
}

// Clone returns a deep copy of m.
func (m *Manifest) Clone() *Manifest {
	n := &Manifest{Basic: m.Basic, Categories: make([]Category, len(m.Categories))}
	for i := range m.Categories {
		n.Categories[i] = m.Categories[i].clone()
	}
	return n
}

// insert places c at index pos.
func (m *Manifest) insert(pos int, c Category) {
	m.Categories = append(m.Categories, Category{})
	copy(m.Categories[pos+1:], m.Categories[pos:])
	m.Categories[pos] = c
}

// remove deletes the named category and reports whether it existed.
func (m *Manifest) remove(name string) bool {
	i := m.Index(name)
	if i < 0 {
		return false
	}
	m.Categories = append(m.Categories[:i], m.Categories[i+1:]...)
	return true
}

// validate checks that the parallel arrays of every category line up.
func (m *Manifest) validate() error {
	for i := range m.Categories {
		c := &m.Categories[i]
		if len(c.Files) != len(c.Positions) {
			return errors.Wrapf(ErrConsistency, "category %q has %d files but %d positions",
				c.Name, len(c.Files), len(c.Positions))
		}
		if c.Numeric != nil && len(c.Numeric) != len(c.Files) {
			return errors.Wrapf(ErrConsistency, "category %q has %d files but %d numerical values",
				c.Name, len(c.Files), len(c.Numeric))
		}
	}
	return nil
}

// manifestJSON is the persisted layout: one parallel array per field.
type manifestJSON struct {
	Names           []string     `json:"names"`
	Types           []string     `json:"types"`
	Filters         []Filter     `json:"filters,omitempty"`
	Folders         [][]string   `json:"folders"`
	Files           [][]Value    `json:"files"`
	Positions       [][]Position `json:"positions"`
	NumericalValues *[][]Value   `json:"numerical_values,omitempty"`
}

// MarshalJSON encodes m in the parallel array layout.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	n := len(m.Categories)
	j := manifestJSON{
		Names:     make([]string, n),
		Types:     make([]string, n),
		Folders:   make([][]string, n),
		Files:     make([][]Value, n),
		Positions: make([][]Position, n),
	}
	var numeric [][]Value
	if m.Basic {
		j.Filters = make([]Filter, n)
		numeric = make([][]Value, n)
		j.NumericalValues = &numeric
	}
	for i := range m.Categories {
		c := &m.Categories[i]
		j.Names[i] = c.Name
		j.Types[i] = c.Type
		j.Folders[i] = orEmpty(c.Folders)
		j.Files[i] = orEmpty(c.Files)
		j.Positions[i] = orEmpty(c.Positions)
		if m.Basic {
			j.Filters[i] = orEmpty(c.Filter)
			numeric[i] = c.Numeric
		}
	}
	return json.Marshal(j)
}

// UnmarshalJSON decodes the parallel array layout.
func (m *Manifest) UnmarshalJSON(b []byte) error {
	var j manifestJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	n := len(j.Names)
	if len(j.Types) != n || len(j.Folders) != n || len(j.Files) != n || len(j.Positions) != n ||
		(j.Filters != nil && len(j.Filters) != n) ||
		(j.NumericalValues != nil && len(*j.NumericalValues) != n) {
		return errors.Wrapf(ErrConsistency, "manifest arrays do not match %d names", n)
	}

	m.Basic = j.Filters != nil || j.NumericalValues != nil
	m.Categories = make([]Category, n)
	for i := 0; i < n; i++ {
		c := Category{
			Name:      j.Names[i],
			Type:      j.Types[i],
			Folders:   j.Folders[i],
			Files:     j.Files[i],
			Positions: j.Positions[i],
		}
		if j.Filters != nil {
			c.Filter = j.Filters[i]
		}
		if j.NumericalValues != nil {
			c.Numeric = (*j.NumericalValues)[i]
		}
		m.Categories[i] = c
	}
	return m.validate()
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// ReadManifest reads and validates the manifest at path.
func ReadManifest(fs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	m := &Manifest{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, errors.Wrapf(err, "failed to parse manifest %q", path)
	}
	return m, nil
}

// WriteManifest writes m to path.
func WriteManifest(fs afero.Fs, path string, m *Manifest) error {
	data, err := json.Marshal(m)
	if err != nil {
		return errors.Wrapf(err, "failed to encode manifest %q", path)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write manifest %q", path)
	}
	return nil
}

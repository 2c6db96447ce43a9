package dsprep

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// valueComparer compares manifest values, whose fields are unexported.
var valueComparer = cmp.Comparer(func(a, b Value) bool {
	return a.Kind() == b.Kind() && a.Path() == b.Path() && a.Scalar() == b.Scalar() &&
		cmp.Equal(a.Matrix(), b.Matrix())
})

func testManifest() *Manifest {
	return &Manifest{
		Basic: true,
		Categories: []Category{
			{
				Name:      "color",
				Type:      ".png",
				Filter:    Filter{"leftImg8bit"},
				Folders:   []string{"leftImg8bit/train/aachen"},
				Files:     []Value{PathValue("leftImg8bit/train/aachen/a.png"), PathValue("leftImg8bit/train/aachen/b.png")},
				Positions: []Position{{0, 0, 1, 0}, {1, 1, 0, 1}},
			},
			{
				Name:      "timestamp",
				Type:      ".txt",
				Filter:    Filter{"timestamp"},
				Folders:   []string{"timestamp/train/aachen"},
				Files:     []Value{PathValue("leftImg8bit/train/aachen/a.png"), PathValue("leftImg8bit/train/aachen/b.png")},
				Positions: []Position{{0, 0, 1, 0}, {1, 1, 0, 1}},
				Numeric:   []Value{ScalarValue(1.5), ScalarValue(2.5)},
			},
			{
				Name:      "camera_intrinsics",
				Type:      ".txt",
				Filter:    Filter{"camera"},
				Folders:   []string{},
				Files:     []Value{PathValue("leftImg8bit/train/aachen/a.png")},
				Positions: []Position{{0, 0, 0, 0}},
				Numeric:   []Value{MatrixValue([][]float64{{1, 0}, {0, 1}})},
			},
		},
	}
}

func TestManifestRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := testManifest()
	require.NoError(t, WriteManifest(fs, "/data/basic_files.json", m))

	got, err := ReadManifest(fs, "/data/basic_files.json")
	require.NoError(t, err)
	if diff := cmp.Diff(m, got, valueComparer); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestManifestLayout(t *testing.T) {
	m := testManifest()
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "filters")
	assert.Contains(t, raw, "numerical_values")
	assert.JSONEq(t, `["color", "timestamp", "camera_intrinsics"]`, string(raw["names"]))
	assert.JSONEq(t, `[[0,0,1,0],[1,1,0,1]]`, string(firstElement(t, raw["positions"])))

	// Split manifests carry neither filters nor numerical values.
	m.Basic = false
	data, err = json.Marshal(m)
	require.NoError(t, err)
	raw = nil
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "filters")
	assert.NotContains(t, raw, "numerical_values")

	var split Manifest
	require.NoError(t, json.Unmarshal(data, &split))
	assert.False(t, split.Basic)
	assert.Nil(t, split.Categories[1].Numeric)
}

func firstElement(t *testing.T, b json.RawMessage) json.RawMessage {
	t.Helper()
	var l []json.RawMessage
	require.NoError(t, json.Unmarshal(b, &l))
	require.NotEmpty(t, l)
	return l[0]
}

func TestFilterAcceptsString(t *testing.T) {
	doc := `{"names": ["a", "b"], "types": [".png", ".png"], "filters": ["x", ["y", "z"]],
		"folders": [[], []], "files": [[], []], "positions": [[], []]}`
	var m Manifest
	require.NoError(t, json.Unmarshal([]byte(doc), &m))
	assert.True(t, m.Basic)
	assert.Equal(t, Filter{"x"}, m.Categories[0].Filter)
	assert.Equal(t, Filter{"y", "z"}, m.Categories[1].Filter)
}

func TestManifestRejectsMismatchedArrays(t *testing.T) {
	for name, doc := range map[string]string{
		"names": `{"names": ["a"], "types": [], "folders": [[]], "files": [[]], "positions": [[]]}`,
		"positions": `{"names": ["a"], "types": [".png"], "folders": [[]], "files": [["a.png"]],
			"positions": [[]]}`,
		"numerical values": `{"names": ["a"], "types": [".png"], "folders": [[]], "files": [["a.png"]],
			"positions": [[[0,0,0,0]]], "numerical_values": [[1, 2]]}`,
	} {
		t.Run(name, func(t *testing.T) {
			var m Manifest
			err := json.Unmarshal([]byte(doc), &m)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConsistency))
		})
	}
}

func TestPositionRequiresFourValues(t *testing.T) {
	var p Position
	assert.Error(t, json.Unmarshal([]byte(`[1, 2, 3]`), &p))
	require.NoError(t, json.Unmarshal([]byte(`[4, 3, 2, 1]`), &p))
	assert.Equal(t, Position{GlobalID: 4, Before: 3, After: 2, LocalID: 1}, p)
}

func TestManifestEditing(t *testing.T) {
	m := testManifest()
	assert.Equal(t, 1, m.Index("timestamp"))
	assert.Equal(t, -1, m.Index("depth"))
	assert.Nil(t, m.Category("depth"))

	c := m.Clone()
	c.Categories[0].Files[0] = PathValue("changed.png")
	assert.Equal(t, "leftImg8bit/train/aachen/a.png", m.Categories[0].Files[0].Path())

	c.insert(1, Category{Name: "depth"})
	assert.Equal(t, []string{"color", "depth", "timestamp", "camera_intrinsics"}, c.Names())
	assert.True(t, c.remove("depth"))
	assert.False(t, c.remove("depth"))
	assert.Equal(t, []string{"color", "timestamp", "camera_intrinsics"}, c.Names())

	color := m.Category("color")
	assert.Equal(t, 1, color.IndexOfGlobal(1))
	assert.Equal(t, -1, color.IndexOfGlobal(7))
	assert.Equal(t, ScalarKind, m.Categories[1].value(0).Kind())
	assert.Equal(t, PathKind, color.value(0).Kind())
}

package dsprep

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackedColor(t *testing.T) {
	assert.Equal(t, RGB{0x12, 0x34, 0x56}, PackedColor(0x123456))
	assert.Equal(t, RGB{255, 255, 255}, PackedColor(0xffffffff))
}

func TestNewLabelTableRejectsTrainIDs(t *testing.T) {
	_, err := NewLabelTable("bad", []Label{{Name: "x", TrainID: 256}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfig))

	_, err = NewLabelTable("bad", []Label{{Name: "x", TrainID: -1}})
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestLabelTableLookups(t *testing.T) {
	table, err := DatasetLabels("cityscapes")
	require.NoError(t, err)
	assert.Equal(t, "cityscapes", table.Name())

	assert.Equal(t, 26, table.ByName()["car"].ID)
	assert.Equal(t, "road", table.ByID()[7].Name)

	// The first label with a train id wins.
	byTrainID := table.ByTrainID()
	assert.Equal(t, "unlabeled", byTrainID[IgnoreTrainID].Name)
	assert.Equal(t, "car", byTrainID[13].Name)

	flat := table.ByCategory()["flat"]
	require.NotEmpty(t, flat)
	assert.Equal(t, "road", flat[0].Name)

	_, err = DatasetLabels("unknown")
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestLabelsAreCopied(t *testing.T) {
	table, err := DatasetLabels("cityscapes")
	require.NoError(t, err)
	labels := table.Labels()
	labels[0].Name = "changed"
	assert.Equal(t, "unlabeled", table.Labels()[0].Name)
}

func TestResolveGroupName(t *testing.T) {
	table, err := DatasetLabels("cityscapes")
	require.NoError(t, err)

	for _, tc := range []struct {
		name string
		want string
		ok   bool
	}{
		{"car", "car", true},
		{"cargroup", "car", true},
		{"roadgroup", "", false}, // Road has no instances.
		{"nothing", "", false},
		{"nothinggroup", "", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := table.ResolveGroupName(tc.name)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecode(t *testing.T) {
	table, err := NewLabelTable("test", []Label{
		{Name: "a", ID: 1, TrainID: 0, Color: RGB{10, 20, 30}},
		{Name: "b", ID: 2, TrainID: 1, Color: RGB{40, 50, 60}},
	})
	require.NoError(t, err)

	got := table.Decode([][]int{{1, 2}, {3, 1}}, DecodeID)
	want := [][]RGB{{{10, 20, 30}, {40, 50, 60}}, {{}, {10, 20, 30}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}

	got = table.Decode([][]int{{0, 1}}, DecodeTrainID)
	want = [][]RGB{{{10, 20, 30}, {40, 50, 60}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode train ids mismatch (-want +got):\n%s", diff)
	}

	mask := image.NewGray(image.Rect(0, 0, 2, 1))
	mask.SetGray(1, 0, color.Gray{Y: 2})
	img := table.DecodeImage(mask, DecodeID)
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 40, G: 50, B: 60, A: 255}, img.RGBAAt(1, 0))
}

func TestTrainIDLookup(t *testing.T) {
	table, err := DatasetLabels("cityscapes")
	require.NoError(t, err)

	t.Run("fromid", func(t *testing.T) {
		l, err := table.TrainIDLookup(FromID)
		require.NoError(t, err)
		assert.Equal(t, uint8(0), l.FromValue(7))
		assert.Equal(t, uint8(13), l.FromValue(26))
		assert.Equal(t, uint8(IgnoreTrainID), l.FromValue(4))
		assert.Equal(t, uint8(IgnoreTrainID), l.FromValue(200))

		img := image.NewGray(image.Rect(0, 0, 2, 1))
		img.SetGray(0, 0, color.Gray{Y: 7})
		img.SetGray(1, 0, color.Gray{Y: 26})
		out := l.Convert(img)
		assert.Equal(t, []uint8{0, 13}, out.Pix)
	})

	t.Run("fromrgb", func(t *testing.T) {
		l, err := table.TrainIDLookup(FromRGB)
		require.NoError(t, err)
		// Car and license plate share a color, the first definition wins.
		assert.Equal(t, uint8(13), l.FromColor(RGB{0, 0, 142}))
		assert.Equal(t, uint8(IgnoreTrainID), l.FromColor(RGB{1, 2, 3}))

		img := image.NewRGBA(image.Rect(0, 0, 1, 1))
		img.SetRGBA(0, 0, color.RGBA{R: 128, G: 64, B: 128, A: 255})
		assert.Equal(t, []uint8{0}, l.Convert(img).Pix)
	})

	t.Run("fromtrainid", func(t *testing.T) {
		l, err := table.TrainIDLookup(FromTrainID)
		require.NoError(t, err)
		assert.Equal(t, uint8(5), l.FromValue(5))
		assert.Equal(t, uint8(IgnoreTrainID), l.FromValue(300))

		img := image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.Black, color.White, color.Gray{Y: 9}})
		img.SetColorIndex(0, 0, 2)
		assert.Equal(t, []uint8{2}, l.Convert(img).Pix)
	})

	_, err = table.TrainIDLookup("fromnothing")
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestLoadLabelSchema(t *testing.T) {
	fs := afero.NewMemMapFs()
	schema := `{
		"labels": [
			{"name": "road", "id": 1, "trainId": 0, "category": "flat", "color": 8405120},
			{"name": "car", "id": 2, "trainId": 1, "hasInstances": true, "color": [0, 0, 142]}
		]
	}`
	require.NoError(t, afero.WriteFile(fs, "/labels.json", []byte(schema), 0644))

	table, err := LoadLabelSchema(fs, "/labels.json")
	require.NoError(t, err)
	assert.Equal(t, "/labels.json", table.Name())

	want := []Label{
		{Name: "road", ID: 1, TrainID: 0, Category: "flat", Color: RGB{128, 64, 128}},
		{Name: "car", ID: 2, TrainID: 1, HasInstances: true, Color: RGB{0, 0, 142}},
	}
	if diff := cmp.Diff(want, table.Labels()); diff != "" {
		t.Errorf("schema labels mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, afero.WriteFile(fs, "/bad.json", []byte(`{"labels": [{"color": "red"}]}`), 0644))
	_, err = LoadLabelSchema(fs, "/bad.json")
	assert.Error(t, err)

	_, err = LoadLabelSchema(fs, "/missing.json")
	assert.Error(t, err)
}

package dsprep

import (
	"context"
	"image"
	"image/color"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSegmentation = "gtFine/train/aachen/aachen_000000_000019_gtFine_labelIds.png"

func trainIDFixture(t *testing.T, fs afero.Fs) {
	t.Helper()
	root := "/data/cityscapes"
	ids := image.NewGray(image.Rect(0, 0, 3, 1))
	ids.SetGray(0, 0, color.Gray{Y: 7})  // road
	ids.SetGray(1, 0, color.Gray{Y: 26}) // car
	ids.SetGray(2, 0, color.Gray{Y: 3})  // out of roi
	writeTestImage(t, fs, root+"/"+testSegmentation, ids)

	writeBasic(t, fs, root,
		fileCategory("color", ".png", "leftImg8bit/train/aachen/aachen_000000_000019_leftImg8bit.png"),
		fileCategory("segmentation", ".png", testSegmentation),
		fileCategory("depth", ".png", "disparity/train/aachen/aachen_000000_000019_disparity.png"))

	b, err := NewSplitBuilder(fs, root)
	require.NoError(t, err)
	require.NoError(t, b.CreateSplits(AllTrain{}))
	require.NoError(t, b.Dump())
	b.SetSplitPath("extra")
	require.NoError(t, b.Dump())
}

func newTestConverter(t *testing.T, fs afero.Fs) *TrainIDConverter {
	t.Helper()
	table, err := DatasetLabels("cityscapes")
	require.NoError(t, err)
	c, err := NewTrainIDConverter(fs, "/data", "cityscapes", table, FromID, "")
	require.NoError(t, err)
	c.Progress = io.Discard
	return c
}

func TestTrainIDConverter(t *testing.T) {
	fs := afero.NewMemMapFs()
	trainIDFixture(t, fs)
	c := newTestConverter(t, fs)
	require.NoError(t, c.Process(context.Background(), []string{"extra"}))

	img, _, err := loadImage(fs, "/data/cityscapes/segmentation_trainid/"+testSegmentation)
	require.NoError(t, err)
	gray, ok := img.(*image.Gray)
	require.True(t, ok)
	assert.Equal(t, []uint8{0, 13, IgnoreTrainID}, gray.Pix)

	for _, p := range []string{"basic_files.json", "train.json"} {
		m, err := ReadManifest(fs, "/data/cityscapes/"+p)
		require.NoError(t, err)
		assert.Equal(t, []string{"color", "segmentation", "segmentation_trainid", "depth"}, m.Names(), p)
		tid := m.Category("segmentation_trainid")
		assert.Equal(t, []string{"segmentation_trainid/" + testSegmentation}, tid.Paths(), p)
		assert.Equal(t, []string{"segmentation_trainid/gtFine/train/aachen"}, tid.Folders, p)
		assert.Equal(t, m.Category("segmentation").Positions, tid.Positions, p)
	}

	basic, err := ReadManifest(fs, "/data/cityscapes/basic_files.json")
	require.NoError(t, err)
	assert.Equal(t, Filter{"segmentation", TrainIDFolder}, basic.Category("segmentation_trainid").Filter)

	extra, err := ReadManifest(fs, "/data/cityscapes_extra/train.json")
	require.NoError(t, err)
	assert.Equal(t, 2, extra.Index("segmentation_trainid"))

	// Converting again replaces the categories.
	require.NoError(t, c.Process(context.Background(), nil))
	basic, err = ReadManifest(fs, "/data/cityscapes/basic_files.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"color", "segmentation", "segmentation_trainid", "depth"}, basic.Names())
}

func TestTrainIDAdaptManifests(t *testing.T) {
	fs := afero.NewMemMapFs()
	trainIDFixture(t, fs)
	c := newTestConverter(t, fs)

	// Nothing has been converted yet.
	require.NoError(t, c.AdaptManifests(nil))
	basic, err := ReadManifest(fs, "/data/cityscapes/basic_files.json")
	require.NoError(t, err)
	assert.Equal(t, -1, basic.Index("segmentation_trainid"))

	require.NoError(t, c.Process(context.Background(), nil))

	// A recreated filelist loses the train id categories, which are restored from the folder.
	writeBasic(t, fs, "/data/cityscapes",
		fileCategory("color", ".png", "leftImg8bit/train/aachen/aachen_000000_000019_leftImg8bit.png"),
		fileCategory("segmentation", ".png", testSegmentation))
	require.NoError(t, c.AdaptManifests([]string{"extra"}))

	basic, err = ReadManifest(fs, "/data/cityscapes/basic_files.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"color", "segmentation", "segmentation_trainid"}, basic.Names())
	extra, err := ReadManifest(fs, "/data/cityscapes_extra/train.json")
	require.NoError(t, err)
	assert.Equal(t, 2, extra.Index("segmentation_trainid"))
}

func TestTrainIDConverterErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeBasic(t, fs, "/data/cityscapes", fileCategory("color", ".png", "leftImg8bit/a.png"))
	c := newTestConverter(t, fs)
	err := c.Process(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrConsistency))

	table, err := DatasetLabels("cityscapes")
	require.NoError(t, err)
	_, err = NewTrainIDConverter(fs, "/data", "cityscapes", table, "fromdepth", "")
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestInsertTrainIDCategories(t *testing.T) {
	m := &Manifest{Categories: []Category{
		{Name: "color"},
		{Name: "segmentation", Files: []Value{PathValue("seg/a.png")}, Positions: []Position{{}}},
		{Name: "segmentation_right", Files: []Value{PathValue("seg_right/a.png")}, Positions: []Position{{}}},
		{Name: "depth"},
	}}
	require.NoError(t, insertTrainIDCategories(m, []string{"segmentation", "segmentation_right"}))
	assert.Equal(t, []string{"color", "segmentation", "segmentation_right", "segmentation_trainid",
		"segmentation_right_trainid", "depth"}, m.Names())
	assert.Equal(t, "segmentation_trainid/seg_right/a.png", m.Category("segmentation_right_trainid").Files[0].Path())
	// Split manifests do not carry filters.
	assert.Nil(t, m.Category("segmentation_trainid").Filter)

	err := insertTrainIDCategories(&Manifest{Categories: []Category{{Name: "color"}}}, []string{"segmentation"})
	assert.True(t, errors.Is(err, ErrConsistency))
}

package dsprep

import (
	"image"
	"path"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestFile creates p with its parent directories.
func writeTestFile(t *testing.T, fs afero.Fs, p string, data []byte) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, afero.WriteFile(fs, p, data, 0644))
}

// touchAll creates empty files at the slash separated paths rels below root.
func touchAll(t *testing.T, fs afero.Fs, root string, rels ...string) {
	t.Helper()
	for _, r := range rels {
		writeTestFile(t, fs, path.Join(root, r), nil)
	}
}

// writeTestImage encodes img at p.
func writeTestImage(t *testing.T, fs afero.Fs, p string, img image.Image) {
	t.Helper()
	require.NoError(t, saveImage(fs, p, img))
}

func cityscapesFixture(t *testing.T, fs afero.Fs, root string) {
	t.Helper()
	touchAll(t, fs, root,
		"leftImg8bit/train/aachen/aachen_000000_000019_leftImg8bit.png",
		"leftImg8bit/train/aachen/aachen_000000_000020_leftImg8bit.png",
		"leftImg8bit/train/bremen/bremen_000000_000005_leftImg8bit.png",
		"rightImg8bit/train/aachen/aachen_000000_000019_rightImg8bit.png",
		"rightImg8bit/train/aachen/aachen_000000_000020_rightImg8bit.png",
		"rightImg8bit/train/bremen/bremen_000000_000005_rightImg8bit.png",
		"disparity/train/aachen/aachen_000000_000019_disparity.png",
		"disparity/train/aachen/aachen_000000_000020_disparity.png",
		"disparity/train/bremen/bremen_000000_000005_disparity.png",
		"gtFine/train/aachen/aachen_000000_000019_gtFine_labelIds.png",
		"gtFine/train/aachen/aachen_000000_000019_gtFine_color.png",
		"gtFine/train/aachen/aachen_000000_000019_gtFine_instanceIds.png",
		"gtFine/train/bremen/bremen_000000_000005_gtFine_labelIds.png",
		// Removed directories are never listed.
		"leftImg8bit_foggy/train/aachen/aachen_000000_000019_leftImg8bit_foggy.png",
	)
}

func TestBuildCityscapes(t *testing.T) {
	fs := afero.NewMemMapFs()
	cityscapesFixture(t, fs, "/data/cityscapes")

	creator, err := NewDatasetCreator(fs, "/data", "cityscapes", false)
	require.NoError(t, err)
	assert.False(t, creator.CheckState())

	m, err := creator.CreateDataset()
	require.NoError(t, err)
	assert.Equal(t, []string{"color", "color_right", "depth", "segmentation"}, m.Names())

	imagePositions := []Position{{0, 0, 1, 0}, {1, 1, 0, 1}, {2, 0, 0, 2}}
	for _, name := range []string{"color", "color_right", "depth"} {
		if diff := cmp.Diff(imagePositions, m.Category(name).Positions); diff != "" {
			t.Errorf("%s positions mismatch (-want +got):\n%s", name, diff)
		}
	}
	assert.Equal(t, []string{
		"leftImg8bit/train/aachen/aachen_000000_000019_leftImg8bit.png",
		"leftImg8bit/train/aachen/aachen_000000_000020_leftImg8bit.png",
		"leftImg8bit/train/bremen/bremen_000000_000005_leftImg8bit.png",
	}, m.Category("color").Paths())
	assert.Contains(t, m.Category("color").Folders, "leftImg8bit/train/aachen")

	seg := m.Category("segmentation")
	assert.Equal(t, []string{
		"gtFine/train/aachen/aachen_000000_000019_gtFine_labelIds.png",
		"gtFine/train/bremen/bremen_000000_000005_gtFine_labelIds.png",
	}, seg.Paths())
	assert.Equal(t, []Position{{0, 0, 0, 0}, {2, 0, 0, 1}}, seg.Positions)

	// The manifest has been written and is now up to date.
	stored, err := ReadManifest(fs, "/data/cityscapes/basic_files.json")
	require.NoError(t, err)
	assert.True(t, stored.Basic)
	assert.Equal(t, m.Names(), stored.Names())
	assert.True(t, creator.CheckState())

	rewriter, err := NewDatasetCreator(fs, "/data", "cityscapes", true)
	require.NoError(t, err)
	assert.False(t, rewriter.CheckState())
}

func TestBuildCityscapesSideData(t *testing.T) {
	fs := afero.NewMemMapFs()
	root := "/data/cityscapes"
	cityscapesFixture(t, fs, root)
	for _, id := range []string{"aachen_000000_000019", "aachen_000000_000020", "bremen_000000_000005"} {
		writeTestFile(t, fs, path.Join(root, "camera/train", firstComponentOf(id), id+"_camera.json"),
			[]byte(`{"intrinsic": {"fx": 2262.5, "fy": 2265.3, "u0": 1096.98, "v0": 513.137}}`))
		writeTestFile(t, fs, path.Join(root, "vehicle/train", firstComponentOf(id), id+"_vehicle.json"),
			[]byte(`{"speed": 3.5}`))
	}

	creator, err := NewDatasetCreator(fs, "/data", "cityscapes", false)
	require.NoError(t, err)
	m, err := creator.CreateDataset()
	require.NoError(t, err)
	assert.Equal(t, []string{"color", "color_right", "depth", "segmentation", "camera_intrinsics",
		"camera_intrinsics_right", "velocity"}, m.Names())

	k := m.Category("camera_intrinsics")
	require.Len(t, k.Numeric, 3)
	assert.Equal(t, [][]float64{
		{2262.5, 0, 1096.98, 0},
		{0, 2265.3, 513.137, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}, k.Numeric[0].Matrix())
	assert.Equal(t, m.Category("color").Paths(), k.Paths())

	v := m.Category("velocity")
	require.Len(t, v.Numeric, 3)
	assert.Equal(t, 3.5, v.Numeric[2].Scalar())
}

// firstComponentOf returns the city of a Cityscapes frame id.
func firstComponentOf(id string) string {
	for i := range id {
		if id[i] == '_' {
			return id[:i]
		}
	}
	return id
}

func TestBuildFailsOnUnmatchedFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	cityscapesFixture(t, fs, "/data/cityscapes")
	touchAll(t, fs, "/data/cityscapes", "gtFine/train/bremen/bremen_000000_000099_gtFine_labelIds.png")

	creator, err := NewDatasetCreator(fs, "/data", "cityscapes", false)
	require.NoError(t, err)
	_, err = creator.CreateDataset()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConsistency))
}

func TestBuildVirtualKITTI(t *testing.T) {
	fs := afero.NewMemMapFs()
	touchAll(t, fs, "/data/virtual_kitti",
		"vkitti_1.3.1_rgb/0001/clone/00000.png",
		"vkitti_1.3.1_rgb/0001/clone/00001.png",
		"vkitti_1.3.1_rgb/0001/clone/00002.png",
		"vkitti_1.3.1_rgb/0002/clone/00000.png",
		"vkitti_1.3.1_depthgt/0001/clone/00001.png",
		"vkitti_1.3.1_depthgt/0001/clone/00002.png",
		"vkitti_1.3.1_scenegt/0002/clone/00000.png",
	)

	creator, err := NewDatasetCreator(fs, "/data", "virtual_kitti", false)
	require.NoError(t, err)
	m, err := creator.CreateDataset()
	require.NoError(t, err)

	assert.Equal(t, []Position{{0, 0, 2, 0}, {1, 1, 1, 1}, {2, 2, 0, 2}, {3, 0, 0, 3}},
		m.Category("color").Positions)
	assert.Equal(t, []Position{{1, 0, 1, 0}, {2, 1, 0, 1}}, m.Category("depth").Positions)
	assert.Equal(t, []Position{{3, 0, 0, 0}}, m.Category("segmentation").Positions)
}

func TestBuildPositionalOffset(t *testing.T) {
	fs := afero.NewMemMapFs()
	touchAll(t, fs, "/data/mapillary",
		"training/ColorImage/a.jpg",
		"training/ColorImage/b.jpg",
		"training/Segmentation/a.png",
		"training/Segmentation/b.png",
		"test/Segmentation/c.png",
	)

	creator, err := NewDatasetCreator(fs, "/data", "mapillary", false)
	require.NoError(t, err)
	m, err := creator.CreateDataset()
	require.NoError(t, err)

	assert.Equal(t, []Position{{0, 0, 0, 0}, {1, 0, 0, 1}}, m.Category("color").Positions)
	assert.Equal(t, []Position{{5000, 0, 0, 5000}, {5001, 0, 0, 5001}}, m.Category("segmentation").Positions)
	assert.Equal(t, []string{"training/Segmentation/a.png", "training/Segmentation/b.png"},
		m.Category("segmentation").Paths())
}

func TestNewDatasetCreatorUnsupported(t *testing.T) {
	_, err := NewDatasetCreator(afero.NewMemMapFs(), "/data", "imagenet", false)
	assert.True(t, errors.Is(err, ErrConfig))

	_, err = NewBuilder(afero.NewMemMapFs(), "/missing")
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestCreateFilelist(t *testing.T) {
	fs := afero.NewMemMapFs()
	touchAll(t, fs, "/root",
		"camera_lidar_semantic/20180807_145028/camera/front_center/B.png",
		"camera_lidar_semantic/20180807_145028/camera/front_center/a.png",
		"camera_lidar_semantic/20180807_145028/label/front_center/a.png",
		"camera_lidar_semantic/20180807_145028/camera/front_center/notes.txt",
	)
	b, err := NewBuilder(fs, "/root")
	require.NoError(t, err)

	// Without the ambiguity rule, "camera" also matches the top level directory.
	folders, files, err := b.CreateFilelist([]string{"camera", "front_center"}, ".png", nil, nil)
	require.NoError(t, err)
	assert.Len(t, folders, 2)
	assert.Len(t, files, 3)

	folders, files, err = b.CreateFilelist([]string{"camera", "front_center"}, ".png", nil,
		[]string{"camera_lidar_semantic"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/root/camera_lidar_semantic/20180807_145028/camera/front_center"}, folders)
	// Sorted ignoring case.
	assert.Equal(t, []string{
		"/root/camera_lidar_semantic/20180807_145028/camera/front_center/a.png",
		"/root/camera_lidar_semantic/20180807_145028/camera/front_center/B.png",
	}, files)
}

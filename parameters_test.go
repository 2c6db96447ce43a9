package dsprep

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParametersFor(t *testing.T) {
	p, err := ParametersFor("cityscapes")
	require.NoError(t, err)
	require.NotNil(t, p.K)
	assert.Equal(t, 1.10, p.K[0][0])
	assert.Equal(t, 0.22, *p.StereoT)
	assert.Equal(t, "fromid", *p.LabelsMode)
	assert.Equal(t, "uint_16_subtract_one", *p.DepthMode)
	assert.Nil(t, p.FlowMode)

	// Changes to the copy do not leak into the index.
	p.K[0][0] = 5
	p.Splits = append(p.Splits, "new_split")
	q, err := ParametersFor("cityscapes")
	require.NoError(t, err)
	assert.Equal(t, 1.10, q.K[0][0])
	assert.Nil(t, q.Splits)

	kitti, err := ParametersFor("kitti")
	require.NoError(t, err)
	assert.Equal(t, KITTISplits, kitti.Splits)
	assert.Equal(t, 0.54, *kitti.StereoT)

	_, err = ParametersFor("unknown")
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestParameterDatasets(t *testing.T) {
	names := ParameterDatasets()
	assert.Len(t, names, len(parameterIndex))
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "cityscapes_demo_video")
}

func TestParametersNullFields(t *testing.T) {
	p, err := ParametersFor("make3d")
	require.NoError(t, err)
	data, err := json.Marshal(&p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"K": null, "stereo_T": null, "labels": null, "labels_mode": null,
		"depth_mode": "uint_16", "flow_mode": null, "splits": null}`, string(data))
}

func TestWriteParameterFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/data/kitti_2015", 0755))

	// Unknown names fail before anything is written.
	err := WriteParameterFiles(fs, "/data", "kitti_2015", "unknown")
	assert.True(t, errors.Is(err, ErrConfig))
	ok, _ := afero.Exists(fs, "/data/kitti_2015/parameters.json")
	assert.False(t, ok)

	require.NoError(t, WriteParameterFiles(fs, "/data"))
	p, err := ReadParameters(fs, "/data/kitti_2015/parameters.json")
	require.NoError(t, err)
	assert.Equal(t, "kitti", *p.FlowMode)
	assert.Equal(t, "kitti", *p.Labels)

	// Datasets without a directory are skipped.
	ok, _ = afero.Exists(fs, "/data/cityscapes/parameters.json")
	assert.False(t, ok)
}

package dsprep

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbed3x3(t *testing.T) {
	m, err := embed3x3([]float64{721.5, 0, 609.6, 0, 721.5, 172.9, 0, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{
		{721.5, 0, 609.6, 0},
		{0, 721.5, 172.9, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}, rows(m))

	_, err = embed3x3([]float64{1, 2, 3})
	assert.Error(t, err)
}

func TestScaleIntrinsics(t *testing.T) {
	k := rows(cameraMatrix(2262.5, 2265.3, 1096.98, 513.137))
	scaled, err := scaleIntrinsics(k, 0.25, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 565.625, scaled[0][0], 1e-9)
	assert.InDelta(t, 274.245, scaled[0][2], 1e-9)
	assert.InDelta(t, 1132.65, scaled[1][1], 1e-9)
	assert.InDelta(t, 256.5685, scaled[1][2], 1e-9)
	assert.Equal(t, []float64{0, 0, 1, 0}, scaled[2])
	// The input is not modified.
	assert.Equal(t, 2262.5, k[0][0])

	_, err = scaleIntrinsics([][]float64{{1}}, 1, 1)
	assert.True(t, errors.Is(err, ErrConsistency))
}

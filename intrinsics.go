package dsprep

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// identity4 returns a 4x4 identity matrix.
func identity4() *mat.Dense {
	return mat.DenseCopyOf(mat.NewDiagDense(4, []float64{1, 1, 1, 1}))
}

// cameraMatrix embeds the focal lengths and the principal point in a 4x4 identity matrix.
func cameraMatrix(fx, fy, cx, cy float64) *mat.Dense {
	m := identity4()
	m.Set(0, 0, fx)
	m.Set(1, 1, fy)
	m.Set(0, 2, cx)
	m.Set(1, 2, cy)
	return m
}

// embed3x3 places the row-major 3x3 matrix k in the upper left corner of a 4x4 identity matrix.
func embed3x3(k []float64) (*mat.Dense, error) {
	if len(k) != 9 {
		return nil, errors.Errorf("expected 9 matrix values, got %d", len(k))
	}
	m := identity4()
	m.Slice(0, 3, 0, 3).(*mat.Dense).Copy(mat.NewDense(3, 3, k))
	return m, nil
}

// rows converts m into nested slices.
func rows(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

// scaleIntrinsics returns k with the first row scaled by sx and the second row by sy.
func scaleIntrinsics(k [][]float64, sx, sy float64) ([][]float64, error) {
	if len(k) != 4 {
		return nil, errors.Wrapf(ErrConsistency, "intrinsic matrix has %d rows, expected 4", len(k))
	}
	data := make([]float64, 0, 16)
	for _, row := range k {
		if len(row) != 4 {
			return nil, errors.Wrapf(ErrConsistency, "intrinsic matrix row has %d values, expected 4", len(row))
		}
		data = append(data, row...)
	}
	var scaled mat.Dense
	scaled.Mul(mat.NewDiagDense(4, []float64{sx, sy, 1, 1}), mat.NewDense(4, 4, data))
	return rows(&scaled), nil
}

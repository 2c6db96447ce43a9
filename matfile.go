package dsprep

// Reader for numeric arrays stored in MATLAB level 5 MAT-files.

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// MAT-file data types.
const (
	miINT8       = 1
	miUINT8      = 2
	miINT16      = 3
	miUINT16     = 4
	miINT32      = 5
	miUINT32     = 6
	miSINGLE     = 7
	miDOUBLE     = 9
	miINT64      = 12
	miUINT64     = 13
	miMATRIX     = 14
	miCOMPRESSED = 15
)

// Numeric array classes range from mxDOUBLE_CLASS to mxUINT64_CLASS.
const (
	mxDoubleClass = 6
	mxUint64Class = 15
)

const matHeaderLen = 128

// MatVariable is a numeric array of a MAT-file. Data is stored in column-major order.
type MatVariable struct {
	Name string
	Dims []int
	Data []float64
}

// ReadMatFile returns the numeric variables of the MAT-file at path. Variables of other classes,
// such as cells, structs and strings, are skipped.
func ReadMatFile(fs afero.Fs, path string) ([]MatVariable, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read mat file %q", path)
	}
	vars, err := parseMat(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "invalid mat file %q", path)
	}
	return vars, nil
}

func parseMat(data []byte) ([]MatVariable, error) {
	if len(data) < matHeaderLen {
		return nil, errors.Wrap(ErrMalformedName, "truncated header")
	}

	var order binary.ByteOrder
	switch string(data[126:128]) {
	case "IM":
		order = binary.LittleEndian
	case "MI":
		order = binary.BigEndian
	default:
		return nil, errors.Wrap(ErrMalformedName, "missing endian indicator")
	}

	r := matReader{order: order}
	return r.elements(data[matHeaderLen:])
}

type matReader struct {
	order binary.ByteOrder
}

// element reads the tag at the start of b and returns the element type, its data and the
// remaining bytes.
func (r matReader) element(b []byte) (typ uint32, data, rest []byte, err error) {
	if len(b) < 8 {
		return 0, nil, nil, errors.Wrap(ErrMalformedName, "truncated element tag")
	}
	typ = r.order.Uint32(b)
	size := r.order.Uint32(b[4:])

	// Small data element: the size lives in the upper half of the type field.
	if typ>>16 != 0 {
		size = typ >> 16
		typ &= 0xffff
		if size > 4 {
			return 0, nil, nil, errors.Wrap(ErrMalformedName, "invalid small element")
		}
		return typ, b[4 : 4+size], b[8:], nil
	}

	end := 8 + int(size)
	if end > len(b) {
		return 0, nil, nil, errors.Wrapf(ErrMalformedName, "element of %d bytes exceeds file", size)
	}
	data = b[8:end]
	if typ != miCOMPRESSED {
		end += (8 - int(size)%8) % 8
		if end > len(b) {
			end = len(b)
		}
	}
	return typ, data, b[end:], nil
}

func (r matReader) elements(b []byte) ([]MatVariable, error) {
	var vars []MatVariable
	for len(b) > 0 {
		typ, data, rest, err := r.element(b)
		if err != nil {
			return nil, err
		}
		b = rest

		switch typ {
		case miCOMPRESSED:
			zr, err := zlib.NewReader(bytes.NewReader(data))
			if err != nil {
				return nil, errors.Wrap(err, "cannot open compressed element")
			}
			inflated, err := io.ReadAll(zr)
			if err != nil {
				return nil, errors.Wrap(err, "cannot inflate compressed element")
			}
			nested, err := r.elements(inflated)
			if err != nil {
				return nil, err
			}
			vars = append(vars, nested...)
		case miMATRIX:
			v, ok, err := r.matrix(data)
			if err != nil {
				return nil, err
			}
			if ok {
				vars = append(vars, v)
			}
		}
	}
	return vars, nil
}

// matrix decodes a miMATRIX element. It reports false for non-numeric arrays.
func (r matReader) matrix(b []byte) (MatVariable, bool, error) {
	var v MatVariable
	if len(b) == 0 {
		return v, false, nil
	}

	typ, flags, b, err := r.element(b)
	if err != nil {
		return v, false, err
	}
	if typ != miUINT32 || len(flags) < 4 {
		return v, false, errors.Wrap(ErrMalformedName, "invalid array flags")
	}
	class := r.order.Uint32(flags) & 0xff

	typ, dims, b, err := r.element(b)
	if err != nil {
		return v, false, err
	}
	if typ != miINT32 {
		return v, false, errors.Wrap(ErrMalformedName, "invalid dimensions")
	}
	for i := 0; i+4 <= len(dims); i += 4 {
		v.Dims = append(v.Dims, int(int32(r.order.Uint32(dims[i:]))))
	}

	_, name, b, err := r.element(b)
	if err != nil {
		return v, false, err
	}
	v.Name = string(name)

	if class < mxDoubleClass || class > mxUint64Class {
		return v, false, nil
	}
	if len(b) == 0 {
		return v, true, nil
	}
	typ, re, _, err := r.element(b)
	if err != nil {
		return v, false, err
	}
	v.Data, err = r.numbers(typ, re)
	if err != nil {
		return v, false, errors.WithMessagef(err, "variable %q", v.Name)
	}
	return v, true, nil
}

// numbers converts the numeric element data of type typ to float64.
func (r matReader) numbers(typ uint32, b []byte) ([]float64, error) {
	var width int
	switch typ {
	case miINT8, miUINT8:
		width = 1
	case miINT16, miUINT16:
		width = 2
	case miINT32, miUINT32, miSINGLE:
		width = 4
	case miDOUBLE, miINT64, miUINT64:
		width = 8
	default:
		return nil, errors.Wrapf(ErrMalformedName, "unsupported data type %d", typ)
	}

	out := make([]float64, len(b)/width)
	for i := range out {
		p := b[i*width:]
		switch typ {
		case miINT8:
			out[i] = float64(int8(p[0]))
		case miUINT8:
			out[i] = float64(p[0])
		case miINT16:
			out[i] = float64(int16(r.order.Uint16(p)))
		case miUINT16:
			out[i] = float64(r.order.Uint16(p))
		case miINT32:
			out[i] = float64(int32(r.order.Uint32(p)))
		case miUINT32:
			out[i] = float64(r.order.Uint32(p))
		case miSINGLE:
			out[i] = float64(math.Float32frombits(r.order.Uint32(p)))
		case miDOUBLE:
			out[i] = math.Float64frombits(r.order.Uint64(p))
		case miINT64:
			out[i] = float64(int64(r.order.Uint64(p)))
		case miUINT64:
			out[i] = float64(r.order.Uint64(p))
		}
	}
	return out, nil
}

package tensor

import (
	"fmt"
	"math"
)

// Dense is a dense n-dimensional array backed by a float64 buffer in
// row-major order. The DataType tag records how consumers should interpret
// the values (sampler statistics are cast to Int64/Bool downstream); the
// backing storage is always float64.
type Dense struct {
	shape  Shape
	stride []int
	dtype  DataType
	data   []float64
}

// NewDense creates a zero-filled Dense with the given shape.
func NewDense(shape Shape) (*Dense, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Dense{
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  Float64,
		data:   make([]float64, shape.NumElements()),
	}, nil
}

// Full creates a Dense with every element set to fill.
func Full(shape Shape, fill float64) (*Dense, error) {
	d, err := NewDense(shape)
	if err != nil {
		return nil, err
	}
	for i := range d.data {
		d.data[i] = fill
	}
	return d, nil
}

// FromSlice creates a Dense from row-major data.
// The slice is copied into the array's buffer.
func FromSlice(data []float64, shape Shape) (*Dense, error) {
	d, err := NewDense(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	copy(d.data, data)
	return d, nil
}

// FromColumnMajor creates a Dense from column-major (Fortran-order) data,
// the layout used by the flat data dump's structure(...) encoding.
func FromColumnMajor(data []float64, shape Shape) (*Dense, error) {
	d, err := NewDense(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	// Column-major strides: stride[0] = 1, stride[i] = stride[i-1]*shape[i-1].
	cm := make([]int, len(shape))
	for i := range shape {
		if i == 0 {
			cm[i] = 1
		} else {
			cm[i] = cm[i-1] * shape[i-1]
		}
	}

	idx := make([]int, len(shape))
	for f, v := range data {
		rem := f
		for i := len(shape) - 1; i >= 0; i-- {
			idx[i] = rem / cm[i]
			rem %= cm[i]
		}
		d.data[d.offset(idx)] = v
	}
	return d, nil
}

// Scalar creates a rank-0 Dense holding a single value.
func Scalar(v float64) *Dense {
	d, _ := NewDense(Shape{})
	d.data[0] = v
	return d
}

// Shape returns the array's shape.
func (d *Dense) Shape() Shape {
	return d.shape
}

// Strides returns the array's row-major memory strides.
func (d *Dense) Strides() []int {
	return d.stride
}

// DType returns the array's data type tag.
func (d *Dense) DType() DataType {
	return d.dtype
}

// Rank returns the number of dimensions.
func (d *Dense) Rank() int {
	return len(d.shape)
}

// NumElements returns the total number of elements.
func (d *Dense) NumElements() int {
	return len(d.data)
}

// Data returns the backing buffer in row-major order.
//
// WARNING: Modifications to the returned slice will modify the array.
func (d *Dense) Data() []float64 {
	return d.data
}

// WithDType returns a view of the array sharing the same buffer with a
// different data type tag.
func (d *Dense) WithDType(dt DataType) *Dense {
	return &Dense{
		shape:  d.shape,
		stride: d.stride,
		dtype:  dt,
		data:   d.data,
	}
}

// At returns the element at the given indices.
func (d *Dense) At(idx ...int) float64 {
	return d.data[d.offset(idx)]
}

// Set stores v at the given indices.
func (d *Dense) Set(v float64, idx ...int) {
	d.data[d.offset(idx)] = v
}

// AsInt64 returns the values truncated to int64, in row-major order.
func (d *Dense) AsInt64() []int64 {
	out := make([]int64, len(d.data))
	for i, v := range d.data {
		out[i] = int64(v)
	}
	return out
}

// AsBool returns the values as booleans (non-zero is true), in row-major order.
// NaN is treated as false.
func (d *Dense) AsBool() []bool {
	out := make([]bool, len(d.data))
	for i, v := range d.data {
		out[i] = v != 0 && !math.IsNaN(v)
	}
	return out
}

func (d *Dense) offset(idx []int) int {
	if len(idx) != len(d.shape) {
		panic(fmt.Sprintf("index rank %d does not match shape %v", len(idx), d.shape))
	}
	off := 0
	for i, ix := range idx {
		if ix < 0 || ix >= d.shape[i] {
			panic(fmt.Sprintf("index %d out of range for axis %d of shape %v", ix, i, d.shape))
		}
		off += ix * d.stride[i]
	}
	return off
}

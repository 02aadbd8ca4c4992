// Copyright 2025 The draws Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense arrays produced by
// the draws converters.
//
// A Dense is a dense n-dimensional float64 array with a shape, row-major
// strides, and a data type tag recording how consumers should interpret the
// values (sampler statistics are tagged Int64 or Bool).
//
// Example:
//
//	d, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v := d.At(1, 0)
package tensor

import (
	"github.com/draws-ml/draws/internal/tensor"
)

// Shape represents the dimensions of a tensor. An empty Shape is a scalar.
type Shape = tensor.Shape

// DataType represents runtime type information for a Dense array.
type DataType = tensor.DataType

// Data type constants.
const (
	Float64 DataType = tensor.Float64
	Int64   DataType = tensor.Int64
	Bool    DataType = tensor.Bool
)

// Dense is a dense n-dimensional array in row-major order.
type Dense = tensor.Dense

// NewDense creates a zero-filled Dense with the given shape.
func NewDense(shape Shape) (*Dense, error) {
	return tensor.NewDense(shape)
}

// Full creates a Dense with every element set to fill.
func Full(shape Shape, fill float64) (*Dense, error) {
	return tensor.Full(shape, fill)
}

// FromSlice creates a Dense from row-major data.
func FromSlice(data []float64, shape Shape) (*Dense, error) {
	return tensor.FromSlice(data, shape)
}

// FromColumnMajor creates a Dense from column-major (Fortran-order) data.
func FromColumnMajor(data []float64, shape Shape) (*Dense, error) {
	return tensor.FromColumnMajor(data, shape)
}

// Scalar creates a rank-0 Dense holding a single value.
func Scalar(v float64) *Dense {
	return tensor.Scalar(v)
}

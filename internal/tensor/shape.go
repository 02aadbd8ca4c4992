package tensor

import "fmt"

// Shape lists a tensor's axis lengths, outermost first. Draw tensors put the
// chain and draw axes in front of the variable's own axes; a zero-length
// Shape is a scalar.
type Shape []int

// NumElements returns the element count implied by the axis lengths. A
// scalar counts as one element.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate rejects axes of zero or negative length.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal reports whether both shapes list the same axis lengths.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i, dim := range s {
		if dim != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy, so a Dense cannot be resized through
// the Shape slice it was built from.
func (s Shape) Clone() Shape {
	return append(Shape(nil), s...)
}

// ComputeStrides returns the row-major element strides: the last axis is
// contiguous and each earlier stride is the product of the lengths after it.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	step := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = step
		step *= s[i]
	}
	return strides
}

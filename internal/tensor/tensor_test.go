package tensor

import (
	"math"
	"testing"
)

// Test helpers

func assertEqualFloat64(t *testing.T, expected, actual float64, msg string) {
	t.Helper()
	if math.Abs(expected-actual) > 1e-12 {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func assertEqualShape(t *testing.T, expected, actual Shape, msg string) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf("%s: expected shape %v, got %v", msg, expected, actual)
	}
}

// Shape tests

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Validate({2,3}) = %v, want nil", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("Validate({2,0}) = nil, want error")
	}
	if err := (Shape{-1}).Validate(); err == nil {
		t.Error("Validate({-1}) = nil, want error")
	}
}

func TestShapeComputeStrides(t *testing.T) {
	tests := []struct {
		shape Shape
		want  []int
	}{
		{Shape{}, []int{}},
		{Shape{4}, []int{1}},
		{Shape{2, 3}, []int{3, 1}},
		{Shape{2, 3, 4}, []int{12, 4, 1}},
	}

	for _, tt := range tests {
		got := tt.shape.ComputeStrides()
		if len(got) != len(tt.want) {
			t.Errorf("%v.ComputeStrides() = %v, want %v", tt.shape, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%v.ComputeStrides() = %v, want %v", tt.shape, got, tt.want)
				break
			}
		}
	}
}

// Dense tests

func TestDenseAtSet(t *testing.T) {
	d, err := NewDense(Shape{2, 3})
	if err != nil {
		t.Fatalf("NewDense: %v", err)
	}

	d.Set(1.5, 0, 1)
	d.Set(-2.0, 1, 2)

	assertEqualFloat64(t, 1.5, d.At(0, 1), "At(0,1)")
	assertEqualFloat64(t, -2.0, d.At(1, 2), "At(1,2)")
	assertEqualFloat64(t, 0.0, d.At(0, 0), "At(0,0) untouched")
}

func TestDenseFull(t *testing.T) {
	d, err := Full(Shape{2, 2}, math.NaN())
	if err != nil {
		t.Fatalf("Full: %v", err)
	}
	for _, v := range d.Data() {
		if !math.IsNaN(v) {
			t.Fatalf("Full(NaN) produced %v", v)
		}
	}
}

func TestDenseFromSlice(t *testing.T) {
	d, err := FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	assertEqualShape(t, Shape{2, 3}, d.Shape(), "shape")
	assertEqualFloat64(t, 4, d.At(1, 0), "row-major At(1,0)")

	if _, err := FromSlice([]float64{1, 2}, Shape{3}); err == nil {
		t.Error("FromSlice with mismatched length: want error")
	}
}

func TestDenseFromColumnMajor(t *testing.T) {
	// Column-major fill of c(1,2,3,4) into dim (2,2) gives [[1,3],[2,4]].
	d, err := FromColumnMajor([]float64{1, 2, 3, 4}, Shape{2, 2})
	if err != nil {
		t.Fatalf("FromColumnMajor: %v", err)
	}
	assertEqualFloat64(t, 1, d.At(0, 0), "At(0,0)")
	assertEqualFloat64(t, 3, d.At(0, 1), "At(0,1)")
	assertEqualFloat64(t, 2, d.At(1, 0), "At(1,0)")
	assertEqualFloat64(t, 4, d.At(1, 1), "At(1,1)")
}

func TestDenseFromColumnMajor3D(t *testing.T) {
	data := make([]float64, 24)
	for i := range data {
		data[i] = float64(i)
	}
	d, err := FromColumnMajor(data, Shape{2, 3, 4})
	if err != nil {
		t.Fatalf("FromColumnMajor: %v", err)
	}
	// Fortran order: first axis varies fastest.
	assertEqualFloat64(t, 0, d.At(0, 0, 0), "At(0,0,0)")
	assertEqualFloat64(t, 1, d.At(1, 0, 0), "At(1,0,0)")
	assertEqualFloat64(t, 2, d.At(0, 1, 0), "At(0,1,0)")
	assertEqualFloat64(t, 6, d.At(0, 0, 1), "At(0,0,1)")
	assertEqualFloat64(t, 23, d.At(1, 2, 3), "At(1,2,3)")
}

func TestDenseScalar(t *testing.T) {
	d := Scalar(5)
	assertEqualShape(t, Shape{}, d.Shape(), "scalar shape")
	assertEqualFloat64(t, 5, d.At(), "scalar value")
	if d.NumElements() != 1 {
		t.Errorf("NumElements() = %d, want 1", d.NumElements())
	}
}

func TestDenseWithDType(t *testing.T) {
	d, _ := FromSlice([]float64{0, 1, 2}, Shape{3})
	b := d.WithDType(Bool)

	if b.DType() != Bool {
		t.Errorf("DType() = %v, want Bool", b.DType())
	}
	if d.DType() != Float64 {
		t.Errorf("original DType() = %v, want Float64", d.DType())
	}

	// Shares the buffer.
	d.Set(7, 0)
	assertEqualFloat64(t, 7, b.At(0), "shared buffer")
}

func TestDenseCasts(t *testing.T) {
	d, _ := FromSlice([]float64{0, 1, 2.7, math.NaN()}, Shape{4})

	ints := d.AsInt64()
	if ints[2] != 2 {
		t.Errorf("AsInt64()[2] = %d, want 2", ints[2])
	}

	bools := d.AsBool()
	want := []bool{false, true, true, false}
	for i := range want {
		if bools[i] != want[i] {
			t.Errorf("AsBool()[%d] = %v, want %v", i, bools[i], want[i])
		}
	}
}

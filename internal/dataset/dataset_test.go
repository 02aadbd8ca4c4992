package dataset

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draws-ml/draws/internal/tensor"
)

func mustDense(t *testing.T, data []float64, shape tensor.Shape) *tensor.Dense {
	t.Helper()
	d, err := tensor.FromSlice(data, shape)
	require.NoError(t, err)
	return d
}

func TestFromMapDefaultDims(t *testing.T) {
	vars := map[string]*tensor.Dense{
		"theta": mustDense(t, make([]float64, 2*3*4), tensor.Shape{2, 3, 4}),
		"mu":    mustDense(t, make([]float64, 2*3), tensor.Shape{2, 3}),
	}

	ds, err := FromMap(vars, nil, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"mu", "theta"}, ds.Names())

	theta, ok := ds.Var("theta")
	require.True(t, ok)
	assert.Equal(t, []string{"chain", "draw", "theta_dim_0"}, theta.Dims)
	assert.Nil(t, theta.Coords)

	mu, ok := ds.Var("mu")
	require.True(t, ok)
	assert.Equal(t, []string{"chain", "draw"}, mu.Dims)
}

func TestFromMapNamedDimsAndCoords(t *testing.T) {
	vars := map[string]*tensor.Dense{
		"theta": mustDense(t, make([]float64, 1*2*3), tensor.Shape{1, 2, 3}),
	}
	dims := map[string][]string{"theta": {"school"}}
	coords := map[string][]string{"school": {"A", "B", "C"}}

	ds, err := FromMap(vars, coords, dims)
	require.NoError(t, err)

	theta, _ := ds.Var("theta")
	assert.Equal(t, []string{"chain", "draw", "school"}, theta.Dims)
	if diff := cmp.Diff(map[string][]string{"school": {"A", "B", "C"}}, theta.Coords); diff != "" {
		t.Errorf("coords mismatch (-want +got):\n%s", diff)
	}
}

func TestFromMapCoordLengthMismatch(t *testing.T) {
	vars := map[string]*tensor.Dense{
		"theta": mustDense(t, make([]float64, 1*2*3), tensor.Shape{1, 2, 3}),
	}
	dims := map[string][]string{"theta": {"school"}}
	coords := map[string][]string{"school": {"A", "B"}}

	_, err := FromMap(vars, coords, dims)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "school")
}

func TestFromMapTooManyDims(t *testing.T) {
	vars := map[string]*tensor.Dense{
		"mu": mustDense(t, make([]float64, 2*3), tensor.Shape{2, 3}),
	}
	dims := map[string][]string{"mu": {"a", "b"}}

	_, err := FromMap(vars, nil, dims)
	require.Error(t, err)
}

func TestFromMapMissingSampleAxes(t *testing.T) {
	vars := map[string]*tensor.Dense{
		"x": mustDense(t, []float64{1, 2, 3}, tensor.Shape{3}),
	}
	_, err := FromMap(vars, nil, nil)
	require.Error(t, err)
}

func TestNewObservedData(t *testing.T) {
	vars := map[string]*tensor.Dense{
		"y": mustDense(t, []float64{1, 2, 3}, tensor.Shape{3}),
	}

	ds, err := New(vars, nil, nil)
	require.NoError(t, err)

	y, ok := ds.Var("y")
	require.True(t, ok)
	assert.Equal(t, []string{"y_dim_0"}, y.Dims)
}

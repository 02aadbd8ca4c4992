// Package dataset provides a minimal labeled-array container: dense tensors
// keyed by variable name, with named dimensions and optional coordinate
// labels per dimension.
package dataset

import (
	"fmt"
	"sort"

	"github.com/draws-ml/draws/internal/tensor"
)

// Reserved dimension names for the leading sample axes.
const (
	DimChain = "chain"
	DimDraw  = "draw"
)

// DataArray is a dense tensor with one name per axis and optional coordinate
// labels for named axes. An axis without coords is implicitly indexed 0..n-1.
type DataArray struct {
	Values *tensor.Dense
	Dims   []string
	Coords map[string][]string
}

// Dataset maps variable names to DataArrays. Iteration order is the sorted
// variable-name order, fixed at construction.
type Dataset struct {
	names []string
	vars  map[string]DataArray
}

// Names returns the variable names in iteration order.
func (ds *Dataset) Names() []string {
	return ds.names
}

// Var returns the named DataArray.
func (ds *Dataset) Var(name string) (DataArray, bool) {
	v, ok := ds.vars[name]
	return v, ok
}

// Len returns the number of variables.
func (ds *Dataset) Len() int {
	return len(ds.names)
}

// FromMap builds a Dataset from sample-shaped tensors, each with shape
// (chain, draw, *rest). The chain and draw dimensions are named implicitly;
// the dims mapping names only the trailing axes of each variable.
func FromMap(vars map[string]*tensor.Dense, coords map[string][]string, dims map[string][]string) (*Dataset, error) {
	return build(vars, coords, dims, true)
}

// New builds a Dataset without implicit sample dimensions, for data that is
// not keyed by chain and draw (observed data).
func New(vars map[string]*tensor.Dense, coords map[string][]string, dims map[string][]string) (*Dataset, error) {
	return build(vars, coords, dims, false)
}

func build(vars map[string]*tensor.Dense, coords map[string][]string, dims map[string][]string, sampleDims bool) (*Dataset, error) {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	ds := &Dataset{
		names: names,
		vars:  make(map[string]DataArray, len(vars)),
	}
	for _, name := range names {
		values := vars[name]
		shape := values.Shape()

		varShape := shape
		lead := []string(nil)
		if sampleDims {
			if len(shape) < 2 {
				return nil, fmt.Errorf("variable %q: shape %v lacks chain and draw axes", name, shape)
			}
			lead = []string{DimChain, DimDraw}
			varShape = shape[2:]
		}

		varDims, varCoords, err := dimsCoords(varShape, name, dims[name], coords)
		if err != nil {
			return nil, err
		}
		ds.vars[name] = DataArray{
			Values: values,
			Dims:   append(lead, varDims...),
			Coords: varCoords,
		}
	}
	return ds, nil
}

// dimsCoords resolves the dimension names and coordinate labels for one
// variable. Unnamed trailing axes default to "<var>_dim_<i>"; coords are
// attached only for named axes that have labels, and label counts must match
// the axis length.
func dimsCoords(shape tensor.Shape, name string, dims []string, coords map[string][]string) ([]string, map[string][]string, error) {
	if len(dims) > len(shape) {
		return nil, nil, fmt.Errorf("variable %q: %d dimension names for %d axes", name, len(dims), len(shape))
	}

	resolved := make([]string, len(shape))
	for i := range shape {
		if i < len(dims) && dims[i] != "" {
			resolved[i] = dims[i]
		} else {
			resolved[i] = fmt.Sprintf("%s_dim_%d", name, i)
		}
	}

	var attached map[string][]string
	for i, dim := range resolved {
		labels, ok := coords[dim]
		if !ok {
			continue
		}
		if len(labels) != shape[i] {
			return nil, nil, fmt.Errorf("variable %q: %d coordinate labels for dimension %q of length %d",
				name, len(labels), dim, shape[i])
		}
		if attached == nil {
			attached = make(map[string][]string)
		}
		attached[dim] = labels
	}
	return resolved, attached, nil
}

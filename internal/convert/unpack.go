package convert

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/draws-ml/draws/internal/stancsv"
	"github.com/draws-ml/draws/internal/tensor"
)

// ErrShapeMismatch reports chains that disagree on draw counts or variable
// layout, or columns of one variable that collide on the same element.
var ErrShapeMismatch = errors.New("chain shape mismatch")

// columnKey is a raw column name decomposed into the logical variable name
// and its 0-based position within that variable.
type columnKey struct {
	col  string
	base string
	loc  []int
}

// parseColumnKey splits a raw column name on the index separator. Indices in
// the file format are 1-based; they are normalized to 0-based here.
func parseColumnKey(col string) (columnKey, error) {
	parts := strings.Split(col, ".")
	key := columnKey{col: col, base: parts[0]}
	for _, part := range parts[1:] {
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return columnKey{}, fmt.Errorf("%w: column %q: bad index segment %q",
				stancsv.ErrInvalidFormat, col, part)
		}
		key.loc = append(key.loc, n-1)
	}
	return key, nil
}

// unpackTables rebuilds dense per-variable tensors from one table per chain.
// Columns sharing a base name are gathered into one tensor of shape
// (chains, draws, *dims), dims being the element-wise maximum index + 1.
// All tables must agree on draw count and column set.
func unpackTables(tables []*stancsv.Table) (map[string]*tensor.Dense, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: no chains", ErrShapeMismatch)
	}
	chains := len(tables)
	draws := tables[0].Rows()
	columns := tables[0].Columns

	for i, tbl := range tables[1:] {
		if tbl.Rows() != draws {
			return nil, fmt.Errorf("%w: chain 1 has %d draws, chain %d has %d",
				ErrShapeMismatch, draws, i+2, tbl.Rows())
		}
		if len(tbl.Columns) != len(columns) {
			return nil, fmt.Errorf("%w: chain 1 has %d columns, chain %d has %d",
				ErrShapeMismatch, len(columns), i+2, len(tbl.Columns))
		}
	}

	// Group columns by base name, preserving first-appearance order.
	var order []string
	groups := make(map[string][]columnKey)
	for _, col := range columns {
		key, err := parseColumnKey(col)
		if err != nil {
			return nil, err
		}
		if _, seen := groups[key.base]; !seen {
			order = append(order, key.base)
		}
		groups[key.base] = append(groups[key.base], key)
	}

	out := make(map[string]*tensor.Dense, len(order))
	for _, base := range order {
		keys := groups[base]
		dims, err := groupDims(base, keys)
		if err != nil {
			return nil, err
		}

		shape := append(tensor.Shape{chains, draws}, dims...)
		dense, err := tensor.Full(shape, math.NaN())
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", base, err)
		}
		stride := dense.Strides()
		data := dense.Data()

		for _, key := range keys {
			elem := 0
			for k, ix := range key.loc {
				elem += ix * stride[2+k]
			}
			for chain, tbl := range tables {
				values := tbl.Col(key.col)
				if values == nil {
					return nil, fmt.Errorf("%w: chain %d lacks column %q",
						ErrShapeMismatch, chain+1, key.col)
				}
				off := chain*stride[0] + elem
				for d, v := range values {
					data[off+d*stride[1]] = v
				}
			}
		}
		out[base] = dense
	}
	return out, nil
}

// groupDims computes a variable's trailing dimensions from its column keys.
// Every column must carry the same index rank, and no two columns may
// address the same element.
func groupDims(base string, keys []columnKey) (tensor.Shape, error) {
	rank := len(keys[0].loc)
	dims := make(tensor.Shape, rank)
	seen := make(map[string]string, len(keys))

	for _, key := range keys {
		if len(key.loc) != rank {
			return nil, fmt.Errorf("%w: variable %q: columns %q and %q have different index ranks",
				ErrShapeMismatch, base, keys[0].col, key.col)
		}
		id := fmt.Sprint(key.loc)
		if other, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: variable %q: columns %q and %q address the same element",
				ErrShapeMismatch, base, other, key.col)
		}
		seen[id] = key.col
		for k, ix := range key.loc {
			if ix+1 > dims[k] {
				dims[k] = ix + 1
			}
		}
	}
	return dims, nil
}

package convert

import (
	"strings"

	"github.com/draws-ml/draws/internal/dataset"
	"github.com/draws-ml/draws/internal/stancsv"
	"github.com/draws-ml/draws/internal/tensor"
)

// logLikelihoodName is the user-facing variable name the pointwise
// log-likelihood block is renamed to inside sample_stats.
const logLikelihoodName = "log_likelihood"

// statsCasts maps renamed sampler statistics to the data types they are
// cast to. Everything else stays float64.
var statsCasts = map[string]tensor.DataType{
	"diverging":  tensor.Bool,
	"n_leapfrog": tensor.Int64,
	"treedepth":  tensor.Int64,
}

// sampleStatsDataset builds the sample_stats group: the stats columns with
// their reserved suffix stripped, known columns cast, and the optional
// log-likelihood block merged in from the posterior draws.
func (c *converter) sampleStatsDataset() (*dataset.Dataset, error) {
	if c.stats == nil {
		return nil, nil
	}

	coords := copyMeta(c.opts.Coords)
	dims := copyMeta(c.opts.Dims)
	tables := c.stats

	if ll := c.opts.LogLikelihood; ll != "" && c.sample != nil {
		var llCols []string
		for _, col := range c.sample[0].Columns {
			if baseName(col) == ll {
				llCols = append(llCols, col)
			}
		}
		if len(llCols) > 0 {
			merged := make([]*stancsv.Table, len(tables))
			for i, tbl := range tables {
				for _, col := range llCols {
					tbl = tbl.WithColumn(logLikelihoodName+col[len(ll):], c.sample[i].Col(col))
				}
				merged[i] = tbl
			}
			tables = merged
			rekey(dims, ll, logLikelihoodName)
			rekey(coords, ll, logLikelihoodName)
		}
	}

	renamed := make([]*stancsv.Table, len(tables))
	for i, tbl := range tables {
		renamed[i] = tbl.Renamed(renameStatsColumn)
	}
	vars, err := unpackTables(renamed)
	if err != nil {
		return nil, err
	}
	for name, dt := range statsCasts {
		if v, ok := vars[name]; ok {
			vars[name] = v.WithDType(dt)
		}
	}
	return dataset.FromMap(vars, coords, dims)
}

// renameStatsColumn strips the reserved stats suffix from a column's base
// name and renames the sampler-internal divergence flag to its user-facing
// name. Index segments are preserved.
func renameStatsColumn(col string) string {
	base, rest, indexed := strings.Cut(col, ".")
	name := strings.TrimSuffix(base, "__")
	if name == "divergent" {
		name = "diverging"
	}
	if indexed {
		return name + "." + rest
	}
	return name
}

func copyMeta(m map[string][]string) map[string][]string {
	if m == nil {
		return nil
	}
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func rekey(m map[string][]string, from, to string) {
	if v, ok := m[from]; ok {
		delete(m, from)
		m[to] = v
	}
}

// Package convert turns parsed sampler output into named collections of
// labeled tensor datasets: posterior draws, sampler statistics, posterior
// predictive and prior draws, and observed data.
package convert

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/draws-ml/draws/internal/dataset"
	"github.com/draws-ml/draws/internal/rdump"
	"github.com/draws-ml/draws/internal/stancsv"
	"github.com/draws-ml/draws/internal/tensor"
)

// Group labels of the final collection.
const (
	GroupPosterior           = "posterior"
	GroupSampleStats         = "sample_stats"
	GroupPosteriorPredictive = "posterior_predictive"
	GroupPrior               = "prior"
	GroupObservedData        = "observed_data"
)

// Options configures a conversion. Path lists accept glob patterns. Every
// group is optional: a group whose required inputs are absent is omitted
// from the result, not an error.
type Options struct {
	// Output lists the sampler output CSV files; each file may stack
	// several chains. Required for the posterior and sample_stats groups.
	Output []string

	// Prior lists prior-sampling output CSV files.
	Prior []string

	// PosteriorPredictive names posterior predictive variables inside
	// Output, or, when the entries end in ".csv", separate files holding
	// the predictive draws.
	PosteriorPredictive []string

	// ObservedData is the path to a flat data dump.
	ObservedData string

	// ObservedDataVar restricts observed data to the named variables.
	ObservedDataVar []string

	// LogLikelihood names the pointwise log-likelihood variable inside
	// Output. It is excluded from the posterior and merged into
	// sample_stats under the name "log_likelihood".
	LogLikelihood string

	// Coords maps dimension names to coordinate labels.
	Coords map[string][]string

	// Dims maps variable names to their dimension names.
	Dims map[string][]string

	// Logger receives file-discovery messages. Defaults to a no-op logger.
	Logger *zap.Logger
}

// InferenceData is the converted result: one labeled dataset per available
// group.
type InferenceData struct {
	Posterior           *dataset.Dataset
	SampleStats         *dataset.Dataset
	PosteriorPredictive *dataset.Dataset
	Prior               *dataset.Dataset
	ObservedData        *dataset.Dataset
}

// Groups returns the labels of the populated groups in canonical order.
func (id *InferenceData) Groups() []string {
	var groups []string
	for _, g := range []struct {
		label string
		ds    *dataset.Dataset
	}{
		{GroupPosterior, id.Posterior},
		{GroupSampleStats, id.SampleStats},
		{GroupPosteriorPredictive, id.PosteriorPredictive},
		{GroupPrior, id.Prior},
		{GroupObservedData, id.ObservedData},
	} {
		if g.ds != nil {
			groups = append(groups, g.label)
		}
	}
	return groups
}

// Group returns the dataset stored under a group label.
func (id *InferenceData) Group(label string) (*dataset.Dataset, bool) {
	switch label {
	case GroupPosterior:
		return id.Posterior, id.Posterior != nil
	case GroupSampleStats:
		return id.SampleStats, id.SampleStats != nil
	case GroupPosteriorPredictive:
		return id.PosteriorPredictive, id.PosteriorPredictive != nil
	case GroupPrior:
		return id.Prior, id.Prior != nil
	case GroupObservedData:
		return id.ObservedData, id.ObservedData != nil
	default:
		return nil, false
	}
}

// FromCmdStan converts sampler output files into an InferenceData. Parse
// errors are fatal; missing optional inputs only omit their groups.
func FromCmdStan(opts Options) (*InferenceData, error) {
	c, err := newConverter(opts)
	if err != nil {
		return nil, err
	}
	return c.convert()
}

// converter holds the per-chain draw tables shared by the group builders.
type converter struct {
	opts   Options
	log    *zap.Logger
	sample []*stancsv.Table
	stats  []*stancsv.Table
}

func newConverter(opts Options) (*converter, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	c := &converter{opts: opts, log: log}

	paths, err := expandPaths(opts.Output, "output", log)
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		segments, err := stancsv.ReadOutput(path)
		if err != nil {
			return nil, err
		}
		for _, seg := range segments {
			c.sample = append(c.sample, seg.Sample)
			c.stats = append(c.stats, seg.Stats)
		}
	}
	return c, nil
}

func (c *converter) convert() (*InferenceData, error) {
	id := &InferenceData{}
	var err error

	if id.Posterior, err = c.posteriorDataset(); err != nil {
		return nil, fmt.Errorf("%s: %w", GroupPosterior, err)
	}
	if id.SampleStats, err = c.sampleStatsDataset(); err != nil {
		return nil, fmt.Errorf("%s: %w", GroupSampleStats, err)
	}
	if id.PosteriorPredictive, err = c.posteriorPredictiveDataset(); err != nil {
		return nil, fmt.Errorf("%s: %w", GroupPosteriorPredictive, err)
	}
	if id.Prior, err = c.priorDataset(); err != nil {
		return nil, fmt.Errorf("%s: %w", GroupPrior, err)
	}
	if id.ObservedData, err = c.observedDataDataset(); err != nil {
		return nil, fmt.Errorf("%s: %w", GroupObservedData, err)
	}
	return id, nil
}

// posteriorDataset builds the posterior group, excluding variables claimed
// by the posterior predictive and log-likelihood inputs.
func (c *converter) posteriorDataset() (*dataset.Dataset, error) {
	if c.sample == nil {
		return nil, nil
	}

	excluded := make(map[string]bool)
	for _, entry := range c.opts.PosteriorPredictive {
		if !isCSVPath(entry) {
			excluded[entry] = true
		}
	}
	if c.opts.LogLikelihood != "" {
		excluded[c.opts.LogLikelihood] = true
	}

	var valid []string
	for _, col := range c.sample[0].Columns {
		if !excluded[baseName(col)] {
			valid = append(valid, col)
		}
	}

	tables := make([]*stancsv.Table, len(c.sample))
	for i, tbl := range c.sample {
		tables[i] = tbl.Select(valid)
	}
	vars, err := unpackTables(tables)
	if err != nil {
		return nil, err
	}
	return dataset.FromMap(vars, c.opts.Coords, c.opts.Dims)
}

// posteriorPredictiveDataset builds the posterior_predictive group, either
// from separate CSV files or from columns of the posterior draws. In both
// forms the group exists only alongside a posterior.
func (c *converter) posteriorPredictiveDataset() (*dataset.Dataset, error) {
	ppred := c.opts.PosteriorPredictive
	if c.sample == nil || len(ppred) == 0 {
		return nil, nil
	}

	if isCSVPath(ppred[0]) {
		tables, err := c.readSampleTables(ppred, GroupPosteriorPredictive)
		if err != nil {
			return nil, err
		}
		if len(tables) == 0 {
			return nil, nil
		}
		vars, err := unpackTables(tables)
		if err != nil {
			return nil, err
		}
		return dataset.FromMap(vars, c.opts.Coords, c.opts.Dims)
	}

	names := make(map[string]bool, len(ppred))
	for _, name := range ppred {
		names[name] = true
	}
	var cols []string
	for _, col := range c.sample[0].Columns {
		if names[baseName(col)] {
			cols = append(cols, col)
		}
	}
	tables := make([]*stancsv.Table, len(c.sample))
	for i, tbl := range c.sample {
		tables[i] = tbl.Select(cols)
	}
	vars, err := unpackTables(tables)
	if err != nil {
		return nil, err
	}
	return dataset.FromMap(vars, c.opts.Coords, c.opts.Dims)
}

// priorDataset builds the prior group from its own output files.
func (c *converter) priorDataset() (*dataset.Dataset, error) {
	if c.sample == nil || len(c.opts.Prior) == 0 {
		return nil, nil
	}
	tables, err := c.readSampleTables(c.opts.Prior, GroupPrior)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, nil
	}
	vars, err := unpackTables(tables)
	if err != nil {
		return nil, err
	}
	return dataset.FromMap(vars, c.opts.Coords, c.opts.Dims)
}

// observedDataDataset builds the observed_data group from the flat data
// dump, optionally restricted to requested variables.
func (c *converter) observedDataDataset() (*dataset.Dataset, error) {
	if c.sample == nil || c.opts.ObservedData == "" {
		return nil, nil
	}
	store, err := rdump.ParseFile(c.opts.ObservedData)
	if err != nil {
		return nil, err
	}

	requested := make(map[string]bool, len(c.opts.ObservedDataVar))
	for _, name := range c.opts.ObservedDataVar {
		requested[name] = true
	}

	vars := make(map[string]*tensor.Dense)
	for _, name := range store.Names() {
		if len(requested) > 0 && !requested[name] {
			continue
		}
		v, _ := store.Var(name)
		vars[name] = atLeast1D(v)
	}
	return dataset.New(vars, c.opts.Coords, c.opts.Dims)
}

// readSampleTables parses a list of output files and collects the sample
// table of every chain, in file order.
func (c *converter) readSampleTables(entries []string, input string) ([]*stancsv.Table, error) {
	paths, err := expandPaths(entries, input, c.log)
	if err != nil {
		return nil, err
	}
	var tables []*stancsv.Table
	for _, path := range paths {
		segments, err := stancsv.ReadOutput(path)
		if err != nil {
			return nil, err
		}
		for _, seg := range segments {
			tables = append(tables, seg.Sample)
		}
	}
	return tables, nil
}

// baseName returns the logical variable name of a raw column name.
func baseName(col string) string {
	base, _, _ := strings.Cut(col, ".")
	return base
}

func isCSVPath(entry string) bool {
	return strings.HasSuffix(strings.ToLower(entry), ".csv")
}

// atLeast1D promotes a scalar to a one-element vector; higher ranks pass
// through unchanged.
func atLeast1D(v *tensor.Dense) *tensor.Dense {
	if v.Rank() > 0 {
		return v
	}
	out, _ := tensor.FromSlice(v.Data(), tensor.Shape{1})
	return out
}

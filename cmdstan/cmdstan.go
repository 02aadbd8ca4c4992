// Copyright 2025 The draws Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cmdstan provides the public API for converting sampler output
// files into labeled tensor datasets.
//
// Example:
//
//	id, err := cmdstan.FromCmdStan(cmdstan.Options{
//	    Output:       []string{"output_*.csv"},
//	    ObservedData: "data.R",
//	    Dims:         map[string][]string{"theta": {"school"}},
//	    Coords:       map[string][]string{"school": {"A", "B", "C"}},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, group := range id.Groups() {
//	    ds, _ := id.Group(group)
//	    fmt.Println(group, ds.Names())
//	}
package cmdstan

import (
	"github.com/draws-ml/draws/internal/convert"
	"github.com/draws-ml/draws/internal/dataset"
)

// Options configures a conversion. See the field documentation for which
// inputs each group requires; a group whose inputs are absent is omitted
// from the result, not an error.
type Options = convert.Options

// InferenceData is the converted result: one labeled dataset per available
// group.
type InferenceData = convert.InferenceData

// Dataset is a labeled collection of named dense arrays.
type Dataset = dataset.Dataset

// DataArray is a dense array with named dimensions and optional coordinate
// labels.
type DataArray = dataset.DataArray

// Meta is the coordinate and dimension naming for converted variables,
// loadable from a YAML file.
type Meta = convert.Meta

// Group labels of the final collection.
const (
	GroupPosterior           = convert.GroupPosterior
	GroupSampleStats         = convert.GroupSampleStats
	GroupPosteriorPredictive = convert.GroupPosteriorPredictive
	GroupPrior               = convert.GroupPrior
	GroupObservedData        = convert.GroupObservedData
)

// Shape and layout errors.
var (
	ErrShapeMismatch = convert.ErrShapeMismatch
)

// FromCmdStan converts sampler output files into an InferenceData.
func FromCmdStan(opts Options) (*InferenceData, error) {
	return convert.FromCmdStan(opts)
}

// LoadMeta reads coordinate and dimension naming from a YAML file.
func LoadMeta(path string) (*Meta, error) {
	return convert.LoadMeta(path)
}

// Copyright 2025 The draws Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package rdump provides the public API for parsing the flat key-value data
// dump format (scalars, c(...) vectors, and structure(...) arrays).
//
// Example:
//
//	store, err := rdump.ParseFile("data.R")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	y, ok := store.Var("y")
package rdump

import (
	"io"

	"github.com/draws-ml/draws/internal/rdump"
)

// ErrParse reports a malformed data statement.
var ErrParse = rdump.ErrParse

// Store maps variable names to tensors, preserving file order.
type Store = rdump.Store

// Parse reads a flat data dump from r.
func Parse(r io.Reader) (*Store, error) {
	return rdump.Parse(r)
}

// ParseFile parses a flat data dump from disk.
func ParseFile(path string) (*Store, error) {
	return rdump.ParseFile(path)
}

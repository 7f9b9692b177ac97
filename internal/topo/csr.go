// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package topo implements the CSR-style connectivity arrays of spec.md §3:
// cells/faces/nodes/subcells relations, all as (offsets, flat) pairs, plus
// the fixed faces->cells pair list. Topology is built once from the input
// mesh and is immutable for the run (spec.md §3 "Lifecycle").
package topo

import "github.com/rocdat/hal3d/internal/herr"

// CSR is a reusable compressed-sparse-row connectivity container. Its
// iteration is safe to parallelize by the outer index because each row is a
// disjoint, read-only slice of Flat (spec.md §9 "Connectivity arrays as
// CSR").
type CSR struct {
	Offsets []int // len N+1
	Flat    []int
}

// NewCSR builds a CSR from a slice of per-row index lists.
func NewCSR(rows [][]int) CSR {
	offs := make([]int, len(rows)+1)
	n := 0
	for i, r := range rows {
		offs[i] = n
		n += len(r)
	}
	offs[len(rows)] = n
	flat := make([]int, 0, n)
	for _, r := range rows {
		flat = append(flat, r...)
	}
	return CSR{Offsets: offs, Flat: flat}
}

// NumRows returns the number of rows (N).
func (c CSR) NumRows() int { return len(c.Offsets) - 1 }

// Row returns the flat slice for row i.
func (c CSR) Row(i int) []int { return c.Flat[c.Offsets[i]:c.Offsets[i+1]] }

// Count returns the number of elements in row i.
func (c CSR) Count(i int) int { return c.Offsets[i+1] - c.Offsets[i] }

// Validate checks that every flat index is within [0, numCols).
func (c CSR) Validate(numCols int) error {
	for _, v := range c.Flat {
		if v < 0 || v >= numCols {
			return herr.New(herr.MeshInvalid, "topo.CSR", "flat index %d out of range [0,%d)", v, numCols)
		}
	}
	return nil
}

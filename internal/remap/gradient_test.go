// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remap

import (
	"math"
	"testing"

	"github.com/rocdat/hal3d/internal/geom"
	"github.com/rocdat/hal3d/internal/topo"
)

// buildTwoCellLine returns two hexahedra sharing one face, the minimal mesh
// giving corner subcells a handful of stencil neighbours to reconstruct
// from (mirrors internal/topo's own buildUnitCube fixture).
func buildTwoCellLine(t *testing.T) *topo.Topology {
	cellsToNodes := [][]int{
		{0, 1, 2, 3, 4, 5, 6, 7},
		{4, 5, 6, 7, 8, 9, 10, 11},
	}
	facesToNodes := [][]int{
		{4, 5, 6, 7},
		{0, 1, 2, 3},
		{0, 1, 5, 4},
		{1, 2, 6, 5},
		{2, 3, 7, 6},
		{3, 0, 4, 7},
		{8, 9, 10, 11},
		{4, 5, 9, 8},
		{5, 6, 10, 9},
		{6, 7, 11, 10},
		{7, 4, 8, 11},
	}
	cellsToFaces := [][]int{
		{0, 1, 2, 3, 4, 5},
		{0, 6, 7, 8, 9, 10},
	}
	facesToCells := []topo.FacePair{
		{0, 1}, {0, -1}, {0, -1}, {0, -1}, {0, -1}, {0, -1},
		{1, -1}, {1, -1}, {1, -1}, {1, -1}, {1, -1},
	}
	tp, err := topo.Build(12, 11, 2, cellsToNodes, cellsToFaces, facesToNodes, facesToCells, nil)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	return tp
}

func unitCubePositions() []geom.Vec3 {
	return []geom.Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
		{0, 0, 2}, {1, 0, 2}, {1, 1, 2}, {0, 1, 2},
	}
}

func TestBuildInversesFallsBackOnDegenerateStencil(t *testing.T) {
	tp := buildTwoCellLine(t)
	ns := tp.NumSubcells()
	// all subcells collapsed to the same point: every integral/volume is
	// zero, so every coefficient matrix is singular.
	g := Geometry{
		Vol:      make([]float64, ns),
		IntX:     make([]float64, ns),
		IntY:     make([]float64, ns),
		IntZ:     make([]float64, ns),
		Centroid: make([]geom.Vec3, ns),
	}
	inv := BuildInverses(tp, g, nil)
	for i := 0; i < ns; i++ {
		if inv.valid[i] {
			t.Fatalf("subcell %d: expected non-invertible matrix with zero stencil geometry", i)
		}
		grad := inv.Gradient(tp, g, make([]float64, ns), i)
		if grad != (geom.Vec3{}) {
			t.Fatalf("subcell %d: expected zero-gradient fallback, got %+v", i, grad)
		}
	}
}

func TestLimitGradientClampsToStencilRange(t *testing.T) {
	tp := buildTwoCellLine(t)
	ns := tp.NumSubcells()
	g := Geometry{Centroid: make([]geom.Vec3, ns)}
	for i := 0; i < ns; i++ {
		g.Centroid[i] = geom.Vec3{X: float64(i), Y: 0, Z: 0}
	}
	q := make([]float64, ns)
	for i := range q {
		q[i] = 1.0
	}
	// a wildly large raw gradient should be scaled down to zero extrapolation
	// error when every neighbour has the same value as self (qmin==qmax==q).
	grad := geom.Vec3{X: 1000, Y: 0, Z: 0}
	limited := LimitGradient(tp, g, q, 0, grad)
	if math.Abs(limited.X) > 1e-9 {
		t.Fatalf("expected limiter to zero the gradient when stencil values are uniform, got %+v", limited)
	}
}

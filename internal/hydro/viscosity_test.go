// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"testing"

	"github.com/rocdat/hal3d/internal/geom"
	"github.com/rocdat/hal3d/internal/profile"
)

// TestArtificialViscosityNoOpOnExpandingEdges checks spec.md §4.5: an
// edge whose relative velocity is expanding (dv.s > 0) receives no
// compressive viscous force.
func TestArtificialViscosityNoOpOnExpandingEdges(t *testing.T) {
	b := buildTestBlock(t, 2, 2, 2)
	cfg := Config{Gamma: 1.4, ViscCoeff1: 0.5, ViscCoeff2: 1.25}

	nodalMass := make([]float64, b.Topo.NumNodes)
	nodalVol := make([]float64, b.Topo.NumNodes)
	nodalCs := make([]float64, b.Topo.NumNodes)
	vel := make([]geom.Vec3, b.Topo.NumNodes)
	cellCentroids := make([]geom.Vec3, b.Topo.NumCells)
	force := make([]geom.Vec3, b.Topo.NumNodes)

	for n := range nodalMass {
		nodalMass[n] = 1.0
		nodalVol[n] = 1.0
		nodalCs[n] = 1.0
	}
	for c := 0; c < b.Topo.NumCells; c++ {
		row := b.Topo.CellsToNodes.Row(c)
		var sum geom.Vec3
		for _, n := range row {
			sum = sum.Add(b.NodePos[n])
		}
		cellCentroids[c] = sum.Scale(1.0 / float64(len(row)))
	}
	// uniform outward expansion: every node moves away from the block
	// centroid, so every edge's relative velocity is expanding.
	center := geom.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	for n, p := range b.NodePos {
		vel[n] = p.Sub(center)
	}

	ApplyArtificialViscosity(b.Topo, cfg, b.NodePos, vel, cellCentroids, nodalMass, nodalVol, nodalCs, nil, force, nil)

	for n, f := range force {
		if f.Norm() > 1e-9 {
			t.Fatalf("node %d: expected zero viscous force under pure expansion, got %+v", n, f)
		}
	}
}

// TestArtificialViscosityActivatesOnCompression checks that a uniform
// inward (compressive) field produces non-zero viscous forces somewhere in
// the mesh.
func TestArtificialViscosityActivatesOnCompression(t *testing.T) {
	b := buildTestBlock(t, 2, 2, 2)
	cfg := Config{Gamma: 1.4, ViscCoeff1: 0.5, ViscCoeff2: 1.25}

	nodalMass := make([]float64, b.Topo.NumNodes)
	nodalVol := make([]float64, b.Topo.NumNodes)
	nodalCs := make([]float64, b.Topo.NumNodes)
	vel := make([]geom.Vec3, b.Topo.NumNodes)
	cellCentroids := make([]geom.Vec3, b.Topo.NumCells)
	force := make([]geom.Vec3, b.Topo.NumNodes)

	for n := range nodalMass {
		nodalMass[n] = 1.0
		nodalVol[n] = 1.0
		nodalCs[n] = 1.0
	}
	for c := 0; c < b.Topo.NumCells; c++ {
		row := b.Topo.CellsToNodes.Row(c)
		var sum geom.Vec3
		for _, n := range row {
			sum = sum.Add(b.NodePos[n])
		}
		cellCentroids[c] = sum.Scale(1.0 / float64(len(row)))
	}
	center := geom.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	for n, p := range b.NodePos {
		vel[n] = center.Sub(p) // inward: compressive
	}

	ApplyArtificialViscosity(b.Topo, cfg, b.NodePos, vel, cellCentroids, nodalMass, nodalVol, nodalCs, nil, force, nil)

	var total float64
	for _, f := range force {
		total += f.Norm()
	}
	if total <= 0 {
		t.Fatalf("expected non-zero viscous force under uniform compression")
	}
}

// TestArtificialViscosityCountsCompressiveEdges checks that prof records
// ViscosityEdge hits when a uniform compressive field gives edges a viscous
// force.
func TestArtificialViscosityCountsCompressiveEdges(t *testing.T) {
	b := buildTestBlock(t, 2, 2, 2)
	cfg := Config{Gamma: 1.4, ViscCoeff1: 0.5, ViscCoeff2: 1.25}

	nodalMass := make([]float64, b.Topo.NumNodes)
	nodalVol := make([]float64, b.Topo.NumNodes)
	nodalCs := make([]float64, b.Topo.NumNodes)
	vel := make([]geom.Vec3, b.Topo.NumNodes)
	cellCentroids := make([]geom.Vec3, b.Topo.NumCells)
	force := make([]geom.Vec3, b.Topo.NumNodes)

	for n := range nodalMass {
		nodalMass[n] = 1.0
		nodalVol[n] = 1.0
		nodalCs[n] = 1.0
	}
	for c := 0; c < b.Topo.NumCells; c++ {
		row := b.Topo.CellsToNodes.Row(c)
		var sum geom.Vec3
		for _, n := range row {
			sum = sum.Add(b.NodePos[n])
		}
		cellCentroids[c] = sum.Scale(1.0 / float64(len(row)))
	}
	center := geom.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	for n, p := range b.NodePos {
		vel[n] = center.Sub(p)
	}

	prof := profile.New()
	ApplyArtificialViscosity(b.Topo, cfg, b.NodePos, vel, cellCentroids, nodalMass, nodalVol, nodalCs, nil, force, prof)

	if got := prof.Snapshot().ViscosityEdges; got == 0 {
		t.Fatalf("expected ViscosityEdges > 0 under uniform compression, got %d", got)
	}
}

// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshbuild

import (
	"math"
	"testing"

	"github.com/rocdat/hal3d/internal/geom"
	"github.com/rocdat/hal3d/internal/hydro"
)

// jitter displaces a node deterministically from its flat index, standing
// in for a seeded random perturbation: gosl/rnd's only usage in the pack
// (inp.Simulation.AdjRandom) drives distribution-fitting of adjustable
// material parameters, not a uniform positional jitter, so there's nothing
// in that API to ground a "small random displacement" call against. See
// DESIGN.md.
func jitter(n int, amplitude float64) geom.Vec3 {
	fx := float64(n)
	return geom.Vec3{
		X: amplitude * math.Sin(fx*12.9898),
		Y: amplitude * math.Sin(fx*78.233),
		Z: amplitude * math.Sin(fx*37.719),
	}
}

// TestPerturbedGeometryStillPartitionsCellVolumeExactly re-checks property 2
// of spec.md §8 (Σ subcell_volume == cell_volume) on a block whose interior
// node positions have been perturbed off the regular lattice, so the
// invariant is exercised over non-axis-aligned hexahedra, not only the
// trivial structured case.
func TestPerturbedGeometryStillPartitionsCellVolumeExactly(t *testing.T) {
	b, err := Build(3, 3, 3, 1.0, 1.0, 1.0, BoundarySpec{XReflect: true, YReflect: true, ZReflect: true})
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	const amplitude = 0.02
	boundary := make(map[int]bool, len(b.Topo.Boundaries))
	for n := range b.Topo.Boundaries {
		boundary[n] = true
	}
	for n := range b.NodePos {
		if boundary[n] {
			continue // leave boundary nodes on the lattice so faces stay planar-ish
		}
		b.NodePos[n] = b.NodePos[n].Add(jitter(n, amplitude))
	}

	cfg := hydro.Config{Gamma: 1.4, CFL: 0.5, MaxDt: 1e-2, MinDt: 1e-12}
	s := hydro.NewState(b.Topo, cfg)
	rho := make([]float64, b.Topo.NumCells)
	e := make([]float64, b.Topo.NumCells)
	for c := range rho {
		rho[c], e[c] = 1.0, 1.0
	}
	hydro.Init(s, b.NodePos, rho, e)

	for c := 0; c < b.Topo.NumCells; c++ {
		lo, hi := b.Topo.SubcellsOfCell(c)
		var sum float64
		for si := lo; si < hi; si++ {
			sum += s.SubVol[si]
		}
		if diff := sum - s.CellVol0[c]; diff > 1e-10 || diff < -1e-10 {
			t.Fatalf("cell %d: subcell volumes sum to %v, cell volume is %v", c, sum, s.CellVol0[c])
		}
	}
}

// TestPerturbedGeometryKeepsPositiveCellVolumes checks that cell volumes
// stay positive under the same jittered, non-degenerate perturbation.
func TestPerturbedGeometryKeepsPositiveCellVolumes(t *testing.T) {
	b, err := Build(4, 2, 2, 1.0, 1.0, 1.0, BoundarySpec{})
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	const amplitude = 0.05
	boundary := make(map[int]bool, len(b.Topo.Boundaries))
	for n := range b.Topo.Boundaries {
		boundary[n] = true
	}
	for n := range b.NodePos {
		if boundary[n] {
			continue
		}
		b.NodePos[n] = b.NodePos[n].Add(jitter(n, amplitude))
	}

	cfg := hydro.Config{Gamma: 1.4, CFL: 0.5, MaxDt: 1e-2, MinDt: 1e-12}
	s := hydro.NewState(b.Topo, cfg)
	rho := make([]float64, b.Topo.NumCells)
	e := make([]float64, b.Topo.NumCells)
	for c := range rho {
		rho[c], e[c] = 1.0, 1.0
	}
	hydro.Init(s, b.NodePos, rho, e)

	for c, v := range s.CellVol0 {
		if v <= 0 {
			t.Fatalf("cell %d: expected positive volume after perturbation, got %v", c, v)
		}
	}
}

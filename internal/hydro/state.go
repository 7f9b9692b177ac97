// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hydro implements the staggered-grid Lagrangian predictor/corrector
// integrator of spec.md §4.2-§4.6: nodal accumulation, the two-stage
// pressure-force integrator, CFL time-step selection and tensor-edge
// artificial viscosity.
package hydro

import (
	"github.com/rocdat/hal3d/internal/geom"
	"github.com/rocdat/hal3d/internal/topo"
)

// Config are the fixed physical/numerical parameters of a run (spec.md §6).
type Config struct {
	Gamma        float64 // ratio of specific heats
	CFL          float64 // Courant number, <= 0.5
	MaxDt        float64
	ViscCoeff1   float64 // linear artificial viscosity coefficient
	ViscCoeff2   float64 // quadratic artificial viscosity coefficient
	MinDt        float64 // TimestepCollapse floor
	EnableViscos bool
}

// State is the per-step hydro-state container of spec.md §3. Topology
// arrays are borrowed read-only; each array here is owned by State and each
// parallel kernel mutates a disjoint index range of exactly one array.
type State struct {
	Topo *topo.Topology
	Cfg  Config

	// node arrays, length NumNodes
	NodePos0   []geom.Vec3 // position at step n
	NodePos1   []geom.Vec3 // predicted / time-centered position
	NodePosRz  []geom.Vec3 // rezoned target position
	NodeVel0   []geom.Vec3 // velocity at step n
	NodeVel1   []geom.Vec3 // predicted / time-centered velocity
	NodalMass  []float64
	NodalVol   []float64
	NodalCs    []float64 // nodal soundspeed (volume-weighted)
	ForceP     []geom.Vec3
	ForceVisc  []geom.Vec3
	NodeMassFr bool // true once NodalMass has been frozen by the predictor sweep

	// cell arrays, length NumCells
	CellCentroid0 []geom.Vec3
	CellCentroid1 []geom.Vec3
	CellMass      []float64 // invariant across the Lagrangian step
	CellVol0      []float64
	CellVol1      []float64
	CellRho0      []float64
	CellRho1      []float64
	CellE0        []float64
	CellE1        []float64
	CellP0        []float64
	CellP1        []float64

	// subcell arrays, length NumSubcells (rebuilt each step prior to remap)
	SubVol     []float64
	SubMass    []float64
	SubIE      []float64 // internal-energy density
	SubMom     []geom.Vec3
	SubCentrd  []geom.Vec3
	SubIntX    []float64
	SubIntY    []float64
	SubIntZ    []float64
}

// NewState allocates a zeroed State over the given topology.
func NewState(t *topo.Topology, cfg Config) *State {
	nn, nc, ns := t.NumNodes, t.NumCells, t.NumSubcells()
	s := &State{
		Topo:          t,
		Cfg:           cfg,
		NodePos0:      make([]geom.Vec3, nn),
		NodePos1:      make([]geom.Vec3, nn),
		NodePosRz:     make([]geom.Vec3, nn),
		NodeVel0:      make([]geom.Vec3, nn),
		NodeVel1:      make([]geom.Vec3, nn),
		NodalMass:     make([]float64, nn),
		NodalVol:      make([]float64, nn),
		NodalCs:       make([]float64, nn),
		ForceP:        make([]geom.Vec3, nn),
		ForceVisc:     make([]geom.Vec3, nn),
		CellCentroid0: make([]geom.Vec3, nc),
		CellCentroid1: make([]geom.Vec3, nc),
		CellMass:      make([]float64, nc),
		CellVol0:      make([]float64, nc),
		CellVol1:      make([]float64, nc),
		CellRho0:      make([]float64, nc),
		CellRho1:      make([]float64, nc),
		CellE0:        make([]float64, nc),
		CellE1:        make([]float64, nc),
		CellP0:        make([]float64, nc),
		CellP1:        make([]float64, nc),
		SubVol:        make([]float64, ns),
		SubMass:       make([]float64, ns),
		SubIE:         make([]float64, ns),
		SubMom:        make([]geom.Vec3, ns),
		SubCentrd:     make([]geom.Vec3, ns),
		SubIntX:       make([]float64, ns),
		SubIntY:       make([]float64, ns),
		SubIntZ:       make([]float64, ns),
	}
	return s
}

// ZeroNodalAccumulators resets the per-step nodal accumulators (§4.3 step 1).
func (s *State) ZeroNodalAccumulators() {
	for i := range s.NodalVol {
		s.NodalVol[i] = 0
		s.NodalCs[i] = 0
		s.ForceP[i] = geom.Vec3{}
		s.ForceVisc[i] = geom.Vec3{}
	}
}

// ZeroNodalMass resets nodal mass; only called by the predictor sweep, since
// mass is frozen between predictor and corrector (§4.2).
func (s *State) ZeroNodalMass() {
	for i := range s.NodalMass {
		s.NodalMass[i] = 0
	}
}

// TotalCellMass returns Σ cell_mass (property 1 of spec.md §8).
func (s *State) TotalCellMass() float64 {
	var total float64
	for _, m := range s.CellMass {
		total += m
	}
	return total
}

// TotalEnergy returns Σ cell_mass·energy + Σ ½ node_mass·|velocity|²
// (spec.md §3 invariant).
func (s *State) TotalEnergy() float64 {
	var total float64
	for c, m := range s.CellMass {
		total += m * s.CellE0[c]
	}
	for n, m := range s.NodalMass {
		v := s.NodeVel0[n]
		total += 0.5 * m * v.Dot(v)
	}
	return total
}

// TotalDensity returns Σ cell_density, as reported by spec.md §6.
func (s *State) TotalDensity() float64 {
	var total float64
	for _, rho := range s.CellRho0 {
		total += rho
	}
	return total
}

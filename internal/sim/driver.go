// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim is the driver loop of spec.md §6: it owns the iteration
// count/sim_end soft cap, invokes the Lagrangian predictor/corrector step
// and the optional swept-edge remap each iteration, and reports the final
// totals plus the PASS/FAIL validation -- the same control-flow shape as
// the teacher's fem.Main "solve one stage, check convergence, log" loop,
// generalized to this solver's fixed step structure.
package sim

import (
	"time"

	"github.com/rocdat/hal3d/internal/config"
	"github.com/rocdat/hal3d/internal/dump"
	"github.com/rocdat/hal3d/internal/geom"
	"github.com/rocdat/hal3d/internal/herr"
	"github.com/rocdat/hal3d/internal/hydro"
	"github.com/rocdat/hal3d/internal/profile"
	"github.com/rocdat/hal3d/internal/reduce"
	"github.com/rocdat/hal3d/internal/remap"
	"github.com/rocdat/hal3d/internal/rlog"
	"github.com/rocdat/hal3d/internal/topo"
)

// dumpDir is the fixed output directory for the optional VisIt-compatible
// debug dump (spec.md §6); the dump is a debugging aid, not a reportable
// result, so it isn't threaded through Result.
const dumpDir = "./dump"

// Result is what a completed run reports (spec.md §6 "Output").
type Result struct {
	Steps        int
	Elapsed      float64
	TotalDensity float64
	TotalEnergy  float64
	Validated    bool // tests.* keys were present, so Passed is meaningful
	Passed       bool
	Fallbacks    profile.Counts
}

// ValidateTolerance is the relative tolerance the original mini-app's
// validate() routine checks Σdensity/Σenergy against (original_source/main.c
// VALIDATE_TOLERANCE).
const ValidateTolerance = 1e-8

// Run drives the full step loop over t, starting from initPos/initRho/initE,
// until either p.Iterations steps have run or the accumulated simulation
// time reaches p.SimEnd, whichever comes first.
func Run(t *topo.Topology, initPos []geom.Vec3, initRho, initE []float64, p *config.Params) (Result, error) {
	// gamma isn't one of spec.md §6's parameter keys; every scenario in §8
	// specifies gamma=1.4 directly, so it's the fixed ideal-gas constant here.
	cfg := hydro.Config{
		Gamma:        1.4,
		CFL:          0.5,
		MaxDt:        p.MaxDt,
		ViscCoeff1:   p.ViscCoeff1,
		ViscCoeff2:   p.ViscCoeff2,
		MinDt:        1e-12,
		EnableViscos: true,
	}
	s := hydro.NewState(t, cfg)
	hydro.Init(s, initPos, initRho, initE)

	prof := profile.New()
	elapsed := 0.0
	dt := p.Dt
	step := 0

	for step = 0; step < p.Iterations && elapsed < p.SimEnd; step++ {
		wallStart := time.Now()

		res, err := hydro.Step(s, dt, prof)
		if err != nil {
			return Result{}, err
		}
		dt = res.Dt
		elapsed += dt

		if p.PerformRemap {
			runRemap(t, s, prof)
		}

		if p.VisitDump {
			dump.Write(dumpDir, "hal3d", step+1, t, s.NodePos0, s.CellRho0, "density")
		}

		rlog.Step(step+1, dt, elapsed, time.Since(wallStart).Seconds(), s.TotalCellMass())
	}

	totalDensity := reduce.SumAll(s.TotalDensity())
	totalEnergy := reduce.SumAll(s.TotalEnergy())
	rlog.Totals(totalDensity, totalEnergy)

	result := Result{
		Steps:        step,
		Elapsed:      elapsed,
		TotalDensity: totalDensity,
		TotalEnergy:  totalEnergy,
		Fallbacks:    prof.Snapshot(),
	}

	if p.HasTests {
		result.Validated = true
		result.Passed = herr.CloseEnough(totalEnergy, p.TestsEnergy, ValidateTolerance) &&
			herr.CloseEnough(totalDensity, p.TestsDensity, ValidateTolerance)
		if result.Passed {
			rlog.Pass("totals within tolerance")
		} else {
			rlog.Fail("totals diverge from tests.energy/tests.density")
		}
	}

	return result, nil
}

// runRemap reconstructs subcell quantities from the just-stepped mesh and
// performs one swept-edge remap onto the rezoned mesh (spec.md §4.7). The
// rezoned position array is the Lagrangian one itself -- the only rezoner
// this build implements is the identity one (§6 Non-goals: "any rezoner
// beyond the trivial identity remain out of scope") -- so swept volumes are
// zero and this call is the geometric round-trip of spec.md §8 property 4;
// it is still exercised every step. NodePosRz is overwritten with NodePos0
// on every call, and the Lagrangian cell centroids are passed to Remap as
// the rezoned ones.
func runRemap(t *topo.Topology, s *hydro.State, prof *profile.Sink) {
	copy(s.NodePosRz, s.NodePos0)

	hydro.ReconstructSubcells(t, s.NodePos0, s.CellCentroid0, s.CellRho0, s.CellE0, s.NodeVel0,
		s.SubVol, s.SubIntX, s.SubIntY, s.SubIntZ, s.SubMass, s.SubIE, s.SubMom, s.SubCentrd)

	ns := t.NumSubcells()
	geo := remap.Geometry{
		Vol: s.SubVol, IntX: s.SubIntX, IntY: s.SubIntY, IntZ: s.SubIntZ, Centroid: s.SubCentrd,
	}

	f := remap.Fields{
		Mass: append([]float64(nil), s.SubMass...),
		IE:   make([]float64, ns),
		MomX: make([]float64, ns), MomY: make([]float64, ns), MomZ: make([]float64, ns),
	}
	for i := 0; i < ns; i++ {
		f.IE[i] = s.SubIE[i] * s.SubVol[i] // extensive internal energy
		f.MomX[i] = s.SubMom[i].X
		f.MomY[i] = s.SubMom[i].Y
		f.MomZ[i] = s.SubMom[i].Z
	}

	remap.Remap(t, s.NodePos0, s.NodePosRz, s.CellCentroid0, s.CellCentroid0, geo, f, prof)

	for i := 0; i < ns; i++ {
		s.SubMass[i] = f.Mass[i]
		if s.SubVol[i] > 0 {
			s.SubIE[i] = f.IE[i] / s.SubVol[i]
		} else {
			s.SubIE[i] = 0
		}
		s.SubMom[i] = geom.Vec3{X: f.MomX[i], Y: f.MomY[i], Z: f.MomZ[i]}
	}

	// reconcile cell-level totals from the redistributed subcell fields.
	for c := 0; c < t.NumCells; c++ {
		lo, hi := t.SubcellsOfCell(c)
		var mass, ie float64
		for si := lo; si < hi; si++ {
			mass += s.SubMass[si]
			ie += s.SubIE[si] * s.SubVol[si]
		}
		s.CellMass[c] = mass
		if s.CellVol0[c] > 0 {
			s.CellRho0[c] = mass / s.CellVol0[c]
		}
		if mass > 0 {
			s.CellE0[c] = ie / mass
		}
	}
}

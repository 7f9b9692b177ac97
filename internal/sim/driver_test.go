// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"testing"

	"github.com/rocdat/hal3d/internal/config"
	"github.com/rocdat/hal3d/internal/meshbuild"
)

func testBlock(t *testing.T) *meshbuild.Block {
	b, err := meshbuild.Build(4, 2, 2, 1.0, 1.0, 1.0,
		meshbuild.BoundarySpec{YReflect: true, ZReflect: true})
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	return b
}

func sodIC(b *meshbuild.Block) (rho, e []float64) {
	rho = make([]float64, b.Topo.NumCells)
	e = make([]float64, b.Topo.NumCells)
	for c := range rho {
		row := b.Topo.CellsToNodes.Row(c)
		var cx float64
		for _, n := range row {
			cx += b.NodePos[n].X
		}
		cx /= float64(len(row))
		if cx < 0.5 {
			rho[c], e[c] = 1.0, 2.5
		} else {
			rho[c], e[c] = 0.125, 2.0
		}
	}
	return rho, e
}

// TestRunCompletesIterationsWithoutRemap checks that a short run, with remap
// disabled, runs exactly p.Iterations steps and reports Validated=false when
// no tests.* keys are set.
func TestRunCompletesIterationsWithoutRemap(t *testing.T) {
	b := testBlock(t)
	rho, e := sodIC(b)
	p := &config.Params{
		Iterations: 10, MaxDt: 1e-3, SimEnd: 10,
		Dt: 1e-4, ViscCoeff1: 0.5, ViscCoeff2: 1.25,
		PerformRemap: false, VisitDump: false,
	}

	result, err := Run(b.Topo, b.NodePos, rho, e, p)
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	if result.Steps != 10 {
		t.Fatalf("expected 10 steps, ran %d", result.Steps)
	}
	if result.Validated {
		t.Fatalf("expected Validated=false when tests.* keys are absent")
	}
}

// TestRunCompletesIterationsWithRemap checks that the run completes all
// p.Iterations steps with the identity-rezoner remap phase turned on every
// step.
func TestRunCompletesIterationsWithRemap(t *testing.T) {
	b := testBlock(t)
	rho, e := sodIC(b)
	p := &config.Params{
		Iterations: 6, MaxDt: 1e-3, SimEnd: 10,
		Dt: 1e-4, ViscCoeff1: 0.5, ViscCoeff2: 1.25,
		PerformRemap: true, VisitDump: false,
	}

	result, err := Run(b.Topo, b.NodePos, rho, e, p)
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	if result.Steps != 6 {
		t.Fatalf("expected 6 steps, ran %d", result.Steps)
	}
}

// TestRunStopsAtSimEnd checks that the soft sim_end cap, not just the hard
// iteration cap, ends the loop.
func TestRunStopsAtSimEnd(t *testing.T) {
	b := testBlock(t)
	rho, e := sodIC(b)
	p := &config.Params{
		Iterations: 1000, MaxDt: 1e-3, SimEnd: 5e-4,
		Dt: 1e-4, ViscCoeff1: 0.5, ViscCoeff2: 1.25,
	}

	result, err := Run(b.Topo, b.NodePos, rho, e, p)
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	if result.Steps >= 1000 {
		t.Fatalf("expected sim_end to stop the run well before the iteration cap, got %d steps", result.Steps)
	}
	if result.Elapsed < p.SimEnd {
		t.Fatalf("expected elapsed >= sim_end once the loop stops, got %v < %v", result.Elapsed, p.SimEnd)
	}
}

// TestRunReportsValidationOutcome checks the PASS/FAIL path driven by
// config's tests.energy/tests.density keys (original_source/main.c's
// validate()).
func TestRunReportsValidationOutcome(t *testing.T) {
	b := testBlock(t)
	rho, e := sodIC(b)
	p := &config.Params{
		Iterations: 5, MaxDt: 1e-3, SimEnd: 10,
		Dt: 1e-4, ViscCoeff1: 0.5, ViscCoeff2: 1.25,
		HasTests: true, TestsEnergy: -1, TestsDensity: -1,
	}

	result, err := Run(b.Topo, b.NodePos, rho, e, p)
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	if !result.Validated {
		t.Fatalf("expected Validated=true when tests.* keys are present")
	}
	if result.Passed {
		t.Fatalf("expected Passed=false against deliberately wrong tests.energy/tests.density targets")
	}
}

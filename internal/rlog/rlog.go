// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rlog is the driver's console logger, a thin wrapper over
// gosl/io's colored Pf* family -- the same idiom the teacher's main.go and
// fem.Main use for progress and exit-status messages.
package rlog

import (
	"github.com/cpmech/gosl/io"
)

// Step logs one completed iteration: step number, time step, elapsed
// simulation time, wall-clock duration (spec.md §6 "per-iteration log") and
// the running Σ cell_mass, carried from the original hale mini-app's own
// per-step "total mass" diagnostic (original_source/omp3/hale.c).
func Step(step int, dt, elapsed, wallclockSec, totalMass float64) {
	io.Pf("step %6d  dt=%12.6e  t=%12.6e  wall=%8.3fs  total_mass=%.12e\n",
		step, dt, elapsed, wallclockSec, totalMass)
}

// Totals logs the final Σ density and Σ energy (spec.md §6).
func Totals(sumDensity, sumEnergy float64) {
	io.Pf("> totals: sum(density)=%.12e  sum(energy)=%.12e\n", sumDensity, sumEnergy)
}

// Pass prints a green PASS banner for a successful validation (spec.md §6).
func Pass(msg string) { io.PfGreen("> PASS: %s\n", msg) }

// Fail prints a red FAIL banner for a failed validation (spec.md §6).
func Fail(msg string) { io.PfRed("> FAIL: %s\n", msg) }

// Info prints a plain informational line.
func Info(format string, args ...interface{}) { io.Pf(format, args...) }

// Warn prints a yellow warning, used for counted numerical fall-backs
// (spec.md §7: "numerical fall-backs are counted and reported at end-of-run").
func Warn(format string, args ...interface{}) { io.PfYel(format, args...) }

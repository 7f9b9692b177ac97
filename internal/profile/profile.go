// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package profile implements the explicit, optional, non-global profiling
// sink of spec.md §9's design notes: an injected counter object, never a
// package-level global, so kernels stay safe to call from tests and from
// multiple concurrent runs in the same process.
package profile

import "sync/atomic"

// Sink accumulates counters of interest across a run. The zero value is
// ready to use; a nil *Sink is also safe (every method is a no-op), so
// callers that don't care about profiling can pass nil instead of branching.
type Sink struct {
	viscosityEdges int64
	remapFallbacks int64
}

// New returns a ready-to-use Sink.
func New() *Sink { return &Sink{} }

// IncViscosityEdge records one compressive edge that received artificial
// viscosity (spec.md §4.5).
func (s *Sink) IncViscosityEdge() {
	if s == nil {
		return
	}
	atomic.AddInt64(&s.viscosityEdges, 1)
}

// IncRemapFallback records one subcell whose least-squares gradient matrix
// was non-invertible during remap (the module's only matrix-inversion site,
// internal/remap's least-squares solve -- internal/hydro's force sweep does
// no matrix solve of its own), and which therefore fell back to a zero
// gradient (spec.md §7 NonInvertibleMatrix).
func (s *Sink) IncRemapFallback() {
	if s == nil {
		return
	}
	atomic.AddInt64(&s.remapFallbacks, 1)
}

// Counts is a snapshot of a Sink's counters.
type Counts struct {
	ViscosityEdges int64
	RemapFallbacks int64
}

// Snapshot returns the current counter values. Safe to call on a nil Sink.
func (s *Sink) Snapshot() Counts {
	if s == nil {
		return Counts{}
	}
	return Counts{
		ViscosityEdges: atomic.LoadInt64(&s.viscosityEdges),
		RemapFallbacks: atomic.LoadInt64(&s.remapFallbacks),
	}
}

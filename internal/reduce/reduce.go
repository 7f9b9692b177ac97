// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reduce is the cross-process reduction facade of spec.md §5/§6:
// single-rank semantics by default, with an all-reduce path gated by
// gosl/mpi.IsOn() the way fem's linear solvers guard their own
// mpi.AllReduceSum calls ("this must be done here because there might be
// nodes sharing boundary conditions" -- here, cells sharing a domain-
// decomposed boundary instead of nodes sharing a stiffness assembly).
package reduce

import "github.com/cpmech/gosl/mpi"

// SumAll returns the sum of local across every rank. On a single-rank run
// (mpi.IsOn() false, the default for this solver's test and scenario runs)
// it is the identity.
func SumAll(local float64) float64 {
	if !mpi.IsOn() {
		return local
	}
	src := []float64{local}
	dst := []float64{0}
	mpi.AllReduceSum(dst, src)
	return dst[0]
}

// Rank returns this process's rank (0 on a single-rank run).
func Rank() int {
	if !mpi.IsOn() {
		return 0
	}
	return mpi.Rank()
}

// IsRoot reports whether this process is the controlling rank spec.md §6
// designates for logging and validation output.
func IsRoot() bool { return Rank() == 0 }

// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import "math"

// pressure returns the ideal-gas pressure p = (gamma-1)*e*rho (§4.3 step 2).
func pressure(gamma, e, rho float64) float64 {
	return (gamma - 1) * e * rho
}

// soundSpeed returns sqrt(gamma*(gamma-1)*e), used both in nodal
// accumulation (§4.2) and the CFL candidate time step (§4.4).
func soundSpeed(gamma, e float64) float64 {
	v := gamma * (gamma - 1) * e
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v)
}

// EOSForAllCells applies the ideal-gas equation of state to every cell
// (§4.3 step 2), writing into p from rho and e.
func EOSForAllCells(gamma float64, rho, e, p []float64) {
	for c := range p {
		p[c] = pressure(gamma, e[c], rho[c])
	}
}

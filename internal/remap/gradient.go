// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remap

import (
	"github.com/rocdat/hal3d/internal/geom"
	"github.com/rocdat/hal3d/internal/profile"
	"github.com/rocdat/hal3d/internal/topo"
)

// Geometry is the per-subcell reconstruction geometry internal/hydro
// computes (ReconstructSubcells) immediately before a remap: the subcell's
// volume, its raw volume-weighted position integral (∫x,∫y,∫z) and its
// centroid (∫x,∫y,∫z / V), all in the current Lagrangian configuration.
type Geometry struct {
	Vol              []float64
	IntX, IntY, IntZ []float64
	Centroid         []geom.Vec3
}

// subcellMatrix assembles the 3x3 least-squares coefficient matrix of
// spec.md §4.7 step 5, M = Σ_j 2·i_j·i_jᵀ/V_j² over subcell's neighbour
// stencil, grounded on hale.c's coeff[] accumulation loop (the reference
// builds it from each neighbour's own integral/volume, not a displacement
// relative to the subcell -- kept as written there).
func subcellMatrix(t *topo.Topology, g Geometry, subcell int) [3][3]float64 {
	var m [3][3]float64
	for _, nb := range t.SubcellsToSubcells.Row(subcell) {
		v := g.Vol[nb]
		if v == 0 {
			continue
		}
		i := geom.Vec3{X: g.IntX[nb], Y: g.IntY[nb], Z: g.IntZ[nb]}
		k := 2.0 / (v * v)
		m[0][0] += k * i.X * i.X
		m[0][1] += k * i.X * i.Y
		m[0][2] += k * i.X * i.Z
		m[1][0] += k * i.Y * i.X
		m[1][1] += k * i.Y * i.Y
		m[1][2] += k * i.Y * i.Z
		m[2][0] += k * i.Z * i.X
		m[2][1] += k * i.Z * i.Y
		m[2][2] += k * i.Z * i.Z
	}
	return m
}

// Inverses precomputes, once per subcell, the inverse of its least-squares
// coefficient matrix -- hoisted as spec.md §9's design note recommends,
// since M depends only on stencil geometry, not on which of the five
// reconstructed scalar fields (density, ie-density, three momenta) is being
// gradient-fitted. Subcells whose matrix is non-invertible fall back to a
// zero gradient (herr.NonInvertibleMatrix, recorded in prof) and are marked
// invalid here rather than recomputed per field.
type Inverses struct {
	m     [][3][3]float64
	valid []bool
}

// BuildInverses computes every subcell's inverse coefficient matrix.
func BuildInverses(t *topo.Topology, g Geometry, prof *profile.Sink) *Inverses {
	ns := t.NumSubcells()
	inv := &Inverses{m: make([][3][3]float64, ns), valid: make([]bool, ns)}
	for i := 0; i < ns; i++ {
		m := subcellMatrix(t, g, i)
		mi, err := geom.Invert3x3(m)
		if err != nil {
			prof.IncRemapFallback()
			continue
		}
		inv.m[i] = mi
		inv.valid[i] = true
	}
	return inv
}

// Gradient computes the least-squares gradient of field q over subcell's
// stencil using the precomputed inverse: r = Σ_j (2·i_j·Δq_j)/V_j, with
// i_j,V_j the NEIGHBOUR subcell's own integral and volume and
// Δq_j = q(neighbour) - q(self). hale.c's unfinished draft builds this sum
// from the subcell's own integral/volume on every term instead of the
// neighbour's; we follow the formula as specified rather than that
// apparent slip. Returns the zero vector if the subcell's matrix was
// non-invertible.
func (inv *Inverses) Gradient(t *topo.Topology, g Geometry, q []float64, subcell int) geom.Vec3 {
	if !inv.valid[subcell] {
		return geom.Vec3{}
	}
	var rhs geom.Vec3
	for _, nb := range t.SubcellsToSubcells.Row(subcell) {
		v := g.Vol[nb]
		if v == 0 {
			continue
		}
		dq := q[nb] - q[subcell]
		iNb := geom.Vec3{X: g.IntX[nb], Y: g.IntY[nb], Z: g.IntZ[nb]}
		rhs = rhs.Add(iNb.Scale(2.0 * dq / v))
	}
	return geom.MulVec(inv.m[subcell], rhs)
}

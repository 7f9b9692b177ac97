// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"math"

	"github.com/rocdat/hal3d/internal/geom"
	"github.com/rocdat/hal3d/internal/profile"
	"github.com/rocdat/hal3d/internal/topo"
)

// ApplyArtificialViscosity implements the tensor-edge form of §4.5, adding
// to force the contribution of every subcell edge incident on each node.
//
// Design note §9 flags an intrinsic node/neighbour scatter race in this
// sweep (adding to node_force[n] with sign opposite to node_force[n_r]).
// This implementation sidesteps the race rather than choosing atomics or a
// graph coloring: it inverts the loop exactly as §4.2 does (design note
// option (a)). Each node n independently recomputes the edge quantities
// (Δv, unit vector, cs_min, ρ_edge) from its own point of view for every
// incident edge and accumulates only into force[n]; by the antisymmetry of
// Δv the opposite node's own iteration yields the equal-and-opposite
// contribution without any shared-write coordination.
//
// The reference's "four surrounding nodal densities" is the face-centered
// density of the edge's own face: each subcell edge (n, n_r) is treated
// once per face it lies on, and that face's node ring is always exactly
// the four corner nodes the harmonic mean is taken over -- no separate
// adjacency query is needed beyond the face ring already in scope. The
// limiter term defaults to zero (no viscosity suppression) since spec.md
// does not pin down its construction and the reference itself leaves it
// as an unpopulated field. prof counts every edge that receives a
// compressive viscous contribution (spec.md §7 "numerical fall-backs are
// counted and reported"); a nil prof is a no-op per internal/profile's
// nil-safe Sink contract.
func ApplyArtificialViscosity(t *topo.Topology, cfg Config, pos, vel, cellCentroids []geom.Vec3,
	nodalMass, nodalVol, nodalCs, limiter []float64, force []geom.Vec3, prof *profile.Sink) {

	tcoef := (cfg.Gamma + 1) / 4
	for n := 0; n < t.NumNodes; n++ {
		var accum geom.Vec3
		csN := nodalCs[n]
		lim := 0.0
		if limiter != nil {
			lim = limiter[n]
		}
		for _, face := range t.NodesToFaces.Row(n) {
			pair := t.FacesToCells[face]
			ring := t.FacesToNodes.Row(face)
			left, right, ok := ringNeighbors(ring, n)
			if !ok {
				continue
			}
			facePts := make([]geom.Vec3, len(ring))
			for i, v := range ring {
				facePts[i] = pos[v]
			}
			faceC := geom.FaceCentroid(facePts)
			rhoFace := harmonicMean4(nodalMass, nodalVol, ring)

			for _, c := range [2]int{pair.C0, pair.C1} {
				if c < 0 {
					continue
				}
				for _, other := range [2]int{left, right} {
					h := geom.HalfEdge(pos[n], pos[other])
					a := faceC.Sub(cellCentroids[c])
					b := faceC.Sub(h)
					ab := h.Sub(pos[n])
					s, _ := geom.SignedAreaVector(a, b, ab)

					dv := vel[other].Sub(vel[n])
					mag := dv.Norm()
					if mag == 0 {
						continue
					}
					expansion := dv.Dot(s)
					if expansion > 0 {
						continue // expanding edge: no compressive viscosity
					}
					unit := dv.Scale(1.0 / mag)
					prof.IncViscosityEdge()

					csMin := math.Min(csN, nodalCs[other])

					dvArr := [3]float64{dv.X, dv.Y, dv.Z}
					sArr := [3]float64{s.X, s.Y, s.Z}
					unitArr := [3]float64{unit.X, unit.Y, unit.Z}
					var fk [3]float64
					for k := 0; k < 3; k++ {
						lin := cfg.ViscCoeff2 * tcoef * math.Abs(dvArr[k])
						quad := math.Sqrt(lin*lin + cfg.ViscCoeff1*cfg.ViscCoeff1*csMin*csMin)
						fk[k] = rhoFace * (lin + quad) * (1 - lim) * (dvArr[k] * sArr[k]) * unitArr[k]
					}
					accum = accum.Add(geom.Vec3{X: fk[0], Y: fk[1], Z: fk[2]})
				}
			}
		}
		force[n] = force[n].Add(accum)
	}
}

func nodalDensity(mass, vol []float64, i int) float64 {
	if vol[i] == 0 {
		return 0
	}
	return mass[i] / vol[i]
}

// harmonicMean4 is the face-centered density of spec.md §4.5: the harmonic
// mean of the four corner nodes of ring, each ρ_i = nodal_mass_i/nodal_vol_i.
func harmonicMean4(mass, vol []float64, ring []int) float64 {
	var invSum float64
	for _, n := range ring {
		rho := nodalDensity(mass, vol, n)
		if rho <= 0 {
			return 0
		}
		invSum += 1 / rho
	}
	return float64(len(ring)) / invSum
}

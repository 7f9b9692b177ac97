// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remap

import (
	"github.com/rocdat/hal3d/internal/geom"
	"github.com/rocdat/hal3d/internal/profile"
	"github.com/rocdat/hal3d/internal/topo"
)

// Fields is the set of subcell-resident EXTENSIVE conserved quantities the
// remap transfers: mass, internal energy and the three momentum components
// (spec.md §4.7 step 7, "mass, internal-energy density, momentum
// components" -- reconstructed as the density fields mass/vol, ie/vol,
// momentum/vol, but transferred as the extensive amounts those densities
// integrate to over the swept prism).
type Fields struct {
	Mass             []float64
	IE               []float64 // internal energy
	MomX, MomY, MomZ []float64
}

// Result reports what a Remap call did.
type Result struct {
	Fallbacks int // subcells whose gradient matrix was non-invertible
}

// ringNeighbors returns the node indices immediately before/after nodeVal in
// an ordered face ring. Duplicated from internal/hydro and internal/topo's
// identical helpers rather than imported, so internal/remap stays decoupled
// from both packages' internals (the same reasoning internal/topo's own
// ringNeighborsFor documents).
func ringNeighbors(ring []int, nodeVal int) (left, right int, ok bool) {
	n := len(ring)
	for i, v := range ring {
		if v == nodeVal {
			return ring[(i-1+n)%n], ring[(i+1)%n], true
		}
	}
	return 0, 0, false
}

// Remap performs the swept-edge ALE remap of spec.md §4.7. pos/cellCentroids
// describe the Lagrangian mesh just stepped to; rzPos/rzCellCentroids
// describe the rezoned target mesh (the identity rezoner of spec.md §9
// simply passes pos back as rzPos). geo is the subcell reconstruction
// geometry (internal/hydro.ReconstructSubcells); f holds the extensive
// subcell quantities to transfer, mutated in place.
//
// The gradient/flux formula needs intensive density fields (mass/vol,
// ie/vol, momentum/vol); Remap snapshots those once from f and geo.Vol
// before the sweep begins and reconstructs gradients only from that frozen
// snapshot, never from values the sweep has already mutated -- matching the
// bulk-synchronous "parallel-for with an implicit barrier before the next
// step consumes its outputs" scheduling model of spec.md §9.
//
// Every subcell face is visited from exactly one side (external: the side
// where the subcell's cell is the face's C0 neighbour; internal: the side
// where the subcell's own index is lower than its sibling's), so each
// donor/acceptor interaction is applied exactly once and the transfer is
// conservative by construction -- no second traversal or antisymmetry
// argument is needed to avoid double-counting.
func Remap(t *topo.Topology, pos, rzPos, cellCentroids, rzCellCentroids []geom.Vec3,
	geo Geometry, f Fields, prof *profile.Sink) Result {

	inv := BuildInverses(t, geo, prof)

	ns := t.NumSubcells()
	density := make([]float64, ns)
	ieDensity := make([]float64, ns)
	velX := make([]float64, ns)
	velY := make([]float64, ns)
	velZ := make([]float64, ns)
	for i := 0; i < ns; i++ {
		if geo.Vol[i] <= 0 {
			continue
		}
		density[i] = f.Mass[i] / geo.Vol[i]
		ieDensity[i] = f.IE[i] / geo.Vol[i]
		velX[i] = f.MomX[i] / geo.Vol[i]
		velY[i] = f.MomY[i] / geo.Vol[i]
		velZ[i] = f.MomZ[i] / geo.Vol[i]
	}
	snapshot := fieldSnapshot{density: density, ieDensity: ieDensity, velX: velX, velY: velY, velZ: velZ}

	for c := 0; c < t.NumCells; c++ {
		cc := cellCentroids[c]
		rzCc := rzCellCentroids[c]
		lo, hi := t.SubcellsOfCell(c)
		for si := lo; si < hi; si++ {
			n := t.SubcellNode(si)
			ownFaces := t.SubcellsToFaces.Row(si)
			nf := len(ownFaces)
			if nf == 0 {
				continue
			}
			for ff := 0; ff < nf; ff++ {
				face := ownFaces[ff]
				face2 := ownFaces[(ff+1)%nf]

				ring := t.FacesToNodes.Row(face)
				left, right, ok := ringNeighbors(ring, n)
				if !ok {
					continue
				}
				heL := geom.HalfEdge(pos[n], pos[left])
				heR := geom.HalfEdge(pos[n], pos[right])
				rzHeL := geom.HalfEdge(rzPos[n], rzPos[left])
				rzHeR := geom.HalfEdge(rzPos[n], rzPos[right])

				ring2 := t.FacesToNodes.Row(face2)
				face2C := faceCentroidOf(ring2, pos)
				rzFace2C := faceCentroidOf(ring2, rzPos)

				prism := PrismNodes(heR, face2C, cc, heL, rzHeR, rzFace2C, rzCc, rzHeL)
				volP, intP := PrismIntegral(prism)

				// external region: the neighbour subcell across the real
				// mesh face, same node. Applied only from the face's C0
				// side, so the interaction is never visited twice.
				pair := t.FacesToCells[face]
				if pair.C0 == c {
					other := pair.C1
					if other >= 0 {
						nb := t.SubcellIndex(other, n)
						if nb >= 0 {
							applyFlux(t, geo, inv, snapshot, f, si, nb, volP, intP)
						}
					}
				}

				// internal region: the sibling subcell across the cell's
				// own edge (n,left), within the same cell. Applied only
				// from the lower subcell index, so the (si,sibling) pair
				// is never visited twice even though both subcells see
				// this wedge from their own ownFaces loop.
				sibling := t.SubcellIndex(c, left)
				if sibling >= 0 && si < sibling {
					applyFlux(t, geo, inv, snapshot, f, si, sibling, volP, intP)
				}
			}
		}
	}

	return Result{Fallbacks: len(inv.valid) - countValid(inv.valid)}
}

func countValid(valid []bool) int {
	n := 0
	for _, v := range valid {
		if v {
			n++
		}
	}
	return n
}

func faceCentroidOf(ring []int, pos []geom.Vec3) geom.Vec3 {
	pts := make([]geom.Vec3, len(ring))
	for i, n := range ring {
		pts[i] = pos[n]
	}
	return geom.FaceCentroid(pts)
}

// fieldSnapshot holds the frozen intensive density fields the sweep
// reconstructs gradients from.
type fieldSnapshot struct {
	density, ieDensity, velX, velY, velZ []float64
}

// applyFlux computes the flux of every field across the prism (donor,
// acceptor) and applies it conservatively: subtract from donor, add to
// acceptor (spec.md §4.7 steps 6-7). Flux of q = q_self·V_prism +
// ∇q·(i_prism − V_prism·c_donor), q_self/∇q taken from the donor subcell's
// frozen snapshot. Mass is clamped so the transfer never drives the donor's
// mass negative (spec.md §4.7 invariant), trimming every other field's flux
// by the same fraction to keep them mutually consistent.
func applyFlux(t *topo.Topology, geo Geometry, inv *Inverses, snap fieldSnapshot, f Fields, donor, acceptor int, volP float64, intP geom.Vec3) {
	cSubcell := geo.Centroid[donor]
	iPrism := intP.Sub(cSubcell.Scale(volP))

	qs := [5][]float64{snap.density, snap.ieDensity, snap.velX, snap.velY, snap.velZ}
	var flux [5]float64
	for k, q := range qs {
		grad := inv.Gradient(t, geo, q, donor)
		grad = LimitGradient(t, geo, q, donor, grad)
		flux[k] = q[donor]*volP + grad.Dot(iPrism)
	}

	donorMass := f.Mass[donor]
	massFlux := flux[0]
	if massFlux > 0 && massFlux > donorMass {
		scale := 0.0
		if donorMass > 0 {
			scale = donorMass / massFlux
		}
		for k := range flux {
			flux[k] *= scale
		}
	}

	f.Mass[donor] -= flux[0]
	f.Mass[acceptor] += flux[0]
	f.IE[donor] -= flux[1]
	f.IE[acceptor] += flux[1]
	f.MomX[donor] -= flux[2]
	f.MomX[acceptor] += flux[2]
	f.MomY[donor] -= flux[3]
	f.MomY[acceptor] += flux[3]
	f.MomZ[donor] -= flux[4]
	f.MomZ[acceptor] += flux[4]
}

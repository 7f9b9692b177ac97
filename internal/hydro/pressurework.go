// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"github.com/rocdat/hal3d/internal/geom"
	"github.com/rocdat/hal3d/internal/topo"
)

// cellVolumes computes every cell's volume (and the centroids used to do
// so) from a position array, without the subcell bookkeeping of
// cellAndSubcellVolumes -- used by the predictor/corrector, which only
// needs cell-level volumes; subcells are reconstructed separately, just
// before remap (spec.md §3 "Lifecycle").
func cellVolumes(t *topo.Topology, pos []geom.Vec3) (vol []float64, centroids []geom.Vec3) {
	centroids = make([]geom.Vec3, t.NumCells)
	for c := 0; c < t.NumCells; c++ {
		centroids[c] = cellCentroid(t, c, pos)
	}
	vol, _ = cellAndSubcellVolumes(t, pos, centroids)
	return vol, centroids
}

// cellPressureWork computes, for every cell, the time-centered pressure
// work of §4.3 step 9: W = Σ_face Σ_node-on-face Σ_{half-edges} v[node] .
// (p0[cell] * S), with S the same orientation-corrected sub-triangle area
// vector §4.2 uses for the nodal force. Using the identical (face, node,
// cell, half-edge) decomposition as the force sweep is what makes
// Σ cell_mass·energy + Σ ½ node_mass·|v|² conserve to truncation order (the
// spec.md §3 energy invariant): every S contributes once to force[node] and
// once to W[cell] with the same pressure factor, so the discrete work done
// by the nodal forces telescopes exactly into Σ_c W_c.
func cellPressureWork(t *topo.Topology, pos, vel []geom.Vec3, cellCentroids []geom.Vec3, p []float64) []float64 {
	w := make([]float64, t.NumCells)
	for c := 0; c < t.NumCells; c++ {
		for _, f := range t.CellsToFaces.Row(c) {
			ring := t.FacesToNodes.Row(f)
			facePts := make([]geom.Vec3, len(ring))
			for i, v := range ring {
				facePts[i] = pos[v]
			}
			faceC := geom.FaceCentroid(facePts)
			for _, n := range ring {
				left, right, _ := ringNeighbors(ring, n)
				for _, other := range [2]int{left, right} {
					h := geom.HalfEdge(pos[n], pos[other])
					a := faceC.Sub(cellCentroids[c])
					b := faceC.Sub(h)
					ab := h.Sub(pos[n])
					s, _ := geom.SignedAreaVector(a, b, ab)
					w[c] += vel[n].Dot(s.Scale(p[c]))
				}
			}
		}
	}
	return w
}

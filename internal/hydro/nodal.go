// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"github.com/rocdat/hal3d/internal/geom"
	"github.com/rocdat/hal3d/internal/topo"
)

// nodalSweep performs the predictor/corrector nodal accumulation of §4.2.
// It iterates over nodes in the outer loop (spec.md §5's prescribed fix for
// the face/cell/edge scatter: "invert the loop so the outer variable is the
// accumulator's index"), so every write target (nodalMass[n], nodalVol[n],
// nodalCs[n], force[n]) is touched by exactly one outer iteration and the
// sweep is safe to parallelize per-node.
//
// accumMass selects whether nodalMass is accumulated (predictor only -- mass
// is frozen between predictor and corrector, §4.2).
func nodalSweep(t *topo.Topology, gamma float64, pos []geom.Vec3, cellCentroids []geom.Vec3,
	rho, e, p []float64, accumMass bool,
	nodalMass, nodalVol, nodalCs []float64, force []geom.Vec3) {

	for n := 0; n < t.NumNodes; n++ {
		var mass, vol, cs float64
		var f geom.Vec3
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

			for _, c := range [2]int{pair.C0, pair.C1} {
				if c < 0 {
					continue
				}
				for _, other := range [2]int{left, right} {
					h := geom.HalfEdge(pos[n], pos[other])
					a := faceC.Sub(cellCentroids[c])
					b := faceC.Sub(h)
					ab := h.Sub(pos[n])
					s, sDotAB := geom.SignedAreaVector(a, b, ab)
					v := sDotAB / 3.0

					if accumMass {
						mass += rho[c] * v
					}
					vol += v
					cs += soundSpeed(gamma, e[c]) * v
					f = f.Add(s.Scale(p[c]))
				}
			}
		}
		if accumMass {
			nodalMass[n] = mass
		}
		nodalVol[n] = vol
		if vol != 0 {
			nodalCs[n] = cs / vol
		} else {
			nodalCs[n] = 0
		}
		force[n] = f
	}
}

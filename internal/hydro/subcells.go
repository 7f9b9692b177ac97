// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"github.com/rocdat/hal3d/internal/geom"
	"github.com/rocdat/hal3d/internal/topo"
)

// ReconstructSubcells rebuilds every subcell-resident quantity from the
// current cell-level state immediately before a remap, per spec.md §3's
// lifecycle note ("Subcell quantities are reconstructed each step prior to
// remap"). Subcell volume and the raw volume-weighted position integral
// (∫x,∫y,∫z, consumed by internal/remap's least-squares gradient) reuse the
// same half-edge/face-centroid decomposition as cellAndSubcellVolumes, so
// Σ subcell_volume == cell_volume continues to hold exactly. Subcell mass
// and internal-energy density are distributed from the owning cell's
// intensive fields (uniform within a cell until the first remap diverges
// them); subcell momentum is carried by the subcell's own corner node's
// velocity, since a subcell is indexed by exactly one (cell,node) pair.
func ReconstructSubcells(t *topo.Topology, pos []geom.Vec3, cellCentroids []geom.Vec3,
	cellRho, cellE []float64, nodeVel []geom.Vec3,
	subVol, subIntX, subIntY, subIntZ, subMass, subIE []float64, subMom, subCentrd []geom.Vec3) {

	for i := range subVol {
		subVol[i] = 0
		subIntX[i] = 0
		subIntY[i] = 0
		subIntZ[i] = 0
	}

	for c := 0; c < t.NumCells; c++ {
		cc := cellCentroids[c]
		for _, f := range t.CellsToFaces.Row(c) {
			ring := t.FacesToNodes.Row(f)
			facePts := make([]geom.Vec3, len(ring))
			for i, n := range ring {
				facePts[i] = pos[n]
			}
			faceC := geom.FaceCentroid(facePts)
			for _, n := range ring {
				left, right, _ := ringNeighbors(ring, n)
				si := t.SubcellIndex(c, n)
				for _, other := range [2]int{left, right} {
					he := geom.HalfEdge(pos[n], pos[other])
					vol, _ := geom.SubTetVolume(cc, faceC, he, pos[n])
					subVol[si] += vol
					subIntX[si] += vol * (cc.X + faceC.X + he.X + pos[n].X) / 4
					subIntY[si] += vol * (cc.Y + faceC.Y + he.Y + pos[n].Y) / 4
					subIntZ[si] += vol * (cc.Z + faceC.Z + he.Z + pos[n].Z) / 4
				}
			}
		}
	}

	for c := 0; c < t.NumCells; c++ {
		lo, hi := t.SubcellsOfCell(c)
		for si := lo; si < hi; si++ {
			subMass[si] = cellRho[c] * subVol[si]
			subIE[si] = cellRho[c] * cellE[c]
			n := t.SubcellNode(si)
			subMom[si] = nodeVel[n].Scale(subMass[si])
			if subVol[si] > 0 {
				subCentrd[si] = geom.Vec3{X: subIntX[si] / subVol[si], Y: subIntY[si] / subVol[si], Z: subIntZ[si] / subVol[si]}
			} else {
				subCentrd[si] = cellCentroids[c]
			}
		}
	}
}

// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"github.com/rocdat/hal3d/internal/geom"
	"github.com/rocdat/hal3d/internal/topo"
)

// cellCentroid returns the arithmetic mean of a cell's node positions.
func cellCentroid(t *topo.Topology, cell int, pos []geom.Vec3) geom.Vec3 {
	row := t.CellsToNodes.Row(cell)
	pts := make([]geom.Vec3, len(row))
	for i, n := range row {
		pts[i] = pos[n]
	}
	return geom.Mean(pts)
}

// ringNeighbors returns the node indices immediately to the left and right
// of nodeVal within a face's ordered node ring.
func ringNeighbors(ring []int, nodeVal int) (left, right int, ok bool) {
	n := len(ring)
	for i, v := range ring {
		if v == nodeVal {
			left = ring[(i-1+n)%n]
			right = ring[(i+1)%n]
			return left, right, true
		}
	}
	return 0, 0, false
}

// cellAndSubcellVolumes computes, for every cell, its total volume as the
// sum of oriented sub-tetrahedra (§4.1), and, for every subcell, the portion
// of that sum attributable to its corner node -- guaranteeing
// Σ subcell_volume == cell_volume exactly (spec.md §3, §8 property 2).
func cellAndSubcellVolumes(t *topo.Topology, pos []geom.Vec3, centroids []geom.Vec3) (cellVol, subVol []float64) {
	cellVol = make([]float64, t.NumCells)
	subVol = make([]float64, t.NumSubcells())
	for c := 0; c < t.NumCells; c++ {
		cc := centroids[c]
		for _, f := range t.CellsToFaces.Row(c) {
			ring := t.FacesToNodes.Row(f)
			facePts := make([]geom.Vec3, len(ring))
			for i, n := range ring {
				facePts[i] = pos[n]
			}
			faceC := geom.FaceCentroid(facePts)
			for _, n := range ring {
				left, right, _ := ringNeighbors(ring, n)
				heL := geom.HalfEdge(pos[n], pos[left])
				heR := geom.HalfEdge(pos[n], pos[right])
				volL, _ := geom.SubTetVolume(cc, faceC, heL, pos[n])
				volR, _ := geom.SubTetVolume(cc, faceC, heR, pos[n])
				contrib := volL + volR
				cellVol[c] += contrib
				si := t.SubcellIndex(c, n)
				subVol[si] += contrib
			}
		}
	}
	return cellVol, subVol
}

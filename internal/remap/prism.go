// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package remap implements the swept-edge ALE remap of spec.md §4.7: for
// every subcell face it builds the prism swept between the Lagrangian and
// rezoned mesh, performs a 3x3 least-squares gradient reconstruction over
// the subcell stencil, and applies a conservative flux increment between
// donor and acceptor subcells. Grounded on original_source/omp3/hale.c's
// (unfinished) swept-edge loop: the prism node table and the least-squares
// coefficient-matrix accumulation are kept as written there; the flux
// application that file never reached is new, designed to the conservation
// invariant spec.md §8 requires.
package remap

import "github.com/rocdat/hal3d/internal/geom"

// prismFacesToNodes is the fixed 6-face table of the reference swept-edge
// prism, shared by every subcell face (spec.md §4.7 step 4), grounded on
// hale.c's prism_faces_to_nodes: {0-1-2-3, 0-1-5-4, 0-3-7-4, 1-2-6-5,
// 4-5-6-7, 3-2-6-7}.
var prismFacesToNodes = [6][4]int{
	{0, 1, 2, 3},
	{0, 1, 5, 4},
	{0, 3, 7, 4},
	{1, 2, 6, 5},
	{4, 5, 6, 7},
	{3, 2, 6, 7},
}

// prismFaceSign orients each prismFacesToNodes ring: the table winds three of
// its faces one way around the prism and three the other, so those three are
// negated to make the six faces one consistently oriented closed surface.
var prismFaceSign = [6]float64{-1, 1, -1, 1, 1, -1}

// PrismNodes assembles the 8-node swept-edge prism of spec.md §4.7 step 3:
// four nodes from the Lagrangian mesh (right half-edge, neighbour face
// centroid, cell centroid, left half-edge) and their four rezoned
// counterparts.
func PrismNodes(heR, neighbourFaceC, cellC, heL, rzHeR, rzNeighbourFaceC, rzCellC, rzHeL geom.Vec3) [8]geom.Vec3 {
	return [8]geom.Vec3{heR, neighbourFaceC, cellC, heL, rzHeR, rzNeighbourFaceC, rzCellC, rzHeL}
}

// PrismIntegral returns the prism's signed volume and its weighted volume
// integral (∫x,∫y,∫z), via divergence-theorem surface integration: the
// prism's own centroid stands in as the apex of a tetrahedral fan over each
// of its six quadrilateral faces, mirroring internal/hydro's
// cellAndSubcellVolumes decomposition for cells. Unlike that function this
// uses geom.SignedTetVolume rather than geom.SubTetVolume: the remap needs
// the true sign of the swept volume (which way material crossed the face),
// not the always-non-negative convention the force sweep relies on. Both
// half-edge tets at a node are wound in ring order and scaled by the face's
// prismFaceSign, so the two halves of an edge add rather than cancel.
func PrismIntegral(nodes [8]geom.Vec3) (vol float64, integral geom.Vec3) {
	apex := geom.Mean(nodes[:])
	for fi, face := range prismFacesToNodes {
		ring := [4]geom.Vec3{nodes[face[0]], nodes[face[1]], nodes[face[2]], nodes[face[3]]}
		faceC := geom.FaceCentroid(ring[:])
		for i := 0; i < 4; i++ {
			node := ring[i]
			heL := geom.HalfEdge(node, ring[(i+3)%4])
			heR := geom.HalfEdge(node, ring[(i+1)%4])
			for _, tri := range [2][2]geom.Vec3{{heL, node}, {node, heR}} {
				tvol := prismFaceSign[fi] * geom.SignedTetVolume(apex, faceC, tri[0], tri[1])
				vol += tvol
				integral.X += tvol * (apex.X + faceC.X + tri[0].X + tri[1].X) / 4
				integral.Y += tvol * (apex.Y + faceC.Y + tri[0].Y + tri[1].Y) / 4
				integral.Z += tvol * (apex.Z + faceC.Z + tri[0].Z + tri[1].Z) / 4
			}
		}
	}
	return vol, integral
}

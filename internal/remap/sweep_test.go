// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remap

import (
	"math"
	"testing"

	"github.com/rocdat/hal3d/internal/geom"
)

// TestRemapConservesMass checks spec.md §4.7's core invariant: Σ subcell
// mass is unchanged by a remap call, for an arbitrary (non-identity)
// rezoned mesh.
func TestRemapConservesMass(t *testing.T) {
	tp := buildTwoCellLine(t)
	pos := unitCubePositions()
	rzPos := make([]geom.Vec3, len(pos))
	copy(rzPos, pos)
	// perturb the rezoned mesh's shared interior node ring slightly, so the
	// remap has real (non-degenerate) swept volumes to redistribute.
	for _, n := range []int{4, 5, 6, 7} {
		rzPos[n] = pos[n].Add(geom.Vec3{X: 0.1, Y: 0.05, Z: 0})
	}

	ns := tp.NumSubcells()
	geo := Geometry{
		Vol: make([]float64, ns), IntX: make([]float64, ns), IntY: make([]float64, ns), IntZ: make([]float64, ns),
		Centroid: make([]geom.Vec3, ns),
	}
	cellCentroids := make([]geom.Vec3, tp.NumCells)
	rzCellCentroids := make([]geom.Vec3, tp.NumCells)
	for c := 0; c < tp.NumCells; c++ {
		var sum, rzSum geom.Vec3
		row := tp.CellsToNodes.Row(c)
		for _, n := range row {
			sum = sum.Add(pos[n])
			rzSum = rzSum.Add(rzPos[n])
		}
		cellCentroids[c] = sum.Scale(1.0 / float64(len(row)))
		rzCellCentroids[c] = rzSum.Scale(1.0 / float64(len(row)))
	}

	for c := 0; c < tp.NumCells; c++ {
		cc := cellCentroids[c]
		for _, face := range tp.CellsToFaces.Row(c) {
			ring := tp.FacesToNodes.Row(face)
			faceC := faceCentroidOf(ring, pos)
			for _, n := range ring {
				left, right, _ := ringNeighbors(ring, n)
				si := tp.SubcellIndex(c, n)
				for _, other := range [2]int{left, right} {
					he := geom.HalfEdge(pos[n], pos[other])
					vol, _ := geom.SubTetVolume(cc, faceC, he, pos[n])
					geo.Vol[si] += vol
					geo.IntX[si] += vol * (cc.X + faceC.X + he.X + pos[n].X) / 4
					geo.IntY[si] += vol * (cc.Y + faceC.Y + he.Y + pos[n].Y) / 4
					geo.IntZ[si] += vol * (cc.Z + faceC.Z + he.Z + pos[n].Z) / 4
				}
			}
		}
	}
	for i := 0; i < ns; i++ {
		if geo.Vol[i] > 0 {
			geo.Centroid[i] = geom.Vec3{X: geo.IntX[i] / geo.Vol[i], Y: geo.IntY[i] / geo.Vol[i], Z: geo.IntZ[i] / geo.Vol[i]}
		}
	}

	f := Fields{
		Mass: make([]float64, ns), IE: make([]float64, ns),
		MomX: make([]float64, ns), MomY: make([]float64, ns), MomZ: make([]float64, ns),
	}
	var totalMass0 float64
	for i := 0; i < ns; i++ {
		f.Mass[i] = geo.Vol[i] * 2.5
		f.IE[i] = geo.Vol[i] * 1.3
		totalMass0 += f.Mass[i]
	}

	Remap(tp, pos, rzPos, cellCentroids, rzCellCentroids, geo, f, nil)

	var totalMass1 float64
	for _, m := range f.Mass {
		totalMass1 += m
	}
	if math.Abs(totalMass1-totalMass0) > 1e-9*math.Abs(totalMass0) {
		t.Fatalf("remap did not conserve mass: before=%v after=%v", totalMass0, totalMass1)
	}
	for i, m := range f.Mass {
		if m < -1e-9 {
			t.Fatalf("subcell %d: remap produced negative mass %v", i, m)
		}
	}
}

// TestRemapIdentityIsNoop checks spec.md §8 property 4: when the rezoned
// mesh equals the Lagrangian mesh, the remap moves nothing.
func TestRemapIdentityIsNoop(t *testing.T) {
	tp := buildTwoCellLine(t)
	pos := unitCubePositions()
	ns := tp.NumSubcells()

	geo := Geometry{
		Vol: make([]float64, ns), IntX: make([]float64, ns), IntY: make([]float64, ns), IntZ: make([]float64, ns),
		Centroid: make([]geom.Vec3, ns),
	}
	cellCentroids := make([]geom.Vec3, tp.NumCells)
	for c := 0; c < tp.NumCells; c++ {
		var sum geom.Vec3
		row := tp.CellsToNodes.Row(c)
		for _, n := range row {
			sum = sum.Add(pos[n])
		}
		cellCentroids[c] = sum.Scale(1.0 / float64(len(row)))
	}
	for i := range geo.Vol {
		geo.Vol[i] = 1
		geo.Centroid[i] = geom.Vec3{}
	}

	f := Fields{Mass: make([]float64, ns), IE: make([]float64, ns), MomX: make([]float64, ns), MomY: make([]float64, ns), MomZ: make([]float64, ns)}
	for i := range f.Mass {
		f.Mass[i] = 7
		f.IE[i] = 3
	}
	before := append([]float64(nil), f.Mass...)

	Remap(tp, pos, pos, cellCentroids, cellCentroids, geo, f, nil)

	for i, m := range f.Mass {
		if math.Abs(m-before[i]) > 1e-9 {
			t.Fatalf("subcell %d: identity remap should be a no-op, before=%v after=%v", i, before[i], m)
		}
	}
}

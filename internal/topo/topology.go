// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"github.com/rocdat/hal3d/internal/herr"
)

// FacePair is the fixed (c0,c1) pair of cells adjacent to a face; -1 means
// "no cell on this side" (boundary), per spec.md §3.
type FacePair struct {
	C0, C1 int
}

// Topology holds every connectivity array of spec.md §3. It is built once
// (see Build) and is read-only for the remainder of the run; kernels borrow
// it without copying.
type Topology struct {
	NumNodes, NumFaces, NumCells int

	CellsToNodes CSR
	CellsToFaces CSR
	FacesToNodes CSR
	NodesToFaces CSR
	NodesToCells CSR

	FacesToCells []FacePair // len NumFaces

	// Subcells: one per (cell,node) pair. The subcell index space is exactly
	// the index space of CellsToNodes.Flat, so subcell i corresponds to
	// cell cellOfSubcell[i] and node CellsToNodes.Flat[i] -- this mirrors
	// the reference implementation's reuse of cells_offsets/cells_to_nodes
	// for subcell enumeration.
	SubcellsToFaces    CSR
	SubcellsToSubcells CSR
	cellOfSubcell      []int

	Boundaries map[int]Boundary // node index -> boundary description
}

// NumSubcells returns Σ|nodes(cell)|, the total subcell count.
func (t *Topology) NumSubcells() int { return len(t.CellsToNodes.Flat) }

// SubcellNode returns the node owning subcell i.
func (t *Topology) SubcellNode(i int) int { return t.CellsToNodes.Flat[i] }

// SubcellCell returns the cell owning subcell i.
func (t *Topology) SubcellCell(i int) int { return t.cellOfSubcell[i] }

// SubcellsOfCell returns the [lo,hi) range of subcell indices for a cell;
// subcells of a cell are exactly CellsToNodes' row for that cell.
func (t *Topology) SubcellsOfCell(cell int) (lo, hi int) {
	return t.CellsToNodes.Offsets[cell], t.CellsToNodes.Offsets[cell+1]
}

// SubcellIndex returns the subcell index for the (cell,node) pair, or -1 if
// node is not a corner of cell.
func (t *Topology) SubcellIndex(cell, node int) int {
	lo, hi := t.SubcellsOfCell(cell)
	for i := lo; i < hi; i++ {
		if t.CellsToNodes.Flat[i] == node {
			return i
		}
	}
	return -1
}

// Build assembles a Topology from raw connectivity and runs Validate.
// subcells->faces and subcells->subcells (spec.md §3's "six neighbouring
// subcells across its six reference faces") are derived automatically from
// the combinatorial topology, not supplied by the caller: they depend only
// on which mesh faces and cell-edges are incident to each (cell,node) pair,
// never on node positions, so they can (and should) be computed once here.
func Build(numNodes, numFaces, numCells int,
	cellsToNodes, cellsToFaces, facesToNodes [][]int,
	facesToCells []FacePair,
	boundaries map[int]Boundary) (*Topology, error) {

	t := &Topology{
		NumNodes:     numNodes,
		NumFaces:     numFaces,
		NumCells:     numCells,
		CellsToNodes: NewCSR(cellsToNodes),
		CellsToFaces: NewCSR(cellsToFaces),
		FacesToNodes: NewCSR(facesToNodes),
		FacesToCells: facesToCells,
		Boundaries:   boundaries,
	}
	t.NodesToFaces = invertCSR(t.FacesToNodes, numNodes)
	t.NodesToCells = invertCSR(cellsToNodesAsFlat(cellsToNodes), numNodes)
	t.cellOfSubcell = make([]int, len(t.CellsToNodes.Flat))
	for c := 0; c < numCells; c++ {
		for i := t.CellsToNodes.Offsets[c]; i < t.CellsToNodes.Offsets[c+1]; i++ {
			t.cellOfSubcell[i] = c
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.buildSubcellStencils()
	return t, nil
}

// buildSubcellStencils derives, for every subcell (c,n):
//   - its own reference faces: the mesh faces of c that are incident on n
//   - its stencil neighbours: for each own face, the subcell across that
//     face in the adjacent cell (the "external" neighbour, same node n);
//     plus, for every pair of own faces that share an edge at n, the
//     sibling subcell at the other end of that edge within c (the
//     "internal" neighbour). For a hexahedral corner whose three own faces
//     are all interior this yields 3 external + 3 internal = 6 neighbours;
//     a boundary face adds no external neighbour, so boundary subcells have
//     fewer.
func (t *Topology) buildSubcellStencils() {
	ns := t.NumSubcells()
	faceRows := make([][]int, ns)
	subRows := make([][]int, ns)
	for i := 0; i < ns; i++ {
		c := t.cellOfSubcell[i]
		n := t.CellsToNodes.Flat[i]

		var ownFaces []int
		for _, f := range t.CellsToFaces.Row(c) {
			if containsInt(t.FacesToNodes.Row(f), n) {
				ownFaces = append(ownFaces, f)
			}
		}
		faceRows[i] = ownFaces

		neighbourSet := map[int]bool{}
		var neighbours []int
		addNeighbour := func(sub int) {
			if sub >= 0 && !neighbourSet[sub] {
				neighbourSet[sub] = true
				neighbours = append(neighbours, sub)
			}
		}
		for _, f := range ownFaces {
			pair := t.FacesToCells[f]
			other := pair.C0
			if other == c {
				other = pair.C1
			}
			if other >= 0 {
				addNeighbour(t.SubcellIndex(other, n))
			}
			ring := t.FacesToNodes.Row(f)
			left, right, ok := ringNeighborsFor(ring, n)
			if ok {
				addNeighbour(t.SubcellIndex(c, left))
				addNeighbour(t.SubcellIndex(c, right))
			}
		}
		subRows[i] = neighbours
	}
	t.SubcellsToFaces = NewCSR(faceRows)
	t.SubcellsToSubcells = NewCSR(subRows)
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// ringNeighborsFor returns the node indices immediately before/after nodeVal
// in an ordered ring (duplicated here, rather than imported, to keep topo
// free of a dependency on the hydro package's geometry-adjacent helpers).
func ringNeighborsFor(ring []int, nodeVal int) (left, right int, ok bool) {
	n := len(ring)
	for i, v := range ring {
		if v == nodeVal {
			return ring[(i-1+n)%n], ring[(i+1)%n], true
		}
	}
	return 0, 0, false
}

func cellsToNodesAsFlat(rows [][]int) CSR { return NewCSR(rows) }

// invertCSR builds the transpose relation: for src (e.g. faces->nodes with
// numTargets nodes), returns nodes->faces.
func invertCSR(src CSR, numTargets int) CSR {
	counts := make([]int, numTargets)
	for _, v := range src.Flat {
		counts[v]++
	}
	offs := make([]int, numTargets+1)
	for i := 0; i < numTargets; i++ {
		offs[i+1] = offs[i] + counts[i]
	}
	flat := make([]int, len(src.Flat))
	cursor := append([]int(nil), offs[:numTargets]...)
	for row := 0; row < src.NumRows(); row++ {
		for _, v := range src.Row(row) {
			flat[cursor[v]] = row
			cursor[v]++
		}
	}
	return CSR{Offsets: offs, Flat: flat}
}

// Validate checks the invariants of spec.md §3:
//   - every face lists two distinct cells (or -1 for boundary)
//   - faces->cells lists every face exactly once (trivially true: it is a
//     fixed-size array indexed by face)
//   - each cell's cells->faces contains only faces whose faces->cells
//     includes that cell
func (t *Topology) Validate() error {
	if len(t.FacesToCells) != t.NumFaces {
		return herr.New(herr.MeshInvalid, "topo.Validate", "faces->cells has %d entries, want %d", len(t.FacesToCells), t.NumFaces)
	}
	for f, pair := range t.FacesToCells {
		if pair.C0 == pair.C1 {
			return herr.New(herr.MeshInvalid, "topo.Validate", "face %d lists the same cell (%d) on both sides", f, pair.C0)
		}
		if pair.C0 < -1 || pair.C0 >= t.NumCells || pair.C1 < -1 || pair.C1 >= t.NumCells {
			return herr.New(herr.MeshInvalid, "topo.Validate", "face %d has out-of-range cell reference (%d,%d)", f, pair.C0, pair.C1)
		}
	}
	for c := 0; c < t.NumCells; c++ {
		for _, f := range t.CellsToFaces.Row(c) {
			pair := t.FacesToCells[f]
			if pair.C0 != c && pair.C1 != c {
				return herr.New(herr.MeshInvalid, "topo.Validate", "cell %d claims face %d, but face's cell pair is (%d,%d)", c, f, pair.C0, pair.C1)
			}
		}
	}
	if err := t.CellsToNodes.Validate(t.NumNodes); err != nil {
		return err
	}
	if err := t.FacesToNodes.Validate(t.NumNodes); err != nil {
		return err
	}
	if err := t.CellsToFaces.Validate(t.NumFaces); err != nil {
		return err
	}
	return nil
}

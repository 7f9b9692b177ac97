// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dump implements the optional debug dump of spec.md §6: "node
// positions and one cell-centered scalar field per call, in an
// external-tool-compatible ASCII format (out of scope here)". Built as a
// legacy VTK ASCII UNSTRUCTURED_GRID file -- readable directly by VisIt and
// ParaView -- assembled the way gofem's tools/GenVtu.go builds its VTU
// output: format into a bytes.Buffer with gosl/io.Ff, then flush with
// gosl/io.WriteFileVD.
package dump

import (
	"bytes"

	"github.com/cpmech/gosl/io"
	"github.com/rocdat/hal3d/internal/geom"
	"github.com/rocdat/hal3d/internal/topo"
)

// vtkHexahedron is the legacy-VTK cell-type code for an 8-node hexahedron.
const vtkHexahedron = 12

// Write emits one ASCII VTK file at dir/fnkey_<step>.vtk: every node
// position and a single cell-centered scalar field named label.
func Write(dir, fnkey string, step int, t *topo.Topology, pos []geom.Vec3, cellScalar []float64, label string) {
	var buf bytes.Buffer

	io.Ff(&buf, "# vtk DataFile Version 3.0\n")
	io.Ff(&buf, "%s step %d\n", fnkey, step)
	io.Ff(&buf, "ASCII\n")
	io.Ff(&buf, "DATASET UNSTRUCTURED_GRID\n")

	io.Ff(&buf, "POINTS %d float\n", t.NumNodes)
	for _, p := range pos {
		io.Ff(&buf, "%.10e %.10e %.10e\n", p.X, p.Y, p.Z)
	}

	io.Ff(&buf, "CELLS %d %d\n", t.NumCells, t.NumCells*9)
	for c := 0; c < t.NumCells; c++ {
		row := t.CellsToNodes.Row(c)
		io.Ff(&buf, "%d", len(row))
		for _, n := range row {
			io.Ff(&buf, " %d", n)
		}
		io.Ff(&buf, "\n")
	}

	io.Ff(&buf, "CELL_TYPES %d\n", t.NumCells)
	for c := 0; c < t.NumCells; c++ {
		io.Ff(&buf, "%d\n", vtkHexahedron)
	}

	io.Ff(&buf, "CELL_DATA %d\n", t.NumCells)
	io.Ff(&buf, "SCALARS %s float 1\n", label)
	io.Ff(&buf, "LOOKUP_TABLE default\n")
	for _, v := range cellScalar {
		io.Ff(&buf, "%.10e\n", v)
	}

	fn := io.Sf("%s_%06d.vtk", fnkey, step)
	io.WriteFileVD(dir, fn, &buf)
}

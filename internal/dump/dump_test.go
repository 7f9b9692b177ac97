// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dump

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rocdat/hal3d/internal/meshbuild"
)

// TestWriteProducesWellFormedVTK checks that the emitted legacy-VTK ASCII
// file's POINTS/CELLS/CELL_DATA counts match the topology it was given, so a
// VisIt/ParaView reader can parse it (spec.md §6's "external-tool-compatible
// ASCII format").
func TestWriteProducesWellFormedVTK(t *testing.T) {
	b, err := meshbuild.Build(2, 2, 2, 1.0, 1.0, 1.0, meshbuild.BoundarySpec{})
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	rho := make([]float64, b.Topo.NumCells)
	for c := range rho {
		rho[c] = float64(c) + 1
	}

	dir := "/tmp/hal3d/dump_test"
	Write(dir, "hal3d", 3, b.Topo, b.NodePos, rho, "density")

	path := filepath.Join(dir, "hal3d_000003.vtk")
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected Write to produce %s: %v", path, err)
	}
	text := string(raw)

	if !strings.HasPrefix(text, "# vtk DataFile Version 3.0\n") {
		t.Fatalf("missing VTK legacy header, got:\n%s", text)
	}
	if want := "POINTS " + strconv.Itoa(b.Topo.NumNodes) + " float"; !strings.Contains(text, want) {
		t.Fatalf("expected %q in output", want)
	}
	if want := "CELLS " + strconv.Itoa(b.Topo.NumCells); !strings.Contains(text, want) {
		t.Fatalf("expected %q in output", want)
	}
	if want := "CELL_DATA " + strconv.Itoa(b.Topo.NumCells); !strings.Contains(text, want) {
		t.Fatalf("expected %q in output", want)
	}
	if !strings.Contains(text, "SCALARS density float 1") {
		t.Fatalf("expected a density SCALARS block, got:\n%s", text)
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	var pointLines int
	for _, l := range lines {
		if l == "" {
			continue
		}
		fields := strings.Fields(l)
		if len(fields) == 3 {
			pointLines++
		}
	}
	if pointLines < b.Topo.NumNodes {
		t.Fatalf("expected at least %d point coordinate lines, found %d", b.Topo.NumNodes, pointLines)
	}
}

// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"github.com/cpmech/gosl/utl"
	"github.com/rocdat/hal3d/internal/geom"
	"github.com/rocdat/hal3d/internal/herr"
	"github.com/rocdat/hal3d/internal/topo"
)

// minEdgeLength returns the shortest edge among a cell's faces, by scanning
// each face's node ring (§4.4).
func minEdgeLength(t *topo.Topology, cell int, pos []geom.Vec3) float64 {
	minLen := -1.0
	for _, f := range t.CellsToFaces.Row(cell) {
		ring := t.FacesToNodes.Row(f)
		n := len(ring)
		for i := 0; i < n; i++ {
			a, b := ring[i], ring[(i+1)%n]
			d := pos[a].Sub(pos[b]).Norm()
			if minLen < 0 || d < minLen {
				minLen = d
			}
		}
	}
	return minLen
}

// SelectTimeStep implements §4.4: dt = CFL * min_c(min_edge_c / cs_c), and
// raises herr.TimestepCollapse if the result underflows cfg.MinDt.
func SelectTimeStep(t *topo.Topology, cfg Config, pos []geom.Vec3, e []float64) (float64, error) {
	dt := -1.0
	for c := 0; c < t.NumCells; c++ {
		cs := soundSpeed(cfg.Gamma, e[c])
		if cs <= 0 {
			continue
		}
		minEdge := minEdgeLength(t, c, pos)
		candidate := minEdge / cs
		if dt < 0 {
			dt = candidate
		} else {
			dt = utl.Min(dt, candidate)
		}
	}
	if dt < 0 {
		dt = cfg.MaxDt
	}
	dt *= cfg.CFL
	if cfg.MaxDt > 0 && dt > cfg.MaxDt {
		dt = cfg.MaxDt
	}
	if dt < cfg.MinDt {
		return dt, herr.New(herr.TimestepCollapse, "hydro.SelectTimeStep", "dt=%g below floor=%g", dt, cfg.MinDt)
	}
	return dt, nil
}

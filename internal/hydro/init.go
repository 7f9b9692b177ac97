// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"github.com/rocdat/hal3d/internal/geom"
)

// Init seeds the Lagrangian state (spec.md §2 "Initialization"): computes
// cell mass from initial density and cell volume, zeroes all accumulators,
// and sets the predicted/time-centered slots equal to the initial ones.
func Init(s *State, initPos []geom.Vec3, initRho, initE []float64) {
	copy(s.NodePos0, initPos)
	copy(s.NodePos1, initPos)
	copy(s.NodePosRz, initPos)
	copy(s.CellRho0, initRho)
	copy(s.CellE0, initE)

	for c := 0; c < s.Topo.NumCells; c++ {
		s.CellCentroid0[c] = cellCentroid(s.Topo, c, s.NodePos0)
	}
	cellVol, subVol := cellAndSubcellVolumes(s.Topo, s.NodePos0, s.CellCentroid0)
	copy(s.CellVol0, cellVol)
	copy(s.SubVol, subVol)

	for c := 0; c < s.Topo.NumCells; c++ {
		s.CellMass[c] = initRho[c] * cellVol[c]
		s.CellP0[c] = pressure(s.Cfg.Gamma, initE[c], initRho[c])
	}

	for i := range s.NodeVel0 {
		s.NodeVel0[i] = geom.Vec3{}
		s.NodeVel1[i] = geom.Vec3{}
	}
	s.ZeroNodalAccumulators()
	s.ZeroNodalMass()
}

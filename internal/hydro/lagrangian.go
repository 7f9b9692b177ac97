// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"github.com/rocdat/hal3d/internal/geom"
	"github.com/rocdat/hal3d/internal/profile"
)

// StepResult reports the diagnostics of one completed Lagrangian step.
type StepResult struct {
	Dt float64
}

// Step advances s by one full predictor/corrector Lagrangian step (§4.3).
// It mutates s in place: positions, velocities, cell energy/density/pressure
// and every nodal accumulator. dtGuess is the time step used for the
// predictor half; the corrector uses the CFL-recomputed value from the
// predicted mesh, per step 8.
func Step(s *State, dtGuess float64, prof *profile.Sink) (StepResult, error) {
	t := s.Topo
	cfg := s.Cfg

	// 1. zero accumulators
	s.ZeroNodalAccumulators()

	// 2. equation of state
	EOSForAllCells(cfg.Gamma, s.CellRho0, s.CellE0, s.CellP0)

	// 3. predictor nodal sweep (accumulates nodal mass -- frozen henceforth)
	nodalSweep(t, cfg.Gamma, s.NodePos0, s.CellCentroid0, s.CellRho0, s.CellE0, s.CellP0,
		true, s.NodalMass, s.NodalVol, s.NodalCs, s.ForceP)
	s.NodeMassFr = true

	// 4. optional artificial viscosity
	if cfg.EnableViscos {
		ApplyArtificialViscosity(t, cfg, s.NodePos0, s.NodeVel0, s.CellCentroid0,
			s.NodalMass, s.NodalVol, s.NodalCs, nil, s.ForceP, prof)
	}

	// 5. velocity predict + time-center
	for n := 0; n < t.NumNodes; n++ {
		var v1 geom.Vec3
		if s.NodalMass[n] > 0 {
			v1 = s.NodeVel0[n].Add(s.ForceP[n].Scale(dtGuess / s.NodalMass[n]))
		} else {
			v1 = s.NodeVel0[n]
		}
		s.NodeVel1[n] = geom.Vec3{
			X: 0.5 * (s.NodeVel0[n].X + v1.X),
			Y: 0.5 * (s.NodeVel0[n].Y + v1.Y),
			Z: 0.5 * (s.NodeVel0[n].Z + v1.Z),
		}
	}

	// 6. reflect boundary velocities
	ReflectBoundaryVelocities(t, s.NodeVel1)

	// 7. position predict
	for n := 0; n < t.NumNodes; n++ {
		s.NodePos1[n] = s.NodePos0[n].Add(s.NodeVel1[n].Scale(dtGuess))
	}

	// 8. recompute dt under CFL using predicted positions and energy0
	dt, err := SelectTimeStep(t, cfg, s.NodePos1, s.CellE0)
	if err != nil {
		return StepResult{}, err
	}

	// 9. predicted cell energy from time-centered pressure work
	predCellVol, predCentroids := cellVolumes(t, s.NodePos1)
	w := cellPressureWork(t, s.NodePos1, s.NodeVel1, predCentroids, s.CellP0)
	for c := 0; c < t.NumCells; c++ {
		s.CellE1[c] = s.CellE0[c] - dt*w[c]/s.CellMass[c]
	}

	// 10. predicted cell density from the predicted volume
	for c := 0; c < t.NumCells; c++ {
		s.CellRho1[c] = s.CellMass[c] / predCellVol[c]
	}

	// 11. time-center pressure
	for c := 0; c < t.NumCells; c++ {
		pNew := pressure(cfg.Gamma, s.CellE1[c], s.CellRho1[c])
		s.CellP1[c] = 0.5 * (s.CellP0[c] + pNew)
	}

	// 12. time-center positions & reset nodal accumulators
	for n := 0; n < t.NumNodes; n++ {
		s.NodePos1[n] = geom.Vec3{
			X: 0.5 * (s.NodePos0[n].X + s.NodePos1[n].X),
			Y: 0.5 * (s.NodePos0[n].Y + s.NodePos1[n].Y),
			Z: 0.5 * (s.NodePos0[n].Z + s.NodePos1[n].Z),
		}
	}
	s.ZeroNodalAccumulators()

	// 13. corrector cell centroids from x1
	for c := 0; c < t.NumCells; c++ {
		s.CellCentroid1[c] = cellCentroid(t, c, s.NodePos1)
	}

	// 14. corrector nodal sweep (do not recompute nodal mass)
	nodalSweep(t, cfg.Gamma, s.NodePos1, s.CellCentroid1, s.CellRho1, s.CellE1, s.CellP1,
		false, s.NodalMass, s.NodalVol, s.NodalCs, s.ForceP)

	// 15. optional artificial viscosity, using v1
	if cfg.EnableViscos {
		ApplyArtificialViscosity(t, cfg, s.NodePos1, s.NodeVel1, s.CellCentroid1,
			s.NodalMass, s.NodalVol, s.NodalCs, nil, s.ForceP, prof)
	}

	// 16. velocity correct
	for n := 0; n < t.NumNodes; n++ {
		var vCorr geom.Vec3
		if s.NodalMass[n] > 0 {
			vCorr = s.NodeVel1[n].Add(s.ForceP[n].Scale(dt / s.NodalMass[n]))
		} else {
			vCorr = s.NodeVel1[n]
		}
		s.NodeVel1[n] = vCorr
		s.NodeVel0[n] = geom.Vec3{
			X: 0.5 * (s.NodeVel0[n].X + vCorr.X),
			Y: 0.5 * (s.NodeVel0[n].Y + vCorr.Y),
			Z: 0.5 * (s.NodeVel0[n].Z + vCorr.Z),
		}
	}

	// 17. reflect
	ReflectBoundaryVelocities(t, s.NodeVel0)

	// 18. position correct
	for n := 0; n < t.NumNodes; n++ {
		s.NodePos0[n] = s.NodePos0[n].Add(s.NodeVel0[n].Scale(dt))
	}

	// 19. recompute cell centroids, dt, energy, density over the corrected mesh
	for c := 0; c < t.NumCells; c++ {
		s.CellCentroid0[c] = cellCentroid(t, c, s.NodePos0)
	}
	finalDt, err := SelectTimeStep(t, cfg, s.NodePos0, s.CellE1)
	if err != nil {
		return StepResult{}, err
	}
	finalVol, finalCentroids := cellVolumes(t, s.NodePos0)
	wFinal := cellPressureWork(t, s.NodePos0, s.NodeVel0, finalCentroids, s.CellP1)
	for c := 0; c < t.NumCells; c++ {
		s.CellE0[c] = s.CellE1[c] - dt*wFinal[c]/s.CellMass[c]
		s.CellRho0[c] = s.CellMass[c] / finalVol[c]
		s.CellVol0[c] = finalVol[c]
	}

	return StepResult{Dt: finalDt}, nil
}

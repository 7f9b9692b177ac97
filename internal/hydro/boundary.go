// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"github.com/rocdat/hal3d/internal/geom"
	"github.com/rocdat/hal3d/internal/topo"
)

// ReflectBoundaryVelocities applies §4.6: for every Reflect boundary node,
// project the velocity onto the tangent plane of its outward normal. Fixed
// nodes are clamped to their configured velocity; Outflow and Interior are
// no-ops, matching the tagged-variant dispatch of design note §9.
func ReflectBoundaryVelocities(t *topo.Topology, vel []geom.Vec3) {
	for n, b := range t.Boundaries {
		switch b.Kind {
		case topo.Reflect:
			nrm := geom.Vec3{X: b.Normal[0], Y: b.Normal[1], Z: b.Normal[2]}
			v := vel[n]
			vn := v.Dot(nrm)
			vel[n] = v.Sub(nrm.Scale(vn))
		case topo.Fixed:
			vel[n] = geom.Vec3{X: b.Vel[0], Y: b.Vel[1], Z: b.Vel[2]}
		case topo.Outflow, topo.Interior:
			// no-op
		}
	}
}

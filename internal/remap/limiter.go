// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remap

import (
	"github.com/rocdat/hal3d/internal/geom"
	"github.com/rocdat/hal3d/internal/topo"
)

// LimitGradient applies a Barth-Jespersen-style slope limiter to grad
// (spec.md §4.7 step 5): it scales grad by the largest α in [0,1] such that
// the linear extrapolation q(subcell) + ∇q·(centroid_j - centroid_subcell)
// stays within [min,max] of q over subcell's own stencil, for every
// neighbour j.
func LimitGradient(t *topo.Topology, g Geometry, q []float64, subcell int, grad geom.Vec3) geom.Vec3 {
	neighbours := t.SubcellsToSubcells.Row(subcell)
	if len(neighbours) == 0 {
		return grad
	}
	qSelf := q[subcell]
	qMin, qMax := qSelf, qSelf
	for _, nb := range neighbours {
		if q[nb] < qMin {
			qMin = q[nb]
		}
		if q[nb] > qMax {
			qMax = q[nb]
		}
	}

	alpha := 1.0
	cSelf := g.Centroid[subcell]
	for _, nb := range neighbours {
		delta := grad.Dot(g.Centroid[nb].Sub(cSelf))
		var phi float64
		switch {
		case delta > 0:
			phi = (qMax - qSelf) / delta
		case delta < 0:
			phi = (qMin - qSelf) / delta
		default:
			phi = 1
		}
		if phi < alpha {
			alpha = phi
		}
	}
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return grad.Scale(alpha)
}

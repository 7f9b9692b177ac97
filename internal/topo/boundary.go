// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

// BoundaryKind tags the variant of a boundary node (design note §9: "Tagged
// boundary kinds" -- replaces a raw integer boundary_type with a dispatched
// variant).
type BoundaryKind int

const (
	Interior BoundaryKind = iota
	Reflect
	Fixed
	Outflow
)

// Boundary describes a single boundary node's reflection/fixed-velocity
// behavior (spec.md §3 "Boundary node", §4.6).
type Boundary struct {
	Kind   BoundaryKind
	Normal [3]float64 // used by Reflect
	Vel    [3]float64 // used by Fixed
}

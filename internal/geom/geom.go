// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom implements the pure geometric kernels used by the Lagrangian
// step and the swept-edge remap: face/cell centroids, half-edge midpoints,
// signed area vectors with orientation correction, sub-tetrahedral volumes
// and small dense linear algebra (3x3 inverse, triple product).
//
// Every function here is a pure function of node coordinates; none mutate
// mesh or state.
package geom

import (
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// Vec3 is a Cartesian vector or point.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns a+b.
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns a-b.
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Scale returns s*a.
func (a Vec3) Scale(s float64) Vec3 { return Vec3{s * a.X, s * a.Y, s * a.Z} }

// Dot returns a.b using gosl/utl's 3D dot product.
func (a Vec3) Dot(b Vec3) float64 {
	return utl.Dot3d([]float64{a.X, a.Y, a.Z}, []float64{b.X, b.Y, b.Z})
}

// Cross returns a x b using gosl/utl's 3D cross product.
func (a Vec3) Cross(b Vec3) Vec3 {
	c := make([]float64, 3)
	utl.Cross3d(c, []float64{a.X, a.Y, a.Z}, []float64{b.X, b.Y, b.Z})
	return Vec3{c[0], c[1], c[2]}
}

// Norm returns the Euclidean length of a.
func (a Vec3) Norm() float64 {
	return la.VecNorm([]float64{a.X, a.Y, a.Z})
}

// Mean returns the arithmetic mean of pts. Panics if pts is empty; callers
// always pass a non-empty node ring.
func Mean(pts []Vec3) Vec3 {
	var m Vec3
	for _, p := range pts {
		m = m.Add(p)
	}
	n := float64(len(pts))
	return Vec3{m.X / n, m.Y / n, m.Z / n}
}

// FaceCentroid is the arithmetic mean of a face's node positions (§4.1).
func FaceCentroid(facePos []Vec3) Vec3 { return Mean(facePos) }

// CellCentroid is the arithmetic mean of a cell's node positions.
func CellCentroid(cellPos []Vec3) Vec3 { return Mean(cellPos) }

// HalfEdge returns the midpoint between two node positions (§4.1).
func HalfEdge(a, b Vec3) Vec3 {
	return Vec3{0.5 * (a.X + b.X), 0.5 * (a.Y + b.Y), 0.5 * (a.Z + b.Z)}
}

// SignedAreaVector computes S = 0.5*(a x b) per spec.md's sign convention,
// then orientation-corrects it against ab: if S.ab < 0, S is flipped so that
// the returned vector always satisfies S.ab >= 0 (property 3 of §8). The
// returned scalar is S.ab (non-negative) for callers that need it directly
// (e.g. the sub-tet volume, which is this dotted quantity over 3).
func SignedAreaVector(a, b, ab Vec3) (s Vec3, sDotAB float64) {
	s = Vec3{
		X: 0.5 * (a.Y*b.Z - a.Z*b.Y),
		Y: -0.5 * (a.X*b.Z - a.Z*b.X),
		Z: 0.5 * (a.X*b.Y - a.Y*b.X),
	}
	d := s.Dot(ab)
	if d < 0 {
		s = s.Scale(-1)
		d = -d
	}
	return s, d
}

// SubTetVolume builds the sub-tetrahedron (cellCentroid, faceCentroid,
// halfEdge, node) and returns its volume (1/3)*|S.ab| together with the
// orientation-corrected area vector, per §4.1. ab runs from the node being
// served toward the half-edge (ab = halfEdge - node).
func SubTetVolume(cellCentroid, faceCentroid, halfEdge, node Vec3) (vol float64, s Vec3) {
	a := faceCentroid.Sub(cellCentroid)
	b := faceCentroid.Sub(halfEdge)
	ab := halfEdge.Sub(node)
	s, sDotAB := SignedAreaVector(a, b, ab)
	vol = sDotAB / 3.0
	return vol, s
}

// TripleProduct returns a.(b x c).
func TripleProduct(a, b, c Vec3) float64 {
	return a.Dot(b.Cross(c))
}

// SignedTetVolume returns the signed volume of the tetrahedron (p0,p1,p2,p3),
// positive or negative depending on vertex winding. Unlike SubTetVolume this
// never orientation-corrects: the remap's swept-edge prism integrals (§4.7)
// need the sign to tell which way material crossed a face, which
// SubTetVolume's S.ab>=0 convention (needed for the force sweep) would erase.
func SignedTetVolume(p0, p1, p2, p3 Vec3) float64 {
	return TripleProduct(p1.Sub(p0), p2.Sub(p0), p3.Sub(p0)) / 6.0
}

const invertEps = 1e-300

// ErrNonInvertible is returned by Invert3x3 when |det(M)| is below a
// numerical floor; callers map this to herr.NonInvertibleMatrix.
var ErrNonInvertible = errNonInvertible{}

type errNonInvertible struct{}

func (errNonInvertible) Error() string { return "matrix is not invertible" }

// Invert3x3 computes the inverse of a row-major 3x3 matrix by classical
// cofactor expansion, matching the reference implementation's
// calc_3x3_inverse. Returns ErrNonInvertible if |det| < eps.
func Invert3x3(m [3][3]float64) (inv [3][3]float64, err error) {
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	if absf(det) < invertEps {
		return inv, ErrNonInvertible
	}
	invDet := 1.0 / det
	inv[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) * invDet
	inv[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * invDet
	inv[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) * invDet
	inv[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) * invDet
	inv[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * invDet
	inv[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * invDet
	inv[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) * invDet
	inv[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * invDet
	inv[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * invDet
	return inv, nil
}

// MulVec returns m*v for a row-major 3x3 matrix m.
func MulVec(m [3][3]float64, v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

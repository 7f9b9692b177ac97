// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package meshbuild implements the structured-brick mesh generator that
// instantiates the "external mesh builder" collaborator of spec.md §6
// (nx,ny,nz / width,height,depth) as a concrete component, since the
// end-to-end scenarios of spec.md §8 are unexercisable without one and the
// reference hale mini-app itself builds this mesh directly rather than
// reading one from a file.
package meshbuild

import (
	"github.com/cpmech/gosl/utl"
	"github.com/rocdat/hal3d/internal/geom"
	"github.com/rocdat/hal3d/internal/topo"
)

// BoundarySpec names which faces of the block get a Reflect boundary vs.
// an Outflow one.
type BoundarySpec struct {
	XReflect, YReflect, ZReflect bool
}

// Block is a structured nx*ny*nz grid of hexahedral cells.
type Block struct {
	Nx, Ny, Nz           int
	Width, Height, Depth float64
	Topo                 *topo.Topology
	NodePos              []geom.Vec3
}

// CellID returns the flat cell index at structured grid coordinates (i,j,k).
func (b *Block) CellID(i, j, k int) int { return cellID(b.Nx, b.Ny, i, j, k) }

// nodeID returns the flat node index at grid coordinates (i,j,k) over a
// (nx+1)x(ny+1)x(nz+1) lattice.
func nodeID(nx, ny, i, j, k int) int {
	return i + j*(nx+1) + k*(nx+1)*(ny+1)
}

// cellID returns the flat cell index at grid coordinates (i,j,k).
func cellID(nx, ny, i, j, k int) int {
	return i + j*nx + k*nx*ny
}

// Build constructs the topology and node positions of an nx*ny*nz structured
// brick of size width*height*depth, with reflect boundaries on the faces
// named by spec and outflow elsewhere (per the Sod shock tube scenario of
// spec.md §8: "reflect on y,z; outflow on x").
func Build(nx, ny, nz int, width, height, depth float64, bc BoundarySpec) (*Block, error) {
	numNodes := (nx + 1) * (ny + 1) * (nz + 1)
	numCells := nx * ny * nz

	pos := make([]geom.Vec3, numNodes)
	xs := utl.LinSpace(0, width, nx+1)
	ys := utl.LinSpace(0, height, ny+1)
	zs := utl.LinSpace(0, depth, nz+1)
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				pos[nodeID(nx, ny, i, j, k)] = geom.Vec3{X: xs[i], Y: ys[j], Z: zs[k]}
			}
		}
	}

	cellsToNodes := make([][]int, numCells)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				c := cellID(nx, ny, i, j, k)
				cellsToNodes[c] = []int{
					nodeID(nx, ny, i, j, k), nodeID(nx, ny, i+1, j, k),
					nodeID(nx, ny, i+1, j+1, k), nodeID(nx, ny, i, j+1, k),
					nodeID(nx, ny, i, j, k+1), nodeID(nx, ny, i+1, j, k+1),
					nodeID(nx, ny, i+1, j+1, k+1), nodeID(nx, ny, i, j+1, k+1),
				}
			}
		}
	}

	type faceKey [4]int
	faceIndex := map[faceKey]int{}
	var facesToNodes [][]int
	var facesToCells []topo.FacePair
	cellsToFaces := make([][]int, numCells)

	addFace := func(cell int, ring []int) {
		key := canonicalKey(ring)
		if fi, ok := faceIndex[key]; ok {
			pair := facesToCells[fi]
			if pair.C0 == -1 {
				pair.C0 = cell
			} else {
				pair.C1 = cell
			}
			facesToCells[fi] = pair
			cellsToFaces[cell] = append(cellsToFaces[cell], fi)
			return
		}
		fi := len(facesToNodes)
		faceIndex[key] = fi
		facesToNodes = append(facesToNodes, ring)
		facesToCells = append(facesToCells, topo.FacePair{C0: cell, C1: -1})
		cellsToFaces[cell] = append(cellsToFaces[cell], fi)
	}

	boundaries := map[int]topo.Boundary{}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				c := cellID(nx, ny, i, j, k)
				n := cellsToNodes[c]
				// hexahedron face rings, outward-ish winding (orientation is
				// corrected at use per spec.md §4.1, so winding direction here
				// does not need to be globally consistent).
				addFace(c, []int{n[0], n[1], n[2], n[3]}) // k- face
				addFace(c, []int{n[4], n[5], n[6], n[7]}) // k+ face
				addFace(c, []int{n[0], n[1], n[5], n[4]}) // j- face
				addFace(c, []int{n[3], n[2], n[6], n[7]}) // j+ face
				addFace(c, []int{n[0], n[3], n[7], n[4]}) // i- face
				addFace(c, []int{n[1], n[2], n[6], n[5]}) // i+ face

				if i == 0 {
					markBoundary(boundaries, n[0], n[3], n[7], n[4], -1, 0, 0, bc.XReflect)
				}
				if i == nx-1 {
					markBoundary(boundaries, n[1], n[2], n[6], n[5], 1, 0, 0, bc.XReflect)
				}
				if j == 0 {
					markBoundary(boundaries, n[0], n[1], n[5], n[4], 0, -1, 0, bc.YReflect)
				}
				if j == ny-1 {
					markBoundary(boundaries, n[3], n[2], n[6], n[7], 0, 1, 0, bc.YReflect)
				}
				if k == 0 {
					markBoundary(boundaries, n[0], n[1], n[2], n[3], 0, 0, -1, bc.ZReflect)
				}
				if k == nz-1 {
					markBoundary(boundaries, n[4], n[5], n[6], n[7], 0, 0, 1, bc.ZReflect)
				}
			}
		}
	}

	t, err := topo.Build(numNodes, len(facesToNodes), numCells,
		cellsToNodes, cellsToFaces, facesToNodes, facesToCells, boundaries)
	if err != nil {
		return nil, err
	}

	return &Block{
		Nx: nx, Ny: ny, Nz: nz,
		Width: width, Height: height, Depth: depth,
		Topo:    t,
		NodePos: pos,
	}, nil
}

func canonicalKey(ring []int) [4]int {
	// sort the 4 node ids so the same physical face (visited from either
	// adjacent cell, in whatever winding) hashes identically.
	k := [4]int{ring[0], ring[1], ring[2], ring[3]}
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if k[j] < k[i] {
				k[i], k[j] = k[j], k[i]
			}
		}
	}
	return k
}

func markBoundary(b map[int]topo.Boundary, n0, n1, n2, n3 int, nx, ny, nz float64, reflect bool) {
	kind := topo.Outflow
	if reflect {
		kind = topo.Reflect
	}
	for _, n := range [4]int{n0, n1, n2, n3} {
		b[n] = topo.Boundary{Kind: kind, Normal: [3]float64{nx, ny, nz}}
	}
}

/*
 * grid.go, part of goshape
 *
 * Copyright 2020 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 * Goshape is developed at the laboratory for instruction in Swedish, Department of Chemistry,
 * University of Helsinki, Finland.
 *
 *
*/
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package shape

import (
	"fmt"
)

//Grid is a dense, axis-aligned 3D density field. Data is stored x-major
//(the (i,j,k) voxel sits at d[(i*ny+j)*nz+k]) so an x-slab is a contiguous
//ny*nz block. Corner is the position of voxel (0,0,0) in structure
//coordinates and Spacing the distance between neighboring voxels, both in the
//same unit as the structure (normally Angstrom). The library never mutates a
//Grid it is given.
type Grid struct {
	d          []float64
	nx, ny, nz int
	Corner     [3]float64
	Spacing    float64
}

//NewGrid returns a zero-filled grid with the given dimensions, corner and
//spacing. It panics on non-positive dimensions or spacing, as that can only
//come from a programming error, not from data.
func NewGrid(nx, ny, nz int, corner [3]float64, spacing float64) *Grid {
	if nx <= 0 || ny <= 0 || nz <= 0 || spacing <= 0 {
		panic(fmt.Sprintf("goshape.NewGrid: ill-formed grid %dx%dx%d spacing %4.2f", nx, ny, nz, spacing))
	}
	g := new(Grid)
	g.nx, g.ny, g.nz = nx, ny, nz
	g.d = make([]float64, nx*ny*nz)
	g.Corner = corner
	g.Spacing = spacing
	return g
}

//Dims returns the number of voxels along x, y and z.
func (g *Grid) Dims() (int, int, int) {
	return g.nx, g.ny, g.nz
}

//At returns the density at voxel i,j,k
func (g *Grid) At(i, j, k int) float64 {
	return g.d[(i*g.ny+j)*g.nz+k]
}

//Set sets the density at voxel i,j,k to v
func (g *Grid) Set(i, j, k int, v float64) {
	g.d[(i*g.ny+j)*g.nz+k] = v
}

//Add adds v to the density at voxel i,j,k
func (g *Grid) Add(i, j, k int, v float64) {
	g.d[(i*g.ny+j)*g.nz+k] += v
}

//slab returns the contiguous ny*nz block of the ith x-slab. Internal, the
//moment engine wraps it in a gonum Dense.
func (g *Grid) slab(i int) []float64 {
	return g.d[i*g.ny*g.nz : (i+1)*g.ny*g.nz]
}

//Pos returns the structure-coordinate position of voxel i,j,k
func (g *Grid) Pos(i, j, k int) (float64, float64, float64) {
	return g.Corner[0] + float64(i)*g.Spacing, g.Corner[1] + float64(j)*g.Spacing, g.Corner[2] + float64(k)*g.Spacing
}

//Lattice holds the quadrature nodes along each axis against which the moment
//engine integrates a grid. Two lattices are used per run: the unit lattice,
//in plain structure coordinates, for the mass/center/radius pass, and a
//sphere lattice, recentered and rescaled so the bulk of the structure falls
//inside the unit ball, for the moment pass proper.
type Lattice struct {
	X, Y, Z []float64
}

//UnitLattice returns the lattice of voxel positions of g in structure
//coordinates.
func UnitLattice(g *Grid) *Lattice {
	l := new(Lattice)
	l.X = make([]float64, g.nx)
	l.Y = make([]float64, g.ny)
	l.Z = make([]float64, g.nz)
	for i := range l.X {
		l.X[i] = g.Corner[0] + float64(i)*g.Spacing
	}
	for j := range l.Y {
		l.Y[j] = g.Corner[1] + float64(j)*g.Spacing
	}
	for k := range l.Z {
		l.Z[k] = g.Corner[2] + float64(k)*g.Spacing
	}
	return l
}

//SphereLattice returns the lattice of voxel positions of g recentered on
//center and divided by radius, i.e. in unit-ball coordinates. Moments
//integrated on this lattice are comparable between structures of different
//physical size.
func SphereLattice(g *Grid, center [3]float64, radius float64) (*Lattice, error) {
	if radius <= appzero {
		return nil, CError{fmt.Sprintf("goshape.SphereLattice: non-positive radius %8.4f", radius), []string{"SphereLattice"}}
	}
	l := new(Lattice)
	l.X = make([]float64, g.nx)
	l.Y = make([]float64, g.ny)
	l.Z = make([]float64, g.nz)
	for i := range l.X {
		l.X[i] = (g.Corner[0] + float64(i)*g.Spacing - center[0]) / radius
	}
	for j := range l.Y {
		l.Y[j] = (g.Corner[1] + float64(j)*g.Spacing - center[1]) / radius
	}
	for k := range l.Z {
		l.Z[k] = (g.Corner[2] + float64(k)*g.Spacing - center[2]) / radius
	}
	return l, nil
}

/*
 * moments.go, part of goshape
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
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

//DefaultRadiusMultiplier is the factor applied to the density-weighted
//average radius to size the sphere-sampled lattice. The value makes the bulk
//mass of a globular structure fall inside the unit ball after resampling.
const DefaultRadiusMultiplier = 1.8

//MomentTensor holds geometric moments M[p][q][r] for every p+q+r<=order.
//Storage is a flat (order+1)^3 block; entries with p+q+r>order are never
//written nor read.
type MomentTensor struct {
	order int
	m     []float64
}

//NewMomentTensor returns a zeroed tensor for the given order.
func NewMomentTensor(order int) *MomentTensor {
	if order < 0 {
		panic("goshape.NewMomentTensor: negative order")
	}
	t := new(MomentTensor)
	t.order = order
	s := order + 1
	t.m = make([]float64, s*s*s)
	return t
}

//Order returns the maximum total order p+q+r covered by the tensor.
func (t *MomentTensor) Order() int { return t.order }

//At returns the geometric moment for exponents p,q,r. It panics if the
//triple exceeds the order bound, as reading an unpopulated entry is always a
//programming error.
func (t *MomentTensor) At(p, q, r int) float64 {
	if p+q+r > t.order || p < 0 || q < 0 || r < 0 {
		panic(fmt.Sprintf("goshape.MomentTensor.At: exponents %d,%d,%d out of the order-%d triangle", p, q, r, t.order))
	}
	s := t.order + 1
	return t.m[(p*s+q)*s+r]
}

func (t *MomentTensor) set(p, q, r int, v float64) {
	s := t.order + 1
	t.m[(p*s+q)*s+r] = v
}

func (t *MomentTensor) add(p, q, r int, v float64) {
	s := t.order + 1
	t.m[(p*s+q)*s+r] += v
}

//vandermonde builds the len(nodes) x (order+1) matrix V[i][p]=nodes[i]^p.
func vandermonde(nodes []float64, order int) *mat.Dense {
	v := mat.NewDense(len(nodes), order+1, nil)
	for i, x := range nodes {
		pw := 1.0
		for p := 0; p <= order; p++ {
			v.Set(i, p, pw)
			pw *= x
		}
	}
	return v
}

//ComputeMoments integrates the density of g against the monomial basis
//x^p*y^q*z^r evaluated at the lattice nodes, for every p+q+r<=order. It
//returns the total mass (the 0,0,0 moment), the center of mass in lattice
//coordinates, and the moment tensor. order==1 is the reserved first pass: it
//only obtains mass and center, and returns a nil tensor. A grid with no mass
//yields a DegenerateInputError, before any division by the mass is attempted.
//Accumulation is in float64 throughout. The slab-parallel path and the serial
//path agree to well below 1e-9 relative, not bit for bit.
func ComputeMoments(g *Grid, order int, lat *Lattice) (float64, [3]float64, *MomentTensor, error) {
	var center [3]float64
	if order < 1 {
		return 0, center, nil, CError{fmt.Sprintf("goshape.ComputeMoments: order %d, must be at least 1", order), []string{"ComputeMoments"}}
	}
	nx, ny, nz := g.Dims()
	if len(lat.X) != nx || len(lat.Y) != ny || len(lat.Z) != nz {
		return 0, center, nil, CError{"goshape.ComputeMoments: lattice does not match grid dimensions", []string{"ComputeMoments"}}
	}
	if order == 1 {
		mass, c, err := massAndCenter(g, lat)
		return mass, c, nil, err
	}
	vy := vandermonde(lat.Y, order)
	vz := vandermonde(lat.Z, order)
	parts := make([]*MomentTensor, nx)
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < nx; i++ {
		i := i
		eg.Go(func() error {
			parts[i] = slabMoments(g, i, order, lat.X[i], vy, vz)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, center, nil, errDecorate(err, "ComputeMoments")
	}
	t := NewMomentTensor(order)
	for _, part := range parts {
		for p := 0; p <= order; p++ {
			for q := 0; q <= order-p; q++ {
				for r := 0; r <= order-p-q; r++ {
					t.add(p, q, r, part.At(p, q, r))
				}
			}
		}
	}
	mass := t.At(0, 0, 0)
	if mass <= appzero {
		return 0, center, nil, DegenerateInputError{"grid has no density mass", []string{"ComputeMoments"}}
	}
	center[0] = t.At(1, 0, 0) / mass
	center[1] = t.At(0, 1, 0) / mass
	center[2] = t.At(0, 0, 1) / mass
	return mass, center, t, nil
}

//slabMoments contracts a single x-slab against the y and z Vandermonde
//matrices and scales the result by the powers of the slab's x node. The two
//inner contractions are plain gonum products.
func slabMoments(g *Grid, i, order int, x float64, vy, vz *mat.Dense) *MomentTensor {
	_, ny, nz := g.Dims()
	f := mat.NewDense(ny, nz, g.slab(i))
	zc := mat.NewDense(ny, order+1, nil)
	zc.Mul(f, vz) //zc[j][r] = sum_k f[j][k] z_k^r
	yz := mat.NewDense(order+1, order+1, nil)
	yz.Mul(vy.T(), zc) //yz[q][r] = sum_j y_j^q zc[j][r]
	part := NewMomentTensor(order)
	xp := 1.0
	for p := 0; p <= order; p++ {
		for q := 0; q <= order-p; q++ {
			for r := 0; r <= order-p-q; r++ {
				part.set(p, q, r, xp*yz.At(q, r))
			}
		}
		xp *= x
	}
	return part
}

//massAndCenter is the order-1 special case: a single serial sweep that
//accumulates the mass and first moments only.
func massAndCenter(g *Grid, lat *Lattice) (float64, [3]float64, error) {
	var center [3]float64
	var mass, mx, my, mz float64
	nx, ny, nz := g.Dims()
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				w := g.At(i, j, k)
				if w == 0 {
					continue
				}
				mass += w
				mx += w * lat.X[i]
				my += w * lat.Y[j]
				mz += w * lat.Z[k]
			}
		}
	}
	if mass <= appzero {
		return 0, center, DegenerateInputError{"grid has no density mass", []string{"massAndCenter"}}
	}
	center[0] = mx / mass
	center[1] = my / mass
	center[2] = mz / mass
	return mass, center, nil
}

//MolecularRadius returns the density-weighted average and maximum distances
//from center over the grid, with the average already multiplied by mult
//(DefaultRadiusMultiplier when in doubt). The multiplied average is the
//radius used to build the sphere lattice for the second moment pass. center
//and the returned distances are in structure coordinates.
func MolecularRadius(g *Grid, center [3]float64, mass float64, mult float64) (float64, float64, error) {
	if mass <= appzero {
		return 0, 0, DegenerateInputError{"zero mass given", []string{"MolecularRadius"}}
	}
	if mult <= 0 {
		return 0, 0, CError{fmt.Sprintf("goshape.MolecularRadius: non-positive multiplier %4.2f", mult), []string{"MolecularRadius"}}
	}
	var sum, max float64
	nx, ny, nz := g.Dims()
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				w := g.At(i, j, k)
				if w == 0 {
					continue
				}
				x, y, z := g.Pos(i, j, k)
				d := math.Sqrt((x-center[0])*(x-center[0]) + (y-center[1])*(y-center[1]) + (z-center[2])*(z-center[2]))
				sum += w * d
				if d > max {
					max = d
				}
			}
		}
	}
	return mult * sum / mass, max, nil
}

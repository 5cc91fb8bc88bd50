/*
 * zernike.go, part of goshape
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
	"math/cmplx"

	"github.com/rmera/goshape/cache"
)

//Moments is the sparse collection of complex 3D Zernike moments Omega(n,l,m)
//for every triple with 0<=l<=n, |m|<=l and n-l even, up to a maximum order.
//Presence is tracked in an explicit bitset; At returns a NaN sentinel for
//triples outside the triangle, which downstream code must filter, never
//coerce to zero (zero and "does not exist" mean different things).
type Moments struct {
	order   int
	v       []complex128
	present []bool
	base    []int //flat offset of the first entry (m=-l) of each valid (n,l) block
}

//NewMoments returns an empty moment collection for the given order.
func NewMoments(order int) *Moments {
	if order < 0 {
		panic("goshape.NewMoments: negative order")
	}
	M := new(Moments)
	M.order = order
	off := 0
	for n := 0; n <= order; n++ {
		for l := n % 2; l <= n; l += 2 {
			M.base = append(M.base, off)
			off += 2*l + 1
		}
	}
	M.v = make([]complex128, off)
	M.present = make([]bool, off)
	return M
}

//Order returns the maximum expansion order of the collection.
func (M *Moments) Order() int { return M.order }

//blockIndex returns the position of the (n,l) block among the valid blocks,
//or -1 if the pair violates the triangle.
func (M *Moments) blockIndex(n, l int) int {
	if n < 0 || n > M.order || l < 0 || l > n || (n-l)%2 != 0 {
		return -1
	}
	//blocks for orders < n, then the blocks of n up to l
	i := 0
	for np := 0; np < n; np++ {
		i += np/2 + 1
	}
	return i + l/2
}

//At returns Omega(n,l,m), or NaN+iNaN if the triple is invalid or was never
//populated.
func (M *Moments) At(n, l, m int) complex128 {
	bi := M.blockIndex(n, l)
	if bi < 0 || m < -l || m > l {
		return complex(math.NaN(), math.NaN())
	}
	off := M.base[bi] + m + l
	if !M.present[off] {
		return complex(math.NaN(), math.NaN())
	}
	return M.v[off]
}

//Present reports whether the (n,l,m) entry is populated.
func (M *Moments) Present(n, l, m int) bool {
	bi := M.blockIndex(n, l)
	if bi < 0 || m < -l || m > l {
		return false
	}
	return M.present[M.base[bi]+m+l]
}

func (M *Moments) set(n, l, m int, v complex128) {
	bi := M.blockIndex(n, l)
	if bi < 0 || m < -l || m > l {
		panic(fmt.Sprintf("goshape.Moments.set: invalid triple %d,%d,%d", n, l, m))
	}
	off := M.base[bi] + m + l
	M.v[off] = v
	M.present[off] = true
}

//ZernikeMoments linearly recombines the geometric moment tensor into complex
//3D Zernike moments using the bundle's coefficient tables, for every valid
//(n,l,m) up to order. The tensor must come from a sphere-sampled lattice
//(unit-ball coordinates, see SphereLattice), with radius the physical radius
//that lattice was built with.
//
//Two variants are returned. The scaled set is the direct unit-ball transform,
//additionally divided by the total mass so densities of different overall
//magnitude compare; it feeds the direct invariant descriptor. The raw set
//undoes the lattice rescale (each monomial term is multiplied by
//radius^(p+q+r)) and keeps the mass; it feeds the rotation-alignment path,
//which needs moments on the structure's own scale.
//
//The coefficient map per order is fixed; only tensor values change between
//calls, so the same bundle serves indefinitely. An OrderMismatchError is
//returned if the tensor or the bundle do not cover the requested order.
func ZernikeMoments(order int, b *cache.Bundle, t *MomentTensor, radius float64) (*Moments, *Moments, error) {
	if t == nil {
		return nil, nil, CError{"goshape.ZernikeMoments: nil moment tensor", []string{"ZernikeMoments"}}
	}
	if t.Order() < order {
		return nil, nil, OrderMismatchError{fmt.Sprintf("tensor covers order %d, transform needs %d", t.Order(), order), []string{"ZernikeMoments"}}
	}
	if b.MaxOrder < order {
		return nil, nil, OrderMismatchError{fmt.Sprintf("coefficient bundle covers order %d, transform needs %d", b.MaxOrder, order), []string{"ZernikeMoments"}}
	}
	if radius <= appzero {
		return nil, nil, CError{fmt.Sprintf("goshape.ZernikeMoments: non-positive radius %8.4f", radius), []string{"ZernikeMoments"}}
	}
	mass := t.At(0, 0, 0)
	if mass <= appzero {
		return nil, nil, DegenerateInputError{"moment tensor has no mass", []string{"ZernikeMoments"}}
	}
	rpow := make([]float64, order+1)
	rpow[0] = 1
	for i := 1; i <= order; i++ {
		rpow[i] = rpow[i-1] * radius
	}
	scaled := NewMoments(order)
	raw := NewMoments(order)
	for i := 0; i < b.NNLM(); i++ {
		n, l, m := b.NLM(i)
		if n > order {
			break //bundle iterates in increasing n
		}
		var s, sr complex128
		for _, term := range b.Chi[i] {
			v := complex(t.At(term.P, term.Q, term.R), 0)
			c := cmplx.Conj(term.C)
			s += c * v
			sr += c * v * complex(rpow[term.P+term.Q+term.R], 0)
		}
		norm := complex(b.Norm[i], 0)
		scaled.set(n, l, m, norm*s/complex(mass, 0))
		raw.set(n, l, m, norm*sr)
		if m > 0 { //negative m by conjugate symmetry
			scaled.set(n, l, -m, conjSym(m, norm*s/complex(mass, 0)))
			raw.set(n, l, -m, conjSym(m, norm*sr))
		}
	}
	return scaled, raw, nil
}

//conjSym returns (-1)^m times the conjugate, the symmetry relating
//Omega(n,l,-m) to Omega(n,l,m).
func conjSym(m int, v complex128) complex128 {
	c := cmplx.Conj(v)
	if m%2 != 0 {
		return -c
	}
	return c
}

/*
 * rotation.go, part of goshape
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

//RotationCandidate is a rotation in Cayley-Klein form: the complex pair
//(A,B) with |A|^2+|B|^2=1. Each candidate carries one structure orientation
//to the canonical frame of a target order; because the defining polynomial
//can have repeated or symmetric roots, a target order can yield zero, one or
//several candidates.
type RotationCandidate struct {
	A, B complex128
}

//CandidateRotations derives the canonicalizing rotations for a target order
//from the raw moment block (n=target, l=target): the moments are the
//coefficients, with square-root binomial weights, of a degree-2l binary form
//whose roots are the axis directions that null the top off-axis component.
//Each finite root maps stereographically to the Cayley-Klein pair that
//carries its direction to the pole, cancelling an extreme component of the
//block; a degenerate leading coefficient contributes the pole rotation. An
//empty result (whole block numerically zero) is legitimate and means "no
//canonical orientation at this order".
func CandidateRotations(raw *Moments, target int) ([]RotationCandidate, error) {
	if target < minAlignOrder || target > maxAlignOrder {
		return nil, CError{fmt.Sprintf("goshape.CandidateRotations: target order %d outside [%d,%d]", target, minAlignOrder, maxAlignOrder), []string{"CandidateRotations"}}
	}
	if target > raw.Order() {
		return nil, OrderMismatchError{fmt.Sprintf("moments cover order %d, alignment target is %d", raw.Order(), target), []string{"CandidateRotations"}}
	}
	l := target
	if !raw.Present(target, l, 0) {
		return nil, nil
	}
	coefs := make([]complex128, 2*l+1)
	var scale float64
	for j := 0; j <= 2*l; j++ {
		coefs[j] = complex(math.Sqrt(smallBinom(2*l, j)), 0) * raw.At(target, l, j-l)
		if a := cmplx.Abs(coefs[j]); a > scale {
			scale = a
		}
	}
	if scale <= appzero {
		return nil, nil //fully symmetric at this order
	}
	var out []RotationCandidate
	//trim numerically-zero leading coefficients; the lost roots sit at the
	//pole of the stereographic map.
	deg := 2 * l
	for deg > 0 && cmplx.Abs(coefs[deg])/scale <= appzero {
		deg--
	}
	if deg < 2*l {
		out = append(out, RotationCandidate{0, 1})
	}
	for _, z := range durandKerner(coefs[:deg+1]) {
		d := complex(math.Sqrt(1+real(z)*real(z)+imag(z)*imag(z)), 0)
		//the pair must follow the same Cayley-Klein convention Rotate uses,
		//or the root direction lands anywhere but the pole
		out = append(out, RotationCandidate{1 / d, -cmplx.Conj(z) / d})
	}
	return out, nil
}

//smallBinom is an exact float binomial for the tiny arguments the candidate
//polynomial needs. The cache bundle keeps the big tables; dragging it in here
//for binom(10,5) would tangle the API for nothing.
func smallBinom(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	b := 1.0
	for i := 0; i < k; i++ {
		b = b * float64(n-i) / float64(i+1)
	}
	return b
}

//durandKerner finds all roots of the polynomial with the given coefficients
//(c[i] multiplies z^i, c[len-1] nonzero) by Weierstrass/Durand-Kerner
//simultaneous iteration. The polynomials here are degree 10 at most, so the
//plain method with a fixed iteration cap is plenty.
func durandKerner(c []complex128) []complex128 {
	deg := len(c) - 1
	if deg < 1 {
		return nil
	}
	monic := make([]complex128, len(c))
	for i, v := range c {
		monic[i] = v / c[deg]
	}
	eval := func(z complex128) complex128 {
		s := monic[deg]
		for i := deg - 1; i >= 0; i-- {
			s = s*z + monic[i]
		}
		return s
	}
	roots := make([]complex128, deg)
	seed := complex(0.4, 0.9) //standard non-real, non-unit-modulus seed
	roots[0] = seed
	for i := 1; i < deg; i++ {
		roots[i] = roots[i-1] * seed
	}
	next := make([]complex128, deg)
	for it := 0; it < 500; it++ {
		var shift float64
		for i := range roots {
			den := complex(1, 0)
			for j := range roots {
				if i != j {
					den *= roots[i] - roots[j]
				}
			}
			next[i] = roots[i] - eval(roots[i])/den
			if d := cmplx.Abs(next[i] - roots[i]); d > shift {
				shift = d
			}
		}
		copy(roots, next)
		if shift < 1e-14 {
			break
		}
	}
	return roots
}

//Rotate applies the rotation implied by the candidate to the full moment
//set. Rotation acts block-diagonally: each (n,l) block transforms among its
//own 2l+1 components through the Wigner matrix in Cayley-Klein form, built
//from the bundle's precomputed index table and factorial prefactors. No
//dense transform over the whole set is ever formed.
func Rotate(raw *Moments, cand RotationCandidate, b *cache.Bundle) (*Moments, error) {
	if b.MaxOrder < raw.Order() {
		return nil, OrderMismatchError{fmt.Sprintf("coefficient bundle covers order %d, moments are order %d", b.MaxOrder, raw.Order()), []string{"Rotate"}}
	}
	out := NewMoments(raw.Order())
	for n := 0; n <= raw.Order(); n++ {
		for l := n % 2; l <= n; l += 2 {
			if !raw.Present(n, l, 0) {
				continue
			}
			//powers of the four Cayley-Klein factors up to 2l; table form so
			//that 0^0 is exactly 1 for the identity and pole rotations.
			pa := powTable(cand.A, 2*l)
			pca := powTable(cmplx.Conj(cand.A), 2*l)
			pb := powTable(cand.B, 2*l)
			pnb := powTable(-cmplx.Conj(cand.B), 2*l)
			rotated := make([]complex128, 2*l+1)
			for _, e := range b.Rot[l] {
				src := raw.At(n, l, e.M)
				rotated[e.Mp+l] += complex(e.C, 0) * pa[l+e.M-e.K] * pca[l-e.Mp-e.K] * pb[e.K+e.Mp-e.M] * pnb[e.K] * src
			}
			for m := -l; m <= l; m++ {
				out.set(n, l, m, rotated[m+l])
			}
		}
	}
	return out, nil
}

func powTable(z complex128, max int) []complex128 {
	t := make([]complex128, max+1)
	t[0] = 1
	for i := 1; i <= max; i++ {
		t[i] = t[i-1] * z
	}
	return t
}

/*
 * invariant.go, part of goshape
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
	"math"

	"github.com/rmera/goshape/cache"
)

//The target orders for which rotation-aligned invariants are computed, on
//top of the direct magnitude descriptor.
const (
	minAlignOrder = 2
	maxAlignOrder = 5
)

//Descriptor3DZD reduces a scaled moment set to the rotation-invariant 3DZD
//descriptor: one non-negative scalar per valid (n,l) pair, the square root of
//the summed squared magnitudes over the 2l+1 values of m. Only populated
//entries contribute; (n,l) pairs with no populated entries are skipped
//entirely, never emitted as zero. The output length depends on the order
//(121 values for order 20).
func Descriptor3DZD(scaled *Moments) []float64 {
	out := make([]float64, 0, 128)
	for n := 0; n <= scaled.Order(); n++ {
		for l := n % 2; l <= n; l += 2 {
			if !scaled.Present(n, l, 0) {
				continue
			}
			var s float64
			for m := -l; m <= l; m++ {
				if !scaled.Present(n, l, m) {
					continue
				}
				c := scaled.At(n, l, m)
				s += real(c)*real(c) + imag(c)*imag(c)
			}
			out = append(out, math.Sqrt(s))
		}
	}
	return out
}

//AlignedInvariants computes, for each target order from 2 to 5, the
//mean over candidate canonical rotations of the aligned-moment scalar (see
//CandidateRotations and Rotate). A target order with no candidate rotations
//yields a NaN slot, meaning "not applicable"; callers filter, they do not
//zero it. The raw (physical-scale) moment set is used, since the alignment
//polynomials live on the structure's own scale.
func AlignedInvariants(raw *Moments, b *cache.Bundle) ([]float64, error) {
	out := make([]float64, 0, maxAlignOrder-minAlignOrder+1)
	for target := minAlignOrder; target <= maxAlignOrder; target++ {
		if target > raw.Order() {
			out = append(out, math.NaN())
			continue
		}
		cands, err := CandidateRotations(raw, target)
		if err != nil {
			return nil, errDecorate(err, "AlignedInvariants")
		}
		vals := make([]float64, 0, len(cands))
		for _, cand := range cands {
			rot, err := Rotate(raw, cand, b)
			if err != nil {
				return nil, errDecorate(err, "AlignedInvariants")
			}
			vals = append(vals, alignedScalar(rot))
		}
		out = append(out, meanOrNaN(vals))
	}
	return out, nil
}

//alignedScalar is the per-candidate invariant: for each populated (n,l)
//block, the real part of the canonically rotated m=0 entry over the block
//magnitude, averaged across blocks. A candidate fixes the axis but leaves the
//spin about it free, and that spin multiplies Omega(n,l,m) by e^(-i*m*gamma):
//only the m=0 entries survive it. The block-magnitude normalization keeps the
//scalar O(1) no matter the physical radius the raw moments carry.
func alignedScalar(m *Moments) float64 {
	var s float64
	var c int
	for n := 0; n <= m.Order(); n++ {
		for l := n % 2; l <= n; l += 2 {
			if !m.Present(n, l, 0) {
				continue
			}
			var norm float64
			for mm := -l; mm <= l; mm++ {
				if !m.Present(n, l, mm) {
					continue
				}
				v := m.At(n, l, mm)
				norm += real(v)*real(v) + imag(v)*imag(v)
			}
			norm = math.Sqrt(norm)
			if norm <= appzero {
				continue
			}
			s += real(m.At(n, l, 0)) / norm
			c++
		}
	}
	if c == 0 {
		return math.NaN()
	}
	return s / float64(c)
}

//meanOrNaN reduces the realized candidate set; an empty set is "not
//applicable", not zero.
func meanOrNaN(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	var s float64
	for _, v := range vals {
		s += v
	}
	return s / float64(len(vals))
}

//FullDescriptor concatenates the direct 3DZD descriptor of the scaled set
//with the rotation-aligned invariants of the raw set, independently
//NaN-filtered. This is the vector handed to Score; an unfiltered NaN would
//poison the whole similarity, so none ever leaves this function.
func FullDescriptor(scaled, raw *Moments, b *cache.Bundle) ([]float64, error) {
	direct := Descriptor3DZD(scaled)
	aligned, err := AlignedInvariants(raw, b)
	if err != nil {
		return nil, errDecorate(err, "FullDescriptor")
	}
	out := make([]float64, 0, len(direct)+len(aligned))
	for _, v := range direct {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	for _, v := range aligned {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

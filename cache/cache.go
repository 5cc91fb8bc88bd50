/*
 * cache.go, part of goshape
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

//Package cache generates, stores and loads the precomputed coefficient
//tables needed by the 3D Zernike transform: the linearization of geometric
//moment exponents, the complex combination coefficients ("chi" terms) per
//valid (n,l,m), per-moment normalization constants, binomial tables and the
//Wigner rotation index tables. All tables in a Bundle are built together for
//one maximum expansion order and must never be mixed across orders. A Bundle
//is immutable once built or loaded and safe for unsynchronized concurrent
//reads.
//
//The closed forms used by Generate are the ones published by Novotni and
//Klein for 3D Zernike descriptors; a Store only loads bundles that were
//written beforehand, it never generates.
package cache

import (
	"fmt"
	"math"
	"sort"
)

//Term is one contribution to a complex Zernike moment: the geometric moment
//with exponents P,Q,R weighted by the coefficient C.
type Term struct {
	P, Q, R int
	C       complex128
}

//RotEntry is one term of the Wigner rotation matrix for a given l: the
//contribution of source index M to rotated index Mp, with the Cayley-Klein
//parameter powers determined by K and the factorial prefactor C.
type RotEntry struct {
	Mp, M, K int
	C        float64
}

//Bundle holds every table the transform pipeline needs for one maximum
//expansion order. The exported fields are what gets serialized; the lookup
//tables are rebuilt on load.
type Bundle struct {
	MaxOrder int
	Chi      [][]Term    //per flat (n,l,m>=0) index
	Norm     []float64   //same indexing as Chi
	Binom    [][]float64 //Pascal triangle up to 2*MaxOrder+1
	Rot      [][]RotEntry
	Fact     []float64 //factorials as float64, up to 4*MaxOrder+4

	nlmIdx [][][]int //lookup (n,l,m>=0) -> flat index, -1 where invalid
	trip   [][3]int  //flat index -> (n,l,m)
}

//CountNLM returns the number of valid (n,l,m) triples with m>=0 for the
//given maximum order, i.e. the length of the Chi and Norm tables.
func CountNLM(order int) int {
	c := 0
	for n := 0; n <= order; n++ {
		for l := n % 2; l <= n; l += 2 {
			c += l + 1
		}
	}
	return c
}

//IndexNLM returns the flat index of the (n,l,m) triple, or -1 if the triple
//does not satisfy 0<=l<=n, 0<=m<=l, n-l even, or exceeds the bundle's order.
func (b *Bundle) IndexNLM(n, l, m int) int {
	if n < 0 || n > b.MaxOrder || l < 0 || l > n || m < 0 || m > l || (n-l)%2 != 0 {
		return -1
	}
	return b.nlmIdx[n][l][m]
}

//NLM returns the (n,l,m) triple for a flat index. It panics on an
//out-of-range index.
func (b *Bundle) NLM(i int) (int, int, int) {
	t := b.trip[i]
	return t[0], t[1], t[2]
}

//NNLM returns the number of (n,l,m>=0) entries in the bundle.
func (b *Bundle) NNLM() int { return len(b.trip) }

//IndexPQR returns the flat index for geometric moment exponents under the
//bundle's order, or -1 outside the p+q+r<=MaxOrder triangle. This is the
//linearization the transform tables were generated against.
func (b *Bundle) IndexPQR(p, q, r int) int {
	if p < 0 || q < 0 || r < 0 || p+q+r > b.MaxOrder {
		return -1
	}
	s := b.MaxOrder + 1
	return (p*s+q)*s + r
}

//init rebuilds the unexported lookup tables from MaxOrder. Called by
//Generate and by Read.
func (b *Bundle) init() {
	n := b.MaxOrder
	b.nlmIdx = make([][][]int, n+1)
	b.trip = make([][3]int, 0, CountNLM(n))
	c := 0
	for i := 0; i <= n; i++ {
		b.nlmIdx[i] = make([][]int, i+1)
		for l := 0; l <= i; l++ {
			b.nlmIdx[i][l] = make([]int, l+1)
			for m := 0; m <= l; m++ {
				b.nlmIdx[i][l][m] = -1
			}
		}
	}
	for i := 0; i <= n; i++ {
		for l := i % 2; l <= i; l += 2 {
			for m := 0; m <= l; m++ {
				b.nlmIdx[i][l][m] = c
				b.trip = append(b.trip, [3]int{i, l, m})
				c++
			}
		}
	}
}

//ipow returns i^u as a complex unit.
func ipow(u int) complex128 {
	switch u % 4 {
	case 0:
		return 1
	case 1:
		return complex(0, 1)
	case 2:
		return -1
	default:
		return complex(0, -1)
	}
}

func sign(i int) float64 {
	if i%2 != 0 {
		return -1
	}
	return 1
}

//Generate builds the complete coefficient bundle for the given maximum
//expansion order from the published closed forms. It is deterministic: two
//calls with the same order produce identical bundles. Generation is meant to
//happen upstream, once; the pipeline itself only consumes bundles through a
//Store.
func Generate(order int) *Bundle {
	if order < 0 {
		panic(fmt.Sprintf("goshape/cache.Generate: negative order %d", order))
	}
	b := new(Bundle)
	b.MaxOrder = order
	b.init()
	b.Fact = factorials(4*order + 4)
	b.Binom = pascal(2*order + 2)
	b.Chi = make([][]Term, b.NNLM())
	b.Norm = make([]float64, b.NNLM())
	for i := 0; i < b.NNLM(); i++ {
		n, l, m := b.NLM(i)
		b.Chi[i] = b.chiTerms(n, l, m)
		b.Norm[i] = 3.0 / (4.0 * math.Pi)
	}
	b.Rot = make([][]RotEntry, order+1)
	for l := 0; l <= order; l++ {
		b.Rot[l] = b.rotEntries(l)
	}
	return b
}

func factorials(max int) []float64 {
	f := make([]float64, max+1)
	f[0] = 1
	for i := 1; i <= max; i++ {
		f[i] = f[i-1] * float64(i)
	}
	return f
}

func pascal(rows int) [][]float64 {
	p := make([][]float64, rows)
	for i := range p {
		p[i] = make([]float64, i+1)
		p[i][0] = 1
		p[i][i] = 1
		for j := 1; j < i; j++ {
			p[i][j] = p[i-1][j-1] + p[i-1][j]
		}
	}
	return p
}

func (b *Bundle) binom(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	return b.Binom[n][k]
}

//clm is the normalization constant of the harmonic polynomial coefficients.
func (b *Bundle) clm(l, m int) float64 {
	return math.Sqrt(float64(2*l+1)*b.Fact[l+m]*b.Fact[l-m]) / b.Fact[l]
}

//qklnu is the radial polynomial coefficient q_{kl}^{nu}.
func (b *Bundle) qklnu(k, l, nu int) float64 {
	q := sign(k+nu) / math.Pow(4, float64(k))
	q *= math.Sqrt(float64(2*l+4*k+3) / 3.0)
	q *= b.binom(2*k, k) * b.binom(k, nu)
	q *= b.binom(2*(k+l+nu)+1, 2*k)
	q /= b.binom(k+l+nu, k)
	return q
}

//chiTerms expands the (n,l,m) Zernike basis function into monomial
//contributions. Terms hitting the same exponent triple are merged; the output
//is sorted by the exponent linearization so generation is reproducible.
func (b *Bundle) chiTerms(n, l, m int) []Term {
	acc := make(map[[3]int]complex128)
	w := b.clm(l, m) / math.Pow(2, float64(m))
	k := (n - l) / 2
	for nu := 0; nu <= k; nu++ {
		wNu := w * b.qklnu(k, l, nu)
		for alpha := 0; alpha <= nu; alpha++ {
			wA := wNu * b.binom(nu, alpha)
			for beta := 0; beta <= nu-alpha; beta++ {
				wAB := wA * b.binom(nu-alpha, beta)
				for u := 0; u <= m; u++ {
					cABU := complex(wAB*sign(m-u)*b.binom(m, u), 0) * ipow(u)
					for mu := 0; mu <= (l-m)/2; mu++ {
						cABUM := cABU * complex(sign(mu)*b.binom(l, mu)*b.binom(l-mu, m+mu)/math.Pow(4, float64(mu)), 0)
						for v := 0; v <= mu; v++ {
							c := cABUM * complex(b.binom(mu, v), 0)
							p := 2*(v+alpha) + u
							q := 2*(mu-v+beta) + m - u
							r := l - m + 2*(nu-alpha-beta-mu)
							acc[[3]int{p, q, r}] += c
						}
					}
				}
			}
		}
	}
	terms := make([]Term, 0, len(acc))
	for pqr, c := range acc {
		terms = append(terms, Term{pqr[0], pqr[1], pqr[2], c})
	}
	sort.Slice(terms, func(i, j int) bool {
		return b.IndexPQR(terms[i].P, terms[i].Q, terms[i].R) < b.IndexPQR(terms[j].P, terms[j].Q, terms[j].R)
	})
	return terms
}

//rotEntries precomputes, for one l, the index mapping and factorial
//prefactors of the Wigner rotation matrix in Cayley-Klein form. The rotation
//of a moment block is then a structured sum over these entries, never a dense
//matrix build.
func (b *Bundle) rotEntries(l int) []RotEntry {
	var out []RotEntry
	f := b.Fact
	for mp := -l; mp <= l; mp++ {
		for m := -l; m <= l; m++ {
			lo := 0
			if m-mp > 0 {
				lo = m - mp
			}
			hi := l + m
			if l-mp < hi {
				hi = l - mp
			}
			for k := lo; k <= hi; k++ {
				c := math.Sqrt(f[l+m]*f[l-m]*f[l+mp]*f[l-mp]) /
					(f[l+m-k] * f[k] * f[l-mp-k] * f[k+mp-m])
				out = append(out, RotEntry{mp, m, k, c})
			}
		}
	}
	return out
}

/*
 * compare.go, part of goshape
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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//The empirical rescaling references. These are domain calibration constants
//for the 0-100 similarity range, fixed configuration: they are never derived
//from the pair being compared.
const (
	GeoRef = 6.6
	ZMRef  = 9.0
)

//GeoDescriptor computes the auxiliary geometric-statistics vector of a
//structure, independent of the Zernike transform: from the weighted
//distances of the atom centers to the weighted centroid, it collects the
//mean, the 25/50/75/90 percent quantiles, the total weight, and the skewness
//and excess kurtosis of the distance distribution, in that order. coords is
//an Nx3 matrix; weights may be nil for uniform weighting.
func GeoDescriptor(coords *mat.Dense, weights []float64) ([]float64, error) {
	n, c := coords.Dims()
	if c != 3 {
		return nil, CError{fmt.Sprintf("goshape.GeoDescriptor: coordinates have %d columns, need 3", c), []string{"GeoDescriptor"}}
	}
	if n < 2 {
		return nil, DegenerateInputError{"need at least 2 centers for distance statistics", []string{"GeoDescriptor"}}
	}
	if weights == nil {
		weights = make([]float64, n)
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != n {
		return nil, CError{fmt.Sprintf("goshape.GeoDescriptor: %d weights for %d centers", len(weights), n), []string{"GeoDescriptor"}}
	}
	totw := floats.Sum(weights)
	if totw <= appzero {
		return nil, DegenerateInputError{"total weight is zero", []string{"GeoDescriptor"}}
	}
	var cx, cy, cz float64
	for i := 0; i < n; i++ {
		cx += weights[i] * coords.At(i, 0)
		cy += weights[i] * coords.At(i, 1)
		cz += weights[i] * coords.At(i, 2)
	}
	cx, cy, cz = cx/totw, cy/totw, cz/totw
	dists := make([]float64, n)
	wts := make([]float64, n)
	copy(wts, weights)
	for i := 0; i < n; i++ {
		dx := coords.At(i, 0) - cx
		dy := coords.At(i, 1) - cy
		dz := coords.At(i, 2) - cz
		dists[i] = math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	mean := stat.Mean(dists, wts)
	skew := stat.Skew(dists, wts)
	kurt := stat.ExKurtosis(dists, wts)
	stat.SortWeighted(dists, wts) //quantiles need sorted samples
	out := []float64{
		mean,
		stat.Quantile(0.25, stat.Empirical, dists, wts),
		stat.Quantile(0.50, stat.Empirical, dists, wts),
		stat.Quantile(0.75, stat.Empirical, dists, wts),
		stat.Quantile(0.90, stat.Empirical, dists, wts),
		totw,
		skew,
		kurt,
	}
	return out, nil
}

//Weights selects which descriptor components matter to the comparison and by
//how much. ZMIndex/ZM pick components of the Zernike descriptor vector; Geo
//weights the geometric-statistics vector positionally. GeoRef/ZMRef are the
//rescaling references. Treat a Weights value as fixed configuration.
type Weights struct {
	ZMIndex []int
	ZM      []float64
	Geo     []float64
	GeoRef  float64
	ZMRef   float64
}

//DefaultWeights returns the calibration used for protein-sized structures:
//every Zernike component with a flat small weight (the descriptor is long),
//the geometric mean distance weighted above the remaining statistics, and
//the published reference constants.
func DefaultWeights(descriptorLen int) *Weights {
	w := new(Weights)
	w.ZMIndex = make([]int, descriptorLen)
	w.ZM = make([]float64, descriptorLen)
	for i := range w.ZMIndex {
		w.ZMIndex[i] = i
		w.ZM[i] = 0.01
	}
	w.Geo = []float64{0.3, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1}
	w.GeoRef = GeoRef
	w.ZMRef = ZMRef
	return w
}

//Score compares two structures from their full Zernike descriptor vectors
//(descA, descB, NaN-filtered, same order hence same length) and their
//geometric-statistics vectors (geoA, geoB). It returns the geometric and the
//Zernike similarity, both rescaled to a nominal 0-100 range: identical
//structures give exactly 100 on both, and nothing bounds the scores below 0
//for pathologically dissimilar pairs. The comparison is symmetric in the two
//structures bit for bit, since only absolute differences enter. NaN values
//must have been filtered before calling; they are rejected here because one
//NaN would poison both sums.
func Score(descA, geoA, descB, geoB []float64, w *Weights) (float64, float64, error) {
	if w == nil {
		return 0, 0, CError{"goshape.Score: nil weights", []string{"Score"}}
	}
	if len(descA) != len(descB) {
		return 0, 0, CError{fmt.Sprintf("goshape.Score: descriptor lengths %d and %d differ; same MaxOrder required", len(descA), len(descB)), []string{"Score"}}
	}
	if len(geoA) != len(geoB) || len(geoA) != len(w.Geo) {
		return 0, 0, CError{fmt.Sprintf("goshape.Score: geometric vector lengths %d/%d, weights %d", len(geoA), len(geoB), len(w.Geo)), []string{"Score"}}
	}
	if hasNaN(descA) || hasNaN(descB) || hasNaN(geoA) || hasNaN(geoB) {
		return 0, 0, CError{"goshape.Score: NaN in input vector; filter before scoring", []string{"Score"}}
	}
	var zmRaw float64
	for i, idx := range w.ZMIndex {
		if idx >= len(descA) {
			continue //weight tables may be longer than a low-order descriptor
		}
		zmRaw += w.ZM[i] * math.Abs(descA[idx]-descB[idx])
	}
	var geoRaw float64
	for i := range geoA {
		a, b := geoA[i], geoB[i]
		geoRaw += w.Geo[i] * 2 * math.Abs(a-b) / (1 + math.Abs(a) + math.Abs(b))
	}
	geoScore := (w.GeoRef - geoRaw) / w.GeoRef * 100
	zmScore := (w.ZMRef - zmRaw) / w.ZMRef * 100
	return geoScore, zmScore, nil
}

func hasNaN(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) {
			return true
		}
	}
	return false
}

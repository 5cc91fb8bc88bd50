/*
 * compare_test.go, part of goshape
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
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestGeoDescriptor(Te *testing.T) {
	coords := mat.NewDense(6, 3, []float64{
		0, 0, 0,
		2, 0, 0,
		0, 2, 0,
		0, 0, 2,
		-2, -1, 0,
		1, 1, 1,
	})
	weights := []float64{12, 14, 16, 12, 1, 32}
	gd, err := GeoDescriptor(coords, weights)
	if err != nil {
		Te.Fatal(err)
	}
	if len(gd) != 8 {
		Te.Fatalf("geometric descriptor has %d components, expected 8", len(gd))
	}
	//mean and quantiles are distances, the total weight is a plain sum
	if gd[0] <= 0 {
		Te.Errorf("mean distance %8.4f not positive", gd[0])
	}
	if gd[1] > gd[2] || gd[2] > gd[3] || gd[3] > gd[4] {
		Te.Errorf("quantiles out of order: %v", gd[1:5])
	}
	if math.Abs(gd[5]-87) > 1e-12 {
		Te.Errorf("total weight %8.4f, expected 87", gd[5])
	}
	fmt.Println("geometric descriptor:", gd)
}

func TestGeoDescriptorErrors(Te *testing.T) {
	coords := mat.NewDense(2, 3, []float64{0, 0, 0, 1, 1, 1})
	if _, err := GeoDescriptor(coords, []float64{1}); err == nil {
		Te.Error("mismatched weight count must be rejected")
	}
	_, err := GeoDescriptor(coords, []float64{0, 0})
	if err == nil {
		Te.Fatal("zero total weight must be rejected")
	}
	if _, ok := err.(DegenerateInputError); !ok {
		Te.Errorf("zero weight should be a DegenerateInputError, got %T", err)
	}
}

func TestScoreLengthChecks(Te *testing.T) {
	w := DefaultWeights(3)
	gd := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	if _, _, err := Score([]float64{1, 2, 3}, gd, []float64{1, 2}, gd, w); err == nil {
		Te.Error("descriptors of different length (different orders) must be rejected")
	}
	if _, _, err := Score([]float64{1, 2, 3}, gd[:5], []float64{1, 2, 3}, gd[:5], w); err == nil {
		Te.Error("geometric vectors not matching the weight table must be rejected")
	}
}

func TestScoreScale(Te *testing.T) {
	//a pair engineered so both raw sums are exactly the reference values,
	//which must land the scores exactly at zero.
	w := &Weights{
		ZMIndex: []int{0},
		ZM:      []float64{1},
		Geo:     []float64{1},
		GeoRef:  GeoRef,
		ZMRef:   ZMRef,
	}
	a := []float64{0}
	b := []float64{ZMRef}
	//geo: 2|x-0|/(1+x+0) = GeoRef  =>  x = GeoRef/(2-GeoRef)... GeoRef>2, so
	//use the symmetric pair x,-y instead: 2(x+y)/(1+x+y)<2 always. The geo
	//kernel is bounded by 2 per component, so a single component cannot reach
	//6.6; check the self case and a known value instead.
	geoA := []float64{3}
	geoB := []float64{1}
	geoS, zmS, err := Score(a, geoA, b, geoB, w)
	if err != nil {
		Te.Fatal(err)
	}
	if zmS != 0 {
		Te.Errorf("zm score %8.4f, expected exactly 0", zmS)
	}
	//raw geo = 2*2/(1+3+1) = 0.8; scaled = (6.6-0.8)/6.6*100
	want := (GeoRef - 0.8) / GeoRef * 100
	if math.Abs(geoS-want) > 1e-12 {
		Te.Errorf("geo score %8.4f, expected %8.4f", geoS, want)
	}
}

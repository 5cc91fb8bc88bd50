/*
 * voxel.go, part of goshape
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

//Package voxel builds density grids from atomic coordinates: each weighted
//center is splatted onto the grid as an isotropic Gaussian. This is the
//structure-to-grid collaborator of the shape pipeline; reading coordinates
//out of structure files is someone else's job (goChem does it happily).
package voxel

import (
	"fmt"
	"math"

	shape "github.com/rmera/goshape"
	"gonum.org/v1/gonum/mat"
)

//DefaultSigma is the Gaussian width, in the same unit as the coordinates
//(normally Angstrom), used when the caller passes a non-positive sigma. It
//approximates a heavy-atom density kernel at typical map resolutions.
const DefaultSigma = 1.0

//Voxelize splats the weighted centers in coords (an Nx3 matrix) onto a new
//axis-aligned grid with the given spacing. weights may be nil for uniform
//unit weights. The grid is padded around the structure's bounding box so the
//kernels decay to nothing before the border, and its Corner records the
//position of voxel (0,0,0) in the coordinate frame of the input.
func Voxelize(coords *mat.Dense, weights []float64, spacing, sigma float64) (*shape.Grid, error) {
	n, c := coords.Dims()
	if c != 3 {
		return nil, Error{fmt.Sprintf("coordinates have %d columns, need 3", c), []string{"Voxelize"}}
	}
	if n == 0 {
		return nil, Error{"no coordinates given", []string{"Voxelize"}}
	}
	if spacing <= 0 {
		return nil, Error{fmt.Sprintf("non-positive spacing %4.2f", spacing), []string{"Voxelize"}}
	}
	if sigma <= 0 {
		sigma = DefaultSigma
	}
	if weights == nil {
		weights = make([]float64, n)
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != n {
		return nil, Error{fmt.Sprintf("%d weights for %d centers", len(weights), n), []string{"Voxelize"}}
	}
	var min, max [3]float64
	for j := 0; j < 3; j++ {
		min[j] = coords.At(0, j)
		max[j] = coords.At(0, j)
	}
	for i := 1; i < n; i++ {
		for j := 0; j < 3; j++ {
			v := coords.At(i, j)
			if v < min[j] {
				min[j] = v
			}
			if v > max[j] {
				max[j] = v
			}
		}
	}
	cutoff := 4 * sigma //beyond this the kernel is below 3e-4 of its peak
	margin := cutoff + spacing
	var dims [3]int
	var corner [3]float64
	for j := 0; j < 3; j++ {
		corner[j] = min[j] - margin
		dims[j] = int((max[j]+margin-corner[j])/spacing) + 1
	}
	g := shape.NewGrid(dims[0], dims[1], dims[2], corner, spacing)
	amp := 1.0 / (sigma * sigma * sigma * math.Pow(2*math.Pi, 1.5))
	twoSigmaSq := 2 * sigma * sigma
	reach := int(cutoff/spacing) + 1
	for i := 0; i < n; i++ {
		x, y, z := coords.At(i, 0), coords.At(i, 1), coords.At(i, 2)
		ci := int((x - corner[0]) / spacing)
		cj := int((y - corner[1]) / spacing)
		ck := int((z - corner[2]) / spacing)
		w := weights[i] * amp
		for ii := ci - reach; ii <= ci+reach; ii++ {
			if ii < 0 || ii >= dims[0] {
				continue
			}
			dx := corner[0] + float64(ii)*spacing - x
			for jj := cj - reach; jj <= cj+reach; jj++ {
				if jj < 0 || jj >= dims[1] {
					continue
				}
				dy := corner[1] + float64(jj)*spacing - y
				for kk := ck - reach; kk <= ck+reach; kk++ {
					if kk < 0 || kk >= dims[2] {
						continue
					}
					dz := corner[2] + float64(kk)*spacing - z
					d2 := dx*dx + dy*dy + dz*dz
					if d2 > cutoff*cutoff {
						continue
					}
					g.Add(ii, jj, kk, w*math.Exp(-d2/twoSigmaSq))
				}
			}
		}
	}
	return g, nil
}

//Errors

//Error is the error type of the voxel package.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return "goshape/voxel: " + err.message }

//Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

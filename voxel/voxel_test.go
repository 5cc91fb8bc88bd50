/*
 * voxel_test.go, part of goshape
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

package voxel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestVoxelizeMass(t *testing.T) {
	coords := mat.NewDense(3, 3, []float64{
		0, 0, 0,
		4, 1, -2,
		-3, 2, 1,
	})
	weights := []float64{10, 20, 30}
	g, err := Voxelize(coords, weights, 0.5, 1.0)
	require.NoError(t, err)
	nx, ny, nz := g.Dims()
	var mass float64
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				mass += g.At(i, j, k)
			}
		}
	}
	//the normalized kernels integrate to the weights; the voxel sum times the
	//voxel volume approximates that integral, short only of the 4-sigma tail
	mass *= 0.5 * 0.5 * 0.5
	assert.InEpsilon(t, 60.0, mass, 0.02)
	//the grid must cover the structure with its margin
	assert.Less(t, g.Corner[0], -3.0)
	assert.Less(t, g.Corner[1], 0.0)
	assert.Less(t, g.Corner[2], -2.0)
}

func TestVoxelizeUniformWeights(t *testing.T) {
	coords := mat.NewDense(2, 3, []float64{0, 0, 0, 2, 2, 2})
	g, err := Voxelize(coords, nil, 1.0, 0) //nil weights, default sigma
	require.NoError(t, err)
	nx, ny, nz := g.Dims()
	var mass float64
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				mass += g.At(i, j, k)
			}
		}
	}
	assert.InEpsilon(t, 2.0, mass, 0.02)
}

func TestVoxelizeErrors(t *testing.T) {
	bad := mat.NewDense(2, 2, []float64{0, 0, 1, 1})
	_, err := Voxelize(bad, nil, 1.0, 1.0)
	assert.Error(t, err)
	good := mat.NewDense(2, 3, []float64{0, 0, 0, 1, 1, 1})
	_, err = Voxelize(good, []float64{1}, 1.0, 1.0)
	assert.Error(t, err)
	_, err = Voxelize(good, nil, -1, 1.0)
	assert.Error(t, err)
	_, err = Voxelize(mat.NewDense(1, 3, []float64{0, 0, 0}), nil, 1.0, 1.0)
	assert.NoError(t, err, "a single center is a legitimate, if dull, structure")
}

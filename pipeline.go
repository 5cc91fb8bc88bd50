/*
 * pipeline.go, part of goshape
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
	"github.com/rmera/goshape/cache"
)

//MomentsFromGrid runs the two-pass transform on a density grid: a first,
//order-1 pass on the unit lattice for mass, center of mass and radius, then
//the full-order pass on the sphere-rescaled lattice, and the Zernike
//recombination. It returns the scaled and raw moment sets. mult sizes the
//sphere (DefaultRadiusMultiplier when in doubt). The bundle must cover the
//requested order and is only read, so a single bundle can serve any number of
//concurrent calls.
func MomentsFromGrid(g *Grid, order int, b *cache.Bundle, mult float64) (*Moments, *Moments, error) {
	unit := UnitLattice(g)
	mass, center, _, err := ComputeMoments(g, 1, unit)
	if err != nil {
		return nil, nil, errDecorate(err, "MomentsFromGrid")
	}
	radius, _, err := MolecularRadius(g, center, mass, mult)
	if err != nil {
		return nil, nil, errDecorate(err, "MomentsFromGrid")
	}
	sphere, err := SphereLattice(g, center, radius)
	if err != nil {
		return nil, nil, errDecorate(err, "MomentsFromGrid")
	}
	_, _, tensor, err := ComputeMoments(g, order, sphere)
	if err != nil {
		return nil, nil, errDecorate(err, "MomentsFromGrid")
	}
	scaled, raw, err := ZernikeMoments(order, b, tensor, radius)
	if err != nil {
		return nil, nil, errDecorate(err, "MomentsFromGrid")
	}
	return scaled, raw, nil
}

//DescriptorFromGrid is the full direct pipeline: grid in, NaN-filtered
//descriptor vector out (the 3DZD magnitudes plus the rotation-aligned
//invariants for orders 2-5).
func DescriptorFromGrid(g *Grid, order int, b *cache.Bundle, mult float64) ([]float64, error) {
	scaled, raw, err := MomentsFromGrid(g, order, b, mult)
	if err != nil {
		return nil, errDecorate(err, "DescriptorFromGrid")
	}
	d, err := FullDescriptor(scaled, raw, b)
	if err != nil {
		return nil, errDecorate(err, "DescriptorFromGrid")
	}
	return d, nil
}

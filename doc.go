/*
 * doc.go, part of goshape
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

//Package shape computes rotation-invariant 3D Zernike shape descriptors from
//volumetric density grids sampled from molecular structures, and scores the
//shape similarity between pairs of structures from those descriptors.
//
//The pipeline goes: density Grid -> geometric moments (a first pass for mass,
//center of mass and radius, then a second pass sampled on a unit sphere around
//the structure) -> complex 3D Zernike moments -> per-(n,l) invariant
//descriptors, optionally enriched with rotation-aligned invariants for low
//orders -> pairwise similarity scores.
//
//Coefficient tables for the Zernike transform are precomputed per maximum
//expansion order and shared read-only between invocations (see the cache
//subpackage). The voxel subpackage builds grids from atomic coordinates.
package shape

//The global "almost zero" used to decide whether a float is, for the
//purposes of this library, zero. Same criterion as in goChem.
const appzero float64 = 0.000000000001

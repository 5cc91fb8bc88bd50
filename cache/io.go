/*
 * io.go, part of goshape
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

package cache

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

//Bundles are gob-encoded through a zstd stream. The tables are regular
//enough that zstd cuts them down to a small fraction; an order-20 bundle
//is a few hundred KB on disk.

//Write serializes the bundle, compressed, to w.
func (b *Bundle) Write(w io.Writer) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return errDecorate(err, "Write")
	}
	if err := gob.NewEncoder(zw).Encode(b); err != nil {
		zw.Close()
		return errDecorate(err, "Write")
	}
	if err := zw.Close(); err != nil {
		return errDecorate(err, "Write")
	}
	return nil
}

//Read deserializes a bundle written by Write and rebuilds its lookup tables.
func Read(r io.Reader) (*Bundle, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, errDecorate(err, "Read")
	}
	defer zr.Close()
	b := new(Bundle)
	if err := gob.NewDecoder(zr).Decode(b); err != nil {
		return nil, errDecorate(err, "Read")
	}
	if b.MaxOrder < 0 || len(b.Chi) != CountNLM(b.MaxOrder) || len(b.Norm) != len(b.Chi) {
		return nil, Error{fmt.Sprintf("bundle tables inconsistent with declared order %d", b.MaxOrder), "", []string{"Read"}, true}
	}
	b.init()
	return b, nil
}

//fileName is the on-disk naming convention for a bundle of a given order.
func fileName(order int) string {
	return fmt.Sprintf("zc%02d.gob.zst", order)
}

//WriteFile writes the bundle to its conventional file name under dir,
//creating dir if needed.
func WriteFile(dir string, b *Bundle) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errDecorate(err, "WriteFile")
	}
	f, err := os.Create(filepath.Join(dir, fileName(b.MaxOrder)))
	if err != nil {
		return errDecorate(err, "WriteFile")
	}
	defer f.Close()
	if err := b.Write(f); err != nil {
		return errDecorate(err, "WriteFile")
	}
	return nil
}

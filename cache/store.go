/*
 * store.go, part of goshape
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
	"fmt"
	"os"
	"path/filepath"
)

//Store holds the coefficient bundles for a set of expansion orders. Every
//requested bundle is loaded at construction; after that the store is
//immutable, so concurrent pipeline invocations can share one store with no
//locking. A store never generates tables, it only loads what was written
//beforehand (see Generate and WriteFile for producing them).
type Store struct {
	dir     string
	bundles map[int]*Bundle
}

//NewStore loads the bundle files for every given order from dir. If any of
//them is missing the whole load fails with a CacheNotFoundError: a partially
//loaded store would let callers mix orders by accident.
func NewStore(dir string, orders ...int) (*Store, error) {
	s := new(Store)
	s.dir = dir
	s.bundles = make(map[int]*Bundle, len(orders))
	for _, o := range orders {
		path := filepath.Join(dir, fileName(o))
		f, err := os.Open(path)
		if err != nil {
			return nil, CacheNotFoundError{o, path, []string{"NewStore"}}
		}
		b, err := Read(f)
		f.Close()
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("NewStore: order %d", o))
		}
		if b.MaxOrder != o {
			return nil, Error{fmt.Sprintf("bundle in %s declares order %d, expected %d", path, b.MaxOrder, o), path, []string{"NewStore"}, true}
		}
		s.bundles[o] = b
	}
	return s, nil
}

//NewMemStore builds a store by generating the bundles for the given orders
//in memory, without touching the disk. Meant for tests and one-off runs.
func NewMemStore(orders ...int) *Store {
	s := new(Store)
	s.bundles = make(map[int]*Bundle, len(orders))
	for _, o := range orders {
		s.bundles[o] = Generate(o)
	}
	return s
}

//Bundle returns the coefficient bundle for the given order, or a
//CacheNotFoundError if the store was not loaded with that order. The lookup
//is read-only.
func (s *Store) Bundle(order int) (*Bundle, error) {
	b, ok := s.bundles[order]
	if !ok {
		return nil, CacheNotFoundError{order, s.dir, []string{"Bundle"}}
	}
	return b, nil
}

//Orders returns the orders the store was loaded with.
func (s *Store) Orders() []int {
	var o []int
	for k := range s.bundles {
		o = append(o, k)
	}
	return o
}

//Errors

//Error is the general error type of the cache package.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("coefficient cache %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since err.deco is a slice, and hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//CacheNotFoundError means no precomputed bundle exists for the requested
//order. It cannot be recovered from within the library: the tables have to be
//generated and written upstream.
type CacheNotFoundError struct {
	Order int
	path  string
	deco  []string
}

func (err CacheNotFoundError) Error() string {
	return fmt.Sprintf("no coefficient bundle for order %d (looked in %s)", err.Order, err.path)
}

//Decorate adds new information to the error
func (err CacheNotFoundError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//errDecorate is a helper function that asserts that the error implements the
//package's Decorate convention and decorates it with the caller's name.
func errDecorate(err error, caller string) error {
	type decorator interface {
		Error() string
		Decorate(string) []string
	}
	err2, ok := err.(decorator)
	if ok {
		err2.Decorate(caller)
		return err2
	}
	return Error{err.Error(), "", []string{caller}, true}
}

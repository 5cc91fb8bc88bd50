/*
 * errors.go, part of goshape
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

import "strings"

//Error is the interface for errors in this library. On top of the standard
//error interface, it allows you to add information when you pass the error up,
//with Decorate. Each call to Decorate also returns the current "decoration"
//slice of strings. If passed an empty string, Decorate just returns the
//current value without adding anything. The decoration slice should contain
//the names of the functions in the calling stack plus, for each function, any
//relevant information, in the format "FunctionName: Extra info".
type Error interface {
	Error() string
	Decorate(string) []string
}

//CError is the concrete, catch-all error type of the shape package.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

//Decorate adds new information to the error
func (err CError) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since err.deco is a slice, and hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//DegenerateInputError means that a density grid had zero (or negative) total
//mass, so no center of mass, radius or descriptor can be derived from it.
//It is fatal for that input.
type DegenerateInputError struct {
	msg  string
	deco []string
}

func (err DegenerateInputError) Error() string { return "goshape: degenerate input: " + err.msg }

//Decorate adds new information to the error
func (err DegenerateInputError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//OrderMismatchError means that a geometric moment tensor does not cover the
//index range required by the coefficient tables for the requested expansion
//order. It is a configuration error: there is no recovery within the library.
type OrderMismatchError struct {
	msg  string
	deco []string
}

func (err OrderMismatchError) Error() string { return "goshape: order mismatch: " + err.msg }

//Decorate adds new information to the error
func (err OrderMismatchError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//errDecorate is a helper function that asserts that the error implements
//shape.Error and decorates the error with the caller's name before returning
//it. If the error does not implement shape.Error, it is wrapped in a CError
//first.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error) //This will only work for errors within this package.
	if ok {
		err2.Decorate(caller)
		return err2
	}
	err3 := CError{err.Error(), []string{caller}}
	return err3
}

//deco2String collects a decoration slice into a printable trace. Only used
//for error messages, never for control flow.
func deco2String(deco []string) string {
	return strings.Join(deco, "/")
}

/*
 * plot.go, part of goshape
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

//Package shapeplot renders Zernike descriptor profiles, mostly for eyeballing
//why two structures scored the way they did.
package shapeplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicProfilePlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "descriptor index"
	p.Y.Label.Text = "magnitude"
	p.Add(plotter.NewGrid())
	return p
}

//DescriptorProfile plots one or more descriptor vectors as lines over their
//component index, which puts the low-order (coarse shape) components on the
//left and the fine detail on the right. Vectors of different length plot
//fine; they just stop earlier.
func DescriptorProfile(title string, descs ...[]float64) (*plot.Plot, error) {
	if len(descs) == 0 {
		return nil, Error{"no descriptors given", []string{"DescriptorProfile"}}
	}
	p := basicProfilePlot(title)
	colors := []color.RGBA{
		{R: 30, G: 90, B: 180, A: 255},
		{R: 180, G: 60, B: 30, A: 255},
		{R: 30, G: 140, B: 60, A: 255},
	}
	for i, d := range descs {
		if len(d) == 0 {
			return nil, Error{fmt.Sprintf("descriptor %d is empty", i), []string{"DescriptorProfile"}}
		}
		pts := make(plotter.XYs, len(d))
		for j, v := range d {
			pts[j].X = float64(j)
			pts[j].Y = v
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, errDecorate(err, "DescriptorProfile")
		}
		line.Color = colors[i%len(colors)]
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("structure %d", i+1), line)
	}
	return p, nil
}

//SavePNG writes the plot as a PNG of w x h centimeters.
func SavePNG(p *plot.Plot, w, h float64, filename string) error {
	if err := p.Save(vg.Length(w)*vg.Centimeter, vg.Length(h)*vg.Centimeter, filename); err != nil {
		return errDecorate(err, "SavePNG")
	}
	return nil
}

//Errors

//Error is the error type of the shapeplot package.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return "goshape/shapeplot: " + err.message }

//Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
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
	return Error{err.Error(), []string{caller}}
}

/*
 * pwplot.go, part of pwharv.
 *
 * Copyright 2024 The pwharv Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package pwplot draws simple plots of the quantities computed by pwharv, using gonum/plot.
//The image format is deduced from the extension of the file name (png, svg, pdf...).
package pwplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var axisNames = [3]string{"a", "b", "c"}

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

// ProfilePlot plots a planar average of a density along the given lattice axis (0, 1 or 2)
// against the fractional coordinate, and saves it to filename.
func ProfilePlot(profile []float64, axis int, title, filename string) error {
	if len(profile) == 0 {
		return fmt.Errorf("pwplot: empty profile")
	}
	if axis < 0 || axis > 2 {
		return fmt.Errorf("pwplot: invalid axis %d", axis)
	}
	p := basicPlot(title, fmt.Sprintf("fractional coordinate along %s", axisNames[axis]), "planar average")
	pts := make(plotter.XYs, len(profile)+1)
	for i, v := range profile {
		pts[i].X = float64(i) / float64(len(profile))
		pts[i].Y = v
	}
	//close the period
	pts[len(profile)].X = 1
	pts[len(profile)].Y = profile[0]
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.LineStyle.Width = vg.Points(1.5)
	l.LineStyle.Color = color.RGBA{B: 200, A: 255}
	p.Add(l)
	p.X.Min = 0
	p.X.Max = 1
	return p.Save(5*vg.Inch, 4*vg.Inch, filename)
}

// KineticPlot draws a bar per k-point with its kinetic energy, and saves it to filename.
func KineticPlot(perk []float64, title, filename string) error {
	if len(perk) == 0 {
		return fmt.Errorf("pwplot: no k-points to plot")
	}
	p := basicPlot(title, "k-point", "kinetic energy")
	b, err := plotter.NewBarChart(plotter.Values(perk), vg.Points(12))
	if err != nil {
		return err
	}
	b.Color = color.RGBA{R: 200, G: 80, A: 255}
	b.LineStyle.Width = vg.Length(0)
	p.Add(b)
	names := make([]string, len(perk))
	for i := range names {
		names[i] = fmt.Sprint(i + 1)
	}
	p.NominalX(names...)
	return p.Save(5*vg.Inch, 4*vg.Inch, filename)
}

/*
 * plot.go, part of gocg
 *
 * Copyright 2023 The gocg developers
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
 *
*/

//Package plot saves quick-look PNG figures for the analysis results: radial
//distribution functions and binned bond/angle distributions. Nothing here
//is meant for publication-quality output, only for eyeballing a run.
package plot

import (
	"fmt"

	"github.com/cmelab/gocg/histo"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Error implements the cg.Error interface for this package.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return fmt.Sprintf("plot error: %s", err.message) }

//Decorate adds the dec string to the decoration slice of the error and
//returns the resulting slice. An empty dec adds nothing.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func basicPlot(title, xlabel, ylabel string) *gplot.Plot {
	p := gplot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

//RDFPlot saves a line plot of the radial distribution function gr over the
//distances rs to plotname.png. The two slices must have the same length.
func RDFPlot(rs, gr []float64, title, plotname string) error {
	if len(rs) != len(gr) {
		return Error{fmt.Sprintf("%d distances for %d g(r) values", len(rs), len(gr)), []string{"RDFPlot"}}
	}
	if len(rs) == 0 {
		return Error{"nothing to plot", []string{"RDFPlot"}}
	}
	p := basicPlot(title, "r (A)", "g(r)")
	pts := make(plotter.XYs, len(rs))
	for i := range rs {
		pts[i].X = rs[i]
		pts[i].Y = gr[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return Error{err.Error(), []string{"RDFPlot"}}
	}
	p.Add(line)
	filename := fmt.Sprintf("%s.png", plotname)
	if err := p.Save(5*vg.Inch, 5*vg.Inch, filename); err != nil {
		return Error{err.Error(), []string{"RDFPlot"}}
	}
	return nil
}

//HistoPlot saves a plot of the histogram to plotname.png, one point per
//bin at the bin center, joined by lines.
func HistoPlot(d *histo.Data, title, xlabel, plotname string) error {
	if d == nil {
		return Error{"nil histogram given", []string{"HistoPlot"}}
	}
	centers := d.Centers()
	bins := d.View()
	p := basicPlot(title, xlabel, "count")
	pts := make(plotter.XYs, len(bins))
	for i := range bins {
		pts[i].X = centers[i]
		pts[i].Y = bins[i]
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return Error{err.Error(), []string{"HistoPlot"}}
	}
	p.Add(line, points)
	filename := fmt.Sprintf("%s.png", plotname)
	if err := p.Save(5*vg.Inch, 5*vg.Inch, filename); err != nil {
		return Error{err.Error(), []string{"HistoPlot"}}
	}
	return nil
}

//CollectionPlot saves one HistoPlot per histogram in the collection, named
//prefix_key.png. It stops at the first failure.
func CollectionPlot(c *histo.Collection, xlabel, prefix string) error {
	for _, key := range c.Keys() {
		name := fmt.Sprintf("%s_%s", prefix, key)
		if err := HistoPlot(c.Get(key), key, xlabel, name); err != nil {
			return errDecorate(err, "CollectionPlot")
		}
	}
	return nil
}

func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
		return e
	}
	return err
}

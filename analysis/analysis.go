/*
 * analysis.go, part of gocg
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

//Package analysis computes structural and statistical properties of
//coarse-grained trajectories: radial distribution functions, constraint
//distributions, autocorrelation and error estimates. Distances use the
//minimum-image convention, so a periodic box is always required.
package analysis

import (
	"fmt"
	"math"
	"runtime"

	cg "github.com/cmelab/gocg"
	v3 "github.com/cmelab/gocg/v3"
)

//Options holds the parameters shared by the distribution calculations.
type Options struct {
	step float64
	end  float64
	cpus int
	skip int
}

//DefaultOptions returns an Options with 0.1-wide bins, as many goroutines
//as logical CPUs, no frame skipping and the cutoff left to be taken from
//the box.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.step = 0.1
	ret.end = 0
	ret.cpus = runtime.NumCPU()
	ret.skip = 1
	return ret
}

//Step returns the current bin width, and sets it first if a valid value
//is given.
func (o *Options) Step(step ...float64) float64 {
	if len(step) > 0 && step[0] > 0 {
		o.step = step[0]
	}
	return o.step
}

//End returns the current distance cutoff, and sets it first if a valid
//value is given. A zero cutoff means a quarter of the shortest box length,
//resolved when the calculation runs.
func (o *Options) End(end ...float64) float64 {
	if len(end) > 0 && end[0] > 0 {
		o.end = end[0]
	}
	return o.end
}

//Cpus returns the number of goroutines used by the concurrent functions,
//and sets it first if a valid value is given.
func (o *Options) Cpus(cpus ...int) int {
	if len(cpus) > 0 && cpus[0] > 0 {
		o.cpus = cpus[0]
	}
	return o.cpus
}

//Skip returns the frame-skipping stride, and sets it first if a valid
//value is given.
func (o *Options) Skip(skip ...int) int {
	if len(skip) > 0 && skip[0] > 0 {
		o.skip = skip[0]
	}
	return o.skip
}

//cutoff resolves the distance cutoff against the box.
func (o *Options) cutoff(box *cg.Box) float64 {
	if o.end > 0 {
		return o.end
	}
	return box.MinLength() / 4
}

//nameIndexes is the selection the RDF works on: all particles with the
//given name.
func nameIndexes(top cg.Atomer, name string) []int {
	ret := make([]int, 0, 10)
	for i := 0; i < top.Len(); i++ {
		if top.Atom(i).Name == name {
			ret = append(ret, i)
		}
	}
	return ret
}

//minImageDistance is the distance between particles i and j of coord under
//the minimum-image convention.
func minImageDistance(coord *v3.Matrix, i, j int, box *cg.Box) float64 {
	diff := box.WrapVec([3]float64{
		coord.At(i, 0) - coord.At(j, 0),
		coord.At(i, 1) - coord.At(j, 1),
		coord.At(i, 2) - coord.At(j, 2),
	})
	return math.Sqrt(diff[0]*diff[0] + diff[1]*diff[1] + diff[2]*diff[2])
}

//frameRDF bins the minimum-image distances between the two selections for
//one frame. Ordered pairs are counted, skipping i==j, which works for both
//same-name and cross RDFs as long as the normalization does the same.
func frameRDF(coord *v3.Matrix, selA, selB []int, box *cg.Box, end, step float64) []float64 {
	nbins := int(end / step)
	counts := make([]float64, nbins)
	for _, i := range selA {
		for _, j := range selB {
			if i == j {
				continue
			}
			d := minImageDistance(coord, i, j, box)
			if d >= end {
				continue
			}
			counts[int(d/step)]++
		}
	}
	return counts
}

//normalizeRDF turns accumulated pair counts into g(r), the pair density
//relative to an ideal gas of the same overall density.
func normalizeRDF(counts []float64, framesread, nA, nB int, box *cg.Box, step float64) ([]float64, []float64) {
	vol := box[0] * box[1] * box[2]
	density := float64(nB) / vol
	rs := make([]float64, len(counts))
	gr := make([]float64, len(counts))
	vp := (4.0 / 3.0) * math.Pi
	for i, c := range counts {
		fi := float64(i)
		shell := vp * (math.Pow((fi+1)*step, 3) - math.Pow(fi*step, 3))
		rs[i] = (fi + 0.5) * step
		gr[i] = c / (float64(framesread) * float64(nA) * density * shell)
	}
	return rs, gr
}

//RDF computes the radial distribution function between the particles named
//nameA and those named nameB over a whole trajectory. It returns the bin
//centers and g(r). The topology only provides names; the box provides the
//minimum-image convention and the normalization volume.
func RDF(traj cg.Traj, top cg.Atomer, nameA, nameB string, box *cg.Box, options ...*Options) ([]float64, []float64, error) {
	o := DefaultOptions()
	if len(options) > 0 {
		o = options[0]
	}
	if box == nil {
		return nil, nil, fmt.Errorf("analysis: RDF needs a periodic box")
	}
	selA := nameIndexes(top, nameA)
	selB := nameIndexes(top, nameB)
	if len(selA) == 0 || len(selB) == 0 {
		return nil, nil, fmt.Errorf("analysis: no particles named %q and/or %q", nameA, nameB)
	}
	end := o.cutoff(box)
	var counts []float64
	coord := v3.Zeros(traj.Len())
	framesread := 0
	var err error
reading:
	for i := 0; ; i++ {
		if i%o.skip != 0 {
			err = traj.Next(nil)
			if err == nil {
				continue
			}
		} else {
			err = traj.Next(coord)
		}
		if err != nil {
			switch err := err.(type) {
			case cg.LastFrameError:
				break reading
			case cg.Error:
				err.Decorate(fmt.Sprintf("RDF: failed while reading the %d th frame", i))
				return nil, nil, err
			default:
				return nil, nil, err
			}
		}
		frame := frameRDF(coord, selA, selB, box, end, o.step)
		if counts == nil {
			counts = make([]float64, len(frame))
		}
		for j, v := range frame {
			counts[j] += v
		}
		framesread++
	}
	if framesread == 0 {
		return nil, nil, fmt.Errorf("analysis: the trajectory had no frames")
	}
	rs, gr := normalizeRDF(counts, framesread, len(selA), len(selB), box, o.step)
	return rs, gr, nil
}

//ConcRDF is RDF over a concurrent trajectory: frames are handed to one
//worker goroutine each, in batches of Cpus frames. Skip is not honored
//here; feed it a stride-reduced trajectory if you need one.
func ConcRDF(traj cg.ConcTraj, top cg.Atomer, nameA, nameB string, box *cg.Box, options ...*Options) ([]float64, []float64, error) {
	o := DefaultOptions()
	if len(options) > 0 {
		o = options[0]
	}
	if box == nil {
		return nil, nil, fmt.Errorf("analysis: ConcRDF needs a periodic box")
	}
	selA := nameIndexes(top, nameA)
	selB := nameIndexes(top, nameB)
	if len(selA) == 0 || len(selB) == 0 {
		return nil, nil, fmt.Errorf("analysis: no particles named %q and/or %q", nameA, nameB)
	}
	end := o.cutoff(box)
	frames := make([]*v3.Matrix, o.cpus)
	for i := range frames {
		frames[i] = v3.Zeros(traj.Len())
	}
	results := make([]chan []float64, len(frames))
	for i := range results {
		results[i] = make(chan []float64)
	}
	var counts []float64
	framesread := 0
	for i := 0; ; i++ {
		coordchans, err := traj.NextConc(frames)
		if err != nil {
			if _, ok := err.(cg.LastFrameError); ok {
				if coordchans == nil {
					break
				}
			} else if err2, ok := err.(cg.Error); ok {
				err2.Decorate(fmt.Sprintf("ConcRDF: failed while reading the %d th batch", i))
				return nil, nil, err2
			} else {
				return nil, nil, err
			}
		}
		for key, channel := range coordchans {
			go func(in chan *v3.Matrix, out chan []float64) {
				out <- frameRDF(<-in, selA, selB, box, end, o.step)
			}(channel, results[key])
		}
		for _, k := range results[:len(coordchans)] {
			frame := <-k
			if counts == nil {
				counts = make([]float64, len(frame))
			}
			for j, v := range frame {
				counts[j] += v
			}
			framesread++
		}
		if err != nil { //a LastFrameError with a partial batch
			break
		}
	}
	if framesread == 0 {
		return nil, nil, fmt.Errorf("analysis: the trajectory had no frames")
	}
	rs, gr := normalizeRDF(counts, framesread, len(selA), len(selB), box, o.step)
	return rs, gr, nil
}

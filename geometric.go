/*
 * geometric.go, part of gocg
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

package cg

import (
	"math"

	v3 "github.com/cmelab/gocg/v3"
)

const appzero float64 = 0.000000000001 //used to correct floating point math errors

//Distance returns the euclidean distance between the vectors v1 and v2.
func Distance(v1, v2 *v3.Matrix) float64 {
	d := v3.Zeros(1)
	d.Sub(v2, v1)
	return d.Norm(2)
}

//VDistances returns the distances between every vector of coords and
//the single vector point.
func VDistances(coords, point *v3.Matrix) []float64 {
	n := coords.NVecs()
	ret := make([]float64, n)
	d := v3.Zeros(1)
	for i := 0; i < n; i++ {
		d.Sub(coords.VecView(i), point)
		ret[i] = d.Norm(2)
	}
	return ret
}

//Angle returns the angle a-b-c in radians, given the positions of the
//three points. It does not check for correctness of the inputs.
func Angle(a, b, c *v3.Matrix) float64 {
	ba := v3.Zeros(1)
	bc := v3.Zeros(1)
	ba.Sub(a, b)
	bc.Sub(c, b)
	dot := 0.0
	for i := 0; i < 3; i++ {
		dot += ba.At(0, i) * bc.At(0, i)
	}
	argument := dot / (ba.Norm(2) * bc.Norm(2))
	//Take care of floating point math errors
	if math.Abs(argument-1) <= appzero {
		argument = 1
	} else if math.Abs(argument+1) <= appzero {
		argument = -1
	}
	return math.Acos(argument)
}

//Centroid returns the geometric center of the given coordinates.
func Centroid(coords *v3.Matrix) *v3.Matrix {
	n := coords.NVecs()
	ret := v3.Zeros(1)
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			ret.Set(0, j, ret.At(0, j)+coords.At(i, j))
		}
	}
	ret.Scale(1/float64(n), ret)
	return ret
}

//CenterOfMass returns the center of mass of the given coordinates with the
//given masses. It returns an error if the slices don't match or the total
//mass is not positive.
func CenterOfMass(coords *v3.Matrix, masses []float64) (*v3.Matrix, error) {
	n := coords.NVecs()
	if len(masses) != n {
		return nil, CError{"mismatched coordinates and masses", []string{"CenterOfMass"}}
	}
	ret := v3.Zeros(1)
	tot := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			ret.Set(0, j, ret.At(0, j)+coords.At(i, j)*masses[i])
		}
		tot += masses[i]
	}
	if tot <= 0 {
		return nil, CError{"the total mass is not positive", []string{"CenterOfMass"}}
	}
	ret.Scale(1/tot, ret)
	return ret, nil
}

//Deg2Rad converts degrees to radians.
func Deg2Rad(f float64) float64 {
	return f * math.Pi / 180
}

//Rad2Deg converts radians to degrees.
func Rad2Deg(f float64) float64 {
	return f * 180 / math.Pi
}

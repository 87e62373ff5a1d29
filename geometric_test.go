/*
 * geometric_test.go, part of gocg
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
	"testing"

	v3 "github.com/cmelab/gocg/v3"
)

func vec(x, y, z float64) *v3.Matrix {
	m, err := v3.NewMatrix([]float64{x, y, z})
	if err != nil {
		panic(err.Error())
	}
	return m
}

func TestDistance(Te *testing.T) {
	if d := Distance(vec(0, 0, 0), vec(3, 4, 0)); math.Abs(d-5) > 1e-10 {
		Te.Errorf("wrong distance %6.3f", d)
	}
}

func TestVDistances(Te *testing.T) {
	coords, _ := v3.NewMatrix([]float64{0, 0, 0, 3, 4, 0, 0, 0, 2})
	ds := VDistances(coords, vec(0, 0, 0))
	want := []float64{0, 5, 2}
	for i, d := range ds {
		if math.Abs(d-want[i]) > 1e-10 {
			Te.Errorf("distance %d is %6.3f, wanted %6.3f", i, d, want[i])
		}
	}
}

func TestAngle(Te *testing.T) {
	a := Angle(vec(1, 0, 0), vec(0, 0, 0), vec(0, 1, 0))
	if math.Abs(Rad2Deg(a)-90) > 1e-8 {
		Te.Errorf("wrong angle %6.3f deg", Rad2Deg(a))
	}
	//collinear vectors must not produce NaN from floating-point spill
	b := Angle(vec(1, 0, 0), vec(0, 0, 0), vec(2, 0, 0))
	if math.IsNaN(b) || math.Abs(Rad2Deg(b)) > 1e-8 {
		Te.Errorf("wrong collinear angle %6.3f deg", Rad2Deg(b))
	}
}

func TestCentroid(Te *testing.T) {
	coords, _ := v3.NewMatrix([]float64{0, 0, 0, 2, 0, 0, 1, 3, 0})
	c := Centroid(coords)
	if math.Abs(c.At(0, 0)-1) > 1e-10 || math.Abs(c.At(0, 1)-1) > 1e-10 {
		Te.Errorf("wrong centroid (%5.3f, %5.3f, %5.3f)", c.At(0, 0), c.At(0, 1), c.At(0, 2))
	}
}

func TestCenterOfMass(Te *testing.T) {
	coords, _ := v3.NewMatrix([]float64{0, 0, 0, 4, 0, 0})
	com, err := CenterOfMass(coords, []float64{3, 1})
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(com.At(0, 0)-1) > 1e-10 {
		Te.Errorf("wrong center of mass x=%5.3f", com.At(0, 0))
	}
	if _, err := CenterOfMass(coords, []float64{3}); err == nil {
		Te.Error("no error for mismatched masses")
	}
}

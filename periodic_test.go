/*
 * periodic_test.go, part of gocg
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

//chainInBox builds a linear carbon chain with the given x coordinates,
//bonded in order, in a cubic box of side 10.
func chainInBox(xs ...float64) *Compound {
	ats := make([]*Atom, 0, len(xs))
	data := make([]float64, 0, len(xs)*3)
	for i, x := range xs {
		ats = append(ats, &Atom{Name: "C", Symbol: "C", ID: i + 1})
		data = append(data, x, 0, 0)
	}
	top := NewTopology(ats)
	for i := 0; i < len(xs)-1; i++ {
		top.AddBond(i, i+1)
	}
	coord, err := v3.NewMatrix(data)
	if err != nil {
		panic(err.Error())
	}
	mol, err := NewCompound(top, []*v3.Matrix{coord})
	if err != nil {
		panic(err.Error())
	}
	box, err := NewBox(10, 10, 10)
	if err != nil {
		panic(err.Error())
	}
	mol.SetBox(box)
	return mol
}

func TestBoxWrapVec(Te *testing.T) {
	box, err := NewBox(10, 10, 10)
	if err != nil {
		Te.Fatal(err)
	}
	got := box.WrapVec([3]float64{5.5, -12, 0.2})
	want := [3]float64{-4.5, -2, 0.2}
	for d := 0; d < 3; d++ {
		if math.Abs(got[d]-want[d]) > 1e-10 {
			Te.Errorf("wrapped to %v, wanted %v", got, want)
			break
		}
	}
}

func TestBoxImages(Te *testing.T) {
	box, _ := NewBox(10, 10, 10)
	img := box.Image([3]float64{8.5, -7, 0.2})
	if img != [3]int{1, -1, 0} {
		Te.Errorf("wrong image: %v", img)
	}
	pos := box.UnwrapVec([3]float64{-4.5, 2, 0.2}, img)
	want := [3]float64{5.5, -8, 0.2}
	for d := 0; d < 3; d++ {
		if math.Abs(pos[d]-want[d]) > 1e-10 {
			Te.Errorf("unwrapped to %v, wanted %v", pos, want)
			break
		}
	}
}

func TestNewBoxBad(Te *testing.T) {
	if _, err := NewBox(10, 0, 10); err == nil {
		Te.Error("no error for a zero box length")
	}
}

func TestWrap(Te *testing.T) {
	mol := chainInBox(5.5, 4.5)
	if err := mol.Wrap(0); err != nil {
		Te.Fatal(err)
	}
	coord := mol.Coord(0)
	if math.Abs(coord.At(0, 0)+4.5) > 1e-10 {
		Te.Errorf("atom 0 wrapped to x=%5.3f, wanted -4.5", coord.At(0, 0))
	}
	if math.Abs(coord.At(1, 0)-4.5) > 1e-10 {
		Te.Errorf("atom 1 moved, it was already in the box")
	}
}

func TestIsBadBond(Te *testing.T) {
	mol := chainInBox(4.5, -4.5)
	bad, err := mol.IsBadBond(0, 0, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if !bad {
		Te.Error("boundary-spanning bond not flagged")
	}
	mol2 := chainInBox(1.0, 2.5)
	bad, err = mol2.IsBadBond(0, 0, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if bad {
		Te.Error("ordinary bond flagged as spanning the boundary")
	}
}

func TestUnwrapPosition(Te *testing.T) {
	mol := chainInBox(4.5, -4.5)
	pos, err := mol.UnwrapPosition(0, 0, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(pos[0]-5.5) > 1e-10 {
		Te.Errorf("unwrapped neighbor at x=%5.3f, wanted 5.5", pos[0])
	}
}

//TestUnwrap puts a 3-carbon chain across the boundary: its real positions
//are x = 3.5, 4.5, 5.5, but the last atom comes wrapped to -4.5.
func TestUnwrap(Te *testing.T) {
	mol := chainInBox(3.5, 4.5, -4.5)
	if err := mol.Unwrap(0, 2.0); err != nil {
		Te.Fatal(err)
	}
	coord := mol.Coord(0)
	if math.Abs(coord.At(2, 0)-5.5) > 1e-10 {
		Te.Errorf("outlier ended at x=%5.3f, wanted 5.5", coord.At(2, 0))
	}
	if math.Abs(coord.At(0, 0)-3.5) > 1e-10 || math.Abs(coord.At(1, 0)-4.5) > 1e-10 {
		Te.Error("anchor atoms moved during unwrapping")
	}
	if bad := mol.badBonds(0, 2.0); len(bad) != 0 {
		Te.Errorf("bad bonds remain after unwrapping: %v", bad)
	}
}

//TestUnwrapDragsNeighbors checks that atoms hanging off an outlier cross
//the boundary along with it: real positions x = 2.5 ... 6.5, with the last
//two atoms wrapped.
func TestUnwrapDragsNeighbors(Te *testing.T) {
	mol := chainInBox(2.5, 3.5, 4.5, -4.5, -3.5)
	if err := mol.Unwrap(0, 2.0); err != nil {
		Te.Fatal(err)
	}
	coord := mol.Coord(0)
	if math.Abs(coord.At(3, 0)-5.5) > 1e-10 || math.Abs(coord.At(4, 0)-6.5) > 1e-10 {
		Te.Errorf("dragged atoms ended at x=%5.3f and x=%5.3f, wanted 5.5 and 6.5",
			coord.At(3, 0), coord.At(4, 0))
	}
	if bad := mol.badBonds(0, 2.0); len(bad) != 0 {
		Te.Errorf("bad bonds remain after unwrapping: %v", bad)
	}
}

func TestUnwrapNoop(Te *testing.T) {
	mol := chainInBox(1.0, 2.0, 3.0)
	before := mol.Coord(0).Clone()
	if err := mol.Unwrap(0, 2.0); err != nil {
		Te.Fatal(err)
	}
	coord := mol.Coord(0)
	for i := 0; i < mol.Len(); i++ {
		if Distance(before.VecView(i), coord.VecView(i)) > 1e-10 {
			Te.Fatal("unwrap moved atoms of a whole molecule")
		}
	}
}

//A 2-particle molecule split by the boundary has both endpoints equally far
//from its centroid, so there is no way to tell which one to move.
func TestUnwrapEquidistantOutliers(Te *testing.T) {
	mol := chainInBox(4.5, -4.5)
	if err := mol.Unwrap(0, 5.0); err == nil {
		Te.Fatal("no error for a bond with no decidable outlier")
	}
}

//A bond that is genuinely long in real space cannot be fixed by image
//shifts; Unwrap must give up after its fixed number of passes, leaving the
//coordinates alone, and not report an error.
func TestUnwrapGivesUp(Te *testing.T) {
	mol := chainInBox(0.0, 1.0, 4.0)
	before := mol.Coord(0).Clone()
	if err := mol.Unwrap(0, 2.0); err != nil {
		Te.Fatal(err)
	}
	coord := mol.Coord(0)
	for i := 0; i < mol.Len(); i++ {
		if Distance(before.VecView(i), coord.VecView(i)) > 1e-10 {
			Te.Fatal("unwrap moved atoms it could not have helped")
		}
	}
}

func TestUnwrapNoBox(Te *testing.T) {
	mol := chainInBox(3.5, 4.5, -4.5)
	mol.SetBox(nil)
	if err := mol.Unwrap(0, 2.0); err == nil {
		Te.Error("no error unwrapping without a box")
	}
}

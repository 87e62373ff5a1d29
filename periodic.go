/*
 * periodic.go, part of gocg
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
	"fmt"
	"log"
	"math"

	v3 "github.com/cmelab/gocg/v3"
)

//unwrapTries is the maximum number of passes Unwrap will take over a
//compound before giving up on bonds that still span the boundary.
const unwrapTries = 5

//Box is an orthorhombic periodic box, centered at the origin, given by its
//lengths along x, y and z.
type Box [3]float64

//NewBox returns a box with the given lengths. All of them must be positive.
func NewBox(x, y, z float64) (*Box, error) {
	if x <= 0 || y <= 0 || z <= 0 {
		return nil, CError{fmt.Sprintf("box lengths must be positive, got %4.2f %4.2f %4.2f", x, y, z), []string{"NewBox"}}
	}
	return &Box{x, y, z}, nil
}

//MinLength returns the shortest box length.
func (B *Box) MinLength() float64 {
	return math.Min(B[0], math.Min(B[1], B[2]))
}

//WrapVec returns pos translated by whole box lengths so it lies
//within the box.
func (B *Box) WrapVec(pos [3]float64) [3]float64 {
	var ret [3]float64
	for i, v := range pos {
		l := B[i]
		ret[i] = v - l*math.Round(v/l)
	}
	return ret
}

//Image returns, for each dimension, how many box lengths the given
//difference vector spans: 1 if it exceeds half a box length, -1 if it
//exceeds minus half a box length, 0 otherwise.
func (B *Box) Image(diff [3]float64) [3]int {
	var ret [3]int
	for i, v := range diff {
		if v > B[i]/2 {
			ret[i] = 1
		} else if v < -B[i]/2 {
			ret[i] = -1
		}
	}
	return ret
}

//UnwrapVec returns pos translated by the given number of box images
//in each dimension, i.e. its real-space position.
func (B *Box) UnwrapVec(pos [3]float64, image [3]int) [3]float64 {
	var ret [3]float64
	for i, v := range pos {
		ret[i] = v + float64(image[i])*B[i]
	}
	return ret
}

//vecAsArray is a small convenience to move between the matrix world
//and the fixed-size arrays the Box methods take.
func vecAsArray(coord *v3.Matrix, i int) [3]float64 {
	return [3]float64{coord.At(i, 0), coord.At(i, 1), coord.At(i, 2)}
}

func setVecFromArray(coord *v3.Matrix, i int, pos [3]float64) {
	for j, v := range pos {
		coord.Set(i, j, v)
	}
}

//Wrap finds the particles of the given frame which are out of the box and
//translates them to within the box. It returns an error if the compound has
//no box assigned.
func (C *Compound) Wrap(frame int) error {
	if C.box == nil {
		return CError{string(ErrNoBox), []string{"Wrap"}}
	}
	coord := C.Coord(frame)
	for i := 0; i < coord.NVecs(); i++ {
		pos := vecAsArray(coord, i)
		for j := range pos {
			if math.Abs(pos[j]) > C.box[j]/2 {
				setVecFromArray(coord, i, C.box.WrapVec(pos))
				break
			}
		}
	}
	return nil
}

//IsBadBond determines whether the bond between particles i and j of the
//given frame spans the periodic boundary, based on a cutoff of half the box
//length in any dimension.
func (C *Compound) IsBadBond(frame, i, j int) (bool, error) {
	if C.box == nil {
		return false, CError{string(ErrNoBox), []string{"IsBadBond"}}
	}
	coord := C.Coord(frame)
	for d := 0; d < 3; d++ {
		if math.Abs(coord.At(i, d)-coord.At(j, d)) > C.box[d]/2 {
			return true, nil
		}
	}
	return false, nil
}

//UnwrapPosition returns the real-space position for particle j of a bonded
//pair (i, j) which spans the periodic boundary. If you want to move i
//instead, swap the arguments.
func (C *Compound) UnwrapPosition(frame, i, j int) ([3]float64, error) {
	if C.box == nil {
		return [3]float64{}, CError{string(ErrNoBox), []string{"UnwrapPosition"}}
	}
	coord := C.Coord(frame)
	var diff [3]float64
	for d := 0; d < 3; d++ {
		diff[d] = coord.At(i, d) - coord.At(j, d)
	}
	img := C.box.Image(diff)
	return C.box.UnwrapVec(vecAsArray(coord, j), img), nil
}

//badBonds returns the index pairs of bonds in the given frame longer
//than the tolerance.
func (C *Compound) badBonds(frame int, tolerance float64) [][2]int {
	coord := C.Coord(frame)
	ret := make([][2]int, 0, 5)
	for _, b := range C.bonds {
		if Distance(coord.VecView(b.At1.Index), coord.VecView(b.At2.Index)) > tolerance {
			ret = append(ret, [2]int{b.At1.Index, b.At2.Index})
		}
	}
	return ret
}

//Unwrap corrects molecules of the given frame which span the periodic
//boundary, by translating particles to their real-space positions. Bonds
//longer than the given distance tolerance are considered to span the
//boundary; from each, the particle whose removal reduces the average
//distance to the molecule's geometric center is taken as the outlier, the
//particles bonded to it are dragged along, and everything is shifted by
//whole box images. The procedure repeats until no bad bonds remain, up to a
//fixed number of passes, so it cannot get stuck fixing bonds that genuinely
//span the boundary. If that happens, try adjusting the tolerance.
func (C *Compound) Unwrap(frame int, tolerance float64) error {
	if C.box == nil {
		return CError{string(ErrNoBox), []string{"Unwrap"}}
	}
	maybeOutliers := C.badBonds(frame, tolerance)
	if len(maybeOutliers) == 0 {
		log.Printf("gocg: no bonds found longer than %4.2f. Either the compound doesn't need unwrapping or the tolerance is too small. No changes made.", tolerance)
		return nil
	}
	for count := 0; len(maybeOutliers) > 0; count++ {
		if count >= unwrapTries {
			log.Printf("gocg: bad bonds still present after %d unwrap passes. Giving up.", unwrapTries)
			break
		}
		if err := C.unwrapPass(frame, maybeOutliers); err != nil {
			return errDecorate(err, "Unwrap")
		}
		maybeOutliers = C.badBonds(frame, tolerance)
	}
	return nil
}

//unwrapPass performs one round of outlier detection and image shifting.
func (C *Compound) unwrapPass(frame int, maybeOutliers [][2]int) error {
	coord := C.Coord(frame)
	molecules := C.Molecules()
	bondDict := C.BondDict()

	//molecule index for each particle
	molOf := make(map[int]int, C.Len())
	for mi, mol := range molecules {
		for _, p := range mol {
			molOf[p] = mi
		}
	}
	molCoords := func(members []int, without map[int]bool) *v3.Matrix {
		kept := make([]int, 0, len(members))
		for _, p := range members {
			if without == nil || !without[p] {
				kept = append(kept, p)
			}
		}
		m := v3.Zeros(len(kept))
		m.SomeVecs(coord, kept)
		return m
	}
	//isOutlier: does removing the particle tighten its molecule around
	//its geometric center?
	isOutlier := func(index int) bool {
		mol := molecules[molOf[index]]
		if len(mol) < 3 {
			return true //removing one of two particles always "tightens" the pair
		}
		all := molCoords(mol, nil)
		rest := molCoords(mol, map[int]bool{index: true})
		allAvg := meanFloats(VDistances(all, Centroid(all)))
		restAvg := meanFloats(VDistances(rest, Centroid(rest)))
		return allAvg > restAvg
	}
	dToCenter := func(index int) float64 {
		mol := molecules[molOf[index]]
		all := molCoords(mol, nil)
		return Distance(coord.VecView(index), Centroid(all))
	}

	outliers := make(map[int]bool)
	checked := make(map[int]bool)
	for _, pair := range maybeOutliers {
		o1 := isOutlier(pair[0])
		o2 := isOutlier(pair[1])
		switch {
		case o1 && o2:
			//add whichever is further from the center
			d0 := dToCenter(pair[0])
			d1 := dToCenter(pair[1])
			if d0 > d1 {
				outliers[pair[0]] = true
			} else if d1 > d0 {
				outliers[pair[1]] = true
			} else {
				return CError{fmt.Sprintf("can't determine which is the outlier between particles %d and %d", pair[0], pair[1]), []string{"unwrapPass"}}
			}
		case o1:
			outliers[pair[0]] = true
		case o2:
			outliers[pair[1]] = true
		}
		checked[pair[0]] = true
		checked[pair[1]] = true
	}

	//follow the bond graph so whatever hangs off an outlier moves with it
	starts := make([]int, 0, len(outliers))
	for k := range outliers {
		starts = append(starts, k)
	}
	for len(starts) > 0 {
		index := starts[len(starts)-1]
		starts = starts[:len(starts)-1]
		for _, nb := range bondDict[index] {
			if !checked[nb] && !outliers[nb] {
				outliers[nb] = true
				starts = append(starts, nb)
			}
		}
		checked[index] = true
	}

	//organize outliers by molecule
	outlierByMol := make(map[int][]int)
	for o := range outliers {
		outlierByMol[molOf[o]] = append(outlierByMol[molOf[o]], o)
	}

	//translate each outlier to the image closest to the center of the
	//rest of its molecule
	for mi, outs := range outlierByMol {
		without := make(map[int]bool, len(outs))
		for _, o := range outs {
			without[o] = true
		}
		rest := molCoords(molecules[mi], without)
		if rest.NVecs() == 0 {
			continue //the whole molecule is "outliers"; nothing to anchor to
		}
		center := Centroid(rest)
		for _, o := range outs {
			var diff [3]float64
			for d := 0; d < 3; d++ {
				diff[d] = center.At(0, d) - coord.At(o, d)
			}
			img := C.box.Image(diff)
			setVecFromArray(coord, o, C.box.UnwrapVec(vecAsArray(coord, o), img))
		}
	}
	return nil
}

func meanFloats(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

/*
 * bonds.go, part of gocg
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
	"sort"

	v3 "github.com/cmelab/gocg/v3"
)

//constants from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.63
	bondtol  = 0.45
)

//Bond represents a chemical bond between two atoms.
type Bond struct {
	Index    int
	At1      *Atom
	At2      *Atom
	Dist     float64
	Order    float64 //Order 0 means undetermined
	Aromatic bool
}

//Cross returns the atom of the bond that is not the given one.
//It panics if the given atom is not part of the bond, as that
//has to be a programming error.
func (B *Bond) Cross(origin *Atom) *Atom {
	if origin.Index == B.At1.Index {
		return B.At2
	}
	if origin.Index == B.At2.Index {
		return B.At1
	}
	panic("gocg: trying to cross a bond: the origin atom given is not present in the bond")
}

//return a new *Bond slice with the element id removed
func takeFromSlice(bonds []*Bond, id int) []*Bond {
	newb := make([]*Bond, 0, len(bonds)-1)
	for _, v := range bonds {
		if v.Index != id {
			newb = append(newb, v)
		}
	}
	return newb
}

//removeBond removes b from both its atoms and from the topology registry.
func (T *Topology) removeBond(b *Bond) error {
	lenb1 := len(b.At1.Bonds)
	lenb2 := len(b.At2.Bonds)
	b.At1.Bonds = takeFromSlice(b.At1.Bonds, b.Index)
	b.At2.Bonds = takeFromSlice(b.At2.Bonds, b.Index)
	if len(b.At1.Bonds) == lenb1 || len(b.At2.Bonds) == lenb2 {
		return CError{fmt.Sprintf("failed to remove bond %d between atoms %d and %d", b.Index, b.At1.Index, b.At2.Index), []string{"removeBond"}}
	}
	newb := make([]*Bond, 0, len(T.bonds)-1)
	for _, v := range T.bonds {
		if v.Index != b.Index {
			newb = append(newb, v)
		}
	}
	T.bonds = newb
	return nil
}

//AssignBonds assigns bonds to a topology based on a simple distance
//criterion, similar to that described in DOI:10.1186/1758-2946-3-33.
//It might get slow for large systems; it's really not thought for
//proteins or macromolecules.
func AssignBonds(coord *v3.Matrix, top *Topology) error {
	var t1, t2 *v3.Matrix
	var at1, at2 *Atom
	top.FillIndexes()
	t3 := v3.Zeros(1)
	tot := top.Len()
	for i := 0; i < tot; i++ {
		t1 = coord.VecView(i)
		at1 = top.Atom(i)
		cov1 := symbolCovrad[at1.Symbol]
		if cov1 == 0 {
			return CError{fmt.Sprintf("couldn't find the covalent radius for %s %d", at1.Symbol, i), []string{"AssignBonds"}}
		}
		for j := i + 1; j < tot; j++ {
			t2 = coord.VecView(j)
			at2 = top.Atom(j)
			cov2 := symbolCovrad[at2.Symbol]
			if cov2 == 0 {
				return CError{fmt.Sprintf("couldn't find the covalent radius for %s %d", at2.Symbol, j), []string{"AssignBonds"}}
			}
			t3.Sub(t2, t1)
			d := t3.Norm(2)
			if d < cov1+cov2+bondtol && d > tooclose {
				b := top.AddBond(i, j)
				b.Dist = d
			}
		}
	}

	//Now we check that no atom has too many bonds.
	for i := 0; i < tot; i++ {
		at := top.Atom(i)
		max := symbolMaxBonds[at.Symbol]
		if max == 0 { //means there is no specified maximum for this element
			continue
		}
		sort.Slice(at.Bonds, func(i, j int) bool { return at.Bonds[i].Dist < at.Bonds[j].Dist })
		for len(at.Bonds) > max {
			err := top.removeBond(at.Bonds[len(at.Bonds)-1]) //we remove the longest bond
			if err != nil {
				return errDecorate(err, "AssignBonds")
			}
		}
	}
	return nil
}

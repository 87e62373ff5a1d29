/*
 * coarse_test.go, part of gocg
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

//propylThiophene builds a thiophene ring with a 3-carbon tail on its second
//ring atom. Hydrogens are left out, they play no role in coarse-graining.
//Atom i sits at (i, 0, 0), so bead centers are easy to figure by hand.
func propylThiophene() *Compound {
	symbols := []string{"S", "C", "C", "C", "C", "C", "C", "C"}
	ats := make([]*Atom, 0, len(symbols))
	for i, s := range symbols {
		at := &Atom{Name: s, Symbol: s, ID: i + 1, Mass: symbolMass[s]}
		at.Aromatic = i < 5
		ats = append(ats, at)
	}
	top := NewTopology(ats)
	ring := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}}
	for _, p := range ring {
		b := top.AddBond(p[0], p[1])
		b.Aromatic = true
	}
	for _, p := range [][2]int{{2, 5}, {5, 6}, {6, 7}} {
		b := top.AddBond(p[0], p[1])
		b.Order = 1
	}
	data := make([]float64, 0, len(symbols)*3)
	for i := range symbols {
		data = append(data, float64(i), 0, 0)
	}
	coord, err := v3.NewMatrix(data)
	if err != nil {
		panic(err.Error())
	}
	mol, err := NewCompound(top, []*v3.Matrix{coord})
	if err != nil {
		panic(err.Error())
	}
	return mol
}

func TestCoarsen(Te *testing.T) {
	mol := propylThiophene()
	specs := []BeadSpec{
		{Name: "ring", Pattern: "c1sccc1"},
		{Name: "tail", Pattern: "CCC"},
	}
	coarse, mappings, err := Coarsen(mol, specs)
	if err != nil {
		Te.Fatal(err)
	}
	if coarse.Len() != 2 {
		Te.Fatalf("wanted 2 beads, got %d particles", coarse.Len())
	}
	if coarse.Atom(0).Name != "_A" || coarse.Atom(1).Name != "_B" {
		Te.Errorf("wrong bead names: %s %s", coarse.Atom(0).Name, coarse.Atom(1).Name)
	}
	if !coarse.Atom(0).IsBead() {
		Te.Error("bead particle not recognized as a bead")
	}
	if len(mappings) != 2 {
		Te.Fatalf("wanted 2 mappings, got %d", len(mappings))
	}
	if len(mappings[0].Atoms) != 5 || len(mappings[1].Atoms) != 3 {
		Te.Errorf("wrong mapping sizes: %d and %d", len(mappings[0].Atoms), len(mappings[1].Atoms))
	}
	//atoms 0-4 sit at x=0..4, so the ring bead goes at x=2; the tail
	//atoms sit at x=5..7, so that bead goes at x=6.
	coord := coarse.Coord(0)
	if math.Abs(coord.At(0, 0)-2.0) > 1e-10 || math.Abs(coord.At(1, 0)-6.0) > 1e-10 {
		Te.Errorf("wrong bead centers: %5.3f and %5.3f", coord.At(0, 0), coord.At(1, 0))
	}
	wantmass := symbolMass["S"] + 4*symbolMass["C"]
	if math.Abs(coarse.Atom(0).Mass-wantmass) > 1e-10 {
		Te.Errorf("ring bead mass %6.3f, wanted %6.3f", coarse.Atom(0).Mass, wantmass)
	}
	//the ring-tail atomistic bond (2-5) must become a bead-bead bond
	bonds := coarse.GetBonds()
	if len(bonds) != 1 || bonds[0] != [2]int{0, 1} {
		Te.Errorf("wrong bead bonds: %v", bonds)
	}
}

func TestCoarsenKeepAtomistic(Te *testing.T) {
	mol := propylThiophene()
	specs := []BeadSpec{
		{Name: "ring", Pattern: "c1sccc1"},
		{Name: "tail", Pattern: "CCC"},
	}
	coarse, _, err := Coarsen(mol, specs, CoarsenOptions{KeepAtomistic: true})
	if err != nil {
		Te.Fatal(err)
	}
	if coarse.Len() != mol.Len()+2 {
		Te.Fatalf("wanted %d particles, got %d", mol.Len()+2, coarse.Len())
	}
	beads := coarse.BeadIndexes()
	if len(beads) != 2 || beads[0] != 8 || beads[1] != 9 {
		Te.Errorf("wrong bead indexes: %v", beads)
	}
	//the atomistic coordinates must come through unchanged
	orig := mol.Coord(0)
	kept := coarse.Coord(0)
	for i := 0; i < mol.Len(); i++ {
		if Distance(orig.VecView(i), kept.VecView(i)) > 1e-10 {
			Te.Errorf("atom %d moved during coarse-graining", i)
		}
	}
}

func TestCoarsenAcyclicExclusive(Te *testing.T) {
	mol := propylThiophene()
	//CC matches 5-6 and 6-7 on the tail; the second match shares atom 6
	//with the first and must be dropped
	coarse, mappings, err := Coarsen(mol, []BeadSpec{{Name: "pair", Pattern: "CC"}})
	if err != nil {
		Te.Fatal(err)
	}
	if len(mappings) != 1 {
		Te.Fatalf("wanted 1 bead from overlapping acyclic matches, got %d", len(mappings))
	}
	if coarse.Len() != 1 {
		Te.Errorf("wanted 1 particle, got %d", coarse.Len())
	}
}

func TestCoarsenCenterOfMass(Te *testing.T) {
	mol := propylThiophene()
	coarse, _, err := Coarsen(mol, []BeadSpec{{Name: "ring", Pattern: "c1sccc1"}}, CoarsenOptions{UseMass: true})
	if err != nil {
		Te.Fatal(err)
	}
	//S is atom 0 at x=0 and much heavier than C, so the center of mass
	//lands below the geometric center x=2
	x := coarse.Coord(0).At(0, 0)
	if x >= 2.0 || x <= 0.0 {
		Te.Errorf("center of mass at x=%5.3f, wanted it pulled towards the sulfur", x)
	}
}

//A pattern that matches nothing is logged and skipped; the other beads
//come out as usual.
func TestCoarsenUnmatchedPattern(Te *testing.T) {
	mol := propylThiophene()
	specs := []BeadSpec{
		{Name: "ring", Pattern: "c1sccc1"},
		{Name: "amine", Pattern: "N"},
	}
	coarse, mappings, err := Coarsen(mol, specs)
	if err != nil {
		Te.Fatal(err)
	}
	if len(mappings) != 1 {
		Te.Fatalf("wanted 1 mapping, got %d", len(mappings))
	}
	if coarse.Len() != 1 || coarse.Atom(0).Name != "_A" {
		Te.Errorf("wanted a single _A bead, got %d particles", coarse.Len())
	}
}

func TestCoarsenErrors(Te *testing.T) {
	mol := propylThiophene()
	if _, _, err := Coarsen(mol, nil); err == nil {
		Te.Error("no error for empty bead definitions")
	}
	if _, _, err := Coarsen(mol, []BeadSpec{{Name: "bad", Pattern: "C(("}}); err == nil {
		Te.Error("no error for a malformed pattern")
	}
}

func TestNum2Str(Te *testing.T) {
	cases := map[int]string{0: "A", 1: "B", 25: "Z", 26: "AA"}
	for in, want := range cases {
		if got := num2str(in); got != want {
			Te.Errorf("num2str(%d) = %s, wanted %s", in, got, want)
		}
	}
}

/*
 * coarse.go, part of gocg
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

	"github.com/cmelab/gocg/smarts"
	v3 "github.com/cmelab/gocg/v3"
)

//BeadSpec defines one kind of coarse-grained bead: a human-readable name
//and the pattern whose matches become beads of that kind.
type BeadSpec struct {
	Name    string
	Pattern string
}

//BeadMapping records one bead produced by Coarsen: its particle name, the
//pattern that matched, and the indexes of the atoms it stands for in the
//source compound.
type BeadMapping struct {
	BeadName string
	Pattern  string
	Atoms    []int
}

//CoarsenOptions modify the behavior of Coarsen.
type CoarsenOptions struct {
	//KeepAtomistic leaves the atomistic particles in the returned compound,
	//under the beads, so both can be visualized together.
	KeepAtomistic bool
	//UseMass places beads at the center of mass of their atoms instead of
	//the geometric center. It requires all masses to be known.
	UseMass bool
}

//Coarsen produces a coarse-grained compound from an atomistic one, given the
//bead definitions. Each match of each pattern becomes one bead, placed at
//the geometric center (or center of mass, on option) of its atoms, in every
//frame. Beads inherit bonds wherever an atomistic bond crosses between the
//atoms of two beads. Beads of the i-th definition are named "_A", "_B"...
//after i, as bead names must start with BeadPrefix.
//
//Matches of ring patterns (those with a ring closure) may share atoms with
//previous matches; matches of acyclic patterns claim their atoms
//exclusively and are skipped if any of their atoms was already taken.
//Patterns that match nothing are logged and skipped. If heavy atoms are
//left out of the mapping altogether, a warning is logged, since that is
//sometimes intended (e.g. dropped side chains) and sometimes a sign of a
//wrong pattern.
func Coarsen(C *Compound, specs []BeadSpec, opts ...CoarsenOptions) (*Compound, []BeadMapping, error) {
	var opt CoarsenOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	if len(specs) == 0 {
		return nil, nil, CError{"no bead definitions given", []string{"Coarsen"}}
	}
	if len(C.Coords) == 0 {
		return nil, nil, CError{"compound has no coordinates", []string{"Coarsen"}}
	}
	target, err := C.Topology.MatchTarget()
	if err != nil {
		return nil, nil, errDecorate(err, "Coarsen")
	}

	type candidate struct {
		atoms []int
		patt  *smarts.Pattern
		name  string
	}
	candidates := make([]candidate, 0, 10)
	for i, spec := range specs {
		patt, err := smarts.Compile(spec.Pattern)
		if err != nil {
			return nil, nil, CError{fmt.Sprintf("bead %q: %v", spec.Name, err), []string{"Coarsen"}}
		}
		matches := patt.FindAll(target)
		if len(matches) == 0 {
			log.Printf("gocg: pattern %s (%s) not found in compound", spec.Pattern, spec.Name)
			continue
		}
		for _, m := range matches {
			candidates = append(candidates, candidate{atoms: m, patt: patt, name: BeadPrefix + num2str(i)})
		}
	}

	seen := make(map[int]bool)
	beads := make([]candidate, 0, len(candidates))
	for _, cand := range candidates {
		//ring patterns can share atoms; alkyl chains and other acyclic
		//patterns are exclusive
		if !cand.patt.HasRing() && anySeen(seen, cand.atoms) {
			continue
		}
		for _, a := range cand.atoms {
			seen[a] = true
		}
		beads = append(beads, cand)
	}

	heavy := 0
	for _, at := range C.Atoms {
		if !at.IsBead() && at.Symbol != "H" {
			heavy++
		}
	}
	if heavy != len(seen) {
		log.Printf("gocg: %d of %d heavy atoms were left out of coarse-graining", heavy-len(seen), heavy)
	}

	//build the new compound: the original particles plus one particle
	//per bead, in every frame
	ats := make([]*Atom, 0, C.Len()+len(beads))
	for _, at := range C.Atoms {
		ats = append(ats, at.Copy())
	}
	mappings := make([]BeadMapping, 0, len(beads))
	for _, b := range beads {
		bead := &Atom{Name: b.name, Pattern: b.patt.String()}
		for _, a := range b.atoms {
			bead.Mass += C.Atom(a).Mass
			bead.Charge += C.Atom(a).Charge
		}
		ats = append(ats, bead)
		mappings = append(mappings, BeadMapping{BeadName: b.name, Pattern: b.patt.String(), Atoms: b.atoms})
	}
	top := NewTopology(ats)
	for _, bond := range C.bonds {
		nb := top.AddBond(bond.At1.Index, bond.At2.Index)
		nb.Order = bond.Order
		nb.Aromatic = bond.Aromatic
		nb.Dist = bond.Dist
	}

	coords := make([]*v3.Matrix, 0, len(C.Coords))
	for _, frame := range C.Coords {
		nc := v3.Zeros(top.Len())
		nc.SetMatrix(0, 0, frame.Dense)
		for bi, b := range beads {
			members := v3.Zeros(len(b.atoms))
			members.SomeVecs(frame, b.atoms)
			var center *v3.Matrix
			if opt.UseMass {
				masses := make([]float64, 0, len(b.atoms))
				for _, a := range b.atoms {
					m, err := massOf(C.Atom(a))
					if err != nil {
						return nil, nil, errDecorate(err, "Coarsen")
					}
					masses = append(masses, m)
				}
				center, err = CenterOfMass(members, masses)
				if err != nil {
					return nil, nil, errDecorate(err, "Coarsen")
				}
			} else {
				center = Centroid(members)
			}
			nc.SetVecs(center, []int{C.Len() + bi})
		}
		coords = append(coords, nc)
	}

	ret, err := NewCompound(top, coords)
	if err != nil {
		return nil, nil, errDecorate(err, "Coarsen")
	}
	ret.SetBox(C.Box())

	//bead-bead bonds from the atomistic bonding
	addBeadBonds(ret, mappings, C)

	if !opt.KeepAtomistic {
		ret, err = ret.RemoveAtomistic()
		if err != nil {
			return nil, nil, errDecorate(err, "Coarsen")
		}
	}
	return ret, mappings, nil
}

//addBeadBonds bonds beads i and j of the coarse compound whenever an
//atomistic bond of the source crosses between their atom sets.
func addBeadBonds(coarse *Compound, mappings []BeadMapping, source *Compound) {
	n := source.Len()
	pairs := source.GetBonds()
	for i := 0; i < len(mappings)-1; i++ {
		for j := i + 1; j < len(mappings); j++ {
			if !beadsTouch(mappings[i].Atoms, mappings[j].Atoms, pairs) {
				continue
			}
			coarse.AddBond(n+i, n+j)
		}
	}
}

func beadsTouch(a, b []int, pairs [][2]int) bool {
	inA := make(map[int]bool, len(a))
	inB := make(map[int]bool, len(b))
	for _, v := range a {
		inA[v] = true
	}
	for _, v := range b {
		inB[v] = true
	}
	for _, p := range pairs {
		if (inA[p[0]] && inB[p[1]]) || (inA[p[1]] && inB[p[0]]) {
			return true
		}
	}
	return false
}

//MatchTarget builds the smarts view of the topology, so patterns can be
//searched against it. Atoms without a symbol are matched by name.
func (T *Topology) MatchTarget() (*smarts.Target, error) {
	symbols := make([]string, T.Len())
	aromatic := make([]bool, T.Len())
	for i, at := range T.Atoms {
		symbols[i] = at.Symbol
		if symbols[i] == "" {
			symbols[i] = at.Name
		}
		aromatic[i] = at.Aromatic
	}
	pairs := make([][2]int, 0, len(T.bonds))
	orders := make([]float64, 0, len(T.bonds))
	barom := make([]bool, 0, len(T.bonds))
	for _, b := range T.bonds {
		pairs = append(pairs, [2]int{b.At1.Index, b.At2.Index})
		orders = append(orders, b.Order)
		barom = append(barom, b.Aromatic)
	}
	target, err := smarts.NewTarget(symbols, aromatic, pairs, orders, barom)
	if err != nil {
		return nil, CError{err.Error(), []string{"MatchTarget"}}
	}
	return target, nil
}

func massOf(at *Atom) (float64, error) {
	if at.Mass > 0 {
		return at.Mass, nil
	}
	if m, ok := symbolMass[at.Symbol]; ok {
		return m, nil
	}
	return 0, CError{fmt.Sprintf("no mass known for atom %d (%s)", at.Index, at.Name), []string{"massOf"}}
}

func anySeen(seen map[int]bool, atoms []int) bool {
	for _, a := range atoms {
		if seen[a] {
			return true
		}
	}
	return false
}

//num2str returns a capital letter for non-negative integers up to 701,
//e.g. num2str(0) == "A".
func num2str(num int) string {
	if num < 26 {
		return string(rune(num + 65))
	}
	return string([]rune{rune(num/26 + 64), rune(num%26 + 65)})
}

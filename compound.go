/*
 * compound.go, part of gocg
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

//Package cg provides atom, bond and compound structures for coarse-graining
//atomistic molecular structures, facilities for reading and writing some of
//the files involved, and the geometric and periodic-boundary manipulations
//needed to prepare structures for coarse-grained simulations.
package cg

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cmelab/gocg/graph"
	v3 "github.com/cmelab/gocg/v3"
)

//BeadPrefix marks coarse-grained particles: every bead name starts with it,
//and nothing else should.
const BeadPrefix = "_"

//Atom contains the information for one particle, except for the coordinates,
//which live in a separate matrix, and the bonds, which are shared with the
//other bonded atom.
type Atom struct {
	Name     string  //particle name. Coarse-grained beads start with BeadPrefix.
	ID       int     //as read from the input file, normally 1-based
	Index    int     //0-based position in the topology
	MolID    int     //molecule/residue number
	Symbol   string  //chemical element
	Type     string  //force-field atom type (e.g. AMBER "ca")
	Charge   float64 //partial charge
	Mass     float64
	Aromatic bool
	Pattern  string //for beads, the pattern that produced them. Empty otherwise.
	Bonds    []*Bond
}

//Copy returns a copy of the Atom. Bonds are not copied, as they
//belong to pairs of atoms, not to a single one.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic(ErrNilAtom)
	}
	at := new(Atom)
	*at = *A
	at.Bonds = nil
	return at
}

//IsBead returns whether the atom is a coarse-grained bead.
func (A *Atom) IsBead() bool {
	return strings.HasPrefix(A.Name, BeadPrefix)
}

/*****Topology type***/

//Topology contains the information about a compound which is not expected to
//change between frames: atoms and the bonds between them.
type Topology struct {
	Atoms []*Atom
	bonds []*Bond
}

//NewTopology makes a topology from the given atoms. The atoms get their
//Index field set to their position in the slice.
func NewTopology(ats []*Atom) *Topology {
	top := new(Topology)
	top.Atoms = ats
	top.FillIndexes()
	return top
}

//Atom returns the Atom corresponding to the index i. Panics if out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() || i < 0 {
		panic(ErrAtomOutOfRange)
	}
	return T.Atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

//AppendAtom adds an atom at the end of the topology.
func (T *Topology) AppendAtom(at *Atom) {
	at.Index = len(T.Atoms)
	T.Atoms = append(T.Atoms, at)
}

//FillIndexes sets the Index field of every atom to its current
//position in the topology.
func (T *Topology) FillIndexes() {
	for i, v := range T.Atoms {
		v.Index = i
	}
}

//Masses returns a slice with the masses of all atoms, and an error if any
//of them could not be obtained. Atoms with a zero Mass field get their mass
//looked up by element symbol.
func (T *Topology) Masses() ([]float64, error) {
	mass := make([]float64, T.Len())
	for i := 0; i < T.Len(); i++ {
		at := T.Atom(i)
		if at.Mass > 0 {
			mass[i] = at.Mass
			continue
		}
		m, ok := symbolMass[at.Symbol]
		if !ok {
			return nil, CError{fmt.Sprintf("no mass known for atom %d (%s, symbol %q)", i, at.Name, at.Symbol), []string{"Masses"}}
		}
		mass[i] = m
	}
	return mass, nil
}

//Bonds returns all the bonds in the topology.
func (T *Topology) Bonds() []*Bond {
	return T.bonds
}

//AddBond creates a bond between the atoms with indexes i and j and registers
//it in the topology and in both atoms. It returns the new bond.
func (T *Topology) AddBond(i, j int) *Bond {
	at1 := T.Atom(i)
	at2 := T.Atom(j)
	b := &Bond{Index: len(T.bonds), At1: at1, At2: at2}
	at1.Bonds = append(at1.Bonds, b)
	at2.Bonds = append(at2.Bonds, b)
	T.bonds = append(T.bonds, b)
	return b
}

//BondDict returns the particle indexes bonded to each particle index.
func (T *Topology) BondDict() map[int][]int {
	ret := make(map[int][]int, T.Len())
	for _, b := range T.bonds {
		ret[b.At1.Index] = append(ret[b.At1.Index], b.At2.Index)
		ret[b.At2.Index] = append(ret[b.At2.Index], b.At1.Index)
	}
	return ret
}

//GetBonds returns the bonded index pairs, each sorted low-high, and the
//whole list sorted. This ordering is required for coarse-graining.
func (T *Topology) GetBonds() [][2]int {
	ret := make([][2]int, 0, len(T.bonds))
	for _, b := range T.bonds {
		i, j := b.At1.Index, b.At2.Index
		if i > j {
			i, j = j, i
		}
		ret = append(ret, [2]int{i, j})
	}
	sort.Slice(ret, func(a, b int) bool {
		if ret[a][0] != ret[b][0] {
			return ret[a][0] < ret[b][0]
		}
		return ret[a][1] < ret[b][1]
	})
	return ret
}

//Molecules returns the sets of connected particle indexes, i.e. the
//individual molecules in the topology.
func (T *Topology) Molecules() [][]int {
	edges := make([][2]int, 0, len(T.bonds))
	for _, b := range T.bonds {
		edges = append(edges, [2]int{b.At1.Index, b.At2.Index})
	}
	return graph.Components(T.Len(), edges)
}

//NameIndexes finds the indexes of the atoms whose name matches the given one.
func (T *Topology) NameIndexes(name string) []int {
	ret := make([]int, 0, 10)
	for i, at := range T.Atoms {
		if at.Name == name {
			ret = append(ret, i)
		}
	}
	return ret
}

//NamesOf returns the names of the atoms with the given indexes,
//sorted alphabetically.
func (T *Topology) NamesOf(indexes ...int) []string {
	ret := make([]string, 0, len(indexes))
	for _, i := range indexes {
		ret = append(ret, T.Atom(i).Name)
	}
	sort.Strings(ret)
	return ret
}

//FindBonds returns the unique bond constraints of the topology: a map from
//the sorted names of the participants (joined by "-") to the index pairs
//having that constraint type.
func (T *Topology) FindBonds() map[string][][2]int {
	ret := make(map[string][][2]int)
	for _, pair := range T.GetBonds() {
		key := strings.Join(T.NamesOf(pair[0], pair[1]), "-")
		ret[key] = append(ret[key], pair)
	}
	return ret
}

//FindAngles returns the unique angle constraints of the topology: a map from
//the sorted names of the participants (joined by "-") to the index triples
//having that angle type. The middle atom is always in the middle of each
//triple, and each angle appears once.
func (T *Topology) FindAngles() map[string][][3]int {
	bd := T.BondDict()
	angles := make([][3]int, 0, T.Len())
	for i := 0; i < T.Len(); i++ {
		for _, n1 := range bd[i] {
			for _, n2 := range bd[n1] {
				if n2 == i {
					continue
				}
				if n2 > i {
					angles = append(angles, [3]int{i, n1, n2})
				}
			}
		}
	}
	ret := make(map[string][][3]int)
	for _, t := range angles {
		key := strings.Join(T.NamesOf(t[0], t[1], t[2]), "-")
		ret[key] = append(ret[key], t)
	}
	return ret
}

//FindPairs returns the unique nonbonded pair types between the
//coarse-grained beads of the topology: every unordered combination of bead
//names, self-pairs included, each sorted alphabetically. These are the
//pairs a radial distribution analysis should cover.
func (T *Topology) FindPairs() [][2]string {
	names := make(map[string]bool)
	for _, at := range T.Atoms {
		if strings.HasPrefix(at.Name, BeadPrefix) {
			names[at.Name] = true
		}
	}
	unique := make([]string, 0, len(names))
	for n := range names {
		unique = append(unique, n)
	}
	sort.Strings(unique)
	ret := make([][2]string, 0, len(unique)*(len(unique)+1)/2)
	for i, n1 := range unique {
		for _, n2 := range unique[i:] {
			ret = append(ret, [2]string{n1, n2})
		}
	}
	return ret
}

//AmberToElement renames every atom in the topology from its AMBER type name
//to the corresponding element, so structure-perception tools that do not
//understand AMBER names can work with the compound. Unknown names are errors.
func (T *Topology) AmberToElement() error {
	for i, at := range T.Atoms {
		symbol, ok := amberSymbol[strings.ToLower(at.Name)]
		if !ok {
			return CError{fmt.Sprintf("atom %d: no element known for AMBER type %q", i, at.Name), []string{"AmberToElement"}}
		}
		at.Name = symbol
		at.Symbol = symbol
	}
	return nil
}

/*****Compound type***/

//Compound is a topology plus one or more sets of coordinates for it, and,
//optionally, a periodic box. It is the unit on which coarse-graining
//operates. Compound implements the Traj interface, so its frames can be
//analyzed like any trajectory.
type Compound struct {
	*Topology
	Coords  []*v3.Matrix
	box     *Box
	current int
}

//NewCompound makes a compound from a topology and coordinate frames. It
//checks that every frame has one vector per atom.
func NewCompound(top *Topology, coords []*v3.Matrix) (*Compound, error) {
	if top == nil || coords == nil {
		return nil, CError{"nil topology or coordinates given", []string{"NewCompound"}}
	}
	for i, v := range coords {
		if v.NVecs() != top.Len() {
			return nil, CError{fmt.Sprintf("frame %d has %d coordinates for %d atoms", i, v.NVecs(), top.Len()), []string{"NewCompound"}}
		}
	}
	return &Compound{Topology: top, Coords: coords}, nil
}

//Box returns the periodic box of the compound, or nil if none is assigned.
func (C *Compound) Box() *Box {
	return C.box
}

//SetBox assigns a periodic box to the compound.
func (C *Compound) SetBox(b *Box) {
	C.box = b
}

//Coord returns the coordinates for the given frame.
//Panics if the frame is out of range.
func (C *Compound) Coord(frame int) *v3.Matrix {
	if frame >= len(C.Coords) || frame < 0 {
		panic(ErrFrameOutOfRange)
	}
	return C.Coords[frame]
}

//AddFrame appends a matrix of coordinates to the compound. It checks that
//the number of coordinates matches the number of atoms.
func (C *Compound) AddFrame(newframe *v3.Matrix) {
	if newframe == nil {
		panic(ErrNilData)
	}
	if C.Len() != newframe.NVecs() {
		panic(PanicMsg(fmt.Sprintf("gocg: wrong number of coordinates (%d) for %d atoms", newframe.NVecs(), C.Len())))
	}
	C.Coords = append(C.Coords, newframe)
}

//LenFrames returns the number of frames in the compound.
func (C *Compound) LenFrames() int {
	return len(C.Coords)
}

//Select returns a new compound with only the atoms whose indexes are given,
//in order, the bonds among them, and the corresponding coordinates for every
//frame. The returned compound shares nothing with the original.
func (C *Compound) Select(indexes []int) (*Compound, error) {
	for _, i := range indexes {
		if i < 0 || i >= C.Len() {
			return nil, CError{fmt.Sprintf("index %d out of range for %d atoms", i, C.Len()), []string{"Select"}}
		}
	}
	ats := make([]*Atom, 0, len(indexes))
	old2new := make(map[int]int, len(indexes))
	for newi, oldi := range indexes {
		ats = append(ats, C.Atom(oldi).Copy())
		old2new[oldi] = newi
	}
	top := NewTopology(ats)
	for _, b := range C.bonds {
		i, iok := old2new[b.At1.Index]
		j, jok := old2new[b.At2.Index]
		if !iok || !jok {
			continue
		}
		nb := top.AddBond(i, j)
		nb.Order = b.Order
		nb.Aromatic = b.Aromatic
		nb.Dist = b.Dist
	}
	coords := make([]*v3.Matrix, 0, len(C.Coords))
	for _, frame := range C.Coords {
		nc := v3.Zeros(len(indexes))
		nc.SomeVecs(frame, indexes)
		coords = append(coords, nc)
	}
	ret, err := NewCompound(top, coords)
	if err != nil {
		return nil, errDecorate(err, "Select")
	}
	ret.box = C.box
	return ret, nil
}

//BeadIndexes returns the indexes of the coarse-grained beads in the compound.
func (C *Compound) BeadIndexes() []int {
	ret := make([]int, 0, C.Len())
	for i, at := range C.Atoms {
		if at.IsBead() {
			ret = append(ret, i)
		}
	}
	return ret
}

//RemoveAtomistic returns a compound with only the coarse-grained beads.
func (C *Compound) RemoveAtomistic() (*Compound, error) {
	ret, err := C.Select(C.BeadIndexes())
	if err != nil {
		return nil, errDecorate(err, "RemoveAtomistic")
	}
	return ret, nil
}

//RemoveCoarse returns a compound with the coarse-grained beads removed.
func (C *Compound) RemoveCoarse() (*Compound, error) {
	keep := make([]int, 0, C.Len())
	for i, at := range C.Atoms {
		if !at.IsBead() {
			keep = append(keep, i)
		}
	}
	ret, err := C.Select(keep)
	if err != nil {
		return nil, errDecorate(err, "RemoveCoarse")
	}
	return ret, nil
}

//RemoveHydrogens returns a compound with every particle named "H" removed.
func (C *Compound) RemoveHydrogens() (*Compound, error) {
	keep := make([]int, 0, C.Len())
	for i, at := range C.Atoms {
		if at.Name != "H" && at.Symbol != "H" {
			keep = append(keep, i)
		}
	}
	ret, err := C.Select(keep)
	if err != nil {
		return nil, errDecorate(err, "RemoveHydrogens")
	}
	return ret, nil
}

/******************************************
//The following implement the Traj interface
**********************************************/

//Readable returns true if the compound has frames left to be read.
func (C *Compound) Readable() bool {
	return C != nil && C.Coords != nil && C.current < len(C.Coords)
}

//Next copies the next frame into output, or discards it if output is nil.
//If box is given and the compound has a box, its lengths are put there.
func (C *Compound) Next(output *v3.Matrix, box ...[]float64) error {
	if C.current >= len(C.Coords) {
		return lastFrameError{}
	}
	if output != nil {
		output.Copy(C.Coords[C.current])
	}
	if len(box) > 0 && C.box != nil && len(box[0]) >= 3 {
		copy(box[0], C.box[:])
	}
	C.current++
	return nil
}

//InitRead rewinds the compound so it can be read again as a trajectory.
func (C *Compound) InitRead() error {
	if C == nil || len(C.Coords) == 0 {
		return CError{"compound has no frames", []string{"InitRead"}}
	}
	C.current = 0
	return nil
}

//NextConc reads as many frames as the given slice has elements. The frames
//are transmitted through the returned channels, one each.
func (C *Compound) NextConc(frames []*v3.Matrix) ([]chan *v3.Matrix, error) {
	ret := make([]chan *v3.Matrix, 0, len(frames))
	for _, v := range frames {
		if err := C.Next(v); err != nil {
			return nil, errDecorate(err, "NextConc")
		}
		pipe := make(chan *v3.Matrix)
		ret = append(ret, pipe)
		go func(keep *v3.Matrix, pipe chan *v3.Matrix) {
			pipe <- keep
		}(v, pipe)
	}
	return ret, nil
}

//lastFrameError signals the normal end of a compound read as a trajectory.
type lastFrameError struct{}

func (e lastFrameError) Error() string                { return "EOF" }
func (e lastFrameError) Critical() bool               { return false }
func (e lastFrameError) FileName() string             { return "" }
func (e lastFrameError) Format() string               { return "compound" }
func (e lastFrameError) NormalLastFrameTermination()  {}
func (e lastFrameError) Decorate(dec string) []string { return nil }

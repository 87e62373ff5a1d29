/*
 * forcefield.go, part of gocg
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

//Package forcefield reads Foyer-style XML parameter files and assigns their
//atom types to compounds by pattern matching. It only deals with the
//parameter surface (types, harmonic bonds and angles, Lennard-Jones
//nonbonded terms); it does not compute forces or energies.
package forcefield

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cmelab/gocg"
	"github.com/cmelab/gocg/smarts"
)

//AtomType is one <Type> entry of the <AtomTypes> section. Def is a pattern
//in the SMARTS subset understood by the smarts package; its first atom is
//the one the type applies to. Overrides lists, comma-separated, the names
//of less specific types this one replaces when both match an atom.
type AtomType struct {
	Name      string  `xml:"name,attr"`
	Class     string  `xml:"class,attr"`
	Element   string  `xml:"element,attr"`
	Mass      float64 `xml:"mass,attr"`
	Def       string  `xml:"def,attr"`
	Desc      string  `xml:"desc,attr"`
	Overrides string  `xml:"overrides,attr"`

	patt *smarts.Pattern
}

func (A *AtomType) overrides(name string) bool {
	for _, v := range strings.Split(A.Overrides, ",") {
		if strings.TrimSpace(v) == name {
			return true
		}
	}
	return false
}

//BondTerm is a harmonic bond between two atom classes. Length is the
//equilibrium distance and K the force constant, in whatever units the
//parameter file uses.
type BondTerm struct {
	Class1 string  `xml:"class1,attr"`
	Class2 string  `xml:"class2,attr"`
	Length float64 `xml:"length,attr"`
	K      float64 `xml:"k,attr"`
}

//AngleTerm is a harmonic angle between three atom classes, Class2 being
//the vertex. Angle is the equilibrium value in radians.
type AngleTerm struct {
	Class1 string  `xml:"class1,attr"`
	Class2 string  `xml:"class2,attr"`
	Class3 string  `xml:"class3,attr"`
	Angle  float64 `xml:"angle,attr"`
	K      float64 `xml:"k,attr"`
}

//LJTerm is the nonbonded entry for one atom type.
type LJTerm struct {
	Type    string  `xml:"type,attr"`
	Charge  float64 `xml:"charge,attr"`
	Sigma   float64 `xml:"sigma,attr"`
	Epsilon float64 `xml:"epsilon,attr"`
}

//FF holds the contents of a Foyer-style force field file.
type FF struct {
	XMLName xml.Name     `xml:"ForceField"`
	Name    string       `xml:"name,attr"`
	Version string       `xml:"version,attr"`
	Types   []*AtomType  `xml:"AtomTypes>Type"`
	Bonds   []*BondTerm  `xml:"HarmonicBondForce>Bond"`
	Angles  []*AngleTerm `xml:"HarmonicAngleForce>Angle"`
	LJ      []*LJTerm    `xml:"NonbondedForce>Atom"`
}

//Read parses a Foyer-style XML parameter file. Every atom type with a
//pattern definition is compiled eagerly, so an unparseable def is caught
//here rather than on first use.
func Read(r io.Reader) (*FF, error) {
	F := new(FF)
	if err := xml.NewDecoder(r).Decode(F); err != nil {
		return nil, Error{fmt.Sprintf("can't parse parameter file: %v", err), []string{"Read"}}
	}
	if len(F.Types) == 0 {
		return nil, Error{"parameter file defines no atom types", []string{"Read"}}
	}
	for _, t := range F.Types {
		if t.Def == "" {
			continue
		}
		p, err := smarts.Compile(t.Def)
		if err != nil {
			return nil, Error{fmt.Sprintf("type %s def %q: %v", t.Name, t.Def, err), []string{"Read"}}
		}
		t.patt = p
	}
	return F, nil
}

//ReadFile reads a Foyer-style XML parameter file from disk.
func ReadFile(name string) (*FF, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{err.Error(), []string{"ReadFile"}}
	}
	defer f.Close()
	F, err := Read(f)
	if err != nil {
		return nil, errDecorate(err, "ReadFile")
	}
	return F, nil
}

//TypeByName returns the atom type with the given name, or nil.
func (F *FF) TypeByName(name string) *AtomType {
	for _, t := range F.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}

func (F *FF) nonbonded(name string) *LJTerm {
	for _, lj := range F.LJ {
		if lj.Type == name {
			return lj
		}
	}
	return nil
}

//Apply assigns an atom type to every atom of the compound by matching the
//type definitions against its topology. The first atom of each match is
//the typed one. When several types match the same atom, an explicit
//override wins, otherwise the first type in file order does. The winning
//type's name, mass and (if a nonbonded entry exists) charge are written to
//the atom. Atoms left without a type are an error.
func (F *FF) Apply(C *cg.Compound) error {
	target, err := C.Topology.MatchTarget()
	if err != nil {
		return errDecorate(err, "Apply")
	}
	assigned := make([]*AtomType, C.Len())
	for _, t := range F.Types {
		if t.patt == nil {
			continue
		}
		for _, m := range t.patt.FindAll(target) {
			i := m[0]
			if assigned[i] == nil || t.overrides(assigned[i].Name) {
				assigned[i] = t
			}
		}
	}
	missing := make([]int, 0)
	for i, t := range assigned {
		if t == nil {
			missing = append(missing, i)
			continue
		}
		at := C.Atom(i)
		at.Type = t.Name
		if t.Mass > 0 {
			at.Mass = t.Mass
		}
		if lj := F.nonbonded(t.Name); lj != nil {
			at.Charge = lj.Charge
		}
	}
	if len(missing) > 0 {
		return Error{fmt.Sprintf("no atom type matches atoms %v", missing), []string{"Apply"}}
	}
	return nil
}

//BondParam is a bond of a typed compound together with its harmonic
//parameters.
type BondParam struct {
	Atoms  [2]int
	Length float64
	K      float64
}

//AngleParam is an angle of a typed compound together with its harmonic
//parameters. The vertex is Atoms[1].
type AngleParam struct {
	Atoms [3]int
	Angle float64
	K     float64
}

func (F *FF) classOf(at *cg.Atom) (string, error) {
	t := F.TypeByName(at.Type)
	if t == nil {
		return "", Error{fmt.Sprintf("atom %d has unknown type %q", at.Index, at.Type), []string{"classOf"}}
	}
	return t.Class, nil
}

func (F *FF) bondTerm(c1, c2 string) *BondTerm {
	for _, b := range F.Bonds {
		if (b.Class1 == c1 && b.Class2 == c2) || (b.Class1 == c2 && b.Class2 == c1) {
			return b
		}
	}
	return nil
}

func (F *FF) angleTerm(c1, c2, c3 string) *AngleTerm {
	for _, a := range F.Angles {
		if a.Class2 != c2 {
			continue
		}
		if (a.Class1 == c1 && a.Class3 == c3) || (a.Class1 == c3 && a.Class3 == c1) {
			return a
		}
	}
	return nil
}

//BondParams returns the harmonic parameters for every bond of the typed
//compound. Call Apply first, or type the atoms yourself. A bond between
//classes the parameter file has no term for is an error.
func (F *FF) BondParams(C *cg.Compound) ([]BondParam, error) {
	pairs := C.GetBonds()
	ret := make([]BondParam, 0, len(pairs))
	for _, pair := range pairs {
		c1, err := F.classOf(C.Atom(pair[0]))
		if err != nil {
			return nil, errDecorate(err, "BondParams")
		}
		c2, err := F.classOf(C.Atom(pair[1]))
		if err != nil {
			return nil, errDecorate(err, "BondParams")
		}
		term := F.bondTerm(c1, c2)
		if term == nil {
			return nil, Error{fmt.Sprintf("no bond term for classes %s-%s", c1, c2), []string{"BondParams"}}
		}
		ret = append(ret, BondParam{Atoms: pair, Length: term.Length, K: term.K})
	}
	return ret, nil
}

//AngleParams returns the harmonic parameters for every angle of the typed
//compound, built from its bond graph. An angle between classes the
//parameter file has no term for is an error.
func (F *FF) AngleParams(C *cg.Compound) ([]AngleParam, error) {
	ret := make([]AngleParam, 0)
	for _, triples := range C.FindAngles() {
		for _, t := range triples {
			var classes [3]string
			for i, a := range t {
				c, err := F.classOf(C.Atom(a))
				if err != nil {
					return nil, errDecorate(err, "AngleParams")
				}
				classes[i] = c
			}
			term := F.angleTerm(classes[0], classes[1], classes[2])
			if term == nil {
				return nil, Error{fmt.Sprintf("no angle term for classes %s-%s-%s", classes[0], classes[1], classes[2]), []string{"AngleParams"}}
			}
			ret = append(ret, AngleParam{Atoms: t, Angle: term.Angle, K: term.K})
		}
	}
	return ret, nil
}

//Nonbonded returns the Lennard-Jones entry for the named atom type, or an
//error if the parameter file has none.
func (F *FF) Nonbonded(typeName string) (*LJTerm, error) {
	lj := F.nonbonded(typeName)
	if lj == nil {
		return nil, Error{fmt.Sprintf("no nonbonded entry for type %q", typeName), []string{"Nonbonded"}}
	}
	return lj, nil
}

/*
 * repair.go, part of gocg
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

//Distorted geometries (e.g. snapshots from a hot simulation) often get their
//atom and bond typing perceived wrong. The functions in this file repair such
//structures by copying the typing from a well-formed reference with the same
//atoms in the same order, either directly or through a small text file saved
//beforehand, while the repaired structure keeps its own coordinates.

package cg

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

//TransferTyping copies the atom typing (force-field type and aromaticity)
//and the bond typing (order and aromaticity) from the reference topology
//onto bad. Both must have the same number of atoms and bonds, in the same
//order; anything else is an error and bad is left untouched.
func TransferTyping(reference, bad *Topology) error {
	if reference.Len() != bad.Len() {
		return CError{fmt.Sprintf("reference has %d atoms, target has %d", reference.Len(), bad.Len()), []string{"TransferTyping"}}
	}
	if len(reference.bonds) != len(bad.bonds) {
		return CError{fmt.Sprintf("reference has %d bonds, target has %d", len(reference.bonds), len(bad.bonds)), []string{"TransferTyping"}}
	}
	for i := 0; i < reference.Len(); i++ {
		good := reference.Atom(i)
		at := bad.Atom(i)
		at.Type = good.Type
		at.Aromatic = good.Aromatic
	}
	for i, good := range reference.bonds {
		bad.bonds[i].Order = good.Order
		bad.bonds[i].Aromatic = good.Aromatic
	}
	return nil
}

//SaveTyping writes the atom and bond typing of a well-formed topology to w,
//so it can be reapplied later with ApplyTyping. The format is line-based:
//one "type aromatic" pair per atom, then one "order aromatic" pair per bond.
func SaveTyping(T *Topology, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < T.Len(); i++ {
		at := T.Atom(i)
		t := at.Type
		if t == "" {
			t = at.Name //something is better than an empty field
		}
		if _, err := fmt.Fprintf(bw, "%s %t\n", t, at.Aromatic); err != nil {
			return CError{err.Error(), []string{"SaveTyping"}}
		}
	}
	for _, b := range T.bonds {
		if _, err := fmt.Fprintf(bw, "%g %t\n", b.Order, b.Aromatic); err != nil {
			return CError{err.Error(), []string{"SaveTyping"}}
		}
	}
	if err := bw.Flush(); err != nil {
		return CError{err.Error(), []string{"SaveTyping"}}
	}
	return nil
}

//ApplyTyping reads typing saved by SaveTyping from r and applies it to T,
//which must have the same number of atoms and bonds as the topology the
//typing was saved from. Lines whose first field is a number are bond lines,
//everything else is an atom line, so the two sections need no separator.
func ApplyTyping(r io.Reader, T *Topology) error {
	type atomTyping struct {
		typ      string
		aromatic bool
	}
	type bondTyping struct {
		order    float64
		aromatic bool
	}
	var atoms []atomTyping
	var bonds []bondTyping
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return CError{fmt.Sprintf("malformed typing line %q", line), []string{"ApplyTyping"}}
		}
		aromatic := strings.EqualFold(fields[1], "true")
		if order, err := strconv.ParseFloat(fields[0], 64); err == nil {
			bonds = append(bonds, bondTyping{order: order, aromatic: aromatic})
		} else {
			atoms = append(atoms, atomTyping{typ: fields[0], aromatic: aromatic})
		}
	}
	if err := scanner.Err(); err != nil {
		return CError{err.Error(), []string{"ApplyTyping"}}
	}
	if len(atoms) != T.Len() {
		return CError{fmt.Sprintf("typing has %d atoms, topology has %d", len(atoms), T.Len()), []string{"ApplyTyping"}}
	}
	if len(bonds) != len(T.bonds) {
		return CError{fmt.Sprintf("typing has %d bonds, topology has %d", len(bonds), len(T.bonds)), []string{"ApplyTyping"}}
	}
	for i, a := range atoms {
		at := T.Atom(i)
		at.Type = a.typ
		at.Aromatic = a.aromatic
	}
	for i, b := range bonds {
		T.bonds[i].Order = b.order
		T.bonds[i].Aromatic = b.aromatic
	}
	return nil
}

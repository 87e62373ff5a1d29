/*
 * files_test.go, part of gocg
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
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestXYZRoundTrip(Te *testing.T) {
	mol := propylThiophene()
	var buf bytes.Buffer
	if err := XYZWrite(&buf, mol, 0); err != nil {
		Te.Fatal(err)
	}
	back, err := XYZRead(&buf)
	if err != nil {
		Te.Fatal(err)
	}
	if back.Len() != mol.Len() {
		Te.Fatalf("round trip changed the atom count: %d -> %d", mol.Len(), back.Len())
	}
	orig := mol.Coord(0)
	got := back.Coord(0)
	for i := 0; i < mol.Len(); i++ {
		if back.Atom(i).Symbol != mol.Atom(i).Symbol {
			Te.Errorf("atom %d changed element: %s -> %s", i, mol.Atom(i).Symbol, back.Atom(i).Symbol)
		}
		if Distance(orig.VecView(i), got.VecView(i)) > 1e-5 {
			Te.Errorf("atom %d moved through the round trip", i)
		}
	}
}

func TestXYZReadMultiFrame(Te *testing.T) {
	text := "2\nfirst\nC 0.0 0.0 0.0\nO 1.2 0.0 0.0\n" +
		"2\nsecond\nC 0.0 0.0 0.0\nO 1.4 0.0 0.0\n"
	mol, err := XYZRead(strings.NewReader(text))
	if err != nil {
		Te.Fatal(err)
	}
	if mol.LenFrames() != 2 {
		Te.Fatalf("wanted 2 frames, got %d", mol.LenFrames())
	}
	if math.Abs(mol.Coord(1).At(1, 0)-1.4) > 1e-10 {
		Te.Errorf("wrong second-frame coordinate %5.3f", mol.Coord(1).At(1, 0))
	}
}

func TestXYZReadErrors(Te *testing.T) {
	if _, err := XYZRead(strings.NewReader("")); err == nil {
		Te.Error("no error for an empty stream")
	}
	if _, err := XYZRead(strings.NewReader("2\ncomment\nC 0 0 0\n")); err == nil {
		Te.Error("no error for a truncated frame")
	}
	if _, err := XYZRead(strings.NewReader("1\ncomment\nC 0 zero 0\n")); err == nil {
		Te.Error("no error for a bad coordinate")
	}
}

func TestMol2Write(Te *testing.T) {
	mol := propylThiophene()
	var buf bytes.Buffer
	if err := Mol2Write(&buf, mol, 0, "thiophene"); err != nil {
		Te.Fatal(err)
	}
	out := buf.String()
	//the counts line declares one substructure, so its section must follow
	for _, want := range []string{"@<TRIPOS>MOLECULE", "@<TRIPOS>ATOM", "@<TRIPOS>BOND", "@<TRIPOS>SUBSTRUCTURE", "thiophene"} {
		if !strings.Contains(out, want) {
			Te.Errorf("mol2 output is missing %q", want)
		}
	}
	//ring bonds must come out aromatic
	if !strings.Contains(out, " ar") {
		Te.Error("mol2 output has no aromatic bonds")
	}
	lines := strings.Count(out, "\n")
	//5 header lines + 8 atoms + 8 bonds + 2 section tags
	if lines < 8+8 {
		Te.Errorf("mol2 output looks truncated: %d lines", lines)
	}
}

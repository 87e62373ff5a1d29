/*
 * files.go, part of gocg
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/cmelab/gocg/v3"
)

//XYZRead reads an XYZ-formatted structure from r. If the stream contains
//several concatenated frames for the same atoms, all of them are read into
//the compound. The returned compound has no bonds; use AssignBonds if you
//need them.
func XYZRead(r io.Reader) (*Compound, error) {
	br := bufio.NewReader(r)
	var top *Topology
	var coords []*v3.Matrix
	for {
		natoms, err := xyzReadHeader(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errDecorate(err, "XYZRead")
		}
		ats := make([]*Atom, 0, natoms)
		data := make([]float64, 0, natoms*3)
		for i := 0; i < natoms; i++ {
			line, err := br.ReadString('\n')
			if err != nil && line == "" {
				return nil, CError{fmt.Sprintf("unexpected end of file at atom %d", i), []string{"XYZRead"}}
			}
			fields := strings.Fields(line)
			if len(fields) < 4 {
				return nil, CError{fmt.Sprintf("malformed XYZ line %q", strings.TrimSpace(line)), []string{"XYZRead"}}
			}
			for _, f := range fields[1:4] {
				v, err := strconv.ParseFloat(f, 64)
				if err != nil {
					return nil, CError{fmt.Sprintf("can't parse coordinate %q: %v", f, err), []string{"XYZRead"}}
				}
				data = append(data, v)
			}
			at := &Atom{Name: fields[0], Symbol: fields[0], ID: i + 1}
			at.Mass = symbolMass[at.Symbol] //zero if unknown, that's fine
			ats = append(ats, at)
		}
		if top == nil {
			top = NewTopology(ats)
		} else if top.Len() != natoms {
			return nil, CError{fmt.Sprintf("frame with %d atoms in a file that started with %d", natoms, top.Len()), []string{"XYZRead"}}
		}
		frame, err := v3.NewMatrix(data)
		if err != nil {
			return nil, CError{err.Error(), []string{"XYZRead"}}
		}
		coords = append(coords, frame)
	}
	if top == nil {
		return nil, CError{"no frames found", []string{"XYZRead"}}
	}
	mol, err := NewCompound(top, coords)
	if err != nil {
		return nil, errDecorate(err, "XYZRead")
	}
	return mol, nil
}

func xyzReadHeader(br *bufio.Reader) (int, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if err == io.EOF && strings.TrimSpace(line) == "" {
			return 0, io.EOF
		}
		if err != io.EOF {
			return 0, CError{err.Error(), []string{"xyzReadHeader"}}
		}
	}
	natoms, err2 := strconv.Atoi(strings.TrimSpace(line))
	if err2 != nil {
		return 0, CError{fmt.Sprintf("can't read atom number from %q", strings.TrimSpace(line)), []string{"xyzReadHeader"}}
	}
	if _, err := br.ReadString('\n'); err != nil && err != io.EOF { //the comment line
		return 0, CError{err.Error(), []string{"xyzReadHeader"}}
	}
	return natoms, nil
}

//XYZFileRead reads an XYZ file from disk.
func XYZFileRead(name string) (*Compound, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, CError{err.Error(), []string{"XYZFileRead"}}
	}
	defer f.Close()
	mol, err := XYZRead(f)
	if err != nil {
		return nil, errDecorate(err, "XYZFileRead")
	}
	return mol, nil
}

//XYZWrite writes the given frame of the compound to w in XYZ format.
func XYZWrite(w io.Writer, C *Compound, frame int) error {
	coord := C.Coord(frame)
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%-4d\n", C.Len())
	fmt.Fprintf(bw, "\n")
	for i := 0; i < C.Len(); i++ {
		name := C.Atom(i).Name
		if name == "" {
			name = C.Atom(i).Symbol
		}
		_, err := fmt.Fprintf(bw, "%-2s  %12.6f%12.6f%12.6f \n", name, coord.At(i, 0), coord.At(i, 1), coord.At(i, 2))
		if err != nil {
			return CError{fmt.Sprintf("failed to write atom %d: %v", i, err), []string{"XYZWrite"}}
		}
	}
	if err := bw.Flush(); err != nil {
		return CError{err.Error(), []string{"XYZWrite"}}
	}
	return nil
}

//XYZFileWrite writes the given frame of the compound to an XYZ file.
func XYZFileWrite(name string, C *Compound, frame int) error {
	f, err := os.Create(name)
	if err != nil {
		return CError{err.Error(), []string{"XYZFileWrite"}}
	}
	defer f.Close()
	if err := XYZWrite(f, C, frame); err != nil {
		return errDecorate(err, "XYZFileWrite")
	}
	return nil
}

//Mol2Write writes the given frame of the compound to w in TRIPOS mol2
//format, including its bonds, which is what visualization programs want
//for coarse-grained structures.
func Mol2Write(w io.Writer, C *Compound, frame int, name ...string) error {
	coord := C.Coord(frame)
	molname := "gocg"
	if len(name) > 0 {
		molname = name[0]
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "@<TRIPOS>MOLECULE\n%s\n", molname)
	fmt.Fprintf(bw, "%d %d 1 0 0\n", C.Len(), len(C.bonds))
	fmt.Fprintf(bw, "SMALL\nUSER_CHARGES\n")
	fmt.Fprintf(bw, "@<TRIPOS>ATOM\n")
	for i := 0; i < C.Len(); i++ {
		at := C.Atom(i)
		typ := at.Type
		if typ == "" {
			typ = at.Name
		}
		_, err := fmt.Fprintf(bw, "%7d %-8s %9.4f %9.4f %9.4f %-6s 1 RES %8.4f\n",
			i+1, at.Name, coord.At(i, 0), coord.At(i, 1), coord.At(i, 2), typ, at.Charge)
		if err != nil {
			return CError{fmt.Sprintf("failed to write atom %d: %v", i, err), []string{"Mol2Write"}}
		}
	}
	fmt.Fprintf(bw, "@<TRIPOS>BOND\n")
	for bi, b := range C.bonds {
		order := "1"
		switch {
		case b.Aromatic:
			order = "ar"
		case b.Order == 2:
			order = "2"
		case b.Order == 3:
			order = "3"
		}
		_, err := fmt.Fprintf(bw, "%6d %5d %5d %4s\n", bi+1, b.At1.Index+1, b.At2.Index+1, order)
		if err != nil {
			return CError{fmt.Sprintf("failed to write bond %d: %v", bi, err), []string{"Mol2Write"}}
		}
	}
	//the atom lines put everything in substructure 1, declared in the counts line
	fmt.Fprintf(bw, "@<TRIPOS>SUBSTRUCTURE\n%7d %-8s %5d\n", 1, "RES", 1)
	if err := bw.Flush(); err != nil {
		return CError{err.Error(), []string{"Mol2Write"}}
	}
	return nil
}

//Mol2FileWrite writes the given frame of the compound to a mol2 file.
func Mol2FileWrite(name string, C *Compound, frame int) error {
	f, err := os.Create(name)
	if err != nil {
		return CError{err.Error(), []string{"Mol2FileWrite"}}
	}
	defer f.Close()
	if err := Mol2Write(f, C, frame); err != nil {
		return errDecorate(err, "Mol2FileWrite")
	}
	return nil
}

/*
 * lmp.go, part of gocg
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

package lmp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/cmelab/gocg/v3"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//Writer writes a dump trajectory, one frame per WNext call.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	natoms    int
	filename  string
	writeable bool
	step      int
}

//NewWriter creates a dump trajectory file for natoms-sized frames. The
//compression, if any, is taken from the file name suffix. compressionLevel
//applies to gzip and DEFLATE; zstd uses its own best-compression setting.
func NewWriter(name string, natoms int, compressionLevel ...int) (*Writer, error) {
	level := flate.BestCompression
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	W := new(Writer)
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"NewWriter"}, true}
	}
	switch {
	case strings.HasSuffix(name, ".gz"):
		W.h, err = gzip.NewWriterLevel(W.f, level)
	case strings.HasSuffix(name, ".zst"):
		W.h, err = zstd.NewWriter(W.f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	case strings.HasSuffix(name, ".fl"):
		W.h, err = flate.NewWriter(W.f, level)
	default:
		W.h = nopWriteCloser{W.f}
	}
	if err != nil {
		W.f.Close()
		return nil, Error{"can't set up compression: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	W.natoms = natoms
	W.filename = name
	W.writeable = true
	return W, nil
}

//WNext writes the given coordinates as the next frame. If box lengths are
//given, the frame's BOX BOUNDS are set to a box of those lengths centered at
//the origin; otherwise a zero box is written, which readers ignore.
func (W *Writer) WNext(coord *v3.Matrix, box ...[]float64) error {
	if !W.writeable {
		return Error{TrajUnIniWrite, W.filename, []string{"WNext"}, true}
	}
	if coord == nil {
		return Error{NilCoordinates, W.filename, []string{"WNext"}, true}
	}
	if v := coord.NVecs(); v != W.natoms {
		return Error{fmt.Sprintf("%d coordinates given, but %d expected", v, W.natoms), W.filename, []string{"WNext"}, true}
	}
	var b [3]float64
	if len(box) > 0 && len(box[0]) >= 3 {
		copy(b[:], box[0])
	}
	out := bufio.NewWriter(W.h)
	fmt.Fprintf(out, "ITEM: TIMESTEP\n%d\n", W.step)
	fmt.Fprintf(out, "ITEM: NUMBER OF ATOMS\n%d\n", W.natoms)
	fmt.Fprintf(out, "ITEM: BOX BOUNDS pp pp pp\n")
	for d := 0; d < 3; d++ {
		fmt.Fprintf(out, "%g %g\n", -b[d]/2, b[d]/2)
	}
	fmt.Fprintf(out, "ITEM: ATOMS id x y z\n")
	for i := 0; i < W.natoms; i++ {
		fmt.Fprintf(out, "%d %g %g %g\n", i+1, coord.At(i, 0), coord.At(i, 1), coord.At(i, 2))
	}
	if err := out.Flush(); err != nil {
		return Error{err.Error(), W.filename, []string{"WNext"}, true}
	}
	W.step++
	return nil
}

//Len returns the number of atoms per frame.
func (W *Writer) Len() int {
	return W.natoms
}

//Close flushes and closes the trajectory. The Writer can't be used after
//this call.
func (W *Writer) Close() {
	if W == nil || !W.writeable {
		return
	}
	W.h.Close()
	W.f.Close()
	W.writeable = false
}

type nopWriteCloser struct {
	io.Writer
}

func (n nopWriteCloser) Close() error { return nil }

//Reader reads a dump trajectory frame by frame.
type Reader struct {
	f        *os.File
	z        io.ReadCloser
	h        *bufio.Reader
	natoms   int
	filename string
	readable bool
}

//zstd.Decoder.Close returns nothing, so it doesn't fit io.ReadCloser
//on its own.
type zstdCloser struct {
	closeql func()
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.closeql()
	return nil
}

//New opens a dump trajectory for reading. The number of atoms per frame is
//not known until the first frame is read.
func New(name string) (*Reader, error) {
	R := new(Reader)
	R.natoms = -1
	R.filename = name
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"New"}, true}
	}
	inter := bufio.NewReader(R.f)
	switch {
	case strings.HasSuffix(name, ".gz"):
		R.z, err = gzip.NewReader(inter)
	case strings.HasSuffix(name, ".zst"):
		var d *zstd.Decoder
		d, err = zstd.NewReader(inter)
		if err == nil {
			R.z = zstdCloser{d.Close, d}
		}
	case strings.HasSuffix(name, ".fl"):
		R.z = flate.NewReader(inter)
	default:
		R.z = io.NopCloser(inter)
	}
	if err != nil {
		R.f.Close()
		return nil, Error{"can't set up decompression: " + err.Error(), name, []string{"New"}, true}
	}
	R.h = bufio.NewReader(R.z)
	R.readable = true
	return R, nil
}

//Readable returns true if it is possible to call Next on the trajectory.
func (R *Reader) Readable() bool {
	return R.readable
}

//Len returns the number of atoms per frame, or -1 if no frame has been
//read yet.
func (R *Reader) Len() int {
	return R.natoms
}

//Close closes the trajectory and marks it unreadable.
func (R *Reader) Close() {
	if R == nil || !R.readable {
		return
	}
	R.z.Close()
	R.f.Close()
	R.readable = false
}

//Next reads the next frame into c, or discards it if c is nil. If box is
//given, the box lengths of the frame are put in its first 3 elements. The
//returned error implements gocg's LastFrameError on a normal end of the
//trajectory.
func (R *Reader) Next(c *v3.Matrix, box ...[]float64) error {
	if !R.readable {
		return Error{TrajUnIniRead, R.filename, []string{"Next"}, true}
	}
	line, err := R.nextContentLine()
	if err != nil {
		if err == io.EOF {
			R.Close()
			return newlastFrameError(R.filename, "Next")
		}
		return Error{err.Error(), R.filename, []string{"Next"}, true}
	}
	if !strings.HasPrefix(line, "ITEM: TIMESTEP") {
		return Error{fmt.Sprintf("frame doesn't start with a TIMESTEP item: %q", line), R.filename, []string{"Next"}, true}
	}
	if _, err := R.readLine(); err != nil { //the timestep number, not used
		return Error{err.Error(), R.filename, []string{"Next"}, true}
	}
	natoms, err := R.readAtomCount()
	if err != nil {
		return errDecorate(err, "Next")
	}
	if R.natoms == -1 {
		R.natoms = natoms
	} else if natoms != R.natoms {
		return Error{fmt.Sprintf("frame with %d atoms in a trajectory of %d-atom frames", natoms, R.natoms), R.filename, []string{"Next"}, true}
	}
	lengths, err := R.readBox()
	if err != nil {
		return errDecorate(err, "Next")
	}
	if len(box) > 0 && len(box[0]) >= 3 {
		copy(box[0], lengths[:])
	}
	if err := R.readAtoms(c); err != nil {
		return errDecorate(err, "Next")
	}
	return nil
}

//nextContentLine skips blank lines. readLine does not.
func (R *Reader) nextContentLine() (string, error) {
	for {
		line, err := R.readLine()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) != "" {
			return line, nil
		}
	}
}

func (R *Reader) readLine() (string, error) {
	line, err := R.h.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\n"), nil
}

func (R *Reader) readAtomCount() (int, error) {
	header, err := R.readLine()
	if err != nil {
		return 0, Error{err.Error(), R.filename, []string{"readAtomCount"}, true}
	}
	if !strings.HasPrefix(header, "ITEM: NUMBER OF ATOMS") {
		return 0, Error{fmt.Sprintf("expected a NUMBER OF ATOMS item, got %q", header), R.filename, []string{"readAtomCount"}, true}
	}
	line, err := R.readLine()
	if err != nil {
		return 0, Error{err.Error(), R.filename, []string{"readAtomCount"}, true}
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, Error{fmt.Sprintf("can't read the atom number from %q", line), R.filename, []string{"readAtomCount"}, true}
	}
	return n, nil
}

//readBox reads the BOX BOUNDS item and returns the box lengths (hi-lo per
//dimension). Triclinic boxes carry a third bounds field and are rejected.
func (R *Reader) readBox() ([3]float64, error) {
	var lengths [3]float64
	header, err := R.readLine()
	if err != nil {
		return lengths, Error{err.Error(), R.filename, []string{"readBox"}, true}
	}
	if !strings.HasPrefix(header, "ITEM: BOX BOUNDS") {
		return lengths, Error{fmt.Sprintf("expected a BOX BOUNDS item, got %q", header), R.filename, []string{"readBox"}, true}
	}
	for d := 0; d < 3; d++ {
		line, err := R.readLine()
		if err != nil {
			return lengths, Error{err.Error(), R.filename, []string{"readBox"}, true}
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return lengths, Error{fmt.Sprintf("unsupported box bounds line %q", line), R.filename, []string{"readBox"}, true}
		}
		lo, err1 := strconv.ParseFloat(fields[0], 64)
		hi, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			return lengths, Error{fmt.Sprintf("can't parse box bounds from %q", line), R.filename, []string{"readBox"}, true}
		}
		lengths[d] = hi - lo
	}
	return lengths, nil
}

func (R *Reader) readAtoms(c *v3.Matrix) error {
	header, err := R.readLine()
	if err != nil {
		return Error{err.Error(), R.filename, []string{"readAtoms"}, true}
	}
	if !strings.HasPrefix(header, "ITEM: ATOMS") {
		return Error{fmt.Sprintf("expected an ATOMS item, got %q", header), R.filename, []string{"readAtoms"}, true}
	}
	cols := strings.Fields(header)[2:]
	xcol, ycol, zcol, idcol := -1, -1, -1, -1
	for i, col := range cols {
		switch col {
		case "x", "xu":
			xcol = i
		case "y", "yu":
			ycol = i
		case "z", "zu":
			zcol = i
		case "id":
			idcol = i
		}
	}
	if xcol == -1 || ycol == -1 || zcol == -1 {
		return Error{fmt.Sprintf("the ATOMS item %q is missing coordinate columns", header), R.filename, []string{"readAtoms"}, true}
	}
	if c != nil && c.NVecs() < R.natoms {
		return Error{fmt.Sprintf("matrix with %d rows given for a %d-atom frame", c.NVecs(), R.natoms), R.filename, []string{"readAtoms"}, true}
	}
	for i := 0; i < R.natoms; i++ {
		line, err := R.readLine()
		if err != nil {
			return Error{fmt.Sprintf("frame truncated at atom %d: %v", i, err), R.filename, []string{"readAtoms"}, true}
		}
		fields := strings.Fields(line)
		if len(fields) != len(cols) {
			return Error{fmt.Sprintf("atom line %q doesn't match the ATOMS header", line), R.filename, []string{"readAtoms"}, true}
		}
		if c == nil {
			continue //the frame is read, checked and dropped
		}
		row := i
		if idcol != -1 {
			id, err := strconv.Atoi(fields[idcol])
			if err != nil || id < 1 || id > R.natoms {
				return Error{fmt.Sprintf("bad atom id in %q", line), R.filename, []string{"readAtoms"}, true}
			}
			row = id - 1
		}
		for j, col := range []int{xcol, ycol, zcol} {
			v, err := strconv.ParseFloat(fields[col], 64)
			if err != nil {
				return Error{fmt.Sprintf("can't parse coordinate from %q", line), R.filename, []string{"readAtoms"}, true}
			}
			c.Set(row, j, v)
		}
	}
	return nil
}

//NextConc reads as many frames as the given slice has elements, filling the
//matrices in it. It returns a slice of channels, through each of which one
//of the read frames will be transmitted.
func (R *Reader) NextConc(frames []*v3.Matrix) ([]chan *v3.Matrix, error) {
	if !R.Readable() {
		return nil, Error{TrajUnIniRead, R.filename, []string{"NextConc"}, true}
	}
	framechans := make([]chan *v3.Matrix, len(frames))
	for key, v := range frames {
		if err := R.Next(v); err != nil {
			return nil, errDecorate(err, "NextConc")
		}
		framechans[key] = make(chan *v3.Matrix)
		go func(keep *v3.Matrix, pipe chan *v3.Matrix) {
			pipe <- keep
		}(v, framechans[key])
	}
	return framechans, nil
}

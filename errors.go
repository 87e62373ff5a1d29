/*
 * errors.go, part of gocg
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

//Error is the interface for errors that all packages in this library implement.
//The Decorate method allows to add and retrieve info from the error, without
//changing its type or wrapping it around something else. The decoration slice
//should contain a list of the functions in the calling stack, plus, for each
//function, any relevant information, or nothing. If information is added to an
//element of the slice, it should be in the format "FunctionName: Extra info".
type Error interface {
	Error() string
	Decorate(string) []string
}

//TrajError is the interface for errors in trajectories.
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

//LastFrameError is used to distinguish the harmless EOF "error" when reading
//trajectories (i.e. the last frame has been read) from actual problems, so the
//former can be filtered in a type switch that looks for this interface.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination()
}

//CError (Concrete Error) is the concrete type implementing the Error
//interface for the root package.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

//Decorate adds the dec string to the decoration slice of the error, and
//returns the resulting slice. If dec is empty, the current slice is
//returned with no additions.
func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//errDecorate asserts that err implements Error and decorates it with the
//caller's name before returning it. Calling it with anything else is a
//programming error, so it panics in that case.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

//PanicMsg is a message used for panics. It satisfies the error interface,
//but for recoverable conditions use CError.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilData         = PanicMsg("gocg: Nil data given")
	ErrNilAtom         = PanicMsg("gocg: Nil atom given")
	ErrAtomOutOfRange  = PanicMsg("gocg: Requested atom out of range")
	ErrFrameOutOfRange = PanicMsg("gocg: Requested frame out of range")
	ErrNoBox           = PanicMsg("gocg: Compound has no box assigned")
)

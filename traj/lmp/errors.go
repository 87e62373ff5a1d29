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

package lmp

import (
	"fmt"

	cg "github.com/cmelab/gocg"
)

//errDecorate asserts that the given error implements cg.Error and decorates
//it with the caller's name before returning it. Calling it on any other
//error is a bug, so it panics.
func errDecorate(err error, caller string) error {
	err2 := err.(cg.Error)
	err2.Decorate(caller)
	return err2
}

//Error is the error type for dump trajectory problems. It fulfills cg.Error
//and cg.TrajError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("lmp file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error. It works on a value receiver
//because deco is a slice, so the underlying array is shared.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file the failing trajectory was read from or
//written to.
func (err Error) FileName() string { return err.filename }

//Format returns the format associated to the error, always "lmp".
func (err Error) Format() string { return "lmp" }

//Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead  = "Traj object uninitialized to read"
	TrajUnIniWrite = "Traj object uninitialized to write"
	NilCoordinates = "Given nil coordinates"
)

//lastFrameError implements cg.LastFrameError: the trajectory ended without
//anything going wrong.
type lastFrameError struct {
	deco     []string
	fileName string
}

func (e lastFrameError) NormalLastFrameTermination() {}

func (e lastFrameError) FileName() string { return e.fileName }

func (e lastFrameError) Error() string { return "EOF" }

func (e lastFrameError) Critical() bool { return false }

func (e lastFrameError) Format() string { return "lmp" }

func (e lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		e.deco = append(e.deco, deco)
	}
	return e.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}

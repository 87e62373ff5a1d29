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

package forcefield

import (
	"fmt"

	"github.com/cmelab/gocg"
)

//errDecorate asserts that err implements cg.Error and decorates it with
//the caller's name. Anything else is a programming error, so it panics.
func errDecorate(err error, caller string) error {
	err2 := err.(cg.Error)
	err2.Decorate(caller)
	return err2
}

//Error implements the cg.Error interface for this package.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return fmt.Sprintf("forcefield error: %s", err.message) }

//Decorate adds the dec string to the decoration slice of the error and
//returns the resulting slice. An empty dec adds nothing.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

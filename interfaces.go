/*
 * interfaces.go, part of gocg
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

import v3 "github.com/cmelab/gocg/v3"

//Traj is an interface for any trajectory object, including a Compound.
type Traj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	//Next reads the next frame into output, or discards it if output is nil.
	//If box is given and the frame carries box information, the box lengths
	//are put there. An error implementing LastFrameError signals a normal
	//end of the trajectory.
	Next(output *v3.Matrix, box ...[]float64) error

	//Len returns the number of atoms per frame.
	Len() int
}

//ConcTraj is an interface for a trajectory that can be read concurrently.
type ConcTraj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	//NextConc reads as many frames as the given slice has elements, filling
	//the matrices in it. It returns a slice of channels, through each of
	//which one of the read frames will be transmitted.
	NextConc(frames []*v3.Matrix) ([]chan *v3.Matrix, error)

	//Len returns the number of atoms per frame.
	Len() int
}

//Atomer is the basic interface for a topology.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i. Should panic if
	//out of range.
	Atom(i int) *Atom

	Len() int
}

//Masser can return a slice with the masses of each atom in the reference.
type Masser interface {

	//Masses returns a slice with the masses of all atoms.
	Masses() ([]float64, error)
}

//Bonder is an Atomer that also knows the bonds between its atoms.
type Bonder interface {
	Atomer

	//Bonds returns all the bonds in the topology.
	Bonds() []*Bond
}

/*
 * doc.go, part of gocg
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

/*
Package lmp reads and writes LAMMPS-style text dump trajectories
(ITEM: TIMESTEP / NUMBER OF ATOMS / BOX BOUNDS / ATOMS), the format
coarse-grained simulation snapshots usually come in.

The files can be transparently compressed. The compression is chosen from the
file name suffix:

	.gz    gzip
	.zst   zstd
	.fl    DEFLATE
	other  plain text

Reading handles dumps whose atoms come in any order, as long as an id column
is present, and boxes whose bounds are not centered at the origin. Only
orthorhombic boxes are supported; triclinic tilt factors are an error.
*/
package lmp

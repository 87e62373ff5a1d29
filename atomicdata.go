/*
 * atomicdata.go, part of gocg
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

//A map for assigning mass to elements. Just the elements common in
//organic semiconductors and polymers are present.
var symbolMass = map[string]float64{
	"H":  1.008,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Si": 28.08,
	"F":  18.998,
	"Cl": 35.45,
	"Br": 79.904,
	"I":  126.90,
	"Se": 78.96,
}

//A map for assigning covalent radii to elements.
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
var symbolCovrad = map[string]float64{
	"H":  0.4, //0.31; H always has one bond so a longer radius does no harm, the extra bonds get pruned later.
	"C":  0.76,
	"O":  0.66,
	"N":  0.71,
	"P":  1.07,
	"S":  1.05,
	"Si": 1.11,
	"F":  0.57,
	"Cl": 1.02,
	"Br": 1.2,
	"I":  1.39,
	"Se": 1.2,
}

//A map for the maximum number of bonds an element can have.
//A zero (i.e. missing) value means no maximum is enforced.
var symbolMaxBonds = map[string]int{
	"H":  1,
	"C":  4,
	"O":  2,
	"N":  4, //allows for charged N, since charges are not perceived
	"S":  6,
	"P":  5,
	"F":  1,
	"Cl": 1,
	"Br": 1,
	"I":  1,
	"Si": 4,
}

//amberSymbol maps the GAFF/AMBER atom type names that appear in typed
//structure files to their elements. Structure-perception tools do not know
//how to read AMBER names, so compounds coming from typed simulations get
//renamed through this table (see Topology.AmberToElement).
var amberSymbol = map[string]string{
	"c": "C", "c1": "C", "c2": "C", "c3": "C", "ca": "C",
	"cp": "C", "cq": "C", "cc": "C", "cd": "C", "ce": "C",
	"cf": "C", "cg": "C", "ch": "C", "cx": "C", "cy": "C",
	"cu": "C", "cv": "C",
	"h1": "H", "h2": "H", "h3": "H", "h4": "H", "h5": "H",
	"ha": "H", "hc": "H", "hn": "H", "ho": "H", "hp": "H",
	"hs": "H", "hw": "H", "hx": "H",
	"f": "F", "cl": "Cl", "br": "Br", "i": "I",
	"n": "N", "n1": "N", "n2": "N", "n3": "N", "n4": "N",
	"na": "N", "nb": "N", "nc": "N", "nd": "N", "ne": "N",
	"nf": "N", "nh": "N", "no": "N",
	"o": "O", "oh": "O", "os": "O", "ow": "O",
	"p2": "P", "p3": "P", "p4": "P", "p5": "P", "pb": "P",
	"pc": "P", "pd": "P", "pe": "P", "pf": "P", "px": "P",
	"py": "P",
	"s":  "S", "s2": "S", "s4": "S", "s6": "S", "sh": "S",
	"ss": "S", "sx": "S", "sy": "S",
}

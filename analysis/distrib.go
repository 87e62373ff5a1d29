/*
 * distrib.go, part of gocg
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

package analysis

import (
	"fmt"

	cg "github.com/cmelab/gocg"
	v3 "github.com/cmelab/gocg/v3"
)

//mapTraj runs f on every frame of the trajectory.
func mapTraj(traj cg.Traj, f func(coord *v3.Matrix)) error {
	coord := v3.Zeros(traj.Len())
	for i := 0; ; i++ {
		err := traj.Next(coord)
		if err != nil {
			switch err := err.(type) {
			case cg.LastFrameError:
				return nil
			case cg.Error:
				err.Decorate(fmt.Sprintf("failed while reading the %d th frame", i))
				return err
			default:
				return err
			}
		}
		f(coord)
	}
}

//BondLengths collects, over the whole trajectory, the lengths of every bond
//in the topology, grouped by constraint type (the sorted names of the two
//participants). The values are what force-field bond constraints are fitted
//against.
func BondLengths(traj cg.Traj, top *cg.Topology) (map[string][]float64, error) {
	groups := top.FindBonds()
	if len(groups) == 0 {
		return nil, fmt.Errorf("analysis: the topology has no bonds")
	}
	ret := make(map[string][]float64, len(groups))
	err := mapTraj(traj, func(coord *v3.Matrix) {
		for key, pairs := range groups {
			for _, p := range pairs {
				ret[key] = append(ret[key], cg.Distance(coord.VecView(p[0]), coord.VecView(p[1])))
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

//AngleValues collects, over the whole trajectory, every bonded angle in the
//topology in degrees, grouped by constraint type.
func AngleValues(traj cg.Traj, top *cg.Topology) (map[string][]float64, error) {
	groups := top.FindAngles()
	if len(groups) == 0 {
		return nil, fmt.Errorf("analysis: the topology has no angles")
	}
	ret := make(map[string][]float64, len(groups))
	err := mapTraj(traj, func(coord *v3.Matrix) {
		for key, triples := range groups {
			for _, t := range triples {
				a := cg.Angle(coord.VecView(t[0]), coord.VecView(t[1]), coord.VecView(t[2]))
				ret[key] = append(ret[key], cg.Rad2Deg(a))
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

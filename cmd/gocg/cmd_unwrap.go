/*
 * cmd_unwrap.go, part of gocg
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

package main

import (
	"fmt"

	"github.com/cmelab/gocg"
	"github.com/cmelab/gocg/traj/lmp"
	"github.com/cmelab/gocg/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newUnwrapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unwrap -s structure.xyz input.lammpstrj output.lammpstrj",
		Short: "Rejoin molecules split across periodic boundaries, frame by frame",
		Long: `unwrap reads a trajectory and translates particles of boundary-split
molecules back to their real-space positions. The bond graph comes from the
structure file, whose first frame is used for bond perception; the box comes
from each trajectory frame. Compressed trajectories are handled by filename
suffix (.gz, .zst, .fl), on both ends.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			structfile, _ := cmd.Flags().GetString("structure")
			tolerance, _ := cmd.Flags().GetFloat64("tolerance")
			mol, err := cg.XYZFileRead(structfile)
			if err != nil {
				return err
			}
			if err := cg.AssignBonds(mol.Coord(0), mol.Topology); err != nil {
				return err
			}
			r, err := lmp.New(args[0])
			if err != nil {
				return err
			}
			defer r.Close()
			w, err := lmp.NewWriter(args[1], mol.Len())
			if err != nil {
				return err
			}
			defer w.Close()

			coord := v3.Zeros(mol.Len())
			box := make([]float64, 3)
			frames := 0
		reading:
			for {
				err := r.Next(coord, box)
				switch err := err.(type) {
				case nil:
				case cg.LastFrameError:
					break reading
				default:
					return fmt.Errorf("frame %d: %w", frames, err)
				}
				b, err2 := cg.NewBox(box[0], box[1], box[2])
				if err2 != nil {
					return fmt.Errorf("frame %d: %w", frames, err2)
				}
				mol.Coords[0] = coord
				mol.SetBox(b)
				if err2 := mol.Unwrap(0, tolerance); err2 != nil {
					return fmt.Errorf("frame %d: %w", frames, err2)
				}
				if err2 := w.WNext(coord, box); err2 != nil {
					return fmt.Errorf("frame %d: %w", frames, err2)
				}
				frames++
			}
			logger.Info("Unwrapped trajectory",
				zap.String("input", args[0]),
				zap.String("output", args[1]),
				zap.Int("frames", frames))
			return nil
		},
	}
	cmd.Flags().StringP("structure", "s", "", "structure file for bond perception (required)")
	cmd.Flags().Float64P("tolerance", "t", 5.0, "bonds longer than this span the boundary")
	cmd.MarkFlagRequired("structure")
	return cmd
}

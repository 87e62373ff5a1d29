/*
 * cmd_coarse.go, part of gocg
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
	"github.com/cmelab/gocg"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCoarseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coarse -m mapping.yaml input.xyz output.mol2",
		Short: "Map an atomistic structure onto coarse-grained beads",
		Long: `coarse reads an atomistic structure, perceives its bonds from the first
frame, matches the bead patterns of the mapping file against it and writes
the resulting bead structure as mol2. The mapping file looks like:

  beads:
    - name: ring
      pattern: C1SCCC1
    - name: tail
      pattern: CCC
  use_mass: false
  keep_atomistic: false`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mapfile, _ := cmd.Flags().GetString("mapping")
			m, err := readMapping(mapfile)
			if err != nil {
				return err
			}
			mol, err := cg.XYZFileRead(args[0])
			if err != nil {
				return err
			}
			logger.Info("Read structure",
				zap.String("file", args[0]),
				zap.Int("atoms", mol.Len()),
				zap.Int("frames", len(mol.Coords)))
			if err := cg.AssignBonds(mol.Coord(0), mol.Topology); err != nil {
				return err
			}
			opts := cg.CoarsenOptions{KeepAtomistic: m.KeepAtomistic, UseMass: m.UseMass}
			beads, mappings, err := cg.Coarsen(mol, m.specs(), opts)
			if err != nil {
				return err
			}
			for _, bm := range mappings {
				logger.Debug("Bead produced",
					zap.String("name", bm.BeadName),
					zap.String("pattern", bm.Pattern),
					zap.Ints("atoms", bm.Atoms))
			}
			logger.Info("Coarsened structure", zap.Int("beads", len(mappings)))
			return cg.Mol2FileWrite(args[1], beads, 0)
		},
	}
	cmd.Flags().StringP("mapping", "m", "", "YAML bead mapping file (required)")
	cmd.MarkFlagRequired("mapping")
	return cmd
}

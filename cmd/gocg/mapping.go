/*
 * mapping.go, part of gocg
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
	"os"

	"github.com/cmelab/gocg"
	"gopkg.in/yaml.v3"
)

//mapping is the YAML bead-mapping file the coarse command reads. Each bead
//entry needs a pattern; the name is only for humans, the produced particles
//are named by position ("_A", "_B"...).
type mapping struct {
	Beads []struct {
		Name    string `yaml:"name"`
		Pattern string `yaml:"pattern"`
	} `yaml:"beads"`
	UseMass       bool `yaml:"use_mass"`
	KeepAtomistic bool `yaml:"keep_atomistic"`
}

func readMapping(name string) (*mapping, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	m := new(mapping)
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("can't parse mapping file %s: %w", name, err)
	}
	if len(m.Beads) == 0 {
		return nil, fmt.Errorf("mapping file %s defines no beads", name)
	}
	for i, b := range m.Beads {
		if b.Pattern == "" {
			return nil, fmt.Errorf("bead %d (%s) has no pattern", i, b.Name)
		}
	}
	return m, nil
}

func (m *mapping) specs() []cg.BeadSpec {
	specs := make([]cg.BeadSpec, 0, len(m.Beads))
	for _, b := range m.Beads {
		specs = append(specs, cg.BeadSpec{Name: b.Name, Pattern: b.Pattern})
	}
	return specs
}

/*
 * analysis_test.go, part of gocg
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
	"testing"

	cg "github.com/cmelab/gocg"
	v3 "github.com/cmelab/gocg/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//beadPair is two _A beads 1.05 apart in a cubic box of side 10, repeated
//over nframes identical frames.
func beadPair(t *testing.T, nframes int) *cg.Compound {
	ats := []*cg.Atom{
		{Name: "_A", ID: 1},
		{Name: "_A", ID: 2},
	}
	top := cg.NewTopology(ats)
	frames := make([]*v3.Matrix, 0, nframes)
	for i := 0; i < nframes; i++ {
		c, err := v3.NewMatrix([]float64{0, 0, 0, 1.05, 0, 0})
		require.NoError(t, err)
		frames = append(frames, c)
	}
	mol, err := cg.NewCompound(top, frames)
	require.NoError(t, err)
	box, err := cg.NewBox(10, 10, 10)
	require.NoError(t, err)
	mol.SetBox(box)
	return mol
}

func TestRDF(t *testing.T) {
	mol := beadPair(t, 3)
	require.NoError(t, mol.InitRead())
	rs, gr, err := RDF(mol, mol, "_A", "_A", mol.Box())
	require.NoError(t, err)
	require.Len(t, gr, 25) //cutoff 10/4 with 0.1 bins
	assert.InDelta(t, 1.05, rs[10], 1e-10)
	for i, g := range gr {
		if i == 10 {
			assert.Greater(t, g, 0.0, "the pair distance bin must be populated")
		} else {
			assert.Zero(t, g, "bin %d", i)
		}
	}
}

func TestConcRDFMatchesRDF(t *testing.T) {
	mol := beadPair(t, 4)
	require.NoError(t, mol.InitRead())
	_, want, err := RDF(mol, mol, "_A", "_A", mol.Box())
	require.NoError(t, err)

	o := DefaultOptions()
	o.Cpus(2) //4 frames in 2 even batches
	require.NoError(t, mol.InitRead())
	_, got, err := ConcRDF(mol, mol, "_A", "_A", mol.Box(), o)
	require.NoError(t, err)
	require.Equal(t, len(want), len(got))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "bin %d", i)
	}
}

func TestRDFErrors(t *testing.T) {
	mol := beadPair(t, 2)
	require.NoError(t, mol.InitRead())
	_, _, err := RDF(mol, mol, "_A", "_X", mol.Box())
	assert.Error(t, err, "no particles named _X")
	_, _, err = RDF(mol, mol, "_A", "_A", nil)
	assert.Error(t, err, "no box")
}

func TestAutoCorr(t *testing.T) {
	alternating := []float64{1, -1, 1, -1, 1, -1, 1, -1}
	acf, err := AutoCorr(alternating)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, acf[0], 1e-9)
	assert.Negative(t, acf[1])

	_, err = AutoCorr([]float64{3, 3, 3, 3})
	assert.Error(t, err, "constant series")
	_, err = AutoCorr([]float64{1})
	assert.Error(t, err, "single point")
}

func TestDecorrTime(t *testing.T) {
	alternating := []float64{1, -1, 1, -1, 1, -1, 1, -1}
	tau, err := DecorrTime(alternating)
	require.NoError(t, err)
	assert.Equal(t, 1, tau)

	//a slow ramp stays correlated longer than one step
	ramp := make([]float64, 64)
	for i := range ramp {
		ramp[i] = float64(i)
	}
	tau, err = DecorrTime(ramp)
	require.NoError(t, err)
	assert.Greater(t, tau, 1)
}

func TestErrorAnalysis(t *testing.T) {
	alternating := []float64{1, -1, 1, -1, 1, -1, 1, -1}
	mean, stderr, err := ErrorAnalysis(alternating)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, mean, 1e-9)
	assert.Positive(t, stderr)
}

func TestBondAndAngleDistributions(t *testing.T) {
	ats := []*cg.Atom{
		{Name: "_A", ID: 1},
		{Name: "_B", ID: 2},
		{Name: "_A", ID: 3},
	}
	top := cg.NewTopology(ats)
	top.AddBond(0, 1)
	top.AddBond(1, 2)
	frames := make([]*v3.Matrix, 0, 2)
	for i := 0; i < 2; i++ {
		c, err := v3.NewMatrix([]float64{0, 0, 0, 1, 0, 0, 1, 1, 0})
		require.NoError(t, err)
		frames = append(frames, c)
	}
	mol, err := cg.NewCompound(top, frames)
	require.NoError(t, err)

	require.NoError(t, mol.InitRead())
	bonds, err := BondLengths(mol, mol.Topology)
	require.NoError(t, err)
	require.Len(t, bonds["_A-_B"], 4) //2 bonds over 2 frames
	assert.InDelta(t, 1.0, bonds["_A-_B"][0], 1e-10)

	require.NoError(t, mol.InitRead())
	angles, err := AngleValues(mol, mol.Topology)
	require.NoError(t, err)
	require.Len(t, angles["_A-_A-_B"], 2)
	assert.InDelta(t, 90.0, angles["_A-_A-_B"][0], 1e-8)
}

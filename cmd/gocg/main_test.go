package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cmelab/gocg/traj/lmp"
	v3 "github.com/cmelab/gocg/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const propaneXYZ = `3
a heavy-atom propane
C    0.000000  0.000000  0.000000
C    1.500000  0.000000  0.000000
C    3.000000  0.000000  0.000000
`

const chainMapping = `beads:
  - name: backbone
    pattern: CCC
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadMapping(t *testing.T) {
	dir := t.TempDir()
	m, err := readMapping(writeFile(t, dir, "map.yaml", chainMapping))
	require.NoError(t, err)
	require.Len(t, m.specs(), 1)
	assert.Equal(t, "CCC", m.specs()[0].Pattern)
	assert.False(t, m.UseMass)

	_, err = readMapping(writeFile(t, dir, "empty.yaml", "beads: []\n"))
	assert.Error(t, err)
	_, err = readMapping(writeFile(t, dir, "nopattern.yaml", "beads:\n  - name: x\n"))
	assert.Error(t, err)
	_, err = readMapping(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestCoarseCommand(t *testing.T) {
	logger = zap.NewNop()
	dir := t.TempDir()
	in := writeFile(t, dir, "propane.xyz", propaneXYZ)
	mapfile := writeFile(t, dir, "map.yaml", chainMapping)
	out := filepath.Join(dir, "beads.mol2")

	cmd := newCoarseCmd()
	cmd.SetArgs([]string{"-m", mapfile, in, out})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "@<TRIPOS>ATOM")
	assert.Contains(t, string(data), "_A")
}

const splitDump = `ITEM: TIMESTEP
0
ITEM: NUMBER OF ATOMS
3
ITEM: BOX BOUNDS pp pp pp
-5.0 5.0
-5.0 5.0
-5.0 5.0
ITEM: ATOMS id x y z
1 3.5 0.0 0.0
2 4.5 0.0 0.0
3 -4.5 0.0 0.0
`

func TestUnwrapCommand(t *testing.T) {
	logger = zap.NewNop()
	dir := t.TempDir()
	structfile := writeFile(t, dir, "propane.xyz", propaneXYZ)
	in := writeFile(t, dir, "split.lammpstrj", splitDump)
	out := filepath.Join(dir, "whole.lammpstrj")

	cmd := newUnwrapCmd()
	cmd.SetArgs([]string{"-s", structfile, in, out})
	require.NoError(t, cmd.Execute())

	r, err := lmp.New(out)
	require.NoError(t, err)
	defer r.Close()
	coord := v3.Zeros(3)
	require.NoError(t, r.Next(coord))
	//the third particle crossed the boundary; it belongs at 5.5
	assert.InDelta(t, 3.5, coord.At(0, 0), 1e-6)
	assert.InDelta(t, 4.5, coord.At(1, 0), 1e-6)
	assert.InDelta(t, 5.5, coord.At(2, 0), 1e-6)
}

package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cmelab/gocg/histo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRDFPlot(t *testing.T) {
	rs := []float64{0.05, 0.15, 0.25, 0.35}
	gr := []float64{0, 1.8, 1.1, 1.0}
	name := filepath.Join(t.TempDir(), "rdf")
	require.NoError(t, RDFPlot(rs, gr, "A-B", name))
	info, err := os.Stat(name + ".png")
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRDFPlotErrors(t *testing.T) {
	assert.Error(t, RDFPlot([]float64{1}, []float64{1, 2}, "", "x"))
	assert.Error(t, RDFPlot(nil, nil, "", "x"))
}

func TestHistoPlot(t *testing.T) {
	d, err := histo.NewData(histo.UniformDividers(1.0, 2.0, 10), []float64{1.2, 1.25, 1.3, 1.3, 1.7})
	require.NoError(t, err)
	name := filepath.Join(t.TempDir(), "bonds")
	require.NoError(t, HistoPlot(d, "_A-_B", "length (A)", name))
	_, err = os.Stat(name + ".png")
	assert.NoError(t, err)

	assert.Error(t, HistoPlot(nil, "", "", name))
}

func TestCollectionPlot(t *testing.T) {
	groups := map[string][]float64{
		"_A-_B": {1.0, 1.1, 1.2},
		"_B-_B": {2.0, 2.1, 2.05},
	}
	c, err := histo.NewCollection(groups, 5)
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, CollectionPlot(c, "length (A)", filepath.Join(dir, "dist")))
	for _, key := range c.Keys() {
		_, err := os.Stat(filepath.Join(dir, "dist_"+key+".png"))
		assert.NoError(t, err, "missing figure for %s", key)
	}
}

package smarts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//a bare thiophene ring: S at index 0, then the four carbons around it
func thiophene() *Target {
	symbols := []string{"S", "C", "C", "C", "C"}
	aromatic := []bool{true, true, true, true, true}
	bonds := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}}
	barom := []bool{true, true, true, true, true}
	t, err := NewTarget(symbols, aromatic, bonds, nil, barom)
	if err != nil {
		panic(err)
	}
	return t
}

//hexane: C0-C1-C2-C3-C4-C5
func hexane() *Target {
	symbols := []string{"C", "C", "C", "C", "C", "C"}
	bonds := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}}
	t, err := NewTarget(symbols, nil, bonds, nil, nil)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCompile(t *testing.T) {
	for name, src := range Features {
		_, err := Compile(src)
		assert.NoError(t, err, "feature %s (%s) should compile", name, src)
	}
	p := MustCompile("c1sccc1")
	assert.Equal(t, 5, p.Len())
	assert.True(t, p.HasRing())
	assert.False(t, MustCompile("CCC").HasRing())
}

func TestCompileErrors(t *testing.T) {
	for _, bad := range []string{"", "C(C", "CC)", "C1CC", "1CC", "(C)", "Xy"} {
		_, err := Compile(bad)
		assert.Error(t, err, "pattern %q should not compile", bad)
	}
}

func TestThiopheneMatch(t *testing.T) {
	p := MustCompile("c1sccc1")
	matches := p.FindAll(thiophene())
	require.Len(t, matches, 1, "a thiophene ring should match the thiophene pattern once")
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, matches[0])
	//the sulfur position in the match must be the actual S
	ps := MustCompile("s")
	sm := ps.FindAll(thiophene())
	require.Len(t, sm, 1)
	assert.Equal(t, 0, sm[0][0])
}

func TestAromaticityIsStrict(t *testing.T) {
	//an aliphatic pattern should not match an aromatic ring
	p := MustCompile("C1SCCC1")
	assert.Empty(t, p.FindAll(thiophene()))
	//and an aromatic pattern should not match an alkane
	pa := MustCompile("ccc")
	assert.Empty(t, pa.FindAll(hexane()))
}

func TestAlkylMatchesAreUnique(t *testing.T) {
	p := MustCompile("CCC")
	matches := p.FindAll(hexane())
	//4 unique windows of 3 consecutive carbons in hexane
	require.Len(t, matches, 4)
	assert.ElementsMatch(t, []int{0, 1, 2}, matches[0])
	assert.ElementsMatch(t, []int{3, 4, 5}, matches[3])
}

func TestBondSymbols(t *testing.T) {
	//propene: C0=C1-C2
	symbols := []string{"C", "C", "C"}
	bonds := [][2]int{{0, 1}, {1, 2}}
	orders := []float64{2, 1}
	target, err := NewTarget(symbols, nil, bonds, orders, nil)
	require.NoError(t, err)

	assert.Len(t, MustCompile("C=C").FindAll(target), 1)
	assert.Len(t, MustCompile("C#C").FindAll(target), 0)
	//the single bond pattern can only fit C1-C2
	m := MustCompile("C-C").FindAll(target)
	require.Len(t, m, 1)
	assert.ElementsMatch(t, []int{1, 2}, m[0])
}

func TestBranchedPattern(t *testing.T) {
	//isobutane-like: C1 bonded to C0, C2, C3
	symbols := []string{"C", "C", "C", "C"}
	bonds := [][2]int{{0, 1}, {1, 2}, {1, 3}}
	target, err := NewTarget(symbols, nil, bonds, nil, nil)
	require.NoError(t, err)
	m := MustCompile("C(C)(C)C").FindAll(target)
	require.Len(t, m, 1)
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, m[0])
}

func TestWildcard(t *testing.T) {
	m := MustCompile("C*C").FindAll(hexane())
	assert.Len(t, m, 4)
}

func TestNoMatchReportsEmpty(t *testing.T) {
	p := MustCompile("c1ccccc1")
	assert.Empty(t, p.FindAll(hexane()))
}

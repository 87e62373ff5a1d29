//Package graph offers connectivity queries over bond graphs, backed by
//gonum/graph. It works on plain particle indexes so it can be used from the
//root package without a circular dependency.
package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

//Components returns the connected components of a graph with n nodes and the
//given edges, as sorted slices of node indexes. Isolated nodes form their own
//components. The components themselves come sorted by their lowest member,
//so the output is deterministic.
func Components(n int, edges [][2]int) [][]int {
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	for _, e := range edges {
		if e[0] == e[1] {
			continue //gonum panics on self-edges, and a self-bond is meaningless anyway
		}
		g.SetEdge(g.NewEdge(simple.Node(e[0]), simple.Node(e[1])))
	}
	comps := topo.ConnectedComponents(g)
	ret := make([][]int, 0, len(comps))
	for _, comp := range comps {
		ids := make([]int, 0, len(comp))
		for _, node := range comp {
			ids = append(ids, int(node.ID()))
		}
		sort.Ints(ids)
		ret = append(ret, ids)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0] < ret[j][0] })
	return ret
}

//Connected returns whether nodes i and j are in the same component of the
//graph with n nodes and the given edges.
func Connected(n int, edges [][2]int, i, j int) bool {
	for _, comp := range Components(n, edges) {
		ini := false
		inj := false
		for _, v := range comp {
			if v == i {
				ini = true
			}
			if v == j {
				inj = true
			}
		}
		if ini || inj {
			return ini && inj
		}
	}
	return false
}

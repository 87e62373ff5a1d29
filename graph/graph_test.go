package graph

import "testing"

func TestComponents(Te *testing.T) {
	//two molecules and an isolated particle
	edges := [][2]int{{0, 1}, {1, 2}, {4, 5}}
	comps := Components(7, edges)
	if len(comps) != 4 {
		Te.Fatalf("expected 4 components, got %d: %v", len(comps), comps)
	}
	if len(comps[0]) != 3 || comps[0][0] != 0 || comps[0][2] != 2 {
		Te.Errorf("first component wrong: %v", comps[0])
	}
	if len(comps[2]) != 2 || comps[2][0] != 4 {
		Te.Errorf("bonded pair component wrong: %v", comps[2])
	}
}

func TestConnected(Te *testing.T) {
	edges := [][2]int{{0, 1}, {1, 2}}
	if !Connected(4, edges, 0, 2) {
		Te.Error("0 and 2 should be connected")
	}
	if Connected(4, edges, 0, 3) {
		Te.Error("0 and 3 should not be connected")
	}
}

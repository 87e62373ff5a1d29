package smarts

import (
	"fmt"
	"sort"
)

//Target is the molecule-side view a Pattern is matched against: element
//symbols, aromatic flags and bonds. It is deliberately independent from the
//root package's types so both can import this one.
type Target struct {
	symbols  []string
	aromatic []bool
	adj      [][]tbond
}

type tbond struct {
	to       int
	order    float64
	aromatic bool
}

//NewTarget builds a matching target from parallel atom slices and a list of
//bonded index pairs. Orders and aromatic flags for the bonds are optional;
//pass nil to treat every bond as of undetermined order.
func NewTarget(symbols []string, aromatic []bool, bonds [][2]int, orders []float64, bondAromatic []bool) (*Target, error) {
	n := len(symbols)
	if aromatic != nil && len(aromatic) != n {
		return nil, fmt.Errorf("smarts: %d aromatic flags for %d atoms", len(aromatic), n)
	}
	if orders != nil && len(orders) != len(bonds) {
		return nil, fmt.Errorf("smarts: %d bond orders for %d bonds", len(orders), len(bonds))
	}
	if bondAromatic != nil && len(bondAromatic) != len(bonds) {
		return nil, fmt.Errorf("smarts: %d bond aromatic flags for %d bonds", len(bondAromatic), len(bonds))
	}
	t := &Target{symbols: symbols, aromatic: aromatic, adj: make([][]tbond, n)}
	for i, b := range bonds {
		if b[0] < 0 || b[0] >= n || b[1] < 0 || b[1] >= n {
			return nil, fmt.Errorf("smarts: bond %v out of range for %d atoms", b, n)
		}
		var order float64
		var arom bool
		if orders != nil {
			order = orders[i]
		}
		if bondAromatic != nil {
			arom = bondAromatic[i]
		}
		t.adj[b[0]] = append(t.adj[b[0]], tbond{to: b[1], order: order, aromatic: arom})
		t.adj[b[1]] = append(t.adj[b[1]], tbond{to: b[0], order: order, aromatic: arom})
	}
	return t, nil
}

//Len returns the number of atoms in the target.
func (T *Target) Len() int { return len(T.symbols) }

func (T *Target) isAromatic(i int) bool {
	return T.aromatic != nil && T.aromatic[i]
}

//atomOK: does target atom t satisfy pattern atom q?
func (T *Target) atomOK(q QAtom, t int) bool {
	if q.Any {
		return true
	}
	if q.Symbol != T.symbols[t] {
		return false
	}
	return q.Aromatic == T.isAromatic(t)
}

//bondOK: does the target bond satisfy the pattern bond symbol?
func bondOK(sym byte, b tbond) bool {
	switch sym {
	case 0: //single or aromatic, and undetermined orders pass
		return b.aromatic || b.order <= 1
	case '-':
		return !b.aromatic && b.order <= 1
	case '=':
		return b.order == 2
	case '#':
		return b.order == 3
	case ':':
		return b.aromatic
	}
	return false
}

//FindAll returns every match of the pattern in the target as a slice of
//target atom indexes, one per pattern atom, in pattern-atom order. Matches
//mapping the same set of target atoms are reported once, and the list comes
//sorted by the lowest atom index of each match, so the output is
//deterministic.
func (P *Pattern) FindAll(T *Target) [][]int {
	assign := make([]int, len(P.atoms))
	for i := range assign {
		assign[i] = -1
	}
	used := make([]bool, T.Len())
	var found [][]int
	seen := make(map[string]bool)

	var match func(qi int) //backtracking over pattern atoms, in order
	match = func(qi int) {
		if qi == len(P.atoms) {
			key, set := matchKey(assign)
			if !seen[key] {
				seen[key] = true
				found = append(found, set)
			}
			return
		}
		for t := 0; t < T.Len(); t++ {
			if used[t] || !T.atomOK(P.atoms[qi], t) {
				continue
			}
			if !P.edgesOK(T, assign, qi, t) {
				continue
			}
			assign[qi] = t
			used[t] = true
			match(qi + 1)
			used[t] = false
			assign[qi] = -1
		}
	}
	match(0)
	sort.Slice(found, func(i, j int) bool {
		return lessIntSlice(found[i], found[j])
	})
	return found
}

//edgesOK checks that all pattern bonds between atom qi and already-assigned
//pattern atoms exist in the target (with a compatible bond type) when qi is
//mapped to target atom t.
func (P *Pattern) edgesOK(T *Target, assign []int, qi, t int) bool {
	for _, bi := range P.adj[qi] {
		b := P.bonds[bi]
		other := b.A
		if other == qi {
			other = b.B
		}
		if assign[other] < 0 {
			continue //not assigned yet; will be checked when it is
		}
		ok := false
		for _, tb := range T.adj[t] {
			if tb.to == assign[other] && bondOK(b.Sym, tb) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

//matchKey builds a canonical key for the set of matched atoms, plus the
//match itself in pattern order.
func matchKey(assign []int) (string, []int) {
	set := make([]int, len(assign))
	copy(set, assign)
	canon := make([]int, len(assign))
	copy(canon, assign)
	sort.Ints(canon)
	key := fmt.Sprint(canon)
	return key, set
}

func lessIntSlice(a, b []int) bool {
	as := append([]int(nil), a...)
	bs := append([]int(nil), b...)
	sort.Ints(as)
	sort.Ints(bs)
	for i := range as {
		if i >= len(bs) {
			return false
		}
		if as[i] != bs[i] {
			return as[i] < bs[i]
		}
	}
	return len(as) < len(bs)
}

//Package smarts implements the subset of the SMARTS pattern language needed
//to define coarse-grained beads: the organic-subset element symbols (aromatic
//atoms in lowercase), the wildcard "*", branches, ring closures and the bond
//symbols "-", "=", "#" and ":". Brackets, charges, stereochemistry and
//logical operators are not supported; this is a bead-mapping tool, not a
//cheminformatics toolkit.
package smarts

import (
	"fmt"
	"strings"
)

//organic-subset elements recognized outside brackets. Two-letter symbols
//must be checked before their one-letter prefixes.
var elements = []string{"Cl", "Br", "Si", "Se", "B", "C", "N", "O", "P", "S", "F", "I"}

//aromatic atoms, lowercase in patterns
var aromatics = []string{"b", "c", "n", "o", "p", "s"}

//QAtom is one atom of a compiled pattern.
type QAtom struct {
	Symbol   string //element symbol, empty for the wildcard
	Aromatic bool
	Any      bool //true for "*"
}

//QBond is one bond of a compiled pattern. Sym is the explicit bond symbol,
//or 0 for the default "single or aromatic" bond.
type QBond struct {
	A, B int
	Sym  byte
}

//Pattern is a compiled pattern: a small query graph.
type Pattern struct {
	src   string
	atoms []QAtom
	bonds []QBond
	adj   [][]int //bond indexes per atom
	ringy bool
}

//String returns the source text of the pattern.
func (P *Pattern) String() string { return P.src }

//Len returns the number of atoms in the pattern.
func (P *Pattern) Len() int { return len(P.atoms) }

//HasRing returns whether the pattern contains a ring closure. Ring patterns
//are allowed to share atoms during coarse-graining, acyclic ones are not.
func (P *Pattern) HasRing() bool { return P.ringy }

//Compile parses a pattern string into a query graph.
func Compile(s string) (*Pattern, error) {
	P := &Pattern{src: s}
	var prevStack []int //open branches; the last element is the current attachment atom
	prev := -1
	var pendingBond byte
	rings := make(map[byte]ringOpen)

	addAtom := func(at QAtom) {
		cur := len(P.atoms)
		P.atoms = append(P.atoms, at)
		if prev >= 0 {
			P.bonds = append(P.bonds, QBond{A: prev, B: cur, Sym: pendingBond})
		}
		pendingBond = 0
		prev = cur
	}

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '(':
			if prev < 0 {
				return nil, fmt.Errorf("smarts: branch before any atom in %q", s)
			}
			prevStack = append(prevStack, prev)
			i++
		case c == ')':
			if len(prevStack) == 0 {
				return nil, fmt.Errorf("smarts: unbalanced ')' in %q", s)
			}
			prev = prevStack[len(prevStack)-1]
			prevStack = prevStack[:len(prevStack)-1]
			i++
		case c == '-' || c == '=' || c == '#' || c == ':':
			pendingBond = c
			i++
		case c >= '1' && c <= '9':
			if prev < 0 {
				return nil, fmt.Errorf("smarts: ring closure before any atom in %q", s)
			}
			P.ringy = true
			if open, ok := rings[c]; ok {
				sym := pendingBond
				if sym == 0 {
					sym = open.sym
				}
				P.bonds = append(P.bonds, QBond{A: open.atom, B: prev, Sym: sym})
				delete(rings, c)
			} else {
				rings[c] = ringOpen{atom: prev, sym: pendingBond}
			}
			pendingBond = 0
			i++
		case c == '*':
			addAtom(QAtom{Any: true})
			i++
		default:
			at, adv, err := parseAtom(s[i:])
			if err != nil {
				return nil, fmt.Errorf("smarts: %v at position %d of %q", err, i, s)
			}
			addAtom(at)
			i += adv
		}
	}
	if len(prevStack) != 0 {
		return nil, fmt.Errorf("smarts: unbalanced '(' in %q", s)
	}
	if len(rings) != 0 {
		return nil, fmt.Errorf("smarts: unclosed ring closure in %q", s)
	}
	if len(P.atoms) == 0 {
		return nil, fmt.Errorf("smarts: empty pattern %q", s)
	}
	P.adj = make([][]int, len(P.atoms))
	for bi, b := range P.bonds {
		P.adj[b.A] = append(P.adj[b.A], bi)
		P.adj[b.B] = append(P.adj[b.B], bi)
	}
	return P, nil
}

//MustCompile is like Compile but panics on a malformed pattern. It is
//meant for patterns hardcoded in the program, like the Features table.
func MustCompile(s string) *Pattern {
	P, err := Compile(s)
	if err != nil {
		panic(err.Error())
	}
	return P
}

type ringOpen struct {
	atom int
	sym  byte
}

func parseAtom(s string) (QAtom, int, error) {
	for _, e := range elements {
		if strings.HasPrefix(s, e) {
			return QAtom{Symbol: e}, len(e), nil
		}
	}
	for _, a := range aromatics {
		if strings.HasPrefix(s, a) {
			return QAtom{Symbol: strings.ToUpper(a), Aromatic: true}, 1, nil
		}
	}
	return QAtom{}, 0, fmt.Errorf("unsupported symbol %q", s[0])
}

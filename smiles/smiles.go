//Package smiles converts between SMILES and DeepSMILES notation and builds
//linear polymers from a monomer with a marked repeat site. DeepSMILES
//(DOI:10.26434/chemrxiv.7097960) drops opening parentheses and ring-opening
//digits, so a monomer can be chained by plain string substitution, which is
//what Polymerize does. The subset handled here is the same organic subset the
//bead patterns use, plus bracket atoms, which pass through verbatim.
package smiles

import (
	"fmt"
	"strings"
)

//Converter translates between the two notations. Rings and Branches select
//which features of DeepSMILES are applied; both on is the common case.
type Converter struct {
	Rings    bool
	Branches bool
}

//NewConverter returns a converter with both rings and branches enabled.
func NewConverter() *Converter {
	return &Converter{Rings: true, Branches: true}
}

type tokenKind int

const (
	tokAtom tokenKind = iota
	tokOpen
	tokClose
	tokRing
)

//token is one lexical piece of either notation. Ring tokens hold a ring
//number (SMILES) or a ring size (DeepSMILES) in num; an explicit bond symbol
//before an atom or ring token is attached to it rather than emitted alone.
type token struct {
	kind tokenKind
	text string
	bond byte
	num  int
}

var elements = []string{"Cl", "Br", "Si", "Se", "B", "C", "N", "O", "P", "S", "F", "I", "H"}

func isAromatic(c byte) bool {
	return strings.IndexByte("bcnops", c) != -1
}

func isBondSym(c byte) bool {
	return strings.IndexByte("-=#:/\\", c) != -1
}

func tokenize(s string) ([]token, error) {
	toks := make([]token, 0, len(s))
	var bond byte
	attach := func(t token) {
		t.bond = bond
		bond = 0
		toks = append(toks, t)
	}
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '(':
			if bond != 0 {
				return nil, fmt.Errorf("smiles: bond symbol before '(' at position %d of %q", i, s)
			}
			toks = append(toks, token{kind: tokOpen})
			i++
		case c == ')':
			if bond != 0 {
				return nil, fmt.Errorf("smiles: dangling bond symbol at position %d of %q", i, s)
			}
			toks = append(toks, token{kind: tokClose})
			i++
		case isBondSym(c):
			if bond != 0 {
				return nil, fmt.Errorf("smiles: two bond symbols in a row at position %d of %q", i, s)
			}
			bond = c
			i++
		case c >= '1' && c <= '9':
			attach(token{kind: tokRing, num: int(c - '0')})
			i++
		case c == '%':
			if i+2 >= len(s) || s[i+1] < '0' || s[i+1] > '9' || s[i+2] < '0' || s[i+2] > '9' {
				return nil, fmt.Errorf("smiles: malformed %%nn ring number at position %d of %q", i, s)
			}
			attach(token{kind: tokRing, num: int(s[i+1]-'0')*10 + int(s[i+2]-'0')})
			i += 3
		case c == '[':
			end := strings.IndexByte(s[i:], ']')
			if end == -1 {
				return nil, fmt.Errorf("smiles: unclosed bracket atom at position %d of %q", i, s)
			}
			attach(token{kind: tokAtom, text: s[i : i+end+1]})
			i += end + 1
		case c == '*':
			attach(token{kind: tokAtom, text: "*"})
			i++
		case isAromatic(c):
			attach(token{kind: tokAtom, text: string(c)})
			i++
		default:
			matched := false
			for _, e := range elements {
				if strings.HasPrefix(s[i:], e) {
					attach(token{kind: tokAtom, text: e})
					i += len(e)
					matched = true
					break
				}
			}
			if !matched {
				return nil, fmt.Errorf("smiles: unsupported symbol %q at position %d of %q", c, i, s)
			}
		}
	}
	if bond != 0 {
		return nil, fmt.Errorf("smiles: trailing bond symbol in %q", s)
	}
	return toks, nil
}

//Encode translates a SMILES string to DeepSMILES. Ring bonds must open and
//close on the same branch; anything else is an error.
func (C *Converter) Encode(smi string) (string, error) {
	toks, err := tokenize(smi)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	var stack []int //atom ordinals along the current path
	var marks []int //stack lengths at each open branch
	type opening struct {
		atom int
		bond byte
	}
	open := make(map[int]opening)
	natoms := 0
	for _, t := range toks {
		switch t.kind {
		case tokAtom:
			if t.bond != 0 {
				out.WriteByte(t.bond)
			}
			out.WriteString(t.text)
			natoms++
			stack = append(stack, natoms)
		case tokOpen:
			if !C.Branches {
				out.WriteByte('(')
			}
			marks = append(marks, len(stack))
		case tokClose:
			if len(marks) == 0 {
				return "", fmt.Errorf("smiles: unbalanced ')' in %q", smi)
			}
			m := marks[len(marks)-1]
			marks = marks[:len(marks)-1]
			if C.Branches {
				out.WriteString(strings.Repeat(")", len(stack)-m))
			} else {
				out.WriteByte(')')
			}
			stack = stack[:m]
		case tokRing:
			if !C.Rings {
				if t.bond != 0 {
					out.WriteByte(t.bond)
				}
				out.WriteString(ringText(t.num))
				continue
			}
			if o, ok := open[t.num]; ok {
				delete(open, t.num)
				idx := -1
				for k := len(stack) - 1; k >= 0; k-- {
					if stack[k] == o.atom {
						idx = k
						break
					}
				}
				if idx == -1 {
					return "", fmt.Errorf("smiles: ring %d opens and closes on different branches in %q", t.num, smi)
				}
				b := t.bond
				if b == 0 {
					b = o.bond
				}
				if b != 0 {
					out.WriteByte(b)
				}
				out.WriteString(ringText(len(stack) - idx))
			} else {
				if len(stack) == 0 {
					return "", fmt.Errorf("smiles: ring number before any atom in %q", smi)
				}
				open[t.num] = opening{atom: stack[len(stack)-1], bond: t.bond}
			}
		}
	}
	if len(marks) != 0 {
		return "", fmt.Errorf("smiles: unbalanced '(' in %q", smi)
	}
	if len(open) != 0 {
		return "", fmt.Errorf("smiles: unclosed ring in %q", smi)
	}
	return out.String(), nil
}

func ringText(n int) string {
	if n < 10 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%%%02d", n)
}

//datom is one atom of the graph Decode rebuilds.
type datom struct {
	text   string
	bond   byte //bond to the parent
	parent int
}

type ringBond struct {
	from, to int //to was pushed earlier
	bond     byte
}

//Decode translates a DeepSMILES string back to SMILES.
func (C *Converter) Decode(deep string) (string, error) {
	toks, err := tokenize(deep)
	if err != nil {
		return "", err
	}
	var atoms []datom
	var rings []ringBond
	var stack []int
	for _, t := range toks {
		switch t.kind {
		case tokAtom:
			parent := -1
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			} else if len(atoms) > 0 {
				return "", fmt.Errorf("smiles: disconnected atom %q in %q", t.text, deep)
			}
			atoms = append(atoms, datom{text: t.text, bond: t.bond, parent: parent})
			stack = append(stack, len(atoms)-1)
		case tokOpen:
			return "", fmt.Errorf("smiles: '(' is not part of DeepSMILES, in %q", deep)
		case tokClose:
			if len(stack) == 0 {
				return "", fmt.Errorf("smiles: too many ')' in %q", deep)
			}
			stack = stack[:len(stack)-1]
		case tokRing:
			if t.num < 2 || t.num > len(stack) {
				return "", fmt.Errorf("smiles: ring size %d with only %d atoms on the path, in %q", t.num, len(stack), deep)
			}
			rings = append(rings, ringBond{
				from: stack[len(stack)-1],
				to:   stack[len(stack)-t.num],
				bond: t.bond,
			})
		}
	}
	if len(atoms) == 0 {
		return "", fmt.Errorf("smiles: empty string")
	}

	kids := make([][]int, len(atoms))
	for i, a := range atoms {
		if a.parent != -1 {
			kids[a.parent] = append(kids[a.parent], i)
		}
	}
	//ring closure digits per atom: the earlier endpoint opens, the later
	//one closes and carries the bond symbol
	type closure struct {
		num     int
		bond    byte
		closing bool
	}
	closures := make(map[int][]closure)
	for i, r := range rings {
		closures[r.to] = append(closures[r.to], closure{num: i + 1})
		closures[r.from] = append(closures[r.from], closure{num: i + 1, bond: r.bond, closing: true})
	}

	var out strings.Builder
	var write func(i int)
	write = func(i int) {
		out.WriteString(atoms[i].text)
		for _, cl := range closures[i] {
			if cl.closing && cl.bond != 0 {
				out.WriteByte(cl.bond)
			}
			out.WriteString(ringText(cl.num))
		}
		ch := kids[i]
		for j, c := range ch {
			if j < len(ch)-1 {
				out.WriteByte('(')
				if atoms[c].bond != 0 {
					out.WriteByte(atoms[c].bond)
				}
				write(c)
				out.WriteByte(')')
			} else {
				if atoms[c].bond != 0 {
					out.WriteByte(atoms[c].bond)
				}
				write(c)
			}
		}
	}
	write(0)
	return out.String(), nil
}

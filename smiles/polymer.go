package smiles

import (
	"fmt"
	"strings"
)

//the site marker can't collide with anything tokenize accepts
const siteMark = "\x00"

//Polymerize builds the SMILES string of a linear polymer from the DeepSMILES
//string of its monomer, repeated length times. The repeat site, the atom the
//next monomer unit attaches to, is marked by surrounding it with asterisks,
//e.g. "cc*c*ccs5" for a thiophene chain growing from its third ring atom.
//Exactly one site must be marked, around exactly one atom.
//
//It works because DeepSMILES has no opening parentheses: appending enough
//branch closures after the site atom returns the notation to it, so the next
//unit can be pasted right there as a branch and the whole chain stays a valid
//string. The result is converted back to plain SMILES.
func Polymerize(monomer string, length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("smiles: polymer length must be positive, got %d", length)
	}
	marks := markIndexes(monomer)
	if len(marks) == 0 {
		return "", fmt.Errorf("smiles: mark the repeat site with *x* in %q", monomer)
	}
	if len(marks) != 2 || marks[1]-marks[0] != 2 {
		return "", fmt.Errorf("smiles: mark exactly one single-atom repeat site with *x*, in %q", monomer)
	}
	plain := monomer[:marks[0]] + monomer[marks[0]+1:marks[1]] + monomer[marks[1]+1:]

	//closing enough branches after the site atom returns the notation to
	//it: one ")" per monomer atom still open at the end of the string
	natoms, nclosed, err := countTokens(plain)
	if err != nil {
		return "", err
	}
	if nclosed >= natoms {
		return "", fmt.Errorf("smiles: monomer %q closes more branches than it has atoms", monomer)
	}
	closers := strings.Repeat(")", natoms-nclosed)
	template := monomer[:marks[0]] + monomer[marks[0]+1:marks[1]] + siteMark + closers + monomer[marks[1]+1:]

	deep := plain //the last unit has nothing attached to its site
	for i := 1; i < length; i++ {
		deep = strings.Replace(template, siteMark, deep, 1)
	}
	smi, err := NewConverter().Decode(deep)
	if err != nil {
		return "", err
	}
	return smi, nil
}

func markIndexes(s string) []int {
	var ret []int
	for i := 0; i < len(s); i++ {
		if s[i] == '*' {
			ret = append(ret, i)
		}
	}
	return ret
}

func countTokens(s string) (atoms, closed int, err error) {
	toks, err := tokenize(s)
	if err != nil {
		return 0, 0, err
	}
	for _, t := range toks {
		switch t.kind {
		case tokAtom:
			atoms++
		case tokClose:
			closed++
		}
	}
	return atoms, closed, nil
}

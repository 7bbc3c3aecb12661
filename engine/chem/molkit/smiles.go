package molkit

import (
	"fmt"
	"strings"
)

// ParseError reports where and why SMILES or MOL-block parsing failed. It is
// converted into a reportable QC outcome upstream, never surfaced as a
// workflow failure.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Pos, e.Msg)
}

type pendingBond struct {
	set      bool
	order    int
	aromatic bool
}

type ringRef struct {
	atom int
	bond pendingBond
}

type smilesParser struct {
	src   string
	pos   int
	m     *Molecule
	prev  int
	stack []int
	bond  pendingBond
	rings map[int]ringRef
}

// ParseSMILES parses a SMILES string covering the organic subset, bracket
// atoms, branches, ring closures (including %nn) and dot-separated components.
// Directional bond and chirality marks are recorded but not interpreted.
func ParseSMILES(src string) (*Molecule, error) {
	p := &smilesParser{
		src:   src,
		m:     &Molecule{},
		prev:  -1,
		rings: make(map[int]ringRef),
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.m, nil
}

func (p *smilesParser) run() error {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '(':
			if p.prev < 0 {
				return p.errorf("branch opened before any atom")
			}
			if p.bond.set {
				return p.errorf("bond symbol before branch")
			}
			p.stack = append(p.stack, p.prev)
			p.pos++
		case c == ')':
			if len(p.stack) == 0 {
				return p.errorf("unmatched closing parenthesis")
			}
			if p.bond.set {
				return p.errorf("dangling bond before closing parenthesis")
			}
			p.prev = p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]
			p.pos++
		case c == '-':
			if err := p.setBond(1, false); err != nil {
				return err
			}
			p.pos++
		case c == '=':
			if err := p.setBond(2, false); err != nil {
				return err
			}
			p.pos++
		case c == '#':
			if err := p.setBond(3, false); err != nil {
				return err
			}
			p.pos++
		case c == ':':
			if err := p.setBond(1, true); err != nil {
				return err
			}
			p.pos++
		case c == '/' || c == '\\':
			if err := p.setBond(1, false); err != nil {
				return err
			}
			p.m.StereoMarks = true
			p.pos++
		case c == '.':
			if p.bond.set {
				return p.errorf("bond symbol before dot separator")
			}
			p.prev = -1
			p.pos++
		case c >= '0' && c <= '9':
			if err := p.ringClosure(int(c - '0')); err != nil {
				return err
			}
			p.pos++
		case c == '%':
			if p.pos+2 >= len(p.src) || !isDigit(p.src[p.pos+1]) || !isDigit(p.src[p.pos+2]) {
				return p.errorf("%%nn ring closure needs two digits")
			}
			num := int(p.src[p.pos+1]-'0')*10 + int(p.src[p.pos+2]-'0')
			if err := p.ringClosure(num); err != nil {
				return err
			}
			p.pos += 3
		case c == '[':
			atom, err := p.parseBracketAtom()
			if err != nil {
				return err
			}
			if err := p.attach(atom); err != nil {
				return err
			}
		default:
			atom, ok := p.parseOrganicAtom()
			if !ok {
				return p.errorf("unexpected character %q", c)
			}
			if err := p.attach(atom); err != nil {
				return err
			}
		}
	}
	if len(p.stack) > 0 {
		return p.errorf("unclosed branch")
	}
	if len(p.rings) > 0 {
		return p.errorf("unclosed ring bond")
	}
	if p.bond.set {
		return p.errorf("dangling bond at end of input")
	}
	if p.m.Empty() {
		return p.errorf("no atoms in input")
	}
	return nil
}

func (p *smilesParser) errorf(format string, args ...any) error {
	return &ParseError{Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *smilesParser) setBond(order int, aromatic bool) error {
	if p.bond.set {
		return p.errorf("consecutive bond symbols")
	}
	p.bond = pendingBond{set: true, order: order, aromatic: aromatic}
	return nil
}

func (p *smilesParser) attach(atom Atom) error {
	idx := p.m.AddAtom(atom)
	if p.prev >= 0 {
		order, aromatic := p.takeBond(p.prev, idx)
		if err := p.m.AddBond(p.prev, idx, order, aromatic); err != nil {
			return p.errorf("%v", err)
		}
	} else if p.bond.set {
		return p.errorf("bond with no preceding atom")
	}
	p.prev = idx
	return nil
}

// takeBond resolves the pending bond between two atoms: an explicit symbol
// wins, otherwise two aromatic atoms bond aromatically and everything else
// gets a single bond.
func (p *smilesParser) takeBond(a, b int) (int, bool) {
	bond := p.bond
	p.bond = pendingBond{}
	if bond.set {
		return bond.order, bond.aromatic
	}
	if p.m.Atoms[a].Aromatic && p.m.Atoms[b].Aromatic {
		return 1, true
	}
	return 1, false
}

func (p *smilesParser) ringClosure(num int) error {
	if p.prev < 0 {
		return p.errorf("ring closure before any atom")
	}
	bond := p.bond
	p.bond = pendingBond{}
	ref, open := p.rings[num]
	if !open {
		p.rings[num] = ringRef{atom: p.prev, bond: bond}
		return nil
	}
	delete(p.rings, num)
	if ref.atom == p.prev {
		return p.errorf("ring bond %d closes on its own atom", num)
	}
	order, aromatic := 1, false
	switch {
	case bond.set && ref.bond.set:
		if bond.order != ref.bond.order || bond.aromatic != ref.bond.aromatic {
			return p.errorf("conflicting bond orders on ring closure %d", num)
		}
		order, aromatic = bond.order, bond.aromatic
	case bond.set:
		order, aromatic = bond.order, bond.aromatic
	case ref.bond.set:
		order, aromatic = ref.bond.order, ref.bond.aromatic
	default:
		if p.m.Atoms[ref.atom].Aromatic && p.m.Atoms[p.prev].Aromatic {
			order, aromatic = 1, true
		}
	}
	if err := p.m.AddBond(ref.atom, p.prev, order, aromatic); err != nil {
		return p.errorf("%v", err)
	}
	return nil
}

func (p *smilesParser) parseOrganicAtom() (Atom, bool) {
	rest := p.src[p.pos:]
	for _, two := range []string{"Cl", "Br"} {
		if strings.HasPrefix(rest, two) {
			p.pos += 2
			return Atom{Symbol: two, Number: atomicNumbers[two], HCount: -1}, true
		}
	}
	c := rest[0]
	sym := string(c)
	if organicSubset[sym] {
		p.pos++
		return Atom{Symbol: sym, Number: atomicNumbers[sym], HCount: -1}, true
	}
	if elem, ok := aromaticSymbols[sym]; ok {
		p.pos++
		return Atom{Symbol: elem, Number: atomicNumbers[elem], Aromatic: true, HCount: -1}, true
	}
	return Atom{}, false
}

func (p *smilesParser) parseBracketAtom() (Atom, error) {
	start := p.pos
	end := strings.IndexByte(p.src[start:], ']')
	if end < 0 {
		return Atom{}, p.errorf("unterminated bracket atom")
	}
	body := p.src[start+1 : start+end]
	p.pos = start + end + 1

	atom := Atom{Bracket: true, HCount: 0}
	i := 0
	// isotope
	iso := 0
	for i < len(body) && isDigit(body[i]) {
		iso = iso*10 + int(body[i]-'0')
		i++
	}
	atom.Isotope = iso
	// element symbol; aromatic two-letter tokens (se, as) before single letters
	sym := ""
	switch {
	case i+1 < len(body) && aromaticSymbols[body[i:i+2]] != "":
		atom.Symbol = aromaticSymbols[body[i:i+2]]
		atom.Aromatic = true
		i += 2
	case i < len(body) && body[i] >= 'a' && body[i] <= 'z' && aromaticSymbols[string(body[i])] != "":
		atom.Symbol = aromaticSymbols[string(body[i])]
		atom.Aromatic = true
		i++
	case i < len(body) && body[i] >= 'A' && body[i] <= 'Z':
		sym = string(body[i])
		i++
		if i < len(body) && body[i] >= 'a' && body[i] <= 'z' {
			if _, ok := atomicNumbers[sym+string(body[i])]; ok {
				sym += string(body[i])
				i++
			}
		}
		atom.Symbol = sym
	default:
		return Atom{}, &ParseError{Pos: start, Msg: "bracket atom missing element symbol"}
	}
	num, ok := atomicNumbers[atom.Symbol]
	if !ok {
		return Atom{}, &ParseError{Pos: start, Msg: fmt.Sprintf("unknown element %q", atom.Symbol)}
	}
	atom.Number = num
	// chirality marks are recorded, not interpreted
	for i < len(body) && body[i] == '@' {
		atom.Chiral = true
		p.m.StereoMarks = true
		i++
	}
	if atom.Chiral {
		// named chiral classes like @TH1 or @AL2
		for i < len(body) && (body[i] >= 'A' && body[i] <= 'Z' || isDigit(body[i])) {
			if body[i] == 'H' && (i+1 >= len(body) || !isUpper(body[i+1])) {
				break
			}
			i++
		}
	}
	// explicit hydrogens
	if i < len(body) && body[i] == 'H' {
		i++
		count := 1
		if i < len(body) && isDigit(body[i]) {
			count = 0
			for i < len(body) && isDigit(body[i]) {
				count = count*10 + int(body[i]-'0')
				i++
			}
		}
		atom.HCount = count
	}
	// formal charge
	if i < len(body) && (body[i] == '+' || body[i] == '-') {
		sign := 1
		if body[i] == '-' {
			sign = -1
		}
		symCh := body[i]
		i++
		magnitude := 1
		switch {
		case i < len(body) && isDigit(body[i]):
			magnitude = 0
			for i < len(body) && isDigit(body[i]) {
				magnitude = magnitude*10 + int(body[i]-'0')
				i++
			}
		default:
			for i < len(body) && body[i] == symCh {
				magnitude++
				i++
			}
		}
		atom.Charge = sign * magnitude
	}
	// atom class (ignored)
	if i < len(body) && body[i] == ':' {
		i++
		for i < len(body) && isDigit(body[i]) {
			i++
		}
	}
	if i != len(body) {
		return Atom{}, &ParseError{Pos: start, Msg: fmt.Sprintf("trailing bracket content %q", body[i:])}
	}
	return atom, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

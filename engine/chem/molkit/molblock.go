package molkit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseMolBlock reads a V2000 connection table. Coordinates are discarded
// (the workflow regenerates layout on output), charges come from M  CHG
// properties, isotopes from M  ISO, an explicit hydrogen-count designator in
// the atom line overrides implicit-H inference, and bond type 4 marks both
// endpoints aromatic.
func ParseMolBlock(src string) (*Molecule, error) {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	if len(lines) < 4 {
		return nil, &ParseError{Pos: 0, Msg: "MOL block shorter than header"}
	}
	counts := lines[3]
	natoms, err := countsField(counts, 0)
	if err != nil {
		return nil, &ParseError{Pos: 3, Msg: "bad atom count"}
	}
	nbonds, err := countsField(counts, 3)
	if err != nil {
		return nil, &ParseError{Pos: 3, Msg: "bad bond count"}
	}
	if len(lines) < 4+natoms+nbonds {
		return nil, &ParseError{Pos: 3, Msg: "connection table truncated"}
	}

	m := &Molecule{}
	for i := 0; i < natoms; i++ {
		fields := strings.Fields(lines[4+i])
		if len(fields) < 4 {
			return nil, &ParseError{Pos: 4 + i, Msg: "atom line too short"}
		}
		sym := fields[3]
		num, ok := atomicNumbers[sym]
		if !ok {
			return nil, &ParseError{Pos: 4 + i, Msg: fmt.Sprintf("unknown element %q", sym)}
		}
		a := Atom{Symbol: sym, Number: num, HCount: -1}
		// field 7 is the hydrogen-count designator: n means n-1 hydrogens
		if len(fields) > 7 {
			if h, err := strconv.Atoi(fields[7]); err == nil && h > 0 {
				a.HCount = h - 1
			}
		}
		m.AddAtom(a)
	}
	for i := 0; i < nbonds; i++ {
		line := lines[4+natoms+i]
		a1, a2, typ, err := bondFields(line)
		if err != nil {
			return nil, &ParseError{Pos: 4 + natoms + i, Msg: err.Error()}
		}
		order, aromatic := typ, false
		if typ == 4 {
			order, aromatic = 1, true
		}
		if order < 1 || order > 3 {
			return nil, &ParseError{Pos: 4 + natoms + i, Msg: fmt.Sprintf("unsupported bond type %d", typ)}
		}
		if err := m.AddBond(a1-1, a2-1, order, aromatic); err != nil {
			return nil, &ParseError{Pos: 4 + natoms + i, Msg: err.Error()}
		}
		if aromatic {
			m.Atoms[a1-1].Aromatic = true
			m.Atoms[a2-1].Aromatic = true
		}
	}

	ended := false
	for li := 4 + natoms + nbonds; li < len(lines); li++ {
		line := strings.TrimRight(lines[li], " ")
		switch {
		case line == "M  END":
			ended = true
		case strings.HasPrefix(line, "M  CHG"):
			if err := applyAtomValues(m, line, "M  CHG", li, func(a *Atom, v int) { a.Charge = v }); err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, "M  ISO"):
			if err := applyAtomValues(m, line, "M  ISO", li, func(a *Atom, v int) { a.Isotope = v }); err != nil {
				return nil, err
			}
		}
		if ended {
			break
		}
	}
	if !ended {
		return nil, &ParseError{Pos: len(lines) - 1, Msg: "missing M  END"}
	}
	return m, nil
}

// countsField reads a 3-character fixed-width integer from the counts line.
func countsField(line string, start int) (int, error) {
	if len(line) < start+3 {
		return 0, fmt.Errorf("counts line too short")
	}
	return strconv.Atoi(strings.TrimSpace(line[start : start+3]))
}

// bondFields reads the fixed 3-character columns of a bond line, falling back
// to whitespace splitting for writers that pad differently.
func bondFields(line string) (a1, a2, typ int, err error) {
	if len(line) >= 9 {
		a1, err = strconv.Atoi(strings.TrimSpace(line[0:3]))
		if err == nil {
			a2, err = strconv.Atoi(strings.TrimSpace(line[3:6]))
		}
		if err == nil {
			typ, err = strconv.Atoi(strings.TrimSpace(line[6:9]))
		}
		if err == nil {
			return a1, a2, typ, nil
		}
	}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return 0, 0, 0, fmt.Errorf("bond line too short")
	}
	if a1, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, 0, err
	}
	if a2, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, 0, err
	}
	if typ, err = strconv.Atoi(fields[2]); err != nil {
		return 0, 0, 0, err
	}
	return a1, a2, typ, nil
}

// applyAtomValues reads an (atom index, value) property list such as M  CHG
// or M  ISO and applies each value through set.
func applyAtomValues(m *Molecule, line, label string, li int, set func(*Atom, int)) error {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return &ParseError{Pos: li, Msg: "malformed " + label + " line"}
	}
	count, err := strconv.Atoi(fields[2])
	if err != nil || len(fields) < 3+2*count {
		return &ParseError{Pos: li, Msg: "malformed " + label + " line"}
	}
	for k := 0; k < count; k++ {
		idx, err := strconv.Atoi(fields[3+2*k])
		if err != nil || idx < 1 || idx > len(m.Atoms) {
			return &ParseError{Pos: li, Msg: label + " references unknown atom"}
		}
		val, err := strconv.Atoi(fields[4+2*k])
		if err != nil {
			return &ParseError{Pos: li, Msg: "malformed " + label + " value"}
		}
		set(&m.Atoms[idx-1], val)
	}
	return nil
}

// WriteMolBlock serializes a V2000 connection table with atoms in canonical
// rank order and regenerated 2D coordinates. Charges and isotopes go out as
// M  CHG / M  ISO properties; atoms whose hydrogen count a reader could not
// re-infer carry the explicit count in the atom line, so the block encodes
// the same molecule as the canonical SMILES.
func WriteMolBlock(m *Molecule, ranks []int) string {
	order := make([]int, len(m.Atoms))
	for i, r := range ranks {
		order[r] = i
	}
	pos := make([]int, len(m.Atoms))
	for outIdx, atomIdx := range order {
		pos[atomIdx] = outIdx
	}
	coords := Layout(m, ranks)

	var sb strings.Builder
	sb.WriteString("\n  molkit  2D\n\n")
	fmt.Fprintf(&sb, "%3d%3d  0  0  0  0  0  0  0  0999 V2000\n", len(m.Atoms), len(m.Bonds))
	for _, atomIdx := range order {
		c := coords[atomIdx]
		fmt.Fprintf(&sb, "%10.4f%10.4f%10.4f %-3s 0  0  0%3d  0  0  0  0  0  0  0  0\n",
			c[0], c[1], 0.0, m.Atoms[atomIdx].Symbol, hydrogenField(m, atomIdx))
	}
	type bondLine struct{ from, to, typ int }
	bonds := make([]bondLine, 0, len(m.Bonds))
	for bi := range m.Bonds {
		b := &m.Bonds[bi]
		typ := b.Order
		if b.Aromatic {
			typ = 4
		}
		from, to := pos[b.From]+1, pos[b.To]+1
		if from > to {
			from, to = to, from
		}
		bonds = append(bonds, bondLine{from, to, typ})
	}
	sort.Slice(bonds, func(a, b int) bool {
		if bonds[a].from != bonds[b].from {
			return bonds[a].from < bonds[b].from
		}
		return bonds[a].to < bonds[b].to
	})
	for _, b := range bonds {
		fmt.Fprintf(&sb, "%3d%3d%3d  0\n", b.from, b.to, b.typ)
	}
	writePropertyLines(&sb, m, "M  CHG", order, pos, func(a *Atom) int { return a.Charge })
	writePropertyLines(&sb, m, "M  ISO", order, pos, func(a *Atom) int { return a.Isotope })
	sb.WriteString("M  END\n")
	return sb.String()
}

// hydrogenField returns the V2000 hydrogen-count designator (count+1) when
// the atom's explicit hydrogen count differs from what implicit inference
// would derive, 0 otherwise.
func hydrogenField(m *Molecule, i int) int {
	a := &m.Atoms[i]
	if a.HCount < 0 {
		return 0
	}
	saved := a.HCount
	a.HCount = -1
	inferred := m.ImplicitHCount(i)
	a.HCount = saved
	if inferred == a.HCount {
		return 0
	}
	return a.HCount + 1
}

func writePropertyLines(sb *strings.Builder, m *Molecule, label string, order, pos []int, value func(*Atom) int) {
	type pair struct{ atom, val int }
	var pairs []pair
	for _, atomIdx := range order {
		if v := value(&m.Atoms[atomIdx]); v != 0 {
			pairs = append(pairs, pair{pos[atomIdx] + 1, v})
		}
	}
	for start := 0; start < len(pairs); start += 8 {
		end := start + 8
		if end > len(pairs) {
			end = len(pairs)
		}
		fmt.Fprintf(sb, "%s%3d", label, end-start)
		for _, p := range pairs[start:end] {
			fmt.Fprintf(sb, "%4d%4d", p.atom, p.val)
		}
		sb.WriteByte('\n')
	}
}

// Package molkit is the built-in cheminformatics engine: a pure-Go
// parse/sanitize/canonicalize pipeline over a small molecular graph model.
// It covers the organic subset of SMILES plus V2000 MOL-blocks, which is the
// working range of the annotation workflow; anything beyond that belongs to
// the remote engine.
package molkit

import (
	"fmt"
	"sort"
)

// Atom is a node in the molecular graph.
type Atom struct {
	Symbol   string
	Number   int
	Aromatic bool
	Charge   int
	Isotope  int
	// HCount is the explicit hydrogen count of a bracket atom; -1 means
	// implicit (derived from default valences).
	HCount  int
	Bracket bool
	Chiral  bool
}

// Bond is an edge in the molecular graph. Aromatic bonds carry Order 1.
type Bond struct {
	From     int
	To       int
	Order    int
	Aromatic bool
}

// Molecule is a mutable molecular graph.
type Molecule struct {
	Atoms []Atom
	Bonds []Bond
	// StereoMarks records that the source notation carried stereo
	// descriptors (chiral atoms or directional bonds).
	StereoMarks bool
}

func (m *Molecule) Empty() bool {
	return len(m.Atoms) == 0
}

func (m *Molecule) AddAtom(a Atom) int {
	m.Atoms = append(m.Atoms, a)
	return len(m.Atoms) - 1
}

func (m *Molecule) AddBond(from, to, order int, aromatic bool) error {
	if from == to {
		return fmt.Errorf("self-bond on atom %d", from+1)
	}
	if from < 0 || to < 0 || from >= len(m.Atoms) || to >= len(m.Atoms) {
		return fmt.Errorf("bond references unknown atom (%d-%d)", from+1, to+1)
	}
	if m.BondBetween(from, to) != nil {
		return fmt.Errorf("duplicate bond between atoms %d and %d", from+1, to+1)
	}
	m.Bonds = append(m.Bonds, Bond{From: from, To: to, Order: order, Aromatic: aromatic})
	return nil
}

func (m *Molecule) BondBetween(i, j int) *Bond {
	for bi := range m.Bonds {
		b := &m.Bonds[bi]
		if (b.From == i && b.To == j) || (b.From == j && b.To == i) {
			return b
		}
	}
	return nil
}

// Neighbors returns the adjacent atom indices of i in bond-insertion order.
func (m *Molecule) Neighbors(i int) []int {
	var out []int
	for bi := range m.Bonds {
		b := &m.Bonds[bi]
		switch i {
		case b.From:
			out = append(out, b.To)
		case b.To:
			out = append(out, b.From)
		}
	}
	return out
}

func (m *Molecule) Degree(i int) int {
	return len(m.Neighbors(i))
}

// usedValence sums the bond orders consumed at atom i. Aromatic bonds count
// as one, plus the delocalization increment owed by the aromatic atom itself.
func (m *Molecule) usedValence(i int) int {
	used := 0
	for bi := range m.Bonds {
		b := &m.Bonds[bi]
		if b.From != i && b.To != i {
			continue
		}
		if b.Aromatic {
			used++
		} else {
			used += b.Order
		}
	}
	if m.Atoms[i].Aromatic {
		used += m.aromaticIncrement(i)
	}
	return used
}

// aromaticIncrement accounts for the delocalized double bond an aromatic atom
// contributes to its ring system. Pyrrole-type nitrogens (explicit hydrogen or
// three-coordinate) donate a lone pair instead and get no increment, as do
// aromatic oxygen and sulfur.
func (m *Molecule) aromaticIncrement(i int) int {
	a := &m.Atoms[i]
	switch a.Symbol {
	case "C", "B":
		return 1
	case "N", "P":
		if a.HCount > 0 || m.Degree(i) == 3 {
			return 0
		}
		return 1
	default:
		return 0
	}
}

// ImplicitHCount derives the implicit hydrogen count of atom i. Bracket atoms
// carry their hydrogens explicitly and never gain implicit ones.
func (m *Molecule) ImplicitHCount(i int) int {
	a := &m.Atoms[i]
	if a.HCount >= 0 {
		return 0
	}
	used := m.usedValence(i)
	for _, v := range defaultValences(a.Symbol, a.Charge) {
		if used <= v {
			return v - used
		}
	}
	return 0
}

// TotalHCount is the explicit or implicit hydrogen count of atom i.
func (m *Molecule) TotalHCount(i int) int {
	if a := &m.Atoms[i]; a.HCount >= 0 {
		return a.HCount
	}
	return m.ImplicitHCount(i)
}

// ringBonds reports, per bond index, whether the bond lies on a cycle: a bond
// is a ring bond iff its endpoints stay connected when the bond is removed.
func (m *Molecule) ringBonds() []bool {
	out := make([]bool, len(m.Bonds))
	for bi := range m.Bonds {
		out[bi] = m.connectedWithout(m.Bonds[bi].From, m.Bonds[bi].To, bi)
	}
	return out
}

func (m *Molecule) connectedWithout(from, to, skipBond int) bool {
	seen := make([]bool, len(m.Atoms))
	queue := []int{from}
	seen[from] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			return true
		}
		for bi := range m.Bonds {
			if bi == skipBond {
				continue
			}
			b := &m.Bonds[bi]
			var next int
			switch cur {
			case b.From:
				next = b.To
			case b.To:
				next = b.From
			default:
				continue
			}
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

// ringsOfSize enumerates simple cycles of exactly n atoms, each reported once
// with its atoms in traversal order.
func (m *Molecule) ringsOfSize(n int) [][]int {
	var rings [][]int
	seen := make(map[string]bool)
	path := make([]int, 0, n)
	inPath := make([]bool, len(m.Atoms))
	var dfs func(start, cur int)
	dfs = func(start, cur int) {
		path = append(path, cur)
		inPath[cur] = true
		for _, next := range m.Neighbors(cur) {
			if len(path) == n {
				if next == start {
					key := ringKey(path)
					if !seen[key] {
						seen[key] = true
						ring := make([]int, n)
						copy(ring, path)
						rings = append(rings, ring)
					}
				}
				continue
			}
			if next != start && !inPath[next] && next > start {
				dfs(start, next)
			}
		}
		inPath[cur] = false
		path = path[:len(path)-1]
	}
	for start := range m.Atoms {
		dfs(start, start)
	}
	return rings
}

func ringKey(path []int) string {
	sorted := make([]int, len(path))
	copy(sorted, path)
	sort.Ints(sorted)
	return fmt.Sprint(sorted)
}

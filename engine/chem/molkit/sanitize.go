package molkit

import "fmt"

// Sanitize normalizes aromatic perception and verifies atom valences in
// place. It reports whether the molecule is chemically consistent plus a
// warning per finding; warnings are advisory and never abort the pipeline.
func Sanitize(m *Molecule) (bool, []string) {
	aromatizeSixRings(m)
	var warnings []string
	warnings = append(warnings, checkAromaticConsistency(m)...)
	warnings = append(warnings, checkValences(m)...)
	return len(warnings) == 0, warnings
}

// aromatizeSixRings folds Kekulé benzene-like rings into the aromatic form so
// that c1ccccc1 and C1=CC=CC=C1 canonicalize identically. Only six-membered
// rings of uncharged carbon and nitrogen with strictly alternating single and
// double bonds qualify.
func aromatizeSixRings(m *Molecule) {
	var qualified [][]int
	for _, ring := range m.ringsOfSize(6) {
		if kekulizedRing(m, ring) {
			qualified = append(qualified, ring)
		}
	}
	// mark after scanning so a fused ring is judged on the original orders,
	// not on a neighbor ring already folded
	for _, ring := range qualified {
		for _, i := range ring {
			m.Atoms[i].Aromatic = true
		}
		for k, i := range ring {
			j := ring[(k+1)%len(ring)]
			b := m.BondBetween(i, j)
			b.Order = 1
			b.Aromatic = true
		}
	}
}

func kekulizedRing(m *Molecule, ring []int) bool {
	for _, i := range ring {
		a := &m.Atoms[i]
		if a.Aromatic || a.Charge != 0 {
			return false
		}
		if a.Symbol != "C" && a.Symbol != "N" {
			return false
		}
	}
	prev := 0
	for k, i := range ring {
		j := ring[(k+1)%len(ring)]
		b := m.BondBetween(i, j)
		if b == nil || b.Aromatic || (b.Order != 1 && b.Order != 2) {
			return false
		}
		if k > 0 && b.Order == prev {
			return false
		}
		prev = b.Order
	}
	// six alternating bonds always close consistently; first vs last is
	// implied by the pairwise check over an even cycle
	return true
}

// checkAromaticConsistency verifies that aromatic atoms sit on aromatic rings
// and that aromatic bonds connect aromatic atoms.
func checkAromaticConsistency(m *Molecule) []string {
	var warnings []string
	ring := m.ringBonds()
	for i := range m.Atoms {
		if !m.Atoms[i].Aromatic {
			continue
		}
		count := 0
		for bi := range m.Bonds {
			b := &m.Bonds[bi]
			if b.Aromatic && ring[bi] && (b.From == i || b.To == i) {
				count++
			}
		}
		if count < 2 {
			warnings = append(warnings, fmt.Sprintf("aromatic_error:%s%d", m.Atoms[i].Symbol, i+1))
		}
	}
	for bi := range m.Bonds {
		b := &m.Bonds[bi]
		if b.Aromatic && (!m.Atoms[b.From].Aromatic || !m.Atoms[b.To].Aromatic) {
			warnings = append(warnings, fmt.Sprintf("aromatic_bond_error:%d-%d", b.From+1, b.To+1))
		}
	}
	return warnings
}

// checkValences flags atoms whose bond orders plus hydrogens exceed every
// allowed valence state of the element.
func checkValences(m *Molecule) []string {
	var warnings []string
	for i := range m.Atoms {
		a := &m.Atoms[i]
		allowed := defaultValences(a.Symbol, a.Charge)
		if len(allowed) == 0 {
			continue
		}
		total := m.usedValence(i) + m.TotalHCount(i)
		if total > allowed[len(allowed)-1] {
			warnings = append(warnings, fmt.Sprintf("valence_error:%s%d", a.Symbol, i+1))
		}
	}
	return warnings
}

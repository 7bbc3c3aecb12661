package molkit

import (
	"fmt"
	"sort"
	"strings"
)

// CanonicalRanks assigns every atom a unique canonical rank, independent of
// input atom order. Ranks start from node invariants, are refined against
// sorted neighbor ranks until stable, and remaining ties are broken one orbit
// at a time so the result stays reproducible across equivalent inputs.
func CanonicalRanks(m *Molecule) []int {
	n := len(m.Atoms)
	if n == 0 {
		return nil
	}
	keys := make([]string, n)
	for i := range m.Atoms {
		a := &m.Atoms[i]
		ar := 0
		if a.Aromatic {
			ar = 1
		}
		keys[i] = fmt.Sprintf("%03d|%d|%02d|%02d|%+04d|%04d|%02d",
			a.Number, ar, m.Degree(i), m.TotalHCount(i), a.Charge, a.Isotope, m.usedValence(i))
	}
	ranks := refineRanks(m, denseRanks(keys))
	for maxRank(ranks) < n-1 {
		tied := lowestTiedRank(ranks)
		chosen := -1
		for i, r := range ranks {
			if r == tied {
				chosen = i
				break
			}
		}
		for i := range ranks {
			if ranks[i] > tied || (ranks[i] == tied && i != chosen) {
				ranks[i]++
			}
		}
		ranks = refineRanks(m, ranks)
	}
	return ranks
}

// refineRanks iterates neighborhood refinement to a fixed point. The current
// rank is the primary sort key, so classes only ever split and the loop
// terminates in at most len(ranks) passes.
func refineRanks(m *Molecule, ranks []int) []int {
	for {
		keys := make([]string, len(ranks))
		for i := range keys {
			nb := m.Neighbors(i)
			nr := make([]int, len(nb))
			for k, j := range nb {
				nr[k] = ranks[j]
			}
			sort.Ints(nr)
			var sb strings.Builder
			fmt.Fprintf(&sb, "%08d", ranks[i])
			for _, r := range nr {
				fmt.Fprintf(&sb, "|%08d", r)
			}
			keys[i] = sb.String()
		}
		next := denseRanks(keys)
		if equalInts(next, ranks) {
			return next
		}
		ranks = next
	}
}

func denseRanks(keys []string) []int {
	uniq := make([]string, len(keys))
	copy(uniq, keys)
	sort.Strings(uniq)
	uniq = compactStrings(uniq)
	pos := make(map[string]int, len(uniq))
	for i, k := range uniq {
		pos[k] = i
	}
	out := make([]int, len(keys))
	for i, k := range keys {
		out[i] = pos[k]
	}
	return out
}

func compactStrings(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}

func maxRank(ranks []int) int {
	max := 0
	for _, r := range ranks {
		if r > max {
			max = r
		}
	}
	return max
}

func lowestTiedRank(ranks []int) int {
	counts := make(map[int]int, len(ranks))
	for _, r := range ranks {
		counts[r]++
	}
	best := -1
	for r, c := range counts {
		if c > 1 && (best < 0 || r < best) {
			best = r
		}
	}
	return best
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ----------------------------------------------------------------------------
// SMILES output
// ----------------------------------------------------------------------------

type smilesWriter struct {
	m         *Molecule
	ranks     []int
	visited   []bool
	bondUsed  []bool
	children  [][]int
	ringToken [][]string
	nextRing  int
}

// WriteSMILES serializes the molecule using the given canonical ranks: each
// component starts at its lowest-ranked atom, branches are emitted in rank
// order, and chirality marks are omitted.
func WriteSMILES(m *Molecule, ranks []int) string {
	if m.Empty() {
		return ""
	}
	w := &smilesWriter{
		m:         m,
		ranks:     ranks,
		visited:   make([]bool, len(m.Atoms)),
		bondUsed:  make([]bool, len(m.Bonds)),
		children:  make([][]int, len(m.Atoms)),
		ringToken: make([][]string, len(m.Atoms)),
		nextRing:  1,
	}
	starts := w.componentStarts()
	for _, s := range starts {
		w.prepare(s)
	}
	parts := make([]string, 0, len(starts))
	for _, s := range starts {
		var sb strings.Builder
		w.write(&sb, s, -1)
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, ".")
}

// componentStarts returns the lowest-ranked atom of each connected component,
// ordered by rank.
func (w *smilesWriter) componentStarts() []int {
	n := len(w.m.Atoms)
	seen := make([]bool, n)
	var starts []int
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return w.ranks[order[a]] < w.ranks[order[b]] })
	for _, start := range order {
		if seen[start] {
			continue
		}
		starts = append(starts, start)
		queue := []int{start}
		seen[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range w.m.Neighbors(cur) {
				if !seen[nb] {
					seen[nb] = true
					queue = append(queue, nb)
				}
			}
		}
	}
	return starts
}

// prepare walks the component depth first, splitting bonds into tree edges
// and ring closures and assigning closure digits in discovery order.
func (w *smilesWriter) prepare(cur int) {
	w.visited[cur] = true
	nbs := w.m.Neighbors(cur)
	sort.Slice(nbs, func(a, b int) bool { return w.ranks[nbs[a]] < w.ranks[nbs[b]] })
	for _, nb := range nbs {
		bi := w.bondIndex(cur, nb)
		if w.bondUsed[bi] {
			continue
		}
		w.bondUsed[bi] = true
		if w.visited[nb] {
			digit := ringDigit(w.nextRing)
			w.nextRing++
			w.ringToken[nb] = append(w.ringToken[nb], digit)
			w.ringToken[cur] = append(w.ringToken[cur], w.bondToken(&w.m.Bonds[bi])+digit)
			continue
		}
		w.children[cur] = append(w.children[cur], nb)
		w.prepare(nb)
	}
}

func (w *smilesWriter) write(sb *strings.Builder, cur, parent int) {
	if parent >= 0 {
		sb.WriteString(w.bondToken(w.m.BondBetween(parent, cur)))
	}
	sb.WriteString(w.atomToken(cur))
	for _, tok := range w.ringToken[cur] {
		sb.WriteString(tok)
	}
	kids := w.children[cur]
	for i, kid := range kids {
		if i < len(kids)-1 {
			sb.WriteByte('(')
			w.write(sb, kid, cur)
			sb.WriteByte(')')
		} else {
			w.write(sb, kid, cur)
		}
	}
}

func (w *smilesWriter) bondIndex(i, j int) int {
	for bi := range w.m.Bonds {
		b := &w.m.Bonds[bi]
		if (b.From == i && b.To == j) || (b.From == j && b.To == i) {
			return bi
		}
	}
	return -1
}

func (w *smilesWriter) bondToken(b *Bond) string {
	if b.Aromatic {
		return ""
	}
	switch b.Order {
	case 2:
		return "="
	case 3:
		return "#"
	default:
		// a plain single bond between two aromatic atoms must be
		// written explicitly or the reader would infer aromatic
		if w.m.Atoms[b.From].Aromatic && w.m.Atoms[b.To].Aromatic {
			return "-"
		}
		return ""
	}
}

func ringDigit(n int) string {
	if n < 10 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%%%02d", n)
}

func (w *smilesWriter) atomToken(i int) string {
	a := &w.m.Atoms[i]
	sym := a.Symbol
	if a.Aromatic {
		sym = strings.ToLower(sym)
	}
	if w.bareEligible(i) {
		return sym
	}
	var sb strings.Builder
	sb.WriteByte('[')
	if a.Isotope > 0 {
		fmt.Fprintf(&sb, "%d", a.Isotope)
	}
	sb.WriteString(sym)
	if h := w.m.TotalHCount(i); h == 1 {
		sb.WriteByte('H')
	} else if h > 1 {
		fmt.Fprintf(&sb, "H%d", h)
	}
	switch {
	case a.Charge == 1:
		sb.WriteByte('+')
	case a.Charge == -1:
		sb.WriteByte('-')
	case a.Charge > 1:
		fmt.Fprintf(&sb, "+%d", a.Charge)
	case a.Charge < -1:
		fmt.Fprintf(&sb, "-%d", -a.Charge)
	}
	sb.WriteByte(']')
	return sb.String()
}

// bareEligible reports whether atom i can be written without brackets: an
// organic-subset element, neutral, without isotope, whose hydrogen count
// matches what a reader would infer.
func (w *smilesWriter) bareEligible(i int) bool {
	a := &w.m.Atoms[i]
	if a.Charge != 0 || a.Isotope != 0 {
		return false
	}
	if a.Aromatic {
		switch a.Symbol {
		case "B", "C", "N", "O", "P", "S":
		default:
			return false
		}
	} else if !organicSubset[a.Symbol] {
		return false
	}
	if a.HCount < 0 {
		return true
	}
	return a.HCount == w.inferredBareH(i)
}

// inferredBareH computes the hydrogen count a SMILES reader would derive for
// atom i written bare, by evaluating the implicit rule as if no explicit
// count were present.
func (w *smilesWriter) inferredBareH(i int) int {
	a := &w.m.Atoms[i]
	saved := a.HCount
	a.HCount = -1
	h := w.m.ImplicitHCount(i)
	a.HCount = saved
	return h
}

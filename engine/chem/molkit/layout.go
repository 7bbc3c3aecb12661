package molkit

import (
	"math"
	"sort"
)

// Layout produces deterministic 2D depiction coordinates. Atoms are placed
// depth first in canonical rank order on a unit-length grid, each child on
// the first free 60-degree slot around its parent. The result is a readable
// sketch, not a force-directed drawing.
func Layout(m *Molecule, ranks []int) [][2]float64 {
	n := len(m.Atoms)
	coords := make([][2]float64, n)
	placed := make([]bool, n)
	occupied := make(map[[2]int]bool, n)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return ranks[order[a]] < ranks[order[b]] })

	offsetX := 0.0
	for _, start := range order {
		if placed[start] {
			continue
		}
		coords[start] = [2]float64{offsetX, 0}
		placed[start] = true
		occupied[cell(coords[start])] = true
		maxX := placeFrom(m, ranks, start, 0, coords, placed, occupied)
		if maxX < offsetX {
			maxX = offsetX
		}
		offsetX = maxX + 2
	}
	return coords
}

// placeFrom walks the unplaced neighbors of cur, trying direction slots
// relative to the incoming angle, and returns the largest x coordinate seen.
func placeFrom(m *Molecule, ranks []int, cur int, incoming float64, coords [][2]float64, placed []bool, occupied map[[2]int]bool) float64 {
	maxX := coords[cur][0]
	nbs := m.Neighbors(cur)
	sort.Slice(nbs, func(a, b int) bool { return ranks[nbs[a]] < ranks[nbs[b]] })
	for _, nb := range nbs {
		if placed[nb] {
			continue
		}
		angle := pickAngle(coords[cur], incoming, occupied)
		coords[nb] = [2]float64{
			coords[cur][0] + math.Cos(angle),
			coords[cur][1] + math.Sin(angle),
		}
		placed[nb] = true
		occupied[cell(coords[nb])] = true
		if x := placeFrom(m, ranks, nb, angle, coords, placed, occupied); x > maxX {
			maxX = x
		}
		if coords[nb][0] > maxX {
			maxX = coords[nb][0]
		}
	}
	return maxX
}

// pickAngle tries offsets from the incoming direction in a fixed order and
// settles on the least-bad slot when everything around is taken.
func pickAngle(from [2]float64, incoming float64, occupied map[[2]int]bool) float64 {
	offsets := []float64{math.Pi / 6, -math.Pi / 6, math.Pi / 3, -math.Pi / 3, 0, math.Pi / 2, -math.Pi / 2, 2 * math.Pi / 3, -2 * math.Pi / 3, math.Pi}
	for _, off := range offsets {
		angle := incoming + off
		target := [2]float64{from[0] + math.Cos(angle), from[1] + math.Sin(angle)}
		if !occupied[cell(target)] {
			return angle
		}
	}
	return incoming + math.Pi/6
}

func cell(p [2]float64) [2]int {
	return [2]int{int(math.Round(p[0] * 2)), int(math.Round(p[1] * 2))}
}

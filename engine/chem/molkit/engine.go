package molkit

import (
	"context"
	"strings"

	"github.com/Keith9922/Ketcher-demo/engine/chem"
)

// Warning codes reported alongside normalization results.
const (
	WarnSMILESParseFailed = "smiles_parse_failed"
	WarnMolParseFailed    = "molblock_parse_failed"
	WarnStereoIgnored     = "stereo_ignored"
	WarnStereoMissing     = "stereo_missing"
	WarnTautomerPossible  = "tautomer_possible"
)

// Engine is the built-in chem.Engine. It runs in process, never blocks on
// I/O and has no 3D embedding support.
type Engine struct{}

func New() *Engine {
	return &Engine{}
}

func (e *Engine) Normalize(ctx context.Context, format chem.Format, input string) (*chem.EngineResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		m        *Molecule
		parseErr error
	)
	switch format {
	case chem.FormatMol:
		m, parseErr = ParseMolBlock(input)
		if parseErr != nil {
			return &chem.EngineResult{Warnings: []string{WarnMolParseFailed}}, nil
		}
	default:
		m, parseErr = ParseSMILES(stripWhitespace(input))
		if parseErr != nil {
			return &chem.EngineResult{Warnings: []string{WarnSMILESParseFailed}}, nil
		}
	}

	if m.Empty() {
		return &chem.EngineResult{ParseOK: true, SanitizeOK: true, Empty: true}, nil
	}

	ok, warnings := Sanitize(m)
	warnings = append(warnings, ambiguityWarnings(m)...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ranks := CanonicalRanks(m)
	return &chem.EngineResult{
		ParseOK:         true,
		SanitizeOK:      ok,
		CanonicalSMILES: WriteSMILES(m, ranks),
		CanonicalMol:    WriteMolBlock(m, ranks),
		Warnings:        warnings,
	}, nil
}

// Conformer is not implemented in process; 3D embedding needs a force field.
func (e *Engine) Conformer(_ context.Context, _ chem.Format, _ string) (string, error) {
	return "", chem.ErrConformerUnsupported
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// ambiguityWarnings reports structure interpretations the engine resolved
// silently, so reviewers can judge whether they matter.
func ambiguityWarnings(m *Molecule) []string {
	var out []string
	if m.StereoMarks {
		out = append(out, WarnStereoIgnored)
	} else if hasUndeclaredStereocenter(m) {
		out = append(out, WarnStereoMissing)
	}
	if hasEnolPattern(m) {
		out = append(out, WarnTautomerPossible)
	}
	return out
}

// hasUndeclaredStereocenter looks for tetravalent carbons whose four
// substituents are all different elements (hydrogens included). Comparing
// elements rather than full substituent trees misses some centers, which is
// acceptable for an advisory warning.
func hasUndeclaredStereocenter(m *Molecule) bool {
	for i := range m.Atoms {
		a := &m.Atoms[i]
		if a.Symbol != "C" || a.Aromatic || a.Chiral {
			continue
		}
		h := m.TotalHCount(i)
		nbs := m.Neighbors(i)
		if len(nbs)+h != 4 || h > 1 {
			continue
		}
		seen := map[string]bool{}
		if h == 1 {
			seen["H"] = true
		}
		distinct := true
		for _, nb := range nbs {
			sym := m.Atoms[nb].Symbol
			if seen[sym] {
				distinct = false
				break
			}
			seen[sym] = true
		}
		if distinct {
			return true
		}
	}
	return false
}

// hasEnolPattern detects a hydroxyl on a carbon that carries a C=C double
// bond, the textbook keto-enol ambiguity.
func hasEnolPattern(m *Molecule) bool {
	for i := range m.Atoms {
		a := &m.Atoms[i]
		if a.Symbol != "O" || a.Aromatic || m.TotalHCount(i) == 0 {
			continue
		}
		for _, c := range m.Neighbors(i) {
			if m.Atoms[c].Symbol != "C" || m.Atoms[c].Aromatic {
				continue
			}
			b := m.BondBetween(i, c)
			if b == nil || b.Aromatic || b.Order != 1 {
				continue
			}
			for _, c2 := range m.Neighbors(c) {
				if c2 == i || m.Atoms[c2].Symbol != "C" {
					continue
				}
				if cb := m.BondBetween(c, c2); cb != nil && !cb.Aromatic && cb.Order == 2 {
					return true
				}
			}
		}
	}
	return false
}

package molkit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ethanolMol = `
     Sketch  2D

  3  2  0  0  0  0  0  0  0  0999 V2000
    0.0000    0.0000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
    1.0000    0.0000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
    2.0000    0.0000    0.0000 O   0  0  0  0  0  0  0  0  0  0  0  0
  1  2  1  0
  2  3  1  0
M  END
`

func TestParseMolBlock(t *testing.T) {
	t.Run("Should parse a V2000 connection table", func(t *testing.T) {
		m, err := ParseMolBlock(ethanolMol)
		require.NoError(t, err)
		require.Len(t, m.Atoms, 3)
		require.Len(t, m.Bonds, 2)
		assert.Equal(t, "O", m.Atoms[2].Symbol)
		assert.Equal(t, "CCO", WriteSMILES(m, CanonicalRanks(m)))
	})

	t.Run("Should mark bond type four as aromatic", func(t *testing.T) {
		src, err := ParseSMILES("c1ccccc1")
		require.NoError(t, err)
		block := WriteMolBlock(src, CanonicalRanks(src))

		m, err := ParseMolBlock(block)
		require.NoError(t, err)
		require.Len(t, m.Atoms, 6)
		for _, a := range m.Atoms {
			assert.True(t, a.Aromatic)
		}
		ok, warnings := Sanitize(m)
		assert.True(t, ok)
		assert.Empty(t, warnings)
		assert.Equal(t, "c1ccccc1", WriteSMILES(m, CanonicalRanks(m)))
	})

	t.Run("Should apply M CHG properties", func(t *testing.T) {
		src, err := ParseSMILES("CC(=O)[O-]")
		require.NoError(t, err)
		block := WriteMolBlock(src, CanonicalRanks(src))
		assert.Contains(t, block, "M  CHG  1")

		m, err := ParseMolBlock(block)
		require.NoError(t, err)
		assert.Equal(t, "CC(=O)[O-]", WriteSMILES(m, CanonicalRanks(m)))
	})

	t.Run("Should carry isotopes through M ISO properties", func(t *testing.T) {
		src, err := ParseSMILES("[13CH4]")
		require.NoError(t, err)
		block := WriteMolBlock(src, CanonicalRanks(src))
		assert.Contains(t, block, "M  ISO  1   1  13")

		m, err := ParseMolBlock(block)
		require.NoError(t, err)
		require.Len(t, m.Atoms, 1)
		assert.Equal(t, 13, m.Atoms[0].Isotope)
		assert.Equal(t, "[13CH4]", WriteSMILES(m, CanonicalRanks(m)))
	})

	t.Run("Should keep explicit hydrogens on aromatic nitrogen", func(t *testing.T) {
		src, err := ParseSMILES("c1cc[nH]c1")
		require.NoError(t, err)
		want := WriteSMILES(src, CanonicalRanks(src))
		block := WriteMolBlock(src, CanonicalRanks(src))

		m, err := ParseMolBlock(block)
		require.NoError(t, err)
		ok, warnings := Sanitize(m)
		assert.True(t, ok)
		assert.Empty(t, warnings)
		var nitrogen *Atom
		for i := range m.Atoms {
			if m.Atoms[i].Symbol == "N" {
				nitrogen = &m.Atoms[i]
			}
		}
		require.NotNil(t, nitrogen)
		assert.Equal(t, 1, nitrogen.HCount)
		assert.Equal(t, want, WriteSMILES(m, CanonicalRanks(m)))
	})

	t.Run("Should accept an empty connection table", func(t *testing.T) {
		empty := "\n\n\n  0  0  0  0  0  0  0  0  0  0999 V2000\nM  END\n"
		m, err := ParseMolBlock(empty)
		require.NoError(t, err)
		assert.True(t, m.Empty())
	})

	t.Run("Should reject truncated and unterminated blocks", func(t *testing.T) {
		_, err := ParseMolBlock("junk")
		assert.Error(t, err)

		_, err = ParseMolBlock(strings.Replace(ethanolMol, "M  END\n", "", 1))
		assert.Error(t, err)

		_, err = ParseMolBlock("\n\n\n  5  0  0  0  0  0  0  0  0  0999 V2000\nM  END\n")
		assert.Error(t, err)
	})

	t.Run("Should reject unknown elements and bad bond types", func(t *testing.T) {
		_, err := ParseMolBlock(strings.Replace(ethanolMol, " O  ", " Zz ", 1))
		assert.Error(t, err)

		_, err = ParseMolBlock(strings.Replace(ethanolMol, "  2  3  1  0", "  2  3  9  0", 1))
		assert.Error(t, err)
	})
}

func TestWriteMolBlock(t *testing.T) {
	t.Run("Should order atoms canonically and round-trip", func(t *testing.T) {
		a, err := ParseSMILES("OCC")
		require.NoError(t, err)
		b, err := ParseSMILES("CCO")
		require.NoError(t, err)
		assert.Equal(t, WriteMolBlock(a, CanonicalRanks(a)), WriteMolBlock(b, CanonicalRanks(b)))
	})

	t.Run("Should emit a well-formed counts line", func(t *testing.T) {
		m, err := ParseSMILES("CCO")
		require.NoError(t, err)
		block := WriteMolBlock(m, CanonicalRanks(m))
		assert.Contains(t, block, "  3  2  0  0  0  0  0  0  0  0999 V2000")
		assert.True(t, strings.HasSuffix(block, "M  END\n"))
	})
}

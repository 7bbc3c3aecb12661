package molkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSMILES(t *testing.T) {
	t.Run("Should parse a linear chain", func(t *testing.T) {
		m, err := ParseSMILES("CCO")
		require.NoError(t, err)
		assert.Len(t, m.Atoms, 3)
		assert.Len(t, m.Bonds, 2)
		assert.Equal(t, "O", m.Atoms[2].Symbol)
		assert.Equal(t, 3, m.TotalHCount(0))
		assert.Equal(t, 1, m.TotalHCount(2))
	})

	t.Run("Should parse branches", func(t *testing.T) {
		m, err := ParseSMILES("CC(C)O")
		require.NoError(t, err)
		require.Len(t, m.Atoms, 4)
		assert.Equal(t, 3, m.Degree(1))
	})

	t.Run("Should parse double and triple bonds", func(t *testing.T) {
		m, err := ParseSMILES("C=C")
		require.NoError(t, err)
		require.Len(t, m.Bonds, 1)
		assert.Equal(t, 2, m.Bonds[0].Order)

		m, err = ParseSMILES("C#N")
		require.NoError(t, err)
		require.Len(t, m.Bonds, 1)
		assert.Equal(t, 3, m.Bonds[0].Order)
	})

	t.Run("Should parse aromatic rings with implicit aromatic bonds", func(t *testing.T) {
		m, err := ParseSMILES("c1ccccc1")
		require.NoError(t, err)
		require.Len(t, m.Atoms, 6)
		require.Len(t, m.Bonds, 6)
		for _, a := range m.Atoms {
			assert.True(t, a.Aromatic)
		}
		for _, b := range m.Bonds {
			assert.True(t, b.Aromatic)
		}
		assert.Equal(t, 1, m.TotalHCount(0))
	})

	t.Run("Should parse two-character elements outside brackets", func(t *testing.T) {
		m, err := ParseSMILES("ClCBr")
		require.NoError(t, err)
		require.Len(t, m.Atoms, 3)
		assert.Equal(t, "Cl", m.Atoms[0].Symbol)
		assert.Equal(t, "Br", m.Atoms[2].Symbol)
	})

	t.Run("Should parse bracket atoms with charge hydrogens and isotope", func(t *testing.T) {
		m, err := ParseSMILES("[NH4+]")
		require.NoError(t, err)
		require.Len(t, m.Atoms, 1)
		assert.Equal(t, "N", m.Atoms[0].Symbol)
		assert.Equal(t, 4, m.Atoms[0].HCount)
		assert.Equal(t, 1, m.Atoms[0].Charge)

		m, err = ParseSMILES("[13CH4]")
		require.NoError(t, err)
		assert.Equal(t, 13, m.Atoms[0].Isotope)
		assert.Equal(t, 4, m.Atoms[0].HCount)

		m, err = ParseSMILES("[O-]")
		require.NoError(t, err)
		assert.Equal(t, -1, m.Atoms[0].Charge)
	})

	t.Run("Should record stereo marks without interpreting them", func(t *testing.T) {
		m, err := ParseSMILES("C[C@H](N)C(=O)O")
		require.NoError(t, err)
		assert.True(t, m.StereoMarks)
		assert.True(t, m.Atoms[1].Chiral)

		m, err = ParseSMILES(`F/C=C/F`)
		require.NoError(t, err)
		assert.True(t, m.StereoMarks)
	})

	t.Run("Should parse dot-separated components", func(t *testing.T) {
		m, err := ParseSMILES("[Na+].[Cl-]")
		require.NoError(t, err)
		assert.Len(t, m.Atoms, 2)
		assert.Empty(t, m.Bonds)
	})

	t.Run("Should parse two-digit ring closures", func(t *testing.T) {
		m, err := ParseSMILES("C%12CCCCC%12")
		require.NoError(t, err)
		assert.Len(t, m.Bonds, 6)
	})

	t.Run("Should reject malformed input", func(t *testing.T) {
		for _, bad := range []string{
			"",
			"not-a-molecule",
			"C(",
			"C)",
			"C1CC",
			"C=",
			"C==C",
			"[C",
			"[Xq]",
			"C11",
		} {
			_, err := ParseSMILES(bad)
			assert.Error(t, err, "input %q", bad)
			var perr *ParseError
			assert.ErrorAs(t, err, &perr, "input %q", bad)
		}
	})

	t.Run("Should reject conflicting ring closure bond orders", func(t *testing.T) {
		_, err := ParseSMILES("C=1CCCCC-1")
		assert.Error(t, err)
	})
}

func TestImplicitHydrogens(t *testing.T) {
	t.Run("Should fill default valences", func(t *testing.T) {
		m, err := ParseSMILES("C")
		require.NoError(t, err)
		assert.Equal(t, 4, m.TotalHCount(0))

		m, err = ParseSMILES("N")
		require.NoError(t, err)
		assert.Equal(t, 3, m.TotalHCount(0))

		m, err = ParseSMILES("O=S(=O)(O)O")
		require.NoError(t, err)
		// hexavalent sulfur picks the larger valence state
		assert.Equal(t, 0, m.TotalHCount(1))
	})

	t.Run("Should give bracket atoms no implicit hydrogens", func(t *testing.T) {
		m, err := ParseSMILES("[CH2]C")
		require.NoError(t, err)
		assert.Equal(t, 2, m.TotalHCount(0))

		m, err = ParseSMILES("[C]")
		require.NoError(t, err)
		assert.Equal(t, 0, m.TotalHCount(0))
	})

	t.Run("Should treat pyrrole and pyridine nitrogens differently", func(t *testing.T) {
		pyridine, err := ParseSMILES("c1ccncc1")
		require.NoError(t, err)
		assert.Equal(t, 0, pyridine.TotalHCount(3))

		pyrrole, err := ParseSMILES("c1cc[nH]c1")
		require.NoError(t, err)
		assert.Equal(t, 1, pyrrole.TotalHCount(3))
	})
}

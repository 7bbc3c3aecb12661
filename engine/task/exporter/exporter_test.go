package exporter

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Keith9922/Ketcher-demo/engine/qc"
	"github.com/Keith9922/Ketcher-demo/engine/task"
)

func annotatedTask(t *testing.T, title, canonical, mol string) *task.Task {
	t.Helper()
	tk, err := task.New(title, task.Source{SMILES: "CCO"})
	require.NoError(t, err)
	tk.Status = task.StatusApproved
	tk.Annotation = &task.Annotation{
		SMILES:          "OCC",
		CanonicalSMILES: canonical,
		CanonicalMol:    mol,
		SubmittedBy:     "alice",
		SubmittedAt:     time.Now().UTC(),
	}
	tk.QC = &qc.Result{ParseOK: true, SanitizeOK: true}
	return tk
}

func TestParseFormat(t *testing.T) {
	t.Run("Should accept supported formats case-insensitively", func(t *testing.T) {
		for raw, want := range map[string]Format{
			"smiles": FormatSMILES,
			"CSV":    FormatCSV,
			" sdf ":  FormatSDF,
		} {
			got, err := ParseFormat(raw)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("Should reject unknown formats", func(t *testing.T) {
		_, err := ParseFormat("xlsx")
		var unsupported *UnsupportedFormatError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "xlsx", unsupported.Format)
	})
}

func TestExportSMILES(t *testing.T) {
	ctx := context.Background()

	t.Run("Should prefer canonical over raw over source", func(t *testing.T) {
		canonical := annotatedTask(t, "Mol-0001", "CCO", "")
		raw := annotatedTask(t, "Mol-0002", "", "")
		source, err := task.New("Mol-0003", task.Source{SMILES: "c1ccccc1"})
		require.NoError(t, err)
		source.Status = task.StatusApproved

		art, exportErr := Export(ctx, []*task.Task{canonical, raw, source}, FormatSMILES)
		require.NoError(t, exportErr)
		assert.Equal(t, "CCO\nOCC\nc1ccccc1\n", string(art.Data))
		assert.Equal(t, "text/plain", art.ContentType)
		assert.Equal(t, "molecules.smiles", art.Filename)
	})

	t.Run("Should only export approved tasks", func(t *testing.T) {
		approved := annotatedTask(t, "Mol-0001", "CCO", "")
		pending, err := task.New("Mol-0002", task.Source{SMILES: "c1ccccc1"})
		require.NoError(t, err)

		art, exportErr := Export(ctx, []*task.Task{approved, pending}, FormatSMILES)
		require.NoError(t, exportErr)
		assert.Equal(t, "CCO\n", string(art.Data))
	})

	t.Run("Should skip tasks without any SMILES", func(t *testing.T) {
		molOnly, err := task.New("Mol-0001", task.Source{Mol: "molblock"})
		require.NoError(t, err)
		molOnly.Status = task.StatusApproved
		art, exportErr := Export(ctx, []*task.Task{molOnly}, FormatSMILES)
		require.NoError(t, exportErr)
		assert.Empty(t, art.Data)
	})
}

func TestExportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("Should emit a header and one row per task", func(t *testing.T) {
		tk := annotatedTask(t, "Mol-0001", "CCO", "")
		tk.QC.Warnings = []string{"stereo_ignored", "tautomer_possible"}
		tk.Review = &task.Review{
			Decision:   task.DecisionApproved,
			Comment:    "fine",
			ReviewedBy: "bob",
			ReviewedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		}

		art, err := Export(ctx, []*task.Task{tk}, FormatCSV)
		require.NoError(t, err)
		assert.Equal(t, "text/csv", art.ContentType)
		assert.Equal(t, "molecules.csv", art.Filename)

		rows, err := csv.NewReader(strings.NewReader(string(art.Data))).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"id", "title", "canonical_smiles", "qc_warnings", "review_comment", "reviewed_at"}, rows[0])
		assert.Equal(t, "Mol-0001", rows[1][1])
		assert.Equal(t, "stereo_ignored;tautomer_possible", rows[1][3])
		assert.Equal(t, "2026-08-01T12:00:00Z", rows[1][5])
	})

	t.Run("Should emit a header-only payload for zero approved tasks", func(t *testing.T) {
		pending, err := task.New("Mol-0001", task.Source{SMILES: "CCO"})
		require.NoError(t, err)
		art, exportErr := Export(ctx, []*task.Task{pending}, FormatCSV)
		require.NoError(t, exportErr)
		assert.Equal(t, "id,title,canonical_smiles,qc_warnings,review_comment,reviewed_at\n", string(art.Data))
	})

	t.Run("Should quote fields containing commas", func(t *testing.T) {
		tk := annotatedTask(t, "Mol-0001", "CCO", "")
		tk.Review = &task.Review{
			Decision:   task.DecisionRejected,
			Comment:    `wrong tautomer, see "notes"`,
			ReviewedBy: "bob",
			ReviewedAt: time.Now().UTC(),
		}

		art, err := Export(ctx, []*task.Task{tk}, FormatCSV)
		require.NoError(t, err)

		rows, err := csv.NewReader(strings.NewReader(string(art.Data))).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, `wrong tautomer, see "notes"`, rows[1][4])
	})

	t.Run("Should leave unreviewed columns empty", func(t *testing.T) {
		tk := annotatedTask(t, "Mol-0001", "CCO", "")
		art, err := Export(ctx, []*task.Task{tk}, FormatCSV)
		require.NoError(t, err)
		rows, err := csv.NewReader(strings.NewReader(string(art.Data))).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, "", rows[1][4])
		assert.Equal(t, "", rows[1][5])
	})
}

func TestExportSDF(t *testing.T) {
	ctx := context.Background()

	t.Run("Should concatenate MOL-blocks with record terminators", func(t *testing.T) {
		a := annotatedTask(t, "Mol-0001", "CCO", "block-a\nM  END\n")
		b := annotatedTask(t, "Mol-0002", "c1ccccc1", "block-b\nM  END")

		art, err := Export(ctx, []*task.Task{a, b}, FormatSDF)
		require.NoError(t, err)
		assert.Equal(t, "chemical/x-mdl-sdfile", art.ContentType)
		assert.Equal(t, "molecules.sdf", art.Filename)
		assert.Equal(t, "block-a\nM  END\n$$$$\nblock-b\nM  END\n$$$$\n", string(art.Data))
	})

	t.Run("Should skip tasks without a canonical MOL-block", func(t *testing.T) {
		missing := annotatedTask(t, "Mol-0001", "CCO", "")
		art, err := Export(ctx, []*task.Task{missing}, FormatSDF)
		require.NoError(t, err)
		assert.Empty(t, art.Data)
	})
}

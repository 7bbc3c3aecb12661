package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Keith9922/Ketcher-demo/engine/qc"
)

func TestNew(t *testing.T) {
	t.Run("Should create a NEW task with timestamps", func(t *testing.T) {
		tk, err := New("Mol-0001", Source{SMILES: "CCO"})
		require.NoError(t, err)
		assert.False(t, tk.ID.IsZero())
		assert.Equal(t, StatusNew, tk.Status)
		assert.Equal(t, "Mol-0001", tk.Title)
		assert.False(t, tk.CreatedAt.IsZero())
		assert.Equal(t, tk.CreatedAt, tk.UpdatedAt)
	})

	t.Run("Should require a title", func(t *testing.T) {
		_, err := New("   ", Source{SMILES: "CCO"})
		assert.Error(t, err)
	})

	t.Run("Should require a structure source", func(t *testing.T) {
		_, err := New("Mol-0001", Source{})
		assert.Error(t, err)
	})

	t.Run("Should accept a mol-only source", func(t *testing.T) {
		tk, err := New("Mol-0001", Source{Mol: "molblock"})
		require.NoError(t, err)
		assert.Equal(t, "molblock", tk.Source.Mol)
	})
}

func TestTaskClone(t *testing.T) {
	t.Run("Should not alias nested structures", func(t *testing.T) {
		tk, err := New("Mol-0001", Source{SMILES: "CCO"})
		require.NoError(t, err)
		ph := 7.4
		tk.Annotation = &Annotation{SMILES: "CCO", SubmittedBy: "alice"}
		tk.QC = &qc.Result{ParseOK: true, Warnings: []string{"stereo_ignored"}}
		tk.Review = &Review{Decision: DecisionRejected, ReviewedBy: "bob"}
		tk.Context = &Context{PH: &ph, Solvent: "water"}

		cp := tk.Clone()
		cp.Annotation.SubmittedBy = "mallory"
		cp.QC.Warnings[0] = "changed"
		cp.Review.ReviewedBy = "mallory"
		*cp.Context.PH = 1.0
		cp.Context.Solvent = "dmso"

		assert.Equal(t, "alice", tk.Annotation.SubmittedBy)
		assert.Equal(t, "stereo_ignored", tk.QC.Warnings[0])
		assert.Equal(t, "bob", tk.Review.ReviewedBy)
		assert.Equal(t, 7.4, *tk.Context.PH)
		assert.Equal(t, "water", tk.Context.Solvent)
	})

	t.Run("Should tolerate nil", func(t *testing.T) {
		var tk *Task
		assert.Nil(t, tk.Clone())
	})
}

func TestParseDecision(t *testing.T) {
	t.Run("Should accept verdicts case-insensitively", func(t *testing.T) {
		d, err := ParseDecision("approved")
		require.NoError(t, err)
		assert.Equal(t, DecisionApproved, d)

		d, err = ParseDecision(" REJECTED ")
		require.NoError(t, err)
		assert.Equal(t, DecisionRejected, d)
	})

	t.Run("Should reject anything else", func(t *testing.T) {
		_, err := ParseDecision("maybe")
		assert.Error(t, err)
	})
}

func TestStatusIsTerminal(t *testing.T) {
	t.Run("Should mark only APPROVED terminal", func(t *testing.T) {
		assert.True(t, StatusApproved.IsTerminal())
		for _, s := range []Status{StatusNew, StatusInProgress, StatusSubmitted, StatusRejected} {
			assert.False(t, s.IsTerminal(), "status %s", s)
		}
	})
}

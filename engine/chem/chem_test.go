package chem

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct {
	lastFormat Format
	lastInput  string
	result     *EngineResult
	err        error
	delay      time.Duration
	calls      int
}

func (s *stubEngine) Normalize(ctx context.Context, format Format, input string) (*EngineResult, error) {
	s.calls++
	s.lastFormat = format
	s.lastInput = input
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubEngine) Conformer(ctx context.Context, format Format, input string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "molblock", nil
}

func TestNormalizerNormalize(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject input with neither smiles nor mol", func(t *testing.T) {
		n := NewNormalizer(&stubEngine{}, 0)
		_, err := n.Normalize(ctx, Input{SMILES: "   ", Mol: ""})
		var invalid *InvalidInputError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("Should prefer the MOL-block when both formats are present", func(t *testing.T) {
		engine := &stubEngine{result: &EngineResult{ParseOK: true, SanitizeOK: true}}
		n := NewNormalizer(engine, 0)
		res, err := n.Normalize(ctx, Input{SMILES: "CCO", Mol: "molblock"})
		require.NoError(t, err)
		assert.Equal(t, FormatMol, engine.lastFormat)
		assert.Equal(t, "molblock", engine.lastInput)
		assert.Equal(t, FormatMol, res.Format)
	})

	t.Run("Should trim the payload before dispatch", func(t *testing.T) {
		engine := &stubEngine{result: &EngineResult{ParseOK: true}}
		n := NewNormalizer(engine, 0)
		_, err := n.Normalize(ctx, Input{SMILES: "  CCO  "})
		require.NoError(t, err)
		assert.Equal(t, "CCO", engine.lastInput)
	})

	t.Run("Should route structured editor JSON around the engine", func(t *testing.T) {
		engine := &stubEngine{}
		n := NewNormalizer(engine, 0)
		res, err := n.Normalize(ctx, Input{SMILES: `{"root":{"nodes":[]}}`})
		require.NoError(t, err)
		assert.True(t, res.Opaque)
		assert.False(t, res.ParseOK)
		assert.Equal(t, []string{WarnOpaquePayload}, res.Warnings)
		assert.Zero(t, engine.calls)
	})

	t.Run("Should convert a deadline overrun into a timeout error", func(t *testing.T) {
		engine := &stubEngine{delay: 200 * time.Millisecond}
		n := NewNormalizer(engine, 10*time.Millisecond)
		_, err := n.Normalize(ctx, Input{SMILES: "CCO"})
		var timeout *TimeoutError
		require.ErrorAs(t, err, &timeout)
		assert.Equal(t, 10*time.Millisecond, timeout.Timeout)
	})

	t.Run("Should wrap other engine failures", func(t *testing.T) {
		cause := errors.New("sidecar crashed")
		n := NewNormalizer(&stubEngine{err: cause}, 0)
		_, err := n.Normalize(ctx, Input{SMILES: "CCO"})
		var engineErr *EngineError
		require.ErrorAs(t, err, &engineErr)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Should pass engine results through untouched", func(t *testing.T) {
		engine := &stubEngine{result: &EngineResult{
			ParseOK:         true,
			SanitizeOK:      true,
			CanonicalSMILES: "CCO",
			CanonicalMol:    "block",
			Warnings:        []string{"stereo_ignored"},
		}}
		n := NewNormalizer(engine, time.Second)
		res, err := n.Normalize(ctx, Input{SMILES: "OCC"})
		require.NoError(t, err)
		assert.Equal(t, "CCO", res.CanonicalSMILES)
		assert.Equal(t, []string{"stereo_ignored"}, res.Warnings)
		assert.Equal(t, FormatSMILES, res.Format)
	})
}

func TestNormalizerConformer(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return the embedded MOL-block", func(t *testing.T) {
		n := NewNormalizer(&stubEngine{}, 0)
		block, err := n.Conformer(ctx, Input{SMILES: "CCO"})
		require.NoError(t, err)
		assert.Equal(t, "molblock", block)
	})

	t.Run("Should pass unsupported-engine errors through", func(t *testing.T) {
		n := NewNormalizer(&stubEngine{err: ErrConformerUnsupported}, 0)
		_, err := n.Conformer(ctx, Input{SMILES: "CCO"})
		assert.ErrorIs(t, err, ErrConformerUnsupported)
	})

	t.Run("Should reject empty input", func(t *testing.T) {
		n := NewNormalizer(&stubEngine{}, 0)
		_, err := n.Conformer(ctx, Input{})
		var invalid *InvalidInputError
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestLooksLikeStructuredJSON(t *testing.T) {
	t.Run("Should detect editor documents by their markers", func(t *testing.T) {
		assert.True(t, LooksLikeStructuredJSON(`{"root":{}}`))
		assert.True(t, LooksLikeStructuredJSON(`{"molecule":[],"atoms":[]}`))
		assert.True(t, LooksLikeStructuredJSON("  {\"templates\":[]}  "))
	})

	t.Run("Should pass plain SMILES and unrelated JSON through", func(t *testing.T) {
		assert.False(t, LooksLikeStructuredJSON("CCO"))
		assert.False(t, LooksLikeStructuredJSON(`{"foo":1}`))
		assert.False(t, LooksLikeStructuredJSON(""))
	})
}

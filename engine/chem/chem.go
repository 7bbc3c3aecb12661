// Package chem wraps a cheminformatics engine behind the structure
// normalization contract used by the annotation workflow: given a SMILES or
// MOL-block string it produces a canonical SMILES, a canonical MOL-block and
// the raw material for a quality-check verdict.
package chem

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Format declares how a structure payload should be parsed.
type Format string

const (
	FormatSMILES Format = "smiles"
	FormatMol    Format = "mol"
)

// Input carries the structure fields of a submission. At most one format is
// consumed; when both are present the MOL-block wins because molecule graphs
// are unambiguous while SMILES can drift through editor round-tripping.
type Input struct {
	SMILES string `json:"smiles,omitempty"`
	Mol    string `json:"mol,omitempty"`
}

// EngineResult is the engine-level outcome of parse/sanitize/canonicalize.
// Parse and sanitize failures are normal, reportable outcomes, not errors.
type EngineResult struct {
	ParseOK         bool     `json:"parse_ok"`
	SanitizeOK      bool     `json:"sanitize_ok"`
	CanonicalSMILES string   `json:"canonical_smiles,omitempty"`
	CanonicalMol    string   `json:"canonical_mol,omitempty"`
	Empty           bool     `json:"empty,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
}

// Engine is the external cheminformatics engine contract. Implementations
// must be deterministic for a fixed engine version: re-normalizing an
// already-canonical structure returns the same canonical strings.
type Engine interface {
	Normalize(ctx context.Context, format Format, input string) (*EngineResult, error)
	Conformer(ctx context.Context, format Format, input string) (string, error)
}

// Result is the Normalizer outcome handed to the QC evaluator.
type Result struct {
	EngineResult
	Format Format `json:"format"`
	// Opaque marks payloads the engine cannot consume (structured editor
	// JSON smuggled through the SMILES field).
	Opaque bool `json:"opaque,omitempty"`
}

// Normalizer bounds and adapts an Engine for workflow use.
type Normalizer struct {
	engine  Engine
	timeout time.Duration
}

// NewNormalizer wraps engine; timeout bounds each Normalize call
// (zero disables the bound).
func NewNormalizer(engine Engine, timeout time.Duration) *Normalizer {
	return &Normalizer{engine: engine, timeout: timeout}
}

// Normalize validates the input envelope, selects the payload format and runs
// the engine. Parse/sanitize failures come back inside Result; only empty
// input, engine transport failures and timeouts are Go errors.
func (n *Normalizer) Normalize(ctx context.Context, in Input) (*Result, error) {
	smiles := strings.TrimSpace(in.SMILES)
	mol := strings.TrimSpace(in.Mol)
	if smiles == "" && mol == "" {
		return nil, &InvalidInputError{Reason: "at least one of smiles or mol must be provided"}
	}

	format, payload := FormatSMILES, smiles
	if mol != "" {
		format, payload = FormatMol, mol
	}

	if format == FormatSMILES && LooksLikeStructuredJSON(payload) {
		return &Result{
			EngineResult: EngineResult{Warnings: []string{WarnOpaquePayload}},
			Format:       format,
			Opaque:       true,
		}, nil
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}
	res, err := n.engine.Normalize(ctx, format, payload)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{Timeout: n.timeout}
		}
		return nil, &EngineError{Err: err}
	}
	return &Result{EngineResult: *res, Format: format}, nil
}

// Conformer produces a 3D MOL-block for a structure, when the engine
// supports embedding.
func (n *Normalizer) Conformer(ctx context.Context, in Input) (string, error) {
	smiles := strings.TrimSpace(in.SMILES)
	mol := strings.TrimSpace(in.Mol)
	if smiles == "" && mol == "" {
		return "", &InvalidInputError{Reason: "at least one of smiles or mol must be provided"}
	}
	format, payload := FormatSMILES, smiles
	if mol != "" {
		format, payload = FormatMol, mol
	}
	molblock, err := n.engine.Conformer(ctx, format, payload)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &TimeoutError{Timeout: n.timeout}
		}
		if errors.Is(err, ErrConformerUnsupported) {
			return "", err
		}
		return "", &EngineError{Err: err}
	}
	return molblock, nil
}

// WarnOpaquePayload flags structure payloads the engine cannot consume.
const WarnOpaquePayload = "opaque_payload"

var structuredJSONMarkers = []string{
	`"root"`, `"atoms"`, `"bonds"`, `"molecule"`, `"connections"`, `"templates"`,
}

// LooksLikeStructuredJSON detects editor-native JSON documents pasted into the
// SMILES field so they can be routed to human review instead of the parser.
func LooksLikeStructuredJSON(value string) bool {
	candidate := strings.TrimSpace(value)
	if candidate == "" || !strings.HasPrefix(candidate, "{") {
		return false
	}
	for _, marker := range structuredJSONMarkers {
		if strings.Contains(candidate, marker) {
			return true
		}
	}
	return false
}

// Package qc turns a normalization outcome into the quality-check verdict
// that gates task approval.
package qc

import (
	"slices"

	"github.com/Keith9922/Ketcher-demo/engine/chem"
)

// Warning codes owned by the evaluator. Engine-level codes (parser, valence,
// ambiguity) pass through verbatim.
const (
	WarnStructureEmpty = "structure_empty"
	WarnParseFailed    = "parse_failed"
	WarnSanitizeFailed = "sanitize_failed"
	WarnManualReview   = "manual_review_required"
)

// Result is the stored QC verdict of a submission.
type Result struct {
	ParseOK    bool     `json:"parse_ok"`
	SanitizeOK bool     `json:"sanitize_ok"`
	Warnings   []string `json:"warnings,omitempty"`
}

// Evaluate derives the verdict from a normalization result. Warnings keep a
// fixed order: hard failures first, engine findings next (deduplicated,
// original order), and the manual-review marker always last.
func Evaluate(res *chem.Result, manualReview bool) *Result {
	out := &Result{ParseOK: res.ParseOK, SanitizeOK: res.SanitizeOK}
	if res.Empty {
		out.Warnings = append(out.Warnings, WarnStructureEmpty)
	}
	if !res.ParseOK {
		out.Warnings = append(out.Warnings, WarnParseFailed)
	}
	if res.ParseOK && !res.SanitizeOK {
		out.Warnings = append(out.Warnings, WarnSanitizeFailed)
	}
	for _, w := range res.Warnings {
		if !slices.Contains(out.Warnings, w) {
			out.Warnings = append(out.Warnings, w)
		}
	}
	if manualReview {
		out.Warnings = append(out.Warnings, WarnManualReview)
	}
	return out
}

// Passed reports whether the structure parsed and sanitized cleanly.
// Warnings are advisory and never fail QC on their own; an empty structure
// warns but still passes.
func (r *Result) Passed() bool {
	if r == nil {
		return false
	}
	return r.ParseOK && r.SanitizeOK
}

// ManualEscape reports whether the annotator requested human review, which
// lets a reviewer approve past a failed QC.
func (r *Result) ManualEscape() bool {
	if r == nil {
		return false
	}
	return slices.Contains(r.Warnings, WarnManualReview)
}

// Clone returns an independent copy for storage snapshots.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	out := *r
	out.Warnings = slices.Clone(r.Warnings)
	return &out
}

package uc

import (
	"context"

	"github.com/Keith9922/Ketcher-demo/engine/chem"
	"github.com/Keith9922/Ketcher-demo/engine/qc"
)

// -----------------------------------------------------------------------------
// ParseStructure
// -----------------------------------------------------------------------------

// ParseStructure runs the Normalizer and QC evaluator without touching any
// task, so editors can validate a structure before submitting it.
type ParseStructure struct {
	normalizer *chem.Normalizer
	input      chem.Input
}

func NewParseStructure(normalizer *chem.Normalizer, input chem.Input) *ParseStructure {
	return &ParseStructure{
		normalizer: normalizer,
		input:      input,
	}
}

// ParseOutput pairs the normalization result with its QC verdict.
type ParseOutput struct {
	Result *chem.Result `json:"result"`
	QC     *qc.Result   `json:"qc"`
}

func (uc *ParseStructure) Execute(ctx context.Context) (*ParseOutput, error) {
	res, err := uc.normalizer.Normalize(ctx, uc.input)
	if err != nil {
		return nil, err
	}
	return &ParseOutput{
		Result: res,
		QC:     qc.Evaluate(res, false),
	}, nil
}

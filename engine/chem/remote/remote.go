// Package remote talks to an out-of-process cheminformatics service over
// HTTP. It is the production engine; the in-process molkit engine covers
// development and tests.
package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/Keith9922/Ketcher-demo/engine/chem"
)

// Engine implements chem.Engine against a normalization sidecar.
type Engine struct {
	client *resty.Client
}

// New builds an engine for the sidecar at baseURL. The client carries no
// transport timeout of its own: normalize and conformer calls run under
// different deadlines, so each request is bounded by its context.
func New(baseURL string) *Engine {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Engine{client: client}
}

type normalizeRequest struct {
	Format string `json:"format"`
	Input  string `json:"input"`
}

type conformerResponse struct {
	Mol string `json:"mol"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (e *Engine) Normalize(ctx context.Context, format chem.Format, input string) (*chem.EngineResult, error) {
	var (
		out    chem.EngineResult
		apiErr errorResponse
	)
	resp, err := e.client.R().
		SetContext(ctx).
		SetBody(normalizeRequest{Format: string(format), Input: input}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/normalize")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("normalize returned %s: %s", resp.Status(), apiErr.Error)
	}
	return &out, nil
}

func (e *Engine) Conformer(ctx context.Context, format chem.Format, input string) (string, error) {
	var (
		out    conformerResponse
		apiErr errorResponse
	)
	resp, err := e.client.R().
		SetContext(ctx).
		SetBody(normalizeRequest{Format: string(format), Input: input}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/conformer")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() == http.StatusNotImplemented {
		return "", chem.ErrConformerUnsupported
	}
	if resp.IsError() {
		return "", fmt.Errorf("conformer returned %s: %s", resp.Status(), apiErr.Error)
	}
	return out.Mol, nil
}

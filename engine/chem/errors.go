package chem

import (
	"errors"
	"fmt"
	"time"
)

// ErrConformerUnsupported is returned by engines without 3D embedding support.
var ErrConformerUnsupported = errors.New("engine does not support 3D conformer generation")

// InvalidInputError reports a malformed or empty structure envelope.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid structure input: %s", e.Reason)
}

// TimeoutError reports an engine call that exceeded its deadline. It is
// distinct from a parse failure and never leaves partial state behind.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("structure normalization timed out after %s", e.Timeout)
}

// EngineError reports an engine failure other than a timeout (transport
// failure, crashed sidecar, malformed engine response).
type EngineError struct {
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("cheminformatics engine failure: %v", e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

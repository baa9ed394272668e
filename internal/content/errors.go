package content

import "fmt"

// GenerationError indicates a content call failed or returned a malformed
// payload. Sessions surface it as a retryable error state; enrichment
// callers absorb it into sentinel texts instead.
type GenerationError struct {
	Op  string // which generation operation failed
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func genErr(op string, err error) *GenerationError {
	return &GenerationError{Op: op, Err: err}
}

func genErrf(op, format string, args ...any) *GenerationError {
	return &GenerationError{Op: op, Err: fmt.Errorf(format, args...)}
}

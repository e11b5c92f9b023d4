package external

import (
	"errors"
	"fmt"
)

// ErrMissingField marks a successful response lacking an expected field.
var ErrMissingField = errors.New("missing field")

// FetchError means the upstream call could not complete or returned a
// non-success status.
type FetchError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status code: %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("%s: performing request: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError means the upstream answered but the payload did not carry
// the expected data.
type ParseError struct {
	Source string
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: decoding %s: %v", e.Source, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

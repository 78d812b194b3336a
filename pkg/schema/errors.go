package schema

import (
	"errors"
	"fmt"
)

// ErrUnknownRule is wrapped by decode errors for unrecognised rule names
// when strict rules are enabled.
var ErrUnknownRule = errors.New("unknown rule")

// DecodeError reports a malformed schema document.
type DecodeError struct {
	Path   string // Dot-separated field path, e.g. "stages.time_sec"
	Rule   string // Rule key, empty for structural problems
	Line   int    // 1-based source line, 0 when unknown
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	loc := e.Path
	if e.Rule != "" {
		if loc != "" {
			loc += "."
		}
		loc += e.Rule
	}
	if loc == "" {
		loc = "<root>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("schema %q (line %d): %s", loc, e.Line, e.Reason)
	}
	return fmt.Sprintf("schema %q: %s", loc, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// AggregateError represents multiple decode failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d schema errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error { return e.Errors }

// DecodeErrors returns all decode failures carried by err.
// It returns nil when err is neither a *DecodeError nor an *AggregateError.
func DecodeErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return []error{de}
	}
	return nil
}

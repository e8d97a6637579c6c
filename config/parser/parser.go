// Package parser defines the failure taxonomy shared by configuration dialects.
//
// Every dialect reports content it cannot understand as a *SyntaxError, which
// matches ErrParse. Dialect auto-detection treats ErrParse as "try the next
// dialect" and any other error as fatal, so I/O problems are never mistaken
// for a wrong dialect.
package parser

import (
	"errors"
	"fmt"
)

// ErrParse is matched by every error meaning "this dialect could not parse this file".
var ErrParse = errors.New("parse error")

// SyntaxError describes content a dialect rejected.
type SyntaxError struct {
	// Dialect is the name of the dialect that rejected the content.
	Dialect string
	// Filename is the file being parsed.
	Filename string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the failure.
	Message string
	// Err is the underlying error.
	Err error
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("%s syntax error in %s at line %d, column %d: %s",
			e.Dialect, e.Filename, e.Line, e.Column, e.Message)
	}

	if e.Line > 0 {
		return fmt.Sprintf("%s syntax error in %s at line %d: %s", e.Dialect, e.Filename, e.Line, e.Message)
	}

	return fmt.Sprintf("%s syntax error in %s: %s", e.Dialect, e.Filename, e.Message)
}

// Unwrap returns the underlying error.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrParse) succeed.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrParse
}

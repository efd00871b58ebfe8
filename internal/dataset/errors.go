package dataset

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by LoadError and ParseError.
var (
	ErrMissingColumn = errors.New("missing required column")
	ErrNoHeader      = errors.New("no header row")
	ErrEmptyValue    = errors.New("value is empty")
	ErrNotNumeric    = errors.New("value is not a finite number")
	ErrNegative      = errors.New("value is negative")
)

// LoadError reports that a source could not be read at all: it is missing,
// unreadable, malformed, or lacks a required column.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ParseError reports a cell that cannot be interpreted.
// Row is the 1-based data row, not counting the header.
type ParseError struct {
	Source string
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: row %d: column %q: invalid value %q: %v", e.Source, e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnknownSourceError is returned when an unregistered source type is requested.
type UnknownSourceError struct {
	Type      string
	Available []string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("unknown source type %q\nAvailable sources: %v\nHint: Check your source.type in waterdash.yaml", e.Type, e.Available)
}

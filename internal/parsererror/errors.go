// Package parsererror defines the error types raised while loading ledger
// files.
package parsererror

import "fmt"

// ParseError represents a failure to parse a single field of a ledger file.
type ParseError struct {
	File  string
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.File, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a ledger file whose content is structurally
// valid but semantically unusable.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// MissingDataError represents a required ledger file or field that is
// absent from the data directory.
type MissingDataError struct {
	FilePath string
	What     string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("%s: missing %s", e.FilePath, e.What)
}

package services

import (
  "fmt"
  "strings"
)

// ExtractionError means the structured extraction could not produce a usable
// analysis. Nothing is persisted when this is returned.
type ExtractionError struct {
  Stage string // "generate", "decode", "validate"
  Err   error
}

func (e *ExtractionError) Error() string {
  return fmt.Sprintf("extraction failed at %s: %v", e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error {
  return e.Err
}

// SelectionError means the negotiation email request referenced findings that
// cannot be composed from. Raised before any external call.
type SelectionError struct {
  Reason  string
  Missing []string
}

func (e *SelectionError) Error() string {
  if len(e.Missing) == 0 {
    return e.Reason
  }
  return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Missing, ", "))
}

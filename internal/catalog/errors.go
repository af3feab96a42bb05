// SPDX-License-Identifier: MIT
package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is used by callers that need an error for a missing palette.
// The repository itself reports absence through its boolean results.
var ErrNotFound = errors.New("catalog: palette not found")

// PersistenceError reports that the substrate could not be read, parsed or
// written
type PersistenceError struct {
	Op  string // "read", "decode", "write", "remove"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("catalog %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ValidationError reports a palette that fails the minimum-shape checks.
// Index is the zero-based position in an import batch, or -1 for a single
// create or update.
type ValidationError struct {
	Index  int
	Name   string
	Reason string
}

func (e *ValidationError) Error() string {
	label := "unnamed"
	if e.Name != "" {
		label = fmt.Sprintf("%q", e.Name)
	}
	if e.Index < 0 {
		return fmt.Sprintf("invalid palette %s: %s", label, e.Reason)
	}
	return fmt.Sprintf("record %d (%s): %s", e.Index+1, label, e.Reason)
}

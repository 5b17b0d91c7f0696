package migrate

import (
	"fmt"
	"strings"
)

// ConflictError reports a diff containing destructive or ambiguous changes.
// It is never auto-resolved: callers must confirm explicitly and regenerate
// with destructive changes allowed.
type ConflictError struct {
	Changes []Change
}

func (e *ConflictError) Error() string {
	descs := make([]string, len(e.Changes))
	for i, c := range e.Changes {
		descs[i] = c.Description()
	}
	return fmt.Sprintf("migration conflict: %d destructive change(s) require confirmation: %s",
		len(e.Changes), strings.Join(descs, "; "))
}

// StatementError reports the exact statement that failed during apply.
// The whole batch was rolled back; the ledger records none of it.
type StatementError struct {
	Version   string
	Index     int
	Statement string
	Err       error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("migration %s failed at statement %d (%q): %v",
		e.Version, e.Index+1, e.Statement, e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }

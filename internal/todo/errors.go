package todo

import (
	"fmt"

	"todoapp/internal/store"
)

// ErrNotFound is returned by Get, Update and Delete for unknown ids. It is
// the store's sentinel re-exported so adapters only depend on this package.
var ErrNotFound = store.ErrNotFound

// ValidationError reports a rejected input field. It is never retried and
// maps to a 400 response or a TODO_VALIDATION GraphQL error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

package store

import (
	"context"
	"errors"
)

// ErrAbsent is returned by Read when no value exists at the path. Absent is a
// successful outcome, not a failure; callers that treat "absent" as a default
// check for it with errors.Is.
var ErrAbsent = errors.New("no value at path")

// Store is the aggregate-store contract: a shared, hierarchical key-value
// store addressed by slash-delimited paths. Writes are full overwrites of a
// single path. There are no transactions and no conditional writes, so every
// multi-path mutation in this codebase is a bare read-then-write sequence
// with an open race window.
type Store interface {
	// Read returns the value at path, or ErrAbsent.
	Read(ctx context.Context, path string) (string, error)

	// Write overwrites the value at path. Not a merge.
	Write(ctx context.Context, path, value string) error

	// Delete removes path and all of its children. The normal vote and
	// analytics flows never call this; resets write explicit zeros and
	// "false" instead, so that existence-based permission rules on the
	// store side keep applying.
	Delete(ctx context.Context, path string) error

	// List returns every stored path equal to prefix or below it.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"votepulse/internal/config"
	"votepulse/internal/store"
)

// ErrStoreDown is the error injected by FailingStore.
var ErrStoreDown = errors.New("store unreachable")

// NewStore creates an in-memory store for tests.
func NewStore(t *testing.T) *store.SQLite {
	t.Helper()

	s, err := store.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// NewCatalog returns the built-in development catalog (dungeon, gallery,
// tracker).
func NewCatalog(t *testing.T) *config.Catalog {
	t.Helper()

	catalog, err := config.LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return catalog
}

// FailingStore wraps a Store and injects failures for selected operations,
// for exercising the error paths of components built on the store.
type FailingStore struct {
	Inner store.Store

	FailReads  bool
	FailWrites bool
	// FailWritePaths fails writes only for specific paths, for simulating
	// partial commits.
	FailWritePaths map[string]bool
}

// Read delegates or fails.
func (f *FailingStore) Read(ctx context.Context, path string) (string, error) {
	if f.FailReads {
		return "", ErrStoreDown
	}
	return f.Inner.Read(ctx, path)
}

// Write delegates or fails.
func (f *FailingStore) Write(ctx context.Context, path, value string) error {
	if f.FailWrites || f.FailWritePaths[path] {
		return ErrStoreDown
	}
	return f.Inner.Write(ctx, path, value)
}

// Delete delegates or fails.
func (f *FailingStore) Delete(ctx context.Context, path string) error {
	if f.FailWrites {
		return ErrStoreDown
	}
	return f.Inner.Delete(ctx, path)
}

// List delegates or fails.
func (f *FailingStore) List(ctx context.Context, prefix string) ([]string, error) {
	if f.FailReads {
		return nil, ErrStoreDown
	}
	return f.Inner.List(ctx, prefix)
}

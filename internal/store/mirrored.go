package store

import (
	"context"
	"errors"
	"log/slog"
)

// Mirrored layers a local cache under the remote store. Reads go remote
// first; the cache only answers when the remote store errors outright, so a
// successful remote read (including "absent") is never overridden by stale
// local data. Successful reads and writes refresh the cache best-effort.
type Mirrored struct {
	remote Store
	cache  Store
}

// NewMirrored wraps remote with cache as its degraded-mode fallback.
func NewMirrored(remote, cache Store) *Mirrored {
	return &Mirrored{remote: remote, cache: cache}
}

// Read returns the remote value, falling back to the cache when the remote
// store is unreachable.
func (m *Mirrored) Read(ctx context.Context, path string) (string, error) {
	value, err := m.remote.Read(ctx, path)
	if err == nil {
		if cerr := m.cache.Write(ctx, path, value); cerr != nil {
			slog.Warn("cache refresh failed", "path", path, "error", cerr)
		}
		return value, nil
	}
	if errors.Is(err, ErrAbsent) {
		return "", err
	}
	slog.Warn("remote read failed, trying cache", "path", path, "error", err)
	cached, cerr := m.cache.Read(ctx, path)
	if cerr != nil {
		// Surface the remote error; the cache miss is incidental.
		return "", err
	}
	return cached, nil
}

// Write writes to the remote store and mirrors the value locally. A cache
// failure is logged and ignored; a remote failure is the caller's problem.
func (m *Mirrored) Write(ctx context.Context, path, value string) error {
	if err := m.remote.Write(ctx, path, value); err != nil {
		return err
	}
	if err := m.cache.Write(ctx, path, value); err != nil {
		slog.Warn("cache mirror failed", "path", path, "error", err)
	}
	return nil
}

// Delete removes the path remotely and locally.
func (m *Mirrored) Delete(ctx context.Context, path string) error {
	if err := m.remote.Delete(ctx, path); err != nil {
		return err
	}
	if err := m.cache.Delete(ctx, path); err != nil {
		slog.Warn("cache delete failed", "path", path, "error", err)
	}
	return nil
}

// List lists remote paths, falling back to the cache on remote failure.
func (m *Mirrored) List(ctx context.Context, prefix string) ([]string, error) {
	paths, err := m.remote.List(ctx, prefix)
	if err == nil {
		return paths, nil
	}
	slog.Warn("remote list failed, trying cache", "prefix", prefix, "error", err)
	cached, cerr := m.cache.List(ctx, prefix)
	if cerr != nil {
		return nil, err
	}
	return cached, nil
}

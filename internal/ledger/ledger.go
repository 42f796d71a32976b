// Package ledger owns the per-project vote state: the shared count and one
// boolean flag per (project, visitor) pair. All mutation of those paths
// funnels through this package; nothing else in the codebase writes under
// votes/.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"votepulse/internal/models"
	"votepulse/internal/store"
)

// ErrNoIdentity is returned when a toggle is attempted without a usable
// visitor token.
var ErrNoIdentity = errors.New("visitor identity unavailable")

// ErrPartialCommit is returned when the count write succeeded but the voter
// flag write failed. The store has no multi-path transaction, so the ledger
// does not roll back; the inconsistency stands until the next toggle.
var ErrPartialCommit = errors.New("count updated but voter flag write failed")

// Ledger maintains vote counts against the aggregate store.
type Ledger struct {
	store store.Store
}

// New creates a ledger over the given store.
func New(s store.Store) *Ledger {
	return &Ledger{store: s}
}

// Toggle flips the visitor's vote on a project and adjusts the shared count.
// The read-then-write steps are strictly sequential within one call; across
// calls the store is last-write-wins per path, so two overlapping toggles
// from the same visitor can still interleave. The client's single-flight
// guard (disable the control while a toggle is in flight) is the only
// mitigation for that.
func (l *Ledger) Toggle(ctx context.Context, project, visitor string) (models.VoteState, error) {
	if visitor == "" {
		return models.VoteState{}, ErrNoIdentity
	}

	voterPath := store.VoterPath(project, visitor)
	voted, err := l.readFlag(ctx, voterPath)
	if err != nil {
		return models.VoteState{}, fmt.Errorf("read voter flag: %w", err)
	}
	target := !voted

	countPath := store.VoteCountPath(project)
	count, err := l.readCount(ctx, countPath)
	if err != nil {
		return models.VoteState{}, fmt.Errorf("read count: %w", err)
	}

	newCount := count - 1
	if target {
		newCount = count + 1
	}
	// Never below zero, even if a racing retraction already drained it.
	if newCount < 0 {
		newCount = 0
	}

	if err := l.store.Write(ctx, countPath, strconv.Itoa(newCount)); err != nil {
		return models.VoteState{}, fmt.Errorf("write count: %w", err)
	}
	// Retractions keep an explicit "false" rather than deleting the flag, so
	// repeated toggling stays idempotent in shape.
	if err := l.store.Write(ctx, voterPath, strconv.FormatBool(target)); err != nil {
		slog.Error("vote partially committed",
			"count_path", countPath, "voter_path", voterPath, "error", err)
		return models.VoteState{}, fmt.Errorf("%w: %w", ErrPartialCommit, err)
	}

	return models.VoteState{Count: newCount, Voted: target}, nil
}

// Status reads the current count and the visitor's own flag without
// modifying anything.
func (l *Ledger) Status(ctx context.Context, project, visitor string) (models.VoteState, error) {
	count, err := l.readCount(ctx, store.VoteCountPath(project))
	if err != nil {
		return models.VoteState{}, fmt.Errorf("read count: %w", err)
	}
	voted := false
	if visitor != "" {
		voted, err = l.readFlag(ctx, store.VoterPath(project, visitor))
		if err != nil {
			return models.VoteState{}, fmt.Errorf("read voter flag: %w", err)
		}
	}
	return models.VoteState{Count: count, Voted: voted}, nil
}

// Reset zeroes a project's count and sets every recorded voter flag to
// "false". Flags are overwritten, not deleted: deleting them would let
// existence-keyed store permission rules reopen votes that should stay
// closed. Only the administrative reset flow calls this.
func (l *Ledger) Reset(ctx context.Context, project string) error {
	if err := l.store.Write(ctx, store.VoteCountPath(project), "0"); err != nil {
		return fmt.Errorf("reset count for %s: %w", project, err)
	}
	voters, err := l.store.List(ctx, store.VotersPrefix(project))
	if err != nil {
		return fmt.Errorf("list voters for %s: %w", project, err)
	}
	for _, path := range voters {
		if err := l.store.Write(ctx, path, "false"); err != nil {
			return fmt.Errorf("reset voter flag %s: %w", path, err)
		}
	}
	return nil
}

// readFlag treats absent and "false" identically as not-voted.
func (l *Ledger) readFlag(ctx context.Context, path string) (bool, error) {
	value, err := l.store.Read(ctx, path)
	if errors.Is(err, store.ErrAbsent) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

// readCount treats absent as zero and clamps malformed or negative stored
// values to zero.
func (l *Ledger) readCount(ctx context.Context, path string) (int, error) {
	value, err := l.store.Read(ctx, path)
	if errors.Is(err, store.ErrAbsent) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		slog.Warn("malformed count in store, treating as zero", "path", path, "value", value)
		return 0, nil
	}
	return n, nil
}

// Package analytics maintains the per-day derived counters. The net upvote
// metric is a resynchronized mirror of the ledger count, never an
// independently accumulated delta; the event counters measure raw activity
// and only ever grow. Recording failures are logged and swallowed: analytics
// must never fail the user-facing vote that already completed.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"votepulse/internal/models"
	"votepulse/internal/store"
)

// Recorder writes daily counters to the aggregate store.
type Recorder struct {
	store store.Store
	now   func() time.Time
}

// New creates a recorder. now is swappable for tests.
func New(s store.Store) *Recorder {
	return &Recorder{store: s, now: time.Now}
}

// NewAt creates a recorder with a fixed clock.
func NewAt(s store.Store, now func() time.Time) *Recorder {
	return &Recorder{store: s, now: now}
}

// Today returns the current calendar-day key.
func (r *Recorder) Today() string {
	return r.now().Format(store.DateFormat)
}

// RecordVisit bumps the day's site-wide visit counter.
func (r *Recorder) RecordVisit(ctx context.Context) {
	r.increment(ctx, store.TotalVisitsPath(r.Today()), 1)
}

// RecordView bumps the day's view counter for a project. Views have no undo,
// so a plain increment needs no reconciliation.
func (r *Recorder) RecordView(ctx context.Context, project string) {
	r.increment(ctx, store.ProjectViewsPath(r.Today(), project), 1)
}

// RecordSession adds reported session seconds for a project. This is the
// unload-beacon target; delivery is best-effort by design.
func (r *Recorder) RecordSession(ctx context.Context, project string, seconds int) {
	if seconds <= 0 {
		return
	}
	r.increment(ctx, store.SessionDurationPath(r.Today(), project), seconds)
}

// OnVoteToggled resynchronizes the day's net upvote mirror to the ledger's
// authoritative count and separately records the transition event. The
// overwrite is what keeps repeated toggling from inflating the net metric;
// "always +1 on vote" is exactly the bug this exists to avoid.
func (r *Recorder) OnVoteToggled(ctx context.Context, project string, newCount int, votedOn bool) {
	date := r.Today()
	if newCount < 0 {
		newCount = 0
	}
	if err := r.store.Write(ctx, store.UpvotesPath(date, project), strconv.Itoa(newCount)); err != nil {
		slog.Error("upvote resync failed", "project", project, "error", err)
	}

	eventPath := store.UnvoteEventsPath(date, project)
	if votedOn {
		eventPath = store.UpvoteEventsPath(date, project)
	}
	r.increment(ctx, eventPath, 1)
}

// Day assembles the snapshot for a calendar day. Counters that were never
// touched are simply absent from the maps.
func (r *Recorder) Day(ctx context.Context, date string) (models.DaySnapshot, error) {
	snap := models.NewDaySnapshot(date)
	prefix := store.DayPrefix(date)

	paths, err := r.store.List(ctx, prefix)
	if err != nil {
		return snap, fmt.Errorf("list day %s: %w", date, err)
	}
	for _, path := range paths {
		value, err := r.readInt(ctx, path)
		if err != nil {
			return snap, fmt.Errorf("read %s: %w", path, err)
		}
		rest := strings.TrimPrefix(path, prefix+"/")
		counter, project, _ := strings.Cut(rest, "/")
		switch counter {
		case "total_visits":
			snap.TotalVisits = value
		case "project_views":
			snap.ProjectViews[project] = value
		case "upvotes":
			snap.Upvotes[project] = value
		case "upvote_events":
			snap.UpvoteEvents[project] = value
		case "unvote_events":
			snap.UnvoteEvents[project] = value
		case "session_duration":
			snap.SessionDuration[project] = value
		}
	}
	return snap, nil
}

// ResetDay zeroes every counter for the given date across the given
// projects. Counters are overwritten with zero, never deleted. Unlike the
// record paths this returns errors: the caller is an administrator who needs
// to know the reset did not complete.
func (r *Recorder) ResetDay(ctx context.Context, date string, projects []string) error {
	if err := r.store.Write(ctx, store.TotalVisitsPath(date), "0"); err != nil {
		return fmt.Errorf("reset total_visits: %w", err)
	}
	for _, p := range projects {
		for _, path := range []string{
			store.ProjectViewsPath(date, p),
			store.UpvotesPath(date, p),
			store.UpvoteEventsPath(date, p),
			store.UnvoteEventsPath(date, p),
			store.SessionDurationPath(date, p),
		} {
			if err := r.store.Write(ctx, path, "0"); err != nil {
				return fmt.Errorf("reset %s: %w", path, err)
			}
		}
	}
	return nil
}

// increment is a bare read-then-write; concurrent increments can lose
// updates. Accepted for activity counters.
func (r *Recorder) increment(ctx context.Context, path string, delta int) {
	current, err := r.readInt(ctx, path)
	if err != nil {
		slog.Error("analytics read failed", "path", path, "error", err)
		return
	}
	if err := r.store.Write(ctx, path, strconv.Itoa(current+delta)); err != nil {
		slog.Error("analytics write failed", "path", path, "error", err)
	}
}

func (r *Recorder) readInt(ctx context.Context, path string) (int, error) {
	value, err := r.store.Read(ctx, path)
	if errors.Is(err, store.ErrAbsent) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		slog.Warn("malformed counter in store, treating as zero", "path", path, "value", value)
		return 0, nil
	}
	return n, nil
}

package analytics

import (
	"context"
	"testing"
	"time"

	"votepulse/internal/ledger"
	"votepulse/internal/store"
	"votepulse/internal/testutil"
)

func fixedClock() time.Time {
	return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
}

const fixedDate = "2026-08-30"

func TestRecordVisitAndView(t *testing.T) {
	s := testutil.NewStore(t)
	r := NewAt(s, fixedClock)
	ctx := context.Background()

	r.RecordVisit(ctx)
	r.RecordVisit(ctx)
	r.RecordView(ctx, "dungeon")

	snap, err := r.Day(ctx, fixedDate)
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if snap.TotalVisits != 2 {
		t.Errorf("TotalVisits = %d, want 2", snap.TotalVisits)
	}
	if snap.ProjectViews["dungeon"] != 1 {
		t.Errorf("ProjectViews[dungeon] = %d, want 1", snap.ProjectViews["dungeon"])
	}
}

func TestRecordSession(t *testing.T) {
	s := testutil.NewStore(t)
	r := NewAt(s, fixedClock)
	ctx := context.Background()

	r.RecordSession(ctx, "dungeon", 30)
	r.RecordSession(ctx, "dungeon", 45)
	r.RecordSession(ctx, "dungeon", 0)
	r.RecordSession(ctx, "dungeon", -5)

	snap, _ := r.Day(ctx, fixedDate)
	if snap.SessionDuration["dungeon"] != 75 {
		t.Errorf("SessionDuration[dungeon] = %d, want 75", snap.SessionDuration["dungeon"])
	}
}

// The regression this package exists for: after N on/off toggle pairs the
// net upvote metric must equal the ledger count, not accumulate N.
func TestNetMetricNonInflation(t *testing.T) {
	s := testutil.NewStore(t)
	l := ledger.New(s)
	r := NewAt(s, fixedClock)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		state, err := l.Toggle(ctx, "dungeon", "visitor1")
		if err != nil {
			t.Fatalf("Toggle %d: %v", i, err)
		}
		r.OnVoteToggled(ctx, "dungeon", state.Count, state.Voted)
	}

	snap, err := r.Day(ctx, fixedDate)
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if snap.Upvotes["dungeon"] != 0 {
		t.Errorf("Upvotes[dungeon] = %d, want 0 (resynchronized, not accumulated)", snap.Upvotes["dungeon"])
	}
	if snap.UpvoteEvents["dungeon"] != 10 {
		t.Errorf("UpvoteEvents[dungeon] = %d, want 10", snap.UpvoteEvents["dungeon"])
	}
	if snap.UnvoteEvents["dungeon"] != 10 {
		t.Errorf("UnvoteEvents[dungeon] = %d, want 10", snap.UnvoteEvents["dungeon"])
	}
}

func TestOnVoteToggledSingleVote(t *testing.T) {
	s := testutil.NewStore(t)
	r := NewAt(s, fixedClock)
	ctx := context.Background()

	r.OnVoteToggled(ctx, "dungeon", 1, true)

	snap, _ := r.Day(ctx, fixedDate)
	if snap.Upvotes["dungeon"] != 1 {
		t.Errorf("Upvotes = %d, want 1", snap.Upvotes["dungeon"])
	}
	if snap.UpvoteEvents["dungeon"] != 1 {
		t.Errorf("UpvoteEvents = %d, want 1", snap.UpvoteEvents["dungeon"])
	}
	if snap.UnvoteEvents["dungeon"] != 0 {
		t.Errorf("UnvoteEvents = %d, want 0", snap.UnvoteEvents["dungeon"])
	}

	r.OnVoteToggled(ctx, "dungeon", 0, false)

	snap, _ = r.Day(ctx, fixedDate)
	if snap.Upvotes["dungeon"] != 0 {
		t.Errorf("Upvotes after retraction = %d, want 0", snap.Upvotes["dungeon"])
	}
	if snap.UnvoteEvents["dungeon"] != 1 {
		t.Errorf("UnvoteEvents = %d, want 1", snap.UnvoteEvents["dungeon"])
	}
}

func TestOnVoteToggledClampsNegativeCount(t *testing.T) {
	s := testutil.NewStore(t)
	r := NewAt(s, fixedClock)
	ctx := context.Background()

	r.OnVoteToggled(ctx, "dungeon", -3, false)

	snap, _ := r.Day(ctx, fixedDate)
	if snap.Upvotes["dungeon"] != 0 {
		t.Errorf("Upvotes = %d, want 0 for negative input", snap.Upvotes["dungeon"])
	}
}

func TestEventCountersMonotonic(t *testing.T) {
	s := testutil.NewStore(t)
	r := NewAt(s, fixedClock)
	ctx := context.Background()

	prevUp, prevDown := 0, 0
	for i := 0; i < 6; i++ {
		votedOn := i%2 == 0
		count := 0
		if votedOn {
			count = 1
		}
		r.OnVoteToggled(ctx, "dungeon", count, votedOn)

		snap, _ := r.Day(ctx, fixedDate)
		if snap.UpvoteEvents["dungeon"] < prevUp || snap.UnvoteEvents["dungeon"] < prevDown {
			t.Fatalf("event counters decreased at step %d: up %d->%d down %d->%d",
				i, prevUp, snap.UpvoteEvents["dungeon"], prevDown, snap.UnvoteEvents["dungeon"])
		}
		prevUp, prevDown = snap.UpvoteEvents["dungeon"], snap.UnvoteEvents["dungeon"]
	}
}

func TestRecordFailuresAreSwallowed(t *testing.T) {
	inner := testutil.NewStore(t)
	failing := &testutil.FailingStore{Inner: inner, FailReads: true, FailWrites: true}
	r := NewAt(failing, fixedClock)
	ctx := context.Background()

	// None of these may panic or surface an error.
	r.RecordVisit(ctx)
	r.RecordView(ctx, "dungeon")
	r.RecordSession(ctx, "dungeon", 10)
	r.OnVoteToggled(ctx, "dungeon", 1, true)
}

func TestDayEmpty(t *testing.T) {
	r := NewAt(testutil.NewStore(t), fixedClock)

	snap, err := r.Day(context.Background(), fixedDate)
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if snap.TotalVisits != 0 || len(snap.ProjectViews) != 0 || len(snap.Upvotes) != 0 {
		t.Errorf("empty day snapshot not zero: %+v", snap)
	}
}

func TestDayIsolatedByDate(t *testing.T) {
	s := testutil.NewStore(t)
	r := NewAt(s, fixedClock)
	ctx := context.Background()

	r.RecordView(ctx, "dungeon")
	// A different day's counter must not bleed in.
	s.Write(ctx, store.ProjectViewsPath("2026-08-29", "dungeon"), "50")

	snap, _ := r.Day(ctx, fixedDate)
	if snap.ProjectViews["dungeon"] != 1 {
		t.Errorf("ProjectViews = %d, want 1 (other days excluded)", snap.ProjectViews["dungeon"])
	}
}

func TestResetDay(t *testing.T) {
	s := testutil.NewStore(t)
	r := NewAt(s, fixedClock)
	ctx := context.Background()

	r.RecordVisit(ctx)
	r.RecordView(ctx, "dungeon")
	r.OnVoteToggled(ctx, "dungeon", 3, true)
	r.RecordSession(ctx, "dungeon", 60)

	if err := r.ResetDay(ctx, fixedDate, []string{"dungeon", "gallery"}); err != nil {
		t.Fatalf("ResetDay: %v", err)
	}

	snap, _ := r.Day(ctx, fixedDate)
	if snap.TotalVisits != 0 || snap.ProjectViews["dungeon"] != 0 ||
		snap.Upvotes["dungeon"] != 0 || snap.UpvoteEvents["dungeon"] != 0 ||
		snap.SessionDuration["dungeon"] != 0 {
		t.Errorf("counters survived ResetDay: %+v", snap)
	}

	// Zeroed by overwrite, not deletion.
	if got, err := s.Read(ctx, store.UpvotesPath(fixedDate, "dungeon")); err != nil || got != "0" {
		t.Errorf("upvotes path after reset = %q, %v; want explicit 0", got, err)
	}
}

func TestResetDayErrorsSurface(t *testing.T) {
	failing := &testutil.FailingStore{Inner: testutil.NewStore(t), FailWrites: true}
	r := NewAt(failing, fixedClock)

	if err := r.ResetDay(context.Background(), fixedDate, []string{"dungeon"}); err == nil {
		t.Error("ResetDay with failing store returned nil; the administrator must see the failure")
	}
}

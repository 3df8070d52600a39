package mood

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/foxseedlab/wasit/internal/clock"
	"github.com/foxseedlab/wasit/internal/repository"
)

type mockMoodRepository struct {
	added    []repository.MoodTally
	listed   []repository.MoodTally
	from, to time.Time
	err      error
}

func (m *mockMoodRepository) AddMoodTally(ctx context.Context, delta repository.MoodTally) error {
	if m.err != nil {
		return m.err
	}
	m.added = append(m.added, delta)
	return nil
}

func (m *mockMoodRepository) ListMoodTallies(ctx context.Context, guildID string, from, to time.Time) ([]repository.MoodTally, error) {
	m.from, m.to = from, to
	return m.listed, m.err
}

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	return loc
}

func TestTracker_RecordUsesLocalCalendarDay(t *testing.T) {
	// 2026-03-01 20:00 UTC is already 2026-03-02 in Jakarta.
	fc := clock.NewFake(time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC))
	repo := &mockMoodRepository{}
	tr := NewTracker(repo, NewKeywordClassifier(), fc, mustLocation(t, "Asia/Jakarta"), 30, nil)

	score, err := tr.Record(context.Background(), "guild-1", "mantap gas")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.Positive != 2 {
		t.Fatalf("expected 2 positive hits, got %+v", score)
	}
	if len(repo.added) != 1 {
		t.Fatalf("expected 1 tally delta, got %d", len(repo.added))
	}
	got := repo.added[0]
	if !got.Day.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected day key: %v", got.Day)
	}
	if got.Messages != 1 || got.Positive != 2 || got.GuildID != "guild-1" {
		t.Fatalf("unexpected delta: %+v", got)
	}
}

func TestTracker_RecordWrapsRepositoryError(t *testing.T) {
	boom := errors.New("boom")
	repo := &mockMoodRepository{err: boom}
	tr := NewTracker(repo, NewKeywordClassifier(), clock.NewFake(time.Now()), time.UTC, 30, nil)

	if _, err := tr.Record(context.Background(), "guild-1", "halo"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}

func TestTracker_SummaryAggregatesRange(t *testing.T) {
	fc := clock.NewFake(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	repo := &mockMoodRepository{
		listed: []repository.MoodTally{
			{Positive: 2, Neutral: 1, Messages: 3},
			{Negative: 1, Toxic: 1, Messages: 2},
		},
	}
	tr := NewTracker(repo, NewKeywordClassifier(), fc, time.UTC, 30, nil)

	tally, err := tr.Summary(context.Background(), "guild-1", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.from.Equal(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)) || !repo.to.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected range: %v - %v", repo.from, repo.to)
	}
	if tally.Days != 7 || tally.Messages != 5 || tally.Total() != 5 {
		t.Fatalf("unexpected tally: %+v", tally)
	}
	if tally.Dominant() != MoodPositive {
		t.Fatalf("expected positive to dominate, got %s", tally.Dominant())
	}
	if got := tally.Percent(MoodPositive); got != 40 {
		t.Fatalf("expected 40%%, got %v", got)
	}
}

func TestTracker_ClampDays(t *testing.T) {
	tr := NewTracker(&mockMoodRepository{}, NewKeywordClassifier(), clock.NewFake(time.Now()), time.UTC, 30, nil)
	if got := tr.ClampDays(0); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := tr.ClampDays(90); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}
	if got := tr.ClampDays(7); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}

func TestTally_PercentEmpty(t *testing.T) {
	if got := (Tally{}).Percent(MoodToxic); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

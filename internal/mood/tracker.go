package mood

import (
	"context"
	"fmt"
	"time"

	"github.com/foxseedlab/wasit/internal/clock"
	"github.com/foxseedlab/wasit/internal/repository"
	"github.com/foxseedlab/wasit/internal/telemetry"
)

// Tally aggregates scores over a range of days.
type Tally struct {
	Score
	Messages int
	Days     int
}

func (t Tally) Total() int {
	return t.Positive + t.Neutral + t.Negative + t.Toxic
}

// Percent returns the share of m in the tally, 0 when nothing was recorded.
func (t Tally) Percent(m Mood) float64 {
	total := t.Total()
	if total == 0 {
		return 0
	}
	return float64(t.Count(m)) * 100 / float64(total)
}

type Tracker struct {
	repo       repository.MoodRepository
	classifier Classifier
	clock      clock.Clock
	location   *time.Location
	maxDays    int
	metrics    *telemetry.Metrics
}

func NewTracker(repo repository.MoodRepository, classifier Classifier, c clock.Clock, loc *time.Location, maxDays int, metrics *telemetry.Metrics) *Tracker {
	if loc == nil {
		loc = time.UTC
	}
	if maxDays < 1 {
		maxDays = 1
	}
	return &Tracker{
		repo:       repo,
		classifier: classifier,
		clock:      c,
		location:   loc,
		maxDays:    maxDays,
		metrics:    metrics,
	}
}

func (t *Tracker) MaxDays() int {
	return t.maxDays
}

// Record classifies text and adds it to today's tally for the guild.
func (t *Tracker) Record(ctx context.Context, guildID, text string) (Score, error) {
	score := t.classifier.Classify(text)
	err := t.repo.AddMoodTally(ctx, repository.MoodTally{
		GuildID:  guildID,
		Day:      t.dayOf(t.clock.Now()),
		Positive: score.Positive,
		Neutral:  score.Neutral,
		Negative: score.Negative,
		Toxic:    score.Toxic,
		Messages: 1,
	})
	if err != nil {
		return score, fmt.Errorf("add mood tally: %w", err)
	}
	t.metrics.MoodRecorded(string(score.Dominant()))
	return score, nil
}

// Summary totals the last days calendar days including today. days is clamped
// to [1, MaxDays].
func (t *Tracker) Summary(ctx context.Context, guildID string, days int) (Tally, error) {
	days = t.ClampDays(days)
	to := t.dayOf(t.clock.Now())
	from := to.AddDate(0, 0, -(days - 1))
	list, err := t.repo.ListMoodTallies(ctx, guildID, from, to)
	if err != nil {
		return Tally{}, fmt.Errorf("list mood tallies: %w", err)
	}
	out := Tally{Days: days}
	for _, row := range list {
		out.Score = out.Score.add(Score{
			Positive: row.Positive,
			Neutral:  row.Neutral,
			Negative: row.Negative,
			Toxic:    row.Toxic,
		})
		out.Messages += row.Messages
	}
	return out, nil
}

func (t *Tracker) ClampDays(days int) int {
	if days < 1 {
		return 1
	}
	if days > t.maxDays {
		return t.maxDays
	}
	return days
}

func (t *Tracker) dayOf(now time.Time) time.Time {
	y, m, d := now.In(t.location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

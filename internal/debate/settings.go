package debate

import (
	"fmt"
	"strings"
	"time"
)

type Settings struct {
	Topic         string
	RoundDuration time.Duration
	RoundCount    int
}

// Limits bound the settings a session can be created with. SetupTimeout ends
// sessions that are never started; zero disables it.
type Limits struct {
	MinRoundDuration time.Duration
	MaxRoundDuration time.Duration
	MaxRoundCount    int
	SetupTimeout     time.Duration
}

func DefaultLimits() Limits {
	return Limits{
		MinRoundDuration: 10 * time.Second,
		MaxRoundDuration: time.Hour,
		MaxRoundCount:    20,
		SetupTimeout:     30 * time.Minute,
	}
}

func (l Limits) Validate(s Settings) error {
	if strings.TrimSpace(s.Topic) == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidSettings)
	}
	if s.RoundDuration < l.MinRoundDuration || s.RoundDuration > l.MaxRoundDuration {
		return fmt.Errorf("%w: round duration must be between %s and %s, got %s",
			ErrInvalidSettings, l.MinRoundDuration, l.MaxRoundDuration, s.RoundDuration)
	}
	if s.RoundCount < 1 || s.RoundCount > l.MaxRoundCount {
		return fmt.Errorf("%w: round count must be between 1 and %d, got %d",
			ErrInvalidSettings, l.MaxRoundCount, s.RoundCount)
	}
	return nil
}

package config

import (
	"fmt"
	"time"
)

type Config struct {
	Env                   string
	DiscordToken          string
	DiscordGuildID        string
	DatabaseURL           string
	Timezone              string
	DebateMinRoundSeconds int
	DebateMaxRoundSeconds int
	DebateMaxRounds       int
	DebateSetupTimeoutMin int
	DebateWebhookURL      string
	NotifyQueueSize       int
	MoodTrackingEnabled   bool
	MoodMaxDays           int
	MetricsAddr           string
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	if c.DebateMinRoundSeconds <= 0 {
		return fmt.Errorf("DEBATE_MIN_ROUND_SECONDS must be positive, got %d", c.DebateMinRoundSeconds)
	}
	if c.DebateMaxRoundSeconds < c.DebateMinRoundSeconds {
		return fmt.Errorf("DEBATE_MAX_ROUND_SECONDS must be >= DEBATE_MIN_ROUND_SECONDS, got %d", c.DebateMaxRoundSeconds)
	}
	if c.DebateMaxRounds <= 0 {
		return fmt.Errorf("DEBATE_MAX_ROUNDS must be positive, got %d", c.DebateMaxRounds)
	}
	if c.DebateSetupTimeoutMin < 0 {
		return fmt.Errorf("DEBATE_SETUP_TIMEOUT_MIN must not be negative, got %d", c.DebateSetupTimeoutMin)
	}
	if c.NotifyQueueSize <= 0 {
		return fmt.Errorf("NOTIFY_QUEUE_SIZE must be positive, got %d", c.NotifyQueueSize)
	}
	if c.MoodMaxDays <= 0 {
		return fmt.Errorf("MOOD_MAX_DAYS must be positive, got %d", c.MoodMaxDays)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("BOT_TIMEZONE is invalid: %w", err)
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "DISCORD_TOKEN", value: c.DiscordToken},
		{name: "DISCORD_GUILD_ID", value: c.DiscordGuildID},
		{name: "BOT_TIMEZONE", value: c.Timezone},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Location falls back to UTC; Validate rejects unknown zones before this is used.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

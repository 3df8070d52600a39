package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/foxseedlab/wasit/internal/config"
	"github.com/joho/godotenv"
)

type envConfig struct {
	Env                   string `env:"ENV" envDefault:"production"`
	DiscordToken          string `env:"DISCORD_TOKEN,required"`
	DiscordGuildID        string `env:"DISCORD_GUILD_ID,required"`
	DatabaseURL           string `env:"DATABASE_URL"`
	Timezone              string `env:"BOT_TIMEZONE" envDefault:"Asia/Jakarta"`
	DebateMinRoundSeconds int    `env:"DEBATE_MIN_ROUND_SECONDS" envDefault:"10"`
	DebateMaxRoundSeconds int    `env:"DEBATE_MAX_ROUND_SECONDS" envDefault:"3600"`
	DebateMaxRounds       int    `env:"DEBATE_MAX_ROUNDS" envDefault:"20"`
	DebateSetupTimeoutMin int    `env:"DEBATE_SETUP_TIMEOUT_MIN" envDefault:"30"`
	DebateWebhookURL      string `env:"DEBATE_WEBHOOK_URL"`
	NotifyQueueSize       int    `env:"NOTIFY_QUEUE_SIZE" envDefault:"128"`
	MoodTrackingEnabled   bool   `env:"MOOD_TRACKING_ENABLED" envDefault:"true"`
	MoodMaxDays           int    `env:"MOOD_MAX_DAYS" envDefault:"30"`
	MetricsAddr           string `env:"METRICS_ADDR"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*internalconfig.Config, error) {
	_ = godotenv.Load()

	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                   raw.Env,
		DiscordToken:          raw.DiscordToken,
		DiscordGuildID:        raw.DiscordGuildID,
		DatabaseURL:           raw.DatabaseURL,
		Timezone:              raw.Timezone,
		DebateMinRoundSeconds: raw.DebateMinRoundSeconds,
		DebateMaxRoundSeconds: raw.DebateMaxRoundSeconds,
		DebateMaxRounds:       raw.DebateMaxRounds,
		DebateSetupTimeoutMin: raw.DebateSetupTimeoutMin,
		DebateWebhookURL:      raw.DebateWebhookURL,
		NotifyQueueSize:       raw.NotifyQueueSize,
		MoodTrackingEnabled:   raw.MoodTrackingEnabled,
		MoodMaxDays:           raw.MoodMaxDays,
		MetricsAddr:           raw.MetricsAddr,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

package config

import "testing"

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_GUILD_ID", "guild")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Env != "production" || cfg.Timezone != "Asia/Jakarta" {
		t.Fatalf("unexpected defaults: env=%s tz=%s", cfg.Env, cfg.Timezone)
	}
	if cfg.DebateMinRoundSeconds != 10 || cfg.DebateMaxRounds != 20 || cfg.DebateSetupTimeoutMin != 30 {
		t.Fatalf("unexpected debate defaults: %+v", cfg)
	}
	if !cfg.MoodTrackingEnabled || cfg.NotifyQueueSize != 128 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("DISCORD_GUILD_ID", "guild")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing DISCORD_TOKEN")
	}
}

func TestLoad_InvalidRange(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_GUILD_ID", "guild")
	t.Setenv("DEBATE_MAX_ROUNDS", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for DEBATE_MAX_ROUNDS=0")
	}
}

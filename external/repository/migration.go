package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS debates (
		id UUID PRIMARY KEY,
		guild_id TEXT NOT NULL,
		channel_id TEXT NOT NULL,
		topic TEXT NOT NULL DEFAULT '',
		created_by TEXT NOT NULL,
		round_duration_seconds BIGINT NOT NULL,
		round_count INTEGER NOT NULL,
		rounds_played INTEGER NOT NULL,
		end_reason TEXT NOT NULL,
		pro_members TEXT[] NOT NULL DEFAULT '{}',
		kontra_members TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL,
		started_at TIMESTAMPTZ,
		ended_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_debates_channel ON debates (guild_id, channel_id, ended_at DESC)`,
	`CREATE TABLE IF NOT EXISTS debate_points (
		debate_id UUID NOT NULL REFERENCES debates(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		side TEXT NOT NULL,
		user_id TEXT NOT NULL,
		content TEXT NOT NULL,
		round INTEGER NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (debate_id, seq)
	)`,
	`CREATE TABLE IF NOT EXISTS voice_lobbies (
		guild_id TEXT PRIMARY KEY,
		channel_id TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS mood_tallies (
		guild_id TEXT NOT NULL,
		day DATE NOT NULL,
		positive INTEGER NOT NULL DEFAULT 0,
		neutral INTEGER NOT NULL DEFAULT 0,
		negative INTEGER NOT NULL DEFAULT 0,
		toxic INTEGER NOT NULL DEFAULT 0,
		messages INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (guild_id, day)
	)`,
}

func RunMigration(ctx context.Context, pool *pgxpool.Pool) error {
	for _, s := range migrationStatements {
		stmt := strings.TrimSpace(s)
		if stmt == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/foxseedlab/wasit/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.Repository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) SaveDebate(ctx context.Context, record repository.DebateRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO debates (id, guild_id, channel_id, topic, created_by, round_duration_seconds,
			round_count, rounds_played, end_reason, pro_members, kontra_members, created_at, started_at, ended_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (id) DO NOTHING`,
		record.ID, record.GuildID, record.ChannelID, record.Topic, record.CreatedBy, record.RoundDurationSeconds,
		record.RoundCount, record.RoundsPlayed, record.EndReason, nonNil(record.Pro), nonNil(record.Kontra),
		record.CreatedAt, record.StartedAt, record.EndedAt)
	if err != nil {
		return fmt.Errorf("insert debate: %w", err)
	}

	if len(record.Points) > 0 {
		batch := &pgx.Batch{}
		for _, p := range record.Points {
			batch.Queue(
				`INSERT INTO debate_points (debate_id, seq, side, user_id, content, round, recorded_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)
				 ON CONFLICT (debate_id, seq) DO NOTHING`,
				record.ID, p.Seq, p.Side, p.UserID, p.Text, p.Round, p.RecordedAt)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert debate points: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func (r *PostgresRepository) SetVoiceLobby(ctx context.Context, lobby repository.VoiceLobby) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO voice_lobbies (guild_id, channel_id, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (guild_id) DO UPDATE SET channel_id = EXCLUDED.channel_id, updated_at = EXCLUDED.updated_at`,
		lobby.GuildID, lobby.ChannelID, lobby.UpdatedAt)
	return err
}

func (r *PostgresRepository) GetVoiceLobby(ctx context.Context, guildID string) (*repository.VoiceLobby, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT guild_id, channel_id, updated_at FROM voice_lobbies WHERE guild_id = $1`,
		guildID)
	var lobby repository.VoiceLobby
	if err := row.Scan(&lobby.GuildID, &lobby.ChannelID, &lobby.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &lobby, nil
}

func (r *PostgresRepository) DeleteVoiceLobby(ctx context.Context, guildID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM voice_lobbies WHERE guild_id = $1`, guildID)
	return err
}

func (r *PostgresRepository) AddMoodTally(ctx context.Context, delta repository.MoodTally) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO mood_tallies (guild_id, day, positive, neutral, negative, toxic, messages)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (guild_id, day) DO UPDATE SET
			positive = mood_tallies.positive + EXCLUDED.positive,
			neutral = mood_tallies.neutral + EXCLUDED.neutral,
			negative = mood_tallies.negative + EXCLUDED.negative,
			toxic = mood_tallies.toxic + EXCLUDED.toxic,
			messages = mood_tallies.messages + EXCLUDED.messages`,
		delta.GuildID, delta.Day, delta.Positive, delta.Neutral, delta.Negative, delta.Toxic, delta.Messages)
	return err
}

func (r *PostgresRepository) ListMoodTallies(ctx context.Context, guildID string, from, to time.Time) ([]repository.MoodTally, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT guild_id, day, positive, neutral, negative, toxic, messages
		 FROM mood_tallies WHERE guild_id = $1 AND day BETWEEN $2 AND $3
		 ORDER BY day ASC`,
		guildID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []repository.MoodTally
	for rows.Next() {
		var t repository.MoodTally
		if err := rows.Scan(&t.GuildID, &t.Day, &t.Positive, &t.Neutral, &t.Negative, &t.Toxic, &t.Messages); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SettingsRepository persists bot-wide flags per ledger scope
type SettingsRepository struct {
	q       queryable
	guildID int64
}

func newSettingsRepository(tx queryable, guildID int64) *SettingsRepository {
	return &SettingsRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Get returns the value and whether it was set
func (r *SettingsRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.q.QueryRow(ctx,
		`SELECT value FROM bot_settings WHERE guild_id = $1 AND key = $2`,
		r.guildID, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts a setting
func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO bot_settings (guild_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (guild_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := r.q.Exec(ctx, query, r.guildID, key, value); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

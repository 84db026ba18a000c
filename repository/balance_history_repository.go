package repository

import (
	"context"
	"fmt"

	"coinbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

const balanceHistoryColumns = `id, discord_id, guild_id, balance_before, balance_after, change_amount,
	transaction_type, transaction_metadata, related_id, related_type, created_at`

// BalanceHistoryRepository is the append-only audit trail of one ledger scope
type BalanceHistoryRepository struct {
	q       queryable
	guildID int64
}

func newBalanceHistoryRepository(tx queryable, guildID int64) *BalanceHistoryRepository {
	return &BalanceHistoryRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Record appends a settled change. The scope is stamped from the repository, not the caller.
func (r *BalanceHistoryRepository) Record(ctx context.Context, history *entities.BalanceHistory) error {
	metadata := history.TransactionMetadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	err := r.q.QueryRow(ctx, `
		INSERT INTO balance_history
		(discord_id, guild_id, balance_before, balance_after, change_amount, transaction_type, transaction_metadata, related_id, related_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		history.DiscordID,
		r.guildID,
		history.BalanceBefore,
		history.BalanceAfter,
		history.ChangeAmount,
		history.TransactionType,
		metadata,
		history.RelatedID,
		history.RelatedType,
	).Scan(&history.ID, &history.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record %s for user %d: %w", history.TransactionType, history.DiscordID, err)
	}

	history.GuildID = r.guildID
	return nil
}

// GetByUser returns the user's most recent balance changes, newest first
func (r *BalanceHistoryRepository) GetByUser(ctx context.Context, discordID int64, limit int) ([]*entities.BalanceHistory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+balanceHistoryColumns+`
		FROM balance_history
		WHERE discord_id = $1 AND guild_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3`,
		discordID, r.guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance history for user %d: %w", discordID, err)
	}

	histories, err := pgx.CollectRows(rows, scanBalanceHistory)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance history for user %d: %w", discordID, err)
	}
	return histories, nil
}

// scanBalanceHistory reads one row selected with balanceHistoryColumns.
// transaction_metadata is JSONB and decodes straight into the map.
func scanBalanceHistory(row pgx.CollectableRow) (*entities.BalanceHistory, error) {
	var h entities.BalanceHistory
	err := row.Scan(
		&h.ID,
		&h.DiscordID,
		&h.GuildID,
		&h.BalanceBefore,
		&h.BalanceAfter,
		&h.ChangeAmount,
		&h.TransactionType,
		&h.TransactionMetadata,
		&h.RelatedID,
		&h.RelatedType,
		&h.CreatedAt,
	)
	return &h, err
}

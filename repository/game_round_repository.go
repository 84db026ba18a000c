package repository

import (
	"context"
	"fmt"

	"coinbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// GameRoundRepository keeps the audit trail of settled rounds
type GameRoundRepository struct {
	q       queryable
	guildID int64
}

func newGameRoundRepository(tx queryable, guildID int64) *GameRoundRepository {
	return &GameRoundRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Create inserts the round and fills in its ID, scope and timestamp
func (r *GameRoundRepository) Create(ctx context.Context, round *entities.GameRound) error {
	query := `
		INSERT INTO game_rounds
		(discord_id, guild_id, game, stake, outcome, multiplier, payout, net_change, won)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		round.DiscordID,
		r.guildID,
		round.Game,
		round.Stake,
		round.Outcome,
		round.Multiplier,
		round.Payout,
		round.NetChange,
		round.Won,
	).Scan(&round.ID, &round.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create %s round for user %d: %w", round.Game, round.DiscordID, err)
	}

	round.GuildID = r.guildID
	return nil
}

// GetByUser returns the user's most recent rounds, newest first
func (r *GameRoundRepository) GetByUser(ctx context.Context, discordID int64, limit int) ([]*entities.GameRound, error) {
	query := `
		SELECT id, discord_id, guild_id, game, stake, outcome, multiplier, payout, net_change, won, created_at
		FROM game_rounds
		WHERE discord_id = $1 AND guild_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`

	rows, err := r.q.Query(ctx, query, discordID, r.guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get game rounds for user %d: %w", discordID, err)
	}

	rounds, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entities.GameRound, error) {
		var round entities.GameRound
		err := row.Scan(
			&round.ID,
			&round.DiscordID,
			&round.GuildID,
			&round.Game,
			&round.Stake,
			&round.Outcome,
			&round.Multiplier,
			&round.Payout,
			&round.NetChange,
			&round.Won,
			&round.CreatedAt,
		)
		return &round, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read game rounds for user %d: %w", discordID, err)
	}
	return rounds, nil
}

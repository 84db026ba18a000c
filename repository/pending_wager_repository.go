package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coinbot/database"
	"coinbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

const pendingWagerColumns = `offer_id, discord_id, guild_id, stake, winning_slot, created_at, expires_at`

// PendingWagerRepository stores open three-card offers in postgres
type PendingWagerRepository struct {
	q       queryable
	guildID int64
}

// NewPendingWagerRepository creates an offer repository on the pool.
// The expiry sweep uses it outside any unit of work.
func NewPendingWagerRepository(db *database.DB) *PendingWagerRepository {
	return &PendingWagerRepository{q: db.Pool}
}

func newPendingWagerRepository(tx queryable, guildID int64) *PendingWagerRepository {
	return &PendingWagerRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Save stores a new offer
func (r *PendingWagerRepository) Save(ctx context.Context, wager *entities.PendingWager) error {
	query := `
		INSERT INTO pending_wagers (` + pendingWagerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.q.Exec(ctx, query,
		wager.OfferID,
		wager.DiscordID,
		r.guildID,
		wager.Stake,
		wager.WinningSlot,
		wager.CreatedAt,
		wager.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save offer %s: %w", wager.OfferID, err)
	}
	wager.GuildID = r.guildID
	return nil
}

// Claim consumes the offer for its bettor. Only one caller can ever receive
// the row; everyone else gets ErrNotOwner or ErrAlreadyResolved.
func (r *PendingWagerRepository) Claim(ctx context.Context, offerID string, callerID int64) (*entities.PendingWager, error) {
	query := `
		DELETE FROM pending_wagers
		WHERE offer_id = $1 AND discord_id = $2 AND expires_at > NOW()
		RETURNING ` + pendingWagerColumns

	var wager entities.PendingWager
	err := r.q.QueryRow(ctx, query, offerID, callerID).Scan(
		&wager.OfferID,
		&wager.DiscordID,
		&wager.GuildID,
		&wager.Stake,
		&wager.WinningSlot,
		&wager.CreatedAt,
		&wager.ExpiresAt,
	)
	if err == nil {
		return &wager, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to claim offer %s: %w", offerID, err)
	}

	var (
		existing entities.PendingWager
		now      time.Time
	)
	err = r.q.QueryRow(ctx,
		`SELECT discord_id, expires_at, NOW() FROM pending_wagers WHERE offer_id = $1`,
		offerID,
	).Scan(&existing.DiscordID, &existing.ExpiresAt, &now)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entities.ErrAlreadyResolved
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up offer %s: %w", offerID, err)
	}
	if existing.IsExpired(now) {
		return nil, entities.ErrAlreadyResolved
	}
	if !existing.IsOwnedBy(callerID) {
		return nil, entities.ErrNotOwner
	}
	// The owner's row reappeared between the two statements, which only a
	// duplicate offer ID could cause
	return nil, entities.ErrAlreadyResolved
}

// DeleteExpired removes abandoned offers across all scopes
func (r *PendingWagerRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.q.Exec(ctx, `DELETE FROM pending_wagers WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired offers: %w", err)
	}
	return result.RowsAffected(), nil
}

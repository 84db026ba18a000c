package interfaces

import (
	"context"
	"time"

	"coinbot/domain/entities"
	"coinbot/domain/events"
)

// AccountRepository is the ledger store for one ledger scope
type AccountRepository interface {
	// Get returns the account or nil if the user has none
	Get(ctx context.Context, discordID int64) (*entities.Account, error)

	// Ensure returns the existing account or creates one with balance 0 and no grant date
	Ensure(ctx context.Context, discordID int64) (*entities.Account, error)

	// Adjust atomically applies balance += delta.
	// Returns ErrInsufficientFunds if the result would be negative and ErrNoAccount if there is no account.
	Adjust(ctx context.Context, discordID int64, delta int64) (*entities.Account, error)

	// SetGrantDate records day as the last grant date unless it is already recorded.
	// Returns false when day was already the last grant date.
	SetGrantDate(ctx context.Context, discordID int64, day time.Time) (bool, error)

	// TopBalances returns accounts with a positive balance, richest first
	TopBalances(ctx context.Context, limit int) ([]*entities.Account, error)

	// TopBalancesAmong is TopBalances restricted to the given users
	TopBalancesAmong(ctx context.Context, discordIDs []int64, limit int) ([]*entities.Account, error)

	// ResetBalance sets the user's balance to zero and returns the previous balance.
	// Returns ErrNoAccount if there is no account.
	ResetBalance(ctx context.Context, discordID int64) (int64, error)

	// ClearGrantDate forgets the user's recorded grant date
	ClearGrantDate(ctx context.Context, discordID int64) error
}

// BalanceHistoryRepository defines the interface for balance history tracking
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *entities.BalanceHistory) error

	// GetByUser returns balance history for a specific user, newest first
	GetByUser(ctx context.Context, discordID int64, limit int) ([]*entities.BalanceHistory, error)
}

// GameRoundRepository stores settled game rounds
type GameRoundRepository interface {
	Create(ctx context.Context, round *entities.GameRound) error
	GetByUser(ctx context.Context, discordID int64, limit int) ([]*entities.GameRound, error)
}

// OfferStore holds pending three-card wagers between the offer and the pick
type OfferStore interface {
	// Save persists a new offer
	Save(ctx context.Context, wager *entities.PendingWager) error

	// Claim consumes the offer exactly once.
	// Returns ErrNotOwner, leaving the offer in place, if callerID did not place it,
	// and ErrAlreadyResolved if it was already consumed or has expired.
	Claim(ctx context.Context, offerID string, callerID int64) (*entities.PendingWager, error)
}

// SettingsRepository stores bot-wide key/value settings
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}

// TransactionalEventPublisher buffers events until the surrounding transaction commits
type TransactionalEventPublisher interface {
	EventPublisher
	Flush(ctx context.Context) error
	Discard()
}

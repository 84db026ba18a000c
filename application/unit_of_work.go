package application

import (
	"context"

	"coinbot/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and then publishes buffered events
	Commit() error

	// Rollback rolls back the transaction and drops buffered events
	Rollback() error

	// Repository getters
	AccountRepository() interfaces.AccountRepository
	BalanceHistoryRepository() interfaces.BalanceHistoryRepository
	GameRoundRepository() interfaces.GameRoundRepository
	OfferStore() interfaces.OfferStore
	SettingsRepository() interfaces.SettingsRepository
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// CreateForGuild creates a new UnitOfWork scoped to one ledger scope.
	// guildID is 0 when the ledger is global.
	CreateForGuild(guildID int64) UnitOfWork
}

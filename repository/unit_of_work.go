package repository

import (
	"context"
	"errors"
	"fmt"

	"coinbot/application"
	"coinbot/database"
	"coinbot/domain/interfaces"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db                     *database.DB
	tx                     pgx.Tx
	ctx                    context.Context
	guildID                int64
	transactionalPublisher interfaces.TransactionalEventPublisher
	externalOffers         interfaces.OfferStore
	accountRepo            interfaces.AccountRepository
	balanceHistoryRepo     interfaces.BalanceHistoryRepository
	gameRoundRepo          interfaces.GameRoundRepository
	offerStore             interfaces.OfferStore
	settingsRepo           interfaces.SettingsRepository
}

type unitOfWorkFactory struct {
	db     *database.DB
	offers interfaces.OfferStore
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory.
// offers replaces the postgres offer table when non-nil; it is shared across
// scopes and does not take part in the transaction.
func NewUnitOfWorkFactory(db *database.DB, offers interfaces.OfferStore) *unitOfWorkFactory {
	return &unitOfWorkFactory{
		db:     db,
		offers: offers,
	}
}

// CreateForGuildWithPublisher creates a new UnitOfWork with a specific transactional publisher
func (f *unitOfWorkFactory) CreateForGuildWithPublisher(guildID int64, transactionalPublisher interfaces.TransactionalEventPublisher) application.UnitOfWork {
	return &unitOfWork{
		db:                     f.db,
		guildID:                guildID,
		transactionalPublisher: transactionalPublisher,
		externalOffers:         f.offers,
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.accountRepo = newAccountRepository(tx, u.guildID)
	u.balanceHistoryRepo = newBalanceHistoryRepository(tx, u.guildID)
	u.gameRoundRepo = newGameRoundRepository(tx, u.guildID)
	u.settingsRepo = newSettingsRepository(tx, u.guildID)
	if u.externalOffers != nil {
		u.offerStore = u.externalOffers
	} else {
		u.offerStore = newPendingWagerRepository(tx, u.guildID)
	}

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	u.tx = nil

	// The ledger change is durable at this point; publishing is best effort
	if u.transactionalPublisher != nil {
		if err := u.transactionalPublisher.Flush(u.ctx); err != nil {
			log.WithError(err).Warn("Failed to flush events after commit")
		}
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	u.tx = nil

	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Discard()
	}

	return nil
}

// AccountRepository returns the account repository for this unit of work
func (u *unitOfWork) AccountRepository() interfaces.AccountRepository {
	if u.accountRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.accountRepo
}

// BalanceHistoryRepository returns the balance history repository for this unit of work
func (u *unitOfWork) BalanceHistoryRepository() interfaces.BalanceHistoryRepository {
	if u.balanceHistoryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.balanceHistoryRepo
}

// GameRoundRepository returns the game round repository for this unit of work
func (u *unitOfWork) GameRoundRepository() interfaces.GameRoundRepository {
	if u.gameRoundRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.gameRoundRepo
}

// OfferStore returns the three-card offer store for this unit of work
func (u *unitOfWork) OfferStore() interfaces.OfferStore {
	if u.offerStore == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.offerStore
}

// SettingsRepository returns the settings repository for this unit of work
func (u *unitOfWork) SettingsRepository() interfaces.SettingsRepository {
	if u.settingsRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.settingsRepo
}

// EventBus returns the transactional event publisher for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.transactionalPublisher == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalPublisher
}

package application

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// WithUnitOfWork runs fn inside a unit of work for the given ledger scope.
// The unit of work is committed when fn returns nil and rolled back otherwise;
// fn's error is returned unwrapped so callers can still match domain errors.
func WithUnitOfWork(ctx context.Context, factory UnitOfWorkFactory, scopeID int64, fn func(uow UnitOfWork) error) error {
	uow := factory.CreateForGuild(scopeID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(uow); err != nil {
		if rbErr := uow.Rollback(); rbErr != nil {
			log.WithError(rbErr).Warn("Rollback failed")
		}
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

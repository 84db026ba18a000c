package common

import (
	"time"

	"coinbot/application"
	"coinbot/domain/games"
	"coinbot/domain/interfaces"
	"coinbot/domain/services"
)

// WagerOptions carries what the wager engine needs beyond a unit of work
type WagerOptions struct {
	RNG        games.RNG
	NewOfferID func() string
	OfferTTL   time.Duration
}

// NewEconomyService builds an economy service over the unit of work's repositories
func NewEconomyService(uow application.UnitOfWork) interfaces.EconomyService {
	return services.NewEconomyService(
		uow.AccountRepository(),
		uow.BalanceHistoryRepository(),
		uow.EventBus(),
	)
}

// NewWagerService builds a wager service over the unit of work's repositories
func (o WagerOptions) NewWagerService(uow application.UnitOfWork) interfaces.WagerService {
	return services.NewWagerService(
		uow.AccountRepository(),
		uow.BalanceHistoryRepository(),
		uow.GameRoundRepository(),
		uow.OfferStore(),
		uow.EventBus(),
		o.RNG,
		o.NewOfferID,
		o.OfferTTL,
	)
}

// NewAdminService builds an admin service over the unit of work's repositories
func NewAdminService(uow application.UnitOfWork) interfaces.AdminService {
	return services.NewAdminService(
		uow.AccountRepository(),
		uow.BalanceHistoryRepository(),
		uow.EventBus(),
	)
}

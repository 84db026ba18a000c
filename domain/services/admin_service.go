package services

import (
	"context"
	"fmt"

	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
	"coinbot/domain/utils"

	log "github.com/sirupsen/logrus"
)

type adminService struct {
	accountRepo        interfaces.AccountRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	eventPublisher     interfaces.EventPublisher
}

// NewAdminService creates a service for privileged ledger operations.
// It does no authorization of its own.
func NewAdminService(accountRepo interfaces.AccountRepository, balanceHistoryRepo interfaces.BalanceHistoryRepository, eventPublisher interfaces.EventPublisher) interfaces.AdminService {
	return &adminService{
		accountRepo:        accountRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		eventPublisher:     eventPublisher,
	}
}

// Grant credits amount to the user, opening an account if needed
func (s *adminService) Grant(ctx context.Context, discordID int64, amount int64) (*entities.Account, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", entities.ErrInvalidAmount)
	}
	if amount > entities.MaxGrantAmount {
		return nil, fmt.Errorf("%w: a single grant is capped at %d", entities.ErrInvalidAmount, entities.MaxGrantAmount)
	}

	if _, err := s.accountRepo.Ensure(ctx, discordID); err != nil {
		return nil, fmt.Errorf("failed to ensure account: %w", err)
	}

	account, err := s.accountRepo.Adjust(ctx, discordID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to credit admin grant: %w", err)
	}

	history := &entities.BalanceHistory{
		DiscordID:       discordID,
		GuildID:         account.GuildID,
		BalanceBefore:   account.Balance - amount,
		BalanceAfter:    account.Balance,
		ChangeAmount:    amount,
		TransactionType: entities.TransactionTypeAdminGrant,
		TransactionMetadata: map[string]any{
			"admin": true,
		},
	}
	if err := utils.RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, history); err != nil {
		return nil, fmt.Errorf("failed to record balance change: %w", err)
	}

	return account, nil
}

// Reset clears the user's balance, grant date or both, opening an account if needed.
// A cleared balance is recorded as an admin_reset change.
func (s *adminService) Reset(ctx context.Context, discordID int64, scope entities.ResetScope) (*entities.Account, error) {
	switch scope {
	case entities.ResetScopeBalance, entities.ResetScopeGrant, entities.ResetScopeAll:
	default:
		return nil, fmt.Errorf("%w: %q", entities.ErrUnknownResetScope, scope)
	}

	account, err := s.accountRepo.Ensure(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure account: %w", err)
	}

	if scope == entities.ResetScopeBalance || scope == entities.ResetScopeAll {
		previous, err := s.accountRepo.ResetBalance(ctx, discordID)
		if err != nil {
			return nil, fmt.Errorf("failed to reset balance: %w", err)
		}
		if previous != 0 {
			history := &entities.BalanceHistory{
				DiscordID:       discordID,
				GuildID:         account.GuildID,
				BalanceBefore:   previous,
				BalanceAfter:    0,
				ChangeAmount:    -previous,
				TransactionType: entities.TransactionTypeAdminReset,
				TransactionMetadata: map[string]any{
					"scope": string(scope),
				},
			}
			if err := utils.RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, history); err != nil {
				return nil, fmt.Errorf("failed to record balance change: %w", err)
			}
		}
	}

	if scope == entities.ResetScopeGrant || scope == entities.ResetScopeAll {
		if err := s.accountRepo.ClearGrantDate(ctx, discordID); err != nil {
			return nil, fmt.Errorf("failed to clear grant date: %w", err)
		}
	}

	account, err = s.accountRepo.Get(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	log.WithFields(log.Fields{
		"discordID": discordID,
		"scope":     scope,
	}).Warn("Account reset by admin")

	return account, nil
}

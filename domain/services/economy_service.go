package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coinbot/domain/entities"
	"coinbot/domain/events"
	"coinbot/domain/interfaces"
	"coinbot/domain/utils"

	log "github.com/sirupsen/logrus"
)

type economyService struct {
	accountRepo        interfaces.AccountRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	eventPublisher     interfaces.EventPublisher
}

// NewEconomyService creates a new economy service
func NewEconomyService(accountRepo interfaces.AccountRepository, balanceHistoryRepo interfaces.BalanceHistoryRepository, eventPublisher interfaces.EventPublisher) interfaces.EconomyService {
	return &economyService{
		accountRepo:        accountRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		eventPublisher:     eventPublisher,
	}
}

func (s *economyService) ClaimDailyGrant(ctx context.Context, discordID int64, today time.Time) (*interfaces.GrantResult, error) {
	existing, err := s.accountRepo.Get(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	firstGrant := existing == nil
	if firstGrant {
		if _, err := s.accountRepo.Ensure(ctx, discordID); err != nil {
			return nil, fmt.Errorf("failed to create account: %w", err)
		}
	} else if existing.ClaimedOn(today) {
		return nil, entities.ErrAlreadyClaimedToday
	}

	// The conditional date update is the claim; a concurrent claim for the same day loses here
	claimed, err := s.accountRepo.SetGrantDate(ctx, discordID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to record grant date: %w", err)
	}
	if !claimed {
		return nil, entities.ErrAlreadyClaimedToday
	}

	account, err := s.accountRepo.Adjust(ctx, discordID, entities.DailyGrantAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to credit daily grant: %w", err)
	}

	history := &entities.BalanceHistory{
		DiscordID:       discordID,
		GuildID:         account.GuildID,
		BalanceBefore:   account.Balance - entities.DailyGrantAmount,
		BalanceAfter:    account.Balance,
		ChangeAmount:    entities.DailyGrantAmount,
		TransactionType: entities.TransactionTypeDailyGrant,
		TransactionMetadata: map[string]any{
			"day":         today.Format(time.DateOnly),
			"first_grant": firstGrant,
		},
	}
	if err := utils.RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, history); err != nil {
		return nil, fmt.Errorf("failed to record balance change: %w", err)
	}

	if err := s.eventPublisher.Publish(events.DailyGrantClaimedEvent{
		UserID:     discordID,
		GuildID:    account.GuildID,
		Amount:     entities.DailyGrantAmount,
		Day:        today.Format(time.DateOnly),
		FirstGrant: firstGrant,
	}); err != nil {
		log.WithError(err).Error("Failed to publish daily grant event")
	}

	log.WithFields(log.Fields{
		"discordID":  discordID,
		"day":        today.Format(time.DateOnly),
		"firstGrant": firstGrant,
		"newBalance": account.Balance,
	}).Debug("Daily grant claimed")

	return &interfaces.GrantResult{
		Granted:    entities.DailyGrantAmount,
		NewBalance: account.Balance,
		FirstGrant: firstGrant,
	}, nil
}

func (s *economyService) GetBalance(ctx context.Context, discordID int64) (int64, error) {
	account, err := s.accountRepo.Get(ctx, discordID)
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return 0, entities.ErrNoAccount
	}
	return account.Balance, nil
}

func (s *economyService) Transfer(ctx context.Context, fromDiscordID, toDiscordID int64, amount int64) (*interfaces.TransferResult, error) {
	if fromDiscordID == toDiscordID {
		return nil, entities.ErrSelfTransfer
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", entities.ErrInvalidAmount)
	}

	sender, err := s.accountRepo.Get(ctx, fromDiscordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sender account: %w", err)
	}
	if sender == nil {
		return nil, fmt.Errorf("%w: sender has no account", entities.ErrInsufficientFunds)
	}
	if !sender.HasSufficientBalance(amount) {
		return nil, fmt.Errorf("%w: have %d, need %d", entities.ErrInsufficientFunds, sender.Balance, amount)
	}

	if _, err := s.accountRepo.Ensure(ctx, toDiscordID); err != nil {
		return nil, fmt.Errorf("failed to ensure recipient account: %w", err)
	}

	// Debit first; the credit only happens once the conditional debit has succeeded
	debited, err := s.accountRepo.Adjust(ctx, fromDiscordID, -amount)
	if err != nil {
		if errors.Is(err, entities.ErrInsufficientFunds) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to debit sender: %w", err)
	}

	credited, err := s.accountRepo.Adjust(ctx, toDiscordID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to credit recipient: %w", err)
	}

	outHistory := &entities.BalanceHistory{
		DiscordID:       fromDiscordID,
		GuildID:         debited.GuildID,
		BalanceBefore:   debited.Balance + amount,
		BalanceAfter:    debited.Balance,
		ChangeAmount:    -amount,
		TransactionType: entities.TransactionTypeTransferOut,
		TransactionMetadata: map[string]any{
			"recipient_discord_id": toDiscordID,
		},
	}
	if err := utils.RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, outHistory); err != nil {
		return nil, fmt.Errorf("failed to record sender balance change: %w", err)
	}

	inHistory := &entities.BalanceHistory{
		DiscordID:       toDiscordID,
		GuildID:         credited.GuildID,
		BalanceBefore:   credited.Balance - amount,
		BalanceAfter:    credited.Balance,
		ChangeAmount:    amount,
		TransactionType: entities.TransactionTypeTransferIn,
		TransactionMetadata: map[string]any{
			"sender_discord_id": fromDiscordID,
		},
	}
	if err := utils.RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, inHistory); err != nil {
		return nil, fmt.Errorf("failed to record recipient balance change: %w", err)
	}

	if err := s.eventPublisher.Publish(events.TransferCompletedEvent{
		FromUserID: fromDiscordID,
		ToUserID:   toDiscordID,
		GuildID:    debited.GuildID,
		Amount:     amount,
	}); err != nil {
		log.WithError(err).Error("Failed to publish transfer event")
	}

	return &interfaces.TransferResult{
		Amount:           amount,
		SenderBalance:    debited.Balance,
		RecipientBalance: credited.Balance,
	}, nil
}

func (s *economyService) Leaderboard(ctx context.Context, limit int, among []int64) ([]entities.LeaderboardEntry, error) {
	var (
		accounts []*entities.Account
		err      error
	)
	if len(among) > 0 {
		accounts, err = s.accountRepo.TopBalancesAmong(ctx, among, limit)
	} else {
		accounts, err = s.accountRepo.TopBalances(ctx, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	entries := make([]entities.LeaderboardEntry, 0, len(accounts))
	for i, account := range accounts {
		entries = append(entries, entities.LeaderboardEntry{
			Rank:      i + 1,
			DiscordID: account.DiscordID,
			Balance:   account.Balance,
		})
	}
	return entries, nil
}

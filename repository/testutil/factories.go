package testutil

import (
	"time"

	"coinbot/domain/entities"
)

// CreateTestBalanceHistory creates a balance history entry for a 10000 debit
func CreateTestBalanceHistory(discordID int64, transactionType entities.TransactionType) *entities.BalanceHistory {
	return &entities.BalanceHistory{
		DiscordID:       discordID,
		BalanceBefore:   100000,
		BalanceAfter:    90000,
		ChangeAmount:    -10000,
		TransactionType: transactionType,
		TransactionMetadata: map[string]any{
			"test": true,
		},
	}
}

// CreateTestOffer creates a three-card offer that expires after ttl
func CreateTestOffer(offerID string, discordID int64, stake int64, winningSlot int, ttl time.Duration) *entities.PendingWager {
	now := time.Now().UTC()
	return &entities.PendingWager{
		OfferID:     offerID,
		DiscordID:   discordID,
		Stake:       stake,
		WinningSlot: winningSlot,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

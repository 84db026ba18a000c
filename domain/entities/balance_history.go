package entities

import (
	"errors"
	"time"
)

// RelatedType represents what type of entity the related_id refers to
type RelatedType string

const (
	RelatedTypeGameRound RelatedType = "game_round"
)

// BalanceHistory represents a historical balance change
type BalanceHistory struct {
	ID                  int64           `db:"id"`
	DiscordID           int64           `db:"discord_id"`
	GuildID             int64           `db:"guild_id"`
	BalanceBefore       int64           `db:"balance_before"`
	BalanceAfter        int64           `db:"balance_after"`
	ChangeAmount        int64           `db:"change_amount"`
	TransactionType     TransactionType `db:"transaction_type"`
	TransactionMetadata map[string]any  `db:"transaction_metadata"`
	RelatedID           *int64          `db:"related_id"`
	RelatedType         *RelatedType    `db:"related_type"`
	CreatedAt           time.Time       `db:"created_at"`
}

// IsPositiveChange returns true if the change amount is positive
func (bh *BalanceHistory) IsPositiveChange() bool {
	return bh.ChangeAmount > 0
}

// IsGamblingTransaction returns true if this is a gambling-related transaction
func (bh *BalanceHistory) IsGamblingTransaction() bool {
	return bh.TransactionType.IsGamblingRelated()
}

// GetTransactionDescription returns a human-readable description of the transaction
func (bh *BalanceHistory) GetTransactionDescription() string {
	switch bh.TransactionType {
	case TransactionTypeCoinFlipWin:
		return "Coin flip win"
	case TransactionTypeCoinFlipLoss:
		return "Coin flip loss"
	case TransactionTypeLotteryWin:
		return "Lottery win"
	case TransactionTypeLotteryLoss:
		return "Lottery loss"
	case TransactionTypeThreeCardWin:
		return "Three-card win"
	case TransactionTypeThreeCardLoss:
		return "Three-card loss"
	case TransactionTypeTransferIn:
		return "Transfer received"
	case TransactionTypeTransferOut:
		return "Transfer sent"
	case TransactionTypeDailyGrant:
		return "Daily grant"
	case TransactionTypeAdminGrant:
		return "Admin grant"
	default:
		return string(bh.TransactionType)
	}
}

// ValidateTransaction performs basic validation on the transaction
func (bh *BalanceHistory) ValidateTransaction() error {
	if bh.BalanceAfter != bh.BalanceBefore+bh.ChangeAmount {
		return errors.New("balance calculation is inconsistent")
	}
	if bh.BalanceAfter < 0 {
		return errors.New("balance cannot go negative")
	}
	return nil
}

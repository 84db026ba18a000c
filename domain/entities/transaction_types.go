package entities

// TransactionType represents the type of balance change
type TransactionType string

const (
	// Game settlements
	TransactionTypeCoinFlipWin   TransactionType = "coinflip_win"
	TransactionTypeCoinFlipLoss  TransactionType = "coinflip_loss"
	TransactionTypeLotteryWin    TransactionType = "lottery_win"
	TransactionTypeLotteryLoss   TransactionType = "lottery_loss"
	TransactionTypeThreeCardWin  TransactionType = "threecard_win"
	TransactionTypeThreeCardLoss TransactionType = "threecard_loss"

	// Transfer transactions
	TransactionTypeTransferIn  TransactionType = "transfer_in"
	TransactionTypeTransferOut TransactionType = "transfer_out"

	// System transactions
	TransactionTypeDailyGrant TransactionType = "daily_grant"
	TransactionTypeAdminGrant TransactionType = "admin_grant"
	TransactionTypeAdminReset TransactionType = "admin_reset"
)

// IsWinType returns true if the transaction type represents a win
func (tt TransactionType) IsWinType() bool {
	return tt == TransactionTypeCoinFlipWin ||
		tt == TransactionTypeLotteryWin ||
		tt == TransactionTypeThreeCardWin
}

// IsLossType returns true if the transaction type represents a loss
func (tt TransactionType) IsLossType() bool {
	return tt == TransactionTypeCoinFlipLoss ||
		tt == TransactionTypeLotteryLoss ||
		tt == TransactionTypeThreeCardLoss
}

// IsTransferType returns true if the transaction type represents a transfer
func (tt TransactionType) IsTransferType() bool {
	return tt == TransactionTypeTransferIn ||
		tt == TransactionTypeTransferOut
}

// IsGamblingRelated returns true if the transaction type is gambling-related
func (tt TransactionType) IsGamblingRelated() bool {
	return tt.IsWinType() || tt.IsLossType()
}

// IsSystemGenerated returns true if the transaction type is system-generated
func (tt TransactionType) IsSystemGenerated() bool {
	return tt == TransactionTypeDailyGrant ||
		tt == TransactionTypeAdminGrant ||
		tt == TransactionTypeAdminReset
}

// String returns the string representation of the transaction type
func (tt TransactionType) String() string {
	return string(tt)
}

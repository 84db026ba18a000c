package interfaces

import (
	"context"
	"time"

	"coinbot/domain/entities"
	"coinbot/domain/games"
)

// GrantResult is the outcome of a successful daily grant
type GrantResult struct {
	Granted    int64
	NewBalance int64
	FirstGrant bool
}

// TransferResult is the outcome of a successful transfer
type TransferResult struct {
	Amount           int64
	SenderBalance    int64
	RecipientBalance int64
}

// EconomyService covers grants, balance queries, transfers and rankings
type EconomyService interface {
	// ClaimDailyGrant credits the daily grant once per reference day.
	// today must already be expressed in the reference timezone.
	ClaimDailyGrant(ctx context.Context, discordID int64, today time.Time) (*GrantResult, error)

	// GetBalance returns the balance or ErrNoAccount
	GetBalance(ctx context.Context, discordID int64) (int64, error)

	// Transfer moves amount from one account to another as one unit
	Transfer(ctx context.Context, fromDiscordID, toDiscordID int64, amount int64) (*TransferResult, error)

	// Leaderboard ranks accounts with a positive balance. A non-empty among limits the ranking to those users.
	Leaderboard(ctx context.Context, limit int, among []int64) ([]entities.LeaderboardEntry, error)
}

// GameResult is a settled single-shot game
type GameResult struct {
	games.Outcome
	BalanceBefore int64
	NewBalance    int64
}

// CoinFlipResult is a settled coin flip
type CoinFlipResult struct {
	GameResult
	Call   games.CoinSide
	Landed games.CoinSide
}

// LotteryResult is a settled lottery spin
type LotteryResult struct {
	GameResult
	Symbol games.LotterySymbol
}

// ThreeCardStatus is the terminal state of a resolved three-card offer
type ThreeCardStatus string

const (
	ThreeCardWon               ThreeCardStatus = "won"
	ThreeCardLost              ThreeCardStatus = "lost"
	ThreeCardInsufficientFunds ThreeCardStatus = "insufficient_funds"
)

// ThreeCardResolution is the outcome of resolving an offer. When Status is
// ThreeCardInsufficientFunds the offer is consumed and no balance changed.
type ThreeCardResolution struct {
	Status     ThreeCardStatus
	Offer      *entities.PendingWager
	ChosenSlot int
	Outcome    games.Outcome
	NewBalance int64
}

// WagerService covers the games of chance
type WagerService interface {
	PlayCoinFlip(ctx context.Context, discordID int64, call games.CoinSide, stake games.Stake) (*CoinFlipResult, error)
	PlayLottery(ctx context.Context, discordID int64, stake games.Stake) (*LotteryResult, error)
	OfferThreeCard(ctx context.Context, discordID int64, stake games.Stake) (*entities.PendingWager, error)
	ResolveThreeCard(ctx context.Context, offerID string, chosenSlot int, callerID int64) (*ThreeCardResolution, error)
}

// AdminService covers privileged ledger operations. Callers authorize before invoking it.
type AdminService interface {
	Grant(ctx context.Context, discordID int64, amount int64) (*entities.Account, error)
	Reset(ctx context.Context, discordID int64, scope entities.ResetScope) (*entities.Account, error)
}

package entities

import (
	"time"
)

// GameType identifies which game a round was played in
type GameType string

const (
	GameTypeCoinFlip  GameType = "coinflip"
	GameTypeLottery   GameType = "lottery"
	GameTypeThreeCard GameType = "threecard"
)

// GameRound is the audit record of a settled game
type GameRound struct {
	ID         int64     `db:"id"`
	DiscordID  int64     `db:"discord_id"`
	GuildID    int64     `db:"guild_id"`
	Game       GameType  `db:"game"`
	Stake      int64     `db:"stake"`
	Outcome    string    `db:"outcome"`
	Multiplier int64     `db:"multiplier"`
	Payout     int64     `db:"payout"`
	NetChange  int64     `db:"net_change"`
	Won        bool      `db:"won"`
	CreatedAt  time.Time `db:"created_at"`
}

// WinTransactionType returns the balance history type for a win in this game
func (g GameType) WinTransactionType() TransactionType {
	switch g {
	case GameTypeCoinFlip:
		return TransactionTypeCoinFlipWin
	case GameTypeLottery:
		return TransactionTypeLotteryWin
	default:
		return TransactionTypeThreeCardWin
	}
}

// LossTransactionType returns the balance history type for a loss in this game
func (g GameType) LossTransactionType() TransactionType {
	switch g {
	case GameTypeCoinFlip:
		return TransactionTypeCoinFlipLoss
	case GameTypeLottery:
		return TransactionTypeLotteryLoss
	default:
		return TransactionTypeThreeCardLoss
	}
}

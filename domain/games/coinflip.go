package games

import (
	"fmt"
	"strings"

	"coinbot/domain/entities"
)

// CoinFlipMinStake is the smallest coin-flip wager
const CoinFlipMinStake int64 = 1

// coinFlipMultiplier is the gross payout on a correct call
const coinFlipMultiplier int64 = 2

// CoinSide is one face of the coin
type CoinSide string

const (
	Heads CoinSide = "heads"
	Tails CoinSide = "tails"
)

// ParseCoinSide accepts "heads"/"h" and "tails"/"t" in any case
func ParseCoinSide(s string) (CoinSide, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "heads", "h":
		return Heads, nil
	case "tails", "t":
		return Tails, nil
	}
	return "", fmt.Errorf("%w: %q is not heads or tails", entities.ErrInvalidChoice, s)
}

// CoinFlipResult is the outcome of one flip against the caller's call
type CoinFlipResult struct {
	Outcome
	Call   CoinSide
	Landed CoinSide
}

// FlipCoin draws a fair coin and settles the call for stake
func FlipCoin(rng RNG, call CoinSide, stake int64) CoinFlipResult {
	landed := Heads
	if rng.IntN(2) == 1 {
		landed = Tails
	}
	return SettleCoinFlip(call, landed, stake)
}

// SettleCoinFlip settles a call against a known landing side
func SettleCoinFlip(call, landed CoinSide, stake int64) CoinFlipResult {
	won := call == landed
	var multiplier int64
	if won {
		multiplier = coinFlipMultiplier
	}
	return CoinFlipResult{
		Outcome: Outcome{
			Game:       entities.GameTypeCoinFlip,
			Stake:      stake,
			Result:     string(landed),
			Multiplier: multiplier,
			Won:        won,
		},
		Call:   call,
		Landed: landed,
	}
}

package games

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"coinbot/domain/entities"
)

// allInKeywords are the stake inputs that mean "everything I have"
var allInKeywords = map[string]bool{
	"all":    true,
	"allin":  true,
	"all-in": true,
	"max":    true,
}

// MaxStake keeps stake*multiplier inside int64 for the 100x jackpot
const MaxStake int64 = math.MaxInt64 / 100

// Stake is a requested wager before it is checked against a balance
type Stake struct {
	AllIn  bool
	Amount int64
}

// AllIn is a stake of the caller's whole balance at evaluation time
func AllIn() Stake {
	return Stake{AllIn: true}
}

// Amount is a stake of a fixed number of coins
func Amount(n int64) Stake {
	return Stake{Amount: n}
}

// ParseStake parses user input such as "1000", "1,000" or "all-in"
func ParseStake(input string) (Stake, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return Stake{}, fmt.Errorf("%w: empty stake", entities.ErrInvalidStake)
	}
	if allInKeywords[s] {
		return AllIn(), nil
	}

	n, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
	if err != nil {
		return Stake{}, fmt.Errorf("%w: %q is not a whole number", entities.ErrInvalidStake, input)
	}
	if n <= 0 {
		return Stake{}, fmt.Errorf("%w: stake must be positive", entities.ErrInvalidStake)
	}
	return Amount(n), nil
}

// Resolve turns the stake into a concrete amount against the current balance.
// All-in resolves to the balance before the minimum is checked, so an all-in
// below the minimum is rejected like any other small stake.
func (s Stake) Resolve(balance, minimum int64) (int64, error) {
	amount := s.Amount
	if s.AllIn {
		amount = balance
	}

	if amount <= 0 {
		return 0, fmt.Errorf("%w: stake %s must be positive", entities.ErrInvalidStake, s)
	}
	if amount < minimum {
		return 0, fmt.Errorf("%w: stake %s is below the minimum of %d", entities.ErrInvalidStake, s, minimum)
	}
	if amount > MaxStake {
		return 0, fmt.Errorf("%w: stake %s is above the maximum of %d", entities.ErrInvalidStake, s, MaxStake)
	}
	if amount > balance {
		return 0, fmt.Errorf("%w: %w", entities.ErrInvalidStake, entities.ErrInsufficientFunds)
	}
	return amount, nil
}

// String renders the stake as it was requested
func (s Stake) String() string {
	if s.AllIn {
		return "all-in"
	}
	return strconv.FormatInt(s.Amount, 10)
}

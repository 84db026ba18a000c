package games

import (
	"fmt"

	"coinbot/domain/entities"
)

const (
	// ThreeCardMinStake is the smallest three-card wager
	ThreeCardMinStake int64 = 1000

	threeCardMultiplier int64 = 3
)

// ThreeCardResult is the outcome of picking a slot
type ThreeCardResult struct {
	Outcome
	ChosenSlot  int
	WinningSlot int
}

// DealThreeCard draws the winning slot for a new offer
func DealThreeCard(rng RNG) int {
	return rng.IntN(entities.ThreeCardSlots)
}

// ValidSlot reports whether slot is a position in the choice set
func ValidSlot(slot int) bool {
	return slot >= 0 && slot < entities.ThreeCardSlots
}

// ThreeCardPayout settles a pick against the winning slot recorded at offer time.
// It never draws.
func ThreeCardPayout(winningSlot, chosenSlot int, stake int64) (ThreeCardResult, error) {
	if !ValidSlot(chosenSlot) {
		return ThreeCardResult{}, fmt.Errorf("%w: slot %d", entities.ErrInvalidChoice, chosenSlot)
	}
	won := chosenSlot == winningSlot
	var multiplier int64
	if won {
		multiplier = threeCardMultiplier
	}
	return ThreeCardResult{
		Outcome: Outcome{
			Game:       entities.GameTypeThreeCard,
			Stake:      stake,
			Result:     fmt.Sprintf("slot %d", winningSlot+1),
			Multiplier: multiplier,
			Won:        won,
		},
		ChosenSlot:  chosenSlot,
		WinningSlot: winningSlot,
	}, nil
}

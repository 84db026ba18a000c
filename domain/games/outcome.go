package games

import "coinbot/domain/entities"

// Outcome is the settled result of one round of any game
type Outcome struct {
	Game       entities.GameType
	Stake      int64
	Result     string
	Multiplier int64
	Won        bool
}

// Payout is the gross amount credited back to the bettor
func (o Outcome) Payout() int64 {
	return o.Stake * o.Multiplier
}

// NetChange is the balance delta of the round: payout minus stake
func (o Outcome) NetChange() int64 {
	return o.Payout() - o.Stake
}

package events

import "coinbot/domain/entities"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange      EventType = "balance_change"
	EventTypeDailyGrantClaimed  EventType = "daily_grant_claimed"
	EventTypeTransferCompleted  EventType = "transfer_completed"
	EventTypeGameSettled        EventType = "game_settled"
	EventTypeThreeCardOffered   EventType = "threecard_offered"
	EventTypeThreeCardForfeited EventType = "threecard_forfeited"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID          int64                    `json:"user_id"`
	GuildID         int64                    `json:"guild_id"`
	OldBalance      int64                    `json:"old_balance"`
	NewBalance      int64                    `json:"new_balance"`
	TransactionType entities.TransactionType `json:"transaction_type"`
	ChangeAmount    int64                    `json:"change_amount"`
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// DailyGrantClaimedEvent is emitted once per user per reference day
type DailyGrantClaimedEvent struct {
	UserID     int64  `json:"user_id"`
	GuildID    int64  `json:"guild_id"`
	Amount     int64  `json:"amount"`
	Day        string `json:"day"`
	FirstGrant bool   `json:"first_grant"`
}

func (e DailyGrantClaimedEvent) Type() EventType {
	return EventTypeDailyGrantClaimed
}

// TransferCompletedEvent represents a committed peer-to-peer transfer
type TransferCompletedEvent struct {
	FromUserID int64 `json:"from_user_id"`
	ToUserID   int64 `json:"to_user_id"`
	GuildID    int64 `json:"guild_id"`
	Amount     int64 `json:"amount"`
}

func (e TransferCompletedEvent) Type() EventType {
	return EventTypeTransferCompleted
}

// GameSettledEvent represents a settled round of any game
type GameSettledEvent struct {
	UserID     int64             `json:"user_id"`
	GuildID    int64             `json:"guild_id"`
	Game       entities.GameType `json:"game"`
	Stake      int64             `json:"stake"`
	Outcome    string            `json:"outcome"`
	Multiplier int64             `json:"multiplier"`
	NetChange  int64             `json:"net_change"`
	Won        bool              `json:"won"`
}

func (e GameSettledEvent) Type() EventType {
	return EventTypeGameSettled
}

// ThreeCardOfferedEvent represents a new pending three-card wager
type ThreeCardOfferedEvent struct {
	OfferID string `json:"offer_id"`
	UserID  int64  `json:"user_id"`
	GuildID int64  `json:"guild_id"`
	Stake   int64  `json:"stake"`
}

func (e ThreeCardOfferedEvent) Type() EventType {
	return EventTypeThreeCardOffered
}

// ThreeCardForfeitedEvent represents an offer consumed without settlement because
// the bettor could no longer cover the stake
type ThreeCardForfeitedEvent struct {
	OfferID string `json:"offer_id"`
	UserID  int64  `json:"user_id"`
	GuildID int64  `json:"guild_id"`
	Stake   int64  `json:"stake"`
}

func (e ThreeCardForfeitedEvent) Type() EventType {
	return EventTypeThreeCardForfeited
}

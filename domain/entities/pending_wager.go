package entities

import (
	"time"
)

// ThreeCardSlots is the size of the three-card choice set
const ThreeCardSlots = 3

// PendingWager is an outstanding three-card offer. Stake and WinningSlot are fixed
// when the offer is made; resolution reads them back and never draws again.
type PendingWager struct {
	OfferID     string    `db:"offer_id" json:"offer_id"`
	DiscordID   int64     `db:"discord_id" json:"discord_id"`
	GuildID     int64     `db:"guild_id" json:"guild_id"`
	Stake       int64     `db:"stake" json:"stake"`
	WinningSlot int       `db:"winning_slot" json:"winning_slot"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	ExpiresAt   time.Time `db:"expires_at" json:"expires_at"`
}

// IsOwnedBy reports whether discordID placed this wager
func (w *PendingWager) IsOwnedBy(discordID int64) bool {
	return w.DiscordID == discordID
}

// IsExpired reports whether the offer was abandoned past its expiry
func (w *PendingWager) IsExpired(now time.Time) bool {
	return !w.ExpiresAt.IsZero() && !now.Before(w.ExpiresAt)
}

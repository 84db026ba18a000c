package entities

import (
	"time"
)

// DailyGrantAmount is the number of coins credited by a successful daily grant,
// including the very first one that opens an account.
const DailyGrantAmount int64 = 20000

// MaxGrantAmount bounds a single admin grant
const MaxGrantAmount int64 = 1_000_000_000_000

// Account is a ledger entry for a user within one ledger scope.
// GuildID is the scope key: the guild snowflake for per-guild ledgers, 0 for a global ledger.
type Account struct {
	DiscordID     int64      `db:"discord_id"`
	GuildID       int64      `db:"guild_id"`
	Balance       int64      `db:"balance"`
	LastGrantDate *time.Time `db:"last_grant_date"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// HasSufficientBalance checks if the account can cover amount
func (a *Account) HasSufficientBalance(amount int64) bool {
	return a.Balance >= amount
}

// ClaimedOn reports whether the last grant was recorded on the given reference day
func (a *Account) ClaimedOn(day time.Time) bool {
	if a.LastGrantDate == nil {
		return false
	}
	return SameDay(*a.LastGrantDate, day)
}

// SameDay compares two dates by calendar day, ignoring time and location
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// LeaderboardEntry is one row of a balance ranking
type LeaderboardEntry struct {
	Rank      int
	DiscordID int64
	Balance   int64
}

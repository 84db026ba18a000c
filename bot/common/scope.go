package common

import (
	"fmt"
	"time"

	"coinbot/config"
	"coinbot/domain/services"

	"github.com/bwmarrin/discordgo"
)

// Invocation identifies who invoked an interaction and which ledger it touches
type Invocation struct {
	UserID  int64
	GuildID int64 // 0 in DMs
	ScopeID int64 // ledger scope passed to the unit of work factory
}

// ParseInvocation resolves the caller and the ledger scope of an interaction.
// Per-guild ledgers cannot be used from DMs.
func ParseInvocation(i *discordgo.InteractionCreate, cfg *config.Config) (*Invocation, error) {
	user := InvokingUser(i)
	if user == nil {
		return nil, NewUserError("Unable to identify you.", "interaction without a user")
	}

	userID, err := ParseUserID(user.ID)
	if err != nil {
		return nil, NewSystemError(err, fmt.Sprintf("invalid user ID %q", user.ID))
	}

	inv := &Invocation{UserID: userID}
	if i.GuildID != "" {
		inv.GuildID, err = ParseUserID(i.GuildID)
		if err != nil {
			return nil, NewSystemError(err, fmt.Sprintf("invalid guild ID %q", i.GuildID))
		}
	} else if !cfg.GlobalLedger() {
		return nil, NewUserError("Use this command in a server.", "guild ledger command used in DM")
	}

	inv.ScopeID = cfg.LedgerScopeID(inv.GuildID)
	return inv, nil
}

// Today is the current reference day used for daily grants
func Today(cfg *config.Config, now time.Time) time.Time {
	return services.ReferenceDay(now, cfg.ReferenceUTCOffsetHours)
}

// NextReset is when the next reference day starts
func NextReset(cfg *config.Config, now time.Time) time.Time {
	return services.NextReferenceMidnight(now, cfg.ReferenceUTCOffsetHours)
}

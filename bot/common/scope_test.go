package common

import (
	"errors"
	"testing"
	"time"

	"coinbot/config"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guildInteraction(guildID, userID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		GuildID: guildID,
		Member:  &discordgo.Member{User: &discordgo.User{ID: userID}},
	}}
}

func dmInteraction(userID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: userID},
	}}
}

func TestParseInvocation_GuildScope(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.LedgerScope = config.LedgerScopeGuild

	inv, err := ParseInvocation(guildInteraction("555", "123"), cfg)

	require.NoError(t, err)
	assert.Equal(t, int64(123), inv.UserID)
	assert.Equal(t, int64(555), inv.GuildID)
	assert.Equal(t, int64(555), inv.ScopeID)
}

func TestParseInvocation_GlobalScope(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.LedgerScope = config.LedgerScopeGlobal

	inv, err := ParseInvocation(guildInteraction("555", "123"), cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(555), inv.GuildID)
	assert.Equal(t, int64(0), inv.ScopeID)

	inv, err = ParseInvocation(dmInteraction("123"), cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(0), inv.ScopeID)
}

func TestParseInvocation_DMWithGuildLedgerIsRejected(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.LedgerScope = config.LedgerScopeGuild

	_, err := ParseInvocation(dmInteraction("123"), cfg)

	var botErr *BotError
	require.True(t, errors.As(err, &botErr))
	assert.Equal(t, "Use this command in a server.", botErr.UserMessage)
}

func TestToday_UsesReferenceOffset(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.ReferenceUTCOffsetHours = 9

	// 15:00 UTC is midnight in UTC+9
	now := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Today(cfg, now))
	assert.Equal(t, time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC), NextReset(cfg, now))
}

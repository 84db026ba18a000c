package leaderboard

import (
	"context"
	"fmt"

	"coinbot/application"
	"coinbot/bot/common"
	"coinbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// memberPageSize is the largest page the guild members endpoint returns
const memberPageSize = 1000

func (f *Feature) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	inv, err := common.ParseInvocation(i, f.config)
	if err != nil {
		common.HandleError(s, i, err, "leaderboard: bad invocation")
		return
	}

	serverOnly := false
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "server" {
			serverOnly = opt.BoolValue()
		}
	}

	// A guild ledger already only holds this server's accounts
	var among []int64
	title := "🏆 Leaderboard"
	if serverOnly && f.config.GlobalLedger() {
		if i.GuildID == "" {
			common.HandleError(s, i, common.NewUserError("Use this option in a server.", "server leaderboard from DM"), "leaderboard failed")
			return
		}
		among, err = guildMemberIDs(s, i.GuildID)
		if err != nil {
			common.HandleError(s, i, common.NewSystemError(err, "failed to list guild members"), "leaderboard failed")
			return
		}
		title = "🏆 Server leaderboard"
	}

	entries, err := f.rank(ctx, inv, among)
	if err != nil {
		common.HandleError(s, i, err, "leaderboard failed")
		return
	}

	names := make(map[int64]string, len(entries))
	for _, entry := range entries {
		names[entry.DiscordID] = common.GetDisplayName(s, i.GuildID, common.FormatUserID(entry.DiscordID))
	}

	if err := common.RespondWithEmbed(s, i, CreateLeaderboardEmbed(title, entries, names), nil, false); err != nil {
		log.Errorf("Error responding to leaderboard command: %v", err)
	}
}

func (f *Feature) rank(ctx context.Context, inv *common.Invocation, among []int64) ([]entities.LeaderboardEntry, error) {
	// Restricting to a server with no members ranks nobody rather than everybody
	if among != nil && len(among) == 0 {
		return nil, nil
	}

	var entries []entities.LeaderboardEntry
	err := application.WithUnitOfWork(ctx, f.uowFactory, inv.ScopeID, func(uow application.UnitOfWork) error {
		var err error
		entries, err = common.NewEconomyService(uow).Leaderboard(ctx, common.LeaderboardSize, among)
		return err
	})
	return entries, err
}

// guildMemberIDs pages through the guild's members, skipping bots
func guildMemberIDs(s *discordgo.Session, guildID string) ([]int64, error) {
	ids := []int64{}
	after := ""
	for {
		members, err := s.GuildMembers(guildID, after, memberPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list members of guild %s: %w", guildID, err)
		}
		for _, member := range members {
			if member.User == nil || member.User.Bot {
				continue
			}
			id, err := common.ParseUserID(member.User.ID)
			if err != nil {
				continue
			}
			ids = append(ids, id)
		}
		if len(members) < memberPageSize {
			return ids, nil
		}
		after = members[len(members)-1].User.ID
	}
}

// CreateLeaderboardEmbed renders ranked entries. names maps user IDs to display names.
func CreateLeaderboardEmbed(title string, entries []entities.LeaderboardEntry, names map[int64]string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: title,
		Color: common.ColorPrimary,
	}
	if len(entries) == 0 {
		embed.Description = "No one has any coins yet."
		return embed
	}

	var description string
	for _, entry := range entries {
		name, ok := names[entry.DiscordID]
		if !ok {
			name = common.GetUserMention(entry.DiscordID)
		}
		description += fmt.Sprintf("%s **%s** · %s\n", common.FormatRank(entry.Rank), name, common.FormatCoins(entry.Balance))
	}
	embed.Description = description
	return embed
}

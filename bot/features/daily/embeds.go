package daily

import (
	"fmt"
	"time"

	"coinbot/bot/common"
	"coinbot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

// CreateGrantEmbed announces a successful grant
func CreateGrantEmbed(displayName string, result *interfaces.GrantResult) *discordgo.MessageEmbed {
	title := "🎉 Daily coins claimed!"
	color := common.ColorSuccess
	note := "✨ Enjoy the games!"
	if result.FirstGrant {
		title = "🎉 Welcome! Your first coins are here!"
		color = common.ColorWarning
		note = "✨ Your account is open. Try `/coinflip`, `/lottery` or `/threecard`."
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Color:       color,
		Description: fmt.Sprintf("💰 %s\n\n%s", common.FormatCoins(result.Granted), note),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s | %s", displayName, common.FormatCoins(result.NewBalance)),
		},
	}
}

// CreateAlreadyClaimedEmbed tells the user when the next grant opens
func CreateAlreadyClaimedEmbed(nextReset time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "⏳ Already claimed",
		Color:       common.ColorDanger,
		Description: fmt.Sprintf("You already claimed today's coins. The next grant opens %s.", common.FormatDiscordTimestamp(nextReset, "R")),
	}
}

package lottery

import (
	"fmt"

	"coinbot/bot/common"
	"coinbot/domain/games"
	"coinbot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

var symbolEmoji = map[string]string{
	"egg":   "🥚",
	"chick": "🐣",
	"hen":   "🐔",
	"bird":  "🐥",
	"meal":  "🍗",
	"jewel": "💎",
}

// SymbolEmoji renders a reel symbol
func SymbolEmoji(sym games.LotterySymbol) string {
	if emoji, ok := symbolEmoji[sym.Name]; ok {
		return emoji
	}
	return sym.Name
}

// CreateResultEmbed reports a settled spin
func CreateResultEmbed(displayName string, result *interfaces.LotteryResult) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s | %s", displayName, common.FormatCoins(result.NewBalance)),
		},
	}

	emoji := SymbolEmoji(result.Symbol)
	if result.Won {
		embed.Title = fmt.Sprintf("🎉 %s %dx", emoji, result.Multiplier)
		embed.Color = common.ColorSuccess
		embed.Description = fmt.Sprintf("Won %s coins", common.FormatNetChange(result.NetChange()))
	} else {
		embed.Title = fmt.Sprintf("❌ %s No luck", emoji)
		embed.Color = common.ColorDanger
		embed.Description = fmt.Sprintf("Lost %s coins", common.FormatBalance(result.Stake))
	}
	return embed
}

// CreatePayoutTableEmbed lists the reel with its odds
func CreatePayoutTableEmbed() *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(games.LotteryTable))
	for _, sym := range games.LotteryTable {
		payout := "lose"
		if sym.Multiplier > 0 {
			payout = fmt.Sprintf("%dx", sym.Multiplier)
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   SymbolEmoji(sym),
			Value:  fmt.Sprintf("%.1f%% · %s", float64(sym.Weight)/10, payout),
			Inline: true,
		})
	}
	return &discordgo.MessageEmbed{
		Title:  "🎰 Lottery odds",
		Color:  common.ColorInfo,
		Fields: fields,
	}
}

package threecard

import (
	"fmt"
	"strings"

	"coinbot/bot/common"
	"coinbot/domain/entities"
	"coinbot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

const winMultiplier = 3

// CreateOfferEmbed invites the player to pick a card
func CreateOfferEmbed(displayName string, offer *entities.PendingWager) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🃏 Find the winning card",
		Color: common.ColorPrimary,
		Description: fmt.Sprintf("One of the three cards pays **3x** (%s).\nStake: %s\nPick within %s, before %s.",
			common.FormatBalanceCompact(offer.Stake*winMultiplier),
			common.FormatCoins(offer.Stake),
			common.FormatDuration(offer.ExpiresAt.Sub(offer.CreatedAt)),
			common.FormatDiscordTimestamp(offer.ExpiresAt, "t")),
		Footer: &discordgo.MessageEmbedFooter{
			Text: displayName,
		},
	}
}

// RevealCards draws the table face up, marking the pick
func RevealCards(winningSlot, chosenSlot int) string {
	cards := make([]string, entities.ThreeCardSlots)
	for slot := range cards {
		card := "🂠"
		if slot == winningSlot {
			card = "⭐"
		}
		if slot == chosenSlot {
			card = "[" + card + "]"
		}
		cards[slot] = card
	}
	return strings.Join(cards, "  ")
}

// CreateResolutionEmbed reports how an offer ended
func CreateResolutionEmbed(displayName string, res *interfaces.ThreeCardResolution) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s | %s", displayName, common.FormatCoins(res.NewBalance)),
		},
	}
	table := RevealCards(res.Offer.WinningSlot, res.ChosenSlot)

	switch res.Status {
	case interfaces.ThreeCardWon:
		embed.Title = "🎉 You found it"
		embed.Color = common.ColorSuccess
		embed.Description = fmt.Sprintf("%s\nCard %d wins!\nNet: %s",
			table, res.ChosenSlot+1, common.FormatNetChange(res.Outcome.NetChange()))
	case interfaces.ThreeCardLost:
		embed.Title = "❌ Wrong card"
		embed.Color = common.ColorDanger
		embed.Description = fmt.Sprintf("%s\nThe winner was card %d.\nNet: %s",
			table, res.Offer.WinningSlot+1, common.FormatNetChange(res.Outcome.NetChange()))
	default:
		embed.Title = "🚫 Offer closed"
		embed.Color = common.ColorWarning
		embed.Description = fmt.Sprintf("You no longer have %s to cover this game. Nothing was charged.",
			common.FormatCoins(res.Offer.Stake))
	}
	return embed
}

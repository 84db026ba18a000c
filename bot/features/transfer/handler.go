package transfer

import (
	"context"
	"fmt"

	"coinbot/application"
	"coinbot/bot/common"
	"coinbot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleTransfer(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	inv, err := common.ParseInvocation(i, f.config)
	if err != nil {
		common.HandleError(s, i, err, "transfer: bad invocation")
		return
	}

	// Extract amount and recipient
	var amount int64
	var recipientUser *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "user":
			recipientUser = opt.UserValue(s)
		}
	}

	if recipientUser == nil {
		common.RespondWithError(s, i, "Invalid recipient user.")
		return
	}
	if recipientUser.Bot {
		common.RespondWithError(s, i, "Bots don't hold coins.")
		return
	}

	toDiscordID, err := common.ParseUserID(recipientUser.ID)
	if err != nil {
		log.Errorf("Error parsing recipient Discord ID %s: %v", recipientUser.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	result, err := f.transfer(ctx, inv, toDiscordID, amount)
	if err != nil {
		common.HandleError(s, i, err, fmt.Sprintf("transfer from %d to %d failed", inv.UserID, toDiscordID))
		return
	}

	senderName := common.GetDisplayName(s, i.GuildID, common.InvokerID(i))
	recipientName := common.GetDisplayName(s, i.GuildID, recipientUser.ID)
	embed := CreateTransferEmbed(senderName, recipientName, toDiscordID, result)
	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to transfer command: %v", err)
	}
}

func (f *Feature) transfer(ctx context.Context, inv *common.Invocation, toDiscordID, amount int64) (*interfaces.TransferResult, error) {
	var result *interfaces.TransferResult
	err := application.WithUnitOfWork(ctx, f.uowFactory, inv.ScopeID, func(uow application.UnitOfWork) error {
		var err error
		result, err = common.NewEconomyService(uow).Transfer(ctx, inv.UserID, toDiscordID, amount)
		return err
	})
	return result, err
}

// CreateTransferEmbed reports a completed transfer
func CreateTransferEmbed(senderName, recipientName string, recipientID int64, result *interfaces.TransferResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "💌 Transfer complete",
		Color:       common.ColorSuccess,
		Description: fmt.Sprintf("**From**\n%s\n\n**To**\n%s", senderName, common.GetUserMention(recipientID)),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Amount", Value: common.FormatCoins(result.Amount), Inline: true},
			{Name: "Your balance", Value: common.FormatCoins(result.SenderBalance), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s | %s", recipientName, common.FormatCoins(result.RecipientBalance)),
		},
	}
}

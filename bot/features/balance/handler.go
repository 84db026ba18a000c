package balance

import (
	"context"
	"fmt"

	"coinbot/application"
	"coinbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	inv, err := common.ParseInvocation(i, f.config)
	if err != nil {
		common.HandleError(s, i, err, "balance: bad invocation")
		return
	}

	// Optional user option looks up someone else's balance
	targetID := inv.UserID
	targetUserID := common.InvokerID(i)
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name != "user" {
			continue
		}
		if user := opt.UserValue(s); user != nil {
			targetUserID = user.ID
			if targetID, err = common.ParseUserID(user.ID); err != nil {
				common.HandleError(s, i, common.NewSystemError(err, "invalid target user ID"), "balance failed")
				return
			}
		}
	}

	var balance int64
	err = application.WithUnitOfWork(ctx, f.uowFactory, inv.ScopeID, func(uow application.UnitOfWork) error {
		var lookupErr error
		balance, lookupErr = common.NewEconomyService(uow).GetBalance(ctx, targetID)
		return lookupErr
	})
	if err != nil {
		common.HandleError(s, i, err, fmt.Sprintf("balance lookup for %d failed", targetID))
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, targetUserID)
	embed := &discordgo.MessageEmbed{
		Title: "💰 Current balance",
		Color: common.ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s | %s", displayName, common.FormatCoins(balance)),
		},
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
}

package lottery

import (
	"context"

	"coinbot/application"
	"coinbot/bot/common"
	"coinbot/domain/games"
	"coinbot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleLottery(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	inv, err := common.ParseInvocation(i, f.config)
	if err != nil {
		common.HandleError(s, i, err, "lottery: bad invocation")
		return
	}

	var amountInput string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "amount" {
			amountInput = opt.StringValue()
		}
	}

	result, err := f.spin(ctx, inv, amountInput)
	if err != nil {
		common.HandleError(s, i, err, "lottery failed")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, common.InvokerID(i))
	if err := common.RespondWithEmbed(s, i, CreateResultEmbed(displayName, result), nil, false); err != nil {
		log.Errorf("Error responding to lottery command: %v", err)
	}
}

func (f *Feature) spin(ctx context.Context, inv *common.Invocation, amountInput string) (*interfaces.LotteryResult, error) {
	stake, err := games.ParseStake(amountInput)
	if err != nil {
		return nil, err
	}

	var result *interfaces.LotteryResult
	err = application.WithUnitOfWork(ctx, f.uowFactory, inv.ScopeID, func(uow application.UnitOfWork) error {
		var err error
		result, err = f.wagers.NewWagerService(uow).PlayLottery(ctx, inv.UserID, stake)
		return err
	})
	return result, err
}

package coinflip

import (
	"context"
	"fmt"

	"coinbot/application"
	"coinbot/bot/common"
	"coinbot/domain/games"
	"coinbot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleCoinFlip(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	inv, err := common.ParseInvocation(i, f.config)
	if err != nil {
		common.HandleError(s, i, err, "coinflip: bad invocation")
		return
	}

	var callInput, amountInput string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "call":
			callInput = opt.StringValue()
		case "amount":
			amountInput = opt.StringValue()
		}
	}

	result, err := f.play(ctx, inv, callInput, amountInput)
	if err != nil {
		common.HandleError(s, i, err, "coinflip failed")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, common.InvokerID(i))
	if err := common.RespondWithEmbed(s, i, CreateResultEmbed(displayName, result), nil, false); err != nil {
		log.Errorf("Error responding to coinflip command: %v", err)
	}
}

func (f *Feature) play(ctx context.Context, inv *common.Invocation, callInput, amountInput string) (*interfaces.CoinFlipResult, error) {
	call, err := games.ParseCoinSide(callInput)
	if err != nil {
		return nil, err
	}
	stake, err := games.ParseStake(amountInput)
	if err != nil {
		return nil, err
	}

	var result *interfaces.CoinFlipResult
	err = application.WithUnitOfWork(ctx, f.uowFactory, inv.ScopeID, func(uow application.UnitOfWork) error {
		var err error
		result, err = f.wagers.NewWagerService(uow).PlayCoinFlip(ctx, inv.UserID, call, stake)
		return err
	})
	return result, err
}

// CreateResultEmbed reports a settled flip
func CreateResultEmbed(displayName string, result *interfaces.CoinFlipResult) *discordgo.MessageEmbed {
	title := "❌ You lose"
	color := common.ColorDanger
	if result.Won {
		title = "🎉 You win"
		color = common.ColorSuccess
	}

	return &discordgo.MessageEmbed{
		Title: title,
		Color: color,
		Description: fmt.Sprintf("🪙 **%s**! You called %s.\nStake: %s\nNet: %s",
			sideName(result.Landed), sideName(result.Call),
			common.FormatCoins(result.Stake), common.FormatNetChange(result.NetChange())),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s | %s", displayName, common.FormatCoins(result.NewBalance)),
		},
	}
}

func sideName(side games.CoinSide) string {
	if side == games.Heads {
		return "Heads"
	}
	return "Tails"
}

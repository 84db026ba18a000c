package threecard

import (
	"context"

	"coinbot/application"
	"coinbot/bot/common"
	"coinbot/domain/entities"
	"coinbot/domain/games"
	"coinbot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleOffer(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	inv, err := common.ParseInvocation(i, f.config)
	if err != nil {
		common.HandleError(s, i, err, "threecard: bad invocation")
		return
	}

	var amountInput string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "amount" {
			amountInput = opt.StringValue()
		}
	}

	offer, err := f.offer(ctx, inv, amountInput)
	if err != nil {
		common.HandleError(s, i, err, "threecard offer failed")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, common.InvokerID(i))
	embed := CreateOfferEmbed(displayName, offer)
	if err := common.RespondWithEmbed(s, i, embed, CreateCardButtons(offer.OfferID), false); err != nil {
		log.Errorf("Error responding to threecard command: %v", err)
	}
}

func (f *Feature) handlePick(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	inv, err := common.ParseInvocation(i, f.config)
	if err != nil {
		common.HandleError(s, i, err, "threecard: bad invocation")
		return
	}

	offerID, slot, err := ParseCardCustomID(i.MessageComponentData().CustomID)
	if err != nil {
		common.HandleError(s, i, err, "threecard: bad button")
		return
	}

	res, err := f.resolve(ctx, inv, offerID, slot)
	if err != nil {
		// Someone else's or an already finished game: answer privately, leave the message alone
		common.HandleError(s, i, err, "threecard resolve failed")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, common.InvokerID(i))
	if err := common.UpdateWithEmbed(s, i, CreateResolutionEmbed(displayName, res), nil); err != nil {
		log.Errorf("Error updating threecard message: %v", err)
	}
}

func (f *Feature) offer(ctx context.Context, inv *common.Invocation, amountInput string) (*entities.PendingWager, error) {
	stake, err := games.ParseStake(amountInput)
	if err != nil {
		return nil, err
	}

	var offer *entities.PendingWager
	err = application.WithUnitOfWork(ctx, f.uowFactory, inv.ScopeID, func(uow application.UnitOfWork) error {
		var err error
		offer, err = f.wagers.NewWagerService(uow).OfferThreeCard(ctx, inv.UserID, stake)
		return err
	})
	return offer, err
}

func (f *Feature) resolve(ctx context.Context, inv *common.Invocation, offerID string, slot int) (*interfaces.ThreeCardResolution, error) {
	var res *interfaces.ThreeCardResolution
	err := application.WithUnitOfWork(ctx, f.uowFactory, inv.ScopeID, func(uow application.UnitOfWork) error {
		var err error
		res, err = f.wagers.NewWagerService(uow).ResolveThreeCard(ctx, offerID, slot, inv.UserID)
		return err
	})
	return res, err
}

package daily

import (
	"context"
	"errors"
	"time"

	"coinbot/application"
	"coinbot/bot/common"
	"coinbot/domain/entities"
	"coinbot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	inv, err := common.ParseInvocation(i, f.config)
	if err != nil {
		common.HandleError(s, i, err, "daily: bad invocation")
		return
	}

	now := f.now()
	result, err := f.claim(ctx, inv, now)
	if errors.Is(err, entities.ErrAlreadyClaimedToday) {
		embed := CreateAlreadyClaimedEmbed(common.NextReset(f.config, now))
		if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
			log.Errorf("Error responding to daily command: %v", err)
		}
		return
	}
	if err != nil {
		common.HandleError(s, i, err, "daily grant failed")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, common.InvokerID(i))
	if err := common.RespondWithEmbed(s, i, CreateGrantEmbed(displayName, result), nil, false); err != nil {
		log.Errorf("Error responding to daily command: %v", err)
	}
}

func (f *Feature) claim(ctx context.Context, inv *common.Invocation, now time.Time) (*interfaces.GrantResult, error) {
	today := common.Today(f.config, now)

	var result *interfaces.GrantResult
	err := application.WithUnitOfWork(ctx, f.uowFactory, inv.ScopeID, func(uow application.UnitOfWork) error {
		var err error
		result, err = common.NewEconomyService(uow).ClaimDailyGrant(ctx, inv.UserID, today)
		return err
	})
	return result, err
}

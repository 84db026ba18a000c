package lottery

import (
	"coinbot/application"
	"coinbot/bot/common"
	"coinbot/config"

	"github.com/bwmarrin/discordgo"
)

// Feature handles /lottery
type Feature struct {
	uowFactory application.UnitOfWorkFactory
	config     *config.Config
	wagers     common.WagerOptions
}

func New(uowFactory application.UnitOfWorkFactory, cfg *config.Config, wagers common.WagerOptions) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		config:     cfg,
		wagers:     wagers,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleLottery(s, i)
}

package balance

import (
	"coinbot/application"
	"coinbot/config"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	uowFactory application.UnitOfWorkFactory
	config     *config.Config
}

func New(uowFactory application.UnitOfWorkFactory, cfg *config.Config) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		config:     cfg,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleBalance(s, i)
}

package admin

import (
	"coinbot/application"
	"coinbot/config"

	"github.com/bwmarrin/discordgo"
)

// Feature handles /admin and its subcommands
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
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}

	switch data.Options[0].Name {
	case "grant":
		f.handleGrant(s, i)
	case "reset":
		f.handleReset(s, i)
	case "mode":
		f.handleMode(s, i)
	}
}

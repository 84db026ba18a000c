package threecard

import (
	"coinbot/application"
	"coinbot/bot/common"
	"coinbot/config"

	"github.com/bwmarrin/discordgo"
)

// Feature handles /threecard and its card buttons
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

// HandleCommand opens a new offer
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleOffer(s, i)
}

// HandleInteraction resolves an offer when one of its cards is clicked
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handlePick(s, i)
}

package daily

import (
	"time"

	"coinbot/application"
	"coinbot/config"

	"github.com/bwmarrin/discordgo"
)

// Feature handles /daily
type Feature struct {
	uowFactory application.UnitOfWorkFactory
	config     *config.Config
	now        func() time.Time
}

func New(uowFactory application.UnitOfWorkFactory, cfg *config.Config) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		config:     cfg,
		now:        time.Now,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleDaily(s, i)
}

package bot

import (
	"context"
	"fmt"
	"strings"

	"coinbot/application"
	"coinbot/bot/common"
	"coinbot/bot/features/admin"
	"coinbot/bot/features/balance"
	"coinbot/bot/features/coinflip"
	"coinbot/bot/features/daily"
	"coinbot/bot/features/leaderboard"
	"coinbot/bot/features/lottery"
	"coinbot/bot/features/threecard"
	"coinbot/bot/features/transfer"
	"coinbot/config"
	"coinbot/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
}

// Bot manages the Discord session and all feature modules
type Bot struct {
	config     Config
	session    *discordgo.Session
	uowFactory application.UnitOfWorkFactory
	metrics    *observability.Metrics

	// Feature modules
	daily       *daily.Feature
	balance     *balance.Feature
	transfer    *transfer.Feature
	coinflip    *coinflip.Feature
	lottery     *lottery.Feature
	threecard   *threecard.Feature
	leaderboard *leaderboard.Feature
	admin       *admin.Feature

	// Worker cleanup functions
	stopOfferExpiryWorker func()
}

// New creates a bot with all features, opens the gateway and registers commands.
// reaper may be nil when offers expire on their own (redis TTL).
func New(botConfig Config, appConfig *config.Config, uowFactory application.UnitOfWorkFactory, wagers common.WagerOptions, metrics *observability.Metrics, reaper OfferReaper) (*Bot, error) {
	dg, err := discordgo.New("Bot " + botConfig.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	bot := &Bot{
		config:     botConfig,
		session:    dg,
		uowFactory: uowFactory,
		metrics:    metrics,
	}

	bot.daily = daily.New(uowFactory, appConfig)
	bot.balance = balance.New(uowFactory, appConfig)
	bot.transfer = transfer.New(uowFactory, appConfig)
	bot.coinflip = coinflip.New(uowFactory, appConfig, wagers)
	bot.lottery = lottery.New(uowFactory, appConfig, wagers)
	bot.threecard = threecard.New(uowFactory, appConfig, wagers)
	bot.leaderboard = leaderboard.New(uowFactory, appConfig)
	bot.admin = admin.New(uowFactory, appConfig)

	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleInteractions)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	if reaper != nil {
		bot.stopOfferExpiryWorker = StartOfferExpiryWorker(context.Background(), reaper, offerExpiryInterval)
		log.Info("Background workers started")
	}

	return bot, nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	if b.stopOfferExpiryWorker != nil {
		b.stopOfferExpiryWorker()
		log.Info("Background workers stopped")
	}
	return b.session.Close()
}

// handleCommands routes slash commands to appropriate handlers
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	b.countCommand(name)

	switch name {
	case "daily":
		b.daily.HandleCommand(s, i)
	case "balance":
		b.balance.HandleCommand(s, i)
	case "transfer":
		b.transfer.HandleCommand(s, i)
	case "coinflip":
		b.coinflip.HandleCommand(s, i)
	case "lottery":
		b.lottery.HandleCommand(s, i)
	case "threecard":
		b.threecard.HandleCommand(s, i)
	case "leaderboard":
		b.leaderboard.HandleCommand(s, i)
	case "admin":
		b.admin.HandleCommand(s, i)
	default:
		log.WithField("command", name).Warn("Unknown command")
	}
}

// handleInteractions routes component interactions to appropriate features
func (b *Bot) handleInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	switch {
	case strings.HasPrefix(customID, threecard.CustomIDPrefix):
		b.countCommand("threecard_pick")
		b.threecard.HandleInteraction(s, i)
	}
}

func (b *Bot) countCommand(name string) {
	if b.metrics == nil {
		return
	}
	b.metrics.Commands.WithLabelValues(name).Inc()
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coinbot/bot"
	"coinbot/bot/common"
	"coinbot/config"
	"coinbot/database"
	"coinbot/domain/games"
	"coinbot/domain/interfaces"
	"coinbot/infrastructure"
	"coinbot/infrastructure/health"
	"coinbot/infrastructure/observability"
	"coinbot/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	config.ConfigureLogging(cfg)

	log.WithFields(log.Fields{
		"environment": cfg.Environment,
		"ledgerScope": cfg.LedgerScope,
		"offerStore":  cfg.OfferStore,
	}).Info("Starting coinbot...")

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully")

	healthServer := health.NewServer("coinbot", cfg.Port, prometheus.DefaultGatherer)
	healthServer.AddCheck("database", db)

	// Optional NATS fan-out; local handlers run either way
	var bus infrastructure.MessagePublisher
	if cfg.NATSServers != "" {
		log.WithField("servers", cfg.NATSServers).Info("Connecting to NATS...")
		natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer natsClient.Close()
		healthServer.AddCheck("nats", health.PingFunc(func(ctx context.Context) error {
			if !natsClient.IsConnected() {
				return errors.New("not connected")
			}
			return nil
		}))
		bus = natsClient
	}

	eventPublisher := infrastructure.NewNATSEventPublisher(bus, infrastructure.NewEventSubjectMapper())
	if err := eventPublisher.EnsureDomainEventStream(); err != nil {
		return fmt.Errorf("failed to ensure domain event stream: %w", err)
	}

	// Three-card offers live in postgres unless redis is configured
	var offers interfaces.OfferStore
	var reaper bot.OfferReaper
	if cfg.OfferStore == config.OfferStoreRedis {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()

		redisStore := infrastructure.NewRedisOfferStore(redisClient)
		if err := redisStore.Ping(ctx); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		healthServer.AddCheck("redis", redisStore)
		offers = redisStore
		log.WithField("addr", cfg.RedisAddr).Info("Using redis offer store")
	} else {
		reaper = repository.NewPendingWagerRepository(db)
	}

	uowFactory := infrastructure.NewUnitOfWorkFactory(db, offers, eventPublisher)

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	metrics.Subscribe(uowFactory)

	healthServer.Start()

	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.GuildID,
	}
	wagers := common.WagerOptions{
		RNG:        games.NewSecureRNG(),
		NewOfferID: infrastructure.NewOfferID,
		OfferTTL:   cfg.OfferTTL,
	}
	discordBot, err := bot.New(botConfig, cfg, uowFactory, wagers, metrics, reaper)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")

	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Error stopping health server: %v", err)
	}

	log.Info("Shutdown completed")
	return nil
}

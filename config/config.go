package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"coinbot/database"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Ledger scopes
const (
	LedgerScopeGuild  = "guild"
	LedgerScopeGlobal = "global"
)

// Offer store backends
const (
	OfferStorePostgres = "postgres"
	OfferStoreRedis    = "redis"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string `env:"DISCORD_TOKEN"`
	GuildID      string `env:"GUILD_ID"` // Registers commands in one guild when set

	// Database configuration
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseName string `env:"DATABASE_NAME"`

	// Economy configuration
	LedgerScope             string  `env:"LEDGER_SCOPE" envDefault:"guild"`
	AdminDiscordIDs         []int64 `env:"ADMIN_DISCORD_IDS" envSeparator:","`
	ReferenceUTCOffsetHours int     `env:"REFERENCE_UTC_OFFSET_HOURS" envDefault:"9"`

	// Three-card offers
	OfferStore string        `env:"OFFER_STORE" envDefault:"postgres"`
	OfferTTL   time.Duration `env:"OFFER_TTL" envDefault:"15m"`

	// Redis configuration, only used by the redis offer store
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// NATS configuration. Empty disables event fan-out.
	NATSServers string `env:"NATS_SERVERS"`

	// Keep-alive and metrics server
	Port string `env:"PORT" envDefault:"3000"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Environment
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
				instance.DiscordToken = "test-token"
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// IsAdmin reports whether discordID may run admin commands
func (c *Config) IsAdmin(discordID int64) bool {
	return slices.Contains(c.AdminDiscordIDs, discordID)
}

// GlobalLedger reports whether one ledger is shared by every guild
func (c *Config) GlobalLedger() bool {
	return c.LedgerScope == LedgerScopeGlobal
}

// LedgerScopeID maps the guild an interaction came from to its ledger scope
func (c *Config) LedgerScopeID(guildID int64) int64 {
	if c.GlobalLedger() {
		return 0
	}
	return guildID
}

// load reads .env when present and then the process environment
func load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	c.LedgerScope = strings.ToLower(strings.TrimSpace(c.LedgerScope))
	c.OfferStore = strings.ToLower(strings.TrimSpace(c.OfferStore))

	if c.LedgerScope != LedgerScopeGuild && c.LedgerScope != LedgerScopeGlobal {
		return fmt.Errorf("LEDGER_SCOPE must be %q or %q, got %q", LedgerScopeGuild, LedgerScopeGlobal, c.LedgerScope)
	}
	if c.OfferStore != OfferStorePostgres && c.OfferStore != OfferStoreRedis {
		return fmt.Errorf("OFFER_STORE must be %q or %q, got %q", OfferStorePostgres, OfferStoreRedis, c.OfferStore)
	}
	if c.OfferStore == OfferStoreRedis && c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required when OFFER_STORE is redis")
	}
	if c.OfferTTL <= 0 {
		return fmt.Errorf("OFFER_TTL must be positive, got %s", c.OfferTTL)
	}
	if c.ReferenceUTCOffsetHours < -12 || c.ReferenceUTCOffsetHours > 14 {
		return fmt.Errorf("REFERENCE_UTC_OFFSET_HOURS must be between -12 and 14, got %d", c.ReferenceUTCOffsetHours)
	}

	if c.Environment != "test" {
		if c.DiscordToken == "" {
			return fmt.Errorf("DISCORD_TOKEN is required")
		}
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}
		if c.DatabaseName != "" && strings.TrimSpace(c.DatabaseName) == "" {
			return fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return nil
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:             "test",
		LedgerScope:             LedgerScopeGuild,
		AdminDiscordIDs:         []int64{999999},
		ReferenceUTCOffsetHours: 9,
		OfferStore:              OfferStorePostgres,
		OfferTTL:                15 * time.Minute,
		Port:                    "3000",
		LogLevel:                "info",
	}
}

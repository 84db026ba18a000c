package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, LedgerScopeGuild, cfg.LedgerScope)
	assert.Equal(t, 9, cfg.ReferenceUTCOffsetHours)
	assert.Equal(t, OfferStorePostgres, cfg.OfferStore)
	assert.Equal(t, 15*time.Minute, cfg.OfferTTL)
	assert.Equal(t, "3000", cfg.Port)
	assert.Empty(t, cfg.NATSServers)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LEDGER_SCOPE", "GLOBAL")
	t.Setenv("ADMIN_DISCORD_IDS", "111,222")
	t.Setenv("OFFER_STORE", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("OFFER_TTL", "90s")
	t.Setenv("REFERENCE_UTC_OFFSET_HOURS", "0")

	cfg, err := load()
	require.NoError(t, err)

	assert.True(t, cfg.GlobalLedger())
	assert.Equal(t, int64(0), cfg.LedgerScopeID(12345))
	assert.True(t, cfg.IsAdmin(222))
	assert.False(t, cfg.IsAdmin(333))
	assert.Equal(t, OfferStoreRedis, cfg.OfferStore)
	assert.Equal(t, 90*time.Second, cfg.OfferTTL)
	assert.Equal(t, 0, cfg.ReferenceUTCOffsetHours)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "missing token", env: map[string]string{"DISCORD_TOKEN": ""}, wantErr: "DISCORD_TOKEN"},
		{name: "missing database", env: map[string]string{"DATABASE_URL": ""}, wantErr: "DATABASE_URL"},
		{name: "bad scope", env: map[string]string{"LEDGER_SCOPE": "planet"}, wantErr: "LEDGER_SCOPE"},
		{name: "bad offer store", env: map[string]string{"OFFER_STORE": "memcached"}, wantErr: "OFFER_STORE"},
		{name: "redis without address", env: map[string]string{"OFFER_STORE": "redis"}, wantErr: "REDIS_ADDR"},
		{name: "offset out of range", env: map[string]string{"REFERENCE_UTC_OFFSET_HOURS": "15"}, wantErr: "REFERENCE_UTC_OFFSET_HOURS"},
		{name: "non-positive ttl", env: map[string]string{"OFFER_TTL": "0s"}, wantErr: "OFFER_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLedgerScopeID_GuildScope(t *testing.T) {
	cfg := NewTestConfig()
	assert.False(t, cfg.GlobalLedger())
	assert.Equal(t, int64(12345), cfg.LedgerScopeID(12345))
}

func TestSetTestConfig(t *testing.T) {
	SetTestConfig(NewTestConfig())
	defer ResetConfig()

	assert.Equal(t, "test", Get().Environment)
	assert.True(t, Get().IsAdmin(999999))
}

package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		name     string
		balance  int64
		expected string
	}{
		{"zero", 0, "0"},
		{"three digits", 999, "999"},
		{"thousands", 20000, "20,000"},
		{"millions", 1234567, "1,234,567"},
		{"negative", -1500, "-1,500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatBalance(tt.balance))
		})
	}
}

func TestFormatBalanceCompact(t *testing.T) {
	tests := []struct {
		name     string
		balance  int64
		expected string
	}{
		{"Less than 1k", 999, "999"},
		{"Exactly 1k", 1000, "1k"},
		{"1.5k", 1500, "1.5k"},
		{"213.9k", 213901, "213.9k"},
		{"1M", 1000000, "1M"},
		{"1.5M", 1500000, "1.5M"},
		{"1B", 1000000000, "1B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatBalanceCompact(tt.balance)
			if result != tt.expected {
				t.Errorf("FormatBalanceCompact(%d) = %s; want %s", tt.balance, result, tt.expected)
			}
		})
	}
}

func TestFormatNetChange(t *testing.T) {
	assert.Equal(t, "+99,000", FormatNetChange(99000))
	assert.Equal(t, "-1,000", FormatNetChange(-1000))
	assert.Equal(t, "+0", FormatNetChange(0))
}

func TestFormatCoins(t *testing.T) {
	assert.Equal(t, "20,000 coins", FormatCoins(20000))
}

func TestFormatRank(t *testing.T) {
	assert.Equal(t, "🥇", FormatRank(1))
	assert.Equal(t, "🥉", FormatRank(3))
	assert.Equal(t, "#4", FormatRank(4))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "< 1m", FormatDuration(30*time.Second))
	assert.Equal(t, "15m", FormatDuration(15*time.Minute))
	assert.Equal(t, "3h 45m", FormatDuration(3*time.Hour+45*time.Minute))
	assert.Equal(t, "2d 14h 30m", FormatDuration(62*time.Hour+30*time.Minute))
}

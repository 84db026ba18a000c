package games

import (
	"errors"
	"math"
	"testing"

	"coinbot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStake(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Stake
		wantErr bool
	}{
		{name: "plain number", input: "1000", want: Amount(1000)},
		{name: "thousands separator", input: "12,500", want: Amount(12500)},
		{name: "surrounding whitespace", input: "  42 ", want: Amount(42)},
		{name: "all-in keyword", input: "all-in", want: AllIn()},
		{name: "allin keyword upper case", input: "ALLIN", want: AllIn()},
		{name: "max keyword", input: "max", want: AllIn()},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-5", wantErr: true},
		{name: "not a number", input: "lots", wantErr: true},
		{name: "fractional", input: "10.5", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStake(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, entities.ErrInvalidStake))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStake_Resolve(t *testing.T) {
	t.Run("fixed amount within balance", func(t *testing.T) {
		amount, err := Amount(1500).Resolve(5000, LotteryMinStake)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), amount)
	})

	t.Run("all-in resolves to balance", func(t *testing.T) {
		amount, err := AllIn().Resolve(7300, ThreeCardMinStake)
		require.NoError(t, err)
		assert.Equal(t, int64(7300), amount)
	})

	t.Run("all-in below minimum is rejected", func(t *testing.T) {
		_, err := AllIn().Resolve(999, LotteryMinStake)
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrInvalidStake)
		assert.NotErrorIs(t, err, entities.ErrInsufficientFunds)
	})

	t.Run("all-in with empty balance is rejected", func(t *testing.T) {
		_, err := AllIn().Resolve(0, CoinFlipMinStake)
		assert.ErrorIs(t, err, entities.ErrInvalidStake)
	})

	t.Run("below minimum", func(t *testing.T) {
		_, err := Amount(999).Resolve(100000, ThreeCardMinStake)
		assert.ErrorIs(t, err, entities.ErrInvalidStake)
	})

	t.Run("coin flip minimum is one coin", func(t *testing.T) {
		amount, err := Amount(1).Resolve(1, CoinFlipMinStake)
		require.NoError(t, err)
		assert.Equal(t, int64(1), amount)
	})

	t.Run("all-in above the maximum is rejected", func(t *testing.T) {
		_, err := AllIn().Resolve(MaxStake+1, LotteryMinStake)
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrInvalidStake)
		assert.Contains(t, err.Error(), "stake all-in is above the maximum")
	})

	t.Run("maximum stake is accepted", func(t *testing.T) {
		amount, err := Amount(MaxStake).Resolve(math.MaxInt64, LotteryMinStake)
		require.NoError(t, err)
		assert.Equal(t, MaxStake, amount)
	})

	t.Run("exceeds balance reports both kinds", func(t *testing.T) {
		_, err := Amount(5001).Resolve(5000, CoinFlipMinStake)
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrInvalidStake)
		assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
	})
}

package coinflip

import (
	"context"
	"testing"

	"coinbot/bot/common"
	"coinbot/config"
	"coinbot/domain/entities"
	"coinbot/domain/games"
	"coinbot/domain/interfaces"
	"coinbot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestFeature(uow *testhelpers.MockUnitOfWork, draws ...int) *Feature {
	return New(&testhelpers.MockUnitOfWorkFactory{UnitOfWork: uow}, config.NewTestConfig(), common.WagerOptions{
		RNG:        testhelpers.NewFixedRNG(draws...),
		NewOfferID: func() string { return "unused" },
	})
}

func TestPlay_HeadsWins(t *testing.T) {
	ctx := context.Background()
	uow := testhelpers.NewMockUnitOfWork()
	feature := newTestFeature(uow, 0) // 0 lands heads

	uow.Accounts.On("Get", ctx, int64(7)).Return(&entities.Account{DiscordID: 7, Balance: 10000}, nil)
	uow.Accounts.On("Adjust", ctx, int64(7), int64(-1000)).Return(&entities.Account{DiscordID: 7, Balance: 9000}, nil)
	uow.Accounts.On("Adjust", ctx, int64(7), int64(2000)).Return(&entities.Account{DiscordID: 7, Balance: 11000}, nil)
	uow.Rounds.On("Create", ctx, mock.Anything).Return(nil)
	uow.History.On("Record", ctx, mock.Anything).Return(nil)

	result, err := feature.play(ctx, &common.Invocation{UserID: 7}, "heads", "1,000")

	require.NoError(t, err)
	assert.True(t, result.Won)
	assert.Equal(t, int64(11000), result.NewBalance)
	assert.True(t, uow.Committed)
}

func TestPlay_BadInputNeverOpensTransaction(t *testing.T) {
	tests := []struct {
		name   string
		call   string
		amount string
		kind   error
	}{
		{"bad call", "edge", "100", entities.ErrInvalidChoice},
		{"bad amount", "heads", "lots", entities.ErrInvalidStake},
		{"zero amount", "tails", "0", entities.ErrInvalidStake},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow := testhelpers.NewMockUnitOfWork()
			factory := &testhelpers.MockUnitOfWorkFactory{UnitOfWork: uow}
			feature := New(factory, config.NewTestConfig(), common.WagerOptions{RNG: testhelpers.NewFixedRNG()})

			_, err := feature.play(context.Background(), &common.Invocation{UserID: 7}, tt.call, tt.amount)

			assert.ErrorIs(t, err, tt.kind)
			assert.Empty(t, factory.Scopes)
		})
	}
}

func TestCreateResultEmbed(t *testing.T) {
	result := &interfaces.CoinFlipResult{
		GameResult: interfaces.GameResult{
			Outcome:    games.Outcome{Game: entities.GameTypeCoinFlip, Stake: 1000, Result: "tails"},
			NewBalance: 9000,
		},
		Call:   games.Heads,
		Landed: games.Tails,
	}

	embed := CreateResultEmbed("alice", result)

	assert.Equal(t, common.ColorDanger, embed.Color)
	assert.Contains(t, embed.Description, "**Tails**! You called Heads.")
	assert.Contains(t, embed.Description, "Net: -1,000")
	assert.Equal(t, "alice | 9,000 coins", embed.Footer.Text)
}

package leaderboard

import (
	"context"
	"testing"

	"coinbot/bot/common"
	"coinbot/config"
	"coinbot/domain/entities"
	"coinbot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRank_WholeScope(t *testing.T) {
	ctx := context.Background()
	uow := testhelpers.NewMockUnitOfWork()
	factory := &testhelpers.MockUnitOfWorkFactory{UnitOfWork: uow}
	feature := New(factory, config.NewTestConfig())

	uow.Accounts.On("TopBalances", ctx, common.LeaderboardSize).Return([]*entities.Account{
		{DiscordID: 1, Balance: 900},
		{DiscordID: 2, Balance: 500},
	}, nil)

	entries, err := feature.rank(ctx, &common.Invocation{UserID: 1, ScopeID: 42}, nil)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, []int64{42}, factory.Scopes)
}

func TestRank_AmongServerMembers(t *testing.T) {
	ctx := context.Background()
	uow := testhelpers.NewMockUnitOfWork()
	feature := New(&testhelpers.MockUnitOfWorkFactory{UnitOfWork: uow}, config.NewTestConfig())
	members := []int64{1, 3}

	uow.Accounts.On("TopBalancesAmong", ctx, members, common.LeaderboardSize).Return([]*entities.Account{
		{DiscordID: 3, Balance: 100},
	}, nil)

	entries, err := feature.rank(ctx, &common.Invocation{UserID: 1}, members)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].DiscordID)
	uow.Accounts.AssertNotCalled(t, "TopBalances", mock.Anything, mock.Anything)
}

func TestRank_EmptyServerSkipsLookup(t *testing.T) {
	uow := testhelpers.NewMockUnitOfWork()
	factory := &testhelpers.MockUnitOfWorkFactory{UnitOfWork: uow}
	feature := New(factory, config.NewTestConfig())

	entries, err := feature.rank(context.Background(), &common.Invocation{UserID: 1}, []int64{})

	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, factory.Scopes)
}

func TestCreateLeaderboardEmbed(t *testing.T) {
	embed := CreateLeaderboardEmbed("🏆 Leaderboard", []entities.LeaderboardEntry{
		{Rank: 1, DiscordID: 1, Balance: 20000},
		{Rank: 4, DiscordID: 7, Balance: 1500},
	}, map[int64]string{1: "alice"})

	assert.Equal(t, "🥇 **alice** · 20,000 coins\n#4 **<@7>** · 1,500 coins\n", embed.Description)

	empty := CreateLeaderboardEmbed("🏆 Leaderboard", nil, nil)
	assert.Equal(t, "No one has any coins yet.", empty.Description)
}

package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"coinbot/domain/entities"
	"coinbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_EnsureAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB, 42)
	ctx := context.Background()

	account, err := repo.Get(ctx, 1001)
	require.NoError(t, err)
	assert.Nil(t, account)

	account, err = repo.Ensure(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, int64(0), account.Balance)
	assert.Equal(t, int64(42), account.GuildID)
	assert.Nil(t, account.LastGrantDate)

	// Ensure on an existing account leaves it alone
	_, err = repo.Adjust(ctx, 1001, 500)
	require.NoError(t, err)
	account, err = repo.Ensure(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, int64(500), account.Balance)

	// Other scopes do not see it
	other := NewAccountRepository(testDB.DB, 43)
	account, err = other.Get(ctx, 1001)
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestAccountRepository_Adjust(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB, 0)
	ctx := context.Background()

	t.Run("no account", func(t *testing.T) {
		_, err := repo.Adjust(ctx, 2001, 100)
		assert.ErrorIs(t, err, entities.ErrNoAccount)
	})

	t.Run("credit and debit", func(t *testing.T) {
		_, err := repo.Ensure(ctx, 2002)
		require.NoError(t, err)

		account, err := repo.Adjust(ctx, 2002, 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), account.Balance)

		account, err = repo.Adjust(ctx, 2002, -1000)
		require.NoError(t, err)
		assert.Equal(t, int64(0), account.Balance)
	})

	t.Run("overdraft leaves balance untouched", func(t *testing.T) {
		_, err := repo.Ensure(ctx, 2003)
		require.NoError(t, err)
		_, err = repo.Adjust(ctx, 2003, 300)
		require.NoError(t, err)

		_, err = repo.Adjust(ctx, 2003, -301)
		assert.ErrorIs(t, err, entities.ErrInsufficientFunds)

		account, err := repo.Get(ctx, 2003)
		require.NoError(t, err)
		assert.Equal(t, int64(300), account.Balance)
	})
}

func TestAccountRepository_ConcurrentDebitsNeverOverdraw(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB, 0)
	ctx := context.Background()

	_, err := repo.Ensure(ctx, 3001)
	require.NoError(t, err)
	_, err = repo.Adjust(ctx, 3001, 1000)
	require.NoError(t, err)

	const attempts = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Adjust(ctx, 3001, -300); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	account, err := repo.Get(ctx, 3001)
	require.NoError(t, err)
	assert.Equal(t, int64(100), account.Balance)
}

func TestAccountRepository_SetGrantDate(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB, 0)
	ctx := context.Background()

	day1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	_, err := repo.Ensure(ctx, 4001)
	require.NoError(t, err)

	claimed, err := repo.SetGrantDate(ctx, 4001, day1)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.SetGrantDate(ctx, 4001, day1)
	require.NoError(t, err)
	assert.False(t, claimed, "same day must not be claimable twice")

	account, err := repo.Get(ctx, 4001)
	require.NoError(t, err)
	require.NotNil(t, account.LastGrantDate)
	assert.True(t, account.ClaimedOn(day1))

	claimed, err = repo.SetGrantDate(ctx, 4001, day2)
	require.NoError(t, err)
	assert.True(t, claimed)

	require.NoError(t, repo.ClearGrantDate(ctx, 4001))

	account, err = repo.Get(ctx, 4001)
	require.NoError(t, err)
	assert.Nil(t, account.LastGrantDate)

	assert.ErrorIs(t, repo.ClearGrantDate(ctx, 4999), entities.ErrNoAccount)
}

func TestAccountRepository_TopBalances(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB, 7)
	ctx := context.Background()

	balances := map[int64]int64{5001: 300, 5002: 900, 5003: 0, 5004: 600}
	for id, balance := range balances {
		_, err := repo.Ensure(ctx, id)
		require.NoError(t, err)
		if balance > 0 {
			_, err = repo.Adjust(ctx, id, balance)
			require.NoError(t, err)
		}
	}

	top, err := repo.TopBalances(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, int64(5002), top[0].DiscordID)
	assert.Equal(t, int64(5004), top[1].DiscordID)
	assert.Equal(t, int64(5001), top[2].DiscordID)

	top, err = repo.TopBalances(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)

	among, err := repo.TopBalancesAmong(ctx, []int64{5001, 5003, 9999}, 10)
	require.NoError(t, err)
	require.Len(t, among, 1)
	assert.Equal(t, int64(5001), among[0].DiscordID)
}

func TestAccountRepository_ResetBalance(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB, 7)
	ctx := context.Background()

	for _, id := range []int64{6001, 6002} {
		_, err := repo.Ensure(ctx, id)
		require.NoError(t, err)
		_, err = repo.Adjust(ctx, id, 800)
		require.NoError(t, err)
	}

	previous, err := repo.ResetBalance(ctx, 6001)
	require.NoError(t, err)
	assert.Equal(t, int64(800), previous)

	reset, err := repo.Get(ctx, 6001)
	require.NoError(t, err)
	assert.Equal(t, int64(0), reset.Balance)

	untouched, err := repo.Get(ctx, 6002)
	require.NoError(t, err)
	assert.Equal(t, int64(800), untouched.Balance)

	_, err = repo.ResetBalance(ctx, 6999)
	assert.ErrorIs(t, err, entities.ErrNoAccount)
}

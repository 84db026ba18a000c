package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"coinbot/application"
	"coinbot/domain/entities"
	"coinbot/domain/events"
	"coinbot/domain/games"
	"coinbot/domain/interfaces"
	"coinbot/domain/services"
	"coinbot/domain/testhelpers"
	"coinbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inUnitOfWork runs fn in a fresh unit of work, committing on success
func inUnitOfWork(t *testing.T, testDB *testutil.TestDatabase, guildID int64, publisher *testhelpers.RecordingPublisher, fn func(uow application.UnitOfWork) error) error {
	t.Helper()
	ctx := context.Background()

	uow := CreateTestUnitOfWork(testDB.DB, guildID, publisher)
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback() }()

	if err := fn(uow); err != nil {
		return err
	}
	return uow.Commit()
}

func economyFor(uow application.UnitOfWork) interfaces.EconomyService {
	return services.NewEconomyService(uow.AccountRepository(), uow.BalanceHistoryRepository(), uow.EventBus())
}

// wagerFor builds a wager service whose three-card offers always use offerID
// and put the winning card in slot 1
func wagerFor(uow application.UnitOfWork, offerID string) interfaces.WagerService {
	return services.NewWagerService(
		uow.AccountRepository(),
		uow.BalanceHistoryRepository(),
		uow.GameRoundRepository(),
		uow.OfferStore(),
		uow.EventBus(),
		testhelpers.NewFixedRNG(1),
		func() string { return offerID },
		time.Minute,
	)
}

func TestUnitOfWork_DailyGrantAndTransfer(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	publisher := &testhelpers.RecordingPublisher{}
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	err := inUnitOfWork(t, testDB, 1, publisher, func(uow application.UnitOfWork) error {
		result, err := economyFor(uow).ClaimDailyGrant(ctx, 100, day)
		if err != nil {
			return err
		}
		assert.True(t, result.FirstGrant)
		assert.Equal(t, int64(20000), result.NewBalance)
		return nil
	})
	require.NoError(t, err)

	err = inUnitOfWork(t, testDB, 1, publisher, func(uow application.UnitOfWork) error {
		_, err := economyFor(uow).ClaimDailyGrant(ctx, 100, day)
		return err
	})
	assert.ErrorIs(t, err, entities.ErrAlreadyClaimedToday)

	err = inUnitOfWork(t, testDB, 1, publisher, func(uow application.UnitOfWork) error {
		result, err := economyFor(uow).Transfer(ctx, 100, 200, 3000)
		if err != nil {
			return err
		}
		assert.Equal(t, int64(17000), result.SenderBalance)
		assert.Equal(t, int64(3000), result.RecipientBalance)
		return nil
	})
	require.NoError(t, err)

	err = inUnitOfWork(t, testDB, 1, publisher, func(uow application.UnitOfWork) error {
		history, err := uow.BalanceHistoryRepository().GetByUser(ctx, 100, 10)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, entities.TransactionTypeTransferOut, history[0].TransactionType)
		assert.Equal(t, entities.TransactionTypeDailyGrant, history[1].TransactionType)
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, publisher.PublishedOfType(events.EventTypeDailyGrantClaimed), 1)
	assert.Len(t, publisher.PublishedOfType(events.EventTypeTransferCompleted), 1)
}

func TestUnitOfWork_RollbackDiscardsChangesAndEvents(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	publisher := &testhelpers.RecordingPublisher{}

	errAbort := errors.New("abort")
	err := inUnitOfWork(t, testDB, 0, publisher, func(uow application.UnitOfWork) error {
		_, err := services.NewAdminService(uow.AccountRepository(), uow.BalanceHistoryRepository(), uow.EventBus()).Grant(ctx, 300, 5000)
		require.NoError(t, err)
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	account, err := NewAccountRepository(testDB.DB, 0).Get(ctx, 300)
	require.NoError(t, err)
	assert.Nil(t, account)
	assert.Empty(t, publisher.Published)
}

func TestUnitOfWork_ConcurrentDailyGrantPaysOnce(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	day := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := inUnitOfWork(t, testDB, 0, &testhelpers.RecordingPublisher{}, func(uow application.UnitOfWork) error {
				_, err := economyFor(uow).ClaimDailyGrant(ctx, 400, day)
				return err
			})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	account, err := NewAccountRepository(testDB.DB, 0).Get(ctx, 400)
	require.NoError(t, err)
	assert.Equal(t, entities.DailyGrantAmount, account.Balance)
}

func TestUnitOfWork_ThreeCardRoundTrip(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	publisher := &testhelpers.RecordingPublisher{}

	require.NoError(t, inUnitOfWork(t, testDB, 0, publisher, func(uow application.UnitOfWork) error {
		_, err := services.NewAdminService(uow.AccountRepository(), uow.BalanceHistoryRepository(), uow.EventBus()).Grant(ctx, 500, 1500)
		return err
	}))

	require.NoError(t, inUnitOfWork(t, testDB, 0, publisher, func(uow application.UnitOfWork) error {
		offer, err := wagerFor(uow, "01HZTHREECARD").OfferThreeCard(ctx, 500, games.Amount(1500))
		if err != nil {
			return err
		}
		assert.Equal(t, 1, offer.WinningSlot)
		return nil
	}))

	require.NoError(t, inUnitOfWork(t, testDB, 0, publisher, func(uow application.UnitOfWork) error {
		resolution, err := wagerFor(uow, "01HZTHREECARD").ResolveThreeCard(ctx, "01HZTHREECARD", 1, 500)
		if err != nil {
			return err
		}
		assert.Equal(t, interfaces.ThreeCardWon, resolution.Status)
		assert.Equal(t, int64(4500), resolution.NewBalance)
		return nil
	}))

	err := inUnitOfWork(t, testDB, 0, publisher, func(uow application.UnitOfWork) error {
		_, err := wagerFor(uow, "01HZTHREECARD").ResolveThreeCard(ctx, "01HZTHREECARD", 1, 500)
		return err
	})
	assert.ErrorIs(t, err, entities.ErrAlreadyResolved)

	require.NoError(t, inUnitOfWork(t, testDB, 0, publisher, func(uow application.UnitOfWork) error {
		rounds, err := uow.GameRoundRepository().GetByUser(ctx, 500, 10)
		require.NoError(t, err)
		require.Len(t, rounds, 1)
		assert.Equal(t, entities.GameTypeThreeCard, rounds[0].Game)
		assert.Equal(t, int64(3000), rounds[0].NetChange)
		return nil
	}))
}

func TestUnitOfWork_GettersPanicBeforeBegin(t *testing.T) {
	uow := NewUnitOfWorkFactory(nil, nil).CreateForGuildWithPublisher(0, &testhelpers.RecordingPublisher{})

	assert.PanicsWithValue(t, "unit of work not started - call Begin() first", func() {
		uow.AccountRepository()
	})
	assert.NoError(t, uow.Rollback())
}

func TestUnitOfWork_ConcurrentThreeCardResolveSettlesOnce(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	const offerID = "01HZRACE"

	require.NoError(t, inUnitOfWork(t, testDB, 0, &testhelpers.RecordingPublisher{}, func(uow application.UnitOfWork) error {
		_, err := services.NewAdminService(uow.AccountRepository(), uow.BalanceHistoryRepository(), uow.EventBus()).Grant(ctx, 600, 1500)
		return err
	}))
	require.NoError(t, inUnitOfWork(t, testDB, 0, &testhelpers.RecordingPublisher{}, func(uow application.UnitOfWork) error {
		_, err := wagerFor(uow, offerID).OfferThreeCard(ctx, 600, games.Amount(1500))
		return err
	}))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		settled  int
		resolved int
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := inUnitOfWork(t, testDB, 0, &testhelpers.RecordingPublisher{}, func(uow application.UnitOfWork) error {
				_, err := wagerFor(uow, offerID).ResolveThreeCard(ctx, offerID, 1, 600)
				return err
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				settled++
			case errors.Is(err, entities.ErrAlreadyResolved):
				resolved++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, settled)
	assert.Equal(t, 1, resolved)

	account, err := NewAccountRepository(testDB.DB, 0).Get(ctx, 600)
	require.NoError(t, err)
	assert.Equal(t, int64(4500), account.Balance)

	rounds, err := newGameRoundRepository(testDB.DB.Pool, 0).GetByUser(ctx, 600, 10)
	require.NoError(t, err)
	assert.Len(t, rounds, 1)
}

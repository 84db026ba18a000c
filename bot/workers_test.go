package bot

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingReaper struct {
	calls atomic.Int32
	err   error
}

func (r *countingReaper) DeleteExpired(ctx context.Context) (int64, error) {
	r.calls.Add(1)
	return 1, r.err
}

func TestStartOfferExpiryWorker_SweepsOnStartAndOnTick(t *testing.T) {
	reaper := &countingReaper{}

	stop := StartOfferExpiryWorker(context.Background(), reaper, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return reaper.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	stop()

	after := reaper.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, reaper.calls.Load())
}

func TestStartOfferExpiryWorker_KeepsRunningAfterErrors(t *testing.T) {
	reaper := &countingReaper{err: errors.New("connection reset")}

	stop := StartOfferExpiryWorker(context.Background(), reaper, 10*time.Millisecond)
	defer stop()

	assert.Eventually(t, func() bool { return reaper.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestStartOfferExpiryWorker_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	reaper := &countingReaper{}

	stop := StartOfferExpiryWorker(ctx, reaper, time.Hour)
	assert.Eventually(t, func() bool { return reaper.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	stop()
}

func TestSlashCommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range slashCommands() {
		names[cmd.Name] = true
	}

	for _, name := range []string{"daily", "balance", "transfer", "coinflip", "lottery", "threecard", "leaderboard", "admin"} {
		assert.True(t, names[name], name)
	}
	assert.Len(t, names, 8)
}

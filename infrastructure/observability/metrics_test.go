package observability

import (
	"context"
	"testing"

	"coinbot/domain/entities"
	"coinbot/domain/events"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerRegistry map[events.EventType][]func(context.Context, events.Event) error

func (r handlerRegistry) RegisterLocalHandler(eventType events.EventType, handler func(context.Context, events.Event) error) {
	r[eventType] = append(r[eventType], handler)
}

func (r handlerRegistry) dispatch(t *testing.T, e events.Event) {
	t.Helper()
	for _, h := range r[e.Type()] {
		require.NoError(t, h(context.Background(), e))
	}
}

func TestMetrics_GameSettled(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	registry := handlerRegistry{}
	metrics.Subscribe(registry)

	registry.dispatch(t, events.GameSettledEvent{Game: entities.GameTypeCoinFlip, Stake: 500, Outcome: "tails", NetChange: -500})
	registry.dispatch(t, events.GameSettledEvent{Game: entities.GameTypeCoinFlip, Stake: 200, Outcome: "heads", Multiplier: 2, NetChange: 200, Won: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GamesSettled.WithLabelValues("coinflip", ResultLost)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GamesSettled.WithLabelValues("coinflip", ResultWon)))
	assert.Equal(t, 700.0, testutil.ToFloat64(metrics.StakedCoins.WithLabelValues("coinflip")))
	assert.Equal(t, 500.0, testutil.ToFloat64(metrics.NetCoins.WithLabelValues("coinflip", "tails")))
}

func TestMetrics_EconomyEvents(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	registry := handlerRegistry{}
	metrics.Subscribe(registry)

	registry.dispatch(t, events.DailyGrantClaimedEvent{UserID: 1, Amount: 10000})
	registry.dispatch(t, events.TransferCompletedEvent{FromUserID: 1, ToUserID: 2, Amount: 250})
	registry.dispatch(t, events.BalanceChangeEvent{UserID: 1, TransactionType: entities.TransactionTypeTransferOut})
	registry.dispatch(t, events.ThreeCardOfferedEvent{OfferID: "a"})
	registry.dispatch(t, events.ThreeCardForfeitedEvent{OfferID: "a"})

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.DailyGrants))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Transfers))
	assert.Equal(t, 250.0, testutil.ToFloat64(metrics.TransferredCoins))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.BalanceChanges.WithLabelValues(string(entities.TransactionTypeTransferOut))))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ThreeCardOffers))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Forfeits))
}

func TestMetrics_WrongEventTypeIsAnError(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	err := metrics.onGameSettled(context.Background(), events.DailyGrantClaimedEvent{})
	assert.Error(t, err)
}

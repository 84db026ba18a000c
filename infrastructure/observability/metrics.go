package observability

import (
	"context"
	"fmt"

	"coinbot/domain/events"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
)

// Metrics holds the prometheus collectors fed from domain events
type Metrics struct {
	GamesSettled     *prometheus.CounterVec
	StakedCoins      *prometheus.CounterVec
	NetCoins         *prometheus.CounterVec
	Forfeits         prometheus.Counter
	ThreeCardOffers  prometheus.Counter
	DailyGrants      prometheus.Counter
	Transfers        prometheus.Counter
	TransferredCoins prometheus.Counter
	BalanceChanges   *prometheus.CounterVec
	Commands         *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GamesSettled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricPrefix,
			Name:      "games_settled_total",
			Help:      "Settled game rounds by game and result.",
		}, []string{LabelGame, LabelResult}),
		StakedCoins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricPrefix,
			Name:      "staked_coins_total",
			Help:      "Coins staked on settled rounds.",
		}, []string{LabelGame}),
		NetCoins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricPrefix,
			Name:      "house_net_coins_total",
			Help:      "Coins kept by the house, by game and outcome (won rounds are counted as paid out).",
		}, []string{LabelGame, LabelOutcome}),
		Forfeits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: MetricPrefix,
			Name:      "threecard_forfeits_total",
			Help:      "Three-card offers closed because the stake was no longer covered.",
		}),
		ThreeCardOffers: factory.NewCounter(prometheus.CounterOpts{
			Namespace: MetricPrefix,
			Name:      "threecard_offers_total",
			Help:      "Three-card offers dealt.",
		}),
		DailyGrants: factory.NewCounter(prometheus.CounterOpts{
			Namespace: MetricPrefix,
			Name:      "daily_grants_total",
			Help:      "Daily grants paid.",
		}),
		Transfers: factory.NewCounter(prometheus.CounterOpts{
			Namespace: MetricPrefix,
			Name:      "transfers_total",
			Help:      "Completed transfers.",
		}),
		TransferredCoins: factory.NewCounter(prometheus.CounterOpts{
			Namespace: MetricPrefix,
			Name:      "transferred_coins_total",
			Help:      "Coins moved by transfers.",
		}),
		BalanceChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricPrefix,
			Name:      "balance_changes_total",
			Help:      "Recorded balance changes by transaction type.",
		}, []string{LabelTransactionType}),
		Commands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricPrefix,
			Name:      "commands_total",
			Help:      "Slash commands and components handled.",
		}, []string{LabelCommand}),
	}
}

// EventRegistrar is satisfied by the unit of work factory and the event publisher
type EventRegistrar interface {
	RegisterLocalHandler(eventType events.EventType, handler func(context.Context, events.Event) error)
}

// Subscribe wires the collectors to committed domain events
func (m *Metrics) Subscribe(registrar EventRegistrar) {
	registrar.RegisterLocalHandler(events.EventTypeGameSettled, m.onGameSettled)
	registrar.RegisterLocalHandler(events.EventTypeThreeCardOffered, func(ctx context.Context, e events.Event) error {
		m.ThreeCardOffers.Inc()
		return nil
	})
	registrar.RegisterLocalHandler(events.EventTypeThreeCardForfeited, func(ctx context.Context, e events.Event) error {
		m.Forfeits.Inc()
		return nil
	})
	registrar.RegisterLocalHandler(events.EventTypeDailyGrantClaimed, func(ctx context.Context, e events.Event) error {
		m.DailyGrants.Inc()
		return nil
	})
	registrar.RegisterLocalHandler(events.EventTypeTransferCompleted, m.onTransfer)
	registrar.RegisterLocalHandler(events.EventTypeBalanceChange, m.onBalanceChange)

	log.Debug("Metrics subscribed to domain events")
}

func (m *Metrics) onGameSettled(ctx context.Context, e events.Event) error {
	settled, ok := e.(events.GameSettledEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", e, events.EventTypeGameSettled)
	}

	result := ResultLost
	if settled.Won {
		result = ResultWon
	}
	game := string(settled.Game)
	m.GamesSettled.WithLabelValues(game, result).Inc()
	m.StakedCoins.WithLabelValues(game).Add(float64(settled.Stake))
	if settled.NetChange < 0 {
		m.NetCoins.WithLabelValues(game, settled.Outcome).Add(float64(-settled.NetChange))
	}
	return nil
}

func (m *Metrics) onTransfer(ctx context.Context, e events.Event) error {
	transfer, ok := e.(events.TransferCompletedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", e, events.EventTypeTransferCompleted)
	}
	m.Transfers.Inc()
	m.TransferredCoins.Add(float64(transfer.Amount))
	return nil
}

func (m *Metrics) onBalanceChange(ctx context.Context, e events.Event) error {
	change, ok := e.(events.BalanceChangeEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", e, events.EventTypeBalanceChange)
	}
	m.BalanceChanges.WithLabelValues(string(change.TransactionType)).Inc()
	return nil
}

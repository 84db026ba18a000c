package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"coinbot/domain/entities"
	"coinbot/domain/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishedMessage struct {
	subject string
	data    []byte
}

type fakeMessageBus struct {
	messages []publishedMessage
	err      error
}

func (b *fakeMessageBus) Publish(ctx context.Context, subject string, data []byte) error {
	if b.err != nil {
		return b.err
	}
	b.messages = append(b.messages, publishedMessage{subject: subject, data: data})
	return nil
}

func TestNATSEventPublisher_PublishesEnvelope(t *testing.T) {
	bus := &fakeMessageBus{}
	publisher := NewNATSEventPublisher(bus, NewEventSubjectMapper())

	event := events.GameSettledEvent{
		UserID:     42,
		GuildID:    7,
		Game:       entities.GameTypeLottery,
		Stake:      1000,
		Outcome:    "jewel",
		Multiplier: 100,
		NetChange:  99000,
		Won:        true,
	}
	require.NoError(t, publisher.Publish(event))

	require.Len(t, bus.messages, 1)
	assert.Equal(t, "games.settled", bus.messages[0].subject)

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(bus.messages[0].data, &envelope))
	assert.Equal(t, string(events.EventTypeGameSettled), envelope.EventType)
	assert.Equal(t, "coinbot", envelope.SourceService)
	_, err := uuid.Parse(envelope.EventID)
	assert.NoError(t, err)

	var payload events.GameSettledEvent
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, event, payload)
}

func TestNATSEventPublisher_LocalHandlersRunWithoutBus(t *testing.T) {
	publisher := NewNATSEventPublisher(nil, NewEventSubjectMapper())

	var received []events.Event
	publisher.RegisterLocalHandler(events.EventTypeTransferCompleted, func(ctx context.Context, e events.Event) error {
		received = append(received, e)
		return errors.New("handler failure is logged only")
	})

	require.NoError(t, publisher.Publish(events.TransferCompletedEvent{FromUserID: 1, ToUserID: 2, Amount: 10}))
	require.NoError(t, publisher.Publish(events.BalanceChangeEvent{UserID: 1}))

	assert.Len(t, received, 1)
}

func TestNATSEventPublisher_BusFailure(t *testing.T) {
	publisher := NewNATSEventPublisher(&fakeMessageBus{err: errors.New("connection closed")}, NewEventSubjectMapper())

	err := publisher.Publish(events.BalanceChangeEvent{UserID: 1})
	assert.ErrorContains(t, err, "connection closed")

	publisher = NewNATSEventPublisher(&fakeMessageBus{err: errors.New("nats: no response from stream")}, NewEventSubjectMapper())
	assert.NoError(t, publisher.Publish(events.BalanceChangeEvent{UserID: 1}))
}

func TestEventSubjectMapper(t *testing.T) {
	mapper := NewEventSubjectMapper()

	for _, subject := range mapper.GetAllSubjects() {
		eventType := mapper.MapSubjectToEventType(subject)
		assert.NotEqual(t, events.EventType(subject), eventType, "subject %s should map back to a known event type", subject)
	}

	assert.Equal(t, "economy.daily_grant", mapper.MapEventToSubject(events.DailyGrantClaimedEvent{}))
	assert.Equal(t, "games.threecard.forfeited", mapper.MapEventToSubject(events.ThreeCardForfeitedEvent{}))
}

package infrastructure

import (
	"context"
)

// MessagePublisher is the outbound side of the message bus that domain events
// are fanned out to. It is nil when NATS is not configured.
type MessagePublisher interface {
	// Publish sends an encoded event envelope to subject
	Publish(ctx context.Context, subject string, data []byte) error
}

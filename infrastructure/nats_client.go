package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

const (
	natsConnectTimeout = 5 * time.Second
	eventRetention     = 7 * 24 * time.Hour
)

var errJetStreamUnavailable = errors.New("not connected to NATS JetStream")

// NATSClient publishes ledger events to JetStream
type NATSClient struct {
	servers string
	nc      *nats.Conn
	js      nats.JetStreamContext
}

// NewNATSClient creates a client for a comma separated server list
func NewNATSClient(servers string) *NATSClient {
	return &NATSClient{servers: servers}
}

func (c *NATSClient) options(ctx context.Context) []nats.Option {
	timeout := natsConnectTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}

	return []nats.Option{
		nats.Name("coinbot"),
		nats.Timeout(timeout),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.WithError(err).Warn("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.WithField("server", nc.ConnectedUrl()).Info("NATS reconnected")
		}),
		nats.ErrorHandler(func(_ *nats.Conn, sub *nats.Subscription, err error) {
			entry := log.WithError(err)
			if sub != nil {
				entry = entry.WithField("subject", sub.Subject)
			}
			entry.Error("NATS async error")
		}),
	}
}

// Connect dials NATS and opens a JetStream context
func (c *NATSClient) Connect(ctx context.Context) error {
	nc, err := nats.Connect(c.servers, c.options(ctx)...)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return fmt.Errorf("failed to create JetStream context: %w", err)
	}

	c.nc, c.js = nc, js
	log.WithField("server", nc.ConnectedUrl()).Info("Connected to NATS with JetStream")
	return nil
}

// Close drains pending publishes before closing the connection
func (c *NATSClient) Close() error {
	if c.nc == nil {
		return nil
	}
	if err := c.nc.Drain(); err != nil {
		c.nc.Close()
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}
	log.Info("NATS connection closed")
	return nil
}

// IsConnected reports whether the connection is currently up
func (c *NATSClient) IsConnected() bool {
	return c.nc != nil && c.nc.IsConnected()
}

// ensureStream creates the stream, or widens an existing one to cover subjects
func (c *NATSClient) ensureStream(streamName string, subjects []string) error {
	if c.js == nil {
		return errJetStreamUnavailable
	}

	info, err := c.js.StreamInfo(streamName)
	if err == nil {
		missing := false
		for _, subject := range subjects {
			if !slices.Contains(info.Config.Subjects, subject) {
				missing = true
				break
			}
		}
		if !missing {
			return nil
		}

		cfg := info.Config
		cfg.Subjects = subjects
		if _, err := c.js.UpdateStream(&cfg); err != nil {
			return fmt.Errorf("failed to update stream %s: %w", streamName, err)
		}
		log.WithFields(log.Fields{"stream": streamName, "subjects": subjects}).Info("Updated JetStream stream subjects")
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("failed to look up stream %s: %w", streamName, err)
	}

	_, err = c.js.AddStream(&nats.StreamConfig{
		Name:        streamName,
		Description: "Coin economy ledger and game events",
		Subjects:    subjects,
		Retention:   nats.LimitsPolicy,
		MaxAge:      eventRetention,
		Storage:     nats.FileStorage,
		Replicas:    1,
	})
	if err != nil {
		return fmt.Errorf("failed to create stream %s: %w", streamName, err)
	}

	log.WithFields(log.Fields{"stream": streamName, "subjects": subjects}).Info("Created JetStream stream")
	return nil
}

// Publish sends data to subject and waits for the stream ack
func (c *NATSClient) Publish(ctx context.Context, subject string, data []byte) error {
	if c.js == nil {
		return errJetStreamUnavailable
	}

	var opts []nats.PubOpt
	if _, ok := ctx.Deadline(); ok {
		opts = append(opts, nats.Context(ctx))
	}

	ack, err := c.js.Publish(subject, data, opts...)
	if err != nil {
		return fmt.Errorf("failed to publish message to subject %s: %w", subject, err)
	}

	log.WithFields(log.Fields{
		"subject":  subject,
		"stream":   ack.Stream,
		"sequence": ack.Sequence,
	}).Debug("Published message to NATS")
	return nil
}

package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// publisher is the slice of *nats.Conn the channel needs; kept narrow so
// tests can substitute a fake connection.
type publisher interface {
	Publish(subject string, data []byte) error
}

// NATSChannel publishes escalation messages as JSON onto a NATS subject so
// downstream consumers (dashboards, ticketing bridges) can react in real
// time. The subject is "<prefix>.<level>", e.g. "escalation.critical".
type NATSChannel struct {
	name          string
	pub           publisher
	subjectPrefix string
}

// NewNATSChannel creates a NATS channel over an established connection. The
// connection is owned by the hosting application.
func NewNATSChannel(name string, nc *nats.Conn, subjectPrefix string) *NATSChannel {
	return newNATSChannel(name, nc, subjectPrefix)
}

func newNATSChannel(name string, pub publisher, subjectPrefix string) *NATSChannel {
	if subjectPrefix == "" {
		subjectPrefix = "escalation"
	}
	return &NATSChannel{name: name, pub: pub, subjectPrefix: subjectPrefix}
}

// Name returns the channel's registry key.
func (c *NATSChannel) Name() string { return c.name }

// Send publishes the message. NATS publishing is fire-and-forget, so ctx is
// only checked up front.
func (c *NATSChannel) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.pub == nil {
		return fmt.Errorf("nats channel %q: no connection", c.name)
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("nats channel %q: marshal message: %w", c.name, err)
	}

	subject := c.subjectPrefix + "." + msg.Level
	if err := c.pub.Publish(subject, data); err != nil {
		return fmt.Errorf("nats channel %q: publish to %s: %w", c.name, subject, err)
	}
	return nil
}

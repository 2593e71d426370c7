package notify

import (
	"context"
	"log/slog"
)

// LogChannel delivers escalation messages to a structured logger. The
// cheapest channel and the usual last entry in a rule's channel list.
type LogChannel struct {
	name   string
	logger *slog.Logger
}

// NewLogChannel creates a log channel. A nil logger falls back to
// slog.Default().
func NewLogChannel(name string, logger *slog.Logger) *LogChannel {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogChannel{name: name, logger: logger}
}

// Name returns the channel's registry key.
func (c *LogChannel) Name() string { return c.name }

// Send logs the message at a level matching the escalation level.
func (c *LogChannel) Send(ctx context.Context, msg Message) error {
	attrs := []any{
		"rule", msg.Rule,
		"level", msg.Level,
		"operation", msg.Operation,
		"detail", msg.Detail,
	}
	switch msg.Level {
	case "critical", "engineering":
		c.logger.ErrorContext(ctx, msg.Summary, attrs...)
	case "support":
		c.logger.WarnContext(ctx, msg.Summary, attrs...)
	default:
		c.logger.InfoContext(ctx, msg.Summary, attrs...)
	}
	return nil
}

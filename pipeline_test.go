package resilience_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/resilience/breaker"
	"github.com/c360/resilience/classify"
	"github.com/c360/resilience/escalate"
	"github.com/c360/resilience/notify"
	"github.com/c360/resilience/retry"

	reserrors "github.com/c360/resilience/errors"
)

// ticketChannel records dispatched notifications.
type ticketChannel struct {
	name string
	sent []notify.Message
}

func (c *ticketChannel) Name() string { return c.name }

func (c *ticketChannel) Send(_ context.Context, msg notify.Message) error {
	c.sent = append(c.sent, msg)
	return nil
}

// TestPipeline_ExhaustedNetworkFailureReachesSupport drives a connection
// failure through the full pipeline: classification, retries behind the
// breaker, and escalation once the retry budget is spent.
func TestPipeline_ExhaustedNetworkFailureReachesSupport(t *testing.T) {
	classifier := classify.New()
	breakers := breaker.NewRegistry()
	engine := retry.New(classifier, breakers)

	channels := notify.NewRegistry()
	ticket := &ticketChannel{name: escalate.DefaultChannelTicket}
	logSink := &ticketChannel{name: escalate.DefaultChannelLog}
	require.NoError(t, channels.Register(ticket, notify.RateLimit{}))
	require.NoError(t, channels.Register(logSink, notify.RateLimit{}))
	escalator := escalate.NewEngine(channels)

	failure := errors.New("Connection refused: ECONNREFUSED")
	cls := classifier.Classify(failure, classify.Context{OperationType: "payment-api"})
	assert.Equal(t, classify.KindNetwork, cls.Kind)
	assert.GreaterOrEqual(t, cls.Confidence, 0.9)
	assert.True(t, cls.Retryable)
	assert.Equal(t, 3, cls.MaxRetries)

	calls := 0
	err := engine.Execute(context.Background(), func(context.Context) error {
		calls++
		return failure
	}, retry.Options{
		OperationName: "payment-api.charge",
		OperationType: "payment-api",
		MaxRetries:    3,
		Strategy:      retry.StrategyImmediate,
	})

	require.Error(t, err)
	var exhausted *reserrors.RetryExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 4, calls, "initial attempt plus three retries")
	assert.Equal(t, 4, exhausted.TotalAttempts)
	assert.Equal(t, "network", exhausted.Kind)

	res := escalator.Evaluate(context.Background(), exhausted.Err,
		classifier.Classify(exhausted.Err, classify.Context{
			OperationType: "payment-api",
			PriorRetries:  exhausted.TotalAttempts - 1,
		}),
		escalate.Context{
			Operation:     exhausted.OperationName,
			OperationType: exhausted.OperationType,
			RetryAttempt:  exhausted.TotalAttempts - 1,
		})

	require.True(t, res.Escalated)
	assert.Equal(t, "retries-exhausted", res.Rule)
	assert.Equal(t, escalate.LevelSupport, res.Level)
	assert.True(t, res.Success)
	require.Len(t, ticket.sent, 1)
	assert.Equal(t, "payment-api.charge", ticket.sent[0].Operation)

	// Four failures leave the payment-api breaker counting but closed.
	counts := breakers.Get("payment-api").Counts()
	assert.Equal(t, breaker.StateClosed, counts.State)
	assert.Equal(t, 4, counts.Failures)
}

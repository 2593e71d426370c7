package errors

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for the pipeline's engine-level failure flavors. Wrapper
// types below match these via errors.Is.
var (
	// ErrCircuitOpen indicates the operation was rejected because its
	// operation type's circuit breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrRetryExhausted indicates the operation failed on every attempt
	// the retry budget allowed.
	ErrRetryExhausted = errors.New("retry budget exhausted")

	// ErrNoOperation indicates the retry engine was invoked without an
	// operation to execute.
	ErrNoOperation = errors.New("no operation provided")

	// ErrInvalidOptions indicates the retry engine was given options it
	// cannot honor.
	ErrInvalidOptions = errors.New("invalid retry options")
)

// CircuitOpenError is returned when a circuit breaker rejects a call before
// the underlying operation runs. It carries the breaker state so callers can
// distinguish the rejection from the operation's own errors.
type CircuitOpenError struct {
	OperationType string
	State         string // breaker state name at rejection time
}

// Error implements the error interface.
func (e *CircuitOpenError) Error() string {
	return fmt.Sprintf("circuit breaker %s for operation type %q", e.State, e.OperationType)
}

// Is reports whether target is the ErrCircuitOpen sentinel.
func (e *CircuitOpenError) Is(target error) bool {
	return target == ErrCircuitOpen
}

// RetryExhaustedError is returned when the retry engine gives up on an
// operation. It enriches the final underlying error with attempt accounting
// and operation identity so callers and the escalation engine can act without
// re-deriving context.
type RetryExhaustedError struct {
	OperationName string
	OperationType string
	TotalAttempts int
	MaxRetries    int
	Kind          string // classified kind of the final failure
	Err           error  // final underlying error
}

// Error implements the error interface.
func (e *RetryExhaustedError) Error() string {
	name := e.OperationName
	if name == "" {
		name = e.OperationType
	}
	return fmt.Sprintf("operation %q failed after %d attempts (max retries %d): %v",
		name, e.TotalAttempts, e.MaxRetries, e.Err)
}

// Unwrap returns the final underlying error.
func (e *RetryExhaustedError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the ErrRetryExhausted sentinel.
func (e *RetryExhaustedError) Is(target error) bool {
	return target == ErrRetryExhausted
}

// IsCircuitOpen checks whether err carries the circuit-open flavor.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, ErrCircuitOpen)
}

// IsRetryExhausted checks whether err carries the retry-exhausted flavor.
func IsRetryExhausted(err error) bool {
	return errors.Is(err, ErrRetryExhausted)
}

// IsCancellation checks whether err stems from caller cancellation or an
// expired deadline rather than an operation failure.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

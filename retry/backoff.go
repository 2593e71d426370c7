package retry

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Thread-safe random source for jitter.
var (
	randMu     sync.Mutex
	randSource = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// backoffDelay computes the delay before the given attempt (attempt 1 is the
// first retry). The classification's own multiplier further scales the delay
// when present; the result is capped at MaxDelay and never negative. Jitter
// is applied separately.
func backoffDelay(o Options, attempt int, classMultiplier float64) time.Duration {
	if o.Strategy == StrategyImmediate || attempt <= 0 {
		return 0
	}

	var factor float64
	switch o.Strategy {
	case StrategyLinear:
		factor = float64(attempt)
	case StrategyFixed:
		factor = 1
	default:
		factor = math.Pow(o.BackoffMultiplier, float64(attempt-1))
	}

	delay := float64(o.BaseDelay) * factor
	if classMultiplier > 0 {
		delay *= classMultiplier
	}
	if delay > float64(o.MaxDelay) || delay > float64(math.MaxInt64) {
		return o.MaxDelay
	}
	if delay < 0 {
		return 0
	}
	return time.Duration(delay)
}

// jitter scales a delay by a uniformly random factor in [0.5, 1.0).
func jitter(delay time.Duration) time.Duration {
	if delay <= 0 {
		return 0
	}
	randMu.Lock()
	factor := 0.5 + 0.5*randSource.Float64()
	randMu.Unlock()
	return time.Duration(float64(delay) * factor)
}

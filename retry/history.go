package retry

import (
	"sync"
	"time"
)

// defaultHistoryCap bounds the retry history log.
const defaultHistoryCap = 1000

// Record is one completed engine call in the history log.
type Record struct {
	OperationName string        `json:"operation_name"`
	OperationType string        `json:"operation_type"`
	Success       bool          `json:"success"`
	Attempts      int           `json:"attempts"`
	Duration      time.Duration `json:"duration"`
	ErrorSummary  string        `json:"error_summary,omitempty"`
}

// history is an append-only, size-bounded log used only for statistics.
// It is never consulted by the retry decision itself.
type history struct {
	mu      sync.Mutex
	cap     int
	records []Record

	executions int64
	successes  int64
	attempts   int64
}

func newHistory(capacity int) *history {
	if capacity <= 0 {
		capacity = defaultHistoryCap
	}
	return &history{cap: capacity}
}

func (h *history) append(r Record) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append(h.records, r)
	if len(h.records) > h.cap {
		// Evict oldest; shift rather than reslice to free the backing
		// array's head for GC.
		copy(h.records, h.records[1:])
		h.records = h.records[:h.cap]
	}

	h.executions++
	h.attempts += int64(r.Attempts)
	if r.Success {
		h.successes++
	}
}

func (h *history) snapshot() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}

// Stats is a read-only summary of engine activity.
type Stats struct {
	Executions      int64   `json:"executions"`
	Successes       int64   `json:"successes"`
	Failures        int64   `json:"failures"`
	TotalAttempts   int64   `json:"total_attempts"`
	AverageAttempts float64 `json:"average_attempts"`
}

func (h *history) stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	stats := Stats{
		Executions:    h.executions,
		Successes:     h.successes,
		Failures:      h.executions - h.successes,
		TotalAttempts: h.attempts,
	}
	if h.executions > 0 {
		stats.AverageAttempts = float64(h.attempts) / float64(h.executions)
	}
	return stats
}

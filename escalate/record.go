package escalate

import (
	"time"

	"github.com/c360/resilience/classify"
	"github.com/c360/resilience/notify"
)

// defaultHistoryCap bounds retained escalation records.
const defaultHistoryCap = 1000

// Record is one dispatched escalation, kept for audit. The error text is
// sanitized before it is stored.
type Record struct {
	ID             string                  `json:"id"`
	Timestamp      time.Time               `json:"timestamp"`
	Operation      string                  `json:"operation"`
	ErrorSummary   string                  `json:"error_summary"`
	Classification classify.Classification `json:"classification"`
	Rule           string                  `json:"rule"`
	Level          Level                   `json:"level"`
	Outcomes       []notify.Outcome        `json:"outcomes"`
	Success        bool                    `json:"success"`
}

// Result reports what a single Evaluate call decided. Escalated false with
// an empty Reason never happens: a non-escalated result always carries
// ReasonNoRuleMatched or ReasonCooldown.
type Result struct {
	Escalated bool
	Level     Level
	Rule      string
	Reason    string
	Outcomes  []notify.Outcome
	// Success is true only when every channel delivered.
	Success  bool
	RecordID string
}

// Stats summarizes engine activity since construction.
type Stats struct {
	Evaluations int64
	Escalated   int64
	Suppressed  int64
	NoMatch     int64
	HistorySize int
}

// history is a bounded append-only record buffer. Oldest entries are
// discarded once the cap is reached. Callers hold the engine mutex.
type history struct {
	records []Record
	cap     int
}

func (h *history) append(rec Record) {
	h.records = append(h.records, rec)
	if len(h.records) > h.cap {
		h.records = h.records[len(h.records)-h.cap:]
	}
}

func (h *history) snapshot() []Record {
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}

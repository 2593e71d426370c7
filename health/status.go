package health

import "time"

// Status strings used by the pipeline.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Status represents the health state of a component or operation type.
type Status struct {
	Component   string    `json:"component"`
	Healthy     bool      `json:"healthy"`
	Status      string    `json:"status"` // "healthy", "degraded", "unhealthy"
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	SubStatuses []Status  `json:"sub_statuses,omitempty"`
}

// NewHealthy creates a healthy status for a component.
func NewHealthy(component, message string) Status {
	return Status{
		Component: component,
		Healthy:   true,
		Status:    StatusHealthy,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewDegraded creates a degraded status for a component.
func NewDegraded(component, message string) Status {
	return Status{
		Component: component,
		Status:    StatusDegraded,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewUnhealthy creates an unhealthy status for a component.
func NewUnhealthy(component, message string) Status {
	return Status{
		Component: component,
		Status:    StatusUnhealthy,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// IsHealthy returns true if the status is healthy.
func (s Status) IsHealthy() bool { return s.Status == StatusHealthy }

// IsDegraded returns true if the status is degraded.
func (s Status) IsDegraded() bool { return s.Status == StatusDegraded }

// IsUnhealthy returns true if the status is unhealthy.
func (s Status) IsUnhealthy() bool { return s.Status == StatusUnhealthy }

// Aggregate rolls a set of statuses into one system-level status: unhealthy
// if any member is unhealthy, degraded if any member is degraded, healthy
// otherwise.
func Aggregate(systemName string, statuses []Status) Status {
	aggregate := NewHealthy(systemName, "all components healthy")
	aggregate.SubStatuses = statuses

	for _, status := range statuses {
		if status.IsUnhealthy() {
			aggregate.Healthy = false
			aggregate.Status = StatusUnhealthy
			aggregate.Message = status.Component + " is unhealthy"
			return aggregate
		}
	}
	for _, status := range statuses {
		if status.IsDegraded() {
			aggregate.Healthy = false
			aggregate.Status = StatusDegraded
			aggregate.Message = status.Component + " is degraded"
			return aggregate
		}
	}
	return aggregate
}

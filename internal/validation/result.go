package validation

import "sync/atomic"

// Status is the terminal outcome of a validation call.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusError   Status = "error"
)

// Result is the normalized outcome shape returned by every validator
// and by the dispatcher. It is produced fresh per call and never
// persisted.
type Result struct {
	Status        Status   `json:"status"`
	Valid         bool     `json:"valid"`
	Message       string   `json:"message"`
	Errors        []string `json:"errors,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
	ValidatedData any      `json:"validated_data,omitempty"`
}

// Metrics holds process-wide validation counters. Increments are
// atomic so the dispatcher can be called concurrently. A Metrics value
// is injected into the dispatcher rather than held as package state.
type Metrics struct {
	total              atomic.Int64
	successful         atomic.Int64
	failed             atomic.Int64
	securityViolations atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) record(valid bool) {
	m.total.Add(1)
	if valid {
		m.successful.Add(1)
	} else {
		m.failed.Add(1)
	}
}

// RecordSecurityViolation bumps the security counter. Besides the
// dispatcher's recover path, policy denials in the agent layer feed
// this counter.
func (m *Metrics) RecordSecurityViolation() {
	m.securityViolations.Add(1)
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Total              int64 `json:"total_validations"`
	Successful         int64 `json:"successful_validations"`
	Failed             int64 `json:"failed_validations"`
	SecurityViolations int64 `json:"security_violations"`
}

func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		Total:              m.total.Load(),
		Successful:         m.successful.Load(),
		Failed:             m.failed.Load(),
		SecurityViolations: m.securityViolations.Load(),
	}
}

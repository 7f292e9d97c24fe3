package observability

import (
	"fmt"
	"time"
)

// Metrics holds calculated metrics derived from the event log.
type Metrics struct {
	EvaluationsRun       int            `json:"evaluations_run"`
	EvaluationsCancelled int            `json:"evaluations_cancelled"`
	EvaluationsFailed    int            `json:"evaluations_failed"`
	SynthesesRun         int            `json:"syntheses_run"`
	SynthesesFailed      int            `json:"syntheses_failed"`
	BySection            map[string]int `json:"by_section"`
	EventCount           int            `json:"event_count"`
	OldestEvent          *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent          *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a new MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them into metrics.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		BySection: make(map[string]int),
	}

	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case "evaluation.completed":
			m.EvaluationsRun++
			if event.Target != "" {
				m.BySection[event.Target]++
			}
		case "evaluation.cancelled":
			m.EvaluationsCancelled++
		case "evaluation.failed":
			m.EvaluationsFailed++
		case "synthesis.completed":
			m.SynthesesRun++
		case "synthesis.failed":
			m.SynthesesFailed++
		}
	}

	return m, nil
}

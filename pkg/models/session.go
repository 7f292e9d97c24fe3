package models

import "time"

// SessionState is the complete mutable state of one evaluation session:
// the workshop being edited, the per-section evaluation results keyed by
// section label, and the synthesis, when one has been produced.
type SessionState struct {
	Workshop    Workshop                    `yaml:"workshop"`
	Evaluations map[string]EvaluationResult `yaml:"evaluations"`
	Synthesis   *SynthesisResult            `yaml:"synthesis,omitempty"`
	UpdatedAt   time.Time                   `yaml:"updated_at"`
}

// NewSessionState returns an empty session with the given default population.
func NewSessionState(population Population) *SessionState {
	return &SessionState{
		Workshop:    Workshop{Population: population},
		Evaluations: make(map[string]EvaluationResult),
	}
}

// Snapshot is the JSON backup format: field names match the original export
// so existing backup files remain importable.
type Snapshot struct {
	Workshop    Workshop                    `json:"servicio"`
	Evaluations map[string]EvaluationResult `json:"evaluaciones"`
	Timestamp   time.Time                   `json:"fecha"`
}

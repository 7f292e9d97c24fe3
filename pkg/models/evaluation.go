package models

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Analysis is the per-indicator analysis returned by the scoring service:
// either a plain narrative or a mapping of named fields (evidence,
// justification, reasoning) to text.
type Analysis struct {
	Text   string
	Fields map[string]string
}

// IsEmpty reports whether the analysis carries no content at all.
func (a Analysis) IsEmpty() bool {
	return a.Text == "" && len(a.Fields) == 0
}

// SortedFieldKeys returns the field names in a stable order for rendering.
func (a Analysis) SortedFieldKeys() []string {
	keys := make([]string, 0, len(a.Fields))
	for k := range a.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (a Analysis) MarshalJSON() ([]byte, error) {
	if len(a.Fields) > 0 {
		return json.Marshal(a.Fields)
	}
	return json.Marshal(a.Text)
}

// UnmarshalJSON accepts a bare string or an object. Object values that are
// not strings are stringified so an evolving service schema cannot break
// decoding.
func (a *Analysis) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		a.Text = text
		a.Fields = nil
		return nil
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("analysis is neither text nor a field mapping: %w", err)
	}
	a.Text = ""
	a.Fields = make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			a.Fields[k] = s
		} else {
			a.Fields[k] = fmt.Sprintf("%v", v)
		}
	}
	return nil
}

type analysisYAML struct {
	Text   string            `yaml:"text,omitempty"`
	Fields map[string]string `yaml:"fields,omitempty"`
}

func (a Analysis) MarshalYAML() (interface{}, error) {
	return analysisYAML{Text: a.Text, Fields: a.Fields}, nil
}

func (a *Analysis) UnmarshalYAML(value *yaml.Node) error {
	var raw analysisYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}
	a.Text = raw.Text
	a.Fields = raw.Fields
	return nil
}

// Indicator is one scored rubric line item, tied to a pedagogical model.
type Indicator struct {
	Model    string   `json:"modelo" yaml:"model"`
	Name     string   `json:"indicador" yaml:"name"`
	Score    float64  `json:"calificacion" yaml:"score"`
	Analysis Analysis `json:"analisis" yaml:"analysis"`
}

// Statistics carries the per-section aggregate score. Its presence is
// meaningful: a nil Statistics means "no score", which is distinct from an
// average of zero.
type Statistics struct {
	Average float64 `json:"promedio" yaml:"average"`
}

// GlobalFeedback is the section-level qualitative feedback block.
type GlobalFeedback struct {
	GeneralComment string `json:"comentario_general" yaml:"general_comment"`
}

// EvaluationResult is the scoring service's response for one section. The
// service's schema is not fixed: introduction results spread their narrative
// over several alternate fields (resolved in priority order by
// core.ResolveNarrative), while objective and activity results carry
// statistics and indicators.
type EvaluationResult struct {
	Final                *FinalAnalysis  `json:"analisis_final,omitempty" yaml:"final,omitempty"`
	ExecutiveSummary     string          `json:"sintesis_ejecutiva,omitempty" yaml:"executive_summary,omitempty"`
	DisciplinaryAnalysis string          `json:"analisis_disciplinar,omitempty" yaml:"disciplinary_analysis,omitempty"`
	GeneralComment       string          `json:"comentario_general,omitempty" yaml:"general_comment,omitempty"`
	Appraisal            string          `json:"valoracion,omitempty" yaml:"appraisal,omitempty"`
	KeyPhrases           []string        `json:"frases_discurso,omitempty" yaml:"key_phrases,omitempty"`
	Statistics           *Statistics     `json:"estadisticas,omitempty" yaml:"statistics,omitempty"`
	GlobalFeedback       *GlobalFeedback `json:"feedback_global,omitempty" yaml:"global_feedback,omitempty"`
	Indicators           []Indicator     `json:"evaluaciones,omitempty" yaml:"indicators,omitempty"`
}

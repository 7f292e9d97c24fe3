package models

// ActionStep is one entry of the synthesis improvement route.
type ActionStep struct {
	Strategy       string `json:"estrategia" yaml:"strategy"`
	Implementation string `json:"implementacion" yaml:"implementation"`
}

// FinalAnalysis is the narrative block of a synthesis (and of some
// introduction results, which reuse the same shape).
type FinalAnalysis struct {
	ExecutiveSummary         string       `json:"sintesis_ejecutiva,omitempty" yaml:"executive_summary,omitempty"`
	GeneralSummary           string       `json:"sintesis_general,omitempty" yaml:"general_summary,omitempty"`
	KeyPhrases               []string     `json:"frases_discurso,omitempty" yaml:"key_phrases,omitempty"`
	ActionRoute              []ActionStep `json:"ruta_de_accion,omitempty" yaml:"action_route,omitempty"`
	MainStrengths            []string     `json:"fortalezas_principales,omitempty" yaml:"main_strengths,omitempty"`
	ImprovementAreas         []string     `json:"areas_oportunidad,omitempty" yaml:"improvement_areas,omitempty"`
	PracticalRecommendations []string     `json:"recomendaciones_practicas,omitempty" yaml:"practical_recommendations,omitempty"`
}

// ConsolidatedMetrics carries the cross-section aggregate score.
type ConsolidatedMetrics struct {
	Average float64 `json:"promedio" yaml:"average"`
	Status  string  `json:"estado,omitempty" yaml:"status,omitempty"`
}

// SynthesisResult is the aggregate final report produced by the scoring
// service from all per-section results.
type SynthesisResult struct {
	Final   *FinalAnalysis       `json:"analisis_final,omitempty" yaml:"final,omitempty"`
	Metrics *ConsolidatedMetrics `json:"metricas_consolidadas,omitempty" yaml:"metrics,omitempty"`
}

// ActivityEvaluation is an activity result annotated with its section label,
// as the synthesis endpoint expects.
type ActivityEvaluation struct {
	EvaluationResult `yaml:",inline"`
	SectionLabel     string `json:"nombre_apartado" yaml:"section_label"`
}

// SynthesisEvaluations groups the per-section results into the slots of the
// synthesis request. Missing introduction or objective slots are sent as
// explicit nulls.
type SynthesisEvaluations struct {
	Introduction *EvaluationResult    `json:"introduccion" yaml:"introduction"`
	Objective    *EvaluationResult    `json:"objetivo" yaml:"objective"`
	Activities   []ActivityEvaluation `json:"actividades" yaml:"activities"`
}

// SynthesisPayload is the body of the synthesis request. AgeRangeLabel is the
// human-formatted label, not the raw code.
type SynthesisPayload struct {
	Evaluations   SynthesisEvaluations `json:"evaluaciones" yaml:"evaluations"`
	AgeRangeLabel string               `json:"rango_edad" yaml:"age_range_label"`
}

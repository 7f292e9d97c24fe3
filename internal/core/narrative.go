package core

import "github.com/juan-rv/tallereval/pkg/models"

// ResolveNarrative returns the narrative text of an introduction result.
// The scoring service has shipped the narrative under several field names
// over time; the probe order below is a compatibility shim and must not be
// reordered:
//
//	analisis_final.sintesis_ejecutiva, sintesis_ejecutiva,
//	analisis_disciplinar, comentario_general, valoracion
//
// The first non-empty field wins.
func ResolveNarrative(result *models.EvaluationResult) string {
	if result == nil {
		return ""
	}
	if result.Final != nil && result.Final.ExecutiveSummary != "" {
		return result.Final.ExecutiveSummary
	}
	if result.ExecutiveSummary != "" {
		return result.ExecutiveSummary
	}
	if result.DisciplinaryAnalysis != "" {
		return result.DisciplinaryAnalysis
	}
	if result.GeneralComment != "" {
		return result.GeneralComment
	}
	return result.Appraisal
}

// ResolveKeyPhrases returns the key-phrase list of an introduction result,
// probing the top-level field before the nested final-analysis block.
func ResolveKeyPhrases(result *models.EvaluationResult) []string {
	if result == nil {
		return nil
	}
	if len(result.KeyPhrases) > 0 {
		return result.KeyPhrases
	}
	if result.Final != nil {
		return result.Final.KeyPhrases
	}
	return nil
}

// ResolveSynthesisNarrative returns the executive summary of a synthesis,
// falling back to the general summary when the service used the older name.
func ResolveSynthesisNarrative(final *models.FinalAnalysis) string {
	if final == nil {
		return ""
	}
	if final.ExecutiveSummary != "" {
		return final.ExecutiveSummary
	}
	return final.GeneralSummary
}

// SectionFeedback returns the top-level feedback text of a section result:
// the disciplinary analysis when present, else the global feedback comment.
func SectionFeedback(result *models.EvaluationResult) string {
	if result == nil {
		return ""
	}
	if result.DisciplinaryAnalysis != "" {
		return result.DisciplinaryAnalysis
	}
	if result.GlobalFeedback != nil {
		return result.GlobalFeedback.GeneralComment
	}
	return ""
}

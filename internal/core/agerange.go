// Package core contains the business logic of the workshop evaluator:
// the document model operations, the request orchestrator with its
// cancellation discipline, narrative field resolution, and configuration.
package core

import (
	"strings"

	"github.com/juan-rv/tallereval/pkg/models"
)

// Age-band option sets per target population. The codes are the raw values
// the scoring service expects; display labels come from FormatAgeRange.
var (
	youngAgeRanges = []string{"2-7", "7-11", "11-12_en_adelante"}
	adultAgeRanges = []string{"19-29", "30-40", "39-61", "61_en_adelante"}
)

// ageRangeLabels maps raw age-range codes to their display labels, including
// the Piagetian or life-stage qualifier shown to the user and sent as the
// human-formatted rango_edad of the synthesis request.
var ageRangeLabels = map[string]string{
	"2-7":               "2-7 años (Preoperacional)",
	"7-11":              "7-11 años (Operaciones concretas)",
	"11-12_en_adelante": "11-12 años en adelante (Operaciones formales)",
	"19-29":             "19-29 años (Objetiva)",
	"30-40":             "30-40 años (Ejecutiva)",
	"39-61":             "39-61 años (Responsabilidad)",
	"61_en_adelante":    "61 años en adelante (Reorganizadora)",
}

// AgeRangeOptions returns the age-band codes available for a population.
func AgeRangeOptions(population models.Population) []string {
	switch population {
	case models.PopulationYoung:
		return youngAgeRanges
	case models.PopulationAdult:
		return adultAgeRanges
	default:
		return nil
	}
}

// FormatAgeRange returns the display label for an age-range code. Unknown
// codes are returned unchanged.
func FormatAgeRange(code string) string {
	if label, ok := ageRangeLabels[code]; ok {
		return label
	}
	return code
}

// IsValidAgeRange reports whether code belongs to the option set of the
// given population. The empty code is the valid "unset" sentinel.
func IsValidAgeRange(population models.Population, code string) bool {
	if code == "" {
		return true
	}
	for _, option := range AgeRangeOptions(population) {
		if option == code {
			return true
		}
	}
	return false
}

// Humanize replaces the scoring service's underscore-joined identifiers with
// readable text.
func Humanize(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

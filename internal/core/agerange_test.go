package core

import (
	"testing"

	"github.com/juan-rv/tallereval/pkg/models"
)

func TestAgeRangeOptions(t *testing.T) {
	young := AgeRangeOptions(models.PopulationYoung)
	if len(young) != 3 || young[0] != "2-7" || young[2] != "11-12_en_adelante" {
		t.Errorf("unexpected young options: %v", young)
	}
	adult := AgeRangeOptions(models.PopulationAdult)
	if len(adult) != 4 || adult[0] != "19-29" || adult[3] != "61_en_adelante" {
		t.Errorf("unexpected adult options: %v", adult)
	}
	if got := AgeRangeOptions(models.Population("otro")); got != nil {
		t.Errorf("unknown population must have no options, got %v", got)
	}
}

func TestFormatAgeRange(t *testing.T) {
	tests := []struct{ code, want string }{
		{"2-7", "2-7 años (Preoperacional)"},
		{"7-11", "7-11 años (Operaciones concretas)"},
		{"11-12_en_adelante", "11-12 años en adelante (Operaciones formales)"},
		{"19-29", "19-29 años (Objetiva)"},
		{"30-40", "30-40 años (Ejecutiva)"},
		{"39-61", "39-61 años (Responsabilidad)"},
		{"61_en_adelante", "61 años en adelante (Reorganizadora)"},
		{"99-100", "99-100"},
	}
	for _, tc := range tests {
		if got := FormatAgeRange(tc.code); got != tc.want {
			t.Errorf("FormatAgeRange(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestIsValidAgeRange(t *testing.T) {
	if !IsValidAgeRange(models.PopulationYoung, "") {
		t.Error("the empty code is the valid unset sentinel")
	}
	if !IsValidAgeRange(models.PopulationYoung, "7-11") {
		t.Error("7-11 is a young band")
	}
	if IsValidAgeRange(models.PopulationYoung, "30-40") {
		t.Error("30-40 is not a young band")
	}
	if !IsValidAgeRange(models.PopulationAdult, "61_en_adelante") {
		t.Error("61_en_adelante is an adult band")
	}
}

package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/juan-rv/tallereval/pkg/models"
)

func TestSessionStore_LoadMissingFile(t *testing.T) {
	store := NewSessionStoreManager(t.TempDir(), models.PopulationYoung)

	state, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Workshop.Population != models.PopulationYoung {
		t.Errorf("expected the default population, got %q", state.Workshop.Population)
	}
	if state.Evaluations == nil || len(state.Evaluations) != 0 {
		t.Errorf("expected an empty evaluations map, got %v", state.Evaluations)
	}
	if state.Synthesis != nil {
		t.Error("expected no synthesis in a fresh session")
	}
}

func TestSessionStore_RoundTrip(t *testing.T) {
	store := NewSessionStoreManager(t.TempDir(), models.PopulationYoung)

	state := models.NewSessionState(models.PopulationAdult)
	state.Workshop.Title = "Taller de Historia"
	state.Workshop.AgeRange = "30-40"
	state.Workshop.ActivityCounter = 2
	state.Workshop.Sections = []models.Section{
		{
			Kind:    models.KindObjective,
			Label:   "Objetivo",
			Content: models.SectionContent{Text: "Analizar fuentes primarias"},
		},
		{
			Kind:  models.KindActivity,
			Label: "Actividad 2",
			Content: models.SectionContent{Activity: &models.ActivityDetail{
				Title:     "Línea de tiempo",
				Modality:  "Presencial",
				Duration:  "40 min",
				Materials: []string{"cartulina"},
				Steps:     []string{"Ordenar eventos"},
			}},
		},
	}
	state.Evaluations["Objetivo"] = models.EvaluationResult{
		ExecutiveSummary: "Claro y medible",
		Statistics:       &models.Statistics{Average: 4.5},
		Indicators: []models.Indicator{{
			Model:    "Pedagogia_Critica",
			Name:     "Pertinencia",
			Score:    4,
			Analysis: models.Analysis{Text: "Adecuado"},
		}},
	}
	state.Synthesis = &models.SynthesisResult{
		Final:   &models.FinalAnalysis{ExecutiveSummary: "Bien logrado"},
		Metrics: &models.ConsolidatedMetrics{Average: 4.3, Status: "Bueno"},
	}

	if err := store.Save(state); err != nil {
		t.Fatalf("saving: %v", err)
	}
	if state.UpdatedAt.IsZero() {
		t.Error("Save must stamp UpdatedAt")
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if !reflect.DeepEqual(loaded.Workshop, state.Workshop) {
		t.Errorf("workshop mismatch:\ngot  %+v\nwant %+v", loaded.Workshop, state.Workshop)
	}
	if !reflect.DeepEqual(loaded.Evaluations, state.Evaluations) {
		t.Errorf("evaluations mismatch:\ngot  %+v\nwant %+v", loaded.Evaluations, state.Evaluations)
	}
	if !reflect.DeepEqual(loaded.Synthesis, state.Synthesis) {
		t.Errorf("synthesis mismatch:\ngot  %+v\nwant %+v", loaded.Synthesis, state.Synthesis)
	}
}

func TestSessionStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := NewSessionStoreManager(dir, models.PopulationYoung)
	if err := os.WriteFile(filepath.Join(dir, "session.yaml"), []byte("{not yaml::"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(); err == nil {
		t.Error("expected an error for a corrupt session file")
	}
}

package cli

import (
	"strings"
	"testing"

	"github.com/juan-rv/tallereval/pkg/models"
)

func TestStatusCommand_Registration(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "status" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected 'status' command to be registered")
	}
}

func TestStatusCommand_NilStore(t *testing.T) {
	orig := SessionStore
	defer func() { SessionStore = orig }()
	SessionStore = nil

	err := statusCmd.RunE(statusCmd, []string{})
	if err == nil {
		t.Fatal("expected error when SessionStore is nil")
	}
	if !strings.Contains(err.Error(), "session store not initialized") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStatusCommand_FreshSession(t *testing.T) {
	setupSessionStore(t)

	if err := statusCmd.RunE(statusCmd, []string{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStatusCommand_WithSynthesis(t *testing.T) {
	store := setupSessionStore(t)

	state, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	state.Workshop.Title = "Taller completo"
	state.Workshop.AgeRange = "7-11"
	state.Workshop.Sections = []models.Section{
		{Kind: models.KindIntroduction, Label: "Introducción", Content: models.SectionContent{Text: "a"}},
		{Kind: models.KindObjective, Label: "Objetivo", Content: models.SectionContent{Text: "b"}},
	}
	state.Evaluations["Objetivo"] = models.EvaluationResult{
		Statistics: &models.Statistics{Average: 4.5},
	}
	state.Synthesis = &models.SynthesisResult{
		Metrics: &models.ConsolidatedMetrics{Average: 4.2, Status: "Satisfactorio"},
	}
	if err := store.Save(state); err != nil {
		t.Fatal(err)
	}

	if err := statusCmd.RunE(statusCmd, []string{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

package core

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/juan-rv/tallereval/pkg/models"
)

// Activity labels are drawn from a monotonic counter: after any sequence of
// adds and removes, all labels are unique and the next add never reuses one.
func TestActivityLabels_UniqueUnderAddRemove(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		state := models.NewSessionState(models.PopulationYoung)
		state.Workshop.AgeRange = "2-7"

		issued := make(map[string]bool)
		ops := rapid.IntRange(1, 40).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			removable := activityLabels(state)
			if len(removable) > 0 && rapid.Bool().Draw(t, fmt.Sprintf("remove-%d", i)) {
				label := rapid.SampledFrom(removable).Draw(t, fmt.Sprintf("label-%d", i))
				if err := RemoveSection(state, label); err != nil {
					t.Fatalf("removing %q: %v", label, err)
				}
				continue
			}

			section, err := AddActivitySection(state, models.ActivityDetail{
				Title: "Actividad generada",
				Steps: []string{"Paso"},
			})
			if err != nil {
				t.Fatalf("adding activity: %v", err)
			}
			if issued[section.Label] {
				t.Fatalf("label %q was issued twice", section.Label)
			}
			issued[section.Label] = true
		}

		current := activityLabels(state)
		seen := make(map[string]bool, len(current))
		for _, label := range current {
			if seen[label] {
				t.Fatalf("duplicate label %q in section list", label)
			}
			seen[label] = true
		}
	})
}

// Normalizing an imported workshop always leaves the counter at or above the
// highest numbered label, so a subsequent add cannot collide.
func TestNormalizeActivityCounter_NeverCollides(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numbers := rapid.SliceOfN(rapid.IntRange(1, 50), 0, 8).Draw(t, "numbers")
		w := models.Workshop{Population: models.PopulationYoung, AgeRange: "2-7"}
		for _, n := range numbers {
			w.Sections = append(w.Sections, models.Section{
				Kind:    models.KindActivity,
				Label:   fmt.Sprintf("Actividad %d", n),
				Content: models.SectionContent{Activity: &models.ActivityDetail{Title: "t", Steps: []string{"p"}}},
			})
		}
		NormalizeActivityCounter(&w)

		state := &models.SessionState{Workshop: w, Evaluations: map[string]models.EvaluationResult{}}
		section, err := AddActivitySection(state, models.ActivityDetail{Title: "nueva", Steps: []string{"p"}})
		if err != nil {
			t.Fatalf("adding after normalize: %v", err)
		}
		for _, n := range numbers {
			if section.Label == fmt.Sprintf("Actividad %d", n) {
				t.Fatalf("new label %q collides with an imported one", section.Label)
			}
		}
	})
}

func activityLabels(state *models.SessionState) []string {
	var labels []string
	for _, s := range state.Workshop.Sections {
		if s.Kind == models.KindActivity {
			labels = append(labels, s.Label)
		}
	}
	return labels
}

package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/juan-rv/tallereval/pkg/models"
)

// AddTextSection appends an introduction or objective section. The workshop
// may hold at most one section of each of these kinds, and an age range must
// be selected before content is added.
func AddTextSection(state *models.SessionState, kind models.SectionKind, content string) (*models.Section, error) {
	if kind != models.KindIntroduction && kind != models.KindObjective {
		return nil, validationErrorf("section kind %q does not carry plain text", kind)
	}
	if err := requireAgeRange(state); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, validationErrorf("section content must not be empty")
	}
	if state.Workshop.HasKind(kind) {
		return nil, validationErrorf("the workshop already has a %s section", kind)
	}

	section := models.Section{
		Kind:    kind,
		Label:   string(kind),
		Content: models.SectionContent{Text: content},
	}
	state.Workshop.Sections = append(state.Workshop.Sections, section)
	return &state.Workshop.Sections[len(state.Workshop.Sections)-1], nil
}

// AddActivitySection appends an activity section, auto-named from the
// workshop's monotonic activity counter so labels stay unique even after a
// middle activity is deleted.
func AddActivitySection(state *models.SessionState, detail models.ActivityDetail) (*models.Section, error) {
	if err := requireAgeRange(state); err != nil {
		return nil, err
	}
	if strings.TrimSpace(detail.Title) == "" {
		return nil, validationErrorf("activity title must not be empty")
	}
	if len(detail.Steps) == 0 {
		return nil, validationErrorf("activity steps must not be empty")
	}
	if detail.Modality == "" {
		detail.Modality = "Presencial"
	}
	if detail.Duration == "" {
		detail.Duration = "N/A"
	}

	state.Workshop.ActivityCounter++
	section := models.Section{
		Kind:    models.KindActivity,
		Label:   fmt.Sprintf("Actividad %d", state.Workshop.ActivityCounter),
		Content: models.SectionContent{Activity: &detail},
	}
	state.Workshop.Sections = append(state.Workshop.Sections, section)
	return &state.Workshop.Sections[len(state.Workshop.Sections)-1], nil
}

// RemoveSection deletes the section with the given label, cascading the
// deletion to its stored evaluation result and discarding any synthesis,
// which would otherwise describe a workshop that no longer exists.
func RemoveSection(state *models.SessionState, label string) error {
	index := -1
	for i, s := range state.Workshop.Sections {
		if s.Label == label {
			index = i
			break
		}
	}
	if index < 0 {
		return validationErrorf("no section named %q", label)
	}

	state.Workshop.Sections = append(state.Workshop.Sections[:index], state.Workshop.Sections[index+1:]...)
	delete(state.Evaluations, label)
	state.Synthesis = nil
	return nil
}

// SetTitle updates the workshop title.
func SetTitle(state *models.SessionState, title string) {
	state.Workshop.Title = title
}

// SetPopulation switches the target population. Changing it resets the age
// range (the old bands no longer apply) and clears the synthesis; stored
// per-section evaluations are intentionally left in place.
func SetPopulation(state *models.SessionState, population models.Population) error {
	if population != models.PopulationYoung && population != models.PopulationAdult {
		return validationErrorf("population must be %q or %q", models.PopulationYoung, models.PopulationAdult)
	}
	if population == state.Workshop.Population {
		return nil
	}
	state.Workshop.Population = population
	state.Workshop.AgeRange = ""
	state.Synthesis = nil
	return nil
}

// SetAgeRange selects an age band. The code must belong to the current
// population's option set; existing evaluation results are not cleared.
func SetAgeRange(state *models.SessionState, code string) error {
	if !IsValidAgeRange(state.Workshop.Population, code) {
		return validationErrorf("age range %q is not valid for population %q", code, state.Workshop.Population)
	}
	state.Workshop.AgeRange = code
	return nil
}

// ResetState discards the whole session, leaving an empty workshop with the
// given default population.
func ResetState(state *models.SessionState, population models.Population) {
	state.Workshop = models.Workshop{Population: population}
	state.Evaluations = make(map[string]models.EvaluationResult)
	state.Synthesis = nil
}

// ReplaceFromSnapshot replaces the session wholesale with an imported
// backup. The synthesis is cleared: it described the results at export time
// and must be regenerated.
func ReplaceFromSnapshot(state *models.SessionState, snapshot models.Snapshot) {
	state.Workshop = snapshot.Workshop
	state.Evaluations = snapshot.Evaluations
	if state.Evaluations == nil {
		state.Evaluations = make(map[string]models.EvaluationResult)
	}
	state.Synthesis = nil
	NormalizeActivityCounter(&state.Workshop)
}

// NormalizeActivityCounter raises the activity counter to cover labels found
// in the section list. Imported files may predate the persisted counter.
func NormalizeActivityCounter(w *models.Workshop) {
	highest := w.ActivityCounter
	count := 0
	for _, s := range w.Sections {
		if s.Kind != models.KindActivity {
			continue
		}
		count++
		if n, ok := activityNumber(s.Label); ok && n > highest {
			highest = n
		}
	}
	if highest < count {
		highest = count
	}
	w.ActivityCounter = highest
}

func activityNumber(label string) (int, bool) {
	rest, found := strings.CutPrefix(label, "Actividad ")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// MandatoryCoverage reports, per mandatory section kind, whether the
// workshop holds a section of that kind with a stored evaluation result.
// All three must hold before a synthesis can be requested.
func MandatoryCoverage(state *models.SessionState) (hasIntro, hasObjective, hasActivity bool) {
	for _, s := range state.Workshop.Sections {
		if _, ok := state.Evaluations[s.Label]; !ok {
			continue
		}
		switch s.Kind {
		case models.KindIntroduction:
			hasIntro = true
		case models.KindObjective:
			hasObjective = true
		case models.KindActivity:
			hasActivity = true
		}
	}
	return hasIntro, hasObjective, hasActivity
}

func requireAgeRange(state *models.SessionState) error {
	if state.Workshop.AgeRange == "" {
		return validationErrorf("select an age range before adding content")
	}
	return nil
}

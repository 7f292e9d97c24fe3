package cli

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/juan-rv/tallereval/internal/observability"
	"github.com/juan-rv/tallereval/pkg/models"
)

// mockDashboardMetrics implements observability.MetricsCalculator.
type mockDashboardMetrics struct {
	metrics *observability.Metrics
	err     error
}

func (m *mockDashboardMetrics) Calculate(_ time.Time) (*observability.Metrics, error) {
	return m.metrics, m.err
}

func TestDashboardModel_Init(t *testing.T) {
	m := newDashboardModel()

	if m.activePanel != panelSections {
		t.Errorf("expected activePanel = %d, got %d", panelSections, m.activePanel)
	}
	if !m.loading {
		t.Error("expected loading = true on init")
	}
	if m.Init() == nil {
		t.Error("expected Init to return a non-nil command")
	}
}

func TestDashboardModel_TabCyclesPanels(t *testing.T) {
	m := newDashboardModel()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(dashboardModel)
	if m.activePanel != panelMetrics {
		t.Errorf("after tab, activePanel = %d, want %d", m.activePanel, panelMetrics)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(dashboardModel)
	if m.activePanel != panelSections {
		t.Errorf("after shift+tab, activePanel = %d, want %d", m.activePanel, panelSections)
	}

	// Cycling backwards from the first panel wraps to the last.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(dashboardModel)
	if m.activePanel != panelCount-1 {
		t.Errorf("after wrap, activePanel = %d, want %d", m.activePanel, panelCount-1)
	}
}

func TestDashboardModel_QuitKeys(t *testing.T) {
	m := newDashboardModel()

	for _, key := range []string{"q", "esc", "ctrl+c"} {
		var msg tea.KeyMsg
		switch key {
		case "q":
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("expected quit command for key %q", key)
		}
	}
}

func TestDashboardModel_DataLoaded(t *testing.T) {
	m := newDashboardModel()

	next, _ := m.Update(dataLoadedMsg{
		sections: []sectionSnapshot{
			{label: "Objetivo", kind: "Objetivo", score: "4.5/5.0", evaluated: true},
			{label: "Actividad 1", kind: "Actividad", score: "-"},
		},
		metrics: &metricsSnapshot{evaluationsRun: 3, eventCount: 7},
		events: []eventSnapshot{
			{level: "INFO", typ: "evaluation.completed", target: "Objetivo", timeStr: "10:00:00"},
		},
	})
	m = next.(dashboardModel)

	if m.loading {
		t.Error("expected loading = false after data load")
	}
	if len(m.sections) != 2 {
		t.Errorf("got %d sections, want 2", len(m.sections))
	}
	if m.metricsData == nil || m.metricsData.evaluationsRun != 3 {
		t.Error("expected metrics to be stored")
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(dashboardModel)
	view := m.View()
	if view == "" {
		t.Fatal("expected a non-empty view")
	}
}

func TestDashboardLoadData(t *testing.T) {
	store := setupSessionStore(t)

	state, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	state.Workshop.AgeRange = "7-11"
	state.Workshop.Sections = []models.Section{
		{Kind: models.KindObjective, Label: "Objetivo", Content: models.SectionContent{Text: "Meta"}},
	}
	state.Evaluations["Objetivo"] = models.EvaluationResult{
		Statistics: &models.Statistics{Average: 4.5},
	}
	if err := store.Save(state); err != nil {
		t.Fatal(err)
	}

	origMetrics := MetricsCalc
	defer func() { MetricsCalc = origMetrics }()
	MetricsCalc = &mockDashboardMetrics{
		metrics: &observability.Metrics{EvaluationsRun: 5, EventCount: 12},
	}

	setupEventLog(t)

	msg, ok := loadData().(dataLoadedMsg)
	if !ok {
		t.Fatal("expected a dataLoadedMsg")
	}
	if msg.err != nil {
		t.Fatalf("unexpected error: %v", msg.err)
	}
	if len(msg.sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(msg.sections))
	}
	if !msg.sections[0].evaluated || msg.sections[0].score != "4.5/5.0" {
		t.Errorf("section snapshot = %+v", msg.sections[0])
	}
	if msg.metrics == nil || msg.metrics.evaluationsRun != 5 {
		t.Error("expected metrics from the calculator")
	}
}

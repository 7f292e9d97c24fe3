package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/juan-rv/tallereval/internal/observability"
	"github.com/juan-rv/tallereval/pkg/models"
)

// Dashboard panel indices.
const (
	panelSections = iota
	panelMetrics
	panelEvents
	panelCount
)

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	sections    []sectionSnapshot
	metricsData *metricsSnapshot
	events      []eventSnapshot

	// State.
	loading bool
	err     error
}

type sectionSnapshot struct {
	label     string
	kind      string
	score     string
	evaluated bool
}

type metricsSnapshot struct {
	evaluationsRun       int
	evaluationsCancelled int
	evaluationsFailed    int
	synthesesRun         int
	eventCount           int
}

type eventSnapshot struct {
	level   string
	typ     string
	target  string
	timeStr string
}

// dataLoadedMsg carries loaded data back to the model.
type dataLoadedMsg struct {
	sections []sectionSnapshot
	metrics  *metricsSnapshot
	events   []eventSnapshot
	err      error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	evaluatedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	unevaluatedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	levelError = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	levelWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	levelInfo  = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel() dashboardModel {
	return dashboardModel{
		activePanel: panelSections,
		loading:     true,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadData
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadData
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.sections = msg.sections
		m.metricsData = msg.metrics
		m.events = msg.events
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" Workshop Evaluation Dashboard ")
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading data...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	sectionsPanel := m.renderSectionsPanel()
	metricsPanel := m.renderMetricsPanel()
	eventsPanel := m.renderEventsPanel()

	// Available width for panels after accounting for margins.
	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		// Horizontal layout: three columns.
		colWidth := availableWidth / 3
		sectionsPanel = m.applyPanelStyle(panelSections, sectionsPanel, colWidth-4)
		metricsPanel = m.applyPanelStyle(panelMetrics, metricsPanel, colWidth-4)
		eventsPanel = m.applyPanelStyle(panelEvents, eventsPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, sectionsPanel, metricsPanel, eventsPanel)
	} else {
		// Vertical layout: stacked.
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		sectionsPanel = m.applyPanelStyle(panelSections, sectionsPanel, panelWidth)
		metricsPanel = m.applyPanelStyle(panelMetrics, metricsPanel, panelWidth)
		eventsPanel = m.applyPanelStyle(panelEvents, eventsPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, sectionsPanel, metricsPanel, eventsPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderSectionsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Sections"))
	b.WriteString("\n")

	if len(m.sections) == 0 {
		b.WriteString("  No sections yet.")
		return b.String()
	}

	evaluated := 0
	for _, s := range m.sections {
		style := unevaluatedStyle
		if s.evaluated {
			style = evaluatedStyle
			evaluated++
		}
		b.WriteString(style.Render(fmt.Sprintf("  %-16s %-13s %s", s.label, s.kind, s.score)))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\n  Evaluated: %d/%d", evaluated, len(m.sections)))

	return b.String()
}

func (m dashboardModel) renderMetricsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Metrics (7d)"))
	b.WriteString("\n")

	if m.metricsData == nil {
		b.WriteString("  No metrics available.")
		return b.String()
	}

	md := m.metricsData
	lines := []struct {
		label string
		value int
	}{
		{"Events", md.eventCount},
		{"Evaluations", md.evaluationsRun},
		{"Cancelled", md.evaluationsCancelled},
		{"Failed", md.evaluationsFailed},
		{"Syntheses", md.synthesesRun},
	}

	for _, l := range lines {
		b.WriteString(fmt.Sprintf("  %-14s %d\n", l.label, l.value))
	}

	return b.String()
}

func (m dashboardModel) renderEventsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Recent events"))
	b.WriteString("\n")

	if len(m.events) == 0 {
		b.WriteString("  No events recorded.")
		return b.String()
	}

	for _, e := range m.events {
		lvl := styleForLevel(e.level).Render(fmt.Sprintf("[%s]", e.level))
		b.WriteString(fmt.Sprintf("  %s %s %s %s\n", e.timeStr, lvl, e.typ, e.target))
	}

	return b.String()
}

func styleForLevel(level string) lipgloss.Style {
	switch level {
	case "ERROR":
		return levelError
	case "WARN":
		return levelWarn
	case "INFO":
		return levelInfo
	default:
		return lipgloss.NewStyle()
	}
}

func loadData() tea.Msg {
	var result dataLoadedMsg

	// Load the section list from the session store.
	if SessionStore != nil {
		state, err := SessionStore.Load()
		if err != nil {
			result.err = fmt.Errorf("loading session: %w", err)
			return result
		}
		for _, s := range state.Workshop.Sections {
			snapshot := sectionSnapshot{label: s.Label, kind: string(s.Kind), score: "-"}
			if ev, ok := state.Evaluations[s.Label]; ok {
				snapshot.evaluated = true
				snapshot.score = scoreLabel(ev)
			}
			result.sections = append(result.sections, snapshot)
		}
	}

	// Load metrics from MetricsCalc.
	if MetricsCalc != nil {
		since := time.Now().UTC().AddDate(0, 0, -7)
		metrics, err := MetricsCalc.Calculate(since)
		if err != nil {
			result.err = fmt.Errorf("loading metrics: %w", err)
			return result
		}
		result.metrics = &metricsSnapshot{
			evaluationsRun:       metrics.EvaluationsRun,
			evaluationsCancelled: metrics.EvaluationsCancelled,
			evaluationsFailed:    metrics.EvaluationsFailed,
			synthesesRun:         metrics.SynthesesRun,
			eventCount:           metrics.EventCount,
		}
	}

	// Load the event tail from the event log.
	if EventLog != nil {
		events, err := EventLog.Read(observability.EventFilter{})
		if err != nil {
			result.err = fmt.Errorf("loading events: %w", err)
			return result
		}
		const tail = 10
		if len(events) > tail {
			events = events[len(events)-tail:]
		}
		for _, e := range events {
			result.events = append(result.events, eventSnapshot{
				level:   e.Level,
				typ:     e.Type,
				target:  e.Target,
				timeStr: e.Time.Local().Format("15:04:05"),
			})
		}
	}

	return result
}

func scoreLabel(ev models.EvaluationResult) string {
	if ev.Statistics == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f/5.0", ev.Statistics.Average)
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI overview of the session",
	Long: `Launch an interactive terminal dashboard showing the workshop sections,
evaluation metrics, and recent events.

Navigate between panels with Tab, refresh with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if SessionStore == nil {
			return fmt.Errorf("session store not initialized")
		}
		p := tea.NewProgram(newDashboardModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

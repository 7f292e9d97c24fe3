// Package report compiles a session into the paginated technical report and
// renders it as a PDF. Compilation is pure so the layout, the score
// formatting, and the page arithmetic can be tested without touching a PDF
// library.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/juan-rv/tallereval/internal/core"
	"github.com/juan-rv/tallereval/pkg/models"
)

// Line styles. The renderer maps them to fonts and colors.
const (
	StyleTitle      = "title"       // report header, 14pt bold dark blue
	StyleHeading    = "heading"     // section heading, 12pt bold
	StyleModel      = "model"       // pedagogical model heading, 10pt bold grey
	StyleBold       = "bold"        // 10pt bold black
	StyleFieldTitle = "field-title" // analysis field name, 10pt bold blue
	StyleNormal     = "normal"      // 10pt regular
	StyleRule       = "rule"        // horizontal divider
	StyleClosing    = "closing"     // global score, 14pt bold
)

// Line alignments.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// Layout constants. A page holds linesPerPage body lines; paragraphs wrap at
// wrapWidth runes, roughly matching a 10pt helvetica line on A4 with 20mm
// margins.
const (
	linesPerPage = 52
	wrapWidth    = 96
)

// Line is one laid-out report line. Right carries the right-aligned fragment
// printed on the same baseline, used for scores next to headings.
type Line struct {
	Text  string
	Right string
	Style string
	Align string
}

// Page is one report page plus its footer, filled in after pagination.
type Page struct {
	Lines  []Line
	Footer string
}

// Document is the compiled report, ready for rendering.
type Document struct {
	Title string
	Pages []Page
}

// ReportFileName derives the PDF file name from the workshop title.
func ReportFileName(title string) string {
	if title == "" {
		title = "Taller"
	}
	return fmt.Sprintf("Informe_Evaluación_%s.pdf", strings.ReplaceAll(title, " ", "_"))
}

// FormatScore renders a per-section average as "x.x/5.0". A nil Statistics
// means the service returned no score, which reads as "N/A"; an average of
// zero is a real score and renders as "0.0/5.0".
func FormatScore(stats *models.Statistics) string {
	if stats == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f/5.0", stats.Average)
}

// Compile lays the session out into pages. It requires a synthesis: the
// report opens with the systemic analysis and cannot be produced without it.
func Compile(state *models.SessionState, now time.Time) (*Document, error) {
	if state.Synthesis == nil {
		return nil, fmt.Errorf("compiling report: no synthesis available, run the workshop analysis first")
	}

	var c compiler

	c.header(state, now)
	c.synthesis(state.Synthesis)
	c.sectionDetails(state)
	c.closing(state.Synthesis)

	doc := &Document{Title: state.Workshop.Title, Pages: c.pages()}
	for i := range doc.Pages {
		doc.Pages[i].Footer = fmt.Sprintf("Página %d de %d - Informe de Evaluación_%s",
			i+1, len(doc.Pages), state.Workshop.Title)
	}
	return doc, nil
}

type compiler struct {
	lines []Line
}

func (c *compiler) header(state *models.SessionState, now time.Time) {
	c.add(Line{Text: "INFORME TÉCNICO DE EVALUACIÓN PEDAGÓGICA", Style: StyleTitle, Align: AlignCenter})
	c.blank()
	c.add(Line{Text: "Hibridación pedagógica: " + HybridizationLabel(state), Style: StyleBold, Align: AlignLeft})
	c.add(Line{Text: "Servicio: " + state.Workshop.Title, Style: StyleNormal, Align: AlignLeft})
	c.add(Line{
		Text: fmt.Sprintf("Población: %s | Edad: %s",
			state.Workshop.Population, core.FormatAgeRange(state.Workshop.AgeRange)),
		Style: StyleNormal, Align: AlignLeft,
	})
	c.add(Line{Text: "Fecha: " + now.Format("02/01/2006"), Style: StyleNormal, Align: AlignLeft})
	c.add(Line{Style: StyleRule})
	c.blank()
}

func (c *compiler) synthesis(synthesis *models.SynthesisResult) {
	c.add(Line{Text: "ANÁLISIS SISTÉMICO Y SÍNTESIS", Style: StyleHeading, Align: AlignLeft})
	c.paragraph(core.ResolveSynthesisNarrative(synthesis.Final), StyleNormal, AlignJustify)

	if synthesis.Final == nil || len(synthesis.Final.ActionRoute) == 0 {
		return
	}
	c.blank()
	c.add(Line{Text: "RUTA DE MEJORA RECOMENDADA", Style: StyleHeading, Align: AlignLeft})
	for i, step := range synthesis.Final.ActionRoute {
		c.paragraph(fmt.Sprintf("%d. ESTRATEGIA: %s", i+1, step.Strategy), StyleNormal, AlignJustify)
		if step.Implementation != "" {
			c.paragraph(step.Implementation, StyleNormal, AlignJustify)
		}
		c.blank()
	}
}

func (c *compiler) sectionDetails(state *models.SessionState) {
	c.add(Line{Text: "DETALLE DE EVALUACIÓN POR APARTADOS", Style: StyleHeading, Align: AlignLeft})

	for _, section := range state.Workshop.Sections {
		result, ok := state.Evaluations[section.Label]
		if !ok {
			continue
		}

		c.add(Line{Style: StyleRule})
		c.add(Line{
			Text:  fmt.Sprintf("%s (%s)", strings.ToUpper(section.Label), section.Kind),
			Right: "Nota: " + FormatScore(result.Statistics),
			Style: StyleBold, Align: AlignLeft,
		})
		c.paragraph(core.SectionFeedback(&result), StyleNormal, AlignJustify)
		c.indicators(result.Indicators)
		c.blank()
	}
}

// indicators renders the rubric line items grouped by pedagogical model, in
// first-appearance order.
func (c *compiler) indicators(indicators []models.Indicator) {
	if len(indicators) == 0 {
		return
	}

	groups := make(map[string][]models.Indicator)
	var order []string
	for _, ind := range indicators {
		name := core.ModelDisplayName(ind.Model)
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], ind)
	}

	for _, name := range order {
		c.blank()
		c.add(Line{Text: "MODELO: " + strings.ToUpper(name), Style: StyleModel, Align: AlignLeft})
		for _, ind := range groups[name] {
			c.add(Line{
				Text:  core.Humanize(ind.Name),
				Right: fmt.Sprintf("%g/5", ind.Score),
				Style: StyleBold, Align: AlignLeft,
			})
			c.analysis(ind.Analysis)
			c.blank()
		}
	}
}

// analysis renders a per-indicator analysis: field mappings as titled
// paragraphs with the field names in sorted order, plain text as one
// paragraph.
func (c *compiler) analysis(a models.Analysis) {
	if len(a.Fields) > 0 {
		for _, key := range a.SortedFieldKeys() {
			c.paragraph(core.Humanize(key)+":", StyleFieldTitle, AlignLeft)
			c.paragraph(a.Fields[key], StyleNormal, AlignJustify)
		}
		return
	}
	c.paragraph(a.Text, StyleNormal, AlignJustify)
}

func (c *compiler) closing(synthesis *models.SynthesisResult) {
	c.add(Line{Style: StyleRule})
	score := "N/A"
	if synthesis.Metrics != nil {
		score = fmt.Sprintf("%.1f/5.0", synthesis.Metrics.Average)
	}
	c.add(Line{Text: "PUNTAJE GLOBAL: " + score, Style: StyleClosing, Align: AlignRight})
}

// HybridizationLabel joins the display names of every pedagogical model that
// scored the workshop, in first appearance order walking the sections, with
// orphan results appended in sorted label order. No models reads as
// "General".
func HybridizationLabel(state *models.SessionState) string {
	var order []string
	seen := make(map[string]bool)
	collect := func(result models.EvaluationResult) {
		for _, ind := range result.Indicators {
			if ind.Model == "" {
				continue
			}
			name := core.ModelDisplayName(ind.Model)
			if !seen[name] {
				seen[name] = true
				order = append(order, name)
			}
		}
	}

	visited := make(map[string]bool, len(state.Evaluations))
	for _, section := range state.Workshop.Sections {
		if result, ok := state.Evaluations[section.Label]; ok {
			visited[section.Label] = true
			collect(result)
		}
	}
	var orphans []string
	for label := range state.Evaluations {
		if !visited[label] {
			orphans = append(orphans, label)
		}
	}
	sort.Strings(orphans)
	for _, label := range orphans {
		collect(state.Evaluations[label])
	}

	if len(order) == 0 {
		return core.GeneralModelName
	}
	return strings.Join(order, "/")
}

func (c *compiler) add(line Line) {
	c.lines = append(c.lines, line)
}

func (c *compiler) blank() {
	c.add(Line{Style: StyleNormal})
}

// paragraph wraps text at wrapWidth runes and appends the resulting lines.
// Empty text still produces a blank line so spacing stays stable.
func (c *compiler) paragraph(text, style, align string) {
	for _, line := range wrap(text, wrapWidth) {
		c.add(Line{Text: line, Style: style, Align: align})
	}
}

// pages cuts the accumulated lines into fixed-height pages.
func (c *compiler) pages() []Page {
	if len(c.lines) == 0 {
		return []Page{{}}
	}
	var pages []Page
	for start := 0; start < len(c.lines); start += linesPerPage {
		end := start + linesPerPage
		if end > len(c.lines) {
			end = len(c.lines)
		}
		pages = append(pages, Page{Lines: c.lines[start:end]})
	}
	return pages
}

// wrap splits text into lines of at most width runes, breaking on spaces.
// A word longer than the width gets a line of its own.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len([]rune(current))+1+len([]rune(word)) <= width {
			current += " " + word
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

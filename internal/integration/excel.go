package integration

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/juan-rv/tallereval/pkg/models"
)

// Spreadsheet column headers. The parenthesised ones only apply to activity
// rows; the first three are read from the first data row only.
const (
	colWorkshopTitle = "TituloTaller"
	colPopulation    = "Poblacion"
	colAgeRange      = "RangoEdad"
	colKind          = "Tipo"
	colContent       = "Contenido"
	colModality      = "Modalidad (Solo para talleres)"
	colDuration      = "Duración (Solo para talleres)"
	colMaterials     = "Materiales (Solo para talleres)"
)

var templateHeaders = []string{
	colWorkshopTitle, colPopulation, colAgeRange,
	colKind, colContent, colModality, colDuration, colMaterials,
}

// TemplateFileName is the default name of the exported bulk-load template.
const TemplateFileName = "Formato_Carga_Taller.xlsx"

// ImportWorkshopXLSX reads a bulk-load spreadsheet and builds the workshop it
// describes. The first data row may carry the workshop configuration (title,
// population, age range); every row with a non-empty Tipo becomes a section.
// Activity rows are auto-numbered in file order, with their Contenido split
// into steps on periods.
func ImportWorkshopXLSX(path string) (*models.Workshop, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("importing workshop: opening %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("importing workshop: %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("importing workshop: reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("importing workshop: %s has no data rows", path)
	}

	columns := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		columns[strings.TrimSpace(header)] = i
	}
	cell := func(row []string, header string) string {
		i, ok := columns[header]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	workshop := &models.Workshop{Population: models.PopulationYoung}

	// Workshop configuration comes from the first data row, and only when a
	// title is present there.
	first := rows[1]
	if title := cell(first, colWorkshopTitle); title != "" {
		workshop.Title = title
		if population := cell(first, colPopulation); population != "" {
			workshop.Population = models.Population(strings.ToLower(population))
		}
		workshop.AgeRange = cleanAgeRange(cell(first, colAgeRange))
	}

	activities := 0
	for _, row := range rows[1:] {
		kindRaw := cell(row, colKind)
		if kindRaw == "" {
			continue
		}

		if strings.Contains(foldCell(kindRaw), "actividad") {
			activities++
			label := fmt.Sprintf("Actividad %d", activities)
			detail := &models.ActivityDetail{
				Title:     label,
				Modality:  defaultIfEmpty(cell(row, colModality), "Presencial"),
				Duration:  defaultIfEmpty(cell(row, colDuration), "30 min"),
				Materials: splitList(cell(row, colMaterials), ","),
				Steps:     splitSteps(cell(row, colContent)),
			}
			workshop.Sections = append(workshop.Sections, models.Section{
				Kind:    models.KindActivity,
				Label:   label,
				Content: models.SectionContent{Activity: detail},
			})
			continue
		}

		kind, err := textKind(kindRaw)
		if err != nil {
			return nil, fmt.Errorf("importing workshop: %w", err)
		}
		workshop.Sections = append(workshop.Sections, models.Section{
			Kind:    kind,
			Label:   string(kind),
			Content: models.SectionContent{Text: cell(row, colContent)},
		})
	}

	if len(workshop.Sections) == 0 {
		return nil, fmt.Errorf("importing workshop: %s has no section rows (empty Tipo column)", path)
	}

	workshop.ActivityCounter = activities
	return workshop, nil
}

// WriteTemplateXLSX writes the bulk-load template with its two example rows.
func WriteTemplateXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Plantilla Taller"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("writing template: creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("writing template: removing default sheet: %w", err)
	}

	rows := [][]interface{}{
		toRow(templateHeaders),
		{"Ej: Taller de Ciencias", "joven", "7-11", "Objetivo", "Comprender el ciclo del agua...", "", "", ""},
		{"", "", "", "Actividad", "Paso 1. Explicar. Paso 2. Dibujar.", "Presencial", "20 min", "Papel, Lápiz"},
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("writing template: %w", err)
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return fmt.Errorf("writing template: row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing template: saving %s: %w", path, err)
	}
	return nil
}

// cleanAgeRange strips the display suffixes so cells like "7-11 años" or
// "61 años en adelante" collapse to their raw codes.
func cleanAgeRange(s string) string {
	s = strings.ReplaceAll(s, " años", "")
	s = strings.ReplaceAll(s, " en adelante", "")
	return strings.TrimSpace(s)
}

func textKind(raw string) (models.SectionKind, error) {
	folded := foldCell(raw)
	switch {
	case strings.Contains(folded, "introduccion"):
		return models.KindIntroduction, nil
	case strings.Contains(folded, "objetivo"):
		return models.KindObjective, nil
	default:
		return "", fmt.Errorf("unknown section type %q", raw)
	}
}

var cellFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
)

func foldCell(s string) string {
	return cellFolder.Replace(strings.ToLower(s))
}

func defaultIfEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// splitList splits a delimited cell, trimming entries and dropping blanks.
func splitList(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// splitSteps breaks the Contenido cell of an activity row into steps on
// periods, discarding empty fragments.
func splitSteps(s string) []string {
	return splitList(s, ".")
}

func toRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

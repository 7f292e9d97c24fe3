package integration

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/juan-rv/tallereval/pkg/models"
)

func writeSheet(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "taller.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportWorkshopXLSX(t *testing.T) {
	path := writeSheet(t, [][]interface{}{
		toRow(templateHeaders),
		{"Taller de Ciencias", "Joven", "7-11 años", "Objetivo", "Comprender el ciclo del agua", "", "", ""},
		{"", "", "", "Actividad", "Formar grupos. Anotar ideas.", "", "45 min", "Papel, Lápiz"},
		{"", "", "", "Actividad de cierre", "Compartir conclusiones", "Virtual", "", ""},
	})

	workshop, err := ImportWorkshopXLSX(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if workshop.Title != "Taller de Ciencias" {
		t.Errorf("unexpected title %q", workshop.Title)
	}
	if workshop.Population != models.PopulationYoung {
		t.Errorf("population must be lowercased, got %q", workshop.Population)
	}
	if workshop.AgeRange != "7-11" {
		t.Errorf("age range suffix must be stripped, got %q", workshop.AgeRange)
	}

	if len(workshop.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(workshop.Sections))
	}

	objective := workshop.Sections[0]
	if objective.Kind != models.KindObjective || objective.Label != "Objetivo" {
		t.Errorf("unexpected first section %+v", objective)
	}
	if objective.Content.Text != "Comprender el ciclo del agua" {
		t.Errorf("text content must pass through verbatim, got %q", objective.Content.Text)
	}

	first := workshop.Sections[1]
	if first.Kind != models.KindActivity || first.Label != "Actividad 1" {
		t.Errorf("unexpected second section %+v", first)
	}
	activity := first.Content.Activity
	if activity == nil {
		t.Fatal("expected activity content")
	}
	if len(activity.Steps) != 2 || activity.Steps[0] != "Formar grupos" || activity.Steps[1] != "Anotar ideas" {
		t.Errorf("steps must split on periods and drop blanks, got %v", activity.Steps)
	}
	if len(activity.Materials) != 2 || activity.Materials[0] != "Papel" || activity.Materials[1] != "Lápiz" {
		t.Errorf("materials must split on commas and trim, got %v", activity.Materials)
	}
	if activity.Modality != "Presencial" {
		t.Errorf("expected default modality, got %q", activity.Modality)
	}
	if activity.Duration != "45 min" {
		t.Errorf("unexpected duration %q", activity.Duration)
	}

	second := workshop.Sections[2]
	if second.Label != "Actividad 2" {
		t.Errorf("activities must be auto-numbered in file order, got %q", second.Label)
	}
	if second.Content.Activity.Modality != "Virtual" {
		t.Errorf("unexpected modality %q", second.Content.Activity.Modality)
	}
	if second.Content.Activity.Duration != "30 min" {
		t.Errorf("expected default duration, got %q", second.Content.Activity.Duration)
	}

	if workshop.ActivityCounter != 2 {
		t.Errorf("expected activity counter 2, got %d", workshop.ActivityCounter)
	}
}

func TestImportWorkshopXLSX_NoConfigRow(t *testing.T) {
	path := writeSheet(t, [][]interface{}{
		toRow(templateHeaders),
		{"", "", "", "Introducción", "Bienvenida", "", "", ""},
	})

	workshop, err := ImportWorkshopXLSX(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if workshop.Title != "" || workshop.AgeRange != "" {
		t.Errorf("config must only come from a row with a title, got %+v", workshop)
	}
	if workshop.Sections[0].Kind != models.KindIntroduction {
		t.Errorf("unexpected kind %q", workshop.Sections[0].Kind)
	}
}

func TestImportWorkshopXLSX_Errors(t *testing.T) {
	t.Run("no data rows", func(t *testing.T) {
		path := writeSheet(t, [][]interface{}{toRow(templateHeaders)})
		if _, err := ImportWorkshopXLSX(path); err == nil {
			t.Error("expected an error for a header-only sheet")
		}
	})

	t.Run("no section rows", func(t *testing.T) {
		path := writeSheet(t, [][]interface{}{
			toRow(templateHeaders),
			{"Taller", "joven", "7-11", "", "", "", "", ""},
		})
		if _, err := ImportWorkshopXLSX(path); err == nil {
			t.Error("expected an error when every Tipo cell is empty")
		}
	})

	t.Run("unknown section type", func(t *testing.T) {
		path := writeSheet(t, [][]interface{}{
			toRow(templateHeaders),
			{"", "", "", "Epílogo", "Texto", "", "", ""},
		})
		if _, err := ImportWorkshopXLSX(path); err == nil {
			t.Error("expected an error for an unknown Tipo")
		}
	})
}

func TestWriteTemplateXLSX_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), TemplateFileName)
	if err := WriteTemplateXLSX(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The exported template must itself be importable.
	workshop, err := ImportWorkshopXLSX(path)
	if err != nil {
		t.Fatalf("template does not import: %v", err)
	}
	if !strings.Contains(workshop.Title, "Taller") {
		t.Errorf("unexpected template title %q", workshop.Title)
	}
	if len(workshop.Sections) != 2 {
		t.Fatalf("expected 2 example sections, got %d", len(workshop.Sections))
	}
	if workshop.Sections[0].Kind != models.KindObjective || workshop.Sections[1].Kind != models.KindActivity {
		t.Errorf("unexpected example sections %+v", workshop.Sections)
	}
}

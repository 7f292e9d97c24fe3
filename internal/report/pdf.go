package report

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

// A4 geometry in millimetres.
const (
	leftMargin = 20.0
	topMargin  = 15.0
	pageWidth  = 210.0
	lineHeight = 5.0
	footerY    = 290.0
	rightEdge  = pageWidth - leftMargin
	centerX    = pageWidth / 2
)

// RenderPDF writes the compiled document to path.
func RenderPDF(doc *Document, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	// Core fonts are cp1252; the translator keeps the Spanish accents intact.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range doc.Pages {
		pdf.AddPage()
		y := topMargin
		for _, line := range page.Lines {
			y = renderLine(pdf, tr, line, y)
		}

		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.Text(centerX-pdf.GetStringWidth(tr(page.Footer))/2, footerY, tr(page.Footer))
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

func renderLine(pdf *fpdf.Fpdf, tr func(string) string, line Line, y float64) float64 {
	if line.Style == StyleRule {
		pdf.SetDrawColor(0, 51, 102)
		pdf.SetLineWidth(0.4)
		pdf.Line(leftMargin, y, rightEdge, y)
		return y + lineHeight
	}

	applyStyle(pdf, line.Style)
	text := tr(line.Text)

	switch line.Align {
	case AlignCenter:
		pdf.Text(centerX-pdf.GetStringWidth(text)/2, y+lineHeight-1, text)
	case AlignRight:
		pdf.Text(rightEdge-pdf.GetStringWidth(text), y+lineHeight-1, text)
	default:
		pdf.Text(leftMargin, y+lineHeight-1, text)
	}

	if line.Right != "" {
		right := tr(line.Right)
		pdf.Text(rightEdge-pdf.GetStringWidth(right), y+lineHeight-1, right)
	}
	return y + lineHeight
}

func applyStyle(pdf *fpdf.Fpdf, style string) {
	switch style {
	case StyleTitle:
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(0, 51, 102)
	case StyleHeading:
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(0, 51, 102)
	case StyleModel:
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(80, 80, 80)
	case StyleBold:
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(0, 0, 0)
	case StyleFieldTitle:
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(0, 86, 179)
	case StyleClosing:
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(0, 0, 0)
	default:
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
	}
}

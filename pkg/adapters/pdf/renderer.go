// Package pdf renders export documents as A4 PDF files with go-pdf/fpdf.
package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/aretw0/supernotes/pkg/export"
)

// Page geometry in millimetres.
const (
	marginX      = 15.0
	contentWidth = 180.0
	lineHeight   = 6.0
)

// Renderer implements export.DocumentRenderer.
// The first page carries the export header and the first note; each further
// note gets its own page.
type Renderer struct {
	// Created overrides the PDF creation date. Zero means the export time.
	Created time.Time
}

// New creates a PDF renderer.
func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Render(w io.Writer, doc export.Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginX, 20, marginX)
	pdf.SetTitle(doc.Title, true)

	created := r.Created
	if created.IsZero() {
		created = doc.ExportedAt
	}
	pdf.SetCreationDate(created)

	// Core fonts are cp1252; the translator maps UTF-8 input onto it.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetY(10)
	pdf.SetFont("Helvetica", "", 20)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, tr(doc.Subtitle()), "", 1, "C", false, 0, "")

	y := 40.0
	_, pageHeight := pdf.GetPageSize()

	for i, page := range doc.Pages {
		if i > 0 {
			pdf.AddPage()
			y = 20
		}

		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetTextColor(40, 40, 40)
		pdf.Text(marginX, y, tr(page.Title))
		y += 10

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.Text(marginX, y, tr(page.Meta))
		y += 8

		pdf.SetFont("Helvetica", "", 12)
		pdf.SetTextColor(20, 20, 20)
		pdf.SetXY(marginX, y)
		pdf.MultiCell(contentWidth, lineHeight, tr(page.Content), "", "L", false)

		pdf.SetDrawColor(200, 200, 200)
		pdf.Line(marginX, pageHeight-15, marginX+contentWidth, pageHeight-15)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to lay out pdf: %w", err)
	}
	return pdf.Output(w)
}

var _ export.DocumentRenderer = (*Renderer)(nil)

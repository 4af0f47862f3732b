package report

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

// renderPDF lays the table out on landscape letter pages: centered title,
// period line, dark header row and alternating row shading.
func (t *Table) renderPDF() ([]byte, error) {
	pdf := fpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, t.Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Period: "+t.PeriodStart+" to "+t.PeriodEnd, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if len(t.Rows) == 0 {
		pdf.CellFormat(0, 8, "No data available for the selected period.", "", 1, "L", false, 0, "")
		return pdfBytes(pdf)
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(t.Headers))

	writeHeader := func() {
		pdf.SetFillColor(31, 78, 120)
		pdf.SetTextColor(245, 245, 245)
		pdf.SetFont("Helvetica", "B", 11)
		for _, h := range t.Headers {
			pdf.CellFormat(colWidth, 9, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	writeHeader()

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for i, row := range t.Rows {
		// Repeat the header when a row starts a new page.
		_, pageHeight := pdf.GetPageSize()
		if pdf.GetY()+8 > pageHeight-12 {
			pdf.AddPage()
			writeHeader()
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(0, 0, 0)
		}

		fill := i%2 == 1
		pdf.SetFillColor(211, 211, 211)
		for _, cell := range row {
			pdf.CellFormat(colWidth, 8, cell, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdfBytes(pdf)
}

func pdfBytes(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

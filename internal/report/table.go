// Package report renders (title, headers, rows) tables as PDF or Excel
// documents. It carries no inventory logic: callers assemble the rows.
package report

import "strings"

// Format selects the export encoding.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
)

// ParseFormat normalizes a query value; empty defaults to PDF.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "", "pdf":
		return FormatPDF, true
	case "excel", "xlsx":
		return FormatExcel, true
	}
	return "", false
}

func (f Format) ContentType() string {
	if f == FormatExcel {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/pdf"
}

func (f Format) Extension() string {
	if f == FormatExcel {
		return "xlsx"
	}
	return "pdf"
}

// Table is the assembled report dataset. PeriodStart/PeriodEnd are already
// formatted for display.
type Table struct {
	Title       string
	Headers     []string
	Rows        [][]string
	PeriodStart string
	PeriodEnd   string
}

// Filename suggests the attachment name: spaces in the title become
// underscores.
func (t *Table) Filename(f Format) string {
	return strings.ReplaceAll(t.Title, " ", "_") + "." + f.Extension()
}

// Render encodes the table in the requested format.
func (t *Table) Render(f Format) ([]byte, error) {
	if f == FormatExcel {
		return t.renderExcel()
	}
	return t.renderPDF()
}

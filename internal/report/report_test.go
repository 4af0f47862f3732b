package report

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func sampleTable() *Table {
	return &Table{
		Title:   "Chemical Inventory Report",
		Headers: []string{"Chemical Name", "Quantity", "Location"},
		Rows: [][]string{
			{"Ethanol", "1200 L", "Flammables Locker"},
			{"Sodium Hydroxide", "750 g", "General Shelf 1"},
		},
		PeriodStart: "2026-06-01",
		PeriodEnd:   "2026-06-30",
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"", FormatPDF, true},
		{"pdf", FormatPDF, true},
		{"PDF", FormatPDF, true},
		{"excel", FormatExcel, true},
		{"xlsx", FormatExcel, true},
		{"csv", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseFormat(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFilename(t *testing.T) {
	table := sampleTable()
	if got := table.Filename(FormatPDF); got != "Chemical_Inventory_Report.pdf" {
		t.Errorf("pdf filename = %q", got)
	}
	if got := table.Filename(FormatExcel); got != "Chemical_Inventory_Report.xlsx" {
		t.Errorf("excel filename = %q", got)
	}
}

func TestContentType(t *testing.T) {
	if got := FormatPDF.ContentType(); got != "application/pdf" {
		t.Errorf("pdf content type = %q", got)
	}
	if got := FormatExcel.ContentType(); got != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("excel content type = %q", got)
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := sampleTable().Render(FormatPDF)
	if err != nil {
		t.Fatalf("Render pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("pdf output missing %PDF header")
	}
}

func TestRenderPDFEmpty(t *testing.T) {
	table := sampleTable()
	table.Rows = nil
	data, err := table.Render(FormatPDF)
	if err != nil {
		t.Fatalf("Render empty pdf: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty-table pdf should still render")
	}
}

func TestRenderExcel(t *testing.T) {
	table := sampleTable()
	data, err := table.Render(FormatExcel)
	if err != nil {
		t.Fatalf("Render excel: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet != "Chemical Inventory Report" {
		t.Errorf("sheet name = %q", sheet)
	}

	title, err := f.GetCellValue(sheet, "A1")
	if err != nil {
		t.Fatalf("GetCellValue A1: %v", err)
	}
	if title != table.Title {
		t.Errorf("A1 = %q, want %q", title, table.Title)
	}

	header, err := f.GetCellValue(sheet, "A4")
	if err != nil {
		t.Fatalf("GetCellValue A4: %v", err)
	}
	if header != "Chemical Name" {
		t.Errorf("A4 = %q, want Chemical Name", header)
	}

	first, err := f.GetCellValue(sheet, "A5")
	if err != nil {
		t.Fatalf("GetCellValue A5: %v", err)
	}
	if first != "Ethanol" {
		t.Errorf("A5 = %q, want Ethanol", first)
	}
}

func TestRenderExcelLongTitleSheetName(t *testing.T) {
	table := sampleTable()
	table.Title = "An Extremely Long Report Title That Exceeds The Sheet Limit"
	data, err := table.Render(FormatExcel)
	if err != nil {
		t.Fatalf("Render excel: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetName(0); len(got) > 31 {
		t.Errorf("sheet name %q exceeds the 31-char limit", got)
	}
}

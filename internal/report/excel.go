package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	headerRow   = 4
	maxColWidth = 40
)

// renderExcel writes the table to a single worksheet: merged title cell,
// period line, styled frozen header row, alternating row shading and
// auto-sized columns capped at 40 characters.
func (t *Table) renderExcel() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Title
	if len(sheet) > 31 {
		sheet = sheet[:31] // Excel sheet name limit
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	lastCol, err := excelize.ColumnNumberToName(max(len(t.Headers), 1))
	if err != nil {
		return nil, err
	}

	// Title and period, merged across the table width.
	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, err
	}
	f.SetCellValue(sheet, "A1", t.Title)
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	if err := f.MergeCell(sheet, "A2", lastCol+"2"); err != nil {
		return nil, err
	}
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Period: %s to %s", t.PeriodStart, t.PeriodEnd))

	border := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E78"}},
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    border,
	})
	if err != nil {
		return nil, err
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
		Border:    border,
	})
	if err != nil {
		return nil, err
	}
	altStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F2F2F2"}},
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
		Border:    border,
	})
	if err != nil {
		return nil, err
	}

	for col, header := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for rowIdx, row := range t.Rows {
		style := dataStyle
		if rowIdx%2 == 0 {
			style = altStyle
		}
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, headerRow+1+rowIdx)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheet, cell, value)
			f.SetCellStyle(sheet, cell, cell, style)
		}
	}

	// Auto-size columns from the longest value, capped at 40 characters.
	for col := range t.Headers {
		width := len(t.Headers[col])
		for _, row := range t.Rows {
			if col < len(row) && len(row[col]) > width {
				width = len(row[col])
			}
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, name, name, float64(min(width+4, maxColWidth))); err != nil {
			return nil, err
		}
	}

	// Freeze everything above the first data row.
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: fmt.Sprintf("A%d", headerRow+1),
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package report

import (
	"fmt"
	"io"
	"strings"
	"travel-matrix-service/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName    = "Distance Matrix"
	minimumColor = "90EE90"
)

// ExportFilename is the attachment name for a matrix computed from origin.
func ExportFilename(origin string) string {
	name := strings.NewReplacer("/", "-", "\\", "-", "\"", "").Replace(domain.NormalizeAddress(origin))
	return fmt.Sprintf("distance matrix %s.xlsx", name)
}

// WriteXLSX writes the table as a single-sheet workbook. Every cell holding
// its column's smallest value gets a green fill.
func WriteXLSX(w io.Writer, t domain.ResultTable) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}

	headers := t.Headers()
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("write xlsx: header: %w", err)
	}

	for i, r := range t.Rows {
		row := make([]any, 0, 2+len(r.Values))
		row = append(row, r.Company, r.Address)
		for _, v := range r.Values {
			row = append(row, v)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write xlsx: row %d: %w", i+1, err)
		}
	}

	highlight, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{minimumColor}},
	})
	if err != nil {
		return fmt.Errorf("write xlsx: style: %w", err)
	}

	for ci, rows := range t.ColumnMinimums() {
		for _, ri := range rows {
			// Numeric columns start after company and address.
			cell, err := excelize.CoordinatesToCellName(ci+3, ri+2)
			if err != nil {
				return fmt.Errorf("write xlsx: %w", err)
			}
			if err := f.SetCellStyle(sheetName, cell, cell, highlight); err != nil {
				return fmt.Errorf("write xlsx: highlight %s: %w", cell, err)
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "B", 32); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// LiabilitiesSheet is the worksheet name of the exported workbook.
const LiabilitiesSheet = "Employee Liabilities"

// XLSXFormatter writes the report to a single-sheet workbook. Valid
// liabilities are numeric cells; invalid rows carry the invalid marker.
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string { return "xlsx" }

func (x XLSXFormatter) Format(report *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", LiabilitiesSheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(LiabilitiesSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range report.Rows {
		values := exportRecord(row)
		cells := make([]interface{}, len(values))
		for j, v := range values {
			cells[j] = v
		}
		// Liability column
		if row.Liability != nil {
			cells[5] = row.Liability.InexactFloat64()
		}
		if row.Age != nil {
			cells[3] = *row.Age
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(LiabilitiesSheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(LiabilitiesSheet, "A", "Q", 16); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

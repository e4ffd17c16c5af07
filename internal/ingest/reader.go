package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/OrHava/economy-project/internal/domain"
	"github.com/xuri/excelize/v2"
)

// DefaultEmployeeSheet is the sheet read from employee workbooks when none
// is named. Workbooks without it are read from their first sheet.
const DefaultEmployeeSheet = "data"

var (
	// ErrUnsupportedFormat is returned for files that are neither xlsx nor csv.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrSheetNotFound is returned when a named worksheet is not in the workbook.
	ErrSheetNotFound = errors.New("sheet not found")
)

// Format identifies a sheet file format
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// DetectFormat infers the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ReadRows returns the header-keyed rows of a sheet file. For workbooks,
// sheet selects the worksheet and an empty name selects the first one. A
// named sheet the workbook lacks is an error.
func ReadRows(path, sheet string) ([]RawRecord, error) {
	return readRows(path, sheet, "")
}

func readRows(path, sheet, preferred string) ([]RawRecord, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	switch format {
	case FormatXLSX:
		return readXLSX(file, sheet, preferred)
	default:
		return ReadCSV(file)
	}
}

// ReadXLSX reads a worksheet from an xlsx stream. Cell values are read raw,
// so date cells arrive as their serial numbers.
func ReadXLSX(r io.Reader, sheet string) ([]RawRecord, error) {
	return readXLSX(r, sheet, "")
}

func readXLSX(r io.Reader, sheet, preferred string) ([]RawRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	name, err := resolveSheet(f, sheet, preferred)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}
	return rowsToRecords(rows), nil
}

// ReadCSV reads a header-first csv stream.
func ReadCSV(r io.Reader) ([]RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rowsToRecords(rows), nil
}

// LoadEmployees reads and normalizes an employee sheet file. An empty sheet
// name reads DefaultEmployeeSheet, or the first sheet when there is none.
func LoadEmployees(path, sheet string) ([]domain.EmployeeRecord, error) {
	rows, err := readRows(path, sheet, DefaultEmployeeSheet)
	if err != nil {
		return nil, err
	}
	return NormalizeAll(rows), nil
}

// resolveSheet picks the named sheet. Without a name it picks preferred
// when present, else the first sheet.
func resolveSheet(f *excelize.File, sheet, preferred string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", errors.New("workbook has no sheets")
	}
	want := sheet
	if want == "" {
		want = preferred
	}
	for _, name := range sheets {
		if want != "" && name == want {
			return name, nil
		}
	}
	if sheet != "" {
		return "", fmt.Errorf("%w: %q (workbook has %s)", ErrSheetNotFound, sheet, strings.Join(sheets, ", "))
	}
	return sheets[0], nil
}

// rowsToRecords keys each data row by the trimmed header row. Fully empty
// rows are skipped; short rows leave the missing columns empty.
func rowsToRecords(rows [][]string) []RawRecord {
	if len(rows) == 0 {
		return nil
	}
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var records []RawRecord
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rec := make(RawRecord, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(row) {
				rec[h] = strings.TrimSpace(row[i])
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

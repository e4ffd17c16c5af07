package output

import (
	"bytes"
	"encoding/csv"
)

// CSVFormatter writes one row per employee in the export column order
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, row := range report.Rows {
		if err := w.Write(exportRecord(row)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

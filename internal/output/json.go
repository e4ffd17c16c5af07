package output

import (
	"github.com/goccy/go-json"
)

// JSONFormatter renders the report and its summary as indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	payload := struct {
		*Report
		Summary Summary `json:"summary"`
	}{
		Report:  report,
		Summary: report.Summarize(),
	}
	return json.MarshalIndent(payload, "", "  ")
}

package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/OrHava/economy-project/internal/domain"
	"github.com/shopspring/decimal"
)

// Report is a calculated batch ready for rendering
type Report struct {
	RunID string             `json:"runId,omitempty"`
	AsOf  time.Time          `json:"asOf"`
	Rows  []domain.ResultRow `json:"rows"`
}

// Summary aggregates a report's rows by status
type Summary struct {
	Employees   int             `json:"employees"`
	Valid       int             `json:"valid"`
	Invalid     int             `json:"invalid"`
	Departed    int             `json:"departed"`
	FullyFunded int             `json:"fullyFunded"`
	Total       decimal.Decimal `json:"total"`
}

// Summarize totals the liabilities of all valid rows.
func (r *Report) Summarize() Summary {
	s := Summary{Employees: len(r.Rows), Total: decimal.Zero}
	for _, row := range r.Rows {
		switch row.Status {
		case domain.StatusInvalid:
			s.Invalid++
			continue
		case domain.StatusDeparted:
			s.Departed++
		case domain.StatusFullyFunded:
			s.FullyFunded++
		}
		s.Valid++
		if row.Liability != nil {
			s.Total = s.Total.Add(*row.Liability)
		}
	}
	return s
}

// Formatter renders a report into bytes
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

// WriteFormatted renders report with f into a timestamped file in the
// working directory and returns the file name.
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("%s formatter failed: %w", f.Name(), err)
	}
	filename := fmt.Sprintf("employee_liabilities_%s.%s", time.Now().Format("20060102_150405"), strings.TrimPrefix(ext, "."))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

var formatters = map[string]Formatter{}

var formatAliases = map[string]string{
	"table": "console",
	"text":  "console",
	"excel": "xlsx",
}

func register(f Formatter) {
	formatters[f.Name()] = f
}

func init() {
	register(ConsoleFormatter{})
	register(CSVFormatter{})
	register(JSONFormatter{})
	register(XLSXFormatter{})
}

// GetFormatterByName returns the formatter registered under name or one of
// its aliases, or nil.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := formatAliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists the registered formatter names, sorted.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted alias names, sorted.
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// FileExtension returns the file extension conventionally used for a format.
func FileExtension(name string) string {
	switch f := GetFormatterByName(name); {
	case f == nil:
		return "txt"
	case f.Name() == "console":
		return "txt"
	default:
		return f.Name()
	}
}

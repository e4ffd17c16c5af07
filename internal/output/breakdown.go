package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/OrHava/economy-project/internal/domain"
	"github.com/goccy/go-json"
)

// Breakdown is one employee's liability with its projection steps
type Breakdown struct {
	Record *domain.EmployeeRecord  `json:"employee"`
	Result *domain.LiabilityResult `json:"result"`
}

// BreakdownFormatter renders a single employee breakdown
type BreakdownFormatter interface {
	Name() string
	FormatBreakdown(b *Breakdown) ([]byte, error)
}

var breakdownHeaders = []string{
	"Year", "Age", "Projected Salary", "Survival Probability", "Mortality",
	"Resignation", "Discount Factor", "Benefit", "Clause 14", "Present Value",
}

func stepRecord(s domain.ProjectionStep) []string {
	return []string{
		strconv.Itoa(s.Year),
		strconv.Itoa(s.Age),
		s.ProjectedSalary.StringFixed(2),
		s.SurvivalProbability.StringFixed(5),
		s.MortalityRate.String(),
		s.ResignationRate.String(),
		s.DiscountFactor.StringFixed(5),
		s.Benefit.StringFixed(2),
		s.Clause14Factor.StringFixed(2),
		s.PresentValue.StringFixed(2),
	}
}

// BreakdownConsole renders steps as an aligned table
type BreakdownConsole struct{}

func (BreakdownConsole) Name() string { return "console" }

func (BreakdownConsole) FormatBreakdown(b *Breakdown) ([]byte, error) {
	var buf bytes.Buffer
	res := b.Result

	fmt.Fprintf(&buf, "Calculation breakdown for %s (%s)\n", b.Record.FullName(), b.Record.ID)
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	if !res.IsValid() {
		fmt.Fprintf(&buf, "%s: %s\n", domain.InvalidMarker, res.InvalidReason)
		return buf.Bytes(), nil
	}
	fmt.Fprintf(&buf, "Age %d, horizon %d years, status %s\n\n", res.Age, res.Horizon, res.Status)

	if len(res.Steps) > 0 {
		tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, strings.Join(breakdownHeaders, "\t")+"\t")
		for _, step := range res.Steps {
			fmt.Fprintln(tw, strings.Join(stepRecord(step), "\t")+"\t")
		}
		if err := tw.Flush(); err != nil {
			return nil, err
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintf(&buf, "Projected total:  %s\n", res.ProjectedTotal.StringFixed(2))
	for _, amount := range res.PreExisting {
		fmt.Fprintf(&buf, "  + %-22s %s\n", amount.Name, amount.Amount.StringFixed(2))
	}
	fmt.Fprintf(&buf, "Total liability:  %s\n", res.LiabilityText())
	return buf.Bytes(), nil
}

// BreakdownCSV writes one csv row per projection year
type BreakdownCSV struct{}

func (BreakdownCSV) Name() string { return "csv" }

func (BreakdownCSV) FormatBreakdown(b *Breakdown) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(breakdownHeaders); err != nil {
		return nil, err
	}
	for _, step := range b.Result.Steps {
		if err := w.Write(stepRecord(step)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// BreakdownJSON renders the record and full result as JSON
type BreakdownJSON struct{}

func (BreakdownJSON) Name() string { return "json" }

func (BreakdownJSON) FormatBreakdown(b *Breakdown) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// GetBreakdownFormatterByName returns the breakdown formatter for name, or nil.
func GetBreakdownFormatterByName(name string) BreakdownFormatter {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "console", "table", "text":
		return BreakdownConsole{}
	case "csv":
		return BreakdownCSV{}
	case "json":
		return BreakdownJSON{}
	default:
		return nil
	}
}

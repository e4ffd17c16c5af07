package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/OrHava/economy-project/pkg/dateutil"
)

// ConsoleFormatter renders an aligned table followed by a summary
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "SEVERANCE LIABILITY REPORT")
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	if !report.AsOf.IsZero() {
		fmt.Fprintf(&buf, "As of: %s\n", dateutil.Format(report.AsOf))
	}
	if report.RunID != "" {
		fmt.Fprintf(&buf, "Run:   %s\n", report.RunID)
	}
	fmt.Fprintln(&buf)

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "EmployeeID\tName\tLastName\tAge\tSalary\tLiability\tStatus\t")
	for _, row := range report.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			row.EmployeeID, row.FirstName, row.LastName, row.AgeText(), row.Salary, row.LiabilityText, row.Status)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}

	s := report.Summarize()
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, strings.Repeat("-", 60))
	fmt.Fprintf(&buf, "Employees:        %d\n", s.Employees)
	fmt.Fprintf(&buf, "Valid:            %d (departed %d, fully funded %d)\n", s.Valid, s.Departed, s.FullyFunded)
	fmt.Fprintf(&buf, "Invalid:          %d\n", s.Invalid)
	fmt.Fprintf(&buf, "Total liability:  %s\n", s.Total.StringFixed(2))

	for _, row := range report.Rows {
		if row.InvalidReason != "" {
			fmt.Fprintf(&buf, "  %s: %s\n", row.EmployeeID, row.InvalidReason)
		}
	}
	return buf.Bytes(), nil
}

package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employeesCSV = `id,name,last name,gender,birth_date,hire_date,salary
1001,Dana,Levi,male,1.6.1985,1.1.2015,"10,000"
1002,Avi,Mizrahi,male,1.6.1985,1.1.2015,abc
`

const assumptionsYAML = `as_of: 2026-01-01T00:00:00Z
discount:
  mode: flat
  flat_rate: 0.04
mortality:
  file: mortality.csv
`

// fixture writes an employee sheet, a linear mortality table and an
// assumptions file into a temp dir.
func fixture(t *testing.T) (dir, employees, assumptions string) {
	t.Helper()
	dir = t.TempDir()

	var mortality strings.Builder
	mortality.WriteString("age,q(x)\n")
	for age := 40; age <= 80; age++ {
		fmt.Fprintf(&mortality, "%d,%.3f\n", age, 0.001*float64(age-39))
	}

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}
	write("mortality.csv", mortality.String())
	return dir, write("staff.csv", employeesCSV), write("assumptions.yaml", assumptionsYAML)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	assert.Equal(t, "sevpv", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, expected := range []string{"calculate", "breakdown", "validate", "assumptions", "serve", "runs", "version"} {
		assert.Contains(t, names, expected)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sevpv dev")
}

func TestCalculate_CSV(t *testing.T) {
	_, employees, assumptions := fixture(t)

	out, err := run(t, "calculate", employees, "--assumptions", assumptions, "--format", "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"1001", "Dana", "Levi", "40", "10000.00", "474551.88"}, records[1][:6])
	assert.Equal(t, "Invalid data", records[2][5])
}

func TestCalculate_FlagsOverrideAssumptions(t *testing.T) {
	dir, employees, _ := fixture(t)

	// the built-in assumptions discount on the curve, so only the as-of date and mortality are needed
	out, err := run(t, "calculate", employees,
		"--as-of", "1.1.2026",
		"--mortality", filepath.Join(dir, "mortality.csv"),
		"--format", "json")
	require.NoError(t, err)

	var report struct {
		Rows []struct {
			EmployeeID    string `json:"employeeId"`
			LiabilityText string `json:"liabilityText"`
		} `json:"rows"`
		Summary struct {
			Employees int `json:"employees"`
			Invalid   int `json:"invalid"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Summary.Employees)
	assert.Equal(t, 1, report.Summary.Invalid)
	assert.NotEqual(t, "474551.88", report.Rows[0].LiabilityText)
}

func TestCalculate_AsOfFromEnvironment(t *testing.T) {
	dir, employees, _ := fixture(t)
	t.Setenv("SEVPV_AS_OF", "2026-01-01")

	out, err := run(t, "calculate", employees,
		"--mortality", filepath.Join(dir, "mortality.csv"),
		"--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "1001")

	t.Setenv("SEVPV_AS_OF", "someday")
	_, err = run(t, "calculate", employees, "--mortality", filepath.Join(dir, "mortality.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEVPV_AS_OF")
}

func TestCalculate_XLSXToFile(t *testing.T) {
	dir, employees, assumptions := fixture(t)
	target := filepath.Join(dir, "out.xlsx")

	out, err := run(t, "calculate", employees, "--assumptions", assumptions, "--format", "excel", "--out", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to "+target)
	assert.FileExists(t, target)
}

func TestCalculate_Errors(t *testing.T) {
	dir, employees, assumptions := fixture(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown format", []string{"calculate", employees, "--assumptions", assumptions, "--format", "pdf"}, "unknown format"},
		{"missing as-of", []string{"calculate", employees, "--mortality", filepath.Join(dir, "mortality.csv")}, "as_of"},
		{"missing mortality", []string{"calculate", employees, "--as-of", "2026-01-01"}, "no mortality table"},
		{"bad as-of", []string{"calculate", employees, "--as-of", "31.2.2026"}, "invalid as-of date"},
		{"save without archive", []string{"calculate", employees, "--assumptions", assumptions, "--save"}, "no archive configured"},
		{"missing employee file", []string{"calculate", filepath.Join(dir, "nope.csv"), "--assumptions", assumptions}, "nope.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCalculate_SaveAndListRuns(t *testing.T) {
	dir, employees, assumptions := fixture(t)
	archive := filepath.Join(dir, "runs.db")

	_, err := run(t, "calculate", employees, "--assumptions", assumptions, "--archive", archive, "--save", "--format", "csv")
	require.NoError(t, err)

	out, err := run(t, "runs", "--archive", archive)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "EMPLOYEES")
	assert.Contains(t, lines[1], "474551.88")

	runID := strings.Fields(lines[1])[0]
	out, err = run(t, "runs", "show", runID, "--archive", archive, "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "1001,Dana,Levi,40,10000.00,474551.88")

	_, err = run(t, "runs", "show", "missing", "--archive", archive)
	assert.ErrorContains(t, err, "run not found")
}

func TestBreakdown(t *testing.T) {
	_, employees, assumptions := fixture(t)

	out, err := run(t, "breakdown", employees, "1001", "--assumptions", assumptions)
	require.NoError(t, err)
	assert.Contains(t, out, "Calculation breakdown for Dana Levi (1001)")
	assert.Contains(t, out, "Total liability:  474551.88")

	out, err = run(t, "breakdown", employees, "1001", "--assumptions", assumptions, "--format", "csv")
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 28)

	_, err = run(t, "breakdown", employees, "9999", "--assumptions", assumptions)
	assert.ErrorContains(t, err, `employee "9999" not found`)
}

func TestValidate(t *testing.T) {
	_, employees, assumptions := fixture(t)

	out, err := run(t, "validate", assumptions)
	require.NoError(t, err)
	assert.Contains(t, out, "Mortality table: 41 ages")
	assert.Contains(t, out, "is valid")

	out, err = run(t, "validate", assumptions, "--employees", employees)
	require.Error(t, err)
	assert.Contains(t, out, `1002: salary missing or non-numeric: "abc"`)
	assert.Contains(t, out, "2 employees, 1 invalid")
}

func TestValidate_RejectsBadAssumptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("raise_frequency: 0\n"), 0o644))

	_, err := run(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "raise_frequency")
}

func TestAssumptions(t *testing.T) {
	out, err := run(t, "assumptions", "--as-of", "2026-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "salary_growth")
	assert.Contains(t, out, "as_of: 2026-01-01")
	assert.Contains(t, out, "raise_frequency: 2")
}

func TestSettingsFromEnvironment(t *testing.T) {
	t.Setenv("SEVPV_LOG_LEVEL", "verbose")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"version"})
	cmd.SetOut(&bytes.Buffer{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

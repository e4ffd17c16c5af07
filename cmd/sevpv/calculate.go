package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/OrHava/economy-project/internal/ingest"
	"github.com/OrHava/economy-project/internal/output"
	"github.com/OrHava/economy-project/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) calculateCmd() *cobra.Command {
	var (
		sheet   string
		format  string
		outPath string
		save    bool
	)

	cmd := &cobra.Command{
		Use:   "calculate [employees-file]",
		Short: "Calculate the severance liability of every employee",
		Long: `Calculate the severance liability of every employee in an xlsx or csv sheet.

Rows with a missing or non-numeric salary or birth date are reported as
"Invalid data" and do not stop the batch.

Examples:
  sevpv calculate staff.xlsx --as-of 2026-01-01 --mortality mortality.xlsx
  sevpv calculate staff.csv --assumptions assumptions.yaml --format xlsx --out liabilities.xlsx
  sevpv calculate staff.xlsx --assumptions assumptions.yaml --archive runs.db --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.settings.Output
			}
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			_, engine, err := a.newEngine()
			if err != nil {
				return err
			}
			records, err := a.loadEmployees(args[0], sheet)
			if err != nil {
				return err
			}

			rows, err := engine.CalculateBatch(cmd.Context(), records)
			if err != nil {
				return err
			}
			report := &output.Report{AsOf: engine.Options().AsOf, Rows: rows}

			if save {
				archive, err := a.openArchive(true)
				if err != nil {
					return err
				}
				defer archive.Close()

				digest, err := store.Digest(engine.Options())
				if err != nil {
					return err
				}
				run := store.NewRun(report.AsOf, digest, rows)
				if err := archive.SaveRun(cmd.Context(), run, rows); err != nil {
					return err
				}
				report.RunID = run.ID
				a.logger.Info("archived run", zap.String("run_id", run.ID), zap.String("archive", a.settings.ArchivePath))
			}

			summary := report.Summarize()
			a.logger.Info("calculation complete",
				zap.Int("employees", summary.Employees),
				zap.Int("invalid", summary.Invalid),
				zap.String("total", summary.Total.StringFixed(2)))

			return a.writeReport(cmd, f, report, outPath)
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet holding the employees (xlsx only; default "+strconv.Quote(ingest.DefaultEmployeeSheet)+", else the first sheet)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().BoolVar(&save, "save", false, "archive the run (requires --archive)")
	return cmd
}

// writeReport sends the report to outPath, to stdout, or for binary formats
// to a timestamped file in the working directory.
func (a *app) writeReport(cmd *cobra.Command, f output.Formatter, report *output.Report, outPath string) error {
	if outPath == "" && f.Name() == "xlsx" {
		filename, err := output.WriteFormatted(f, report, output.FileExtension(f.Name()))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
		return nil
	}

	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("%s formatter failed: %w", f.Name(), err)
	}
	if outPath == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outPath)
	return nil
}

func (a *app) breakdownCmd() *cobra.Command {
	var (
		sheet  string
		format string
	)

	cmd := &cobra.Command{
		Use:   "breakdown [employees-file] [employee-id]",
		Short: "Show one employee's liability year by year",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.GetBreakdownFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unknown breakdown format %q (available: console, csv, json)", format)
			}

			_, engine, err := a.newEngine()
			if err != nil {
				return err
			}
			records, err := a.loadEmployees(args[0], sheet)
			if err != nil {
				return err
			}

			for i := range records {
				rec := &records[i]
				if rec.ID != args[1] {
					continue
				}
				data, err := f.FormatBreakdown(&output.Breakdown{Record: rec, Result: engine.Breakdown(rec)})
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return fmt.Errorf("employee %q not found in %s", args[1], args[0])
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet holding the employees (xlsx only; default "+strconv.Quote(ingest.DefaultEmployeeSheet)+", else the first sheet)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format: console, csv, json")
	return cmd
}

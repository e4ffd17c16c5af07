package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/OrHava/economy-project/internal/output"
	"github.com/spf13/cobra"
)

func (a *app) runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := a.openArchive(true)
			if err != nil {
				return err
			}
			defer archive.Close()

			runs, err := archive.ListRuns(cmd.Context())
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No archived runs")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tAS OF\tCREATED\tEMPLOYEES\tINVALID\tTOTAL\tOPTIONS")
			for _, run := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
					run.ID,
					run.AsOf.Format("2006-01-02"),
					run.CreatedAt.Local().Format("2006-01-02 15:04"),
					run.Employees,
					run.Invalid,
					run.Total.StringFixed(2),
					run.OptionsDigest)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(a.runsShowCmd())
	return cmd
}

func (a *app) runsShowCmd() *cobra.Command {
	var (
		format  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "Print an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.settings.Output
			}
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			archive, err := a.openArchive(true)
			if err != nil {
				return err
			}
			defer archive.Close()

			run, rows, err := archive.GetRun(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("run %s: %w", args[0], err)
			}
			return a.writeReport(cmd, f, &output.Report{RunID: run.ID, AsOf: run.AsOf, Rows: rows}, outPath)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the report to this file instead of stdout")
	return cmd
}

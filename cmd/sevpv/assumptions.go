package main

import (
	"fmt"
	"strconv"

	"github.com/OrHava/economy-project/internal/config"
	"github.com/OrHava/economy-project/internal/domain"
	"github.com/OrHava/economy-project/internal/ingest"
	"github.com/spf13/cobra"
)

func (a *app) validateCmd() *cobra.Command {
	var (
		employees string
		sheet     string
	)

	cmd := &cobra.Command{
		Use:   "validate [assumptions-file]",
		Short: "Validate an assumptions file and, optionally, an employee sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			assumptions, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if assumptions.Mortality.File != "" || len(assumptions.Mortality.Table) > 0 {
				table, err := assumptions.MortalityTable()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Mortality table: %d ages\n", table.Len())
			}
			fmt.Fprintf(out, "Assumptions file %s is valid\n", args[0])

			if employees == "" {
				return nil
			}

			a.settings.Assumptions = args[0]
			_, engine, err := a.newEngine()
			if err != nil {
				return err
			}
			records, err := a.loadEmployees(employees, sheet)
			if err != nil {
				return err
			}

			invalid := 0
			for i := range records {
				res := engine.Calculate(&records[i])
				if res.Status == domain.StatusInvalid {
					invalid++
					fmt.Fprintf(out, "  %s: %s\n", displayID(records[i].ID, i), res.InvalidReason)
				}
			}
			fmt.Fprintf(out, "%d employees, %d invalid\n", len(records), invalid)
			if invalid > 0 {
				return fmt.Errorf("%d of %d employees have invalid data", invalid, len(records))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&employees, "employees", "", "also check every row of this employee sheet")
	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet holding the employees (xlsx only; default "+strconv.Quote(ingest.DefaultEmployeeSheet)+", else the first sheet)")
	return cmd
}

func displayID(id string, index int) string {
	if id == "" {
		return fmt.Sprintf("row %d", index+2)
	}
	return id
}

func (a *app) assumptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assumptions",
		Short: "Print the effective assumptions as YAML",
		Long: `Print the assumptions a calculation would run with: the built-in set, or the
--assumptions file, after the --as-of and --mortality overrides. The output is
a valid assumptions file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			assumptions, err := a.loadAssumptions()
			if err != nil {
				return err
			}
			data, err := config.Marshal(assumptions)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/OrHava/economy-project/internal/config"
	"github.com/OrHava/economy-project/internal/ingest"
	"github.com/OrHava/economy-project/internal/tui"
	"github.com/OrHava/economy-project/pkg/dateutil"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Println("Usage: sevpv-tui <employees-file> [assumptions-file]")
		fmt.Println()
		fmt.Printf("The as-of date and mortality table come from the assumptions file or from\n%s_AS_OF and %s_MORTALITY.\n", config.EnvPrefix, config.EnvPrefix)
		os.Exit(1)
	}
	employeesPath := os.Args[1]

	if _, err := os.Stat(employeesPath); os.IsNotExist(err) {
		fmt.Printf("Error: Employee file not found: %s\n", employeesPath)
		os.Exit(1)
	}

	settings, err := config.LoadSettings(config.NewViper(), "")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if len(os.Args) == 3 {
		settings.Assumptions = os.Args[2]
	}
	asOf := settings.AsOf

	load := func() (*tui.Data, error) {
		assumptions := config.DefaultAssumptions()
		if settings.Assumptions != "" {
			loaded, err := config.NewInputParser().LoadFromFile(settings.Assumptions)
			if err != nil {
				return nil, err
			}
			assumptions = loaded
		}
		if asOf != "" {
			date, ok := dateutil.Parse(asOf)
			if !ok {
				return nil, fmt.Errorf("invalid %s_AS_OF date %q", config.EnvPrefix, asOf)
			}
			assumptions.AsOf = date
		}
		if settings.Mortality != "" {
			assumptions.Mortality.File = settings.Mortality
			assumptions.Mortality.Table = nil
		}

		engine, err := assumptions.NewEngine(settings.Workers)
		if err != nil {
			return nil, err
		}
		records, err := ingest.LoadEmployees(employeesPath, "")
		if err != nil {
			return nil, err
		}
		return &tui.Data{Source: filepath.Base(employeesPath), Engine: engine, Records: records}, nil
	}

	p := tea.NewProgram(
		tui.NewModel(load),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

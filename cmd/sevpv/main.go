package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/OrHava/economy-project/internal/calculation"
	"github.com/OrHava/economy-project/internal/config"
	"github.com/OrHava/economy-project/internal/domain"
	"github.com/OrHava/economy-project/internal/ingest"
	"github.com/OrHava/economy-project/internal/store"
	"github.com/OrHava/economy-project/pkg/dateutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries what every command needs once flags are parsed
type app struct {
	v            *viper.Viper
	settingsFile string

	settings *config.Settings
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:   "sevpv",
		Short: "Severance liability calculator",
		Long: `Projects the present value of statutory severance obligations for every
employee in a payroll sheet, year by year until retirement, net of Clause 14
funding and decrement probabilities.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.settingsFile, "config", "", "settings file (yaml, json or toml)")
	flags.String("as-of", "", "evaluation date (YYYY-MM-DD or D.M.YYYY); overrides the assumptions file")
	flags.String("assumptions", "", "assumptions YAML file (defaults to the built-in assumption set)")
	flags.String("mortality", "", "mortality table (xlsx or csv); overrides the assumptions file")
	flags.String("archive", "", "SQLite file archiving calculated runs")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "console", "log format: console or json")
	flags.Int("workers", 0, "concurrent calculations (0 = one per CPU)")

	for key, flag := range map[string]string{
		"assumptions": "assumptions",
		"mortality":   "mortality",
		"as_of":       "as-of",
		"archive":     "archive",
		"log_level":   "log-level",
		"log_format":  "log-format",
		"workers":     "workers",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(
		a.calculateCmd(),
		a.breakdownCmd(),
		a.validateCmd(),
		a.assumptionsCmd(),
		a.serveCmd(),
		a.runsCmd(),
		versionCmd(),
	)
	return root
}

func (a *app) init() error {
	settings, err := config.LoadSettings(a.v, a.settingsFile)
	if err != nil {
		return err
	}
	logger, err := newLogger(settings.LogLevel, settings.LogFormat)
	if err != nil {
		return err
	}
	a.settings = settings
	a.logger = logger
	return nil
}

// loadAssumptions reads the assumptions file, or the defaults, and applies
// the as-of and mortality overrides from flags or the environment.
func (a *app) loadAssumptions() (*config.Assumptions, error) {
	assumptions := config.DefaultAssumptions()
	if path := a.settings.Assumptions; path != "" {
		loaded, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		assumptions = loaded
	}

	if raw := a.settings.AsOf; raw != "" {
		asOf, ok := dateutil.Parse(raw)
		if !ok {
			return nil, fmt.Errorf("invalid as-of date %q (--as-of or %s_AS_OF)", raw, config.EnvPrefix)
		}
		assumptions.AsOf = asOf
	}
	if a.settings.Mortality != "" {
		assumptions.Mortality.File = a.settings.Mortality
		assumptions.Mortality.Table = nil
	}
	return assumptions, nil
}

func (a *app) newEngine() (*config.Assumptions, *calculation.Engine, error) {
	assumptions, err := a.loadAssumptions()
	if err != nil {
		return nil, nil, err
	}
	engine, err := assumptions.NewEngine(a.settings.Workers)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build engine: %w", err)
	}
	engine.SetLogger(a.logger.Sugar())
	return assumptions, engine, nil
}

func (a *app) loadEmployees(path, sheet string) ([]domain.EmployeeRecord, error) {
	records, err := ingest.LoadEmployees(path, sheet)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("loaded employees", zap.String("file", path), zap.Int("count", len(records)))
	return records, nil
}

// openArchive opens the configured archive; required forces an error when none is configured.
func (a *app) openArchive(required bool) (store.Archive, error) {
	if a.settings.ArchivePath == "" {
		if required {
			return nil, fmt.Errorf("no archive configured: pass --archive or set %s_ARCHIVE", config.EnvPrefix)
		}
		return nil, nil
	}
	return store.NewSQLite(a.settings.ArchivePath)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sevpv %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

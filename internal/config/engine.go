package config

import (
	"errors"
	"fmt"

	"github.com/OrHava/economy-project/internal/actuarial"
	"github.com/OrHava/economy-project/internal/calculation"
	"github.com/OrHava/economy-project/internal/ingest"
)

// ErrNoMortality is returned when the assumptions name no mortality source.
var ErrNoMortality = errors.New("no mortality table: set mortality.file or mortality.table")

// MortalityTable returns the inline table, or reads the referenced sheet.
func (a *Assumptions) MortalityTable() (*actuarial.MortalityTable, error) {
	inline, err := a.InlineMortality()
	if err != nil {
		return nil, fmt.Errorf("mortality table: %w", err)
	}
	if inline != nil {
		return inline, nil
	}
	if a.Mortality.File == "" {
		return nil, ErrNoMortality
	}
	return ingest.ReadMortality(a.Mortality.File, a.Mortality.Sheet)
}

// NewEngine builds an engine from the assumptions. workers bounds batch
// concurrency; 0 means one worker per CPU.
func (a *Assumptions) NewEngine(workers int) (*calculation.Engine, error) {
	mortality, err := a.MortalityTable()
	if err != nil {
		return nil, err
	}
	tables, err := a.Tables(mortality)
	if err != nil {
		return nil, err
	}
	opts := a.Options()
	opts.Workers = workers
	return calculation.NewEngine(tables, opts)
}

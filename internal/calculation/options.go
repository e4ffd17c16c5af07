package calculation

import (
	"fmt"
	"runtime"
	"time"

	"github.com/shopspring/decimal"
)

// DiscountMode selects where per-year discount rates come from
type DiscountMode string

const (
	DiscountFlat  DiscountMode = "flat"
	DiscountCurve DiscountMode = "curve"
)

// DiscountTiming controls whether year t is discounted over t+1 or t periods
type DiscountTiming string

const (
	TimingEndOfYear   DiscountTiming = "end_of_year"
	TimingStartOfYear DiscountTiming = "start_of_year"
)

// AccrualRule selects how the severance benefit for a projection year is sized
type AccrualRule string

const (
	AccrualFixedMultiplier AccrualRule = "fixed_multiplier"
	AccrualServiceMonths   AccrualRule = "service_months"
)

// HorizonRule selects how many years are projected
type HorizonRule string

const (
	HorizonRetirementAge HorizonRule = "retirement_age"
	HorizonFixed         HorizonRule = "fixed"
)

// DeparturePolicy decides what a recorded departure does to the liability
type DeparturePolicy string

const (
	// DepartureZero reports employees who left before the as-of date with a zero liability.
	DepartureZero DeparturePolicy = "zero"
	// DeparturePartial keeps the years projected before the departure plus pre-existing amounts.
	DeparturePartial DeparturePolicy = "partial"
)

// Options are the economic and methodological assumptions of a run
type Options struct {
	// AsOf is the evaluation date. It is required; the engine never reads the clock.
	AsOf time.Time `json:"asOf"`

	SalaryGrowth   decimal.Decimal `json:"salaryGrowth"`
	RaiseFrequency int             `json:"raiseFrequency"`
	RaiseAnchor    time.Time       `json:"raiseAnchor"`

	Discount DiscountMode    `json:"discount"`
	FlatRate decimal.Decimal `json:"flatRate"`
	Timing   DiscountTiming  `json:"timing"`

	Accrual    AccrualRule     `json:"accrual"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Reduction  decimal.Decimal `json:"reduction"`

	Horizon              HorizonRule `json:"horizon"`
	FixedYears           int         `json:"fixedYears"`
	RetirementAgeMale    int         `json:"retirementAgeMale"`
	RetirementAgeFemale  int         `json:"retirementAgeFemale"`
	RetirementAgeDefault int         `json:"retirementAgeDefault"`

	Departure           DeparturePolicy `json:"departure"`
	ResignationEligible bool            `json:"resignationEligible"`
	IncludeDismissal    bool            `json:"includeDismissal"`

	// Workers bounds batch concurrency; 0 means one per CPU.
	Workers int `json:"workers"`
}

// DefaultOptions returns the reference assumption set evaluated at asOf.
func DefaultOptions(asOf time.Time) Options {
	return Options{
		AsOf:                 asOf,
		SalaryGrowth:         decimal.NewFromFloat(0.04),
		RaiseFrequency:       2,
		RaiseAnchor:          time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		Discount:             DiscountCurve,
		FlatRate:             decimal.NewFromFloat(0.05),
		Timing:               TimingEndOfYear,
		Accrual:              AccrualFixedMultiplier,
		Multiplier:           decimal.NewFromInt(30),
		Reduction:            decimal.Zero,
		Horizon:              HorizonRetirementAge,
		FixedYears:           30,
		RetirementAgeMale:    67,
		RetirementAgeFemale:  65,
		RetirementAgeDefault: 67,
		Departure:            DepartureZero,
		ResignationEligible:  true,
	}
}

// ConfigError reports an unusable option or table
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid configuration %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid configuration %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErr(field, format string, args ...interface{}) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate rejects option sets the engine cannot run with.
func (o Options) Validate() error {
	if o.AsOf.IsZero() {
		return configErr("as_of", "evaluation date is required")
	}
	if o.SalaryGrowth.IsNegative() {
		return configErr("salary_growth", "must not be negative, got %s", o.SalaryGrowth)
	}
	if o.RaiseFrequency < 1 {
		return configErr("raise_frequency", "must be at least 1, got %d", o.RaiseFrequency)
	}

	switch o.Discount {
	case DiscountFlat, DiscountCurve:
	default:
		return configErr("discount", "unknown mode %q", o.Discount)
	}
	if o.FlatRate.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return configErr("flat_rate", "must be above -100%%, got %s", o.FlatRate)
	}
	switch o.Timing {
	case TimingEndOfYear, TimingStartOfYear:
	default:
		return configErr("timing", "unknown timing %q", o.Timing)
	}

	switch o.Accrual {
	case AccrualFixedMultiplier, AccrualServiceMonths:
	default:
		return configErr("accrual", "unknown rule %q", o.Accrual)
	}
	if !o.Multiplier.IsPositive() {
		return configErr("multiplier", "must be positive, got %s", o.Multiplier)
	}
	if o.Reduction.IsNegative() || o.Reduction.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return configErr("reduction", "must be in [0, 1), got %s", o.Reduction)
	}

	switch o.Horizon {
	case HorizonRetirementAge, HorizonFixed:
	default:
		return configErr("horizon", "unknown rule %q", o.Horizon)
	}
	if o.Horizon == HorizonFixed && o.FixedYears < 1 {
		return configErr("fixed_years", "must be at least 1, got %d", o.FixedYears)
	}
	for field, age := range map[string]int{
		"retirement_age_male":    o.RetirementAgeMale,
		"retirement_age_female":  o.RetirementAgeFemale,
		"retirement_age_default": o.RetirementAgeDefault,
	} {
		if age < 1 || age > 120 {
			return configErr(field, "must be between 1 and 120, got %d", age)
		}
	}

	switch o.Departure {
	case DepartureZero, DeparturePartial:
	default:
		return configErr("departure", "unknown policy %q", o.Departure)
	}
	if o.Workers < 0 {
		return configErr("workers", "must not be negative, got %d", o.Workers)
	}
	return nil
}

// workerCount resolves the batch concurrency limit.
func (o Options) workerCount() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/OrHava/economy-project/internal/actuarial"
	"github.com/OrHava/economy-project/internal/calculation"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Assumptions is the YAML assumptions file: the economic options of a run
// plus the resignation bands, discount curve and mortality source.
type Assumptions struct {
	AsOf           time.Time       `yaml:"as_of,omitempty"`
	SalaryGrowth   decimal.Decimal `yaml:"salary_growth"`
	RaiseFrequency int             `yaml:"raise_frequency"`
	RaiseAnchor    time.Time       `yaml:"raise_anchor"`

	Discount DiscountAssumptions `yaml:"discount"`
	Accrual  AccrualAssumptions  `yaml:"accrual"`
	Horizon  HorizonAssumptions  `yaml:"horizon"`

	Departure           calculation.DeparturePolicy `yaml:"departure"`
	ResignationEligible bool                        `yaml:"resignation_eligible"`
	IncludeDismissal    bool                        `yaml:"include_dismissal"`

	Resignation ResignationAssumptions `yaml:"resignation"`
	Mortality   MortalityAssumptions   `yaml:"mortality"`
}

// DiscountAssumptions configures discounting
type DiscountAssumptions struct {
	Mode     calculation.DiscountMode   `yaml:"mode"`
	FlatRate decimal.Decimal            `yaml:"flat_rate"`
	Timing   calculation.DiscountTiming `yaml:"timing"`
	Curve    []decimal.Decimal          `yaml:"curve"`
	Fallback decimal.Decimal            `yaml:"fallback"`
}

// AccrualAssumptions configures the benefit accrual rule
type AccrualAssumptions struct {
	Rule       calculation.AccrualRule `yaml:"rule"`
	Multiplier decimal.Decimal         `yaml:"multiplier"`
	Reduction  decimal.Decimal         `yaml:"reduction"`
}

// HorizonAssumptions configures how many years are projected
type HorizonAssumptions struct {
	Rule                 calculation.HorizonRule `yaml:"rule"`
	FixedYears           int                     `yaml:"fixed_years"`
	RetirementAgeMale    int                     `yaml:"retirement_age_male"`
	RetirementAgeFemale  int                     `yaml:"retirement_age_female"`
	RetirementAgeDefault int                     `yaml:"retirement_age_default"`
}

// ResignationAssumptions holds the resignation bands
type ResignationAssumptions struct {
	DefaultRate decimal.Decimal             `yaml:"default_rate"`
	Bands       []actuarial.ResignationBand `yaml:"bands"`
}

// MortalityAssumptions points at a mortality sheet or carries the table inline
type MortalityAssumptions struct {
	File  string                     `yaml:"file,omitempty"`
	Sheet string                     `yaml:"sheet,omitempty"`
	Table []actuarial.MortalityEntry `yaml:"table,omitempty"`
}

// DefaultAssumptions returns the reference assumption set. It has no as-of
// date and no mortality source; both must be supplied before a run.
func DefaultAssumptions() *Assumptions {
	opts := calculation.DefaultOptions(time.Time{})
	return &Assumptions{
		SalaryGrowth:   opts.SalaryGrowth,
		RaiseFrequency: opts.RaiseFrequency,
		RaiseAnchor:    opts.RaiseAnchor,
		Discount: DiscountAssumptions{
			Mode:     opts.Discount,
			FlatRate: opts.FlatRate,
			Timing:   opts.Timing,
			Curve:    actuarial.DefaultCurveRates(),
			Fallback: actuarial.DefaultCurveFallback,
		},
		Accrual: AccrualAssumptions{
			Rule:       opts.Accrual,
			Multiplier: opts.Multiplier,
			Reduction:  opts.Reduction,
		},
		Horizon: HorizonAssumptions{
			Rule:                 opts.Horizon,
			FixedYears:           opts.FixedYears,
			RetirementAgeMale:    opts.RetirementAgeMale,
			RetirementAgeFemale:  opts.RetirementAgeFemale,
			RetirementAgeDefault: opts.RetirementAgeDefault,
		},
		Departure:           opts.Departure,
		ResignationEligible: opts.ResignationEligible,
		IncludeDismissal:    opts.IncludeDismissal,
		Resignation: ResignationAssumptions{
			DefaultRate: actuarial.DefaultResignationRate,
			Bands:       actuarial.DefaultResignationBands(),
		},
	}
}

// Options converts the assumptions into engine options.
func (a *Assumptions) Options() calculation.Options {
	return calculation.Options{
		AsOf:                 a.AsOf,
		SalaryGrowth:         a.SalaryGrowth,
		RaiseFrequency:       a.RaiseFrequency,
		RaiseAnchor:          a.RaiseAnchor,
		Discount:             a.Discount.Mode,
		FlatRate:             a.Discount.FlatRate,
		Timing:               a.Discount.Timing,
		Accrual:              a.Accrual.Rule,
		Multiplier:           a.Accrual.Multiplier,
		Reduction:            a.Accrual.Reduction,
		Horizon:              a.Horizon.Rule,
		FixedYears:           a.Horizon.FixedYears,
		RetirementAgeMale:    a.Horizon.RetirementAgeMale,
		RetirementAgeFemale:  a.Horizon.RetirementAgeFemale,
		RetirementAgeDefault: a.Horizon.RetirementAgeDefault,
		Departure:            a.Departure,
		ResignationEligible:  a.ResignationEligible,
		IncludeDismissal:     a.IncludeDismissal,
	}
}

// ResignationTable builds the resignation table.
func (a *Assumptions) ResignationTable() (*actuarial.ResignationTable, error) {
	return actuarial.NewResignationTable(a.Resignation.Bands, a.Resignation.DefaultRate)
}

// DiscountCurve builds the discount curve.
func (a *Assumptions) DiscountCurve() (*actuarial.DiscountCurve, error) {
	return actuarial.NewDiscountCurve(a.Discount.Curve, a.Discount.Fallback)
}

// InlineMortality builds the inline mortality table, or nil when the
// assumptions reference a mortality file instead.
func (a *Assumptions) InlineMortality() (*actuarial.MortalityTable, error) {
	if len(a.Mortality.Table) == 0 {
		return nil, nil
	}
	return actuarial.NewMortalityTable(a.Mortality.Table)
}

// Tables assembles the decrement tables, using mortality when the
// assumptions carry no inline table.
func (a *Assumptions) Tables(mortality *actuarial.MortalityTable) (actuarial.Tables, error) {
	inline, err := a.InlineMortality()
	if err != nil {
		return actuarial.Tables{}, fmt.Errorf("mortality table: %w", err)
	}
	if inline != nil {
		mortality = inline
	}
	resignation, err := a.ResignationTable()
	if err != nil {
		return actuarial.Tables{}, err
	}
	curve, err := a.DiscountCurve()
	if err != nil {
		return actuarial.Tables{}, err
	}
	return actuarial.Tables{Mortality: mortality, Resignation: resignation, Curve: curve}, nil
}

// InputParser handles parsing of assumptions files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile reads an assumptions file. Keys the file omits keep their
// default values, and a relative mortality file path is resolved against
// the directory of the assumptions file.
func (ip *InputParser) LoadFromFile(filename string) (*Assumptions, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	assumptions, err := ip.Parse(data)
	if err != nil {
		return nil, err
	}
	if f := assumptions.Mortality.File; f != "" && !filepath.IsAbs(f) {
		assumptions.Mortality.File = filepath.Join(filepath.Dir(filename), f)
	}
	return assumptions, nil
}

// Parse decodes and validates assumptions YAML on top of the defaults.
func (ip *InputParser) Parse(data []byte) (*Assumptions, error) {
	assumptions := DefaultAssumptions()
	if err := yaml.Unmarshal(data, assumptions); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(assumptions); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return assumptions, nil
}

// ValidateConfiguration checks options and tables. A missing as-of date is
// accepted here because the command line may still supply it.
func (ip *InputParser) ValidateConfiguration(a *Assumptions) error {
	opts := a.Options()
	if opts.AsOf.IsZero() {
		opts.AsOf = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	if _, err := a.ResignationTable(); err != nil {
		return fmt.Errorf("resignation bands validation failed: %w", err)
	}
	if _, err := a.DiscountCurve(); err != nil {
		return fmt.Errorf("discount curve validation failed: %w", err)
	}
	if _, err := a.InlineMortality(); err != nil {
		return fmt.Errorf("mortality table validation failed: %w", err)
	}
	if a.Mortality.File != "" && len(a.Mortality.Table) > 0 {
		return fmt.Errorf("mortality: set either file or table, not both")
	}
	return nil
}

// Marshal renders assumptions as YAML.
func Marshal(a *Assumptions) ([]byte, error) {
	return yaml.Marshal(a)
}

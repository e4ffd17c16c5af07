package calculation

import (
	"fmt"

	"github.com/OrHava/economy-project/internal/actuarial"
	"github.com/OrHava/economy-project/internal/domain"
	"github.com/OrHava/economy-project/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Engine projects severance liabilities for individual employees. It holds
// no per-employee state, so one Engine may serve concurrent callers.
type Engine struct {
	Logger Logger

	tables     actuarial.Tables
	opts       Options
	discounter *Discounter
}

// NewEngine validates the tables and options and returns a ready engine.
// Configuration problems surface here, before any employee is processed.
func NewEngine(tables actuarial.Tables, opts Options) (*Engine, error) {
	if err := tables.Validate(); err != nil {
		return nil, &ConfigError{Field: "tables", Reason: "incomplete decrement tables", Err: err}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	discounter, err := NewDiscounter(opts, tables.Curve)
	if err != nil {
		return nil, err
	}
	return &Engine{
		Logger:     NopLogger{},
		tables:     tables,
		opts:       opts,
		discounter: discounter,
	}, nil
}

// SetLogger sets the logger; nil restores the no-op logger.
func (e *Engine) SetLogger(logger Logger) {
	if logger == nil {
		logger = NopLogger{}
	}
	e.Logger = logger
}

// Options returns the assumptions the engine was built with.
func (e *Engine) Options() Options {
	return e.opts
}

// Tables returns the decrement tables the engine reads.
func (e *Engine) Tables() actuarial.Tables {
	return e.tables
}

// Discounter exposes the engine's discounting rule.
func (e *Engine) Discounter() *Discounter {
	return e.discounter
}

// Calculate returns the liability for one employee without the per-year steps.
func (e *Engine) Calculate(rec *domain.EmployeeRecord) *domain.LiabilityResult {
	return e.run(rec, false)
}

// Breakdown returns the liability for one employee together with every projection step.
func (e *Engine) Breakdown(rec *domain.EmployeeRecord) *domain.LiabilityResult {
	return e.run(rec, true)
}

// Horizon returns the number of projection years for an employee of the given gender and age.
func (e *Engine) Horizon(gender domain.Gender, age int) int {
	if e.opts.Horizon == HorizonFixed {
		return e.opts.FixedYears
	}
	retirement := e.opts.RetirementAgeDefault
	switch gender {
	case domain.GenderMale:
		retirement = e.opts.RetirementAgeMale
	case domain.GenderFemale:
		retirement = e.opts.RetirementAgeFemale
	}
	if years := retirement - age; years > 0 {
		return years
	}
	return 0
}

func (e *Engine) run(rec *domain.EmployeeRecord, withSteps bool) *domain.LiabilityResult {
	res := &domain.LiabilityResult{
		EmployeeID:     rec.ID,
		Status:         domain.StatusOK,
		ProjectedTotal: decimal.Zero,
		Total:          decimal.Zero,
	}
	asOf := e.opts.AsOf

	if rec.BirthDate == nil {
		return e.invalid(res, fmt.Sprintf("birth date missing or unparseable: %q", rec.RawBirthDate))
	}
	res.Age = dateutil.Age(*rec.BirthDate, asOf)
	if res.Age < 0 {
		return e.invalid(res, fmt.Sprintf("birth date %s is after the as-of date %s",
			dateutil.Format(*rec.BirthDate), dateutil.Format(asOf)))
	}

	if rec.Salary == nil {
		return e.invalid(res, fmt.Sprintf("salary missing or non-numeric: %q", rec.RawSalary))
	}
	if !rec.Salary.IsPositive() {
		return e.invalid(res, fmt.Sprintf("salary must be positive, got %s", rec.Salary))
	}

	percent := decimal.Zero
	if rec.Clause14Percent != nil {
		percent = *rec.Clause14Percent
	}
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return e.invalid(res, fmt.Sprintf("clause 14 percentage must be between 0 and 100, got %s", percent))
	}

	growth := e.opts.SalaryGrowth
	if rec.SalaryGrowth != nil {
		growth = *rec.SalaryGrowth
	}
	if growth.IsNegative() {
		return e.invalid(res, fmt.Sprintf("salary growth must not be negative, got %s", growth))
	}

	if e.opts.Departure == DepartureZero && rec.HasDeparted(asOf) {
		res.Status = domain.StatusDeparted
		res.Termination = domain.TerminationDeparted
		e.Logger.Debugf("employee %s departed on %s, liability is zero", rec.ID, dateutil.Format(*rec.DepartureDate))
		return res
	}
	if fullyFunded(percent, rec.Clause14Date, asOf) {
		res.Status = domain.StatusFullyFunded
		e.Logger.Debugf("employee %s is fully funded under clause 14", rec.ID)
		return res
	}

	res.Horizon = e.Horizon(rec.Gender, res.Age)
	eligible := e.opts.ResignationEligible
	if rec.ResignationEligible != nil {
		eligible = *rec.ResignationEligible
	}
	yearsBeforeVesting := YearsBeforeVesting(rec.HireDate, rec.Clause14Date)
	serviceMonths := 0
	if rec.HireDate != nil {
		serviceMonths = dateutil.MonthsBetween(*rec.HireDate, asOf)
	}

	if withSteps {
		res.Steps = make([]domain.ProjectionStep, 0, res.Horizon)
	}

	res.Termination = domain.TerminationExhausted
	for t := 0; t < res.Horizon; t++ {
		if rec.DepartureDate != nil && rec.DepartureDate.Before(asOf.AddDate(t, 0, 0)) {
			res.Termination = domain.TerminationDeparted
			break
		}

		futureAge := res.Age + t
		salary := ProjectSalary(*rec.Salary, growth, e.opts.RaiseFrequency, e.opts.RaiseAnchor, asOf, t)
		survival := SurvivalProbability(e.tables.Mortality, res.Age, t+1)
		dec := CombinedRate(e.tables, futureAge+1, eligible, e.opts.IncludeDismissal)
		benefit := e.benefit(salary, serviceMonths, t)
		c14 := Clause14Factor(t, yearsBeforeVesting, percent)

		pv := e.discounter.PresentValue(benefit.Mul(survival).Mul(dec.Combined).Mul(c14), t)
		res.ProjectedTotal = res.ProjectedTotal.Add(pv)
		res.YearsProjected++

		if withSteps {
			res.Steps = append(res.Steps, domain.ProjectionStep{
				Year:                t + 1,
				Age:                 futureAge,
				ProjectedSalary:     salary,
				SurvivalProbability: survival,
				MortalityRate:       dec.Mortality,
				ResignationRate:     dec.Resignation,
				DismissalRate:       dec.Dismissal,
				CombinedRate:        dec.Combined,
				DiscountRate:        e.discounter.Rate(t),
				DiscountFactor:      e.discounter.Factor(t),
				Benefit:             benefit,
				Clause14Factor:      c14,
				PresentValue:        pv,
			})
		}
	}

	res.PreExisting = rec.PreExistingAmounts()
	res.Total = res.ProjectedTotal
	for _, amount := range res.PreExisting {
		res.Total = res.Total.Add(amount.Amount)
	}

	e.Logger.Debugf("employee %s: %d of %d years projected (%s), total %s",
		rec.ID, res.YearsProjected, res.Horizon, res.Termination, res.Total.StringFixed(2))
	return res
}

// benefit sizes the severance payable if the employee exits in year t.
func (e *Engine) benefit(salary decimal.Decimal, serviceMonths, t int) decimal.Decimal {
	if e.opts.Accrual == AccrualServiceMonths {
		months := decimal.NewFromInt(int64(serviceMonths + 12*(t+1)))
		return salary.Mul(months).Div(decimal.NewFromInt(12))
	}
	return salary.Mul(e.opts.Multiplier).Mul(one.Sub(e.opts.Reduction))
}

func (e *Engine) invalid(res *domain.LiabilityResult, reason string) *domain.LiabilityResult {
	res.Status = domain.StatusInvalid
	res.InvalidReason = reason
	e.Logger.Warnf("employee %s: invalid record: %s", res.EmployeeID, reason)
	return res
}

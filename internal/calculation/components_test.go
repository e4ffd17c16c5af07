package calculation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/OrHava/economy-project/internal/actuarial"
	"github.com/OrHava/economy-project/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, expected int
	}{
		{0, 2, 0}, {1, 2, 0}, {2, 2, 1}, {5, 2, 2},
		{-1, 2, -1}, {-2, 2, -1}, {-3, 2, -2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, floorDiv(tt.a, tt.b), "floor(%d/%d)", tt.a, tt.b)
	}
}

func TestRaiseCount(t *testing.T) {
	anchor := date(2025, time.June, 30)

	t.Run("after anchor", func(t *testing.T) {
		asOf := date(2026, time.January, 1)
		for tYear, expected := range []int{0, 0, 1, 1, 2, 2, 3} {
			assert.Equal(t, expected, RaiseCount(2, anchor, asOf, tYear), "t=%d", tYear)
		}
	})

	t.Run("before anchor", func(t *testing.T) {
		asOf := date(2025, time.January, 1)
		for tYear, expected := range []int{-1, 0, 0, 1, 1, 2, 2} {
			assert.Equal(t, expected, RaiseCount(2, anchor, asOf, tYear), "t=%d", tYear)
		}
	})

	t.Run("yearly raises", func(t *testing.T) {
		assert.Equal(t, 4, RaiseCount(1, anchor, date(2026, time.January, 1), 4))
	})
}

func TestProjectSalary(t *testing.T) {
	base := decimal.NewFromInt(10000)
	growth := decimal.NewFromFloat(0.04)
	anchor := date(2025, time.June, 30)
	asOf := date(2026, time.January, 1)

	assert.True(t, ProjectSalary(base, growth, 2, anchor, asOf, 0).Equal(base))
	assert.True(t, ProjectSalary(base, growth, 2, anchor, asOf, 2).Equal(decimal.NewFromInt(10400)))
	assert.True(t, ProjectSalary(base, growth, 2, anchor, asOf, 4).Equal(decimal.NewFromInt(10816)))

	preAnchor := ProjectSalary(base, growth, 2, anchor, date(2025, time.January, 1), 0)
	assert.InDelta(t, 9615.38, preAnchor.InexactFloat64(), 0.01)

	assert.True(t, ProjectSalary(base, decimal.Zero, 2, anchor, asOf, 10).Equal(base), "zero growth keeps the salary flat")
}

func TestSurvivalProbability(t *testing.T) {
	mortality := linearMortality(t)

	assert.True(t, SurvivalProbability(mortality, 40, 0).Equal(decimal.NewFromInt(1)))
	assert.True(t, SurvivalProbability(mortality, 40, 1).Equal(decimal.NewFromFloat(0.999)))
	assert.True(t, SurvivalProbability(mortality, 40, 2).Equal(decimal.NewFromFloat(0.999).Mul(decimal.NewFromFloat(0.998))))
	assert.True(t, SurvivalProbability(mortality, 20, 10).Equal(decimal.NewFromInt(1)), "ages outside the table have no mortality")

	prev := decimal.NewFromInt(1)
	for years := 1; years <= 45; years++ {
		p := SurvivalProbability(mortality, 40, years)
		assert.True(t, p.LessThanOrEqual(prev), "survival must not increase with the horizon (years=%d)", years)
		assert.False(t, p.IsNegative())
		prev = p
	}
}

func TestCombinedRate(t *testing.T) {
	tables := actuarial.Tables{Mortality: linearMortality(t), Resignation: actuarial.DefaultResignationTable()}

	tests := []struct {
		name      string
		age       int
		eligible  bool
		dismissal bool
		expected  float64
	}{
		{name: "eligible", age: 41, eligible: true, expected: 0.102},
		{name: "not eligible", age: 41, eligible: false, expected: 0.002},
		{name: "with dismissal", age: 41, eligible: true, dismissal: true, expected: 0.142},
		{name: "young band", age: 25, eligible: true, expected: 0.20},
		{name: "outside bands uses default", age: 70, eligible: true, expected: 0.131},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CombinedRate(tables, tt.age, tt.eligible, tt.dismissal)
			assert.True(t, d.Combined.Equal(decimal.NewFromFloat(tt.expected)), "got %s", d.Combined)
			assert.True(t, d.Combined.Equal(d.Mortality.Add(d.Resignation).Add(d.Dismissal)))
		})
	}
}

func TestYearsBeforeVesting(t *testing.T) {
	hire := date(2015, time.January, 1)

	assert.Equal(t, 3, YearsBeforeVesting(&hire, timePtr(date(2018, time.January, 1))))
	assert.Equal(t, 2, YearsBeforeVesting(&hire, timePtr(date(2017, time.December, 31))))
	assert.Equal(t, 0, YearsBeforeVesting(&hire, timePtr(date(2010, time.January, 1))), "vesting before hire")
	assert.Equal(t, 0, YearsBeforeVesting(&hire, nil))
	assert.Equal(t, 0, YearsBeforeVesting(nil, timePtr(date(2018, time.January, 1))))
}

func TestClause14Factor(t *testing.T) {
	tests := []struct {
		name     string
		t        int
		ybv      int
		percent  int64
		expected float64
	}{
		{name: "before vesting", t: 2, ybv: 3, percent: 72, expected: 1},
		{name: "at vesting", t: 3, ybv: 3, percent: 72, expected: 0.28},
		{name: "no clause 14", t: 0, ybv: 0, percent: 0, expected: 1},
		{name: "fully funded", t: 5, ybv: 0, percent: 100, expected: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Clause14Factor(tt.t, tt.ybv, decimal.NewFromInt(tt.percent))
			assert.True(t, f.Equal(decimal.NewFromFloat(tt.expected)), "got %s", f)
		})
	}
}

func TestDiscounter(t *testing.T) {
	opts := testOptions()
	flat, err := NewDiscounter(opts, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, flat.Periods(0))
	assert.True(t, flat.Factor(0).Equal(decimal.NewFromFloat(1.04)))
	assert.True(t, flat.Factor(1).Equal(decimal.NewFromFloat(1.0816)))

	opts.Timing = TimingStartOfYear
	legacy, err := NewDiscounter(opts, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, legacy.Periods(0))
	assert.True(t, legacy.Factor(0).Equal(decimal.NewFromInt(1)), "year 0 is not discounted at the start of the year")

	opts = testOptions()
	opts.Discount = DiscountCurve
	curve, err := NewDiscounter(opts, actuarial.DefaultDiscountCurve())
	require.NoError(t, err)
	assert.True(t, curve.Rate(0).Equal(decimal.NewFromFloat(0.0181)))
	assert.True(t, curve.Rate(60).Equal(decimal.NewFromFloat(0.05)))
}

func TestDiscounter_PresentValueRoundTrip(t *testing.T) {
	opts := testOptions()
	opts.Discount = DiscountCurve
	d, err := NewDiscounter(opts, actuarial.DefaultDiscountCurve())
	require.NoError(t, err)

	nominal := decimal.NewFromInt(250000)
	for _, year := range []int{0, 1, 10, 46, 47, 55} {
		pv := d.PresentValue(nominal, year)
		back := pv.Mul(d.Factor(year))
		assert.InDelta(t, nominal.InexactFloat64(), back.InexactFloat64(), 0.0001, "year %d", year)
		assert.True(t, pv.LessThan(nominal), "positive rates shrink the value (year %d)", year)
	}
}

func TestOptions_Validate(t *testing.T) {
	assert.NoError(t, DefaultOptions(date(2026, time.January, 1)).Validate())

	tests := []struct {
		name   string
		field  string
		modify func(*Options)
	}{
		{name: "missing as-of", field: "as_of", modify: func(o *Options) { o.AsOf = time.Time{} }},
		{name: "negative growth", field: "salary_growth", modify: func(o *Options) { o.SalaryGrowth = decimal.NewFromFloat(-0.01) }},
		{name: "zero raise frequency", field: "raise_frequency", modify: func(o *Options) { o.RaiseFrequency = 0 }},
		{name: "unknown discount mode", field: "discount", modify: func(o *Options) { o.Discount = "monthly" }},
		{name: "flat rate at -100%", field: "flat_rate", modify: func(o *Options) { o.FlatRate = decimal.NewFromInt(-1) }},
		{name: "unknown timing", field: "timing", modify: func(o *Options) { o.Timing = "mid_year" }},
		{name: "unknown accrual", field: "accrual", modify: func(o *Options) { o.Accrual = "percent" }},
		{name: "zero multiplier", field: "multiplier", modify: func(o *Options) { o.Multiplier = decimal.Zero }},
		{name: "reduction of one", field: "reduction", modify: func(o *Options) { o.Reduction = decimal.NewFromInt(1) }},
		{name: "unknown horizon", field: "horizon", modify: func(o *Options) { o.Horizon = "forever" }},
		{name: "fixed horizon of zero", field: "fixed_years", modify: func(o *Options) {
			o.Horizon = HorizonFixed
			o.FixedYears = 0
		}},
		{name: "retirement age out of range", field: "retirement_age_female", modify: func(o *Options) { o.RetirementAgeFemale = 0 }},
		{name: "unknown departure policy", field: "departure", modify: func(o *Options) { o.Departure = "ignore" }},
		{name: "negative workers", field: "workers", modify: func(o *Options) { o.Workers = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions(date(2026, time.January, 1))
			tt.modify(&opts)

			err := opts.Validate()

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "expected a ConfigError, got %v", err)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestCalculateBatch(t *testing.T) {
	opts := testOptions()
	opts.Workers = 3
	engine := newTestEngine(t, opts)

	var records []domain.EmployeeRecord
	for i := 0; i < 20; i++ {
		rec := baseRecord()
		rec.ID = string(rune('A' + i))
		if i == 7 {
			rec.Salary = nil
			rec.RawSalary = "abc"
		}
		records = append(records, *rec)
	}

	rows, err := engine.CalculateBatch(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, rows, 20)

	for i, row := range rows {
		assert.Equal(t, records[i].ID, row.EmployeeID, "rows keep input order")
		if i == 7 {
			assert.Equal(t, domain.StatusInvalid, row.Status)
			assert.Equal(t, domain.InvalidMarker, row.LiabilityText)
			assert.Equal(t, "abc", row.Salary)
			continue
		}
		assert.Equal(t, domain.StatusOK, row.Status)
		assert.Equal(t, "474551.88", row.LiabilityText)
	}
}

func TestCalculateBatch_Empty(t *testing.T) {
	rows, err := newTestEngine(t, testOptions()).CalculateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCalculateBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine(t, testOptions()).CalculateBatch(ctx, []domain.EmployeeRecord{*baseRecord()})
	assert.ErrorIs(t, err, context.Canceled)
}

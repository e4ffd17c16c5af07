package calculation

import (
	"time"

	"github.com/OrHava/economy-project/pkg/dateutil"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// YearsBeforeVesting counts the whole years of service before Clause 14 took
// effect. No vesting date, or no hire date, means Clause 14 applies from year 0.
func YearsBeforeVesting(hire, vesting *time.Time) int {
	if hire == nil || vesting == nil {
		return 0
	}
	if years := dateutil.WholeYears(*hire, *vesting); years > 0 {
		return years
	}
	return 0
}

// Clause14Factor is the share of the year-t liability the employer still
// carries: all of it before vesting, (100 - percent)/100 afterwards.
func Clause14Factor(t, yearsBeforeVesting int, percent decimal.Decimal) decimal.Decimal {
	if t < yearsBeforeVesting {
		return one
	}
	return hundred.Sub(percent).Div(hundred)
}

// fullyFunded reports whether Clause 14 covers the whole obligation at asOf.
func fullyFunded(percent decimal.Decimal, vesting *time.Time, asOf time.Time) bool {
	if !percent.Equal(hundred) {
		return false
	}
	return vesting == nil || !vesting.After(asOf)
}

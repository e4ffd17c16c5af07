package calculation

import (
	"time"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// RaiseCount returns how many raises have been applied by projection year t.
// Before the anchor date the first raise is still pending, which shifts the
// count back by one year (t = 0 gives -1).
func RaiseCount(frequency int, anchor, asOf time.Time, t int) int {
	if frequency < 1 {
		frequency = 1
	}
	if asOf.Before(anchor) {
		return floorDiv(t-1, frequency)
	}
	return floorDiv(t, frequency)
}

// ProjectSalary compounds base by growth once per completed raise period.
func ProjectSalary(base, growth decimal.Decimal, frequency int, anchor, asOf time.Time, t int) decimal.Decimal {
	r := RaiseCount(frequency, anchor, asOf, t)
	if r == 0 {
		return base
	}
	return base.Mul(one.Add(growth).Pow(decimal.NewFromInt(int64(r))))
}

// floorDiv rounds toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

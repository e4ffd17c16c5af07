package calculation

import (
	"github.com/OrHava/economy-project/internal/actuarial"
	"github.com/shopspring/decimal"
)

// Decrement is the set of exit probabilities applied at one age
type Decrement struct {
	Mortality   decimal.Decimal
	Resignation decimal.Decimal
	Dismissal   decimal.Decimal
	Combined    decimal.Decimal
}

// SurvivalProbability returns the probability that someone aged age is still
// alive after years years: the product of (1 - qx) over age .. age+years-1.
func SurvivalProbability(mortality *actuarial.MortalityTable, age, years int) decimal.Decimal {
	p := one
	for i := 0; i < years; i++ {
		p = p.Mul(one.Sub(mortality.Rate(age + i)))
	}
	return p
}

// CombinedRate sums the decrements at age. Resignation counts only for
// eligible employees; dismissal only when includeDismissal is set.
func CombinedRate(tables actuarial.Tables, age int, eligible, includeDismissal bool) Decrement {
	d := Decrement{
		Mortality:   tables.Mortality.Rate(age),
		Resignation: decimal.Zero,
		Dismissal:   decimal.Zero,
	}
	if eligible {
		d.Resignation = tables.Resignation.Rate(age)
	}
	if includeDismissal {
		d.Dismissal = tables.Resignation.DismissalRate(age)
	}
	d.Combined = d.Mortality.Add(d.Resignation).Add(d.Dismissal)
	return d
}

package calculation

import (
	"github.com/OrHava/economy-project/internal/actuarial"
	"github.com/shopspring/decimal"
)

// Discounter converts nominal amounts due in projection year t to present value
type Discounter struct {
	mode   DiscountMode
	flat   decimal.Decimal
	curve  *actuarial.DiscountCurve
	timing DiscountTiming
}

// NewDiscounter builds a discounter for the given options. A curve is
// required when the options select curve discounting.
func NewDiscounter(opts Options, curve *actuarial.DiscountCurve) (*Discounter, error) {
	if opts.Discount == DiscountCurve && curve == nil {
		return nil, configErr("discount", "curve discounting selected but no discount curve was loaded")
	}
	return &Discounter{
		mode:   opts.Discount,
		flat:   opts.FlatRate,
		curve:  curve,
		timing: opts.Timing,
	}, nil
}

// Rate returns the annual rate applied to year t.
func (d *Discounter) Rate(t int) decimal.Decimal {
	if d.mode == DiscountCurve {
		return d.curve.Rate(t)
	}
	return d.flat
}

// Periods returns the number of compounding periods for year t.
func (d *Discounter) Periods(t int) int {
	if d.timing == TimingStartOfYear {
		return t
	}
	return t + 1
}

// Factor returns (1 + rate)^periods for year t.
func (d *Discounter) Factor(t int) decimal.Decimal {
	periods := d.Periods(t)
	if periods == 0 {
		return one
	}
	return one.Add(d.Rate(t)).Pow(decimal.NewFromInt(int64(periods)))
}

// PresentValue discounts nominal due in year t.
func (d *Discounter) PresentValue(nominal decimal.Decimal, t int) decimal.Decimal {
	return nominal.Div(d.Factor(t))
}

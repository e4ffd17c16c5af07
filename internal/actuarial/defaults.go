package actuarial

import "github.com/shopspring/decimal"

// Reference assumption set used when no assumptions file overrides it.
var (
	// DefaultResignationRate applies to ages outside every resignation band.
	DefaultResignationRate = decimal.NewFromFloat(0.10)
	// DefaultCurveFallback is the flat rate used past the end of the curve.
	DefaultCurveFallback = decimal.NewFromFloat(0.05)
)

var defaultCurve = []float64{
	0.0181, 0.0199, 0.0211, 0.0221, 0.023, 0.0239, 0.0246, 0.0253, 0.026, 0.0267,
	0.0274, 0.028, 0.0286, 0.0292, 0.0299, 0.0305, 0.0311, 0.0317, 0.0323, 0.0329,
	0.0335, 0.0341, 0.0348, 0.0354, 0.036, 0.0366, 0.0372, 0.0378, 0.0384, 0.0391,
	0.0397, 0.0403, 0.0409, 0.0415, 0.0421, 0.0427, 0.0434, 0.044, 0.0446, 0.0452,
	0.0458, 0.0464, 0.047, 0.0476, 0.0483, 0.0489, 0.0495,
}

// DefaultCurveRates returns the reference yearly spot rates.
func DefaultCurveRates() []decimal.Decimal {
	rates := make([]decimal.Decimal, len(defaultCurve))
	for i, r := range defaultCurve {
		rates[i] = decimal.NewFromFloat(r)
	}
	return rates
}

// DefaultResignationBands returns the reference resignation and dismissal bands.
func DefaultResignationBands() []ResignationBand {
	band := func(minAge, maxAge int, dismissal, resignation float64) ResignationBand {
		return ResignationBand{
			MinAge:      minAge,
			MaxAge:      maxAge,
			Resignation: decimal.NewFromFloat(resignation),
			Dismissal:   decimal.NewFromFloat(dismissal),
		}
	}
	return []ResignationBand{
		band(18, 29, 0.07, 0.20),
		band(30, 39, 0.05, 0.13),
		band(40, 49, 0.04, 0.10),
		band(50, 59, 0.03, 0.07),
		band(60, 67, 0.02, 0.03),
	}
}

// DefaultResignationTable builds the reference resignation table.
func DefaultResignationTable() *ResignationTable {
	t, err := NewResignationTable(DefaultResignationBands(), DefaultResignationRate)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultDiscountCurve builds the reference discount curve.
func DefaultDiscountCurve() *DiscountCurve {
	c, err := NewDiscountCurve(DefaultCurveRates(), DefaultCurveFallback)
	if err != nil {
		panic(err)
	}
	return c
}

// Package actuarial holds the read-only reference tables shared by every
// liability run: mortality, resignation bands and the discount curve.
// Tables are validated on construction and never mutated afterwards, so they
// are safe for concurrent readers without locking.
package actuarial

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

var (
	zero = decimal.Zero
	one  = decimal.NewFromInt(1)
)

// MortalityEntry is one (age, qx) row of a mortality table
type MortalityEntry struct {
	Age int             `yaml:"age" json:"age"`
	QX  decimal.Decimal `yaml:"qx" json:"qx"`
}

// MortalityTable maps an integer age to the probability of death within the year
type MortalityTable struct {
	rates map[int]decimal.Decimal
}

// NewMortalityTable builds a table from entries. Ages need not be contiguous,
// but each may appear only once, and every qx must lie in [0, 1].
func NewMortalityTable(entries []MortalityEntry) (*MortalityTable, error) {
	rates := make(map[int]decimal.Decimal, len(entries))
	for _, e := range entries {
		if e.Age < 0 {
			return nil, fmt.Errorf("mortality: negative age %d", e.Age)
		}
		if e.QX.LessThan(zero) || e.QX.GreaterThan(one) {
			return nil, fmt.Errorf("mortality: qx for age %d must be between 0 and 1, got %s", e.Age, e.QX)
		}
		if _, dup := rates[e.Age]; dup {
			return nil, fmt.Errorf("mortality: duplicate age %d", e.Age)
		}
		rates[e.Age] = e.QX
	}
	return &MortalityTable{rates: rates}, nil
}

// Rate returns qx for age. Ages missing from the table have no mortality.
func (m *MortalityTable) Rate(age int) decimal.Decimal {
	if m == nil {
		return zero
	}
	if q, ok := m.rates[age]; ok {
		return q
	}
	return zero
}

// Len returns the number of ages in the table.
func (m *MortalityTable) Len() int {
	if m == nil {
		return 0
	}
	return len(m.rates)
}

// Entries returns the table rows ordered by age.
func (m *MortalityTable) Entries() []MortalityEntry {
	if m == nil {
		return nil
	}
	entries := make([]MortalityEntry, 0, len(m.rates))
	for age, q := range m.rates {
		entries = append(entries, MortalityEntry{Age: age, QX: q})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Age < entries[j].Age })
	return entries
}

// ResignationBand is an inclusive age band with its exit probabilities
type ResignationBand struct {
	MinAge      int             `yaml:"min_age" json:"minAge"`
	MaxAge      int             `yaml:"max_age" json:"maxAge"`
	Resignation decimal.Decimal `yaml:"resignation" json:"resignation"`
	Dismissal   decimal.Decimal `yaml:"dismissal" json:"dismissal"`
}

// Contains reports whether age falls inside the band.
func (b ResignationBand) Contains(age int) bool {
	return age >= b.MinAge && age <= b.MaxAge
}

// ResignationTable looks up resignation and dismissal probabilities by age band
type ResignationTable struct {
	bands       []ResignationBand
	defaultRate decimal.Decimal
}

// NewResignationTable validates that bands are increasing and non-overlapping
// and that all rates are probabilities. defaultRate applies to ages outside every band.
func NewResignationTable(bands []ResignationBand, defaultRate decimal.Decimal) (*ResignationTable, error) {
	if defaultRate.LessThan(zero) || defaultRate.GreaterThan(one) {
		return nil, fmt.Errorf("resignation: default rate must be between 0 and 1, got %s", defaultRate)
	}
	for i, b := range bands {
		if b.MinAge > b.MaxAge {
			return nil, fmt.Errorf("resignation: band %d has min age %d above max age %d", i, b.MinAge, b.MaxAge)
		}
		if b.Resignation.LessThan(zero) || b.Resignation.GreaterThan(one) {
			return nil, fmt.Errorf("resignation: band %d-%d resignation rate must be between 0 and 1", b.MinAge, b.MaxAge)
		}
		if b.Dismissal.LessThan(zero) || b.Dismissal.GreaterThan(one) {
			return nil, fmt.Errorf("resignation: band %d-%d dismissal rate must be between 0 and 1", b.MinAge, b.MaxAge)
		}
		if i > 0 && b.MinAge <= bands[i-1].MaxAge {
			return nil, fmt.Errorf("resignation: band %d-%d overlaps or precedes band %d-%d",
				b.MinAge, b.MaxAge, bands[i-1].MinAge, bands[i-1].MaxAge)
		}
	}
	return &ResignationTable{
		bands:       append([]ResignationBand(nil), bands...),
		defaultRate: defaultRate,
	}, nil
}

// Band returns the band containing age.
func (r *ResignationTable) Band(age int) (ResignationBand, bool) {
	if r == nil {
		return ResignationBand{}, false
	}
	for _, b := range r.bands {
		if b.Contains(age) {
			return b, true
		}
	}
	return ResignationBand{}, false
}

// Rate returns the resignation probability for age, or the default rate when no band matches.
func (r *ResignationTable) Rate(age int) decimal.Decimal {
	if b, ok := r.Band(age); ok {
		return b.Resignation
	}
	if r == nil {
		return zero
	}
	return r.defaultRate
}

// DismissalRate returns the dismissal probability for age; zero outside every band.
func (r *ResignationTable) DismissalRate(age int) decimal.Decimal {
	if b, ok := r.Band(age); ok {
		return b.Dismissal
	}
	return zero
}

// DefaultRate returns the rate used for unmatched ages.
func (r *ResignationTable) DefaultRate() decimal.Decimal {
	return r.defaultRate
}

// Bands returns a copy of the configured bands.
func (r *ResignationTable) Bands() []ResignationBand {
	return append([]ResignationBand(nil), r.bands...)
}

// DiscountCurve holds per-year spot rates indexed by projection year offset
type DiscountCurve struct {
	rates    []decimal.Decimal
	fallback decimal.Decimal
}

// NewDiscountCurve builds a curve. Offsets past the last rate use fallback.
func NewDiscountCurve(rates []decimal.Decimal, fallback decimal.Decimal) (*DiscountCurve, error) {
	minusOne := one.Neg()
	if fallback.LessThanOrEqual(minusOne) {
		return nil, fmt.Errorf("discount curve: fallback rate must be above -100%%, got %s", fallback)
	}
	for i, r := range rates {
		if r.LessThanOrEqual(minusOne) {
			return nil, fmt.Errorf("discount curve: rate at offset %d must be above -100%%, got %s", i, r)
		}
	}
	return &DiscountCurve{
		rates:    append([]decimal.Decimal(nil), rates...),
		fallback: fallback,
	}, nil
}

// Rate returns the spot rate for offset t, or the fallback once the curve is exhausted.
func (c *DiscountCurve) Rate(t int) decimal.Decimal {
	if t >= 0 && t < len(c.rates) {
		return c.rates[t]
	}
	return c.fallback
}

// Len returns the number of explicit rates.
func (c *DiscountCurve) Len() int {
	return len(c.rates)
}

// Fallback returns the rate used beyond the end of the curve.
func (c *DiscountCurve) Fallback() decimal.Decimal {
	return c.fallback
}

// Rates returns a copy of the explicit rates.
func (c *DiscountCurve) Rates() []decimal.Decimal {
	return append([]decimal.Decimal(nil), c.rates...)
}

// Tables bundles the reference data for a calculation run
type Tables struct {
	Mortality   *MortalityTable
	Resignation *ResignationTable
	// Curve is only consulted when the engine discounts with a curve.
	Curve *DiscountCurve
}

// Validate checks that the required tables are present.
func (t Tables) Validate() error {
	if t.Mortality == nil {
		return fmt.Errorf("mortality table is required")
	}
	if t.Resignation == nil {
		return fmt.Errorf("resignation table is required")
	}
	return nil
}

package ingest

import (
	"strings"
	"time"

	"github.com/OrHava/economy-project/internal/domain"
	"github.com/OrHava/economy-project/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// RawRecord is one sheet row keyed by trimmed header text
type RawRecord map[string]string

// Canonical re-keys a raw record by canonical field names. Unknown headers are dropped.
func (r RawRecord) Canonical() map[string]string {
	out := make(map[string]string, len(r))
	for header, value := range r {
		if key, ok := CanonicalHeader(header); ok {
			out[key] = strings.TrimSpace(value)
		}
	}
	return out
}

// Normalize converts a raw row into an EmployeeRecord. Salary and birth date
// that fail to parse are left nil with the raw text kept, so the engine can
// report the row as invalid instead of the reader dropping it.
func Normalize(raw RawRecord) domain.EmployeeRecord {
	f := raw.Canonical()

	rec := domain.EmployeeRecord{
		ID:              f[FieldID],
		FirstName:       f[FieldFirstName],
		LastName:        f[FieldLastName],
		Gender:          domain.ParseGender(f[FieldGender]),
		DepartureReason: f[FieldDepartureReason],

		HireDate:      parseDate(f[FieldHireDate]),
		Clause14Date:  parseDate(f[FieldClause14Date]),
		DepartureDate: parseDate(f[FieldDepartureDate]),

		Clause14Percent:      parseAmount(f[FieldClause14Percent]),
		AssetValue:           parseAmount(f[FieldAssetValue]),
		Deposits:             parseAmount(f[FieldDeposits]),
		AssetPayment:         parseAmount(f[FieldAssetPayment]),
		SupplementaryPayment: parseAmount(f[FieldSupplementaryPayment]),
		SalaryGrowth:         parseAmount(f[FieldSalaryGrowth]),
		ResignationEligible:  parseBool(f[FieldResignationEligible]),
	}

	if rec.BirthDate = parseDate(f[FieldBirthDate]); rec.BirthDate == nil {
		rec.RawBirthDate = f[FieldBirthDate]
	}
	if rec.Salary = parseAmount(f[FieldSalary]); rec.Salary == nil {
		rec.RawSalary = f[FieldSalary]
	}
	return rec
}

// NormalizeAll normalizes every row in order.
func NormalizeAll(raws []RawRecord) []domain.EmployeeRecord {
	records := make([]domain.EmployeeRecord, len(raws))
	for i, raw := range raws {
		records[i] = Normalize(raw)
	}
	return records
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, ok := dateutil.Parse(raw)
	if !ok {
		return nil
	}
	return &t
}

// parseAmount accepts thousands separators, a trailing percent sign and
// surrounding currency symbols.
func parseAmount(raw string) *decimal.Decimal {
	cleaned := strings.NewReplacer(",", "", "%", "", "₪", "", "$", "", " ", "").Replace(raw)
	if cleaned == "" {
		return nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}
	return &d
}

func parseBool(raw string) *bool {
	var v bool
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "כן":
		v = true
	case "0", "false", "no", "n", "לא":
		v = false
	default:
		return nil
	}
	return &v
}

package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Gender determines the statutory retirement age used for the projection horizon
type Gender string

const (
	GenderUnknown Gender = ""
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
)

// ParseGender maps the spellings found in employee sheets to a Gender.
func ParseGender(raw string) Gender {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "m", "male", "man", "ז", "זכר":
		return GenderMale
	case "f", "female", "woman", "נ", "נקבה":
		return GenderFemale
	default:
		return GenderUnknown
	}
}

// EmployeeRecord holds one employee's normalized inputs for a liability calculation.
// Optional fields are pointers: a nil value means the sheet left the field empty,
// which is not the same as zero.
type EmployeeRecord struct {
	ID        string `yaml:"id" json:"id"`
	FirstName string `yaml:"first_name" json:"firstName"`
	LastName  string `yaml:"last_name" json:"lastName"`
	Gender    Gender `yaml:"gender" json:"gender"`

	// BirthDate and Salary are nil when the raw value could not be normalized.
	BirthDate *time.Time       `yaml:"birth_date" json:"birthDate"`
	HireDate  *time.Time       `yaml:"hire_date" json:"hireDate"`
	Salary    *decimal.Decimal `yaml:"salary" json:"salary"`

	// Raw text of fields that failed normalization, kept for the invalid marker.
	RawSalary    string `yaml:"-" json:"rawSalary,omitempty"`
	RawBirthDate string `yaml:"-" json:"rawBirthDate,omitempty"`

	Clause14Date    *time.Time       `yaml:"clause14_date" json:"clause14Date"`
	Clause14Percent *decimal.Decimal `yaml:"clause14_percent" json:"clause14Percent"`

	DepartureDate   *time.Time `yaml:"departure_date" json:"departureDate"`
	DepartureReason string     `yaml:"departure_reason" json:"departureReason"`

	// SalaryGrowth overrides the engine's default growth rate for this employee.
	SalaryGrowth *decimal.Decimal `yaml:"salary_growth" json:"salaryGrowth"`
	// ResignationEligible overrides the engine's default eligibility for
	// resignation-triggered severance.
	ResignationEligible *bool `yaml:"resignation_eligible" json:"resignationEligible"`

	// Amounts already earmarked toward severance, added at face value
	AssetValue           *decimal.Decimal `yaml:"asset_value" json:"assetValue"`
	Deposits             *decimal.Decimal `yaml:"deposits" json:"deposits"`
	AssetPayment         *decimal.Decimal `yaml:"asset_payment" json:"assetPayment"`
	SupplementaryPayment *decimal.Decimal `yaml:"supplementary_payment" json:"supplementaryPayment"`
}

// NamedAmount is a labelled money value
type NamedAmount struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Amount names used by PreExistingAmounts
const (
	AmountAssetValue           = "asset_value"
	AmountDeposits             = "deposits"
	AmountAssetPayment         = "asset_payment"
	AmountSupplementaryPayment = "supplementary_payment"
)

// PreExistingAmounts returns the earmarked amounts present on the record, in a fixed order.
func (e *EmployeeRecord) PreExistingAmounts() []NamedAmount {
	var amounts []NamedAmount
	add := func(name string, v *decimal.Decimal) {
		if v != nil {
			amounts = append(amounts, NamedAmount{Name: name, Amount: *v})
		}
	}
	add(AmountAssetValue, e.AssetValue)
	add(AmountDeposits, e.Deposits)
	add(AmountAssetPayment, e.AssetPayment)
	add(AmountSupplementaryPayment, e.SupplementaryPayment)
	return amounts
}

// HasDeparted reports whether the departure date is strictly before asOf.
func (e *EmployeeRecord) HasDeparted(asOf time.Time) bool {
	return e.DepartureDate != nil && e.DepartureDate.Before(asOf)
}

// FullName joins first and last name.
func (e *EmployeeRecord) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

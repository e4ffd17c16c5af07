package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ProjectionStep is one projection year of an employee's liability run
type ProjectionStep struct {
	Year                int             `json:"year"` // 1-based for display; offset t is Year-1
	Age                 int             `json:"age"`
	ProjectedSalary     decimal.Decimal `json:"projectedSalary"`
	SurvivalProbability decimal.Decimal `json:"survivalProbability"`
	MortalityRate       decimal.Decimal `json:"mortalityRate"`
	ResignationRate     decimal.Decimal `json:"resignationRate"`
	DismissalRate       decimal.Decimal `json:"dismissalRate"`
	CombinedRate        decimal.Decimal `json:"combinedRate"`
	DiscountRate        decimal.Decimal `json:"discountRate"`
	DiscountFactor      decimal.Decimal `json:"discountFactor"`
	Benefit             decimal.Decimal `json:"benefit"`
	Clause14Factor      decimal.Decimal `json:"clause14Factor"`
	PresentValue        decimal.Decimal `json:"presentValue"`
}

// ResultStatus classifies how a liability run ended
type ResultStatus string

const (
	StatusOK          ResultStatus = "ok"
	StatusInvalid     ResultStatus = "invalid"
	StatusDeparted    ResultStatus = "departed"
	StatusFullyFunded ResultStatus = "fully_funded"
)

// Termination records why the projection loop stopped
type Termination string

const (
	TerminationNone      Termination = ""
	TerminationExhausted Termination = "exhausted"
	TerminationDeparted  Termination = "departed"
)

// InvalidMarker is shown in place of a liability figure for invalid records.
const InvalidMarker = "Invalid data"

// LiabilityResult is the outcome of one employee's calculation
type LiabilityResult struct {
	EmployeeID     string           `json:"employeeId"`
	Status         ResultStatus     `json:"status"`
	InvalidReason  string           `json:"invalidReason,omitempty"`
	Termination    Termination      `json:"termination,omitempty"`
	Age            int              `json:"age"`
	Horizon        int              `json:"horizon"`
	YearsProjected int              `json:"yearsProjected"`
	ProjectedTotal decimal.Decimal  `json:"projectedTotal"`
	PreExisting    []NamedAmount    `json:"preExisting,omitempty"`
	Total          decimal.Decimal  `json:"total"`
	Steps          []ProjectionStep `json:"steps,omitempty"`
}

// IsValid reports whether the result carries a usable liability figure.
func (r *LiabilityResult) IsValid() bool {
	return r.Status != StatusInvalid
}

// LiabilityText renders the total rounded to cents, or the invalid marker.
func (r *LiabilityResult) LiabilityText() string {
	if !r.IsValid() {
		return InvalidMarker
	}
	return r.Total.StringFixed(2)
}

// ResultRow is the flattened per-employee output of a batch, shaped for tabular export
type ResultRow struct {
	EmployeeID string          `json:"employeeId"`
	FirstName  string          `json:"name"`
	LastName   string          `json:"lastName"`
	Age        *int            `json:"age"`
	Salary     string          `json:"salary"`
	Status     ResultStatus    `json:"status"`
	// Liability is nil for invalid rows
	Liability *decimal.Decimal `json:"liability"`
	// LiabilityText is the rounded liability or InvalidMarker
	LiabilityText string `json:"liabilityText"`
	InvalidReason string `json:"invalidReason,omitempty"`

	// Passthrough descriptive fields
	Gender               string     `json:"gender,omitempty"`
	HireDate             *time.Time `json:"hireDate,omitempty"`
	Clause14Date         *time.Time `json:"clause14Date,omitempty"`
	Clause14Percent      string     `json:"clause14Percent,omitempty"`
	AssetValue           string     `json:"assetValue,omitempty"`
	Deposits             string     `json:"deposits,omitempty"`
	DepartureDate        *time.Time `json:"departureDate,omitempty"`
	AssetPayment         string     `json:"assetPayment,omitempty"`
	SupplementaryPayment string     `json:"supplementaryPayment,omitempty"`
	DepartureReason      string     `json:"departureReason,omitempty"`
}

// NewResultRow flattens a record and its result into a ResultRow.
func NewResultRow(rec *EmployeeRecord, res *LiabilityResult) ResultRow {
	row := ResultRow{
		EmployeeID:      rec.ID,
		FirstName:       rec.FirstName,
		LastName:        rec.LastName,
		Status:          res.Status,
		LiabilityText:   res.LiabilityText(),
		InvalidReason:   res.InvalidReason,
		Gender:          string(rec.Gender),
		HireDate:        rec.HireDate,
		Clause14Date:    rec.Clause14Date,
		DepartureDate:   rec.DepartureDate,
		DepartureReason: rec.DepartureReason,

		Clause14Percent:      optionalString(rec.Clause14Percent),
		AssetValue:           optionalString(rec.AssetValue),
		Deposits:             optionalString(rec.Deposits),
		AssetPayment:         optionalString(rec.AssetPayment),
		SupplementaryPayment: optionalString(rec.SupplementaryPayment),
	}

	if rec.Salary != nil {
		row.Salary = rec.Salary.StringFixed(2)
	} else {
		row.Salary = rec.RawSalary
	}

	if rec.BirthDate != nil && res.Age >= 0 {
		age := res.Age
		row.Age = &age
	}

	if res.IsValid() {
		liability := res.Total.Round(2)
		row.Liability = &liability
	}

	return row
}

// AgeText renders the age or "" when unknown.
func (r *ResultRow) AgeText() string {
	if r.Age == nil {
		return ""
	}
	return strconv.Itoa(*r.Age)
}

func optionalString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

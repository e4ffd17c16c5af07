// Package ingest reads employee and mortality sheets (xlsx or csv) and
// normalizes employee rows into domain records.
package ingest

import "strings"

// Canonical field keys used after header normalization.
const (
	FieldID                   = "id"
	FieldFirstName            = "first_name"
	FieldLastName             = "last_name"
	FieldAge                  = "age"
	FieldSalary               = "salary"
	FieldGender               = "gender"
	FieldBirthDate            = "birth_date"
	FieldHireDate             = "hire_date"
	FieldClause14Date         = "clause14_date"
	FieldClause14Percent      = "clause14_percent"
	FieldAssetValue           = "asset_value"
	FieldDeposits             = "deposits"
	FieldDepartureDate        = "departure_date"
	FieldAssetPayment         = "asset_payment"
	FieldSupplementaryPayment = "supplementary_payment"
	FieldDepartureReason      = "departure_reason"
	FieldSalaryGrowth         = "salary_growth"
	FieldResignationEligible  = "resignation_eligible"
)

// headerAliases maps lower-cased header spellings to canonical keys. The
// Hebrew headers are the ones used by the payroll export sheets.
var headerAliases = map[string]string{
	"employeeid":  FieldID,
	"employee id": FieldID,
	"id":          FieldID,

	"שם":         FieldFirstName,
	"name":       FieldFirstName,
	"first name": FieldFirstName,
	"first_name": FieldFirstName,

	"שם משפחה":  FieldLastName,
	"last name": FieldLastName,
	"lastname":  FieldLastName,
	"last_name": FieldLastName,

	"גיל": FieldAge,
	"age": FieldAge,

	"שכר":    FieldSalary,
	"salary": FieldSalary,

	"מין":    FieldGender,
	"gender": FieldGender,

	"תאריך לידה": FieldBirthDate,
	"birth date": FieldBirthDate,
	"birthdate":  FieldBirthDate,
	"birth_date": FieldBirthDate,

	"תאריך תחילת עבודה": FieldHireDate,
	"start job":         FieldHireDate,
	"hire date":         FieldHireDate,
	"hire_date":         FieldHireDate,

	"תאריך קבלת סעיף 14": FieldClause14Date,
	"date of getting 14": FieldClause14Date,
	"clause 14 date":     FieldClause14Date,
	"clause14_date":      FieldClause14Date,

	"אחוז סעיף 14":       FieldClause14Percent,
	"precent of 14":      FieldClause14Percent,
	"percent of 14":      FieldClause14Percent,
	"clause 14 percent":  FieldClause14Percent,
	"clause14_percent":   FieldClause14Percent,

	"שווי נכס":         FieldAssetValue,
	"value of propety":  FieldAssetValue,
	"value of property": FieldAssetValue,
	"asset value":       FieldAssetValue,
	"asset_value":       FieldAssetValue,

	"הפקדות":   FieldDeposits,
	"deposits": FieldDeposits,

	"תאריך עזיבה":    FieldDepartureDate,
	"date of leave":  FieldDepartureDate,
	"departure date": FieldDepartureDate,
	"departure_date": FieldDepartureDate,

	"תשלום מהנכס":      FieldAssetPayment,
	"pay from propety":  FieldAssetPayment,
	"pay from property": FieldAssetPayment,
	"asset payment":     FieldAssetPayment,
	"asset_payment":     FieldAssetPayment,

	"השלמה בצ'ק":            FieldSupplementaryPayment,
	"check":                 FieldSupplementaryPayment,
	"supplementary payment": FieldSupplementaryPayment,
	"supplementary_payment": FieldSupplementaryPayment,

	"סיבת עזיבה":        FieldDepartureReason,
	"reason of leaving": FieldDepartureReason,
	"departure reason":  FieldDepartureReason,
	"departure_reason":  FieldDepartureReason,

	"salary growth":        FieldSalaryGrowth,
	"salary_growth":        FieldSalaryGrowth,
	"resignation eligible": FieldResignationEligible,
	"resignation_eligible": FieldResignationEligible,
}

// CanonicalHeader maps a sheet header to its canonical field key.
func CanonicalHeader(header string) (string, bool) {
	key, ok := headerAliases[strings.ToLower(strings.TrimSpace(header))]
	return key, ok
}

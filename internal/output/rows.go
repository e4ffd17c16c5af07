package output

import (
	"github.com/OrHava/economy-project/internal/domain"
	"github.com/OrHava/economy-project/pkg/dateutil"
)

// exportHeaders is the column order shared by the tabular formatters. The
// first six columns match the liabilities workbook layout.
var exportHeaders = []string{
	"EmployeeID", "Name", "LastName", "Age", "Salary", "Liability",
	"Gender", "HireDate", "Clause14Date", "Clause14Percent", "AssetValue",
	"Deposits", "DepartureDate", "AssetPayment", "SupplementaryPayment",
	"DepartureReason", "Status",
}

// exportRecord flattens a row in exportHeaders order.
func exportRecord(row domain.ResultRow) []string {
	return []string{
		row.EmployeeID,
		row.FirstName,
		row.LastName,
		row.AgeText(),
		row.Salary,
		row.LiabilityText,
		row.Gender,
		dateutil.FormatPtr(row.HireDate),
		dateutil.FormatPtr(row.Clause14Date),
		row.Clause14Percent,
		row.AssetValue,
		row.Deposits,
		dateutil.FormatPtr(row.DepartureDate),
		row.AssetPayment,
		row.SupplementaryPayment,
		row.DepartureReason,
		string(row.Status),
	}
}

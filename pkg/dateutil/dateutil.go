// Package dateutil normalizes the date encodings found in employee sheets and
// derives ages and tenures from them.
package dateutil

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// excelEpoch is day zero for spreadsheet serials. Serials are offset by two
// days from it: one because serial 1 is the epoch itself, and one for the
// nonexistent 1900-02-29 that spreadsheets count.
var excelEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// DisplayLayout is the day.month.year layout used for human-facing output.
const DisplayLayout = "2.1.2006"

// FromExcelSerial converts a spreadsheet day-count serial to a calendar date.
// Fractional parts (time of day) are dropped.
func FromExcelSerial(serial float64) time.Time {
	days := int(math.Floor(serial)) - 2
	return excelEpoch.AddDate(0, 0, days)
}

// toExcelSerial is the inverse of FromExcelSerial for dates after 1900-02-28.
func toExcelSerial(t time.Time) int {
	d := Truncate(t)
	return int(d.Sub(excelEpoch).Hours()/24) + 2
}

// Parse converts a raw sheet value to a date. It accepts a numeric serial,
// "D.M.Y" or "D/M/Y", and ISO "YYYY-MM-DD". The second return value is false
// when the value cannot be read as a real calendar date. Anything that parses
// as a number is a serial, so "15.3" is day 15 of the serial calendar.
func Parse(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial < 1 || math.IsNaN(serial) || math.IsInf(serial, 0) {
			return time.Time{}, false
		}
		return FromExcelSerial(serial), true
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}

	sep := "."
	if strings.Contains(s, "/") {
		sep = "/"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return time.Time{}, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}
	return FromDMY(nums[0], nums[1], nums[2])
}

// FromDMY builds a date from day, month and year, rejecting values that
// time.Date would silently normalize (31.2.2000, month 13 and so on).
func FromDMY(day, month, year int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || year < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}

// Truncate drops the time of day and moves the date to UTC.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Age returns completed years of age on asOf.
func Age(birth, asOf time.Time) int {
	return WholeYears(birth, asOf)
}

// WholeYears returns the number of completed years from `from` to `to`,
// decrementing when the month/day of `from` has not yet been reached in the
// year of `to`. The result is negative when `to` precedes `from`.
func WholeYears(from, to time.Time) int {
	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	return years
}

// MonthsBetween returns the number of completed months from `from` to `to`.
func MonthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	return months
}

// Format renders a date with DisplayLayout, or "" for the zero time.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayLayout)
}

// FormatPtr is Format for optional dates.
func FormatPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Format(*t)
}

package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFromExcelSerial(t *testing.T) {
	tests := []struct {
		name     string
		serial   float64
		expected time.Time
	}{
		{name: "serial 1 lands on the day before the epoch", serial: 1, expected: date(1899, time.December, 31)},
		{name: "first day after the phantom leap day", serial: 61, expected: date(1900, time.March, 1)},
		{name: "millennium", serial: 36526, expected: date(2000, time.January, 1)},
		{name: "2023-03-15", serial: 45000, expected: date(2023, time.March, 15)},
		{name: "time of day is dropped", serial: 45000.75, expected: date(2023, time.March, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromExcelSerial(tt.serial))
		})
	}
}

func TestToExcelSerial_RoundTrip(t *testing.T) {
	for _, serial := range []int{61, 36526, 45000, 45838} {
		assert.Equal(t, serial, toExcelSerial(FromExcelSerial(float64(serial))))
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected time.Time
		ok       bool
	}{
		{name: "serial", raw: "36526", expected: date(2000, time.January, 1), ok: true},
		{name: "dotted", raw: "15.3.1985", expected: date(1985, time.March, 15), ok: true},
		{name: "dotted with padding", raw: " 01.06.1985 ", expected: date(1985, time.June, 1), ok: true},
		{name: "slashed", raw: "30/6/2025", expected: date(2025, time.June, 30), ok: true},
		{name: "iso", raw: "2015-01-01", expected: date(2015, time.January, 1), ok: true},
		{name: "empty", raw: "", ok: false},
		{name: "two fields", raw: "15/3", ok: false},
		{name: "four fields", raw: "1.2.3.2000", ok: false},
		{name: "non numeric part", raw: "15.x.1985", ok: false},
		{name: "impossible date", raw: "31.2.2000", ok: false},
		{name: "month out of range", raw: "1.13.2000", ok: false},
		{name: "zero serial", raw: "0", ok: false},
		{name: "words", raw: "yesterday", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.raw)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestAge(t *testing.T) {
	birth := date(1985, time.June, 1)

	assert.Equal(t, 40, Age(birth, date(2026, time.January, 1)), "birthday not yet reached")
	assert.Equal(t, 41, Age(birth, date(2026, time.June, 1)), "birthday today")
	assert.Equal(t, 40, Age(birth, date(2026, time.May, 31)))
	assert.Equal(t, 41, Age(birth, date(2026, time.December, 31)))
}

func TestWholeYears(t *testing.T) {
	hire := date(2015, time.March, 10)

	assert.Equal(t, 3, WholeYears(hire, date(2018, time.March, 10)))
	assert.Equal(t, 2, WholeYears(hire, date(2018, time.March, 9)))
	assert.Equal(t, 0, WholeYears(hire, hire))
	assert.Equal(t, -1, WholeYears(hire, date(2014, time.March, 10)))
}

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 132, MonthsBetween(date(2015, time.January, 1), date(2026, time.January, 1)))
	assert.Equal(t, 11, MonthsBetween(date(2015, time.January, 15), date(2016, time.January, 14)))
	assert.Equal(t, 0, MonthsBetween(date(2015, time.January, 15), date(2015, time.January, 31)))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "15.3.1985", Format(date(1985, time.March, 15)))
	assert.Equal(t, "", Format(time.Time{}))
	assert.Equal(t, "", FormatPtr(nil))
}

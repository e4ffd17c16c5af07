package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OrHava/economy-project/internal/actuarial"
	"github.com/shopspring/decimal"
)

var (
	ageHeaders = []string{"age", "גיל"}
	qxHeaders  = []string{"q(x)", "qx", "q"}
)

// ReadMortality loads a mortality table from an xlsx or csv file with "age"
// and "q(x)" columns. Rows whose age or q(x) is not numeric are skipped.
func ReadMortality(path, sheet string) (*actuarial.MortalityTable, error) {
	rows, err := ReadRows(path, sheet)
	if err != nil {
		return nil, err
	}
	table, err := MortalityFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("mortality table %s: %w", path, err)
	}
	return table, nil
}

// MortalityFromRows builds a mortality table from header-keyed rows.
func MortalityFromRows(rows []RawRecord) (*actuarial.MortalityTable, error) {
	var entries []actuarial.MortalityEntry
	for _, row := range rows {
		ageText, ok := lookup(row, ageHeaders)
		if !ok {
			continue
		}
		qxText, ok := lookup(row, qxHeaders)
		if !ok {
			continue
		}
		age, err := strconv.ParseFloat(ageText, 64)
		if err != nil {
			continue
		}
		qx, err := decimal.NewFromString(qxText)
		if err != nil {
			continue
		}
		entries = append(entries, actuarial.MortalityEntry{Age: int(age), QX: qx})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no numeric age/q(x) rows found")
	}
	return actuarial.NewMortalityTable(entries)
}

func lookup(row RawRecord, names []string) (string, bool) {
	for header, value := range row {
		h := strings.ToLower(strings.TrimSpace(header))
		for _, name := range names {
			if h == name {
				v := strings.TrimSpace(value)
				return v, v != ""
			}
		}
	}
	return "", false
}

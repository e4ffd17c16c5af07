// Package store archives valuation runs so earlier results can be listed
// and reloaded without recalculating.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/OrHava/economy-project/internal/domain"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrRunNotFound is returned when a run id is not in the archive.
var ErrRunNotFound = errors.New("run not found")

// Run is the header of one archived valuation
type Run struct {
	ID            string          `json:"id"`
	AsOf          time.Time       `json:"asOf"`
	OptionsDigest string          `json:"optionsDigest"`
	CreatedAt     time.Time       `json:"createdAt"`
	Employees     int             `json:"employees"`
	Invalid       int             `json:"invalid"`
	Total         decimal.Decimal `json:"total"`
}

// Archive persists runs and their result rows.
type Archive interface {
	SaveRun(ctx context.Context, run Run, rows []domain.ResultRow) error
	ListRuns(ctx context.Context) ([]Run, error)
	GetRun(ctx context.Context, id string) (*Run, []domain.ResultRow, error)
	Close() error
}

// NewRun builds a run header for rows with a fresh id. Invalid rows count
// toward Employees and Invalid but not toward Total.
func NewRun(asOf time.Time, digest string, rows []domain.ResultRow) Run {
	run := Run{
		ID:            uuid.NewString(),
		AsOf:          asOf,
		OptionsDigest: digest,
		CreatedAt:     time.Now().UTC(),
		Employees:     len(rows),
		Total:         decimal.Zero,
	}
	for _, row := range rows {
		if row.Status == domain.StatusInvalid {
			run.Invalid++
			continue
		}
		if row.Liability != nil {
			run.Total = run.Total.Add(*row.Liability)
		}
	}
	return run
}

// Digest fingerprints any JSON-encodable assumption set so runs made under
// the same assumptions can be grouped.
func Digest(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8]), nil
}

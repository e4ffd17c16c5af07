package calculation

import (
	"context"

	"github.com/OrHava/economy-project/internal/domain"
	"golang.org/x/sync/errgroup"
)

// CalculateBatch computes every record on a bounded worker pool. Rows come
// back in input order; invalid records become invalid rows, not errors. The
// only error is cancellation of ctx.
func (e *Engine) CalculateBatch(ctx context.Context, records []domain.EmployeeRecord) ([]domain.ResultRow, error) {
	rows := make([]domain.ResultRow, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.workerCount())

	for i := range records {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec := &records[i]
			rows[i] = domain.NewResultRow(rec, e.Calculate(rec))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	invalid := 0
	for _, row := range rows {
		if row.Status == domain.StatusInvalid {
			invalid++
		}
	}
	e.Logger.Infof("calculated %d employees (%d invalid)", len(rows), invalid)
	return rows, nil
}

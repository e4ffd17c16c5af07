package store

import (
	"context"
	"sort"
	"sync"

	"github.com/OrHava/economy-project/internal/domain"
)

// Memory is an Archive held in process memory, used when no archive path
// is configured and in tests.
type Memory struct {
	mu   sync.RWMutex
	runs map[string]Run
	rows map[string][]domain.ResultRow
}

// NewMemory returns an empty in-memory archive.
func NewMemory() *Memory {
	return &Memory{
		runs: make(map[string]Run),
		rows: make(map[string][]domain.ResultRow),
	}
}

func (m *Memory) SaveRun(ctx context.Context, run Run, rows []domain.ResultRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs[run.ID] = run
	m.rows[run.ID] = append([]domain.ResultRow(nil), rows...)
	return nil
}

func (m *Memory) ListRuns(ctx context.Context) ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]Run, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}

func (m *Memory) GetRun(ctx context.Context, id string) (*Run, []domain.ResultRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, ok := m.runs[id]
	if !ok {
		return nil, nil, ErrRunNotFound
	}
	return &run, append([]domain.ResultRow(nil), m.rows[id]...), nil
}

func (m *Memory) Close() error { return nil }

// Open returns a SQLite archive for path, or an in-memory one when path is empty.
func Open(path string) (Archive, error) {
	if path == "" {
		return NewMemory(), nil
	}
	return NewSQLite(path)
}

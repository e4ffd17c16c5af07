package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/OrHava/economy-project/internal/calculation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssumptions_NewEngine(t *testing.T) {
	dir := t.TempDir()
	mortality := "age,q(x)\n40,0.001\n41,0.002\nnot,a row\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mortality.csv"), []byte(mortality), 0o644))

	yaml := `
as_of: 2026-01-01T00:00:00Z
mortality:
  file: mortality.csv
`
	path := filepath.Join(dir, "assumptions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	a, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	engine, err := a.NewEngine(3)
	require.NoError(t, err)
	assert.Equal(t, 2, engine.Tables().Mortality.Len())
	assert.Equal(t, 3, engine.Options().Workers)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), engine.Options().AsOf)
}

func TestAssumptions_NewEngine_Errors(t *testing.T) {
	t.Run("no mortality source", func(t *testing.T) {
		a := DefaultAssumptions()
		a.AsOf = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
		_, err := a.NewEngine(0)
		assert.ErrorIs(t, err, ErrNoMortality)
	})

	t.Run("missing as-of date", func(t *testing.T) {
		a, err := NewInputParser().Parse([]byte("mortality:\n  table:\n    - {age: 40, qx: 0.001}\n"))
		require.NoError(t, err)

		_, err = a.NewEngine(0)
		var cfgErr *calculation.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "as_of", cfgErr.Field)
	})

	t.Run("unreadable mortality file", func(t *testing.T) {
		a := DefaultAssumptions()
		a.AsOf = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
		a.Mortality.File = filepath.Join(t.TempDir(), "missing.xlsx")
		_, err := a.NewEngine(0)
		assert.Error(t, err)
	})
}

package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/waterdash/internal/dataset"
	_ "github.com/leapstack-labs/waterdash/internal/dataset/sources/postgres"
	"github.com/leapstack-labs/waterdash/internal/filter"
	"github.com/leapstack-labs/waterdash/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, path string) *Engine {
	t.Helper()
	eng, err := New(Config{
		Source: dataset.SourceConfig{Path: path},
		Logger: testutil.NewTestLogger(t),
	})
	require.NoError(t, err)
	return eng
}

func TestNew(t *testing.T) {
	t.Run("unknown source type", func(t *testing.T) {
		_, err := New(Config{Source: dataset.SourceConfig{Type: "parquet", Path: "x.parquet"}})
		var unknown *dataset.UnknownSourceError
		assert.ErrorAs(t, err, &unknown)
	})

	t.Run("defaults", func(t *testing.T) {
		eng, err := New(Config{Source: dataset.SourceConfig{Path: "x.csv"}})
		require.NoError(t, err)
		assert.Equal(t, dataset.NationalState, eng.National())
		assert.Zero(t, eng.Generation())
	})
}

func TestEngine_NotLoaded(t *testing.T) {
	eng := newEngine(t, "missing.csv")

	_, err := eng.Dataset()
	assert.ErrorIs(t, err, ErrNotLoaded)

	_, err = eng.Report(filter.Selection{})
	assert.ErrorIs(t, err, ErrNotLoaded)

	_, err = eng.CheckNational(0)
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestEngine_LoadAndReport(t *testing.T) {
	eng := newEngine(t, testutil.WriteSampleCSV(t))

	ds, err := eng.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, ds.Len())
	assert.Equal(t, uint64(1), eng.Generation())

	r, err := eng.Report(filter.Selection{Years: []string{"2021"}, States: []string{"Johor"}})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Summary.Count)
	assert.InDelta(t, 120, r.Summary.Total, 1e-9)

	mismatches, err := eng.CheckNational(DefaultTolerance)
	require.NoError(t, err)
	assert.Empty(t, mismatches)
}

func TestEngine_FailedReloadKeepsPrevious(t *testing.T) {
	path := testutil.WriteSampleCSV(t)
	eng := newEngine(t, path)

	_, err := eng.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("Date,State\n2020,Johor\n"), 0o600))
	_, err = eng.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)

	ds, err := eng.Dataset()
	require.NoError(t, err)
	assert.Equal(t, 12, ds.Len())
	assert.Equal(t, uint64(1), eng.Generation())
}

func TestEngine_Reload(t *testing.T) {
	path := testutil.WriteSampleCSV(t)
	eng := newEngine(t, path)

	_, err := eng.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("Date,State,Sector,Water Consumed\n2022,Perak,Domestic,5\n"), 0o600))
	ds, err := eng.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
	assert.Equal(t, uint64(2), eng.Generation())

	r, err := eng.Report(filter.Selection{})
	require.NoError(t, err)
	assert.Equal(t, []string{"2022"}, r.Years)
}

func TestEngine_WatchPath(t *testing.T) {
	eng := newEngine(t, "data/usage.csv")
	p, err := eng.WatchPath()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(p))
	assert.Equal(t, "usage.csv", filepath.Base(p))

	pg, err := New(Config{Source: dataset.SourceConfig{Type: "postgres", Database: "x"}})
	require.NoError(t, err)
	p, err = pg.WatchPath()
	require.NoError(t, err)
	assert.Empty(t, p)
}

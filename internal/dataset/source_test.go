package dataset

import (
	"context"
	"log/slog"
	"testing"

	"github.com/leapstack-labs/waterdash/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferType(t *testing.T) {
	tests := map[string]string{
		"Water_Usage.csv":  "csv",
		"usage.XLSX":       "xlsx",
		"warehouse.duckdb": "duckdb",
		"state.db":         "sqlite",
		"state.sqlite3":    "sqlite",
		"no-extension":     "csv",
	}
	for path, want := range tests {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, want, InferType(path))
		})
	}
}

func TestSourceConfig_Name(t *testing.T) {
	cfg := SourceConfig{Type: "postgres", Host: "db", Database: "stats", Password: "secret"}
	assert.Equal(t, "postgres://db/stats/water_usage", cfg.Name())
	assert.NotContains(t, cfg.Name(), "secret")

	assert.Equal(t, "usage.duckdb#readings", SourceConfig{Path: "usage.duckdb", Table: "readings"}.Name())
	assert.Equal(t, "usage.csv", SourceConfig{Path: "usage.csv"}.Name())
}

func TestRegistry(t *testing.T) {
	assert.True(t, IsRegistered("csv"))
	assert.True(t, IsRegistered("xlsx"))
	assert.False(t, IsRegistered("parquet"))
	assert.Contains(t, ListSources(), "csv")

	_, err := NewSource(SourceConfig{Type: "parquet"}, nil)
	var unknown *UnknownSourceError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "parquet", unknown.Type)
	assert.Contains(t, err.Error(), "Available sources")
}

type failingSource struct{ err error }

func (s failingSource) Load(context.Context) (*Dataset, error) { return nil, s.err }

func TestLoad_WrapsForeignErrors(t *testing.T) {
	Register("failing", func(SourceConfig, *slog.Logger) Source {
		return failingSource{err: assert.AnError}
	})

	_, err := Load(context.Background(), SourceConfig{Type: "failing", Path: "x"}, nil)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestLoad_InfersCSV(t *testing.T) {
	path := testutil.WriteSampleCSV(t)

	ds, err := Load(context.Background(), SourceConfig{Path: path}, testutil.NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 12, ds.Len())
}

func TestDataset_RecordsIsACopy(t *testing.T) {
	in := []Record{{Year: "2020", State: "Kedah", Sector: "Domestic", WaterConsumed: 1}}
	ds := New("mem", in)
	in[0].State = "changed"

	out := ds.Records()
	out[0].Year = "changed"

	assert.Equal(t, "Kedah", ds.At(0).State)
	assert.Equal(t, "2020", ds.At(0).Year)
}

func TestDataset_Nil(t *testing.T) {
	var ds *Dataset
	assert.Equal(t, 0, ds.Len())
	assert.Nil(t, ds.Records())
	assert.Empty(t, ds.Source())
}

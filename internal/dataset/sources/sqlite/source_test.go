package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/waterdash/internal/dataset"
	"github.com/leapstack-labs/waterdash/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createDB(t *testing.T, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "usage.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func TestSource_Load(t *testing.T) {
	path := createDB(t,
		`CREATE TABLE water_usage (date TEXT, state TEXT, sector TEXT, water_consumed REAL)`,
		`INSERT INTO water_usage VALUES ('2020', 'Sabah', 'Domestic', 40), ('2020', 'Sabah', 'Non-Domestic', 10.5)`,
	)

	ds, err := dataset.Load(context.Background(), dataset.SourceConfig{Path: path}, testutil.NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, []dataset.Record{
		{Year: "2020", State: "Sabah", Sector: "Domestic", WaterConsumed: 40},
		{Year: "2020", State: "Sabah", Sector: "Non-Domestic", WaterConsumed: 10.5},
	}, ds.Records())
}

func TestSource_LoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := New(dataset.SourceConfig{Path: filepath.Join(t.TempDir(), "none.db")}, nil).Load(context.Background())
		var loadErr *dataset.LoadError
		assert.ErrorAs(t, err, &loadErr)
	})

	t.Run("missing table", func(t *testing.T) {
		path := createDB(t, `CREATE TABLE other (x INTEGER)`)
		_, err := New(dataset.SourceConfig{Path: path}, nil).Load(context.Background())
		var loadErr *dataset.LoadError
		assert.ErrorAs(t, err, &loadErr)
	})

	t.Run("bad value", func(t *testing.T) {
		path := createDB(t,
			`CREATE TABLE readings ("Date" TEXT, "State" TEXT, "Sector" TEXT, "Water Consumed" TEXT)`,
			`INSERT INTO readings VALUES ('2020', 'Sabah', 'Domestic', 'unknown')`,
		)
		_, err := New(dataset.SourceConfig{Path: path, Table: "readings"}, nil).Load(context.Background())
		var parseErr *dataset.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "unknown", parseErr.Value)
	})
}

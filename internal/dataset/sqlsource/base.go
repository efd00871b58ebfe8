// Package sqlsource holds the database/sql plumbing shared by the SQL-backed
// dataset sources (duckdb, sqlite, postgres).
package sqlsource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/leapstack-labs/waterdash/internal/dataset"
)

// ErrNotConnected is returned when a query is issued before Open.
var ErrNotConnected = errors.New("database connection not established")

// Base wraps a *sql.DB and turns query results into datasets.
type Base struct {
	DB     *sql.DB
	Name   string
	Logger *slog.Logger
}

// Open opens and pings a database with the given driver.
func (b *Base) Open(ctx context.Context, driver, dsn string) error {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s connection: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping %s: %w", driver, err)
	}
	b.DB = db
	return nil
}

// Close closes the database connection.
func (b *Base) Close() error {
	if b.DB != nil {
		return b.DB.Close()
	}
	return nil
}

// Query runs query and builds a dataset from the result set. Columns are
// matched by name the same way file headers are.
func (b *Base) Query(ctx context.Context, query string, args ...any) (*dataset.Dataset, error) {
	if b.DB == nil {
		return nil, &dataset.LoadError{Source: b.Name, Err: ErrNotConnected}
	}
	if b.Logger != nil {
		b.Logger.Debug("querying dataset", slog.String("source", b.Name), slog.String("query", query))
	}

	rows, err := b.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &dataset.LoadError{Source: b.Name, Err: fmt.Errorf("failed to execute query: %w", err)}
	}
	defer func() { _ = rows.Close() }()

	return ScanRows(b.Name, rows)
}

// ScanRows converts every row into text fields and feeds them to a
// dataset.Builder.
func ScanRows(source string, rows *sql.Rows) (*dataset.Dataset, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, &dataset.LoadError{Source: source, Err: err}
	}

	b, err := dataset.NewBuilder(source, cols)
	if err != nil {
		return nil, err
	}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	fields := make([]string, len(cols))

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &dataset.LoadError{Source: source, Err: fmt.Errorf("failed to scan row: %w", err)}
		}
		for i, v := range values {
			fields[i] = FormatValue(v)
		}
		if err := b.Add(fields); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &dataset.LoadError{Source: source, Err: err}
	}
	return b.Dataset(), nil
}

// FormatValue renders a scanned driver value as cell text. NULL becomes "".
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		return x.Format("2006-01-02")
	default:
		return fmt.Sprint(x)
	}
}

// QuoteIdent quotes a possibly schema-qualified identifier with double
// quotes, which duckdb, sqlite and postgres all accept.
func QuoteIdent(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = `"` + strings.ReplaceAll(p, `"`, `""`) + `"`
	}
	return strings.Join(parts, ".")
}

// SelectAll returns the query reading every column of table.
func SelectAll(table string) string {
	if table == "" {
		table = dataset.DefaultTable
	}
	return "SELECT * FROM " + QuoteIdent(table)
}

// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/waterdash/internal/dataset"
	"github.com/leapstack-labs/waterdash/internal/engine"
	"github.com/leapstack-labs/waterdash/internal/testutil"
	"github.com/leapstack-labs/waterdash/internal/ui/notifier"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Engine       *engine.Engine
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
	SourcePath   string
}

// SetupTestFixture creates an engine loaded from testutil.SampleCSV, or from
// csv when given.
func SetupTestFixture(t *testing.T, csv ...string) *TestFixture {
	t.Helper()

	content := testutil.SampleCSV
	if len(csv) > 0 {
		content = csv[0]
	}
	path := testutil.WriteFile(t, "Water_Usage.csv", content)

	eng, err := engine.New(engine.Config{
		Source: dataset.SourceConfig{Type: "csv", Path: path},
		Logger: testutil.NewTestLogger(t),
	})
	require.NoError(t, err)

	_, err = eng.Load(context.Background())
	require.NoError(t, err)

	return &TestFixture{
		Engine:       eng,
		Notifier:     notifier.New(),
		SessionStore: NewTestSessionStore(),
		SourcePath:   path,
	}
}

// SetupUnloadedFixture creates an engine that has not loaded any data.
func SetupUnloadedFixture(t *testing.T) *TestFixture {
	t.Helper()

	eng, err := engine.New(engine.Config{
		Source: dataset.SourceConfig{Type: "csv", Path: "missing.csv"},
		Logger: testutil.NewTestLogger(t),
	})
	require.NoError(t, err)

	return &TestFixture{
		Engine:       eng,
		Notifier:     notifier.New(),
		SessionStore: NewTestSessionStore(),
	}
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}

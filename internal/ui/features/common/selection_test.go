package common

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/waterdash/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  filter.Selection
	}{
		{
			name:  "empty",
			query: "",
			want:  filter.Selection{},
		},
		{
			name:  "repeated params",
			query: "year=2020&year=2021&state=Selangor",
			want:  filter.Selection{Years: []string{"2020", "2021"}, States: []string{"Selangor"}},
		},
		{
			name:  "blank values ignored",
			query: "state=%20Johor%20&year=",
			want:  filter.Selection{States: []string{"Johor"}},
		},
		{
			name:  "commas are part of the value",
			query: "state=Wilayah%20Persekutuan%2C%20Labuan&state=Johor",
			want:  filter.Selection{States: []string{"Wilayah Persekutuan, Labuan", "Johor"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, SelectionFromQuery(q))
		})
	}
}

func TestSelectionQuery(t *testing.T) {
	sel := filter.Selection{Years: []string{"2020"}, States: []string{"Pulau Pinang", "Johor", "Kuala Lumpur, Putrajaya"}}
	q, err := url.ParseQuery(SelectionQuery(sel))
	require.NoError(t, err)

	assert.True(t, HasSelection(q))
	assert.Equal(t, sel, SelectionFromQuery(q))
	assert.Empty(t, SelectionQuery(filter.Selection{}))
}

func TestSessionSelection(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
	sel := filter.Selection{Years: []string{"2021"}, States: []string{"Johor", "Selangor"}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/filter", nil)
	require.NoError(t, SaveSelection(store, rec, req, sel))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		next.AddCookie(c)
	}
	assert.Equal(t, sel, LoadSelection(store, next))
}

func TestLoadSelection_NoCookie(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.True(t, LoadSelection(store, req).IsEmpty())
}

package common

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/waterdash/internal/filter"
)

// SessionName is the cookie name of the dashboard session.
const SessionName = "waterdash"

const (
	sessionYears  = "years"
	sessionStates = "states"
)

// LoadSelection returns the selection saved in the session, or an empty
// selection when there is none or the cookie cannot be decoded.
func LoadSelection(store sessions.Store, r *http.Request) filter.Selection {
	session, err := store.Get(r, SessionName)
	if err != nil {
		return filter.Selection{}
	}
	return filter.Selection{
		Years:  joined(session.Values[sessionYears]),
		States: joined(session.Values[sessionStates]),
	}
}

// SaveSelection stores sel in the session. It must run before anything is
// written to w.
func SaveSelection(store sessions.Store, w http.ResponseWriter, r *http.Request, sel filter.Selection) error {
	// A stale or foreign cookie yields a fresh session alongside the error.
	session, _ := store.Get(r, SessionName)
	session.Values[sessionYears] = strings.Join(sel.Years, "\n")
	session.Values[sessionStates] = strings.Join(sel.States, "\n")
	return session.Save(r, w)
}

func joined(v any) []string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

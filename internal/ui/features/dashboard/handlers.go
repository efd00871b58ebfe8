package dashboard

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/waterdash/internal/engine"
	"github.com/leapstack-labs/waterdash/internal/filter"
	"github.com/leapstack-labs/waterdash/internal/report"
	"github.com/leapstack-labs/waterdash/internal/ui/features/common"
	"github.com/leapstack-labs/waterdash/internal/ui/notifier"
	"github.com/starfederation/datastar-go/datastar"
)

// Handlers provides HTTP handlers for the dashboard feature.
type Handlers struct {
	engine       *engine.Engine
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	isDev        bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(eng *engine.Engine, sessionStore sessions.Store, notify *notifier.Notifier, isDev bool) *Handlers {
	return &Handlers{
		engine:       eng,
		sessionStore: sessionStore,
		notifier:     notify,
		isDev:        isDev,
	}
}

// DashboardPage renders the full dashboard for the selection in the query
// string, or the one saved in the session.
func (h *Handlers) DashboardPage(w http.ResponseWriter, r *http.Request) {
	data, err := h.buildPageData(h.selection(r))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	if err := Page(data).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DashboardUpdates is the long-lived SSE endpoint. After each dataset reload
// it patches a trigger element that makes the browser re-post its current
// filter signals, so every client refreshes with its own selection.
func (h *Handlers) DashboardUpdates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case gen, ok := <-updates:
			if !ok {
				return
			}
			if err := sse.PatchElementTempl(ReloadTrigger(gen)); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// Filter stores the posted selection in the session and patches the
// dashboard content.
func (h *Handlers) Filter(w http.ResponseWriter, r *http.Request) {
	var signals FilterSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sel := signals.Selection()

	// The cookie must be written before the SSE stream starts.
	saveErr := common.SaveSelection(h.sessionStore, w, r, sel)

	sse := datastar.NewSSE(w, r)
	if saveErr != nil {
		_ = sse.ConsoleError(saveErr)
	}

	data, err := h.buildPageData(sel)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(Content(data)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Chart renders one of the dashboard charts as SVG.
func (h *Handlers) Chart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	rep, err := h.engine.Report(h.selection(r))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	var buf bytes.Buffer
	if err := RenderChart(&buf, name, rep); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = buf.WriteTo(w)
}

func (h *Handlers) selection(r *http.Request) filter.Selection {
	if q := r.URL.Query(); common.HasSelection(q) {
		return common.SelectionFromQuery(q)
	}
	return common.LoadSelection(h.sessionStore, r)
}

func (h *Handlers) buildPageData(sel filter.Selection) (PageData, error) {
	rep, err := h.engine.Report(sel)
	if err != nil {
		return PageData{}, err
	}
	return PageData{
		Title:      report.Title,
		IsDev:      h.isDev,
		Report:     rep,
		Selection:  sel,
		Query:      common.SelectionQuery(sel),
		Generation: h.engine.Generation(),
	}, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnknownChart):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrNotLoaded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

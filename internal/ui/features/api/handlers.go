package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leapstack-labs/waterdash/internal/engine"
	"github.com/leapstack-labs/waterdash/internal/filter"
	"github.com/leapstack-labs/waterdash/internal/report"
	"github.com/leapstack-labs/waterdash/internal/ui/features/common"
)

// Handlers provides HTTP handlers for the JSON API.
type Handlers struct {
	engine *engine.Engine
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(eng *engine.Engine) *Handlers {
	return &Handlers{engine: eng}
}

// ReportResponse is the body of GET /api/report.
type ReportResponse struct {
	*report.Report
	Metrics    []report.Metric `json:"metrics"`
	Generation uint64          `json:"generation"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Report answers with the report for the year and state query parameters.
// Unlike the page, the API never falls back to the session.
func (h *Handlers) Report(w http.ResponseWriter, r *http.Request) {
	rep, err := h.engine.Report(common.SelectionFromQuery(r.URL.Query()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ReportResponse{
		Report:     rep,
		Metrics:    rep.Metrics(),
		Generation: h.engine.Generation(),
	})
}

// Years answers with the distinct years in ascending order.
func (h *Handlers) Years(w http.ResponseWriter, _ *http.Request) {
	ds, err := h.engine.Dataset()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, filter.DistinctYears(ds))
}

// States answers with the distinct states in alphabetical order.
func (h *Handlers) States(w http.ResponseWriter, _ *http.Request) {
	ds, err := h.engine.Dataset()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, filter.DistinctStates(ds))
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, engine.ErrNotLoaded) {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendview/internal/dashboard"
	"github.com/MrJamesThe3rd/spendview/internal/filter"
)

type Handler struct {
	dash *dashboard.Dashboard
}

func NewHandler(dash *dashboard.Dashboard) *Handler {
	return &Handler{dash: dash}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.snapshot)
	r.Put("/filter", h.setFilter)
	r.Put("/sort", h.setSort)
}

func (h *Handler) snapshot(w http.ResponseWriter, _ *http.Request) {
	h.writeSnapshot(w)
}

type filterRequest struct {
	Range     filter.Range `json:"range"`
	StartDate *string      `json:"start_date,omitempty"`
	EndDate   *string      `json:"end_date,omitempty"`
}

func (h *Handler) setFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.dash.SetFilter(filter.Spec{Range: req.Range, Start: req.StartDate, End: req.EndDate}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeSnapshot(w)
}

type sortRequest struct {
	Field filter.SortField `json:"field"`
	Desc  bool             `json:"desc"`
}

func (h *Handler) setSort(w http.ResponseWriter, r *http.Request) {
	var req sortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.dash.SetSort(filter.Sort{Field: req.Field, Desc: req.Desc}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeSnapshot(w)
}

func (h *Handler) writeSnapshot(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.dash.Snapshot()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

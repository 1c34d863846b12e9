package matching

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendview/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.suggest)
}

type suggestResponse struct {
	Prefix     string   `json:"prefix"`
	Categories []string `json:"categories"`
	// Closest is set when prefix looks like a misspelled category.
	Closest string `json:"closest,omitempty"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")

	resp := suggestResponse{
		Prefix:     prefix,
		Categories: h.svc.Suggest(prefix),
	}

	if len(resp.Categories) == 0 {
		resp.Closest, _ = h.svc.Closest(prefix)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

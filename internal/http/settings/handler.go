package settings

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendview/internal/dashboard"
	"github.com/MrJamesThe3rd/spendview/internal/settings"
)

type Handler struct {
	dash *dashboard.Dashboard
}

func NewHandler(dash *dashboard.Dashboard) *Handler {
	return &Handler{dash: dash}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/currency", h.setCurrency)
	r.Put("/budget", h.setBudget)
	r.Post("/theme/toggle", h.toggleTheme)
}

func (h *Handler) get(w http.ResponseWriter, _ *http.Request) {
	writeSettings(w, h.dash.Settings())
}

type currencyRequest struct {
	Currency string `json:"currency"`
}

func (h *Handler) setCurrency(w http.ResponseWriter, r *http.Request) {
	var req currencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s, err := h.dash.SetCurrency(r.Context(), req.Currency)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	writeSettings(w, s)
}

type budgetRequest struct {
	MonthlyBudget json.Number `json:"monthly_budget"`
}

func (h *Handler) setBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, settings.ErrInvalidBudget.Error(), http.StatusBadRequest)
		return
	}

	s, err := h.dash.SetBudget(r.Context(), req.MonthlyBudget.String())
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	writeSettings(w, s)
}

func (h *Handler) toggleTheme(w http.ResponseWriter, r *http.Request) {
	writeSettings(w, h.dash.ToggleTheme(r.Context()))
}

func writeSettings(w http.ResponseWriter, s settings.Settings) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(s); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

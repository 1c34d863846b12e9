package expense

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendview/internal/dashboard"
	"github.com/MrJamesThe3rd/spendview/internal/expense"
)

type Handler struct {
	dash *dashboard.Dashboard
}

func NewHandler(dash *dashboard.Dashboard) *Handler {
	return &Handler{dash: dash}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createExpenseRequest struct {
	Amount   json.RawMessage `json:"amount"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
	Notes    string          `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.dash.AddExpense(r.Context(), expense.Draft{
		Amount:   rawAmount(req.Amount),
		Category: req.Category,
		Date:     req.Date,
		Notes:    req.Notes,
	})
	if err != nil {
		writeValidationError(w, err, nil)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(rec))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toResponseList(h.dash.Records()))
}

type updateExpenseRequest struct {
	Field   expense.Field `json:"field"`
	RawText string        `json:"raw_text"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.dash.EditExpense(r.Context(), id, req.Field, req.RawText)
	if err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		current := toResponse(rec)
		writeValidationError(w, err, &current)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(rec))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if !h.dash.DeleteExpense(r.Context(), id) {
		http.Error(w, "expense not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeValidationError answers 422. current is the last committed record, when the
// rejected request was an edit.
func writeValidationError(w http.ResponseWriter, err error, current *expenseResponse) {
	resp := errorResponse{Error: err.Error(), Record: current}

	var verr *expense.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
		resp.Error = verr.Err.Error()
	}

	writeJSON(w, http.StatusUnprocessableEntity, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

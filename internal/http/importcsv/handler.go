package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendview/internal/dashboard"
	"github.com/MrJamesThe3rd/spendview/internal/expense"
	"github.com/MrJamesThe3rd/spendview/internal/importer"
)

type Handler struct {
	importSvc *importer.Service
	dash      *dashboard.Dashboard
}

func NewHandler(importSvc *importer.Service, dash *dashboard.Dashboard) *Handler {
	return &Handler{
		importSvc: importSvc,
		dash:      dash,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type expenseResponse struct {
	ID       int64   `json:"id"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
	Notes    string  `json:"notes"`
}

type importSuccessResponse struct {
	Imported int               `json:"imported"`
	Expenses []expenseResponse `json:"expenses"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	source := importer.Source(r.FormValue("source"))

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	drafts, err := h.importSvc.Import(source, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.dash.ImportExpenses(r.Context(), drafts)
	if err != nil {
		status := http.StatusInternalServerError

		var verr *expense.ValidationError
		if errors.As(err, &verr) {
			status = http.StatusUnprocessableEntity
		}

		http.Error(w, err.Error(), status)

		return
	}

	slog.Info("imported expenses", "source", source, "count", len(records))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(records)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toSuccessResponse(records []expense.Record) importSuccessResponse {
	responses := make([]expenseResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, expenseResponse{
			ID:       r.ID,
			Amount:   r.Amount,
			Category: r.Category,
			Date:     r.Date,
			Notes:    r.Notes,
		})
	}

	return importSuccessResponse{
		Imported: len(records),
		Expenses: responses,
	}
}

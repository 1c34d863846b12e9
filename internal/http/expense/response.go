package expense

import (
	"encoding/json"
	"strings"

	"github.com/MrJamesThe3rd/spendview/internal/expense"
)

type expenseResponse struct {
	ID          int64   `json:"id"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	DisplayDate string  `json:"display_date"`
	Notes       string  `json:"notes"`
}

type errorResponse struct {
	Error  string           `json:"error"`
	Field  expense.Field    `json:"field,omitempty"`
	Record *expenseResponse `json:"record,omitempty"`
}

func toResponse(r expense.Record) expenseResponse {
	return expenseResponse{
		ID:          r.ID,
		Amount:      r.Amount,
		Category:    r.Category,
		Date:        r.Date,
		DisplayDate: expense.DisplayDate(r.Date),
		Notes:       r.Notes,
	}
}

func toResponseList(records []expense.Record) []expenseResponse {
	resp := make([]expenseResponse, len(records))
	for i, r := range records {
		resp[i] = toResponse(r)
	}

	return resp
}

// rawAmount accepts an amount sent either as a JSON number or as a string.
func rawAmount(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	text := strings.TrimSpace(string(raw))
	if text == "null" {
		return ""
	}

	return text
}

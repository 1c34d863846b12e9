package export

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendview/internal/export"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/zip", h.archive)
	r.Get("/{format}", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	content, err := h.svc.Render(format)
	if err != nil {
		writeExportError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName()))

	if _, err := w.Write([]byte(content)); err != nil {
		slog.Error("failed to write export", "format", format, "error", err)
	}
}

func (h *Handler) archive(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.Archive(&buf); err != nil {
		writeExportError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"expenses_%s.zip\"", time.Now().Format("20060102")))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write archive", "error", err)
	}
}

func writeExportError(w http.ResponseWriter, err error) {
	if errors.Is(err, export.ErrEmpty) {
		http.Error(w, export.EmptyMessage, http.StatusNotFound)
		return
	}

	slog.Error("export failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splittab/splittab-backend/internal/api/dto"
	"github.com/splittab/splittab-backend/internal/export"
	"github.com/splittab/splittab-backend/internal/infrastructure/storage"
)

// ExportHandler serves bill summaries in downloadable formats.
type ExportHandler struct {
	*Base
}

// NewExportHandler creates a new export handler.
func NewExportHandler(repo storage.Repository) *ExportHandler {
	return &ExportHandler{Base: NewBase(repo)}
}

// CSV handles GET /api/bills/{id}/export/csv.
func (h *ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBill(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="bill-%s.csv"`, b.ID))
	if err := export.WriteCSV(w, *b); err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
	}
}

// Text handles GET /api/bills/{id}/export/text.
func (h *ExportHandler) Text(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBill(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(export.SummaryText(*b)))
}

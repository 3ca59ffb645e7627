package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splittab/splittab-backend/internal/api/dto"
	"github.com/splittab/splittab-backend/internal/domain/engine"
	"github.com/splittab/splittab-backend/internal/infrastructure/storage"
)

// TotalsHandler serves the computed allocation views of a bill.
type TotalsHandler struct {
	*Base
}

// NewTotalsHandler creates a new totals handler.
func NewTotalsHandler(repo storage.Repository) *TotalsHandler {
	return &TotalsHandler{Base: NewBase(repo)}
}

// Totals handles GET /api/bills/{id}/totals.
func (h *TotalsHandler) Totals(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBill(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.TotalsResponse{
		BillID:       b.ID,
		PersonTotals: dto.FromPersonTotals(b, engine.PersonTotals(*b)),
	})
}

// Summary handles GET /api/bills/{id}/summary.
func (h *TotalsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBill(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	summary := engine.Summary(*b)
	h.WriteJSON(w, http.StatusOK, dto.SummaryResponse{
		BillID:       b.ID,
		Subtotal:     summary.Subtotal,
		Tax:          summary.Tax,
		Tip:          summary.Tip,
		Discount:     summary.Discount,
		Total:        summary.Total,
		PersonTotals: dto.FromPersonTotals(b, summary.PersonTotals),
	})
}

// Breakdowns handles GET /api/bills/{id}/breakdowns.
func (h *TotalsHandler) Breakdowns(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBill(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	breakdowns := engine.ItemBreakdowns(*b)
	out := make([]dto.ItemBreakdownResponse, len(breakdowns))
	for i, bd := range breakdowns {
		out[i] = dto.ItemBreakdownResponse{
			ItemID:    bd.ItemID,
			ItemName:  bd.ItemName,
			ItemPrice: bd.ItemPrice,
			Splits:    bd.Splits,
		}
	}

	h.WriteJSON(w, http.StatusOK, dto.BreakdownsResponse{
		BillID:     b.ID,
		Breakdowns: out,
	})
}

package handlers

import (
	"net/http"

	"github.com/splittab/splittab-backend/internal/api/dto"
	"github.com/splittab/splittab-backend/internal/domain/engine"
	"github.com/splittab/splittab-backend/internal/infrastructure/storage"
)

// StatsHandler serves aggregate counts across all stored bills.
type StatsHandler struct {
	*Base
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(repo storage.Repository) *StatsHandler {
	return &StatsHandler{Base: NewBase(repo)}
}

// ServeHTTP handles GET /api/stats.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.GetStats()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	// The grand total is computed, not stored, so it is summed here from the
	// engine rather than kept as a column that could drift.
	var totalAmount float64
	offset := 0
	for {
		result, err := h.repo.ListBills(storage.BillFilters{Limit: statsPageSize, Offset: offset})
		if err != nil {
			h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
			return
		}
		for _, b := range result.Bills {
			totalAmount += engine.Summary(*b).Total
		}
		offset += len(result.Bills)
		if len(result.Bills) < statsPageSize || offset >= result.TotalCount {
			break
		}
	}

	h.WriteJSON(w, http.StatusOK, dto.StatsResponse{
		TotalBills:  stats.TotalBills,
		DraftCount:  stats.DraftCount,
		ActiveCount: stats.ActiveCount,
		ClosedCount: stats.ClosedCount,
		TotalPeople: stats.TotalPeople,
		TotalItems:  stats.TotalItems,
		TotalAmount: totalAmount,
	})
}

const statsPageSize = 200

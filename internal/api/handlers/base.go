package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/splittab/splittab-backend/internal/api/dto"
	"github.com/splittab/splittab-backend/internal/domain/bill"
	"github.com/splittab/splittab-backend/internal/infrastructure/storage"
)

// Base provides shared functionality for all handlers.
type Base struct {
	repo storage.Repository
}

// NewBase creates a new base handler with the given repository.
func NewBase(repo storage.Repository) *Base {
	return &Base{repo: repo}
}

// WriteJSON writes a JSON response with the given status code.
func (b *Base) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error response with the given status code.
func (b *Base) WriteError(w http.ResponseWriter, status int, err dto.APIError) {
	b.WriteJSON(w, status, err)
}

// loadBill fetches a bill and writes the appropriate error response when it
// cannot be loaded. The second return value reports success.
func (b *Base) loadBill(w http.ResponseWriter, id string) (*bill.Bill, bool) {
	loaded, err := b.repo.GetBill(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			b.WriteError(w, http.StatusNotFound, dto.NotFoundError("bill"))
		} else {
			b.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		}
		return nil, false
	}
	return loaded, true
}

// ParseIntParam parses an integer query parameter with a default value.
func ParseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

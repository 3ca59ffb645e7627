package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/splittab/splittab-backend/internal/api/dto"
	"github.com/splittab/splittab-backend/internal/domain/bill"
	"github.com/splittab/splittab-backend/internal/infrastructure/storage"
)

// PeopleHandler handles people routes under a bill.
type PeopleHandler struct {
	*Base
}

// NewPeopleHandler creates a new people handler.
func NewPeopleHandler(repo storage.Repository) *PeopleHandler {
	return &PeopleHandler{Base: NewBase(repo)}
}

// Create handles POST /api/bills/{id}/people.
func (h *PeopleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}

	b, ok := h.loadBill(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	b.AddPerson(bill.Person{ID: uuid.NewString(), Name: req.Name, Color: req.Color})

	if err := h.repo.SaveBill(b); err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusCreated, dto.FromBill(b))
}

// Delete handles DELETE /api/bills/{id}/people/{personID}. Removing a person
// also removes them from every item's split list and custom splits.
func (h *PeopleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBill(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if !b.RemovePerson(chi.URLParam(r, "personID")) {
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("person"))
		return
	}

	if err := h.repo.SaveBill(b); err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.FromBill(b))
}

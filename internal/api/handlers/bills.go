package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/splittab/splittab-backend/internal/api/dto"
	"github.com/splittab/splittab-backend/internal/domain/bill"
	"github.com/splittab/splittab-backend/internal/infrastructure/storage"
)

// BillsHandler handles bill CRUD requests.
type BillsHandler struct {
	*Base
}

// NewBillsHandler creates a new bills handler.
func NewBillsHandler(repo storage.Repository) *BillsHandler {
	return &BillsHandler{Base: NewBase(repo)}
}

// Create handles POST /api/bills.
func (h *BillsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}

	b := &bill.Bill{
		ID:               uuid.NewString(),
		Title:            req.Title,
		Status:           bill.StatusDraft,
		Tax:              req.Tax,
		Tip:              req.Tip,
		Discount:         req.Discount,
		TaxTipAllocation: bill.AllocationProportional,
	}
	if req.Status != "" {
		b.Status = bill.Status(req.Status)
	}
	if req.TaxTipAllocation != "" {
		b.TaxTipAllocation = bill.AllocationMode(req.TaxTipAllocation)
	}

	// People first: item split_with entries must refer to people created in
	// the same request, by roster position ("0", "1", ...) or by name.
	aliases := make(map[string]string)
	for i, p := range req.People {
		person := bill.Person{ID: uuid.NewString(), Name: p.Name, Color: p.Color}
		b.AddPerson(person)
		aliases[indexAlias(i)] = person.ID
		if _, taken := aliases[p.Name]; !taken {
			aliases[p.Name] = person.ID
		}
	}

	for i, it := range req.Items {
		item, err := buildItem(b, it, aliases)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, dto.ValidationError(
				fmt.Sprintf("items[%d]: %v", i, err)))
			return
		}
		b.AddItem(item)
	}

	if err := h.repo.SaveBill(b); err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusCreated, dto.FromBill(b))
}

// List handles GET /api/bills.
func (h *BillsHandler) List(w http.ResponseWriter, r *http.Request) {
	params := dto.DefaultBillListParams()
	params.Status = r.URL.Query().Get("status")
	params.Limit = ParseIntParam(r, "limit", params.Limit)
	params.Offset = ParseIntParam(r, "offset", params.Offset)

	if params.Status != "" && !bill.ValidStatus(bill.Status(params.Status)) {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("unknown status "+params.Status))
		return
	}

	result, err := h.repo.ListBills(storage.BillFilters{
		Status: params.Status,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.FromBillList(result))
}

// Get handles GET /api/bills/{id}.
func (h *BillsHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBill(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	h.WriteJSON(w, http.StatusOK, dto.FromBill(b))
}

// Update handles PUT /api/bills/{id}. Only bill-level fields change here;
// people and items have their own routes.
func (h *BillsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateBillRequest
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

	b.Title = req.Title
	b.Tax = req.Tax
	b.Tip = req.Tip
	b.Discount = req.Discount
	if req.Status != "" {
		b.Status = bill.Status(req.Status)
	}
	if req.TaxTipAllocation != "" {
		b.TaxTipAllocation = bill.AllocationMode(req.TaxTipAllocation)
	}

	if err := h.repo.SaveBill(b); err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.FromBill(b))
}

// Delete handles DELETE /api/bills/{id}.
func (h *BillsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.repo.DeleteBill(chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrNotFound) {
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("bill"))
		return
	}
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

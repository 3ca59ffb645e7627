package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/splittab/splittab-backend/internal/api/dto"
	"github.com/splittab/splittab-backend/internal/domain/bill"
	"github.com/splittab/splittab-backend/internal/infrastructure/storage"
)

// ItemsHandler handles item routes under a bill.
type ItemsHandler struct {
	*Base
}

// NewItemsHandler creates a new items handler.
func NewItemsHandler(repo storage.Repository) *ItemsHandler {
	return &ItemsHandler{Base: NewBase(repo)}
}

// Create handles POST /api/bills/{id}/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ItemRequest
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

	item, err := buildItem(b, req, nil)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}
	b.AddItem(item)

	if err := h.repo.SaveBill(b); err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusCreated, dto.FromBill(b))
}

// Update handles PUT /api/bills/{id}/items/{itemID}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.ItemRequest
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

	itemID := chi.URLParam(r, "itemID")
	if _, found := b.FindItem(itemID); !found {
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("item"))
		return
	}

	item, err := buildItem(b, req, nil)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}
	item.ID = itemID
	b.UpdateItem(item)

	if err := h.repo.SaveBill(b); err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.FromBill(b))
}

// Delete handles DELETE /api/bills/{id}/items/{itemID}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBill(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if !b.RemoveItem(chi.URLParam(r, "itemID")) {
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("item"))
		return
	}

	if err := h.repo.SaveBill(b); err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.FromBill(b))
}

// buildItem converts an item request into a domain item with a fresh ID,
// resolving and checking participant references against the bill roster.
//
// aliases maps roster positions ("0", "1", ...) and person names to IDs for
// bills created in a single request, where the client cannot know generated
// person IDs yet. It may be nil.
func buildItem(b *bill.Bill, req dto.ItemRequest, aliases map[string]string) (bill.Item, error) {
	resolve := func(ref string) (string, error) {
		if _, found := b.FindPerson(ref); found {
			return ref, nil
		}
		if aliases != nil {
			if id, ok := aliases[ref]; ok {
				return id, nil
			}
		}
		return "", fmt.Errorf("split_with refers to unknown person %q", ref)
	}

	splitWith := make([]string, 0, len(req.SplitWith))
	seen := make(map[string]bool, len(req.SplitWith))
	for _, ref := range req.SplitWith {
		id, err := resolve(ref)
		if err != nil {
			return bill.Item{}, err
		}
		if !seen[id] {
			seen[id] = true
			splitWith = append(splitWith, id)
		}
	}

	var customSplits map[string]float64
	if len(req.CustomSplits) > 0 {
		customSplits = make(map[string]float64, len(req.CustomSplits))
		for ref, v := range req.CustomSplits {
			id, err := resolve(ref)
			if err != nil {
				return bill.Item{}, fmt.Errorf("custom_splits refers to unknown person %q", ref)
			}
			customSplits[id] = v
		}
	}

	method := bill.SplitEven
	if req.Method != "" {
		method = bill.SplitMethod(req.Method)
	}
	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	return bill.Item{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Price:        req.Price,
		Quantity:     quantity,
		SplitWith:    splitWith,
		Method:       method,
		CustomSplits: customSplits,
	}, nil
}

// indexAlias is the roster-position alias used in create-bill payloads.
func indexAlias(i int) string {
	return strconv.Itoa(i)
}

package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splittab/splittab-backend/internal/api/dto"
	"github.com/splittab/splittab-backend/internal/api/handlers"
	"github.com/splittab/splittab-backend/internal/infrastructure/storage"
)

func TestItemsHandler_Create(t *testing.T) {
	t.Run("adds item to existing bill", func(t *testing.T) {
		repo := storage.NewMockRepository()
		repo.AddBill(dinnerBill())

		handler := handlers.NewItemsHandler(repo)

		body := `{"name": "Dessert", "price": "7.48", "split_with": ["alice", "bob"]}`
		req := httptest.NewRequest(http.MethodPost, "/api/bills/bill-1/items", strings.NewReader(body))
		req = req.WithContext(setChiURLParam(req.Context(), "id", "bill-1"))
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var response dto.BillResponse
		err := json.NewDecoder(rec.Body).Decode(&response)
		require.NoError(t, err)

		require.Len(t, response.Items, 3)
		added := response.Items[2]
		assert.NotEmpty(t, added.ID)
		assert.Equal(t, "Dessert", added.Name)
		assert.Equal(t, "even", added.Method) // default
		assert.Equal(t, 1, added.Quantity)    // default
		assert.Equal(t, []string{"alice", "bob"}, added.SplitWith)
	})

	t.Run("resolves custom splits against roster", func(t *testing.T) {
		repo := storage.NewMockRepository()
		repo.AddBill(dinnerBill())

		handler := handlers.NewItemsHandler(repo)

		body := `{"name": "Wine", "price": "30.00", "method": "shares", "split_with": ["alice", "bob"], "custom_splits": {"alice": 2, "bob": 1}}`
		req := httptest.NewRequest(http.MethodPost, "/api/bills/bill-1/items", strings.NewReader(body))
		req = req.WithContext(setChiURLParam(req.Context(), "id", "bill-1"))
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var response dto.BillResponse
		err := json.NewDecoder(rec.Body).Decode(&response)
		require.NoError(t, err)

		added := response.Items[2]
		assert.Equal(t, "shares", added.Method)
		assert.Equal(t, map[string]float64{"alice": 2, "bob": 1}, added.CustomSplits)
	})

	t.Run("rejects unknown person reference", func(t *testing.T) {
		repo := storage.NewMockRepository()
		repo.AddBill(dinnerBill())

		handler := handlers.NewItemsHandler(repo)

		body := `{"name": "Dessert", "price": "7.48", "split_with": ["carol"]}`
		req := httptest.NewRequest(http.MethodPost, "/api/bills/bill-1/items", strings.NewReader(body))
		req = req.WithContext(setChiURLParam(req.Context(), "id", "bill-1"))
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var response dto.APIError
		err := json.NewDecoder(rec.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, dto.ErrCodeValidation, response.Code)
	})

	t.Run("rejects unknown split method", func(t *testing.T) {
		repo := storage.NewMockRepository()
		repo.AddBill(dinnerBill())

		handler := handlers.NewItemsHandler(repo)

		body := `{"name": "Dessert", "price": "7.48", "method": "random"}`
		req := httptest.NewRequest(http.MethodPost, "/api/bills/bill-1/items", strings.NewReader(body))
		req = req.WithContext(setChiURLParam(req.Context(), "id", "bill-1"))
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns 404 for non-existent bill", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := handlers.NewItemsHandler(repo)

		body := `{"name": "Dessert", "price": "7.48"}`
		req := httptest.NewRequest(http.MethodPost, "/api/bills/missing/items", strings.NewReader(body))
		req = req.WithContext(setChiURLParam(req.Context(), "id", "missing"))
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestItemsHandler_Update(t *testing.T) {
	t.Run("replaces item keeping its ID", func(t *testing.T) {
		repo := storage.NewMockRepository()
		repo.AddBill(dinnerBill())

		handler := handlers.NewItemsHandler(repo)

		body := `{"name": "Pasta deluxe", "price": "16.00", "quantity": 2, "split_with": ["alice"]}`
		req := httptest.NewRequest(http.MethodPut, "/api/bills/bill-1/items/item-1", strings.NewReader(body))
		req = req.WithContext(setChiURLParams(req.Context(), map[string]string{
			"id": "bill-1", "itemID": "item-1",
		}))
		rec := httptest.NewRecorder()

		handler.Update(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var response dto.BillResponse
		err := json.NewDecoder(rec.Body).Decode(&response)
		require.NoError(t, err)

		updated := response.Items[0]
		assert.Equal(t, "item-1", updated.ID)
		assert.Equal(t, "Pasta deluxe", updated.Name)
		assert.Equal(t, "16.00", updated.Price)
		assert.Equal(t, 2, updated.Quantity)
		assert.Equal(t, []string{"alice"}, updated.SplitWith)
	})

	t.Run("returns 404 for non-existent item", func(t *testing.T) {
		repo := storage.NewMockRepository()
		repo.AddBill(dinnerBill())

		handler := handlers.NewItemsHandler(repo)

		body := `{"name": "Dessert", "price": "7.48"}`
		req := httptest.NewRequest(http.MethodPut, "/api/bills/bill-1/items/missing", strings.NewReader(body))
		req = req.WithContext(setChiURLParams(req.Context(), map[string]string{
			"id": "bill-1", "itemID": "missing",
		}))
		rec := httptest.NewRecorder()

		handler.Update(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestItemsHandler_Delete(t *testing.T) {
	t.Run("removes item", func(t *testing.T) {
		repo := storage.NewMockRepository()
		repo.AddBill(dinnerBill())

		handler := handlers.NewItemsHandler(repo)

		req := httptest.NewRequest(http.MethodDelete, "/api/bills/bill-1/items/item-1", nil)
		req = req.WithContext(setChiURLParams(req.Context(), map[string]string{
			"id": "bill-1", "itemID": "item-1",
		}))
		rec := httptest.NewRecorder()

		handler.Delete(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var response dto.BillResponse
		err := json.NewDecoder(rec.Body).Decode(&response)
		require.NoError(t, err)

		require.Len(t, response.Items, 1)
		assert.Equal(t, "item-2", response.Items[0].ID)
	})

	t.Run("returns 404 for non-existent item", func(t *testing.T) {
		repo := storage.NewMockRepository()
		repo.AddBill(dinnerBill())

		handler := handlers.NewItemsHandler(repo)

		req := httptest.NewRequest(http.MethodDelete, "/api/bills/bill-1/items/missing", nil)
		req = req.WithContext(setChiURLParams(req.Context(), map[string]string{
			"id": "bill-1", "itemID": "missing",
		}))
		rec := httptest.NewRecorder()

		handler.Delete(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

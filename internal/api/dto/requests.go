package dto

import (
	"fmt"

	"github.com/splittab/splittab-backend/internal/domain/bill"
)

// CreateBillRequest is the body for POST /api/bills.
type CreateBillRequest struct {
	Title            string          `json:"title"`
	Status           string          `json:"status"`
	Tax              string          `json:"tax"`
	Tip              string          `json:"tip"`
	Discount         string          `json:"discount"`
	TaxTipAllocation string          `json:"tax_tip_allocation"`
	People           []PersonRequest `json:"people"`
	Items            []ItemRequest   `json:"items"`
}

// UpdateBillRequest is the body for PUT /api/bills/{id}. It replaces the
// bill-level fields; people and items are managed through their own routes.
type UpdateBillRequest struct {
	Title            string `json:"title"`
	Status           string `json:"status"`
	Tax              string `json:"tax"`
	Tip              string `json:"tip"`
	Discount         string `json:"discount"`
	TaxTipAllocation string `json:"tax_tip_allocation"`
}

// PersonRequest is the body for POST /api/bills/{id}/people.
type PersonRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ItemRequest is the body for item create/update routes.
type ItemRequest struct {
	Name         string             `json:"name"`
	Price        string             `json:"price"`
	Quantity     int                `json:"quantity"`
	SplitWith    []string           `json:"split_with"`
	Method       string             `json:"method"`
	CustomSplits map[string]float64 `json:"custom_splits"`
}

// BillListParams represents query parameters for listing bills.
type BillListParams struct {
	Status string `json:"status"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// DefaultBillListParams returns default values for bill list params.
func DefaultBillListParams() BillListParams {
	return BillListParams{
		Limit:  50,
		Offset: 0,
	}
}

// Validate checks the create request for unusable values.
func (r *CreateBillRequest) Validate() error {
	if r.Status != "" && !bill.ValidStatus(bill.Status(r.Status)) {
		return fmt.Errorf("unknown status %q", r.Status)
	}
	if r.TaxTipAllocation != "" && !bill.ValidAllocation(bill.AllocationMode(r.TaxTipAllocation)) {
		return fmt.Errorf("unknown tax_tip_allocation %q", r.TaxTipAllocation)
	}
	for i, p := range r.People {
		if p.Name == "" {
			return fmt.Errorf("people[%d]: name is required", i)
		}
	}
	for i, it := range r.Items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	return nil
}

// Validate checks the update request for unusable values.
func (r *UpdateBillRequest) Validate() error {
	if r.Status != "" && !bill.ValidStatus(bill.Status(r.Status)) {
		return fmt.Errorf("unknown status %q", r.Status)
	}
	if r.TaxTipAllocation != "" && !bill.ValidAllocation(bill.AllocationMode(r.TaxTipAllocation)) {
		return fmt.Errorf("unknown tax_tip_allocation %q", r.TaxTipAllocation)
	}
	return nil
}

// Validate checks the person request.
func (r *PersonRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// Validate checks the item request.
func (r *ItemRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Method != "" && !bill.ValidMethod(bill.SplitMethod(r.Method)) {
		return fmt.Errorf("unknown method %q", r.Method)
	}
	if r.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}
	return nil
}

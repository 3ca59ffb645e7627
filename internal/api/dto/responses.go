package dto

import (
	"time"

	"github.com/splittab/splittab-backend/internal/domain/bill"
	"github.com/splittab/splittab-backend/internal/infrastructure/storage"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a healthy response with the current time.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// PersonResponse represents a person in API responses.
type PersonResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// ItemResponse represents an item in API responses.
type ItemResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Price        string             `json:"price"`
	Quantity     int                `json:"quantity"`
	SplitWith    []string           `json:"split_with"`
	Method       string             `json:"method"`
	CustomSplits map[string]float64 `json:"custom_splits,omitempty"`
}

// BillResponse represents a full bill in API responses.
type BillResponse struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Status           string           `json:"status"`
	Tax              string           `json:"tax"`
	Tip              string           `json:"tip"`
	Discount         string           `json:"discount"`
	TaxTipAllocation string           `json:"tax_tip_allocation"`
	People           []PersonResponse `json:"people"`
	Items            []ItemResponse   `json:"items"`
}

// BillListResponse is returned when listing bills.
type BillListResponse struct {
	Bills      []BillResponse `json:"bills"`
	TotalCount int            `json:"total_count"`
	Limit      int            `json:"limit"`
	Offset     int            `json:"offset"`
}

// PersonTotalResponse represents one person's computed totals.
type PersonTotalResponse struct {
	PersonID   string  `json:"person_id"`
	PersonName string  `json:"person_name"`
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	Tip        float64 `json:"tip"`
	Discount   float64 `json:"discount"`
	Total      float64 `json:"total"`
}

// TotalsResponse is returned by the totals endpoint.
type TotalsResponse struct {
	BillID       string                `json:"bill_id"`
	PersonTotals []PersonTotalResponse `json:"person_totals"`
}

// SummaryResponse is returned by the summary endpoint.
type SummaryResponse struct {
	BillID       string                `json:"bill_id"`
	Subtotal     float64               `json:"subtotal"`
	Tax          float64               `json:"tax"`
	Tip          float64               `json:"tip"`
	Discount     float64               `json:"discount"`
	Total        float64               `json:"total"`
	PersonTotals []PersonTotalResponse `json:"person_totals"`
}

// ItemBreakdownResponse represents one item's per-person splits.
type ItemBreakdownResponse struct {
	ItemID    string             `json:"item_id"`
	ItemName  string             `json:"item_name"`
	ItemPrice float64            `json:"item_price"`
	Splits    map[string]float64 `json:"splits"`
}

// BreakdownsResponse is returned by the breakdowns endpoint.
type BreakdownsResponse struct {
	BillID     string                  `json:"bill_id"`
	Breakdowns []ItemBreakdownResponse `json:"breakdowns"`
}

// StatsResponse is returned by the stats endpoint.
type StatsResponse struct {
	TotalBills  int     `json:"total_bills"`
	DraftCount  int     `json:"draft_count"`
	ActiveCount int     `json:"active_count"`
	ClosedCount int     `json:"closed_count"`
	TotalPeople int     `json:"total_people"`
	TotalItems  int     `json:"total_items"`
	TotalAmount float64 `json:"total_amount"`
}

// FromBill converts a domain bill to its response shape.
func FromBill(b *bill.Bill) BillResponse {
	people := make([]PersonResponse, len(b.People))
	for i, p := range b.People {
		people[i] = PersonResponse{ID: p.ID, Name: p.Name, Color: p.Color}
	}
	items := make([]ItemResponse, len(b.Items))
	for i, it := range b.Items {
		items[i] = ItemResponse{
			ID:           it.ID,
			Name:         it.Name,
			Price:        it.Price,
			Quantity:     it.Quantity,
			SplitWith:    it.SplitWith,
			Method:       string(it.Method),
			CustomSplits: it.CustomSplits,
		}
	}
	return BillResponse{
		ID:               b.ID,
		Title:            b.Title,
		Status:           string(b.Status),
		Tax:              b.Tax,
		Tip:              b.Tip,
		Discount:         b.Discount,
		TaxTipAllocation: string(b.TaxTipAllocation),
		People:           people,
		Items:            items,
	}
}

// FromBillList converts a storage list result to its response shape.
func FromBillList(result *storage.BillListResult) BillListResponse {
	bills := make([]BillResponse, len(result.Bills))
	for i, b := range result.Bills {
		bills[i] = FromBill(b)
	}
	return BillListResponse{
		Bills:      bills,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	}
}

// FromPersonTotals converts engine output to response shape, resolving
// person names from the bill roster.
func FromPersonTotals(b *bill.Bill, totals []bill.PersonTotal) []PersonTotalResponse {
	names := make(map[string]string, len(b.People))
	for _, p := range b.People {
		names[p.ID] = p.Name
	}
	out := make([]PersonTotalResponse, len(totals))
	for i, pt := range totals {
		out[i] = PersonTotalResponse{
			PersonID:   pt.PersonID,
			PersonName: names[pt.PersonID],
			Subtotal:   pt.Subtotal,
			Tax:        pt.Tax,
			Tip:        pt.Tip,
			Discount:   pt.Discount,
			Total:      pt.Total,
		}
	}
	return out
}

package storage

import (
	"errors"

	"github.com/splittab/splittab-backend/internal/domain/bill"
)

// ErrNotFound is returned when a bill does not exist.
var ErrNotFound = errors.New("bill not found")

// Repository defines the complete storage interface.
// This interface allows swapping implementations (SQLite, PostgreSQL, etc.)
// and makes testing with mocks straightforward.
type Repository interface {
	BillRepository
	Close() error
}

// BillRepository handles bill persistence.
type BillRepository interface {
	// SaveBill inserts or replaces a bill by ID.
	SaveBill(b *bill.Bill) error

	// GetBill retrieves a bill by ID. Returns ErrNotFound if absent.
	GetBill(id string) (*bill.Bill, error)

	// DeleteBill removes a bill. Returns ErrNotFound if absent.
	DeleteBill(id string) error

	// ListBills returns bills matching the given filters with pagination.
	ListBills(filters BillFilters) (*BillListResult, error)

	// GetStats returns aggregate statistics across all bills.
	GetStats() (*Stats, error)
}

// BillFilters defines filters for listing bills.
type BillFilters struct {
	Status string // Filter by status (empty = all)
	Limit  int    // Max results (0 = default 50)
	Offset int    // Pagination offset
}

// BillListResult contains paginated bill results.
type BillListResult struct {
	Bills      []*bill.Bill `json:"bills"`
	TotalCount int          `json:"total_count"`
	Limit      int          `json:"limit"`
	Offset     int          `json:"offset"`
}

// Stats holds aggregate counts across all stored bills.
type Stats struct {
	TotalBills  int `json:"total_bills"`
	DraftCount  int `json:"draft_count"`
	ActiveCount int `json:"active_count"`
	ClosedCount int `json:"closed_count"`
	TotalPeople int `json:"total_people"`
	TotalItems  int `json:"total_items"`
}

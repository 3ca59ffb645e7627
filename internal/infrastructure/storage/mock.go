package storage

import (
	"github.com/splittab/splittab-backend/internal/domain/bill"
)

// MockRepository is an in-memory implementation of Repository for testing.
// It stores bills in a map, making tests fast and isolated.
type MockRepository struct {
	bills map[string]*bill.Bill
	order []string // insertion order, newest last

	// Hooks for test assertions
	SaveBillCalled   bool
	LastSavedBill    *bill.Bill
	GetBillCalled    bool
	DeleteBillCalled bool

	// Error injection for testing error paths
	SaveBillErr   error
	GetBillErr    error
	DeleteBillErr error
	ListBillsErr  error
	GetStatsErr   error
}

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		bills: make(map[string]*bill.Bill),
	}
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// SaveBill stores a copy of the bill.
func (m *MockRepository) SaveBill(b *bill.Bill) error {
	m.SaveBillCalled = true
	if m.SaveBillErr != nil {
		return m.SaveBillErr
	}
	clone := cloneBill(b)
	if _, exists := m.bills[b.ID]; !exists {
		m.order = append(m.order, b.ID)
	}
	m.bills[b.ID] = clone
	m.LastSavedBill = clone
	return nil
}

// GetBill returns a copy of the stored bill.
func (m *MockRepository) GetBill(id string) (*bill.Bill, error) {
	m.GetBillCalled = true
	if m.GetBillErr != nil {
		return nil, m.GetBillErr
	}
	b, ok := m.bills[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneBill(b), nil
}

// DeleteBill removes the bill.
func (m *MockRepository) DeleteBill(id string) error {
	m.DeleteBillCalled = true
	if m.DeleteBillErr != nil {
		return m.DeleteBillErr
	}
	if _, ok := m.bills[id]; !ok {
		return ErrNotFound
	}
	delete(m.bills, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListBills returns bills newest first, honoring status filter and paging.
func (m *MockRepository) ListBills(filters BillFilters) (*BillListResult, error) {
	if m.ListBillsErr != nil {
		return nil, m.ListBillsErr
	}
	if filters.Limit <= 0 {
		filters.Limit = 50
	}

	// Newest first: reverse insertion order.
	ids := make([]string, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		ids = append(ids, m.order[i])
	}

	matched := make([]*bill.Bill, 0)
	for _, id := range ids {
		b := m.bills[id]
		if filters.Status != "" && string(b.Status) != filters.Status {
			continue
		}
		matched = append(matched, cloneBill(b))
	}

	total := len(matched)
	start := filters.Offset
	if start > total {
		start = total
	}
	end := start + filters.Limit
	if end > total {
		end = total
	}

	return &BillListResult{
		Bills:      matched[start:end],
		TotalCount: total,
		Limit:      filters.Limit,
		Offset:     filters.Offset,
	}, nil
}

// GetStats aggregates over stored bills.
func (m *MockRepository) GetStats() (*Stats, error) {
	if m.GetStatsErr != nil {
		return nil, m.GetStatsErr
	}
	stats := &Stats{}
	for _, b := range m.bills {
		stats.TotalBills++
		switch b.Status {
		case bill.StatusDraft:
			stats.DraftCount++
		case bill.StatusActive:
			stats.ActiveCount++
		case bill.StatusClosed:
			stats.ClosedCount++
		}
		stats.TotalPeople += len(b.People)
		stats.TotalItems += len(b.Items)
	}
	return stats, nil
}

// Close is a no-op for the mock.
func (m *MockRepository) Close() error {
	return nil
}

// AddBill seeds the mock without tripping the SaveBillCalled hook.
func (m *MockRepository) AddBill(b *bill.Bill) {
	clone := cloneBill(b)
	if _, exists := m.bills[b.ID]; !exists {
		m.order = append(m.order, b.ID)
	}
	m.bills[b.ID] = clone
}

func cloneBill(b *bill.Bill) *bill.Bill {
	clone := *b
	clone.People = append([]bill.Person(nil), b.People...)
	clone.Items = make([]bill.Item, len(b.Items))
	for i, it := range b.Items {
		itemClone := it
		itemClone.SplitWith = append([]string(nil), it.SplitWith...)
		if it.CustomSplits != nil {
			itemClone.CustomSplits = make(map[string]float64, len(it.CustomSplits))
			for k, v := range it.CustomSplits {
				itemClone.CustomSplits[k] = v
			}
		}
		clone.Items[i] = itemClone
	}
	return &clone
}

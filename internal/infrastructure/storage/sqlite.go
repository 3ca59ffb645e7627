// Package storage persists bills in SQLite.
//
// People and items are stored as JSON columns on the bill row: a bill
// exclusively owns its people and items, so there is nothing to join across
// bills and the whole aggregate reads and writes atomically.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/splittab/splittab-backend/internal/domain/bill"
)

// Storage provides SQLite database access for bills.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveBill inserts or replaces a bill by ID.
func (s *Storage) SaveBill(b *bill.Bill) error {
	peopleJSON, err := json.Marshal(b.People)
	if err != nil {
		return fmt.Errorf("failed to marshal people: %w", err)
	}
	itemsJSON, err := json.Marshal(b.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}

	now := time.Now().UTC()
	query := `
	INSERT INTO bills
	(id, title, status, tax, tip, discount, tax_tip_allocation,
	 people_json, items_json, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 title = excluded.title,
	 status = excluded.status,
	 tax = excluded.tax,
	 tip = excluded.tip,
	 discount = excluded.discount,
	 tax_tip_allocation = excluded.tax_tip_allocation,
	 people_json = excluded.people_json,
	 items_json = excluded.items_json,
	 updated_at = excluded.updated_at
	`

	_, err = s.db.Exec(query,
		b.ID,
		b.Title,
		string(b.Status),
		b.Tax,
		b.Tip,
		b.Discount,
		string(b.TaxTipAllocation),
		string(peopleJSON),
		string(itemsJSON),
		now,
		now,
	)
	return err
}

// GetBill retrieves a bill by ID.
func (s *Storage) GetBill(id string) (*bill.Bill, error) {
	query := `
	SELECT id, title, status, tax, tip, discount, tax_tip_allocation,
	       people_json, items_json
	FROM bills WHERE id = ?
	`

	b, err := scanBill(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBill removes a bill by ID.
func (s *Storage) DeleteBill(id string) error {
	result, err := s.db.Exec("DELETE FROM bills WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBills returns bills matching the filters, newest first.
func (s *Storage) ListBills(filters BillFilters) (*BillListResult, error) {
	if filters.Limit <= 0 {
		filters.Limit = 50
	}

	where := ""
	args := []interface{}{}
	if filters.Status != "" {
		where = "WHERE status = ?"
		args = append(args, filters.Status)
	}

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM bills " + where
	if err := s.db.QueryRow(countQuery, args...).Scan(&totalCount); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
	SELECT id, title, status, tax, tip, discount, tax_tip_allocation,
	       people_json, items_json
	FROM bills %s
	ORDER BY created_at DESC, id DESC
	LIMIT ? OFFSET ?
	`, where)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := make([]*bill.Bill, 0)
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &BillListResult{
		Bills:      bills,
		TotalCount: totalCount,
		Limit:      filters.Limit,
		Offset:     filters.Offset,
	}, nil
}

// GetStats returns aggregate counts across all bills.
func (s *Storage) GetStats() (*Stats, error) {
	stats := &Stats{}

	query := `
	SELECT
	 COUNT(*),
	 COALESCE(SUM(CASE WHEN status = 'draft' THEN 1 ELSE 0 END), 0),
	 COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0),
	 COALESCE(SUM(CASE WHEN status = 'closed' THEN 1 ELSE 0 END), 0),
	 COALESCE(SUM(json_array_length(people_json)), 0),
	 COALESCE(SUM(json_array_length(items_json)), 0)
	FROM bills
	`
	err := s.db.QueryRow(query).Scan(
		&stats.TotalBills,
		&stats.DraftCount,
		&stats.ActiveCount,
		&stats.ClosedCount,
		&stats.TotalPeople,
		&stats.TotalItems,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBill(row scanner) (*bill.Bill, error) {
	var b bill.Bill
	var status, allocation, peopleJSON, itemsJSON string

	err := row.Scan(
		&b.ID,
		&b.Title,
		&status,
		&b.Tax,
		&b.Tip,
		&b.Discount,
		&allocation,
		&peopleJSON,
		&itemsJSON,
	)
	if err != nil {
		return nil, err
	}

	b.Status = bill.Status(status)
	b.TaxTipAllocation = bill.AllocationMode(allocation)

	if err := json.Unmarshal([]byte(peopleJSON), &b.People); err != nil {
		return nil, fmt.Errorf("failed to unmarshal people: %w", err)
	}
	if err := json.Unmarshal([]byte(itemsJSON), &b.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items: %w", err)
	}

	return &b, nil
}

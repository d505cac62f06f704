// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/wattbill/internal/models"
)

// ErrNotFound is returned when an operation targets a bill id that does not exist.
var ErrNotFound = errors.New("bill not found")

// Store defines the interface for bill storage operations.
// Each call is a single statement; no transaction spans more than one call.
type Store interface {
	// CreateBill persists a new bill.
	// The bill.ID field will be populated by the store.
	CreateBill(ctx context.Context, bill *models.BillRecord) error

	// GetBill retrieves a bill by its ID.
	// Returns ErrNotFound if the bill does not exist.
	GetBill(ctx context.Context, id int64) (*models.BillRecord, error)

	// UpdateBill overwrites every mutable field of the bill with the same ID.
	// Returns ErrNotFound if the bill does not exist.
	UpdateBill(ctx context.Context, bill *models.BillRecord) error

	// DeleteBill removes a bill by ID.
	// Returns ErrNotFound if the bill does not exist.
	DeleteBill(ctx context.Context, id int64) error

	// ListBills returns a snapshot of every bill ordered by ID.
	ListBills(ctx context.Context) ([]*models.BillRecord, error)

	// TotalRevenue returns the sum of TotalBill across all bills, or 0 when there are none.
	TotalRevenue(ctx context.Context) (float64, error)

	// Close releases any resources held by the store.
	Close() error
}

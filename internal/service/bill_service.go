// Package service validates drafts, prices them and persists them through a storage.Store.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mmynk/wattbill/internal/calculator"
	"github.com/mmynk/wattbill/internal/models"
	"github.com/mmynk/wattbill/internal/storage"
)

// ConfirmFunc is asked before a bill is deleted. Returning false cancels the delete.
type ConfirmFunc func(bill *models.BillRecord) bool

// BillService is the only writer of bills; it keeps TotalBill equal to the
// calculator's result for Units on every stored record.
type BillService struct {
	store storage.Store
}

// NewBillService creates a new BillService with the given storage backend.
func NewBillService(store storage.Store) *BillService {
	return &BillService{store: store}
}

// parseDraft validates every field of the draft and returns the record it describes.
// Negative units are rejected on every path.
func parseDraft(draft models.Draft) (*models.BillRecord, error) {
	name := strings.TrimSpace(draft.Name)
	address := strings.TrimSpace(draft.Address)
	rawUnits := strings.TrimSpace(draft.Units)

	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "is required"}
	}
	if address == "" {
		return nil, &ValidationError{Field: "address", Reason: "is required"}
	}
	if rawUnits == "" {
		return nil, &ValidationError{Field: "units", Reason: "is required"}
	}

	units, err := strconv.ParseInt(rawUnits, 10, 64)
	if err != nil {
		return nil, &ValidationError{Field: "units", Reason: "must be a whole number"}
	}
	if units < 0 {
		return nil, &ValidationError{Field: "units", Reason: "must not be negative"}
	}

	return &models.BillRecord{
		Name:      name,
		Address:   address,
		Units:     units,
		TotalBill: calculator.ComputeTotal(units),
	}, nil
}

// storageErr translates a store error: a missing row is a selection problem,
// everything else is a storage failure.
func storageErr(op string, id int64, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return &SelectionError{ID: id}
	}
	return &StorageError{Op: op, Err: err}
}

// Create validates the draft, prices it and inserts it. The returned record carries the assigned ID.
func (s *BillService) Create(ctx context.Context, draft models.Draft) (*models.BillRecord, error) {
	bill, err := parseDraft(draft)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateBill(ctx, bill); err != nil {
		return nil, &StorageError{Op: "create bill", Err: err}
	}

	slog.Info("Bill created", "bill_id", bill.ID, "units", bill.Units, "total", bill.TotalBill)
	return bill, nil
}

// Update replaces every mutable field of bill id with the draft and recomputes its total.
func (s *BillService) Update(ctx context.Context, id int64, draft models.Draft) (*models.BillRecord, error) {
	if id <= 0 {
		return nil, &SelectionError{}
	}

	bill, err := parseDraft(draft)
	if err != nil {
		return nil, err
	}
	bill.ID = id

	if err := s.store.UpdateBill(ctx, bill); err != nil {
		return nil, storageErr("update bill", id, err)
	}

	slog.Info("Bill updated", "bill_id", bill.ID, "units", bill.Units, "total", bill.TotalBill)
	return bill, nil
}

// Delete removes bill id once confirm approves it. It reports whether the bill was removed;
// a declined confirmation is not an error.
func (s *BillService) Delete(ctx context.Context, id int64, confirm ConfirmFunc) (bool, error) {
	if confirm == nil {
		return false, ErrConfirmationRequired
	}
	if id <= 0 {
		return false, &SelectionError{}
	}

	bill, err := s.store.GetBill(ctx, id)
	if err != nil {
		return false, storageErr("load bill", id, err)
	}

	if !confirm(bill) {
		slog.Debug("Delete declined", "bill_id", id)
		return false, nil
	}

	if err := s.store.DeleteBill(ctx, id); err != nil {
		return false, storageErr("delete bill", id, err)
	}

	slog.Info("Bill deleted", "bill_id", id)
	return true, nil
}

// Get returns bill id.
func (s *BillService) Get(ctx context.Context, id int64) (*models.BillRecord, error) {
	if id <= 0 {
		return nil, &SelectionError{}
	}

	bill, err := s.store.GetBill(ctx, id)
	if err != nil {
		return nil, storageErr("load bill", id, err)
	}
	return bill, nil
}

// LoadDraft returns bill id as an editable draft.
func (s *BillService) LoadDraft(ctx context.Context, id int64) (models.Draft, error) {
	bill, err := s.Get(ctx, id)
	if err != nil {
		return models.Draft{}, err
	}

	return models.Draft{
		Name:    bill.Name,
		Address: bill.Address,
		Units:   strconv.FormatInt(bill.Units, 10),
	}, nil
}

// List returns a snapshot of every bill ordered by ID.
func (s *BillService) List(ctx context.Context) ([]*models.BillRecord, error) {
	bills, err := s.store.ListBills(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list bills", Err: err}
	}
	return bills, nil
}

// TotalRevenue returns the sum of all bill totals; 0 when there are no bills.
func (s *BillService) TotalRevenue(ctx context.Context) (float64, error) {
	total, err := s.store.TotalRevenue(ctx)
	if err != nil {
		return 0, &StorageError{Op: "total revenue", Err: err}
	}
	return total, nil
}

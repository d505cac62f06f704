// Package middleware wraps a storage.Store with logging and metrics.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmynk/wattbill/internal/metrics"
	"github.com/mmynk/wattbill/internal/models"
	"github.com/mmynk/wattbill/internal/storage"
)

var _ storage.Store = (*InstrumentedStore)(nil)

// InstrumentedStore logs every store call with its duration and records it in metrics.
type InstrumentedStore struct {
	next    storage.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// InstrumentStore decorates next. A nil m disables metrics; a nil logger uses slog.Default().
func InstrumentStore(next storage.Store, m *metrics.Metrics, logger *slog.Logger) *InstrumentedStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &InstrumentedStore{next: next, metrics: m, logger: logger}
}

// observe logs the finished call the way an RPC interceptor would: not-found is a
// caller problem and logs at warn, anything else at error.
func (s *InstrumentedStore) observe(op string, start time.Time, err error, attrs ...any) {
	duration := time.Since(start).Milliseconds()
	attrs = append(attrs, "op", op, "duration_ms", duration)

	switch {
	case err == nil:
		s.logger.Debug("Store ok", attrs...)
	case errors.Is(err, storage.ErrNotFound):
		s.logger.Warn("Store miss", append(attrs, "error", err)...)
	default:
		s.logger.Error("Store error", append(attrs, "error", err)...)
	}

	if s.metrics != nil {
		s.metrics.ObserveStoreOperation(op, start, err)
	}
}

// CreateBill inserts through the wrapped store and logs the assigned id.
func (s *InstrumentedStore) CreateBill(ctx context.Context, bill *models.BillRecord) error {
	start := time.Now()
	err := s.next.CreateBill(ctx, bill)
	s.observe("create", start, err, "bill_id", bill.ID, "units", bill.Units)
	return err
}

// GetBill reads through the wrapped store.
func (s *InstrumentedStore) GetBill(ctx context.Context, id int64) (*models.BillRecord, error) {
	start := time.Now()
	bill, err := s.next.GetBill(ctx, id)
	s.observe("get", start, err, "bill_id", id)
	return bill, err
}

// UpdateBill updates through the wrapped store.
func (s *InstrumentedStore) UpdateBill(ctx context.Context, bill *models.BillRecord) error {
	start := time.Now()
	err := s.next.UpdateBill(ctx, bill)
	s.observe("update", start, err, "bill_id", bill.ID, "units", bill.Units)
	return err
}

// DeleteBill deletes through the wrapped store.
func (s *InstrumentedStore) DeleteBill(ctx context.Context, id int64) error {
	start := time.Now()
	err := s.next.DeleteBill(ctx, id)
	s.observe("delete", start, err, "bill_id", id)
	return err
}

// ListBills lists through the wrapped store and sets the bills gauge.
func (s *InstrumentedStore) ListBills(ctx context.Context) ([]*models.BillRecord, error) {
	start := time.Now()
	bills, err := s.next.ListBills(ctx)
	s.observe("list", start, err, "count", len(bills))
	if err == nil && s.metrics != nil {
		s.metrics.Bills.Set(float64(len(bills)))
	}
	return bills, err
}

// TotalRevenue sums through the wrapped store and sets the revenue gauge.
func (s *InstrumentedStore) TotalRevenue(ctx context.Context) (float64, error) {
	start := time.Now()
	total, err := s.next.TotalRevenue(ctx)
	s.observe("revenue", start, err)
	if err == nil && s.metrics != nil {
		s.metrics.Revenue.Set(total)
	}
	return total, err
}

// Close closes the wrapped store.
func (s *InstrumentedStore) Close() error {
	return s.next.Close()
}

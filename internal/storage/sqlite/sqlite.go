// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/wattbill/internal/models"
	"github.com/mmynk/wattbill/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// busyTimeoutPragma makes a second process wait for a lock instead of failing at once.
const busyTimeoutPragma = "_pragma=busy_timeout(5000)"

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and the bills table automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(filePath(dbPath))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single writer keeps SQLite from returning SQLITE_BUSY inside this process.
	db.SetMaxOpenConns(1)

	// Run migrations
	if err := runMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// dsn appends the busy timeout pragma, keeping any query parameters already in dbPath.
func dsn(dbPath string) string {
	if strings.Contains(dbPath, "?") {
		return dbPath + "&" + busyTimeoutPragma
	}
	return dbPath + "?" + busyTimeoutPragma
}

// filePath strips the query string from dbPath.
func filePath(dbPath string) string {
	path, _, _ := strings.Cut(dbPath, "?")
	return path
}

// newWithDB wraps an already opened database without running migrations.
func newWithDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// withConn checks a connection out of the pool for the duration of fn and
// returns it on every exit path.
func (s *SQLiteStore) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

// CreateBill inserts a new bill and sets bill.ID to the assigned row id.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.BillRecord) error {
	return s.withConn(ctx, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx,
			"INSERT INTO bills (name, address, units, total_bill) VALUES (?, ?, ?, ?)",
			bill.Name, bill.Address, bill.Units, bill.TotalBill,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bill: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read bill id: %w", err)
		}
		bill.ID = id
		return nil
	})
}

// GetBill retrieves a bill by ID.
func (s *SQLiteStore) GetBill(ctx context.Context, id int64) (*models.BillRecord, error) {
	bill := &models.BillRecord{}
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx,
			"SELECT id, name, address, units, total_bill FROM bills WHERE id = ?",
			id,
		).Scan(&bill.ID, &bill.Name, &bill.Address, &bill.Units, &bill.TotalBill)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	return bill, nil
}

// UpdateBill overwrites name, address, units and total_bill of an existing bill.
func (s *SQLiteStore) UpdateBill(ctx context.Context, bill *models.BillRecord) error {
	return s.withConn(ctx, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx,
			"UPDATE bills SET name = ?, address = ?, units = ?, total_bill = ? WHERE id = ?",
			bill.Name, bill.Address, bill.Units, bill.TotalBill, bill.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update bill: %w", err)
		}
		return expectOneRow(res, bill.ID)
	})
}

// DeleteBill removes a bill by ID.
func (s *SQLiteStore) DeleteBill(ctx context.Context, id int64) error {
	return s.withConn(ctx, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete bill: %w", err)
		}
		return expectOneRow(res, id)
	})
}

// ListBills retrieves every bill ordered by id.
func (s *SQLiteStore) ListBills(ctx context.Context) ([]*models.BillRecord, error) {
	var bills []*models.BillRecord
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx,
			"SELECT id, name, address, units, total_bill FROM bills ORDER BY id",
		)
		if err != nil {
			return fmt.Errorf("failed to list bills: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			bill := &models.BillRecord{}
			if err := rows.Scan(&bill.ID, &bill.Name, &bill.Address, &bill.Units, &bill.TotalBill); err != nil {
				return fmt.Errorf("failed to scan bill: %w", err)
			}
			bills = append(bills, bill)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to iterate bills: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return bills, nil
}

// TotalRevenue sums total_bill over all rows. SUM over no rows is NULL, so it is coalesced to 0.
func (s *SQLiteStore) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx,
			"SELECT COALESCE(SUM(total_bill), 0) FROM bills",
		).Scan(&total)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return total, nil
}

// expectOneRow maps a statement that touched no rows to storage.ErrNotFound.
func expectOneRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", storage.ErrNotFound, id)
	}
	return nil
}

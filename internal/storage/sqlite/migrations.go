package sqlite

import (
	"context"
	"database/sql"
)

// schema creates the bills table on first start. There are no later migrations.
const schema = `
CREATE TABLE IF NOT EXISTS bills (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT,
    address TEXT,
    units INTEGER,
    total_bill REAL
);
`

// runMigrations executes the schema setup.
func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

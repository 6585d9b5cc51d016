package database

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/david-mangena/e-commerce-site/internal/observability"
)

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
	id SERIAL PRIMARY KEY,
	firstname VARCHAR(255) NOT NULL,
	lastname VARCHAR(255) NOT NULL,
	totalprice INTEGER NOT NULL,
	depositpaid BOOLEAN NOT NULL,
	checkin DATE NOT NULL,
	checkout DATE NOT NULL,
	additionalneeds TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_bookings_name ON bookings(firstname, lastname);
CREATE INDEX IF NOT EXISTS idx_bookings_dates ON bookings(checkin, checkout);
`

// RunMigrations creates the necessary database tables
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if _, err := db.Exec(createBookingsTable); err != nil {
		return fmt.Errorf("failed to create bookings table: %w", err)
	}

	observability.OrNop(logger).Info("Database migrations completed successfully")
	return nil
}

package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createUsersTable,
		createRequestsTable,
		createItemsTable,
		createBookingsTable,
		createCommentsTable,
		createBookingsBookerIndex,
		createBookingsItemIndex,
		createItemsOwnerIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    email VARCHAR(512) UNIQUE NOT NULL
);`

const createRequestsTable = `
CREATE TABLE IF NOT EXISTS requests (
    id BIGSERIAL PRIMARY KEY,
    requester_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    description VARCHAR(1000) NOT NULL,
    created TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createItemsTable = `
CREATE TABLE IF NOT EXISTS items (
    id BIGSERIAL PRIMARY KEY,
    owner_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    name VARCHAR(255) NOT NULL,
    description VARCHAR(1000) NOT NULL,
    available BOOLEAN NOT NULL DEFAULT FALSE,
    request_id BIGINT REFERENCES requests (id) ON DELETE SET NULL
);`

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
    id BIGSERIAL PRIMARY KEY,
    item_id BIGINT NOT NULL REFERENCES items (id) ON DELETE CASCADE,
    booker_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    start_date TIMESTAMP NOT NULL,
    end_date TIMESTAMP NOT NULL,
    status VARCHAR(16) NOT NULL DEFAULT 'WAITING',
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createCommentsTable = `
CREATE TABLE IF NOT EXISTS comments (
    id BIGSERIAL PRIMARY KEY,
    item_id BIGINT NOT NULL REFERENCES items (id) ON DELETE CASCADE,
    author_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    text VARCHAR(2000) NOT NULL,
    created TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createBookingsBookerIndex = `
CREATE INDEX IF NOT EXISTS idx_bookings_booker_start
    ON bookings (booker_id, start_date DESC);`

const createBookingsItemIndex = `
CREATE INDEX IF NOT EXISTS idx_bookings_item
    ON bookings (item_id);`

const createItemsOwnerIndex = `
CREATE INDEX IF NOT EXISTS idx_items_owner
    ON items (owner_id);`

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shareit/internal/database"
	errs "shareit/internal/errors"
	"shareit/internal/models"
)

type BookingRepository struct {
	db *database.DB
}

func NewBookingRepository(db *database.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// bookingColumns is the join used by every read: booker name and item
// name/owner are resolved alongside the booking row.
const bookingColumns = `
	b.id, b.item_id, b.booker_id, b.start_date, b.end_date, b.status, b.created_at,
	u.name, i.name, i.owner_id`

const bookingFrom = `
	FROM bookings b
	JOIN users u ON b.booker_id = u.id
	JOIN items i ON b.item_id = i.id`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	booking := &models.Booking{}
	err := row.Scan(
		&booking.ID,
		&booking.ItemID,
		&booking.BookerID,
		&booking.Start,
		&booking.End,
		&booking.Status,
		&booking.CreatedAt,
		&booking.BookerName,
		&booking.ItemName,
		&booking.ItemOwnerID,
	)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (item_id, booker_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		booking.ItemID,
		booking.BookerID,
		booking.Start,
		booking.End,
		booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt)
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT` + bookingColumns + bookingFrom + ` WHERE b.id = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return booking, err
}

// TransitionStatus applies an approval transition in a single
// transaction. The status row is locked and re-checked so two
// concurrent transitions on the same booking cannot both commit; a
// booking already APPROVED refuses any further transition. REJECTED
// deliberately stays re-transitionable, matching historical behavior.
func (r *BookingRepository) TransitionStatus(ctx context.Context, id int64, to models.BookingStatus) (*models.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current models.BookingStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM bookings WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("booking %d not found", id)
	}
	if err != nil {
		return nil, err
	}

	if current == models.StatusApproved {
		return nil, errs.BadRequest("booking %d is already approved", id)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = $1 WHERE id = $2`, to, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transition: %w", err)
	}

	return r.GetByID(ctx, id)
}

// stateClause translates a listing filter into its WHERE fragment.
// Temporal categories compare against the database clock.
func stateClause(state models.BookingState) (string, []any) {
	switch state {
	case models.StatePast:
		return ` AND b.end_date < NOW()`, nil
	case models.StateCurrent:
		return ` AND NOW() BETWEEN b.start_date AND b.end_date`, nil
	case models.StateFuture:
		return ` AND b.start_date > NOW()`, nil
	case models.StateWaiting, models.StateApproved, models.StateRejected:
		return ` AND b.status = $4`, []any{string(state.Status())}
	default: // ALL
		return ``, nil
	}
}

// ListByBooker returns the booker's bookings matching state, ordered by
// start descending, one limit-sized page at the given row offset.
func (r *BookingRepository) ListByBooker(ctx context.Context, bookerID int64, state models.BookingState, limit, offset int) ([]models.Booking, error) {
	clause, extra := stateClause(state)
	query := `SELECT` + bookingColumns + bookingFrom + `
		WHERE b.booker_id = $1` + clause + `
		ORDER BY b.start_date DESC
		LIMIT $2 OFFSET $3`

	args := append([]any{bookerID, limit, offset}, extra...)
	return r.queryBookings(ctx, query, args...)
}

// ListByOwner returns bookings of all items owned by ownerID, same
// filter, ordering and pagination contract as ListByBooker.
func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID int64, state models.BookingState, limit, offset int) ([]models.Booking, error) {
	clause, extra := stateClause(state)
	query := `SELECT` + bookingColumns + bookingFrom + `
		WHERE i.owner_id = $1` + clause + `
		ORDER BY b.start_date DESC
		LIMIT $2 OFFSET $3`

	args := append([]any{ownerID, limit, offset}, extra...)
	return r.queryBookings(ctx, query, args...)
}

// LastForItem is the most recent booking already begun (start <= now),
// owner-scoped. Nil when none qualifies.
func (r *BookingRepository) LastForItem(ctx context.Context, itemID, ownerID int64) (*models.Booking, error) {
	query := `SELECT` + bookingColumns + bookingFrom + `
		WHERE b.item_id = $1 AND i.owner_id = $2 AND b.start_date <= NOW()
		ORDER BY b.start_date DESC
		LIMIT 1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, itemID, ownerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return booking, err
}

// NextForItem is the earliest booking still running or upcoming
// (end > now), owner-scoped. Nil when none qualifies.
func (r *BookingRepository) NextForItem(ctx context.Context, itemID, ownerID int64) (*models.Booking, error) {
	query := `SELECT` + bookingColumns + bookingFrom + `
		WHERE b.item_id = $1 AND i.owner_id = $2 AND b.end_date > NOW()
		ORDER BY b.start_date ASC
		LIMIT 1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, itemID, ownerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return booking, err
}

// HasNonRejectedForItem backs the first half of the comment gate.
func (r *BookingRepository) HasNonRejectedForItem(ctx context.Context, itemID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings WHERE item_id = $1 AND status <> 'REJECTED'
		)`
	err := r.db.QueryRowContext(ctx, query, itemID).Scan(&exists)
	return exists, err
}

// HasStartedForItem backs the second half of the comment gate: at least
// one booking window has begun.
func (r *BookingRepository) HasStartedForItem(ctx context.Context, itemID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings WHERE item_id = $1 AND start_date <= NOW()
		)`
	err := r.db.QueryRowContext(ctx, query, itemID).Scan(&exists)
	return exists, err
}

// ListStaleWaiting returns bookings still WAITING although they were
// created before the cutoff. Used by the reminder job.
func (r *BookingRepository) ListStaleWaiting(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	query := `SELECT` + bookingColumns + bookingFrom + `
		WHERE b.status = 'WAITING' AND b.created_at < $1
		ORDER BY b.created_at ASC`

	return r.queryBookings(ctx, query, cutoff)
}

func (r *BookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}

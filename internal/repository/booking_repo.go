package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/david-mangena/e-commerce-site/internal/models"
)

// BookingRepository handles database operations for bookings
type BookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a new booking repository with a specific database connection
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{
		db: db,
	}
}

// CreateBooking inserts a booking and returns its generated id
func (r *BookingRepository) CreateBooking(ctx context.Context, booking models.Booking) (int, error) {
	query := `
		INSERT INTO bookings (firstname, lastname, totalprice, depositpaid, checkin, checkout, additionalneeds, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	now := time.Now()
	var id int
	err := r.db.QueryRowContext(ctx, query,
		booking.FirstName,
		booking.LastName,
		booking.TotalPrice,
		booking.DepositPaid,
		booking.BookingDates.CheckIn,
		booking.BookingDates.CheckOut,
		booking.AdditionalNeeds,
		now,
		now,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create booking: %w", err)
	}

	return id, nil
}

// GetBooking retrieves a booking by its id
func (r *BookingRepository) GetBooking(ctx context.Context, id int) (models.Booking, error) {
	query := `
		SELECT firstname, lastname, totalprice, depositpaid,
		       to_char(checkin, 'YYYY-MM-DD'), to_char(checkout, 'YYYY-MM-DD'), additionalneeds
		FROM bookings
		WHERE id = $1
	`

	var booking models.Booking
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&booking.FirstName,
		&booking.LastName,
		&booking.TotalPrice,
		&booking.DepositPaid,
		&booking.BookingDates.CheckIn,
		&booking.BookingDates.CheckOut,
		&booking.AdditionalNeeds,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, models.ErrBookingNotFound
	}

	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

// ListBookingIDs returns the ids of bookings matching filter in ascending order
func (r *BookingRepository) ListBookingIDs(ctx context.Context, filter models.BookingFilter) ([]int, error) {
	query, args := listQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan booking id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return ids, nil
}

// UpdateBooking replaces every field of a stored booking
func (r *BookingRepository) UpdateBooking(ctx context.Context, id int, booking models.Booking) error {
	query := `
		UPDATE bookings
		SET firstname = $1, lastname = $2, totalprice = $3, depositpaid = $4,
		    checkin = $5, checkout = $6, additionalneeds = $7, updated_at = $8
		WHERE id = $9
	`

	result, err := r.db.ExecContext(ctx, query,
		booking.FirstName,
		booking.LastName,
		booking.TotalPrice,
		booking.DepositPaid,
		booking.BookingDates.CheckIn,
		booking.BookingDates.CheckOut,
		booking.AdditionalNeeds,
		time.Now(),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	return requireAffected(result)
}

// DeleteBooking removes a stored booking
func (r *BookingRepository) DeleteBooking(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	return requireAffected(result)
}

func listQuery(filter models.BookingFilter) (string, []interface{}) {
	var (
		conditions []string
		args       []interface{}
	)

	add := func(condition string, value string) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.FirstName != "" {
		add("firstname = $%d", filter.FirstName)
	}
	if filter.LastName != "" {
		add("lastname = $%d", filter.LastName)
	}
	if filter.CheckIn != "" {
		add("checkin >= $%d", filter.CheckIn)
	}
	if filter.CheckOut != "" {
		add("checkout <= $%d", filter.CheckOut)
	}

	query := "SELECT id FROM bookings"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	return query, args
}

func requireAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrBookingNotFound
	}

	return nil
}

package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/david-mangena/e-commerce-site/internal/models"
)

// MemoryBookingRepository keeps bookings in process memory
type MemoryBookingRepository struct {
	mu       sync.RWMutex
	nextID   int
	bookings map[int]models.Booking
}

// NewMemoryBookingRepository creates an empty in-memory booking store
func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{
		nextID:   1,
		bookings: make(map[int]models.Booking),
	}
}

// CreateBooking stores a booking under the next free id
func (r *MemoryBookingRepository) CreateBooking(_ context.Context, booking models.Booking) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.bookings[id] = booking

	return id, nil
}

// GetBooking retrieves a booking by id
func (r *MemoryBookingRepository) GetBooking(_ context.Context, id int) (models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return models.Booking{}, models.ErrBookingNotFound
	}
	return booking, nil
}

// ListBookingIDs returns the ids of bookings matching filter in ascending order
func (r *MemoryBookingRepository) ListBookingIDs(_ context.Context, filter models.BookingFilter) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int, 0, len(r.bookings))
	for id, booking := range r.bookings {
		if filter.Matches(booking) {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	return ids, nil
}

// UpdateBooking replaces a stored booking
func (r *MemoryBookingRepository) UpdateBooking(_ context.Context, id int, booking models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return models.ErrBookingNotFound
	}
	r.bookings[id] = booking

	return nil
}

// DeleteBooking removes a stored booking
func (r *MemoryBookingRepository) DeleteBooking(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return models.ErrBookingNotFound
	}
	delete(r.bookings, id)

	return nil
}

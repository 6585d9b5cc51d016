package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/david-mangena/e-commerce-site/internal/models"
	"github.com/david-mangena/e-commerce-site/internal/observability"
)

// BookingRepository defines the interface for booking persistence
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking models.Booking) (int, error)
	GetBooking(ctx context.Context, id int) (models.Booking, error)
	ListBookingIDs(ctx context.Context, filter models.BookingFilter) ([]int, error)
	UpdateBooking(ctx context.Context, id int, booking models.Booking) error
	DeleteBooking(ctx context.Context, id int) error
}

// BookingService holds the rules of the sandbox booking service
type BookingService interface {
	Authenticate(creds models.Credentials) (models.Token, bool)
	Authorize(token models.Token) bool
	AuthorizeBasic(username, password string) bool
	CreateBooking(ctx context.Context, booking models.Booking) (*models.CreatedBooking, error)
	GetBooking(ctx context.Context, id int) (models.Booking, error)
	ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.BookingRef, error)
	UpdateBooking(ctx context.Context, id int, booking models.Booking) (models.Booking, error)
	PatchBooking(ctx context.Context, id int, patch models.BookingPatch) (models.Booking, error)
	DeleteBooking(ctx context.Context, id int) error
}

// BookingServiceImpl implements BookingService
type BookingServiceImpl struct {
	repo   BookingRepository
	tokens *TokenStore
	admin  models.Credentials
	logger *zap.Logger
}

// NewBookingService creates a booking service accepting admin as the only
// valid credentials
func NewBookingService(repo BookingRepository, tokens *TokenStore, admin models.Credentials, logger *zap.Logger) BookingService {
	return &BookingServiceImpl{
		repo:   repo,
		tokens: tokens,
		admin:  admin,
		logger: observability.OrNop(logger),
	}
}

// Authenticate issues a token when creds match the admin credentials
func (s *BookingServiceImpl) Authenticate(creds models.Credentials) (models.Token, bool) {
	if creds.Username == "" || creds.Password == "" || creds != s.admin {
		s.logger.Info("Rejected credentials", zap.String("username", creds.Username))
		return "", false
	}
	return s.tokens.Issue(), true
}

// Authorize reports whether token was issued by this service
func (s *BookingServiceImpl) Authorize(token models.Token) bool {
	return s.tokens.Valid(token)
}

// AuthorizeBasic reports whether basic auth credentials match the admin
func (s *BookingServiceImpl) AuthorizeBasic(username, password string) bool {
	return username != "" && username == s.admin.Username && password == s.admin.Password
}

// CreateBooking validates and stores a new booking
func (s *BookingServiceImpl) CreateBooking(ctx context.Context, booking models.Booking) (*models.CreatedBooking, error) {
	if err := booking.Validate(); err != nil {
		return nil, fmt.Errorf("invalid booking: %w", err)
	}

	id, err := s.repo.CreateBooking(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger.Info("Created booking", zap.Int("bookingid", id))
	return &models.CreatedBooking{BookingID: id, Booking: booking}, nil
}

// GetBooking retrieves a booking by id
func (s *BookingServiceImpl) GetBooking(ctx context.Context, id int) (models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to get booking %d: %w", id, err)
	}
	return booking, nil
}

// ListBookings returns the ids of bookings matching filter
func (s *BookingServiceImpl) ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.BookingRef, error) {
	ids, err := s.repo.ListBookingIDs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	refs := make([]models.BookingRef, len(ids))
	for i, id := range ids {
		refs[i] = models.BookingRef{BookingID: id}
	}
	return refs, nil
}

// UpdateBooking replaces an existing booking
func (s *BookingServiceImpl) UpdateBooking(ctx context.Context, id int, booking models.Booking) (models.Booking, error) {
	if _, err := s.repo.GetBooking(ctx, id); err != nil {
		return models.Booking{}, fmt.Errorf("failed to get booking %d: %w", id, err)
	}
	if err := booking.Validate(); err != nil {
		return models.Booking{}, fmt.Errorf("invalid booking: %w", err)
	}

	if err := s.repo.UpdateBooking(ctx, id, booking); err != nil {
		return models.Booking{}, fmt.Errorf("failed to update booking %d: %w", id, err)
	}

	s.logger.Info("Updated booking", zap.Int("bookingid", id))
	return booking, nil
}

// PatchBooking applies a partial update to an existing booking
func (s *BookingServiceImpl) PatchBooking(ctx context.Context, id int, patch models.BookingPatch) (models.Booking, error) {
	current, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to get booking %d: %w", id, err)
	}

	updated := patch.Apply(current)
	if err := updated.Validate(); err != nil {
		return models.Booking{}, fmt.Errorf("invalid booking: %w", err)
	}

	if err := s.repo.UpdateBooking(ctx, id, updated); err != nil {
		return models.Booking{}, fmt.Errorf("failed to update booking %d: %w", id, err)
	}

	s.logger.Info("Patched booking", zap.Int("bookingid", id))
	return updated, nil
}

// DeleteBooking removes a booking
func (s *BookingServiceImpl) DeleteBooking(ctx context.Context, id int) error {
	if err := s.repo.DeleteBooking(ctx, id); err != nil {
		return fmt.Errorf("failed to delete booking %d: %w", id, err)
	}

	s.logger.Info("Deleted booking", zap.Int("bookingid", id))
	return nil
}

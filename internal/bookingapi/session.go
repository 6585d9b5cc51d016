package bookingapi

import (
	"context"
	"sync"

	"github.com/david-mangena/e-commerce-site/internal/models"
)

// Session holds the token of one logical API session. The token is set by
// Authenticate and never refreshed.
type Session struct {
	client *Client
	creds  models.Credentials

	mu    sync.RWMutex
	token models.Token
}

// NewSession creates an unauthenticated session
func NewSession(client *Client, creds models.Credentials) *Session {
	return &Session{client: client, creds: creds}
}

// Client returns the underlying stateless client
func (s *Session) Client() *Client {
	return s.client
}

// Authenticate obtains a token with the session credentials and stores it
func (s *Session) Authenticate(ctx context.Context) (models.Token, error) {
	token, err := s.client.Authenticate(ctx, s.creds)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	return token, nil
}

// Token returns the stored token
func (s *Session) Token() (models.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token.IsZero() {
		return "", ErrNotAuthenticated
	}
	return s.token, nil
}

// CreateBooking creates a booking
func (s *Session) CreateBooking(ctx context.Context, booking models.Booking) (*Response, *models.CreatedBooking, error) {
	return s.client.CreateBooking(ctx, booking)
}

// GetBooking retrieves a booking by id
func (s *Session) GetBooking(ctx context.Context, id int) (*Response, *models.Booking, error) {
	return s.client.GetBooking(ctx, id)
}

// GetAllBookings lists booking ids, optionally filtered
func (s *Session) GetAllBookings(ctx context.Context, filter models.BookingFilter) (*Response, []models.BookingRef, error) {
	return s.client.GetAllBookings(ctx, filter)
}

// UpdateBooking replaces a booking with token, or the stored token when empty
func (s *Session) UpdateBooking(ctx context.Context, id int, booking models.Booking, token models.Token) (*Response, *models.Booking, error) {
	token, err := s.resolve(token)
	if err != nil {
		return nil, nil, err
	}
	return s.client.UpdateBooking(ctx, id, booking, token)
}

// PartialUpdateBooking patches a booking with token, or the stored token when empty
func (s *Session) PartialUpdateBooking(ctx context.Context, id int, patch models.BookingPatch, token models.Token) (*Response, *models.Booking, error) {
	token, err := s.resolve(token)
	if err != nil {
		return nil, nil, err
	}
	return s.client.PartialUpdateBooking(ctx, id, patch, token)
}

// DeleteBooking removes a booking with token, or the stored token when empty
func (s *Session) DeleteBooking(ctx context.Context, id int, token models.Token) (*Response, error) {
	token, err := s.resolve(token)
	if err != nil {
		return nil, err
	}
	return s.client.DeleteBooking(ctx, id, token)
}

// HealthCheck pings the service
func (s *Session) HealthCheck(ctx context.Context) (*Response, error) {
	return s.client.HealthCheck(ctx)
}

func (s *Session) resolve(explicit models.Token) (models.Token, error) {
	if !explicit.IsZero() {
		return explicit, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token.IsZero() {
		return "", ErrTokenRequired
	}
	return s.token, nil
}

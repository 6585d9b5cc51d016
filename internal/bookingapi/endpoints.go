package bookingapi

import (
	"fmt"
	"net/url"

	"github.com/david-mangena/e-commerce-site/internal/models"
)

// Endpoints contains all API endpoint patterns
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Auth is the token endpoint
func (e *Endpoints) Auth() string {
	return "/auth"
}

// Bookings is the booking collection endpoint
func (e *Endpoints) Bookings() string {
	return "/booking"
}

// ListBookings is the collection endpoint with filter query parameters
func (e *Endpoints) ListBookings(filter models.BookingFilter) string {
	if filter.IsZero() {
		return e.Bookings()
	}

	query := url.Values{}
	for key, value := range map[string]string{
		"firstname": filter.FirstName,
		"lastname":  filter.LastName,
		"checkin":   filter.CheckIn,
		"checkout":  filter.CheckOut,
	} {
		if value != "" {
			query.Set(key, value)
		}
	}

	return e.Bookings() + "?" + query.Encode()
}

// Booking is the endpoint of a single booking
func (e *Endpoints) Booking(id int) string {
	return fmt.Sprintf("/booking/%d", id)
}

// Ping is the health probe endpoint
func (e *Endpoints) Ping() string {
	return "/ping"
}

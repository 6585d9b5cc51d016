// Package suitedata holds the static data consumed by the e2e suites:
// booking payloads and named storefront users. Everything here is read-only.
package suitedata

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/david-mangena/e-commerce-site/internal/models"
)

//go:embed bookings.json
var bookingsJSON []byte

// BookingData is the booking fixture document
type BookingData struct {
	ValidBooking         models.Booking      `json:"validBooking"`
	UpdateBooking        models.Booking      `json:"updateBooking"`
	PartialUpdateBooking models.BookingPatch `json:"partialUpdateBooking"`
	AuthCredentials      models.Credentials  `json:"authCredentials"`
}

var loadBookings = sync.OnceValues(func() (BookingData, error) {
	return parseBookings(bookingsJSON)
})

// Bookings returns the booking fixtures, parsed once per process. Callers
// get a copy; pointer fields of the patch are shared and must not be mutated.
func Bookings() BookingData {
	data, err := loadBookings()
	if err != nil {
		panic(err)
	}
	return data
}

func parseBookings(raw []byte) (BookingData, error) {
	var data BookingData
	if err := json.Unmarshal(raw, &data); err != nil {
		return BookingData{}, fmt.Errorf("failed to parse booking fixtures: %w", err)
	}
	if err := data.ValidBooking.Validate(); err != nil {
		return BookingData{}, fmt.Errorf("invalid validBooking fixture: %w", err)
	}
	if err := data.UpdateBooking.Validate(); err != nil {
		return BookingData{}, fmt.Errorf("invalid updateBooking fixture: %w", err)
	}
	return data, nil
}

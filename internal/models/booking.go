package models

import (
	"errors"
	"time"
)

// DateLayout is the wire format of booking dates
const DateLayout = "2006-01-02"

// BookingDates holds the stay period of a booking
type BookingDates struct {
	CheckIn  string `json:"checkin"`
	CheckOut string `json:"checkout"`
}

// Booking is a booking record as exchanged with the booking service
type Booking struct {
	FirstName       string       `json:"firstname"`
	LastName        string       `json:"lastname"`
	TotalPrice      int          `json:"totalprice"`
	DepositPaid     bool         `json:"depositpaid"`
	BookingDates    BookingDates `json:"bookingdates"`
	AdditionalNeeds string       `json:"additionalneeds,omitempty"`
}

// BookingPatch is a partial update; nil fields are left untouched
type BookingPatch struct {
	FirstName       *string       `json:"firstname,omitempty"`
	LastName        *string       `json:"lastname,omitempty"`
	TotalPrice      *int          `json:"totalprice,omitempty"`
	DepositPaid     *bool         `json:"depositpaid,omitempty"`
	BookingDates    *BookingDates `json:"bookingdates,omitempty"`
	AdditionalNeeds *string       `json:"additionalneeds,omitempty"`
}

// CreatedBooking is the response body of a booking creation
type CreatedBooking struct {
	BookingID int     `json:"bookingid"`
	Booking   Booking `json:"booking"`
}

// BookingRef is one entry of the booking id listing
type BookingRef struct {
	BookingID int `json:"bookingid"`
}

// Domain errors
var (
	ErrMissingFirstName = errors.New("booking firstname cannot be empty")
	ErrMissingLastName  = errors.New("booking lastname cannot be empty")
	ErrInvalidPrice     = errors.New("booking totalprice cannot be negative")
	ErrInvalidDate      = errors.New("booking dates must use YYYY-MM-DD")
	ErrInvalidStay      = errors.New("booking checkout cannot be before checkin")
)

// Validate checks the fields required to store a booking
func (b *Booking) Validate() error {
	if b.FirstName == "" {
		return ErrMissingFirstName
	}
	if b.LastName == "" {
		return ErrMissingLastName
	}
	if b.TotalPrice < 0 {
		return ErrInvalidPrice
	}
	return b.BookingDates.Validate()
}

// Validate checks both dates parse and checkout does not precede checkin
func (d BookingDates) Validate() error {
	checkIn, err := time.Parse(DateLayout, d.CheckIn)
	if err != nil {
		return ErrInvalidDate
	}
	checkOut, err := time.Parse(DateLayout, d.CheckOut)
	if err != nil {
		return ErrInvalidDate
	}
	if checkOut.Before(checkIn) {
		return ErrInvalidStay
	}
	return nil
}

// Apply returns a copy of b with the non-nil fields of p applied
func (p BookingPatch) Apply(b Booking) Booking {
	if p.FirstName != nil {
		b.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		b.LastName = *p.LastName
	}
	if p.TotalPrice != nil {
		b.TotalPrice = *p.TotalPrice
	}
	if p.DepositPaid != nil {
		b.DepositPaid = *p.DepositPaid
	}
	if p.BookingDates != nil {
		b.BookingDates = *p.BookingDates
	}
	if p.AdditionalNeeds != nil {
		b.AdditionalNeeds = *p.AdditionalNeeds
	}
	return b
}

// IsValidationError reports whether err stems from Booking validation
func IsValidationError(err error) bool {
	for _, target := range []error{ErrMissingFirstName, ErrMissingLastName, ErrInvalidPrice, ErrInvalidDate, ErrInvalidStay} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

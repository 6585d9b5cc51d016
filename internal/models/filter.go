package models

import "errors"

// ErrBookingNotFound is returned by booking stores for unknown ids
var ErrBookingNotFound = errors.New("booking not found")

// BookingFilter narrows a booking listing. Empty fields do not filter.
// CheckIn keeps bookings starting on or after the date, CheckOut keeps
// bookings ending on or before it.
type BookingFilter struct {
	FirstName string
	LastName  string
	CheckIn   string
	CheckOut  string
}

// IsZero reports whether no filter field is set
func (f BookingFilter) IsZero() bool {
	return f == BookingFilter{}
}

// Matches reports whether b satisfies every set field of the filter.
// Dates compare lexically, which is chronological for DateLayout.
func (f BookingFilter) Matches(b Booking) bool {
	if f.FirstName != "" && b.FirstName != f.FirstName {
		return false
	}
	if f.LastName != "" && b.LastName != f.LastName {
		return false
	}
	if f.CheckIn != "" && b.BookingDates.CheckIn < f.CheckIn {
		return false
	}
	if f.CheckOut != "" && b.BookingDates.CheckOut > f.CheckOut {
		return false
	}
	return true
}

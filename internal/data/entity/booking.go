package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusCreated        BookingStatus = "CREATED"
	BookingStatusPaymentPending BookingStatus = "PAYMENT_PENDING"
	BookingStatusPaid           BookingStatus = "PAID"
	BookingStatusCancelled      BookingStatus = "CANCELLED"
	BookingStatusPaymentFailed  BookingStatus = "PAYMENT_FAILED"
)

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusCreated, BookingStatusPaymentPending, BookingStatusPaid,
		BookingStatusCancelled, BookingStatusPaymentFailed:
		return true
	}
	return false
}

// Occupies reports whether a booking in status s holds its room for its dates.
// Only cancellation releases the room; pending and failed bookings keep it.
func (s BookingStatus) Occupies() bool {
	return s != BookingStatusCancelled
}

type Booking struct {
	Base
	RoomID          uuid.UUID       `db:"room_id"`
	GuestID         uuid.UUID       `db:"guest_id"`
	UserID          *uuid.UUID      `db:"user_id"`
	CheckInDate     time.Time       `db:"check_in_date"`
	CheckOutDate    time.Time       `db:"check_out_date"`
	AdultsCount     int             `db:"adults_count"`
	ChildrenCount   int             `db:"children_count"`
	TotalPrice      decimal.Decimal `db:"total_price"`
	Status          BookingStatus   `db:"status"`
	SpecialRequests string          `db:"special_requests"`
}

// BookingFilter narrows a booking listing.
type BookingFilter struct {
	Status *BookingStatus
	Limit  int
	Offset int
}

package repository

import (
	"hotel-booking/pkg/database"

	"go.uber.org/zap"
)

// Repository groups the stores of the booking service.
type Repository struct {
	Booking BookingRepository
	Room    RoomRepository
	Guest   GuestRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Booking: NewBookingRepository(db, log),
		Room:    NewRoomRepository(db, log),
		Guest:   NewGuestRepository(db, log),
	}
}

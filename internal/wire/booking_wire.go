package wire

import (
	"fmt"
	"time"

	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/middleware"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BookingApp wires the booking service. payments reaches the payment service.
// now may be nil.
func BookingApp(repo *repository.Repository, payments usecase.RemoteCaller, config *utils.Config, now func() time.Time, log *zap.Logger) (*App, error) {
	loc, err := time.LoadLocation(config.Booking.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", config.Booking.Timezone, err)
	}

	service := usecase.NewBookingService(repo, payments, usecase.BookingOptions{
		Currency: config.Booking.Currency,
		Location: loc,
		Now:      now,
	}, log)
	handler := adaptor.NewBookingHandler(service, log)

	r := newRouter("booking", log)
	wireBooking(r, handler, config, log)

	return &App{Router: r}, nil
}

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Get("/", bookingHandler.ListBookings)
		r.With(middleware.RateLimit(config.RateLimit.RPS, config.RateLimit.Burst, log)).
			Post("/", bookingHandler.CreateBooking)
		r.Get("/{id}/", bookingHandler.GetBooking)

		// Reconciliation, called by the notification service
		r.Group(func(r chi.Router) {
			r.Use(middleware.ServiceAuth(config.Security.ServiceTokenHash, log))

			r.Post("/{id}/confirm-payment/", bookingHandler.ConfirmPayment)
			r.Post("/{id}/cancel/", bookingHandler.CancelBooking)
		})
	})

	r.Get("/api/rooms/{id}/availability", bookingHandler.RoomAvailability)
}

package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/middleware"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PaymentApp wires the payment service. notifier reaches the notification service.
func PaymentApp(repo repository.PaymentRepository, notifier usecase.RemoteCaller, config *utils.Config, log *zap.Logger) *App {
	charger := usecase.SimulatedCharger{
		FailAbove:     config.Payment.FailAbove,
		FailureReason: config.Payment.FailureReason,
	}
	service := usecase.NewPaymentService(repo, charger, notifier, config.Booking.Currency, log)
	handler := adaptor.NewPaymentHandler(service, log)

	r := newRouter("payment", log)
	wirePayment(r, handler, config, log)

	return &App{Router: r}
}

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/payments", func(r chi.Router) {
		r.With(middleware.ServiceAuth(config.Security.ServiceTokenHash, log)).
			Post("/", paymentHandler.CreatePayment)

		r.Get("/", paymentHandler.ListPayments)
		r.Get("/by-booking/{bookingId}", paymentHandler.GetPaymentsByBooking)
		r.Get("/{id}", paymentHandler.GetPayment)
	})
}

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

// NotificationApp wires the notification service. booking reaches the booking
// service for reconciliation.
func NotificationApp(repo repository.NotificationRepository, booking usecase.RemoteCaller, config *utils.Config, log *zap.Logger) *App {
	service := usecase.NewNotificationService(repo, booking, log)
	handler := adaptor.NewNotificationHandler(service, log)

	r := newRouter("notification", log)
	wireNotification(r, handler, config, log)

	return &App{Router: r}
}

func wireNotification(
	r chi.Router,
	notificationHandler *adaptor.NotificationHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/notifications", func(r chi.Router) {
		r.With(middleware.ServiceAuth(config.Security.ServiceTokenHash, log)).
			Post("/payment", notificationHandler.PaymentEvent)

		r.Get("/", notificationHandler.ListNotifications)
		r.Get("/{id}", notificationHandler.GetNotification)
		r.Patch("/{id}/read", notificationHandler.MarkRead)
	})
}

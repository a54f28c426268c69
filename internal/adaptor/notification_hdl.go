package adaptor

import (
	"errors"
	"net/http"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	service usecase.NotificationService
	log     *zap.Logger
}

func NewNotificationHandler(service usecase.NotificationService, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		log:     log.With(zap.String("handler", "notification")),
	}
}

// PaymentEvent handles POST /api/notifications/payment
func (h *NotificationHandler) PaymentEvent(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentNotificationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondInvalidJSON(w)
		return
	}

	if err := h.service.HandlePaymentEvent(r.Context(), &req); err != nil {
		respondServiceError(w, h.log, err, "handle payment event")
		return
	}

	utils.ResponseOK(w)
}

// ListNotifications handles GET /api/notifications?type=&limit=&offset=
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListNotificationsRequest{
		Type: query.Get("type"),
		PaginatedRequest: request.PaginatedRequest{
			Limit:  utils.ParseInt(query.Get("limit"), utils.DefaultLimit),
			Offset: utils.ParseInt(query.Get("offset"), 0),
		},
	}

	notifications, err := h.service.ListNotifications(r.Context(), req)
	if err != nil {
		respondServiceError(w, h.log, err, "list notifications")
		return
	}

	utils.ResponseSuccess(w, notifications)
}

// GetNotification handles GET /api/notifications/{id}
func (h *NotificationHandler) GetNotification(w http.ResponseWriter, r *http.Request) {
	notification, err := h.service.GetNotification(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.log, err, "get notification")
		return
	}

	utils.ResponseSuccess(w, notification)
}

// MarkRead handles PATCH /api/notifications/{id}/read. The body is optional.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	var req request.MarkReadRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		respondInvalidJSON(w)
		return
	}

	notification, err := h.service.MarkRead(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "mark notification read")
		return
	}

	utils.ResponseSuccess(w, notification)
}

package usecase

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"hotel-booking/internal/apperror"
	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type NotificationService interface {
	// HandlePaymentEvent records a payment outcome and forwards it to the
	// booking service. Only a failure to record it is returned.
	HandlePaymentEvent(ctx context.Context, req *request.PaymentNotificationRequest) error
	GetNotification(ctx context.Context, notificationID string) (*response.NotificationResponse, error)
	ListNotifications(ctx context.Context, req *request.ListNotificationsRequest) (*response.ListResponse[response.NotificationResponse], error)
	MarkRead(ctx context.Context, notificationID string, req *request.MarkReadRequest) (*response.NotificationResponse, error)
}

type notificationService struct {
	repo    repository.NotificationRepository
	booking RemoteCaller
	now     func() time.Time
	log     *zap.Logger
}

func NewNotificationService(repo repository.NotificationRepository, booking RemoteCaller, log *zap.Logger) NotificationService {
	return &notificationService{
		repo:    repo,
		booking: booking,
		now:     func() time.Time { return time.Now().UTC() },
		log:     log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) HandlePaymentEvent(ctx context.Context, req *request.PaymentNotificationRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Payment event validation failed", zap.Any("errors", errs))
		return apperror.Validation(utils.FormatValidationErrors(errs), errs)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return apperror.Internal("Failed to encode payment event", err)
	}

	notification := &entity.Notification{
		ID:        uuid.New(),
		Type:      entity.NotificationTypePayment,
		Payload:   datatypes.JSON(payload),
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return apperror.Internal("Failed to store notification", err)
	}

	log := s.log.With(
		zap.String("notification_id", notification.ID.String()),
		zap.String("payment_id", req.PaymentID),
		zap.String("booking_id", req.BookingID),
		zap.String("status", req.Status),
	)

	var path string
	switch entity.PaymentStatus(req.Status) {
	case entity.PaymentStatusSuccess:
		path = "/api/bookings/" + url.PathEscape(req.BookingID) + "/confirm-payment/"
	case entity.PaymentStatusFailed:
		path = "/api/bookings/" + url.PathEscape(req.BookingID) + "/cancel/"
	default:
		log.Warn("Payment event with unrecognised status recorded, not forwarded")
		return nil
	}

	outcome := s.booking.PostJSON(context.WithoutCancel(ctx), path, nil)
	if !outcome.OK() {
		// Recorded but unreconciled; processed stays false for a later sweep.
		log.Warn("Booking reconciliation failed",
			zap.String("outcome", outcome.Kind.String()),
			zap.Int("http_status", outcome.StatusCode),
		)
		return nil
	}

	if err := s.repo.SetProcessed(ctx, notification.ID, true); err != nil {
		log.Error("Failed to mark notification processed", zap.Error(err))
		return nil
	}

	log.Info("Payment event reconciled")
	return nil
}

func (s *notificationService) GetNotification(ctx context.Context, notificationID string) (*response.NotificationResponse, error) {
	notification, err := s.find(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	resp := response.NotificationToResponse(notification)
	return &resp, nil
}

func (s *notificationService) ListNotifications(ctx context.Context, req *request.ListNotificationsRequest) (*response.ListResponse[response.NotificationResponse], error) {
	page := req.PaginatedRequest.Normalize()
	filter := entity.NotificationFilter{Limit: page.Limit, Offset: page.Offset}
	if req.Type != "" {
		t := entity.NotificationType(req.Type)
		filter.Type = &t
	}

	notifications, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal("Failed to list notifications", err)
	}

	items := make([]response.NotificationResponse, len(notifications))
	for i, n := range notifications {
		items[i] = response.NotificationToResponse(n)
	}
	return response.NewListResponse(items, total, page.Limit, page.Offset), nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID string, req *request.MarkReadRequest) (*response.NotificationResponse, error) {
	notification, err := s.find(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	read := true
	if req != nil && req.Read != nil {
		read = *req.Read
	}
	if err := s.repo.SetRead(ctx, notification.ID, read); err != nil {
		return nil, apperror.Internal("Failed to update notification", err)
	}
	notification.Read = read

	resp := response.NotificationToResponse(notification)
	return &resp, nil
}

func (s *notificationService) find(ctx context.Context, notificationID string) (*entity.Notification, error) {
	id, err := uuid.Parse(notificationID)
	if err != nil {
		return nil, apperror.NotFound("Notification %s not found", notificationID)
	}
	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("Failed to load notification", err)
	}
	if notification == nil {
		return nil, apperror.NotFound("Notification %s not found", notificationID)
	}
	return notification, nil
}

package usecase

import (
	"context"
	"encoding/json"
	"time"

	"hotel-booking/internal/apperror"
	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// PaymentNotificationsPath is where the notification service takes payment outcomes.
const PaymentNotificationsPath = "/api/notifications/payment"

type PaymentService interface {
	CreatePayment(ctx context.Context, req *request.CreatePaymentRequest) (*response.PaymentResponse, error)
	GetPayment(ctx context.Context, paymentID string) (*response.PaymentResponse, error)
	GetPaymentsByBooking(ctx context.Context, bookingID string) ([]response.PaymentResponse, error)
	ListPayments(ctx context.Context, req *request.ListPaymentsRequest) (*response.ListResponse[response.PaymentResponse], error)
}

// Charger settles a payment. It returns a failure reason when the charge is
// declined.
type Charger interface {
	Charge(ctx context.Context, payment *entity.Payment) (ok bool, reason string)
}

// SimulatedCharger approves every amount up to FailAbove. A zero FailAbove
// approves everything.
type SimulatedCharger struct {
	FailAbove     decimal.Decimal
	FailureReason string
}

func (c SimulatedCharger) Charge(_ context.Context, payment *entity.Payment) (bool, string) {
	if c.FailAbove.IsPositive() && payment.Amount.GreaterThan(c.FailAbove) {
		reason := c.FailureReason
		if reason == "" {
			reason = "card declined"
		}
		return false, reason
	}
	return true, ""
}

type paymentService struct {
	repo     repository.PaymentRepository
	charger  Charger
	notifier RemoteCaller
	currency string
	now      func() time.Time
	log      *zap.Logger
}

func NewPaymentService(repo repository.PaymentRepository, charger Charger, notifier RemoteCaller, currency string, log *zap.Logger) PaymentService {
	if currency == "" {
		currency = "RUB"
	}
	return &paymentService{
		repo:     repo,
		charger:  charger,
		notifier: notifier,
		currency: currency,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log.With(zap.String("service", "payment")),
	}
}

// paymentEvent is the outcome sent to the notification service.
type paymentEvent struct {
	PaymentID     string      `json:"paymentId"`
	BookingID     string      `json:"bookingId"`
	Status        string      `json:"status"`
	Amount        json.Number `json:"amount"`
	Currency      string      `json:"currency"`
	FailureReason *string     `json:"failureReason,omitempty"`
	OccurredAt    time.Time   `json:"occurredAt"`
}

// CreatePayment walks a payment through CREATED, PROCESSING and SUCCESS or
// FAILED within the request, then reports the outcome. A declined charge is
// still a 201; the status carries the result.
func (s *paymentService) CreatePayment(ctx context.Context, req *request.CreatePaymentRequest) (*response.PaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create payment validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation(utils.FormatValidationErrors(errs), errs)
	}
	if req.Amount.IsNegative() {
		return nil, apperror.Validation("amount must not be negative", map[string]string{
			"amount": "Minimum value is 0",
		})
	}

	currency := req.Currency
	if currency == "" {
		currency = s.currency
	}

	var metadata datatypes.JSON
	if req.Metadata != nil {
		raw, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, apperror.Validation("metadata must be a JSON object", nil)
		}
		metadata = datatypes.JSON(raw)
	}

	now := s.now()
	payment := &entity.Payment{
		ID:          uuid.New(),
		BookingID:   req.BookingID,
		Status:      entity.PaymentStatusCreated,
		Amount:      req.Amount.Round(2),
		Currency:    currency,
		Description: req.Description,
		Metadata:    metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, apperror.Internal("Failed to create payment", err)
	}

	payment.Status = entity.PaymentStatusProcessing
	if err := s.repo.Save(ctx, payment); err != nil {
		return nil, apperror.Internal("Failed to start payment processing", err)
	}

	ok, reason := s.charger.Charge(ctx, payment)
	if ok {
		payment.Status = entity.PaymentStatusSuccess
	} else {
		payment.Status = entity.PaymentStatusFailed
		payment.FailureReason = &reason
	}
	if err := s.repo.Save(ctx, payment); err != nil {
		return nil, apperror.Internal("Failed to record payment result", err)
	}

	s.log.Info("Payment processed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("booking_id", payment.BookingID),
		zap.String("status", string(payment.Status)),
		zap.String("amount", payment.Amount.StringFixed(2)),
	)

	s.notify(context.WithoutCancel(ctx), payment)

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

// notify reports the outcome. Delivery failures are logged only; the payment
// itself has already been recorded.
func (s *paymentService) notify(ctx context.Context, payment *entity.Payment) {
	outcome := s.notifier.PostJSON(ctx, PaymentNotificationsPath, paymentEvent{
		PaymentID:     payment.ID.String(),
		BookingID:     payment.BookingID,
		Status:        string(payment.Status),
		Amount:        response.Money(payment.Amount),
		Currency:      payment.Currency,
		FailureReason: payment.FailureReason,
		OccurredAt:    payment.UpdatedAt,
	})
	if !outcome.OK() {
		s.log.Warn("Payment outcome not delivered",
			zap.String("payment_id", payment.ID.String()),
			zap.String("booking_id", payment.BookingID),
			zap.String("outcome", outcome.Kind.String()),
			zap.Int("status", outcome.StatusCode),
		)
	}
}

func (s *paymentService) GetPayment(ctx context.Context, paymentID string) (*response.PaymentResponse, error) {
	id, err := uuid.Parse(paymentID)
	if err != nil {
		return nil, apperror.NotFound("Payment %s not found", paymentID)
	}
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("Failed to load payment", err)
	}
	if payment == nil {
		return nil, apperror.NotFound("Payment %s not found", paymentID)
	}
	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) GetPaymentsByBooking(ctx context.Context, bookingID string) ([]response.PaymentResponse, error) {
	payments, err := s.repo.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, apperror.Internal("Failed to load payments", err)
	}
	items := make([]response.PaymentResponse, len(payments))
	for i, p := range payments {
		items[i] = response.PaymentToResponse(p)
	}
	return items, nil
}

func (s *paymentService) ListPayments(ctx context.Context, req *request.ListPaymentsRequest) (*response.ListResponse[response.PaymentResponse], error) {
	page := req.PaginatedRequest.Normalize()
	filter := entity.PaymentFilter{BookingID: req.BookingID, Limit: page.Limit, Offset: page.Offset}

	if req.Status != "" {
		status := entity.PaymentStatus(req.Status)
		if !status.Valid() {
			return nil, apperror.Validation("Unknown payment status "+req.Status, map[string]string{
				"status": "Must be one of: CREATED, PROCESSING, SUCCESS, FAILED",
			})
		}
		filter.Status = &status
	}

	payments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal("Failed to list payments", err)
	}

	items := make([]response.PaymentResponse, len(payments))
	for i, p := range payments {
		items[i] = response.PaymentToResponse(p)
	}
	return response.NewListResponse(items, total, page.Limit, page.Offset), nil
}

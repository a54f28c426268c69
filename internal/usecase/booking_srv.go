package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotel-booking/internal/apperror"
	"hotel-booking/internal/availability"
	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/internal/pricing"
	"hotel-booking/pkg/remote"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentsPath is where the payment service accepts new payments.
const PaymentsPath = "/api/payments"

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, req *request.ListBookingsRequest) (*response.ListResponse[response.BookingResponse], error)
	CheckAvailability(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error)

	// Reconciliation, called by the notification service.
	ConfirmPayment(ctx context.Context, bookingID string) error
	CancelBooking(ctx context.Context, bookingID string) error
}

type BookingOptions struct {
	Currency string
	// Location decides what "today" is for the past check-in rule.
	Location *time.Location
	Now      func() time.Time
}

type bookingService struct {
	repo     *repository.Repository
	checker  *availability.Checker
	payments RemoteCaller
	currency string
	loc      *time.Location
	now      func() time.Time
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, payments RemoteCaller, opts BookingOptions, log *zap.Logger) BookingService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Currency == "" {
		opts.Currency = "RUB"
	}

	return &bookingService{
		repo:     repo,
		checker:  availability.NewChecker(repo.Booking),
		payments: payments,
		currency: opts.Currency,
		loc:      opts.Location,
		now:      opts.Now,
		log:      log.With(zap.String("service", "booking")),
	}
}

// paymentInitiation is the body sent to the payment service.
type paymentInitiation struct {
	BookingID   string      `json:"bookingId"`
	Amount      json.Number `json:"amount"`
	Currency    string      `json:"currency"`
	Description string      `json:"description,omitempty"`
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation(utils.FormatValidationErrors(errs), errs)
	}

	checkIn, checkOut, err := parseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}
	today := entity.DateOf(s.now(), s.loc)
	if checkIn.Before(today) {
		return nil, apperror.Validation("checkInDate cannot be in the past", map[string]string{
			"checkInDate": "Must be today or later",
		})
	}

	room, err := s.findRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	guestID, err := uuid.Parse(req.GuestID)
	if err != nil {
		return nil, apperror.NotFound("Guest %s not found", req.GuestID)
	}
	guest, err := s.repo.Guest.FindByID(ctx, guestID)
	if err != nil {
		return nil, apperror.Internal("Failed to load guest", err)
	}
	if guest == nil {
		return nil, apperror.NotFound("Guest %s not found", req.GuestID)
	}

	total, err := pricing.Price(room.PricePerNight, checkIn, checkOut)
	if err != nil {
		return nil, apperror.Internal("Failed to price booking", err)
	}

	now := s.now().UTC()
	booking := &entity.Booking{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		RoomID:          room.ID,
		GuestID:         guest.ID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		AdultsCount:     req.Adults(),
		ChildrenCount:   req.Children(),
		TotalPrice:      total,
		Status:          entity.BookingStatusPaymentPending,
		SpecialRequests: req.SpecialRequests,
	}

	conflicts, err := s.repo.Booking.CreateIfAvailable(ctx, booking)
	if errors.Is(err, repository.ErrBookingOverlap) {
		// Lost a race the lock did not see; report whoever holds the dates now.
		conflicts, err = s.checker.Conflicts(ctx, room.ID, checkIn, checkOut, nil)
		if err != nil {
			return nil, apperror.Internal("Failed to check availability", err)
		}
		return nil, s.unavailable(booking, conflicts)
	}
	if errors.Is(err, repository.ErrRoomNotFound) {
		return nil, apperror.NotFound("Room %s not found", req.RoomID)
	}
	if err != nil {
		return nil, apperror.Internal("Failed to create booking", err)
	}
	if len(conflicts) > 0 {
		return nil, s.unavailable(booking, conflicts)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("room_id", room.ID.String()),
		zap.String("total_price", total.StringFixed(2)),
	)

	// The row is committed. A dropped client connection must not abandon a
	// payment already in flight; the remote timeout still bounds the call.
	callCtx := context.WithoutCancel(ctx)
	outcome := s.payments.PostJSON(callCtx, PaymentsPath, paymentInitiation{
		BookingID:   booking.ID.String(),
		Amount:      response.Money(total),
		Currency:    s.currency,
		Description: fmt.Sprintf("Room %s, %s - %s", room.Number, req.CheckInDate, req.CheckOutDate),
	})
	if !outcome.OK() {
		return nil, s.failPayment(callCtx, booking, outcome)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) unavailable(booking *entity.Booking, conflicts []*entity.Booking) error {
	s.log.Info("Booking rejected, room unavailable",
		zap.String("room_id", booking.RoomID.String()),
		zap.Time("check_in", booking.CheckInDate),
		zap.Time("check_out", booking.CheckOutDate),
		zap.Int("conflicts", len(conflicts)),
	)

	msg := availability.Message(conflicts)
	if msg == "" {
		msg = "Room is already booked for the requested dates"
	}
	return apperror.Conflict(msg, response.ConflictsToResponse(conflicts))
}

// failPayment records a failed payment initiation and returns the error for the
// caller. The booking row is kept.
func (s *bookingService) failPayment(ctx context.Context, booking *entity.Booking, outcome remote.Outcome) error {
	var appErr *apperror.Error
	if outcome.Kind == remote.Unreachable {
		appErr = apperror.PaymentUnreachable(outcome.AsError())
	} else {
		appErr = apperror.PaymentError(outcome.AsError())
	}

	// Only a pending booking is marked failed, so a payment result that
	// already arrived is not overwritten.
	applied, err := s.repo.Booking.UpdateStatusIf(ctx, booking.ID, entity.BookingStatusPaymentPending, entity.BookingStatusPaymentFailed, s.now().UTC())
	if err != nil {
		s.log.Error("Failed to mark booking payment failed",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return appErr
	}
	if !applied {
		s.log.Warn("Booking left pending state before payment failure was recorded",
			zap.String("booking_id", booking.ID.String()),
		)
	}

	s.log.Error("Payment initiation failed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("outcome", outcome.Kind.String()),
		zap.Int("status", outcome.StatusCode),
		zap.String("code", appErr.Code),
	)
	return appErr
}

func (s *bookingService) ConfirmPayment(ctx context.Context, bookingID string) error {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	applied, err := s.repo.Booking.UpdateStatusIf(ctx, booking.ID, entity.BookingStatusPaymentPending, entity.BookingStatusPaid, s.now().UTC())
	if err != nil {
		return apperror.Internal("Failed to confirm payment", err)
	}
	if !applied {
		current := booking.Status
		if latest, err := s.repo.Booking.FindByID(ctx, booking.ID); err == nil && latest != nil {
			current = latest.Status
		}
		s.log.Warn("Payment confirmation for booking not awaiting it",
			zap.String("booking_id", bookingID),
			zap.String("status", string(current)),
		)
		return apperror.InvalidStatus("Booking status is %s, not %s", current, entity.BookingStatusPaymentPending)
	}

	s.log.Info("Booking paid", zap.String("booking_id", bookingID))
	return nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return apperror.NotFound("Booking %s not found", bookingID)
	}

	err = s.repo.Booking.UpdateStatus(ctx, id, entity.BookingStatusCancelled, s.now().UTC())
	if errors.Is(err, repository.ErrBookingNotFound) {
		return apperror.NotFound("Booking %s not found", bookingID)
	}
	if err != nil {
		return apperror.Internal("Failed to cancel booking", err)
	}

	s.log.Info("Booking cancelled", zap.String("booking_id", bookingID))
	return nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.ListBookingsRequest) (*response.ListResponse[response.BookingResponse], error) {
	page := req.PaginatedRequest.Normalize()
	filter := entity.BookingFilter{Limit: page.Limit, Offset: page.Offset}

	if req.Status != "" {
		status := entity.BookingStatus(req.Status)
		if !status.Valid() {
			return nil, apperror.Validation(fmt.Sprintf("Unknown status %q", req.Status), map[string]string{
				"status": "Must be one of: CREATED, PAYMENT_PENDING, PAID, CANCELLED, PAYMENT_FAILED",
			})
		}
		filter.Status = &status
	}

	bookings, err := s.repo.Booking.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal("Failed to list bookings", err)
	}
	total, err := s.repo.Booking.Count(ctx, filter)
	if err != nil {
		return nil, apperror.Internal("Failed to count bookings", err)
	}

	items := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = response.BookingToResponse(b)
	}
	return response.NewListResponse(items, total, page.Limit, page.Offset), nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation(utils.FormatValidationErrors(errs), errs)
	}

	checkIn, checkOut, err := parseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	room, err := s.findRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	conflicts, err := s.checker.Conflicts(ctx, room.ID, checkIn, checkOut, nil)
	if err != nil {
		return nil, apperror.Internal("Failed to check availability", err)
	}

	return &response.AvailabilityResponse{
		RoomID:    room.ID.String(),
		Available: len(conflicts) == 0,
		Conflicts: response.ConflictsToResponse(conflicts),
	}, nil
}

func (s *bookingService) findRoom(ctx context.Context, roomID string) (*entity.Room, error) {
	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, apperror.NotFound("Room %s not found", roomID)
	}
	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("Failed to load room", err)
	}
	if room == nil {
		return nil, apperror.NotFound("Room %s not found", roomID)
	}
	return room, nil
}

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperror.NotFound("Booking %s not found", bookingID)
	}
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("Failed to load booking", err)
	}
	if booking == nil {
		return nil, apperror.NotFound("Booking %s not found", bookingID)
	}
	return booking, nil
}

// parseStay parses both dates and checks that the stay is at least one night.
func parseStay(checkInDate, checkOutDate string) (time.Time, time.Time, error) {
	checkIn, err := entity.ParseDate(checkInDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.Validation("Dates must be YYYY-MM-DD", map[string]string{
			"checkInDate": "Must be a date in 2006-01-02 format",
		})
	}
	checkOut, err := entity.ParseDate(checkOutDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.Validation("Dates must be YYYY-MM-DD", map[string]string{
			"checkOutDate": "Must be a date in 2006-01-02 format",
		})
	}
	if !checkIn.Before(checkOut) {
		return time.Time{}, time.Time{}, apperror.Validation("checkOutDate must be after checkInDate", map[string]string{
			"checkOutDate": "Must be after checkInDate",
		})
	}
	return checkIn, checkOut, nil
}

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"hotel-booking/internal/apperror"
	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/data/repository/memory"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/remote"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// bookingToday is the clock of every booking test.
var bookingToday = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type bookingFixture struct {
	service  BookingService
	repo     *repository.Repository
	payments *stubCaller
	room     *entity.Room
	guest    *entity.Guest
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	repo := memory.NewRepository(zap.NewNop())
	room, guest, err := repository.SeedDemo(context.Background(), repo, bookingToday)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	payments := succeeding()
	service := NewBookingService(repo, payments, BookingOptions{
		Currency: "RUB",
		Location: time.UTC,
		Now:      func() time.Time { return bookingToday },
	}, zap.NewNop())

	return &bookingFixture{service: service, repo: repo, payments: payments, room: room, guest: guest}
}

func (f *bookingFixture) request(checkIn, checkOut string) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		RoomID:       f.room.ID.String(),
		GuestID:      f.guest.ID.String(),
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
	}
}

func (f *bookingFixture) status(t *testing.T, id string) entity.BookingStatus {
	t.Helper()
	b, err := f.repo.Booking.FindByID(context.Background(), uuid.MustParse(id))
	if err != nil || b == nil {
		t.Fatalf("find booking %s: %v", id, err)
	}
	return b.Status
}

func TestCreateBooking_PricesStayAndInitiatesPayment(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.service.CreateBooking(context.Background(), f.request("2024-01-10", "2024-01-12"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if resp.TotalPrice != "10000.00" {
		t.Errorf("expected totalPrice 10000.00, got %s", resp.TotalPrice)
	}
	if resp.Status != string(entity.BookingStatusPaymentPending) {
		t.Errorf("expected status PAYMENT_PENDING, got %s", resp.Status)
	}
	if resp.AdultsCount != 1 || resp.ChildrenCount != 0 {
		t.Errorf("expected default guest counts 1/0, got %d/%d", resp.AdultsCount, resp.ChildrenCount)
	}
	if resp.CheckInDate != "2024-01-10" || resp.CheckOutDate != "2024-01-12" {
		t.Errorf("unexpected dates %s - %s", resp.CheckInDate, resp.CheckOutDate)
	}

	calls := f.payments.recorded()
	if len(calls) != 1 {
		t.Fatalf("expected one payment call, got %d", len(calls))
	}
	if calls[0].Path != PaymentsPath {
		t.Errorf("expected path %s, got %s", PaymentsPath, calls[0].Path)
	}

	var sent struct {
		BookingID string      `json:"bookingId"`
		Amount    json.Number `json:"amount"`
		Currency  string      `json:"currency"`
	}
	if err := json.Unmarshal(calls[0].Body, &sent); err != nil {
		t.Fatalf("decode payment body: %v", err)
	}
	if sent.BookingID != resp.ID {
		t.Errorf("expected bookingId %s, got %s", resp.ID, sent.BookingID)
	}
	if sent.Amount != "10000.00" {
		t.Errorf("expected amount 10000.00, got %s", sent.Amount)
	}
	if sent.Currency != "RUB" {
		t.Errorf("expected currency RUB, got %s", sent.Currency)
	}

	if got := f.status(t, resp.ID); got != entity.BookingStatusPaymentPending {
		t.Errorf("expected stored status PAYMENT_PENDING, got %s", got)
	}
}

func TestCreateBooking_FractionalRate(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	room := &entity.Room{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: bookingToday, UpdatedAt: bookingToday},
		Number:        "202",
		PricePerNight: decimal.RequireFromString("2999.99"),
	}
	if err := f.repo.Room.Create(ctx, room); err != nil {
		t.Fatalf("create room: %v", err)
	}

	req := f.request("2024-02-01", "2024-02-04")
	req.RoomID = room.ID.String()
	resp, err := f.service.CreateBooking(ctx, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.TotalPrice != "8999.97" {
		t.Errorf("expected totalPrice 8999.97, got %s", resp.TotalPrice)
	}
}

func TestCreateBooking_PaymentFailures(t *testing.T) {
	tests := []struct {
		name    string
		outcome remote.Outcome
		code    string
	}{
		{
			name:    "payment service error",
			outcome: remote.Outcome{Kind: remote.HTTPError, StatusCode: 500, Body: []byte(`{"error":"boom"}`)},
			code:    apperror.CodePaymentError,
		},
		{
			name:    "payment service rejects",
			outcome: remote.Outcome{Kind: remote.HTTPError, StatusCode: 400, Body: []byte(`{"error":"bad"}`)},
			code:    apperror.CodePaymentError,
		},
		{
			name:    "payment service unreachable",
			outcome: remote.Outcome{Kind: remote.Unreachable, Err: errors.New("dial tcp: connection refused")},
			code:    apperror.CodePaymentUnreachable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			f.payments.outcome = tt.outcome
			ctx := context.Background()

			_, err := f.service.CreateBooking(ctx, f.request("2024-01-10", "2024-01-12"))
			assertCode(t, err, tt.code, http.StatusServiceUnavailable)

			list, err := f.service.ListBookings(ctx, &request.ListBookingsRequest{})
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if list.Total != 1 {
				t.Fatalf("expected the booking row to be kept, got %d rows", list.Total)
			}
			if list.Items[0].Status != string(entity.BookingStatusPaymentFailed) {
				t.Errorf("expected PAYMENT_FAILED, got %s", list.Items[0].Status)
			}

			// A failed booking still holds its dates.
			_, err = f.service.CreateBooking(ctx, f.request("2024-01-11", "2024-01-13"))
			assertCode(t, err, apperror.CodeConflict, http.StatusConflict)
		})
	}
}

func TestCreateBooking_Overlap(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	first, err := f.service.CreateBooking(ctx, f.request("2024-01-10", "2024-01-12"))
	if err != nil {
		t.Fatalf("create first: %v", err)
	}

	_, err = f.service.CreateBooking(ctx, f.request("2024-01-11", "2024-01-13"))
	assertCode(t, err, apperror.CodeConflict, http.StatusConflict)

	appErr, _ := apperror.As(err)
	if !strings.Contains(appErr.Message, "2024-01-10 - 2024-01-12") {
		t.Errorf("expected conflicting range in message, got %q", appErr.Message)
	}
	if !strings.HasPrefix(appErr.Message, "Room is already booked for") {
		t.Errorf("unexpected message %q", appErr.Message)
	}

	// Check-out day is free for the next guest.
	if _, err := f.service.CreateBooking(ctx, f.request("2024-01-12", "2024-01-14")); err != nil {
		t.Errorf("expected adjacent booking to succeed, got %v", err)
	}
	if _, err := f.service.CreateBooking(ctx, f.request("2024-01-08", "2024-01-10")); err != nil {
		t.Errorf("expected booking ending on check-in day to succeed, got %v", err)
	}

	if len(f.payments.recorded()) != 3 {
		t.Errorf("expected no payment call for the rejected booking, got %d calls", len(f.payments.recorded()))
	}

	if got := f.status(t, first.ID); got != entity.BookingStatusPaymentPending {
		t.Errorf("rejected overlap touched the first booking: %s", got)
	}
}

// overlapOnCreate simulates the exclusion constraint firing on insert after
// the in-transaction overlap check passed.
type overlapOnCreate struct {
	repository.BookingRepository
	reject  bool
	lookups int
}

func (o *overlapOnCreate) CreateIfAvailable(ctx context.Context, booking *entity.Booking) ([]*entity.Booking, error) {
	if o.reject {
		return nil, repository.ErrBookingOverlap
	}
	return o.BookingRepository.CreateIfAvailable(ctx, booking)
}

func (o *overlapOnCreate) FindOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, exclude *uuid.UUID) ([]*entity.Booking, error) {
	o.lookups++
	return o.BookingRepository.FindOverlapping(ctx, roomID, checkIn, checkOut, exclude)
}

func newOverlapFixture(t *testing.T) (*bookingFixture, *overlapOnCreate) {
	t.Helper()
	f := newBookingFixture(t)
	bookings := &overlapOnCreate{BookingRepository: f.repo.Booking}
	repo := &repository.Repository{Booking: bookings, Room: f.repo.Room, Guest: f.repo.Guest}
	f.service = NewBookingService(repo, f.payments, BookingOptions{
		Currency: "RUB",
		Location: time.UTC,
		Now:      func() time.Time { return bookingToday },
	}, zap.NewNop())
	return f, bookings
}

func TestCreateBooking_ConstraintOverlapReportsHolders(t *testing.T) {
	f, bookings := newOverlapFixture(t)
	ctx := context.Background()

	holder, err := f.service.CreateBooking(ctx, f.request("2024-01-10", "2024-01-12"))
	if err != nil {
		t.Fatalf("create holder: %v", err)
	}

	bookings.reject = true
	before := bookings.lookups
	_, err = f.service.CreateBooking(ctx, f.request("2024-01-11", "2024-01-13"))
	assertCode(t, err, apperror.CodeConflict, http.StatusConflict)

	if bookings.lookups == before {
		t.Errorf("expected holders to be looked up after the constraint fired")
	}
	appErr, _ := apperror.As(err)
	if appErr.Message != "Room is already booked for: 2024-01-10 - 2024-01-12" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
	details, ok := appErr.Details.([]response.ConflictResponse)
	if !ok || len(details) != 1 || details[0].ID != holder.ID {
		t.Errorf("expected the holder in details, got %#v", appErr.Details)
	}
	if n := len(f.payments.recorded()); n != 1 {
		t.Errorf("expected no payment call for the rejected booking, got %d calls", n)
	}
}

func TestCreateBooking_ConstraintOverlapWithoutHolders(t *testing.T) {
	f, bookings := newOverlapFixture(t)
	bookings.reject = true

	_, err := f.service.CreateBooking(context.Background(), f.request("2024-01-10", "2024-01-12"))
	assertCode(t, err, apperror.CodeConflict, http.StatusConflict)

	appErr, _ := apperror.As(err)
	if appErr.Message != "Room is already booked for the requested dates" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
	if n := len(f.payments.recorded()); n != 0 {
		t.Errorf("expected no payment call, got %d", n)
	}
	list, err := f.service.ListBookings(context.Background(), &request.ListBookingsRequest{})
	if err != nil || list.Total != 0 {
		t.Errorf("expected no stored booking, got %v err=%v", list, err)
	}
}

func TestCreateBooking_Validation(t *testing.T) {
	zero := 0

	tests := []struct {
		name   string
		mutate func(r *request.CreateBookingRequest)
	}{
		{"missing room", func(r *request.CreateBookingRequest) { r.RoomID = "" }},
		{"missing guest", func(r *request.CreateBookingRequest) { r.GuestID = "" }},
		{"missing check-in", func(r *request.CreateBookingRequest) { r.CheckInDate = "" }},
		{"bad date format", func(r *request.CreateBookingRequest) { r.CheckInDate = "2024/01/10" }},
		{"impossible date", func(r *request.CreateBookingRequest) { r.CheckOutDate = "2024-02-30" }},
		{"same day", func(r *request.CreateBookingRequest) { r.CheckOutDate = r.CheckInDate }},
		{"check-out before check-in", func(r *request.CreateBookingRequest) {
			r.CheckInDate, r.CheckOutDate = "2024-01-12", "2024-01-10"
		}},
		{"check-in in the past", func(r *request.CreateBookingRequest) {
			r.CheckInDate, r.CheckOutDate = "2023-12-31", "2024-01-02"
		}},
		{"no adults", func(r *request.CreateBookingRequest) { r.AdultsCount = &zero }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			req := f.request("2024-01-10", "2024-01-12")
			tt.mutate(req)

			_, err := f.service.CreateBooking(context.Background(), req)
			assertCode(t, err, apperror.CodeValidation, http.StatusBadRequest)

			if n := len(f.payments.recorded()); n != 0 {
				t.Errorf("expected no payment call, got %d", n)
			}
		})
	}
}

func TestCreateBooking_CheckInToday(t *testing.T) {
	f := newBookingFixture(t)

	if _, err := f.service.CreateBooking(context.Background(), f.request("2024-01-01", "2024-01-02")); err != nil {
		t.Fatalf("expected check-in today to be accepted, got %v", err)
	}
}

func TestCreateBooking_TodayFollowsTimezone(t *testing.T) {
	repo := memory.NewRepository(zap.NewNop())
	room, guest, err := repository.SeedDemo(context.Background(), repo, bookingToday)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// 2024-01-01 22:00 UTC is already 2024-01-02 in Moscow.
	moscow := time.FixedZone("MSK", 3*60*60)
	late := time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)
	service := NewBookingService(repo, succeeding(), BookingOptions{
		Location: moscow,
		Now:      func() time.Time { return late },
	}, zap.NewNop())

	_, err = service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		RoomID:       room.ID.String(),
		GuestID:      guest.ID.String(),
		CheckInDate:  "2024-01-01",
		CheckOutDate: "2024-01-03",
	})
	assertCode(t, err, apperror.CodeValidation, http.StatusBadRequest)
}

func TestCreateBooking_UnknownReferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *request.CreateBookingRequest)
	}{
		{"unknown room", func(r *request.CreateBookingRequest) { r.RoomID = uuid.NewString() }},
		{"malformed room id", func(r *request.CreateBookingRequest) { r.RoomID = "not-a-uuid" }},
		{"unknown guest", func(r *request.CreateBookingRequest) { r.GuestID = uuid.NewString() }},
		{"malformed guest id", func(r *request.CreateBookingRequest) { r.GuestID = "42" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			req := f.request("2024-01-10", "2024-01-12")
			tt.mutate(req)

			_, err := f.service.CreateBooking(context.Background(), req)
			assertCode(t, err, apperror.CodeNotFound, http.StatusNotFound)
		})
	}
}

func TestConfirmPayment(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateBooking(ctx, f.request("2024-01-10", "2024-01-12"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.service.ConfirmPayment(ctx, created.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if got := f.status(t, created.ID); got != entity.BookingStatusPaid {
		t.Fatalf("expected PAID, got %s", got)
	}

	err = f.service.ConfirmPayment(ctx, created.ID)
	assertCode(t, err, apperror.CodeInvalidStatus, http.StatusBadRequest)
	if got := f.status(t, created.ID); got != entity.BookingStatusPaid {
		t.Errorf("second confirm changed status to %s", got)
	}
}

func TestConfirmPayment_CancelledBookingStaysCancelled(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateBooking(ctx, f.request("2024-01-10", "2024-01-12"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.service.CancelBooking(ctx, created.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	err = f.service.ConfirmPayment(ctx, created.ID)
	assertCode(t, err, apperror.CodeInvalidStatus, http.StatusBadRequest)
	if got := f.status(t, created.ID); got != entity.BookingStatusCancelled {
		t.Errorf("expected CANCELLED, got %s", got)
	}
}

func TestCancelBooking_IdempotentAndFreesDates(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateBooking(ctx, f.request("2024-01-10", "2024-01-12"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := f.service.CancelBooking(ctx, created.ID); err != nil {
			t.Fatalf("cancel #%d: %v", i+1, err)
		}
		if got := f.status(t, created.ID); got != entity.BookingStatusCancelled {
			t.Fatalf("cancel #%d: expected CANCELLED, got %s", i+1, got)
		}
	}

	if _, err := f.service.CreateBooking(ctx, f.request("2024-01-10", "2024-01-12")); err != nil {
		t.Errorf("expected cancelled dates to be bookable, got %v", err)
	}
}

func TestBookingTransitions_StampServiceClock(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	clock := bookingToday
	f.service = NewBookingService(f.repo, f.payments, BookingOptions{
		Currency: "RUB",
		Location: time.UTC,
		Now:      func() time.Time { return clock },
	}, zap.NewNop())

	created, err := f.service.CreateBooking(ctx, f.request("2024-01-10", "2024-01-12"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updatedAt := func() time.Time {
		b, err := f.repo.Booking.FindByID(ctx, uuid.MustParse(created.ID))
		if err != nil || b == nil {
			t.Fatalf("find: %v", err)
		}
		return b.UpdatedAt
	}

	clock = bookingToday.Add(time.Hour)
	if err := f.service.ConfirmPayment(ctx, created.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if got := updatedAt(); !got.Equal(clock) {
		t.Errorf("confirm updated_at = %s, want %s", got, clock)
	}

	clock = bookingToday.Add(2 * time.Hour)
	if err := f.service.CancelBooking(ctx, created.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := updatedAt(); !got.Equal(clock) {
		t.Errorf("cancel updated_at = %s, want %s", got, clock)
	}
}

func TestCreateBooking_RetryAfterPaymentFailure(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	f.payments.outcome = remote.Outcome{Kind: remote.Unreachable, Err: errors.New("dial tcp: connection refused")}

	_, err := f.service.CreateBooking(ctx, f.request("2024-01-10", "2024-01-12"))
	assertCode(t, err, apperror.CodePaymentUnreachable, http.StatusServiceUnavailable)

	failed := entity.BookingStatusPaymentFailed
	list, err := f.service.ListBookings(ctx, &request.ListBookingsRequest{Status: string(failed)})
	if err != nil || list.Total != 1 {
		t.Fatalf("expected one failed booking, got %v err=%v", list, err)
	}
	failedID := list.Items[0].ID

	f.payments.outcome = succeeding().outcome

	// Different dates go through while the failed booking holds its own.
	if _, err := f.service.CreateBooking(ctx, f.request("2024-01-12", "2024-01-14")); err != nil {
		t.Fatalf("expected other dates to be bookable, got %v", err)
	}
	_, err = f.service.CreateBooking(ctx, f.request("2024-01-10", "2024-01-12"))
	assertCode(t, err, apperror.CodeConflict, http.StatusConflict)

	if err := f.service.CancelBooking(ctx, failedID); err != nil {
		t.Fatalf("cancel failed booking: %v", err)
	}
	retried, err := f.service.CreateBooking(ctx, f.request("2024-01-10", "2024-01-12"))
	if err != nil {
		t.Fatalf("retry after cancel: %v", err)
	}
	if retried.ID == failedID || retried.Status != string(entity.BookingStatusPaymentPending) {
		t.Errorf("expected a new pending booking, got %s %s", retried.ID, retried.Status)
	}
}

func TestCancelBooking_PaidBooking(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateBooking(ctx, f.request("2024-01-10", "2024-01-12"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.service.ConfirmPayment(ctx, created.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := f.service.CancelBooking(ctx, created.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := f.status(t, created.ID); got != entity.BookingStatusCancelled {
		t.Errorf("expected CANCELLED, got %s", got)
	}
}

func TestBookingLookups_NotFound(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	for _, id := range []string{uuid.NewString(), "nope"} {
		_, err := f.service.GetBooking(ctx, id)
		assertCode(t, err, apperror.CodeNotFound, http.StatusNotFound)

		assertCode(t, f.service.ConfirmPayment(ctx, id), apperror.CodeNotFound, http.StatusNotFound)
		assertCode(t, f.service.CancelBooking(ctx, id), apperror.CodeNotFound, http.StatusNotFound)
	}
}

func TestGetBooking(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	two := 2
	req := f.request("2024-01-10", "2024-01-12")
	req.AdultsCount = &two
	req.SpecialRequests = "late arrival"

	created, err := f.service.CreateBooking(ctx, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := f.service.GetBooking(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != created.ID || got.RoomID != f.room.ID.String() || got.GuestID != f.guest.ID.String() {
		t.Errorf("unexpected booking %+v", got)
	}
	if got.AdultsCount != 2 || got.SpecialRequests != "late arrival" {
		t.Errorf("request fields not stored: %+v", got)
	}
	if got.TotalPrice != "10000.00" {
		t.Errorf("expected totalPrice 10000.00, got %s", got.TotalPrice)
	}
}

func TestListBookings(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	var ids []string
	for _, stay := range [][2]string{
		{"2024-01-10", "2024-01-12"},
		{"2024-01-12", "2024-01-14"},
		{"2024-01-14", "2024-01-16"},
	} {
		resp, err := f.service.CreateBooking(ctx, f.request(stay[0], stay[1]))
		if err != nil {
			t.Fatalf("create %v: %v", stay, err)
		}
		ids = append(ids, resp.ID)
	}
	if err := f.service.CancelBooking(ctx, ids[1]); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	all, err := f.service.ListBookings(ctx, &request.ListBookingsRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if all.Total != 3 || len(all.Items) != 3 {
		t.Errorf("expected 3 bookings, got total %d items %d", all.Total, len(all.Items))
	}
	if all.Limit != 20 || all.Offset != 0 {
		t.Errorf("expected default paging 20/0, got %d/%d", all.Limit, all.Offset)
	}

	cancelled, err := f.service.ListBookings(ctx, &request.ListBookingsRequest{Status: "CANCELLED"})
	if err != nil {
		t.Fatalf("list cancelled: %v", err)
	}
	if cancelled.Total != 1 || cancelled.Items[0].ID != ids[1] {
		t.Errorf("expected only the cancelled booking, got %+v", cancelled.Items)
	}

	page, err := f.service.ListBookings(ctx, &request.ListBookingsRequest{
		PaginatedRequest: request.PaginatedRequest{Limit: 2, Offset: 2},
	})
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 1 {
		t.Errorf("expected 1 item of 3 on the second page, got %d of %d", len(page.Items), page.Total)
	}

	_, err = f.service.ListBookings(ctx, &request.ListBookingsRequest{Status: "BOGUS"})
	assertCode(t, err, apperror.CodeValidation, http.StatusBadRequest)
}

func TestListBookings_Empty(t *testing.T) {
	f := newBookingFixture(t)

	list, err := f.service.ListBookings(context.Background(), &request.ListBookingsRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Items == nil || len(list.Items) != 0 || list.Total != 0 {
		t.Errorf("expected an empty non-nil list, got %+v", list)
	}
}

func TestCheckAvailability(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateBooking(ctx, f.request("2024-01-10", "2024-01-12"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	busy, err := f.service.CheckAvailability(ctx, &request.AvailabilityRequest{
		RoomID: f.room.ID.String(), CheckInDate: "2024-01-11", CheckOutDate: "2024-01-15",
	})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if busy.Available || len(busy.Conflicts) != 1 || busy.Conflicts[0].ID != created.ID {
		t.Errorf("expected one conflict with %s, got %+v", created.ID, busy)
	}

	free, err := f.service.CheckAvailability(ctx, &request.AvailabilityRequest{
		RoomID: f.room.ID.String(), CheckInDate: "2024-01-12", CheckOutDate: "2024-01-15",
	})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !free.Available || len(free.Conflicts) != 0 {
		t.Errorf("expected room free from check-out day, got %+v", free)
	}

	_, err = f.service.CheckAvailability(ctx, &request.AvailabilityRequest{
		RoomID: uuid.NewString(), CheckInDate: "2024-01-12", CheckOutDate: "2024-01-15",
	})
	assertCode(t, err, apperror.CodeNotFound, http.StatusNotFound)

	_, err = f.service.CheckAvailability(ctx, &request.AvailabilityRequest{RoomID: f.room.ID.String()})
	assertCode(t, err, apperror.CodeValidation, http.StatusBadRequest)
}

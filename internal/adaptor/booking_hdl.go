package adaptor

import (
	"net/http"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings/
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondInvalidJSON(w)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, booking)
}

// ListBookings handles GET /api/bookings/?status=&limit=&offset=
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListBookingsRequest{
		Status: query.Get("status"),
		PaginatedRequest: request.PaginatedRequest{
			Limit:  utils.ParseInt(query.Get("limit"), utils.DefaultLimit),
			Offset: utils.ParseInt(query.Get("offset"), 0),
		},
	}

	bookings, err := h.service.ListBookings(r.Context(), req)
	if err != nil {
		respondServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, bookings)
}

// GetBooking handles GET /api/bookings/{id}/
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.GetBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, booking)
}

// ConfirmPayment handles POST /api/bookings/{id}/confirm-payment/
func (h *BookingHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ConfirmPayment(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.log, err, "confirm payment")
		return
	}

	utils.ResponseOK(w)
}

// CancelBooking handles POST /api/bookings/{id}/cancel/
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CancelBooking(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseOK(w)
}

// RoomAvailability handles GET /api/rooms/{id}/availability?checkInDate=&checkOutDate=
func (h *BookingHandler) RoomAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.AvailabilityRequest{
		RoomID:       chi.URLParam(r, "id"),
		CheckInDate:  query.Get("checkInDate"),
		CheckOutDate: query.Get("checkOutDate"),
	}

	result, err := h.service.CheckAvailability(r.Context(), req)
	if err != nil {
		respondServiceError(w, h.log, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, result)
}

package adaptor

import (
	"net/http"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// CreatePayment handles POST /api/payments
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondInvalidJSON(w)
		return
	}

	payment, err := h.service.CreatePayment(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create payment")
		return
	}

	utils.ResponseCreated(w, payment)
}

// ListPayments handles GET /api/payments?status=&bookingId=&limit=&offset=
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListPaymentsRequest{
		Status:    query.Get("status"),
		BookingID: query.Get("bookingId"),
		PaginatedRequest: request.PaginatedRequest{
			Limit:  utils.ParseInt(query.Get("limit"), utils.DefaultLimit),
			Offset: utils.ParseInt(query.Get("offset"), 0),
		},
	}

	payments, err := h.service.ListPayments(r.Context(), req)
	if err != nil {
		respondServiceError(w, h.log, err, "list payments")
		return
	}

	utils.ResponseSuccess(w, payments)
}

// GetPayment handles GET /api/payments/{id}
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.service.GetPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.log, err, "get payment")
		return
	}

	utils.ResponseSuccess(w, payment)
}

// GetPaymentsByBooking handles GET /api/payments/by-booking/{bookingId}
func (h *PaymentHandler) GetPaymentsByBooking(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.GetPaymentsByBooking(r.Context(), chi.URLParam(r, "bookingId"))
	if err != nil {
		respondServiceError(w, h.log, err, "get payments by booking")
		return
	}

	utils.ResponseSuccess(w, payments)
}

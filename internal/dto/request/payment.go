package request

import "github.com/shopspring/decimal"

type CreatePaymentRequest struct {
	// BookingID is opaque to the payment service.
	BookingID   string           `json:"bookingId" validate:"required,max=64"`
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	Currency    string           `json:"currency" validate:"omitempty,len=3"`
	Description *string          `json:"description" validate:"omitnil,max=500"`
	Metadata    map[string]any   `json:"metadata"`
}

type ListPaymentsRequest struct {
	Status    string
	BookingID string
	PaginatedRequest
}

package request

import (
	"encoding/json"
	"time"
)

// PaymentNotificationRequest is the payment outcome event sent by the payment
// service. Status is kept as a plain string so unknown values still decode.
type PaymentNotificationRequest struct {
	PaymentID     string      `json:"paymentId" validate:"required"`
	BookingID     string      `json:"bookingId" validate:"required"`
	Status        string      `json:"status" validate:"required"`
	Amount        json.Number `json:"amount,omitempty"`
	Currency      *string     `json:"currency,omitempty"`
	FailureReason *string     `json:"failureReason,omitempty"`
	OccurredAt    *time.Time  `json:"occurredAt,omitempty"`
}

type MarkReadRequest struct {
	Read *bool `json:"read"`
}

type ListNotificationsRequest struct {
	Type string
	PaginatedRequest
}

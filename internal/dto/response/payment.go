package response

import (
	"encoding/json"
	"time"

	"hotel-booking/internal/data/entity"
)

type PaymentResponse struct {
	ID            string      `json:"id"`
	BookingID     string      `json:"bookingId"`
	Status        string      `json:"status"`
	Amount        json.Number `json:"amount"`
	Currency      string      `json:"currency"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
	FailureReason *string     `json:"failureReason,omitempty"`
}

func PaymentToResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID.String(),
		BookingID:     p.BookingID,
		Status:        string(p.Status),
		Amount:        Money(p.Amount),
		Currency:      p.Currency,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		FailureReason: p.FailureReason,
	}
}

package response

import (
	"encoding/json"
	"time"

	"hotel-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

type BookingResponse struct {
	ID              string      `json:"id"`
	RoomID          string      `json:"roomId"`
	GuestID         string      `json:"guestId"`
	Status          string      `json:"status"`
	CheckInDate     string      `json:"checkInDate"`
	CheckOutDate    string      `json:"checkOutDate"`
	AdultsCount     int         `json:"adultsCount"`
	ChildrenCount   int         `json:"childrenCount"`
	TotalPrice      json.Number `json:"totalPrice"`
	SpecialRequests string      `json:"specialRequests"`
	CreatedAt       time.Time   `json:"createdAt"`
}

type AvailabilityResponse struct {
	RoomID    string             `json:"roomId"`
	Available bool               `json:"available"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

type ConflictResponse struct {
	ID           string `json:"id"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Status       string `json:"status"`
}

// Money renders an amount as a JSON number with two decimals.
func Money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID.String(),
		RoomID:          b.RoomID.String(),
		GuestID:         b.GuestID.String(),
		Status:          string(b.Status),
		CheckInDate:     b.CheckInDate.Format(entity.DateLayout),
		CheckOutDate:    b.CheckOutDate.Format(entity.DateLayout),
		AdultsCount:     b.AdultsCount,
		ChildrenCount:   b.ChildrenCount,
		TotalPrice:      Money(b.TotalPrice),
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
	}
}

func ConflictsToResponse(conflicts []*entity.Booking) []ConflictResponse {
	out := make([]ConflictResponse, len(conflicts))
	for i, b := range conflicts {
		out[i] = ConflictResponse{
			ID:           b.ID.String(),
			CheckInDate:  b.CheckInDate.Format(entity.DateLayout),
			CheckOutDate: b.CheckOutDate.Format(entity.DateLayout),
			Status:       string(b.Status),
		}
	}
	return out
}

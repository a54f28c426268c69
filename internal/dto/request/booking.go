package request

// CreateBookingRequest is the public create payload. Room and guest ids are
// resolved by the booking service; unknown or malformed ids are a 404.
type CreateBookingRequest struct {
	RoomID          string `json:"roomId" validate:"required"`
	GuestID         string `json:"guestId" validate:"required"`
	CheckInDate     string `json:"checkInDate" validate:"required,datetime=2006-01-02"`
	CheckOutDate    string `json:"checkOutDate" validate:"required,datetime=2006-01-02"`
	AdultsCount     *int   `json:"adultsCount" validate:"omitnil,min=1,max=20"`
	ChildrenCount   *int   `json:"childrenCount" validate:"omitnil,min=0,max=20"`
	SpecialRequests string `json:"specialRequests" validate:"max=2000"`
}

// Adults defaults to one guest.
func (r CreateBookingRequest) Adults() int {
	if r.AdultsCount == nil {
		return 1
	}
	return *r.AdultsCount
}

func (r CreateBookingRequest) Children() int {
	if r.ChildrenCount == nil {
		return 0
	}
	return *r.ChildrenCount
}

type ListBookingsRequest struct {
	Status string
	PaginatedRequest
}

type AvailabilityRequest struct {
	RoomID       string
	CheckInDate  string `json:"checkInDate" validate:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"checkOutDate" validate:"required,datetime=2006-01-02"`
}

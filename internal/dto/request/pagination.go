package request

import "hotel-booking/pkg/utils"

// PaginatedRequest is limit/offset paging as sent in the query string.
type PaginatedRequest struct {
	Limit  int
	Offset int
}

// Normalize clamps limit to [1, MaxLimit] and offset to >= 0.
func (p PaginatedRequest) Normalize() PaginatedRequest {
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	return PaginatedRequest{Limit: utils.ClampLimit(p.Limit), Offset: offset}
}

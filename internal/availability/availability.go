// Package availability decides whether a room is free for a stay. Stays are
// half-open intervals [check-in, check-out): a guest leaving on day X never
// conflicts with a guest arriving on day X.
package availability

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"hotel-booking/internal/data/entity"

	"github.com/google/uuid"
)

// Overlaps reports whether [aIn, aOut) and [bIn, bOut) share at least one night.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}

// Filter returns the bookings among candidates that occupy roomID during
// [checkIn, checkOut), ordered by check-in date ascending. exclude, when set, is
// skipped so a booking never conflicts with itself.
func Filter(candidates []*entity.Booking, roomID uuid.UUID, checkIn, checkOut time.Time, exclude *uuid.UUID) []*entity.Booking {
	var conflicts []*entity.Booking
	for _, b := range candidates {
		if b.RoomID != roomID || !b.Status.Occupies() {
			continue
		}
		if exclude != nil && b.ID == *exclude {
			continue
		}
		if Overlaps(b.CheckInDate, b.CheckOutDate, checkIn, checkOut) {
			conflicts = append(conflicts, b)
		}
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		return conflicts[i].CheckInDate.Before(conflicts[j].CheckInDate)
	})
	return conflicts
}

// Message renders conflicts as the "already booked" text shown to the guest.
func Message(conflicts []*entity.Booking) string {
	if len(conflicts) == 0 {
		return ""
	}

	ranges := make([]string, len(conflicts))
	for i, b := range conflicts {
		ranges[i] = fmt.Sprintf("%s - %s",
			b.CheckInDate.Format(entity.DateLayout),
			b.CheckOutDate.Format(entity.DateLayout),
		)
	}
	return "Room is already booked for: " + strings.Join(ranges, ", ")
}

// OverlapFinder is the storage query behind Checker.
type OverlapFinder interface {
	FindOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, exclude *uuid.UUID) ([]*entity.Booking, error)
}

// Checker answers availability questions from persisted bookings. It has no side
// effects; a free answer is not a reservation.
type Checker struct {
	finder OverlapFinder
}

func NewChecker(finder OverlapFinder) *Checker {
	return &Checker{finder: finder}
}

func (c *Checker) Conflicts(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, exclude *uuid.UUID) ([]*entity.Booking, error) {
	conflicts, err := c.finder.FindOverlapping(ctx, roomID, checkIn, checkOut, exclude)
	if err != nil {
		return nil, fmt.Errorf("find overlapping bookings for room %s: %w", roomID.String(), err)
	}
	return conflicts, nil
}

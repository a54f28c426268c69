// Package memory is a process-local booking store for development and tests.
// It keeps the same contracts as the Postgres repositories, including atomic
// overlap check and insert.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"hotel-booking/internal/availability"
	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Store struct {
	mu       sync.Mutex
	rooms    map[uuid.UUID]entity.Room
	guests   map[uuid.UUID]entity.Guest
	bookings map[uuid.UUID]entity.Booking
	log      *zap.Logger
}

func NewStore(log *zap.Logger) *Store {
	return &Store{
		rooms:    make(map[uuid.UUID]entity.Room),
		guests:   make(map[uuid.UUID]entity.Guest),
		bookings: make(map[uuid.UUID]entity.Booking),
		log:      log.With(zap.String("repository", "memory")),
	}
}

// NewRepository returns the booking service repositories backed by one Store.
func NewRepository(log *zap.Logger) *repository.Repository {
	s := NewStore(log)
	return &repository.Repository{
		Booking: bookingStore{s},
		Room:    roomStore{s},
		Guest:   guestStore{s},
	}
}

type roomStore struct{ s *Store }

func (r roomStore) Create(_ context.Context, room *entity.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.rooms[room.ID]; ok {
		return fmt.Errorf("create room %s: duplicate id", room.Number)
	}
	r.s.rooms[room.ID] = *room
	return nil
}

func (r roomStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	room, ok := r.s.rooms[id]
	if !ok {
		return nil, nil
	}
	return &room, nil
}

type guestStore struct{ s *Store }

func (g guestStore) Create(_ context.Context, guest *entity.Guest) error {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()

	if _, ok := g.s.guests[guest.ID]; ok {
		return fmt.Errorf("create guest %s: duplicate id", guest.ID.String())
	}
	g.s.guests[guest.ID] = *guest
	return nil
}

func (g guestStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Guest, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()

	guest, ok := g.s.guests[id]
	if !ok {
		return nil, nil
	}
	return &guest, nil
}

type bookingStore struct{ s *Store }

func (b bookingStore) CreateIfAvailable(_ context.Context, booking *entity.Booking) ([]*entity.Booking, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	if _, ok := b.s.rooms[booking.RoomID]; !ok {
		return nil, repository.ErrRoomNotFound
	}
	if _, ok := b.s.bookings[booking.ID]; ok {
		return nil, fmt.Errorf("create booking %s: duplicate id", booking.ID.String())
	}

	conflicts := availability.Filter(b.s.snapshot(), booking.RoomID, booking.CheckInDate, booking.CheckOutDate, nil)
	if len(conflicts) > 0 {
		return conflicts, nil
	}

	b.s.bookings[booking.ID] = *booking
	b.s.log.Debug("Booking stored", zap.String("booking_id", booking.ID.String()))
	return nil, nil
}

func (b bookingStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	booking, ok := b.s.bookings[id]
	if !ok {
		return nil, nil
	}
	return &booking, nil
}

func (b bookingStore) FindOverlapping(_ context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, exclude *uuid.UUID) ([]*entity.Booking, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	return availability.Filter(b.s.snapshot(), roomID, checkIn, checkOut, exclude), nil
}

func (b bookingStore) List(_ context.Context, filter entity.BookingFilter) ([]*entity.Booking, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	matched := b.s.filtered(filter)
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.String() > matched[j].ID.String()
	})

	if filter.Offset >= len(matched) {
		return nil, nil
	}
	end := len(matched)
	if filter.Limit > 0 && filter.Offset+filter.Limit < end {
		end = filter.Offset + filter.Limit
	}
	return matched[filter.Offset:end], nil
}

func (b bookingStore) Count(_ context.Context, filter entity.BookingFilter) (int64, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	return int64(len(b.s.filtered(filter))), nil
}

func (b bookingStore) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus, at time.Time) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	booking, ok := b.s.bookings[id]
	if !ok {
		return repository.ErrBookingNotFound
	}
	booking.Status = status
	if at.After(booking.UpdatedAt) {
		booking.UpdatedAt = at
	}
	b.s.bookings[id] = booking
	return nil
}

func (b bookingStore) UpdateStatusIf(_ context.Context, id uuid.UUID, from, to entity.BookingStatus, at time.Time) (bool, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	booking, ok := b.s.bookings[id]
	if !ok || booking.Status != from {
		return false, nil
	}
	booking.Status = to
	if at.After(booking.UpdatedAt) {
		booking.UpdatedAt = at
	}
	b.s.bookings[id] = booking
	return true, nil
}

// snapshot copies every booking. Callers hold mu.
func (s *Store) snapshot() []*entity.Booking {
	out := make([]*entity.Booking, 0, len(s.bookings))
	for _, booking := range s.bookings {
		booking := booking
		out = append(out, &booking)
	}
	return out
}

func (s *Store) filtered(filter entity.BookingFilter) []*entity.Booking {
	var out []*entity.Booking
	for _, booking := range s.snapshot() {
		if filter.Status != nil && booking.Status != *filter.Status {
			continue
		}
		out = append(out, booking)
	}
	return out
}

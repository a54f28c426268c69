package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	// ErrBookingOverlap is returned when the store itself rejects an insert
	// because another occupying booking holds the room for those dates.
	ErrBookingOverlap  = errors.New("booking overlaps an occupied stay")
	ErrBookingNotFound = errors.New("booking not found")
	ErrRoomNotFound    = errors.New("room not found")
)

// exclusion_violation, raised by bookings_no_overlap.
const pgExclusionViolation = "23P01"

type BookingRepository interface {
	// CreateIfAvailable inserts booking unless an occupying booking overlaps it.
	// The overlap check and the insert are atomic. When conflicts are found the
	// booking is not written and the conflicts are returned with a nil error.
	CreateIfAvailable(ctx context.Context, booking *entity.Booking) ([]*entity.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, exclude *uuid.UUID) ([]*entity.Booking, error)
	List(ctx context.Context, filter entity.BookingFilter) ([]*entity.Booking, error)
	Count(ctx context.Context, filter entity.BookingFilter) (int64, error)

	// UpdateStatus sets status unconditionally. updated_at becomes at, unless it
	// is already later.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus, at time.Time) error
	// UpdateStatusIf moves the booking from one status to another and reports
	// whether it was in the expected status.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, at time.Time) (bool, error)
}

const bookingColumns = `id, room_id, guest_id, user_id, check_in_date, check_out_date,
	adults_count, children_count, total_price, status, special_requests, created_at, updated_at`

const overlapQuery = `
	SELECT ` + bookingColumns + `
	FROM bookings
	WHERE room_id = $1
	  AND status <> 'CANCELLED'
	  AND check_in_date < $3
	  AND $2 < check_out_date
	  AND ($4::uuid IS NULL OR id <> $4)
	ORDER BY check_in_date, id
`

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) CreateIfAvailable(ctx context.Context, booking *entity.Booking) ([]*entity.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialise creators of the same room. The exclusion constraint still
	// backs this up if a writer bypasses the lock.
	var lockedID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, booking.RoomID).Scan(&lockedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock room %s: %w", booking.RoomID.String(), err)
	}

	rows, err := tx.Query(ctx, overlapQuery, booking.RoomID, booking.CheckInDate, booking.CheckOutDate, nil)
	if err != nil {
		return nil, fmt.Errorf("check overlap for room %s: %w", booking.RoomID.String(), err)
	}
	conflicts, err := scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return conflicts, nil
	}

	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = tx.Exec(ctx, query,
		booking.ID,
		booking.RoomID,
		booking.GuestID,
		booking.UserID,
		booking.CheckInDate,
		booking.CheckOutDate,
		booking.AdultsCount,
		booking.ChildrenCount,
		booking.TotalPrice,
		string(booking.Status),
		booking.SpecialRequests,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if isExclusionViolation(err) {
		r.log.Warn("Booking rejected by overlap constraint",
			zap.String("booking_id", booking.ID.String()),
			zap.String("room_id", booking.RoomID.String()),
		)
		return nil, ErrBookingOverlap
	}
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("room_id", booking.RoomID.String()),
		)
		return nil, fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isExclusionViolation(err) {
			return nil, ErrBookingOverlap
		}
		return nil, fmt.Errorf("commit booking %s: %w", booking.ID.String(), err)
	}

	return nil, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, exclude *uuid.UUID) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, overlapQuery, roomID, checkIn, checkOut, exclude)
	if err != nil {
		r.log.Error("Failed to find overlapping bookings",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("find overlapping bookings for room %s: %w", roomID.String(), err)
	}
	return scanBookings(rows)
}

func (r *bookingRepository) List(ctx context.Context, filter entity.BookingFilter) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, statusArg(filter.Status), filter.Limit, filter.Offset)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.Int("limit", filter.Limit),
			zap.Int("offset", filter.Offset),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return scanBookings(rows)
}

func (r *bookingRepository) Count(ctx context.Context, filter entity.BookingFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE ($1::text IS NULL OR status = $1)`

	var count int64
	if err := r.db.QueryRow(ctx, query, statusArg(filter.Status)).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus, at time.Time) error {
	query := `UPDATE bookings SET status = $2, updated_at = GREATEST(updated_at, $3) WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, string(status), at)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *bookingRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, at time.Time) (bool, error) {
	query := `UPDATE bookings SET status = $3, updated_at = GREATEST(updated_at, $4) WHERE id = $1 AND status = $2`

	result, err := r.db.Exec(ctx, query, id, string(from), string(to), at)
	if err != nil {
		r.log.Error("Failed to move booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("update booking %s status %s -> %s: %w", id.String(), string(from), string(to), err)
	}

	return result.RowsAffected() == 1, nil
}

func statusArg(status *entity.BookingStatus) *string {
	if status == nil {
		return nil
	}
	s := string(*status)
	return &s
}

func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.RoomID,
		&booking.GuestID,
		&booking.UserID,
		&booking.CheckInDate,
		&booking.CheckOutDate,
		&booking.AdultsCount,
		&booking.ChildrenCount,
		&booking.TotalPrice,
		&booking.Status,
		&booking.SpecialRequests,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func scanBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

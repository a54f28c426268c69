package repository

import (
	"context"
	"errors"
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GuestRepository interface {
	Create(ctx context.Context, guest *entity.Guest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Guest, error)
}

type guestRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGuestRepository(db database.PgxIface, log *zap.Logger) GuestRepository {
	return &guestRepository{
		db:  db,
		log: log.With(zap.String("repository", "guest")),
	}
}

func (r *guestRepository) Create(ctx context.Context, guest *entity.Guest) error {
	query := `
		INSERT INTO guests (id, first_name, last_name, middle_name, passport_number, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		guest.ID,
		guest.FirstName,
		guest.LastName,
		guest.MiddleName,
		guest.PassportNumber,
		guest.Email,
		guest.Phone,
		guest.CreatedAt,
		guest.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create guest",
			zap.Error(err),
			zap.String("guest_id", guest.ID.String()),
		)
		return fmt.Errorf("create guest %s: %w", guest.ID.String(), err)
	}

	return nil
}

func (r *guestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Guest, error) {
	query := `
		SELECT id, first_name, last_name, middle_name, passport_number, email, phone, created_at, updated_at
		FROM guests
		WHERE id = $1
	`

	var guest entity.Guest
	err := r.db.QueryRow(ctx, query, id).Scan(
		&guest.ID,
		&guest.FirstName,
		&guest.LastName,
		&guest.MiddleName,
		&guest.PassportNumber,
		&guest.Email,
		&guest.Phone,
		&guest.CreatedAt,
		&guest.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find guest by ID",
			zap.Error(err),
			zap.String("guest_id", id.String()),
		)
		return nil, fmt.Errorf("find guest by ID %s: %w", id.String(), err)
	}

	return &guest, nil
}

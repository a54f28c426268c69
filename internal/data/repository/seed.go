package repository

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeedDemo inserts one room and one guest to book against.
func SeedDemo(ctx context.Context, repo *Repository, now time.Time) (*entity.Room, *entity.Guest, error) {
	now = now.UTC()

	room := &entity.Room{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Number:        "101",
		Name:          "Standard double",
		TypeName:      "Standard",
		PricePerNight: decimal.NewFromInt(5000),
	}
	if err := repo.Room.Create(ctx, room); err != nil {
		return nil, nil, fmt.Errorf("seed room: %w", err)
	}

	email := "guest@example.com"
	guest := &entity.Guest{
		Base:           entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		FirstName:      "Ivan",
		LastName:       "Ivanov",
		PassportNumber: "4500 000001",
		Email:          &email,
		Phone:          "+79000000001",
	}
	if err := repo.Guest.Create(ctx, guest); err != nil {
		return nil, nil, fmt.Errorf("seed guest: %w", err)
	}

	return room, guest, nil
}

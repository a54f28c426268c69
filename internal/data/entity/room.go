package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Room struct {
	Base
	HotelID       *uuid.UUID      `db:"hotel_id"`
	Number        string          `db:"number"`
	Name          string          `db:"name"`
	TypeName      string          `db:"type_name"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
}

type Guest struct {
	Base
	FirstName      string  `db:"first_name"`
	LastName       string  `db:"last_name"`
	MiddleName     *string `db:"middle_name"`
	PassportNumber string  `db:"passport_number"`
	Email          *string `db:"email"`
	Phone          string  `db:"phone"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentStatusCreated    PaymentStatus = "CREATED"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusSuccess    PaymentStatus = "SUCCESS"
	PaymentStatusFailed     PaymentStatus = "FAILED"
)

// Payment is owned by the payment service. BookingID is whatever identifier the
// booking service handed over; it is never parsed.
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BookingID     string          `gorm:"type:varchar(64);not null;index"`
	Status        PaymentStatus   `gorm:"type:varchar(20);not null;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency      string          `gorm:"type:varchar(10);not null"`
	Description   *string         `gorm:"type:text"`
	Metadata      datatypes.JSON  `gorm:"type:text"`
	FailureReason *string         `gorm:"type:text"`
	CreatedAt     time.Time       `gorm:"not null;index"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

type PaymentFilter struct {
	Status    *PaymentStatus
	BookingID string
	Limit     int
	Offset    int
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusCreated, PaymentStatusProcessing, PaymentStatusSuccess, PaymentStatusFailed:
		return true
	}
	return false
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationTypePayment NotificationType = "PAYMENT"
)

// Notification is one received event, stored verbatim. Rows are never updated
// except for the Processed and Read flags.
type Notification struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Type      NotificationType `gorm:"type:varchar(20);not null;index"`
	Payload   datatypes.JSON   `gorm:"type:text"`
	Processed bool             `gorm:"not null;default:false"`
	Read      bool             `gorm:"not null;default:false"`
	CreatedAt time.Time        `gorm:"not null;index"`
}

type NotificationFilter struct {
	Type   *NotificationType
	Limit  int
	Offset int
}

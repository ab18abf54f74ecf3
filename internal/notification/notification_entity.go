package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app record only; nothing is delivered by email or
// push.
type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user_read"`
	Title   string    `gorm:"type:varchar(255);not null"`
	Message string    `gorm:"type:text;not null"`
	Type    string    `gorm:"type:varchar(30);not null"`
	Link    string    `gorm:"type:varchar(255)"`
	IsRead  bool      `gorm:"not null;default:false;index:idx_notifications_user_read"`

	CreatedAt time.Time
}

func (Notification) TableName() string {
	return "notifications"
}

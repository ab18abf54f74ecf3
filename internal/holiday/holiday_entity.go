package holiday

import (
	"time"

	"github.com/google/uuid"
)

// Holiday rows are informational for calendars. Business day math counts
// weekends only, so an approved request spanning a holiday is unaffected.
type Holiday struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Date        time.Time `gorm:"type:date;not null;index"`
	IsRecurring bool      `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Holiday) TableName() string {
	return "holidays"
}

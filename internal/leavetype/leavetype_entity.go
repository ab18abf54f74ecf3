package leavetype

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaveType is reference data owned by admins. The request core only ever
// reads it.
type LeaveType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string    `gorm:"type:text"`

	DefaultDays  decimal.Decimal `gorm:"type:numeric(6,1);not null;default:0"`
	Color        string          `gorm:"type:varchar(7);not null;default:'#6B7280'"`
	CarryForward bool            `gorm:"not null;default:false"`
	MaxCarryDays decimal.Decimal `gorm:"type:numeric(6,1);not null;default:0"`
	IsActive     bool            `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveType) TableName() string {
	return "leave_types"
}

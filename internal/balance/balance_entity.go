package balance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaveBalance is one user's entitlement for one leave type in one calendar
// year. Rows are mutated only through the ledger operations Reserve, Commit
// and Release, always inside the transaction of the triggering request
// transition.
type LeaveBalance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uidx_balances_user_type_year"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uidx_balances_user_type_year"`
	Year        int       `gorm:"not null;uniqueIndex:uidx_balances_user_type_year"`

	TotalDays   decimal.Decimal `gorm:"type:numeric(6,1);not null"`
	UsedDays    decimal.Decimal `gorm:"type:numeric(6,1);not null;default:0"`
	PendingDays decimal.Decimal `gorm:"type:numeric(6,1);not null;default:0"`
	CarriedDays decimal.Decimal `gorm:"type:numeric(6,1);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

// AvailableDays is the headroom a new reservation is validated against.
func (b LeaveBalance) AvailableDays() decimal.Decimal {
	return b.TotalDays.Sub(b.UsedDays).Sub(b.PendingDays)
}

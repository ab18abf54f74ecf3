package leaverequest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request lifecycle. PENDING is the only non-terminal state; every other
// status is final and reached by exactly one transition.
const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

// LeaveRequest is never physically deleted; terminal rows are retained for
// reporting.
type LeaveRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_user_dates"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null"`
	// Snapshot of the requester's department at submission time.
	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`

	StartDate time.Time       `gorm:"type:date;not null;index:idx_leave_requests_user_dates"`
	EndDate   time.Time       `gorm:"type:date;not null;index:idx_leave_requests_user_dates"`
	TotalDays decimal.Decimal `gorm:"type:numeric(6,1);not null"`
	HalfDay   bool            `gorm:"not null;default:false"`
	Reason    string          `gorm:"type:text;not null"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	RejectionReason *string    `gorm:"type:text"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	CancelledAt     *time.Time

	AppliedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// BalanceYear keys the ledger row this request draws from. Derived from the
// start date, never from the wall clock, so transitions on old requests stay
// deterministic.
func (l LeaveRequest) BalanceYear() int {
	return l.StartDate.Year()
}

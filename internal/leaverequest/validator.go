package leaverequest

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yohan114/leave-management-system/internal/balance"
	leaverequesterrors "github.com/yohan114/leave-management-system/internal/leaverequest/errors"
)

var halfDayAmount = decimal.NewFromFloat(0.5)

// BusinessDaysBetween counts Monday through Friday in [start, end],
// inclusive on both ends. Holidays are deliberately not excluded; they are
// calendar-informational only.
func BusinessDaysBetween(start, end time.Time) decimal.Decimal {
	if end.Before(start) {
		return decimal.Zero
	}

	days := int64(0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			days++
		}
	}
	return decimal.NewFromInt(days)
}

// ComputeTotalDays fixes the day count at submission; it is never
// recomputed afterwards. A half-day request consumes exactly 0.5 regardless
// of the date span.
func ComputeTotalDays(start, end time.Time, halfDay bool) decimal.Decimal {
	if halfDay {
		return halfDayAmount
	}
	return BusinessDaysBetween(start, end)
}

// ValidateDates enforces start <= end.
func ValidateDates(start, end time.Time) error {
	if start.After(end) {
		return leaverequesterrors.ErrInvalidDateRange
	}
	return nil
}

// ValidateReason rejects empty or whitespace-only reasons.
func ValidateReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return leaverequesterrors.ErrReasonRequired
	}
	return nil
}

// CheckSufficiency admits a reservation only while
// usedDays + pendingDays + totalDays <= balance.totalDays. Callers must hold
// the balance row locked so the snapshot cannot go stale before the reserve.
func CheckSufficiency(totalDays decimal.Decimal, b *balance.LeaveBalance) error {
	if totalDays.GreaterThan(b.AvailableDays()) {
		return leaverequesterrors.ErrInsufficientBalance
	}
	return nil
}

package balance

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, b *LeaveBalance) error
	Find(ctx context.Context, userID, leaveTypeID string, year int) (*LeaveBalance, error)
	// FindForUpdate locks the balance row for the duration of the enclosing
	// transaction so concurrent submissions cannot both pass the sufficiency
	// check against the same headroom.
	FindForUpdate(ctx context.Context, userID, leaveTypeID string, year int) (*LeaveBalance, error)
	ListByUserYear(ctx context.Context, userID string, year int) ([]LeaveBalance, error)
	ListByYear(ctx context.Context, year int) ([]LeaveBalance, error)
	Reserve(ctx context.Context, userID, leaveTypeID string, year int, amount decimal.Decimal) error
	Commit(ctx context.Context, userID, leaveTypeID string, year int, amount decimal.Decimal) error
	Release(ctx context.Context, userID, leaveTypeID string, year int, amount decimal.Decimal) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) Find(ctx context.Context, userID, leaveTypeID string, year int) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
		First(&b).Error
	return &b, err
}

func (r *repository) FindForUpdate(ctx context.Context, userID, leaveTypeID string, year int) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
		First(&b).Error
	return &b, err
}

func (r *repository) ListByUserYear(ctx context.Context, userID string, year int) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("year = ?", year).
		Find(&balances).Error
	return balances, err
}

func (r *repository) ListByYear(ctx context.Context, year int) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Where("year = ?", year).
		Find(&balances).Error
	return balances, err
}

// Reserve holds pending days against the balance while a request awaits a
// decision.
func (r *repository) Reserve(ctx context.Context, userID, leaveTypeID string, year int, amount decimal.Decimal) error {
	return r.adjust(ctx, userID, leaveTypeID, year, map[string]any{
		"pending_days": gorm.Expr("pending_days + ?", amount),
	})
}

// Commit moves a reservation into consumed days on approval.
func (r *repository) Commit(ctx context.Context, userID, leaveTypeID string, year int, amount decimal.Decimal) error {
	return r.adjust(ctx, userID, leaveTypeID, year, map[string]any{
		"pending_days": gorm.Expr("pending_days - ?", amount),
		"used_days":    gorm.Expr("used_days + ?", amount),
	})
}

// Release drops a reservation on rejection or cancellation.
func (r *repository) Release(ctx context.Context, userID, leaveTypeID string, year int, amount decimal.Decimal) error {
	return r.adjust(ctx, userID, leaveTypeID, year, map[string]any{
		"pending_days": gorm.Expr("pending_days - ?", amount),
	})
}

func (r *repository) adjust(ctx context.Context, userID, leaveTypeID string, year int, updates map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Where("user_id = ?", userID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

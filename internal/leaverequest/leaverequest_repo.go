package leaverequest

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	// FindByIDForUpdate reads the request under a row lock so the PENDING
	// precondition and the status write happen against the same version:
	// at most one of approve/reject/cancel can win.
	FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	// HasOverlappingRequest reports whether any PENDING or APPROVED request
	// of the user intersects [startDate, endDate], bounds inclusive.
	HasOverlappingRequest(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error)
	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]LeaveRequest, error)
	ListForManager(ctx context.Context, managerID string, filter ListFilter) ([]LeaveRequest, error)
	ListAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, error)
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) HasOverlappingRequest(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("user_id = ?", userID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListByUser(ctx context.Context, userID string, filter ListFilter) ([]LeaveRequest, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	return listWithFilter(q, filter)
}

// ListForManager returns the manager's own requests plus those of their
// direct reports.
func (r *repository) ListForManager(ctx context.Context, managerID string, filter ListFilter) ([]LeaveRequest, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ? OR user_id IN (SELECT id FROM users WHERE manager_id = ?)", managerID, managerID)
	return listWithFilter(q, filter)
}

func (r *repository) ListAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, error) {
	q := r.db.WithContext(ctx)
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.DepartmentID != "" {
		q = q.Where("department_id = ?", filter.DepartmentID)
	}
	return listWithFilter(q, filter)
}

func listWithFilter(q *gorm.DB, filter ListFilter) ([]LeaveRequest, error) {
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var requests []LeaveRequest
	err := q.Model(&LeaveRequest{}).
		Order("applied_at DESC").
		Find(&requests).Error
	return requests, err
}

package report

import (
	"context"

	"gorm.io/gorm"

	"github.com/yohan114/leave-management-system/internal/leaverequest"
)

type Repository interface {
	CountActiveUsers(ctx context.Context) (int64, error)
	CountDepartments(ctx context.Context) (int64, error)
	CountRequestsByStatus(ctx context.Context, year int, departmentID string, status string) (int64, error)
	ApprovedDaysByType(ctx context.Context, year int, departmentID string) ([]LeaveTypeUsage, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountActiveUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *repository) CountDepartments(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("departments").
		Count(&count).Error
	return count, err
}

func (r *repository) CountRequestsByStatus(ctx context.Context, year int, departmentID string, status string) (int64, error) {
	q := r.db.WithContext(ctx).
		Table("leave_requests").
		Where("status = ?", status).
		Where("EXTRACT(YEAR FROM start_date) = ?", year)
	if departmentID != "" {
		q = q.Where("department_id = ?", departmentID)
	}

	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *repository) ApprovedDaysByType(ctx context.Context, year int, departmentID string) ([]LeaveTypeUsage, error) {
	q := r.db.WithContext(ctx).
		Table("leave_requests lr").
		Select("lr.leave_type_id AS leave_type_id, lt.name AS leave_type_name, COALESCE(SUM(lr.total_days), 0)::text AS approved_days").
		Joins("JOIN leave_types lt ON lt.id = lr.leave_type_id").
		Where("lr.status = ?", leaverequest.StatusApproved).
		Where("EXTRACT(YEAR FROM lr.start_date) = ?", year)
	if departmentID != "" {
		q = q.Where("lr.department_id = ?", departmentID)
	}

	var usage []LeaveTypeUsage
	err := q.Group("lr.leave_type_id, lt.name").
		Order("lt.name ASC").
		Scan(&usage).Error
	return usage, err
}

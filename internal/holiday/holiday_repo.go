package holiday

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, h *Holiday) error
	// ListForYear returns holidays falling in the year plus every recurring
	// holiday regardless of its stored year.
	ListForYear(ctx context.Context, year int) ([]Holiday, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) ListForYear(ctx context.Context, year int) ([]Holiday, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Where("(date BETWEEN ? AND ?) OR is_recurring = ?", from, to, true).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Holiday{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

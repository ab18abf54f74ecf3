package holiday

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	holidayerrors "github.com/yohan114/leave-management-system/internal/holiday/errors"
	"github.com/yohan114/leave-management-system/internal/shared/apperror"
	"github.com/yohan114/leave-management-system/internal/shared/storage"
)

type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	ListForYear(ctx context.Context, year int) ([]HolidayResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidDate
	}

	h := &Holiday{
		ID:          uuid.New(),
		Name:        req.Name,
		Date:        date,
		IsRecurring: req.IsRecurring,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return HolidayResponse{}, storage.MapError(err)
	}

	s.logger.Info("holiday created", zap.String("name", h.Name), zap.String("date", req.Date))
	return mapToResponse(*h), nil
}

func (s *service) ListForYear(ctx context.Context, year int) ([]HolidayResponse, error) {
	holidays, err := s.repo.ListForYear(ctx, year)
	if err != nil {
		return nil, storage.MapError(err)
	}

	resp := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		resp[i] = mapToResponse(h)
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.InvalidField("id")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return holidayerrors.ErrHolidayNotFound
		}
		return storage.MapError(err)
	}
	return nil
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID.String(),
		Name:        h.Name,
		Date:        h.Date.Format(time.DateOnly),
		IsRecurring: h.IsRecurring,
	}
}

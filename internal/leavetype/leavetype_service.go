package leavetype

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	leavetypeerrors "github.com/yohan114/leave-management-system/internal/leavetype/errors"
	"github.com/yohan114/leave-management-system/internal/shared/storage"
)

type Service interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context, includeInactive bool) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, id string) (LeaveTypeResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	lt := &LeaveType{
		ID:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		DefaultDays:  decimal.NewFromFloat(req.DefaultDays),
		Color:        req.Color,
		CarryForward: req.CarryForward,
		MaxCarryDays: decimal.NewFromFloat(req.MaxCarryDays),
		IsActive:     true,
	}
	if lt.Color == "" {
		lt.Color = "#6B7280"
	}

	if err := s.repo.Create(ctx, lt); err != nil {
		if storage.IsUniqueViolation(err) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNameTaken
		}
		s.logger.Error("create leave type failed", zap.Error(err))
		return LeaveTypeResponse{}, storage.MapError(err)
	}

	s.logger.Info("leave type created",
		zap.String("leave_type_id", lt.ID.String()),
		zap.String("name", lt.Name),
	)
	return mapToResponse(*lt), nil
}

func (s *service) GetAll(ctx context.Context, includeInactive bool) ([]LeaveTypeResponse, error) {
	var (
		types []LeaveType
		err   error
	)
	if includeInactive {
		types, err = s.repo.ListAll(ctx)
	} else {
		types, err = s.repo.ListActive(ctx)
	}
	if err != nil {
		return nil, storage.MapError(err)
	}

	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapToResponse(lt)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, storage.MapError(err)
	}
	return mapToResponse(*lt), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, storage.MapError(err)
	}

	lt.Name = req.Name
	lt.Description = req.Description
	lt.DefaultDays = decimal.NewFromFloat(req.DefaultDays)
	lt.CarryForward = req.CarryForward
	lt.MaxCarryDays = decimal.NewFromFloat(req.MaxCarryDays)
	if req.Color != "" {
		lt.Color = req.Color
	}
	if req.IsActive != nil {
		lt.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, lt); err != nil {
		if storage.IsUniqueViolation(err) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNameTaken
		}
		s.logger.Error("update leave type failed", zap.String("leave_type_id", id), zap.Error(err))
		return LeaveTypeResponse{}, storage.MapError(err)
	}
	return mapToResponse(*lt), nil
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:           lt.ID.String(),
		Name:         lt.Name,
		Description:  lt.Description,
		DefaultDays:  lt.DefaultDays.String(),
		Color:        lt.Color,
		CarryForward: lt.CarryForward,
		MaxCarryDays: lt.MaxCarryDays.String(),
		IsActive:     lt.IsActive,
	}
}

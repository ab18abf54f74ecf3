package department

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	departmenterrors "github.com/yohan114/leave-management-system/internal/department/errors"
	"github.com/yohan114/leave-management-system/internal/shared/apperror"
	"github.com/yohan114/leave-management-system/internal/shared/storage"
)

type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	List(ctx context.Context) ([]DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	d := &Department{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		if storage.IsUniqueViolation(err) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNameTaken
		}
		return DepartmentResponse{}, storage.MapError(err)
	}

	s.logger.Info("department created", zap.String("department_id", d.ID.String()), zap.String("name", d.Name))
	return mapToResponse(*d, 0), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, apperror.InvalidField("id")
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		return DepartmentResponse{}, storage.MapError(err)
	}

	count, err := s.repo.MemberCount(ctx, id)
	if err != nil {
		return DepartmentResponse{}, storage.MapError(err)
	}
	return mapToResponse(*d, count), nil
}

func (s *service) List(ctx context.Context) ([]DepartmentResponse, error) {
	departments, err := s.repo.List(ctx)
	if err != nil {
		return nil, storage.MapError(err)
	}

	resp := make([]DepartmentResponse, len(departments))
	for i, d := range departments {
		count, err := s.repo.MemberCount(ctx, d.ID.String())
		if err != nil {
			return nil, storage.MapError(err)
		}
		resp[i] = mapToResponse(d, count)
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, apperror.InvalidField("id")
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		return DepartmentResponse{}, storage.MapError(err)
	}

	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Description != nil {
		d.Description = *req.Description
	}

	if err := s.repo.Update(ctx, d); err != nil {
		if storage.IsUniqueViolation(err) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNameTaken
		}
		return DepartmentResponse{}, storage.MapError(err)
	}

	count, err := s.repo.MemberCount(ctx, id)
	if err != nil {
		return DepartmentResponse{}, storage.MapError(err)
	}
	return mapToResponse(*d, count), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.InvalidField("id")
	}

	count, err := s.repo.MemberCount(ctx, id)
	if err != nil {
		return storage.MapError(err)
	}
	if count > 0 {
		return departmenterrors.ErrDepartmentNotEmpty
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return departmenterrors.ErrDepartmentNotFound
		}
		return storage.MapError(err)
	}

	s.logger.Info("department deleted", zap.String("department_id", id))
	return nil
}

func mapToResponse(d Department, memberCount int64) DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID.String(),
		Name:        d.Name,
		Description: d.Description,
		MemberCount: memberCount,
	}
}

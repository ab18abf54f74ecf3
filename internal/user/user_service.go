package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yohan114/leave-management-system/internal/balance"
	"github.com/yohan114/leave-management-system/internal/leavetype"
	"github.com/yohan114/leave-management-system/internal/shared/storage"
	usererrors "github.com/yohan114/leave-management-system/internal/user/errors"
)

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	balances   balance.Repository
	leaveTypes leavetype.Repository
	logger     *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	balances balance.Repository,
	leaveTypes leavetype.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, balances: balances, leaveTypes: leaveTypes, logger: l}
}

// Create inserts the user and provisions one balance row per active leave
// type for the current year, all in one transaction. The request core never
// auto-provisions balances, so this is the only place they come from.
func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, storage.MapError(err)
	}

	role := req.Role
	if role == "" {
		role = "EMPLOYEE"
	}

	u := &User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hashed),
		Name:     req.Name,
		Role:     role,
		IsActive: true,
	}
	if req.DepartmentID != nil {
		deptID, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidUserID
		}
		u.DepartmentID = &deptID
	}
	if req.ManagerID != nil {
		mgrID, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidManagerID
		}
		u.ManagerID = &mgrID
	}

	year := time.Now().UTC().Year()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		qbal := s.balances.WithTx(tx)
		qtypes := s.leaveTypes.WithTx(tx)

		if err := qtx.Create(ctx, u); err != nil {
			if storage.IsUniqueViolation(err) {
				return usererrors.ErrEmailTaken
			}
			return err
		}

		types, err := qtypes.ListActive(ctx)
		if err != nil {
			return err
		}
		for _, lt := range types {
			b := &balance.LeaveBalance{
				ID:          uuid.New(),
				UserID:      u.ID,
				LeaveTypeID: lt.ID,
				Year:        year,
				TotalDays:   lt.DefaultDays,
			}
			if err := qbal.Create(ctx, b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("create user failed", zap.String("email", req.Email), zap.Error(err))
		return UserResponse{}, storage.MapError(err)
	}

	s.logger.Info("user created",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
		zap.Int("balance_year", year),
	)
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, storage.MapError(err)
	}
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, storage.MapError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, storage.MapError(err)
	}

	u.Name = req.Name
	u.Role = req.Role
	u.DepartmentID = nil
	u.ManagerID = nil
	if req.DepartmentID != nil {
		deptID, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidUserID
		}
		u.DepartmentID = &deptID
	}
	if req.ManagerID != nil {
		mgrID, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidManagerID
		}
		u.ManagerID = &mgrID
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("update user failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, storage.MapError(err)
	}
	return mapToResponse(*u), nil
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:       u.ID.String(),
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
	if u.DepartmentID != nil {
		v := u.DepartmentID.String()
		resp.DepartmentID = &v
	}
	if u.ManagerID != nil {
		v := u.ManagerID.String()
		resp.ManagerID = &v
	}
	return resp
}

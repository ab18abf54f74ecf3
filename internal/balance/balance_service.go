package balance

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	balanceerrors "github.com/yohan114/leave-management-system/internal/balance/errors"
	"github.com/yohan114/leave-management-system/internal/leavetype"
	"github.com/yohan114/leave-management-system/internal/shared/storage"
)

type Service interface {
	GetBalance(ctx context.Context, userID, leaveTypeID string, year int) (BalanceResponse, error)
	ListForUser(ctx context.Context, userID string, year int) ([]BalanceResponse, error)
	// Rollover provisions year+1 balances from a given year, carrying unused
	// days forward for leave types that allow it, capped at maxCarryDays.
	Rollover(ctx context.Context, fromYear int) (RolloverResponse, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	leaveTypes leavetype.Repository
	logger     *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, leaveTypes leavetype.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{db: db, repo: repo, leaveTypes: leaveTypes, logger: l}
}

func (s *service) GetBalance(ctx context.Context, userID, leaveTypeID string, year int) (BalanceResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidUserID
	}
	if _, err := uuid.Parse(leaveTypeID); err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidLeaveTypeID
	}
	if year < 2000 || year > 2200 {
		return BalanceResponse{}, balanceerrors.ErrInvalidYear
	}

	b, err := s.repo.Find(ctx, userID, leaveTypeID, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, balanceerrors.ErrBalanceNotFound
		}
		return BalanceResponse{}, storage.MapError(err)
	}
	return mapToResponse(*b, ""), nil
}

func (s *service) ListForUser(ctx context.Context, userID string, year int) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, balanceerrors.ErrInvalidUserID
	}

	balances, err := s.repo.ListByUserYear(ctx, userID, year)
	if err != nil {
		return nil, storage.MapError(err)
	}

	names := s.leaveTypeNames(ctx)
	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b, names[b.LeaveTypeID])
	}
	return resp, nil
}

func (s *service) Rollover(ctx context.Context, fromYear int) (RolloverResponse, error) {
	if fromYear < 2000 || fromYear > 2200 {
		return RolloverResponse{}, balanceerrors.ErrInvalidYear
	}

	result := RolloverResponse{FromYear: fromYear, ToYear: fromYear + 1}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qbal := s.repo.WithTx(tx)
		qtypes := s.leaveTypes.WithTx(tx)

		types, err := qtypes.ListActive(ctx)
		if err != nil {
			return err
		}
		typesByID := make(map[uuid.UUID]leavetype.LeaveType, len(types))
		for _, lt := range types {
			typesByID[lt.ID] = lt
		}

		balances, err := qbal.ListByYear(ctx, fromYear)
		if err != nil {
			return err
		}

		for _, b := range balances {
			lt, ok := typesByID[b.LeaveTypeID]
			if !ok {
				result.Skipped++
				continue
			}

			carried := decimal.Zero
			if lt.CarryForward {
				remaining := b.TotalDays.Sub(b.UsedDays)
				if remaining.IsNegative() {
					remaining = decimal.Zero
				}
				carried = decimal.Min(remaining, lt.MaxCarryDays)
			}

			next := &LeaveBalance{
				ID:          uuid.New(),
				UserID:      b.UserID,
				LeaveTypeID: b.LeaveTypeID,
				Year:        fromYear + 1,
				TotalDays:   lt.DefaultDays.Add(carried),
				CarriedDays: carried,
			}
			if err := qbal.Create(ctx, next); err != nil {
				// A row already provisioned for next year is not an error.
				if storage.IsUniqueViolation(err) {
					result.Skipped++
					continue
				}
				return err
			}
			result.Created++
		}
		return nil
	})
	if err != nil {
		s.logger.Error("balance rollover failed", zap.Int("from_year", fromYear), zap.Error(err))
		return RolloverResponse{}, storage.MapError(err)
	}

	s.logger.Info("balance rollover complete",
		zap.Int("from_year", fromYear),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

func (s *service) leaveTypeNames(ctx context.Context) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string)
	types, err := s.leaveTypes.ListAll(ctx)
	if err != nil {
		return names
	}
	for _, lt := range types {
		names[lt.ID] = lt.Name
	}
	return names
}

func mapToResponse(b LeaveBalance, typeName string) BalanceResponse {
	return BalanceResponse{
		ID:            b.ID.String(),
		UserID:        b.UserID.String(),
		LeaveTypeID:   b.LeaveTypeID.String(),
		LeaveTypeName: typeName,
		Year:          b.Year,
		TotalDays:     b.TotalDays.String(),
		UsedDays:      b.UsedDays.String(),
		PendingDays:   b.PendingDays.String(),
		CarriedDays:   b.CarriedDays.String(),
		AvailableDays: b.AvailableDays().String(),
	}
}

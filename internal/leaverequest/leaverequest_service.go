package leaverequest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yohan114/leave-management-system/internal/authz"
	"github.com/yohan114/leave-management-system/internal/balance"
	"github.com/yohan114/leave-management-system/internal/leavetype"
	leaverequesterrors "github.com/yohan114/leave-management-system/internal/leaverequest/errors"
	"github.com/yohan114/leave-management-system/internal/messaging/kafka"
	"github.com/yohan114/leave-management-system/internal/rbac"
	"github.com/yohan114/leave-management-system/internal/shared/contextutil"
	"github.com/yohan114/leave-management-system/internal/shared/storage"
	"github.com/yohan114/leave-management-system/internal/user"
)

const topicLeaveEvents = "leave.requests"

const (
	eventSubmitted = "leave.submitted"
	eventApproved  = "leave.approved"
	eventRejected  = "leave.rejected"
	eventCancelled = "leave.cancelled"
)

const dateLayout = "2006-01-02"

// Notifier is the emitter contract: a fire-and-forget in-app notification,
// invoked after the core transaction commits and never able to fail it.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message, notifType, link string) error
}

type Service interface {
	Submit(ctx context.Context, actor authz.Actor, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	Approve(ctx context.Context, actor authz.Actor, id string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, actor authz.Actor, id, rejectionReason string) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, actor authz.Actor, id string) (LeaveRequestResponse, error)
	GetByID(ctx context.Context, actor authz.Actor, id string) (LeaveRequestResponse, error)
	List(ctx context.Context, actor authz.Actor, filter ListFilter) ([]LeaveRequestResponse, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	balances   balance.Repository
	users      user.Repository
	leaveTypes leavetype.Repository
	gate       authz.Gate
	notifier   Notifier
	outbox     kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	balances balance.Repository,
	users user.Repository,
	leaveTypes leavetype.Repository,
	gate authz.Gate,
	notifier Notifier,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		balances:   balances,
		users:      users,
		leaveTypes: leaveTypes,
		gate:       gate,
		notifier:   notifier,
		logger:     l,
	}
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	balances balance.Repository,
	users user.Repository,
	leaveTypes leavetype.Repository,
	gate authz.Gate,
	notifier Notifier,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	s := NewService(db, repo, balances, users, leaveTypes, gate, notifier, logger...).(*service)
	s.outbox = outbox
	return s
}

// Submit validates the candidate, creates the PENDING request and reserves
// its days against the balance ledger, all inside one transaction with the
// balance row locked. Sufficiency and overlap are checked against the
// locked snapshot, so two racing submissions cannot both pass against the
// same headroom.
func (s *service) Submit(ctx context.Context, actor authz.Actor, req SubmitLeaveRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("submit leave request",
		zap.String("user_id", actor.ID.String()),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.Bool("half_day", req.HalfDay),
	)

	leaveTypeID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidLeaveTypeID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if err := ValidateDates(startDate, endDate); err != nil {
		return LeaveRequestResponse{}, err
	}
	if err := ValidateReason(req.Reason); err != nil {
		return LeaveRequestResponse{}, err
	}

	// Fixed at creation, never recomputed.
	totalDays := ComputeTotalDays(startDate, endDate, req.HalfDay)
	year := startDate.Year()

	var (
		l         *LeaveRequest
		managerID *uuid.UUID
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		qbal := s.balances.WithTx(tx)
		qusers := s.users.WithTx(tx)

		requester, err := qusers.FindByID(ctx, actor.ID.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaverequesterrors.ErrInvalidUserID
			}
			return err
		}
		managerID = requester.ManagerID

		bal, err := qbal.FindForUpdate(ctx, actor.ID.String(), leaveTypeID.String(), year)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaverequesterrors.ErrBalanceNotFound
			}
			return err
		}
		if err := CheckSufficiency(totalDays, bal); err != nil {
			return err
		}

		overlap, err := qtx.HasOverlappingRequest(ctx, actor.ID.String(), startDate, endDate)
		if err != nil {
			return err
		}
		if overlap {
			return leaverequesterrors.ErrOverlappingRequest
		}

		l = &LeaveRequest{
			ID:           uuid.New(),
			UserID:       actor.ID,
			LeaveTypeID:  leaveTypeID,
			DepartmentID: requester.DepartmentID,
			StartDate:    startDate,
			EndDate:      endDate,
			TotalDays:    totalDays,
			HalfDay:      req.HalfDay,
			Reason:       req.Reason,
			Status:       StatusPending,
			AppliedAt:    time.Now().UTC(),
		}
		if err := qtx.Create(ctx, l); err != nil {
			return err
		}

		if err := qbal.Reserve(ctx, actor.ID.String(), leaveTypeID.String(), year, totalDays); err != nil {
			return err
		}

		return s.writeOutboxEvent(ctx, tx, eventSubmitted, l)
	})
	if err != nil {
		s.logger.Warn("submit leave request failed",
			zap.String("user_id", actor.ID.String()),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, storage.MapError(err)
	}

	s.logger.Info("leave request submitted",
		zap.String("request_id", l.ID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.String("total_days", totalDays.String()),
	)

	if managerID != nil {
		s.notifyBestEffort(ctx, *managerID,
			"New Leave Request",
			fmt.Sprintf("A request for %s day(s) of %s is waiting for your approval", totalDays.String(), s.leaveTypeName(ctx, leaveTypeID)),
			"leave_request", "/approvals",
		)
	}

	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, actor authz.Actor, id string) (LeaveRequestResponse, error) {
	return s.transition(ctx, actor, id, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, actor authz.Actor, id, rejectionReason string) (LeaveRequestResponse, error) {
	return s.transition(ctx, actor, id, StatusRejected, &rejectionReason)
}

func (s *service) Cancel(ctx context.Context, actor authz.Actor, id string) (LeaveRequestResponse, error) {
	return s.transition(ctx, actor, id, StatusCancelled, nil)
}

// transition drives a single PENDING request into a terminal state and
// applies the matching ledger adjustment in the same transaction. The
// request row is read under FOR UPDATE, so concurrent transitions are
// linearized: exactly one of approve/reject/cancel can succeed.
func (s *service) transition(ctx context.Context, actor authz.Actor, id, targetStatus string, rejectionReason *string) (LeaveRequestResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidRequestID
	}
	if targetStatus == StatusRejected && (rejectionReason == nil || *rejectionReason == "") {
		return LeaveRequestResponse{}, leaverequesterrors.ErrMissingReason
	}

	var l *LeaveRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		qbal := s.balances.WithTx(tx)

		var err error
		l, err = qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaverequesterrors.ErrRequestNotFound
			}
			return err
		}
		if l.Status != StatusPending {
			return leaverequesterrors.ErrInvalidTransition
		}

		if err := s.authorize(ctx, actor, l, targetStatus); err != nil {
			return err
		}

		now := time.Now().UTC()
		year := l.BalanceYear()
		amount := l.TotalDays

		var event string
		switch targetStatus {
		case StatusApproved:
			l.Status = StatusApproved
			l.ApprovedBy = &actor.ID
			l.ApprovedAt = &now
			event = eventApproved
			if err := qbal.Commit(ctx, l.UserID.String(), l.LeaveTypeID.String(), year, amount); err != nil {
				return err
			}
		case StatusRejected:
			l.Status = StatusRejected
			l.ApprovedBy = &actor.ID
			l.ApprovedAt = &now
			l.RejectionReason = rejectionReason
			event = eventRejected
			if err := qbal.Release(ctx, l.UserID.String(), l.LeaveTypeID.String(), year, amount); err != nil {
				return err
			}
		case StatusCancelled:
			l.Status = StatusCancelled
			l.CancelledAt = &now
			event = eventCancelled
			if err := qbal.Release(ctx, l.UserID.String(), l.LeaveTypeID.String(), year, amount); err != nil {
				return err
			}
		}

		if err := qtx.Update(ctx, l); err != nil {
			return err
		}
		return s.writeOutboxEvent(ctx, tx, event, l)
	})
	if err != nil {
		s.logger.Warn("leave request transition failed",
			zap.String("request_id", id),
			zap.String("target_status", targetStatus),
			zap.String("actor_id", actor.ID.String()),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, storage.MapError(err)
	}

	s.logger.Info("leave request transitioned",
		zap.String("request_id", l.ID.String()),
		zap.String("status", l.Status),
		zap.String("actor_id", actor.ID.String()),
	)

	s.notifyRequester(ctx, l, rejectionReason)

	return mapToResponse(*l), nil
}

func (s *service) authorize(ctx context.Context, actor authz.Actor, l *LeaveRequest, targetStatus string) error {
	if targetStatus == StatusCancelled {
		if !s.gate.CanCancel(actor, l.UserID) {
			return leaverequesterrors.ErrUnauthorizedTransition
		}
		return nil
	}

	allowed, err := s.gate.CanDecide(ctx, actor, l.UserID)
	if err != nil {
		return err
	}
	if !allowed {
		return leaverequesterrors.ErrUnauthorizedTransition
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, actor authz.Actor, id string) (LeaveRequestResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidRequestID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrRequestNotFound
		}
		return LeaveRequestResponse{}, storage.MapError(err)
	}

	if actor.Role == rbac.RoleEmployee && l.UserID != actor.ID {
		return LeaveRequestResponse{}, leaverequesterrors.ErrRequestNotFound
	}
	return mapToResponse(*l), nil
}

// List is role-scoped: employees see their own requests, managers their own
// plus their direct reports', admins everything (with optional filters).
func (s *service) List(ctx context.Context, actor authz.Actor, filter ListFilter) ([]LeaveRequestResponse, error) {
	var (
		requests []LeaveRequest
		err      error
	)
	switch actor.Role {
	case rbac.RoleAdmin:
		requests, err = s.repo.ListAll(ctx, filter)
	case rbac.RoleManager:
		if filter.UserID != "" {
			requests, err = s.repo.ListByUser(ctx, filter.UserID, filter)
		} else {
			requests, err = s.repo.ListForManager(ctx, actor.ID.String(), filter)
		}
	default:
		requests, err = s.repo.ListByUser(ctx, actor.ID.String(), filter)
	}
	if err != nil {
		return nil, storage.MapError(err)
	}

	resp := make([]LeaveRequestResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp, nil
}

func (s *service) writeOutboxEvent(ctx context.Context, tx *gorm.DB, eventType string, l *LeaveRequest) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(map[string]any{
		"request_id":    l.ID.String(),
		"user_id":       l.UserID.String(),
		"leave_type_id": l.LeaveTypeID.String(),
		"status":        l.Status,
		"total_days":    l.TotalDays.String(),
		"start_date":    l.StartDate.Format(dateLayout),
		"end_date":      l.EndDate.Format(dateLayout),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         topicLeaveEvents,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) notifyRequester(ctx context.Context, l *LeaveRequest, rejectionReason *string) {
	typeName := s.leaveTypeName(ctx, l.LeaveTypeID)

	switch l.Status {
	case StatusApproved:
		s.notifyBestEffort(ctx, l.UserID,
			"Leave Approved",
			fmt.Sprintf("Your %s day(s) %s request has been approved", l.TotalDays.String(), typeName),
			"approval", "/my-requests",
		)
	case StatusRejected:
		reason := ""
		if rejectionReason != nil {
			reason = *rejectionReason
		}
		s.notifyBestEffort(ctx, l.UserID,
			"Leave Rejected",
			fmt.Sprintf("Your %s day(s) %s request has been rejected: %s", l.TotalDays.String(), typeName, reason),
			"rejection", "/my-requests",
		)
	}
}

func (s *service) notifyBestEffort(ctx context.Context, userID uuid.UUID, title, message, notifType, link string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, title, message, notifType, link); err != nil {
		s.logger.Warn("notification emit failed",
			zap.String("user_id", userID.String()),
			zap.String("type", notifType),
			zap.Error(err),
		)
	}
}

func (s *service) leaveTypeName(ctx context.Context, leaveTypeID uuid.UUID) string {
	lt, err := s.leaveTypes.FindByID(ctx, leaveTypeID.String())
	if err != nil {
		return "leave"
	}
	return lt.Name
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaverequesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:          l.ID.String(),
		UserID:      l.UserID.String(),
		LeaveTypeID: l.LeaveTypeID.String(),
		StartDate:   l.StartDate.Format(dateLayout),
		EndDate:     l.EndDate.Format(dateLayout),
		TotalDays:   l.TotalDays.String(),
		HalfDay:     l.HalfDay,
		Reason:      l.Reason,
		Status:      l.Status,
		AppliedAt:   l.AppliedAt.Format(time.RFC3339),
	}
	if l.DepartmentID != nil {
		v := l.DepartmentID.String()
		resp.DepartmentID = &v
	}
	resp.RejectionReason = l.RejectionReason
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if l.CancelledAt != nil {
		v := l.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &v
	}
	return resp
}

package leaverequest_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yohan114/leave-management-system/internal/authz"
	"github.com/yohan114/leave-management-system/internal/balance"
	"github.com/yohan114/leave-management-system/internal/leaverequest"
	leaverequesterrors "github.com/yohan114/leave-management-system/internal/leaverequest/errors"
	"github.com/yohan114/leave-management-system/internal/leavetype"
	"github.com/yohan114/leave-management-system/internal/rbac"
	"github.com/yohan114/leave-management-system/internal/user"
)

type fakeRequestRepo struct {
	createFn            func(ctx context.Context, l *leaverequest.LeaveRequest) error
	findByIDFn          func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error)
	findByIDForUpdateFn func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error)
	updateFn            func(ctx context.Context, l *leaverequest.LeaveRequest) error
	hasOverlappingFn    func(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error)
	listByUserFn        func(ctx context.Context, userID string, filter leaverequest.ListFilter) ([]leaverequest.LeaveRequest, error)
	listForManagerFn    func(ctx context.Context, managerID string, filter leaverequest.ListFilter) ([]leaverequest.LeaveRequest, error)
	listAllFn           func(ctx context.Context, filter leaverequest.ListFilter) ([]leaverequest.LeaveRequest, error)
}

func (f *fakeRequestRepo) WithTx(tx *gorm.DB) leaverequest.Repository { return f }

func (f *fakeRequestRepo) Create(ctx context.Context, l *leaverequest.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeRequestRepo) FindByID(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRequestRepo) FindByIDForUpdate(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
	if f.findByIDForUpdateFn != nil {
		return f.findByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRequestRepo) Update(ctx context.Context, l *leaverequest.LeaveRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeRequestRepo) HasOverlappingRequest(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error) {
	if f.hasOverlappingFn != nil {
		return f.hasOverlappingFn(ctx, userID, startDate, endDate)
	}
	return false, nil
}

func (f *fakeRequestRepo) ListByUser(ctx context.Context, userID string, filter leaverequest.ListFilter) ([]leaverequest.LeaveRequest, error) {
	if f.listByUserFn != nil {
		return f.listByUserFn(ctx, userID, filter)
	}
	return nil, nil
}

func (f *fakeRequestRepo) ListForManager(ctx context.Context, managerID string, filter leaverequest.ListFilter) ([]leaverequest.LeaveRequest, error) {
	if f.listForManagerFn != nil {
		return f.listForManagerFn(ctx, managerID, filter)
	}
	return nil, nil
}

func (f *fakeRequestRepo) ListAll(ctx context.Context, filter leaverequest.ListFilter) ([]leaverequest.LeaveRequest, error) {
	if f.listAllFn != nil {
		return f.listAllFn(ctx, filter)
	}
	return nil, nil
}

type fakeBalanceRepo struct {
	findFn          func(ctx context.Context, userID, leaveTypeID string, year int) (*balance.LeaveBalance, error)
	findForUpdateFn func(ctx context.Context, userID, leaveTypeID string, year int) (*balance.LeaveBalance, error)
	reserveFn       func(ctx context.Context, userID, leaveTypeID string, year int, amount decimal.Decimal) error
	commitFn        func(ctx context.Context, userID, leaveTypeID string, year int, amount decimal.Decimal) error
	releaseFn       func(ctx context.Context, userID, leaveTypeID string, year int, amount decimal.Decimal) error
}

func (f *fakeBalanceRepo) WithTx(tx *gorm.DB) balance.Repository { return f }

func (f *fakeBalanceRepo) Create(ctx context.Context, b *balance.LeaveBalance) error { return nil }

func (f *fakeBalanceRepo) Find(ctx context.Context, userID, leaveTypeID string, year int) (*balance.LeaveBalance, error) {
	if f.findFn != nil {
		return f.findFn(ctx, userID, leaveTypeID, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepo) FindForUpdate(ctx context.Context, userID, leaveTypeID string, year int) (*balance.LeaveBalance, error) {
	if f.findForUpdateFn != nil {
		return f.findForUpdateFn(ctx, userID, leaveTypeID, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepo) ListByUserYear(ctx context.Context, userID string, year int) ([]balance.LeaveBalance, error) {
	return nil, nil
}

func (f *fakeBalanceRepo) ListByYear(ctx context.Context, year int) ([]balance.LeaveBalance, error) {
	return nil, nil
}

func (f *fakeBalanceRepo) Reserve(ctx context.Context, userID, leaveTypeID string, year int, amount decimal.Decimal) error {
	if f.reserveFn != nil {
		return f.reserveFn(ctx, userID, leaveTypeID, year, amount)
	}
	return nil
}

func (f *fakeBalanceRepo) Commit(ctx context.Context, userID, leaveTypeID string, year int, amount decimal.Decimal) error {
	if f.commitFn != nil {
		return f.commitFn(ctx, userID, leaveTypeID, year, amount)
	}
	return nil
}

func (f *fakeBalanceRepo) Release(ctx context.Context, userID, leaveTypeID string, year int, amount decimal.Decimal) error {
	if f.releaseFn != nil {
		return f.releaseFn(ctx, userID, leaveTypeID, year, amount)
	}
	return nil
}

type fakeUserRepo struct {
	findByIDFn  func(ctx context.Context, id string) (*user.User, error)
	managerOfFn func(ctx context.Context, userID string) (*uuid.UUID, error)
}

func (f *fakeUserRepo) WithTx(tx *gorm.DB) user.Repository          { return f }
func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error)  { return nil, nil }

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) ManagerOf(ctx context.Context, userID string) (*uuid.UUID, error) {
	if f.managerOfFn != nil {
		return f.managerOfFn(ctx, userID)
	}
	return nil, nil
}

type fakeLeaveTypeRepo struct {
	findByIDFn func(ctx context.Context, id string) (*leavetype.LeaveType, error)
}

func (f *fakeLeaveTypeRepo) WithTx(tx *gorm.DB) leavetype.Repository                 { return f }
func (f *fakeLeaveTypeRepo) Create(ctx context.Context, lt *leavetype.LeaveType) error { return nil }
func (f *fakeLeaveTypeRepo) Update(ctx context.Context, lt *leavetype.LeaveType) error { return nil }

func (f *fakeLeaveTypeRepo) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return &leavetype.LeaveType{Name: "Annual Leave"}, nil
}

func (f *fakeLeaveTypeRepo) ListActive(ctx context.Context) ([]leavetype.LeaveType, error) {
	return nil, nil
}

func (f *fakeLeaveTypeRepo) ListAll(ctx context.Context) ([]leavetype.LeaveType, error) {
	return nil, nil
}

type fakeGate struct {
	canCancelFn func(actor authz.Actor, requesterID uuid.UUID) bool
	canDecideFn func(ctx context.Context, actor authz.Actor, requesterID uuid.UUID) (bool, error)
}

func (f *fakeGate) CanCancel(actor authz.Actor, requesterID uuid.UUID) bool {
	if f.canCancelFn != nil {
		return f.canCancelFn(actor, requesterID)
	}
	return actor.ID == requesterID
}

func (f *fakeGate) CanDecide(ctx context.Context, actor authz.Actor, requesterID uuid.UUID) (bool, error) {
	if f.canDecideFn != nil {
		return f.canDecideFn(ctx, actor, requesterID)
	}
	return true, nil
}

type sentNotification struct {
	userID    uuid.UUID
	title     string
	notifType string
}

type fakeNotifier struct {
	sent []sentNotification
}

func (f *fakeNotifier) Notify(ctx context.Context, userID uuid.UUID, title, message, notifType, link string) error {
	f.sent = append(f.sent, sentNotification{userID: userID, title: title, notifType: notifType})
	return nil
}

type serviceDeps struct {
	sqlMock  sqlmock.Sqlmock
	closeFn  func()
	service  leaverequest.Service
	repo     *fakeRequestRepo
	balances *fakeBalanceRepo
	users    *fakeUserRepo
	gate     *fakeGate
	notifier *fakeNotifier
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	assert.NoError(t, err)

	repo := &fakeRequestRepo{}
	balances := &fakeBalanceRepo{}
	users := &fakeUserRepo{}
	gate := &fakeGate{}
	notifier := &fakeNotifier{}

	svc := leaverequest.NewService(gdb, repo, balances, users, &fakeLeaveTypeRepo{}, gate, notifier)

	return &serviceDeps{
		sqlMock:  mock,
		closeFn:  func() { sqlDB.Close() },
		service:  svc,
		repo:     repo,
		balances: balances,
		users:    users,
		gate:     gate,
		notifier: notifier,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func balanceWith(total, used, pending int64) *balance.LeaveBalance {
	return &balance.LeaveBalance{
		ID:          uuid.New(),
		TotalDays:   decimal.NewFromInt(total),
		UsedDays:    decimal.NewFromInt(used),
		PendingDays: decimal.NewFromInt(pending),
	}
}

func TestLeaveRequestService_Submit(t *testing.T) {
	ctx := context.Background()
	actor := authz.Actor{ID: uuid.New(), Role: rbac.RoleEmployee}
	leaveTypeID := uuid.New()
	managerID := uuid.New()

	req := leaverequest.SubmitLeaveRequest{
		LeaveTypeID: leaveTypeID.String(),
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-04",
		Reason:      "family event",
	}

	t.Run("success reserves days and notifies manager", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()
		expectTx(t, deps.sqlMock, true)

		deps.users.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			assert.Equal(t, actor.ID.String(), id)
			return &user.User{ID: actor.ID, ManagerID: &managerID}, nil
		}
		deps.balances.findForUpdateFn = func(ctx context.Context, userID, ltID string, year int) (*balance.LeaveBalance, error) {
			assert.Equal(t, actor.ID.String(), userID)
			assert.Equal(t, leaveTypeID.String(), ltID)
			assert.Equal(t, 2026, year)
			return balanceWith(12, 0, 0), nil
		}

		var reserved decimal.Decimal
		deps.balances.reserveFn = func(ctx context.Context, userID, ltID string, year int, amount decimal.Decimal) error {
			reserved = amount
			return nil
		}

		var created *leaverequest.LeaveRequest
		deps.repo.createFn = func(ctx context.Context, l *leaverequest.LeaveRequest) error {
			created = l
			return nil
		}

		resp, err := deps.service.Submit(ctx, actor, req)

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusPending, resp.Status)
		assert.Equal(t, "3", resp.TotalDays)
		assert.True(t, reserved.Equal(decimal.NewFromInt(3)))
		if assert.NotNil(t, created) {
			assert.Equal(t, actor.ID, created.UserID)
			assert.Equal(t, leaverequest.StatusPending, created.Status)
		}
		if assert.Len(t, deps.notifier.sent, 1) {
			assert.Equal(t, managerID, deps.notifier.sent[0].userID)
			assert.Equal(t, "New Leave Request", deps.notifier.sent[0].title)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("half day consumes half regardless of span", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()
		expectTx(t, deps.sqlMock, true)

		deps.users.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			return &user.User{ID: actor.ID}, nil
		}
		deps.balances.findForUpdateFn = func(ctx context.Context, userID, ltID string, year int) (*balance.LeaveBalance, error) {
			return balanceWith(12, 0, 0), nil
		}

		var reserved decimal.Decimal
		deps.balances.reserveFn = func(ctx context.Context, userID, ltID string, year int, amount decimal.Decimal) error {
			reserved = amount
			return nil
		}

		halfReq := req
		halfReq.HalfDay = true
		resp, err := deps.service.Submit(ctx, actor, halfReq)

		assert.NoError(t, err)
		assert.Equal(t, "0.5", resp.TotalDays)
		assert.Equal(t, "0.5", reserved.String())
	})

	t.Run("negative insufficient balance leaves ledger untouched", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()
		expectTx(t, deps.sqlMock, false)

		deps.users.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			return &user.User{ID: actor.ID}, nil
		}
		deps.balances.findForUpdateFn = func(ctx context.Context, userID, ltID string, year int) (*balance.LeaveBalance, error) {
			// available = 12 - 6 - 4 = 2, request needs 3
			return balanceWith(12, 6, 4), nil
		}
		deps.balances.reserveFn = func(ctx context.Context, userID, ltID string, year int, amount decimal.Decimal) error {
			t.Fatal("reserve must not be called")
			return nil
		}
		deps.repo.createFn = func(ctx context.Context, l *leaverequest.LeaveRequest) error {
			t.Fatal("create must not be called")
			return nil
		}

		_, err := deps.service.Submit(ctx, actor, req)

		assert.ErrorIs(t, err, leaverequesterrors.ErrInsufficientBalance)
		assert.Empty(t, deps.notifier.sent)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative overlapping request", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()
		expectTx(t, deps.sqlMock, false)

		deps.users.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			return &user.User{ID: actor.ID}, nil
		}
		deps.balances.findForUpdateFn = func(ctx context.Context, userID, ltID string, year int) (*balance.LeaveBalance, error) {
			return balanceWith(12, 0, 0), nil
		}
		deps.repo.hasOverlappingFn = func(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Submit(ctx, actor, req)

		assert.ErrorIs(t, err, leaverequesterrors.ErrOverlappingRequest)
	})

	t.Run("negative missing balance row", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()
		expectTx(t, deps.sqlMock, false)

		deps.users.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			return &user.User{ID: actor.ID}, nil
		}

		_, err := deps.service.Submit(ctx, actor, req)

		assert.ErrorIs(t, err, leaverequesterrors.ErrBalanceNotFound)
	})

	t.Run("negative end before start", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()

		bad := req
		bad.StartDate = "2026-03-04"
		bad.EndDate = "2026-03-02"

		_, err := deps.service.Submit(ctx, actor, bad)

		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidDateRange)
	})

	t.Run("negative blank reason", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()

		bad := req
		bad.Reason = "   "

		_, err := deps.service.Submit(ctx, actor, bad)

		assert.ErrorIs(t, err, leaverequesterrors.ErrReasonRequired)
	})
}

func pendingRequest(userID uuid.UUID) *leaverequest.LeaveRequest {
	return &leaverequest.LeaveRequest{
		ID:          uuid.New(),
		UserID:      userID,
		LeaveTypeID: uuid.New(),
		StartDate:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		TotalDays:   decimal.NewFromInt(3),
		Reason:      "family event",
		Status:      leaverequest.StatusPending,
	}
}

func TestLeaveRequestService_Approve(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	manager := authz.Actor{ID: uuid.New(), Role: rbac.RoleManager}

	t.Run("success commits reservation and stamps approver", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()
		expectTx(t, deps.sqlMock, true)

		l := pendingRequest(requesterID)
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return l, nil
		}

		var committed decimal.Decimal
		var committedYear int
		deps.balances.commitFn = func(ctx context.Context, userID, ltID string, year int, amount decimal.Decimal) error {
			committed = amount
			committedYear = year
			return nil
		}

		var updated *leaverequest.LeaveRequest
		deps.repo.updateFn = func(ctx context.Context, l *leaverequest.LeaveRequest) error {
			updated = l
			return nil
		}

		resp, err := deps.service.Approve(ctx, manager, l.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusApproved, resp.Status)
		assert.True(t, committed.Equal(decimal.NewFromInt(3)))
		assert.Equal(t, 2026, committedYear)
		if assert.NotNil(t, updated) {
			assert.Equal(t, leaverequest.StatusApproved, updated.Status)
			if assert.NotNil(t, updated.ApprovedBy) {
				assert.Equal(t, manager.ID, *updated.ApprovedBy)
			}
			assert.NotNil(t, updated.ApprovedAt)
		}
		if assert.Len(t, deps.notifier.sent, 1) {
			assert.Equal(t, requesterID, deps.notifier.sent[0].userID)
			assert.Equal(t, "Leave Approved", deps.notifier.sent[0].title)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already approved", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()
		expectTx(t, deps.sqlMock, false)

		l := pendingRequest(requesterID)
		l.Status = leaverequest.StatusApproved
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return l, nil
		}
		deps.balances.commitFn = func(ctx context.Context, userID, ltID string, year int, amount decimal.Decimal) error {
			t.Fatal("commit must not be called")
			return nil
		}

		_, err := deps.service.Approve(ctx, manager, l.ID.String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidTransition)
	})

	t.Run("negative not the requester's manager", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()
		expectTx(t, deps.sqlMock, false)

		l := pendingRequest(requesterID)
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return l, nil
		}
		deps.gate.canDecideFn = func(ctx context.Context, actor authz.Actor, rid uuid.UUID) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Approve(ctx, manager, l.ID.String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrUnauthorizedTransition)
	})

	t.Run("negative unknown request", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Approve(ctx, manager, uuid.New().String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrRequestNotFound)
	})
}

func TestLeaveRequestService_Reject(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	manager := authz.Actor{ID: uuid.New(), Role: rbac.RoleManager}

	t.Run("success releases reservation and records reason", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()
		expectTx(t, deps.sqlMock, true)

		l := pendingRequest(requesterID)
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return l, nil
		}

		var released decimal.Decimal
		deps.balances.releaseFn = func(ctx context.Context, userID, ltID string, year int, amount decimal.Decimal) error {
			released = amount
			return nil
		}

		var updated *leaverequest.LeaveRequest
		deps.repo.updateFn = func(ctx context.Context, l *leaverequest.LeaveRequest) error {
			updated = l
			return nil
		}

		resp, err := deps.service.Reject(ctx, manager, l.ID.String(), "coverage gap")

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusRejected, resp.Status)
		assert.True(t, released.Equal(decimal.NewFromInt(3)))
		if assert.NotNil(t, updated) && assert.NotNil(t, updated.RejectionReason) {
			assert.Equal(t, "coverage gap", *updated.RejectionReason)
		}
		if assert.Len(t, deps.notifier.sent, 1) {
			assert.Equal(t, "Leave Rejected", deps.notifier.sent[0].title)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative empty reason fails before any read", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			t.Fatal("request must not be read")
			return nil, nil
		}

		_, err := deps.service.Reject(ctx, manager, uuid.New().String(), "")

		assert.ErrorIs(t, err, leaverequesterrors.ErrMissingReason)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveRequestService_Cancel(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()

	t.Run("success by requester releases reservation", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()
		expectTx(t, deps.sqlMock, true)

		l := pendingRequest(requesterID)
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return l, nil
		}

		var released decimal.Decimal
		deps.balances.releaseFn = func(ctx context.Context, userID, ltID string, year int, amount decimal.Decimal) error {
			released = amount
			return nil
		}

		var updated *leaverequest.LeaveRequest
		deps.repo.updateFn = func(ctx context.Context, l *leaverequest.LeaveRequest) error {
			updated = l
			return nil
		}

		actor := authz.Actor{ID: requesterID, Role: rbac.RoleEmployee}
		resp, err := deps.service.Cancel(ctx, actor, l.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusCancelled, resp.Status)
		assert.True(t, released.Equal(decimal.NewFromInt(3)))
		if assert.NotNil(t, updated) {
			assert.NotNil(t, updated.CancelledAt)
			assert.Nil(t, updated.ApprovedBy)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative only the requester may cancel", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()
		expectTx(t, deps.sqlMock, false)

		l := pendingRequest(requesterID)
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return l, nil
		}
		deps.balances.releaseFn = func(ctx context.Context, userID, ltID string, year int, amount decimal.Decimal) error {
			t.Fatal("release must not be called")
			return nil
		}

		other := authz.Actor{ID: uuid.New(), Role: rbac.RoleAdmin}
		_, err := deps.service.Cancel(ctx, other, l.ID.String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrUnauthorizedTransition)
	})

	t.Run("negative cancel after approval", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()
		expectTx(t, deps.sqlMock, false)

		l := pendingRequest(requesterID)
		l.Status = leaverequest.StatusApproved
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return l, nil
		}

		actor := authz.Actor{ID: requesterID, Role: rbac.RoleEmployee}
		_, err := deps.service.Cancel(ctx, actor, l.ID.String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidTransition)
	})
}

func TestLeaveRequestService_GetByID(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()

	t.Run("employee cannot see another user's request", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()

		l := pendingRequest(requesterID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return l, nil
		}

		other := authz.Actor{ID: uuid.New(), Role: rbac.RoleEmployee}
		_, err := deps.service.GetByID(ctx, other, l.ID.String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrRequestNotFound)
	})

	t.Run("manager can read a report's request", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()

		l := pendingRequest(requesterID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return l, nil
		}

		manager := authz.Actor{ID: uuid.New(), Role: rbac.RoleManager}
		resp, err := deps.service.GetByID(ctx, manager, l.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, l.ID.String(), resp.ID)
	})
}

func TestLeaveRequestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("employee list is scoped to self", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()

		actor := authz.Actor{ID: uuid.New(), Role: rbac.RoleEmployee}
		deps.repo.listByUserFn = func(ctx context.Context, userID string, filter leaverequest.ListFilter) ([]leaverequest.LeaveRequest, error) {
			assert.Equal(t, actor.ID.String(), userID)
			return []leaverequest.LeaveRequest{*pendingRequest(actor.ID)}, nil
		}
		deps.repo.listAllFn = func(ctx context.Context, filter leaverequest.ListFilter) ([]leaverequest.LeaveRequest, error) {
			t.Fatal("employees must not list all")
			return nil, nil
		}

		resp, err := deps.service.List(ctx, actor, leaverequest.ListFilter{})

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("manager lists direct reports", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()

		actor := authz.Actor{ID: uuid.New(), Role: rbac.RoleManager}
		called := false
		deps.repo.listForManagerFn = func(ctx context.Context, managerID string, filter leaverequest.ListFilter) ([]leaverequest.LeaveRequest, error) {
			called = true
			assert.Equal(t, actor.ID.String(), managerID)
			return nil, nil
		}

		_, err := deps.service.List(ctx, actor, leaverequest.ListFilter{})

		assert.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("admin lists everything with filter", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.closeFn()

		actor := authz.Actor{ID: uuid.New(), Role: rbac.RoleAdmin}
		deps.repo.listAllFn = func(ctx context.Context, filter leaverequest.ListFilter) ([]leaverequest.LeaveRequest, error) {
			assert.Equal(t, leaverequest.StatusPending, filter.Status)
			return nil, nil
		}

		_, err := deps.service.List(ctx, actor, leaverequest.ListFilter{Status: leaverequest.StatusPending})

		assert.NoError(t, err)
	})
}

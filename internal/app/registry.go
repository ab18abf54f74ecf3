package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yohan114/leave-management-system/internal/auth"
	"github.com/yohan114/leave-management-system/internal/authz"
	"github.com/yohan114/leave-management-system/internal/balance"
	"github.com/yohan114/leave-management-system/internal/department"
	"github.com/yohan114/leave-management-system/internal/holiday"
	"github.com/yohan114/leave-management-system/internal/leaverequest"
	"github.com/yohan114/leave-management-system/internal/leavetype"
	"github.com/yohan114/leave-management-system/internal/messaging/kafka"
	"github.com/yohan114/leave-management-system/internal/notification"
	"github.com/yohan114/leave-management-system/internal/rbac"
	"github.com/yohan114/leave-management-system/internal/report"
	"github.com/yohan114/leave-management-system/internal/user"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	leaveRequestRepo := leaverequest.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	gate := authz.NewGate(userRepo)

	// --- Services ---
	authService := auth.NewService(userRepo)
	userService := user.NewService(gormDB, userRepo, balanceRepo, leaveTypeRepo)
	departmentService := department.NewService(departmentRepo)
	leaveTypeService := leavetype.NewService(leaveTypeRepo)
	balanceService := balance.NewService(gormDB, balanceRepo, leaveTypeRepo)
	notificationService := notification.NewService(notificationRepo)
	holidayService := holiday.NewService(holidayRepo)
	reportService := report.NewService(reportRepo, rdb)
	leaveRequestService := leaverequest.NewServiceWithOutbox(
		gormDB,
		leaveRequestRepo,
		balanceRepo,
		userRepo,
		leaveTypeRepo,
		gate,
		notificationService,
		outboxRepo,
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	departmentHandler := department.NewHandler(departmentService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	balanceHandler := balance.NewHandler(balanceService)
	notificationHandler := notification.NewHandler(notificationService)
	holidayHandler := holiday.NewHandler(holidayService)
	reportHandler := report.NewHandler(reportService)
	leaveRequestHandler := leaverequest.NewHandlerWithRedis(leaveRequestService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler, enforcer)
		department.RegisterRoutes(api, departmentHandler, enforcer)
		leavetype.RegisterRoutes(api, leaveTypeHandler, enforcer)
		balance.RegisterRoutes(api, balanceHandler, enforcer)
		leaverequest.RegisterRoutes(api, leaveRequestHandler, enforcer, rdb)
		notification.RegisterRoutes(api, notificationHandler, enforcer)
		holiday.RegisterRoutes(api, holidayHandler, enforcer)
		report.RegisterRoutes(api, reportHandler, enforcer)
	}

	return nil
}

package leaverequest

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/yohan114/leave-management-system/internal/middleware"
	"github.com/yohan114/leave-management-system/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer *casbin.Enforcer,
	rdb *redis.Client,
) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.GET("", rbac.Authorize(enforcer, "leave", "read"), handler.List)
		requests.GET("/:id", rbac.Authorize(enforcer, "leave", "read"), handler.GetByID)
		requests.POST("",
			rbac.Authorize(enforcer, "leave", "create"),
			middleware.Idempotency(rdb),
			handler.Submit,
		)
		requests.PUT("/:id/approve", rbac.Authorize(enforcer, "leave", "approve"), handler.Approve)
		requests.PUT("/:id/reject", rbac.Authorize(enforcer, "leave", "reject"), handler.Reject)
		requests.PUT("/:id/cancel", rbac.Authorize(enforcer, "leave", "cancel"), handler.Cancel)
	}
}

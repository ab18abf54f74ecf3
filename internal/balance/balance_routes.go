package balance

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/yohan114/leave-management-system/internal/middleware"
	"github.com/yohan114/leave-management-system/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	balances := r.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("", rbac.Authorize(enforcer, "balance", "read"), handler.List)
		balances.POST("/rollover", rbac.Authorize(enforcer, "balance", "rollover"), handler.Rollover)
	}
}

package holiday

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/yohan114/leave-management-system/internal/middleware"
	"github.com/yohan114/leave-management-system/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	{
		holidays.GET("", rbac.Authorize(enforcer, "holiday", "read"), handler.List)
		holidays.POST("", rbac.Authorize(enforcer, "holiday", "create"), handler.Create)
		holidays.DELETE("/:id", rbac.Authorize(enforcer, "holiday", "delete"), handler.Delete)
	}
}

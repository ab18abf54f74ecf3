package leavetype

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/yohan114/leave-management-system/internal/middleware"
	"github.com/yohan114/leave-management-system/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware())
	{
		types.GET("", rbac.Authorize(enforcer, "leave_type", "read"), handler.GetAll)
		types.GET("/:id", rbac.Authorize(enforcer, "leave_type", "read"), handler.GetByID)
		types.POST("", rbac.Authorize(enforcer, "leave_type", "create"), handler.Create)
		types.PUT("/:id", rbac.Authorize(enforcer, "leave_type", "update"), handler.Update)
	}
}

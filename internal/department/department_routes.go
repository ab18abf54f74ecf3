package department

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/yohan114/leave-management-system/internal/middleware"
	"github.com/yohan114/leave-management-system/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", rbac.Authorize(enforcer, "department", "read"), handler.List)
		departments.GET("/:id", rbac.Authorize(enforcer, "department", "read"), handler.GetByID)
		departments.POST("", rbac.Authorize(enforcer, "department", "create"), handler.Create)
		departments.PUT("/:id", rbac.Authorize(enforcer, "department", "update"), handler.Update)
		departments.DELETE("/:id", rbac.Authorize(enforcer, "department", "delete"), handler.Delete)
	}
}

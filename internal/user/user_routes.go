package user

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/yohan114/leave-management-system/internal/middleware"
	"github.com/yohan114/leave-management-system/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("", rbac.Authorize(enforcer, "user", "read"), handler.GetAll)
		users.GET("/:id", rbac.Authorize(enforcer, "user", "read"), handler.GetByID)
		users.POST("", rbac.Authorize(enforcer, "user", "create"), handler.Create)
		users.PUT("/:id", rbac.Authorize(enforcer, "user", "update"), handler.Update)
	}
}

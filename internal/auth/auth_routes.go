package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/yohan114/leave-management-system/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/auth")
	{
		group.POST("/login", middleware.RateLimitByIP(5, 10), handler.Login)
		group.GET("/session", middleware.AuthMiddleware(), handler.Session)
	}
}

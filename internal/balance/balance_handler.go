package balance

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yohan114/leave-management-system/internal/rbac"
	"github.com/yohan114/leave-management-system/internal/shared/apperror"
	"github.com/yohan114/leave-management-system/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("balance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// List returns the caller's balances for a year. Admins and managers may pass
// ?user_id= to inspect someone else's.
func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("user_id")
	if target := c.Query("user_id"); target != "" {
		role := c.GetString("role")
		if role != rbac.RoleAdmin && role != rbac.RoleManager {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "cannot view another user's balances", nil)
			return
		}
		userID = target
	}

	year := time.Now().Year()
	if y := c.Query("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "year must be a number", nil)
			return
		}
		year = parsed
	}

	resp, err := h.service.ListForUser(c.Request.Context(), userID, year)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Rollover(c *gin.Context) {
	var req RolloverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, mapped.Details)
		return
	}

	resp, err := h.service.Rollover(c.Request.Context(), req.FromYear)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.logger.Info("rollover requested",
		zap.String("requested_by", c.GetString("user_id")),
		zap.Int("from_year", req.FromYear),
	)
	response.Success(c, http.StatusOK, resp, nil)
}

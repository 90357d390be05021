package audit

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rvaldiviezo/clinica-api/internal/handler"
	"github.com/rvaldiviezo/clinica-api/internal/middleware"
	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/service/audit"
)

type Handler struct {
	service *audit.Service
}

func NewHandler(service *audit.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	r.GET("/audit-logs", authMW.RequirePermission(model.PermViewAuditLogs), h.ListLogs)
}

func (h *Handler) ListLogs(c *gin.Context) {
	var filters model.AuditFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	logs, err := h.service.List(c.Request.Context(), &filters)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(logs))
}

package backup

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rvaldiviezo/clinica-api/internal/handler"
	"github.com/rvaldiviezo/clinica-api/internal/middleware"
	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/service/backup"
)

type Handler struct {
	service *backup.Service
}

func NewHandler(service *backup.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	r.POST("/backup", authMW.RequirePermission(model.PermManageBackup), h.CreateBackup)
}

func (h *Handler) CreateBackup(c *gin.Context) {
	path, err := h.service.Create(c.Request.Context(), handler.Actor(c))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{"path": path}))
}

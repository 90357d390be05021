package exam

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rvaldiviezo/clinica-api/internal/handler"
	"github.com/rvaldiviezo/clinica-api/internal/middleware"
	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/service/exam"
	"github.com/rvaldiviezo/clinica-api/internal/storage"
)

type Handler struct {
	service *exam.Service
	files   *storage.Store
}

func NewHandler(service *exam.Service, files *storage.Store) *Handler {
	return &Handler{service: service, files: files}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	exams := r.Group("/exams", authMW.RequirePermission(model.PermManageExams))
	{
		exams.POST("", h.CreateExam)
		exams.GET("", h.ListExams)
		exams.GET("/:id", h.GetExam)
		exams.PUT("/:id", h.UpdateExam)
		exams.POST("/:id/results", h.UploadResult)
		exams.GET("/:id/results", h.ListResults)
	}
	results := r.Group("/exam-results")
	{
		results.GET("/:id/file", authMW.RequirePermission(model.PermManageExams), h.DownloadResult)
		results.DELETE("/:id", authMW.RequirePermission(model.PermDeleteExams), h.DeleteResult)
	}
}

func (h *Handler) CreateExam(c *gin.Context) {
	var req model.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	e, err := h.service.Create(c.Request.Context(), handler.Actor(c), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(e))
}

func (h *Handler) GetExam(c *gin.Context) {
	id, ok := handler.IDParam(c, "id")
	if !ok {
		return
	}

	e, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(e))
}

func (h *Handler) ListExams(c *gin.Context) {
	var filters model.ExamFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	exams, err := h.service.List(c.Request.Context(), &filters)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(exams))
}

func (h *Handler) UpdateExam(c *gin.Context) {
	id, ok := handler.IDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	e, err := h.service.Update(c.Request.Context(), handler.Actor(c), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(e))
}

// UploadResult stages the multipart file under the temp directory and hands
// it to the service, which moves it to its final location.
func (h *Handler) UploadResult(c *gin.Context) {
	examID, ok := handler.IDParam(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("se requiere un archivo"))
		return
	}

	staged := h.files.TempPath(fmt.Sprintf("%s_%s", uuid.New().String(), storage.SanitizeName(file.Filename)))
	if err := c.SaveUploadedFile(file, staged); err != nil {
		handler.Error(c, err)
		return
	}

	result, err := h.service.AttachResult(c.Request.Context(), handler.Actor(c),
		examID, staged, file.Filename, c.PostForm("note"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(result))
}

func (h *Handler) ListResults(c *gin.Context) {
	examID, ok := handler.IDParam(c, "id")
	if !ok {
		return
	}

	results, err := h.service.ListResults(c.Request.Context(), examID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(results))
}

func (h *Handler) DownloadResult(c *gin.Context) {
	id, ok := handler.IDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetResult(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.FileAttachment(h.service.ResultFilePath(result.FilePath), result.OriginalName)
}

func (h *Handler) DeleteResult(c *gin.Context) {
	id, ok := handler.IDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteResult(c.Request.Context(), handler.Actor(c), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

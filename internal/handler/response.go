package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rvaldiviezo/clinica-api/internal/apperror"
	"github.com/rvaldiviezo/clinica-api/internal/service/audit"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// Error writes err as a JSON response. Application errors keep their status
// and message; anything else is logged and answered with a generic 500 so
// store internals never leak to clients.
func Error(c *gin.Context, err error) {
	var ae *apperror.Error
	if errors.As(err, &ae) && ae.Code < http.StatusInternalServerError {
		c.JSON(ae.Code, NewErrorResponse(ae.Message))
		return
	}

	log.Error().Err(err).
		Str("path", c.Request.URL.Path).
		Str("method", c.Request.Method).
		Msg("request failed")
	c.JSON(http.StatusInternalServerError, NewErrorResponse("error interno del servidor"))
}

// Actor returns the authenticated user for audit logging. Values are set by
// the auth middleware; on public routes the zero actor is returned.
func Actor(c *gin.Context) audit.Actor {
	return audit.Actor{
		ID:   c.GetInt64("user_id"),
		Name: c.GetString("name"),
	}
}

// Role returns the authenticated user's role.
func Role(c *gin.Context) string {
	return c.GetString("role")
}

// IDParam parses the named path parameter as an int64.
func IDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, NewErrorResponse("identificador inválido"))
		return 0, false
	}
	return id, true
}

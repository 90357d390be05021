package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rvaldiviezo/clinica-api/internal/handler"
	"github.com/rvaldiviezo/clinica-api/internal/service/auth"
	"github.com/rvaldiviezo/clinica-api/internal/service/authz"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextUserRole = "role"
	ContextUserName = "name"
)

type AuthMiddleware struct {
	authService  *auth.Service
	authzService *authz.Service
}

func NewAuthMiddleware(authService *auth.Service, authzService *authz.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService:  authService,
		authzService: authzService,
	}
}

// Authenticate verifies the bearer token and sets the user identity in
// context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("falta el encabezado de autorización"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("formato de autorización inválido"))
			c.Abort()
			return
		}

		claims, err := m.authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("token inválido"))
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextUserName, claims.Name)
		c.Next()
	}
}

// RequirePermission rejects the request unless the authenticated role holds
// the permission. Routes whose permission depends on the target record state
// check inside the service instead of here.
func (m *AuthMiddleware) RequirePermission(permissionKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if role == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("no autenticado"))
			c.Abort()
			return
		}

		allowed, err := m.authzService.IsAllowed(c.Request.Context(), role, permissionKey)
		if err != nil {
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("no se pudo verificar el permiso"))
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("permiso denegado"))
			c.Abort()
			return
		}

		c.Next()
	}
}

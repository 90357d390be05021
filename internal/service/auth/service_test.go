package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvaldiviezo/clinica-api/internal/apperror"
	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/repository/sqlite"
	"github.com/rvaldiviezo/clinica-api/internal/service/audit"
	pkgauth "github.com/rvaldiviezo/clinica-api/pkg/auth"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	auditor := audit.NewService(sqlite.NewAuditRepository(db))
	jwtSvc := pkgauth.NewJWTService("secreto-de-prueba", time.Hour)
	return NewService(sqlite.NewUserRepository(db), jwtSvc, auditor)
}

func TestEnsureDefaultAdminSeedsOnce(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "admin", "admin123"))

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, model.RoleAdmin, users[0].Role)

	// A second call on a populated database does nothing.
	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "otro", "otra123"))
	users, err = svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "admin", "admin123"))

	resp, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.User.Username)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "admin", "admin123"))

	// Wrong password and unknown user answer identically.
	_, err := svc.Login(ctx, "admin", "incorrecta")
	require.Error(t, err)
	assert.Equal(t, 401, apperror.Status(err))

	_, err = svc.Login(ctx, "inexistente", "admin123")
	require.Error(t, err)
	assert.Equal(t, 401, apperror.Status(err))
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	actor := audit.Actor{ID: 1, Name: "admin"}

	_, err := svc.CreateUser(ctx, actor, &model.CreateUserRequest{
		Username: "mgarcia", Password: "clave123", Name: "María García", Role: "medico",
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, actor, &model.CreateUserRequest{
		Username: "mgarcia", Password: "otra456", Name: "Otra", Role: "recepcion",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestUpdateUserChangesPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	actor := audit.Actor{ID: 1, Name: "admin"}

	user, err := svc.CreateUser(ctx, actor, &model.CreateUserRequest{
		Username: "mgarcia", Password: "clave123", Name: "María García", Role: "medico",
	})
	require.NoError(t, err)

	nueva := "clave-nueva"
	_, err = svc.UpdateUser(ctx, actor, user.ID, &model.UpdateUserRequest{Password: &nueva})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "mgarcia", "clave123")
	assert.Error(t, err)

	_, err = svc.Login(ctx, "mgarcia", "clave-nueva")
	assert.NoError(t, err)
}

package authz

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvaldiviezo/clinica-api/internal/apperror"
	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/repository/sqlite"
	"github.com/rvaldiviezo/clinica-api/internal/service/audit"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestService(t *testing.T) *Service {
	db := newTestDB(t)
	auditor := audit.NewService(sqlite.NewAuditRepository(db))
	return NewService(sqlite.NewRBACRepository(db), auditor)
}

func TestAdminBypassesEveryCheck(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	allowed, err := svc.IsAllowed(ctx, model.RoleAdmin, model.PermManageBackup)
	require.NoError(t, err)
	assert.True(t, allowed)

	// Even a key absent from the catalog.
	allowed, err = svc.IsAllowed(ctx, model.RoleAdmin, "no_such_permission")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestGrantAndRevoke(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	actor := audit.Actor{ID: 1, Name: "admin"}

	allowed, err := svc.IsAllowed(ctx, "recepcion", model.PermViewPatients)
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, svc.Grant(ctx, actor, "recepcion", model.PermViewPatients))

	allowed, err = svc.IsAllowed(ctx, "recepcion", model.PermViewPatients)
	require.NoError(t, err)
	assert.True(t, allowed)

	require.NoError(t, svc.Revoke(ctx, actor, "recepcion", model.PermViewPatients))

	allowed, err = svc.IsAllowed(ctx, "recepcion", model.PermViewPatients)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestGrantIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	actor := audit.Actor{ID: 1, Name: "admin"}

	require.NoError(t, svc.Grant(ctx, actor, "recepcion", model.PermViewPatients))
	require.NoError(t, svc.Grant(ctx, actor, "recepcion", model.PermViewPatients))

	grants, err := svc.ListGrants(ctx)
	require.NoError(t, err)

	count := 0
	for _, g := range grants {
		if g.Role == "recepcion" && g.PermissionKey == model.PermViewPatients {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestRevokeAbsentGrantIsNoop(t *testing.T) {
	svc := newTestService(t)

	err := svc.Revoke(context.Background(), audit.Actor{ID: 1, Name: "admin"}, "recepcion", model.PermManageExams)
	assert.NoError(t, err)
}

func TestRequireReturnsPermissionDenied(t *testing.T) {
	svc := newTestService(t)

	err := svc.Require(context.Background(), "recepcion", model.PermManageBackup)
	require.Error(t, err)
	assert.True(t, apperror.IsPermissionDenied(err))
}

func TestUnknownRoleHasNoPermissions(t *testing.T) {
	svc := newTestService(t)

	allowed, err := svc.IsAllowed(context.Background(), "inexistente", model.PermViewPatients)
	require.NoError(t, err)
	assert.False(t, allowed)
}

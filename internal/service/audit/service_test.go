package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/repository/sqlite"
)

func newTestService(t *testing.T) (*Service, *sqlx.DB) {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewService(sqlite.NewAuditRepository(db)), db
}

func insertAged(t *testing.T, db *sqlx.DB, age time.Duration) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO audit_logs (user_id, user_name, action, details, created_at) VALUES (?, ?, ?, ?, ?)",
		1, "admin", model.AuditActionCreate, "registro antiguo", time.Now().Add(-age))
	require.NoError(t, err)
}

func TestLogAndList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Log(ctx, Actor{ID: 7, Name: "admin"}, model.AuditActionLogin, "inicio de sesión")

	logs, err := svc.List(ctx, &model.AuditFilters{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, int64(7), logs[0].UserID)
	assert.Equal(t, model.AuditActionLogin, logs[0].Action)
}

func TestPruneRemovesOnlyExpiredEntries(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	insertAged(t, db, 400*24*time.Hour)
	insertAged(t, db, 10*24*time.Hour)

	removed, err := svc.Prune(ctx, 365*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	logs, err := svc.List(ctx, &model.AuditFilters{})
	require.NoError(t, err)

	// The recent entry plus the prune record itself.
	require.Len(t, logs, 2)
	var actions []string
	for _, l := range logs {
		actions = append(actions, l.Action)
	}
	assert.Contains(t, actions, model.AuditActionPruneLogs)
}

func TestPruneWithNothingExpiredLeavesNoTrace(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	insertAged(t, db, 10*24*time.Hour)

	removed, err := svc.Prune(ctx, 365*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)

	logs, err := svc.List(ctx, &model.AuditFilters{})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestPruneRecordsSystemActor(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	insertAged(t, db, 400*24*time.Hour)

	_, err := svc.Prune(ctx, 365*24*time.Hour)
	require.NoError(t, err)

	logs, err := svc.List(ctx, &model.AuditFilters{Action: model.AuditActionPruneLogs})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "sistema", logs[0].UserName)
}

package backup

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/repository/sqlite"
	"github.com/rvaldiviezo/clinica-api/internal/service/audit"
)

func TestCreateCopiesDatabaseFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "clinica.db")

	db, err := sqlite.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	auditor := audit.NewService(sqlite.NewAuditRepository(db))
	backupDir := filepath.Join(dir, "backups")
	svc := NewService(dbPath, backupDir, auditor)

	dst, err := svc.Create(context.Background(), audit.Actor{ID: 1, Name: "admin"})
	require.NoError(t, err)

	base := filepath.Base(dst)
	assert.True(t, strings.HasPrefix(base, "clinica_"))
	assert.True(t, strings.HasSuffix(base, ".db"))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	logs, err := auditor.List(context.Background(), &model.AuditFilters{Action: model.AuditActionBackup})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestCreateFailsWhenDatabaseMissing(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "clinica.db")

	db, err := sqlite.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	auditor := audit.NewService(sqlite.NewAuditRepository(db))
	svc := NewService(filepath.Join(dir, "no-existe.db"), filepath.Join(dir, "backups"), auditor)

	_, err = svc.Create(context.Background(), audit.Actor{ID: 1, Name: "admin"})
	assert.Error(t, err)
}

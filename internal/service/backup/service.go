package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/service/audit"
)

// Service copies the database file to a timestamped backup path.
type Service struct {
	dbPath    string
	backupDir string
	auditor   *audit.Service
}

func NewService(dbPath, backupDir string, auditor *audit.Service) *Service {
	return &Service{dbPath: dbPath, backupDir: backupDir, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actor audit.Actor) (string, error) {
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	dst := filepath.Join(s.backupDir, fmt.Sprintf("clinica_%s.db", time.Now().Format("20060102_150405")))
	if err := copyFile(s.dbPath, dst); err != nil {
		return "", fmt.Errorf("failed to back up database: %w", err)
	}

	s.auditor.Log(ctx, actor, model.AuditActionBackup,
		fmt.Sprintf("copia de seguridad creada en %s", dst))
	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

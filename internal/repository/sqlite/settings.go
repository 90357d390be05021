package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/repository"
)

type settingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	var s model.Settings
	err := r.db.GetContext(ctx, &s, `SELECT * FROM settings WHERE id = 1`)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &s, nil
}

func (r *settingsRepository) Update(ctx context.Context, s *model.Settings) error {
	query := `
		UPDATE settings
		SET legal_name = ?, tax_id = ?, phone = ?, email = ?, address = ?,
			logo_path = ?, updated_at = ?
		WHERE id = 1
	`
	s.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		s.LegalName, s.TaxID, s.Phone, s.Email, s.Address, s.LogoPath, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}

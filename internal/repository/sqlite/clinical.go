package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/repository"
)

type triageRepository struct {
	db *sqlx.DB
}

func NewTriageRepository(db *sqlx.DB) repository.TriageRepository {
	return &triageRepository{db: db}
}

func (r *triageRepository) Create(ctx context.Context, t *model.Triage) error {
	query := `
		INSERT INTO triage (patient_id, appointment_id, weight, height, temperature,
			blood_pressure, heart_rate, respiratory_rate, oxygen_saturation, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	t.CreatedAt = time.Now()

	res, err := r.db.ExecContext(ctx, query,
		t.PatientID, t.AppointmentID, t.Weight, t.Height, t.Temperature,
		t.BloodPressure, t.HeartRate, t.RespiratoryRate, t.OxygenSaturation,
		t.Notes, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create triage: %w", err)
	}
	t.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read triage id: %w", err)
	}
	return nil
}

func (r *triageRepository) Get(ctx context.Context, id int64) (*model.Triage, error) {
	var t model.Triage
	err := r.db.GetContext(ctx, &t, `SELECT * FROM triage WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get triage: %w", err)
	}
	return &t, nil
}

func (r *triageRepository) Update(ctx context.Context, t *model.Triage) error {
	query := `
		UPDATE triage
		SET weight = ?, height = ?, temperature = ?, blood_pressure = ?,
			heart_rate = ?, respiratory_rate = ?, oxygen_saturation = ?, notes = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		t.Weight, t.Height, t.Temperature, t.BloodPressure,
		t.HeartRate, t.RespiratoryRate, t.OxygenSaturation, t.Notes, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update triage: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *triageRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Triage, error) {
	var records []*model.Triage
	query := `SELECT * FROM triage WHERE patient_id = ? ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &records, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list triage: %w", err)
	}
	return records, nil
}

type historyRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) repository.HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(ctx context.Context, h *model.HistoryEntry) error {
	query := `
		INSERT INTO history (patient_id, appointment_id, type, notes, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	h.CreatedAt = time.Now()

	res, err := r.db.ExecContext(ctx, query,
		h.PatientID, h.AppointmentID, h.Type, h.Notes, h.CreatedBy, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create history entry: %w", err)
	}
	h.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read history id: %w", err)
	}
	return nil
}

func (r *historyRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.HistoryEntry, error) {
	var entries []*model.HistoryEntry
	query := `SELECT * FROM history WHERE patient_id = ? ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &entries, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, nil
}

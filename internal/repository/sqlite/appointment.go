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

type appointmentRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, a *model.Appointment) error {
	query := `
		INSERT INTO appointments (patient_id, date, time, type, status, notes,
			diagnosis, status_history, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt

	res, err := r.db.ExecContext(ctx, query,
		a.PatientID, a.Date, a.Time, a.Type, a.Status, a.Notes,
		a.Diagnosis, a.StatusHistory, a.CreatedBy, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	a.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read appointment id: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	var a model.Appointment
	err := r.db.GetContext(ctx, &a, `SELECT * FROM appointments WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &a, nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE 1=1`
	var args []interface{}

	if filters != nil {
		if filters.PatientID != nil {
			query += ` AND patient_id = ?`
			args = append(args, *filters.PatientID)
		}
		if filters.Status != "" {
			query += ` AND status = ?`
			args = append(args, filters.Status)
		}
		if filters.FromDate != "" {
			query += ` AND date >= ?`
			args = append(args, filters.FromDate)
		}
		if filters.ToDate != "" {
			query += ` AND date <= ?`
			args = append(args, filters.ToDate)
		}
	}
	query += ` ORDER BY date DESC, time DESC`

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, a *model.Appointment) error {
	query := `
		UPDATE appointments
		SET patient_id = ?, date = ?, time = ?, type = ?, status = ?, notes = ?,
			diagnosis = ?, status_history = ?, updated_at = ?
		WHERE id = ?
	`
	a.UpdatedAt = time.Now()

	res, err := r.db.ExecContext(ctx, query,
		a.PatientID, a.Date, a.Time, a.Type, a.Status, a.Notes,
		a.Diagnosis, a.StatusHistory, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
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

// Child rows first, parent last, all inside one transaction so a failed
// parent delete never leaves the children gone.
func (r *appointmentRepository) DeleteCascade(ctx context.Context, id int64) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	cascades := []string{
		`DELETE FROM exam_results WHERE exam_id IN (SELECT id FROM exams WHERE appointment_id = ?)`,
		`DELETE FROM triage WHERE appointment_id = ?`,
		`DELETE FROM exams WHERE appointment_id = ?`,
		`DELETE FROM prescriptions WHERE appointment_id = ?`,
		`DELETE FROM history WHERE appointment_id = ?`,
	}
	for _, query := range cascades {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return 0, fmt.Errorf("failed to cascade appointment delete: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete appointment: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit appointment delete: %w", err)
	}
	return rows, nil
}

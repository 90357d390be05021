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

type prescriptionRepository struct {
	db *sqlx.DB
}

func NewPrescriptionRepository(db *sqlx.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) Create(ctx context.Context, p *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (patient_id, appointment_id, medications,
			instructions, doctor_name, prescription_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	p.CreatedAt = time.Now()
	if p.PrescriptionDate == "" {
		p.PrescriptionDate = p.CreatedAt.Format("2006-01-02")
	}

	res, err := r.db.ExecContext(ctx, query,
		p.PatientID, p.AppointmentID, p.Medications,
		p.Instructions, p.DoctorName, p.PrescriptionDate, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read prescription id: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	var p model.Prescription
	err := r.db.GetContext(ctx, &p, `SELECT * FROM prescriptions WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &p, nil
}

func (r *prescriptionRepository) List(ctx context.Context, patientID *int64) ([]*model.Prescription, error) {
	query := `SELECT * FROM prescriptions`
	var args []interface{}
	if patientID != nil {
		query += ` WHERE patient_id = ?`
		args = append(args, *patientID)
	}
	query += ` ORDER BY created_at DESC`

	var prescriptions []*model.Prescription
	if err := r.db.SelectContext(ctx, &prescriptions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) Update(ctx context.Context, p *model.Prescription) error {
	query := `
		UPDATE prescriptions
		SET medications = ?, instructions = ?, doctor_name = ?, prescription_date = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		p.Medications, p.Instructions, p.DoctorName, p.PrescriptionDate, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update prescription: %w", err)
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

func (r *prescriptionRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM prescriptions WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete prescription: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

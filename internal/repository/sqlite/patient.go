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

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, p *model.Patient) error {
	query := `
		INSERT INTO patients (first_name, last_name, document_type, document_number,
			history_number, birth_date, gender, phone, email, department, province,
			district, address, summary, diagnosis, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt

	res, err := r.db.ExecContext(ctx, query,
		p.FirstName, p.LastName, p.DocumentType, p.DocumentNumber,
		p.HistoryNumber, p.BirthDate, p.Gender, p.Phone, p.Email,
		p.Department, p.Province, p.District, p.Address,
		p.Summary, p.Diagnosis, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read patient id: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	var p model.Patient
	err := r.db.GetContext(ctx, &p, `SELECT * FROM patients WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &p, nil
}

func (r *patientRepository) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	query := `SELECT * FROM patients WHERE 1=1`
	var args []interface{}

	if filters != nil {
		if filters.SearchTerm != "" {
			query += ` AND (first_name LIKE ? OR last_name LIKE ? OR history_number LIKE ?)`
			term := "%" + filters.SearchTerm + "%"
			args = append(args, term, term, term)
		}
		if filters.DocumentNumber != "" {
			query += ` AND document_number = ?`
			args = append(args, filters.DocumentNumber)
		}
		if filters.FromDate != "" {
			query += ` AND date(created_at) >= ?`
			args = append(args, filters.FromDate)
		}
		if filters.ToDate != "" {
			query += ` AND date(created_at) <= ?`
			args = append(args, filters.ToDate)
		}
	}
	query += ` ORDER BY last_name, first_name`

	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, p *model.Patient) error {
	query := `
		UPDATE patients
		SET first_name = ?, last_name = ?, document_type = ?, document_number = ?,
			birth_date = ?, gender = ?, phone = ?, email = ?, department = ?,
			province = ?, district = ?, address = ?, summary = ?, diagnosis = ?,
			updated_at = ?
		WHERE id = ?
	`
	p.UpdatedAt = time.Now()

	res, err := r.db.ExecContext(ctx, query,
		p.FirstName, p.LastName, p.DocumentType, p.DocumentNumber,
		p.BirthDate, p.Gender, p.Phone, p.Email, p.Department,
		p.Province, p.District, p.Address, p.Summary, p.Diagnosis,
		p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
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

// Dependency predicates are evaluated in a fixed order so the conflict
// message is deterministic when more than one table references the patient.
var patientDependencies = []struct {
	name  string
	query string
}{
	{"appointments", `SELECT COUNT(*) FROM appointments WHERE patient_id = ?`},
	{"prescriptions", `SELECT COUNT(*) FROM prescriptions WHERE patient_id = ?`},
	{"exams", `SELECT COUNT(*) FROM exams WHERE patient_id = ?`},
}

func (r *patientRepository) DeleteGuarded(ctx context.Context, id int64) (int64, string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, dep := range patientDependencies {
		var count int64
		if err := tx.GetContext(ctx, &count, dep.query, id); err != nil {
			return 0, "", fmt.Errorf("failed to check %s dependency: %w", dep.name, err)
		}
		if count > 0 {
			return 0, dep.name, nil
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM patients WHERE id = ?`, id)
	if err != nil {
		return 0, "", fmt.Errorf("failed to delete patient: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, "", fmt.Errorf("failed to get rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, "", fmt.Errorf("failed to commit patient delete: %w", err)
	}
	return rows, "", nil
}

func (r *patientRepository) HistoryNumberExists(ctx context.Context, historyNumber string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM patients WHERE history_number = ? AND id != ?)`
	if err := r.db.GetContext(ctx, &exists, query, historyNumber, excludeID); err != nil {
		return false, fmt.Errorf("failed to check history number: %w", err)
	}
	return exists, nil
}

func (r *patientRepository) DocumentNameExists(ctx context.Context, documentNumber, firstName, lastName string, excludeID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM patients
			WHERE document_number = ? AND first_name = ? AND last_name = ? AND id != ?
		)
	`
	if err := r.db.GetContext(ctx, &exists, query, documentNumber, firstName, lastName, excludeID); err != nil {
		return false, fmt.Errorf("failed to check document and name: %w", err)
	}
	return exists, nil
}

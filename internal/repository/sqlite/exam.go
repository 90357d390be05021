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

type examRepository struct {
	db *sqlx.DB
}

func NewExamRepository(db *sqlx.DB) repository.ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(ctx context.Context, e *model.Exam) error {
	query := `
		INSERT INTO exams (patient_id, appointment_id, type, reason, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	if e.Status == "" {
		e.Status = model.ExamStatusRequested
	}

	res, err := r.db.ExecContext(ctx, query,
		e.PatientID, e.AppointmentID, e.Type, e.Reason, e.Status, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create exam: %w", err)
	}
	e.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read exam id: %w", err)
	}
	return nil
}

func (r *examRepository) Get(ctx context.Context, id int64) (*model.Exam, error) {
	var e model.Exam
	err := r.db.GetContext(ctx, &e, `SELECT * FROM exams WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}
	return &e, nil
}

func (r *examRepository) List(ctx context.Context, filters *model.ExamFilters) ([]*model.Exam, error) {
	query := `SELECT * FROM exams WHERE 1=1`
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
			query += ` AND date(created_at) >= ?`
			args = append(args, filters.FromDate)
		}
		if filters.ToDate != "" {
			query += ` AND date(created_at) <= ?`
			args = append(args, filters.ToDate)
		}
	}
	query += ` ORDER BY created_at DESC`

	var exams []*model.Exam
	if err := r.db.SelectContext(ctx, &exams, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}
	return exams, nil
}

func (r *examRepository) Update(ctx context.Context, e *model.Exam) error {
	query := `UPDATE exams SET type = ?, reason = ?, status = ?, updated_at = ? WHERE id = ?`
	e.UpdatedAt = time.Now()

	res, err := r.db.ExecContext(ctx, query, e.Type, e.Reason, e.Status, e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update exam: %w", err)
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

func (r *examRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE exams SET status = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update exam status: %w", err)
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

func (r *examRepository) CreateResult(ctx context.Context, result *model.ExamResult) error {
	query := `
		INSERT INTO exam_results (exam_id, file_path, original_name, note, uploaded_at)
		VALUES (?, ?, ?, ?, ?)
	`
	result.UploadedAt = time.Now()

	res, err := r.db.ExecContext(ctx, query,
		result.ExamID, result.FilePath, result.OriginalName, result.Note, result.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create exam result: %w", err)
	}
	result.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read exam result id: %w", err)
	}
	return nil
}

func (r *examRepository) GetResult(ctx context.Context, id int64) (*model.ExamResult, error) {
	var result model.ExamResult
	err := r.db.GetContext(ctx, &result, `SELECT * FROM exam_results WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get exam result: %w", err)
	}
	return &result, nil
}

func (r *examRepository) ListResults(ctx context.Context, examID int64) ([]*model.ExamResult, error) {
	var results []*model.ExamResult
	query := `SELECT * FROM exam_results WHERE exam_id = ? ORDER BY uploaded_at DESC`
	if err := r.db.SelectContext(ctx, &results, query, examID); err != nil {
		return nil, fmt.Errorf("failed to list exam results: %w", err)
	}
	return results, nil
}

func (r *examRepository) DeleteResult(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exam_results WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete exam result: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

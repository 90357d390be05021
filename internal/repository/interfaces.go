package repository

import (
	"context"
	"time"

	"github.com/rvaldiviezo/clinica-api/internal/model"
)

type PatientRepository interface {
	Create(ctx context.Context, p *model.Patient) error
	Get(ctx context.Context, id int64) (*model.Patient, error)
	List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
	Update(ctx context.Context, p *model.Patient) error
	// DeleteGuarded removes the patient only if no appointment, prescription
	// or exam references it. It returns the name of the first dependency
	// found (checked in that fixed order) or the number of rows removed.
	DeleteGuarded(ctx context.Context, id int64) (rows int64, dependency string, err error)
	HistoryNumberExists(ctx context.Context, historyNumber string, excludeID int64) (bool, error)
	DocumentNameExists(ctx context.Context, documentNumber, firstName, lastName string, excludeID int64) (bool, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *model.Appointment) error
	Get(ctx context.Context, id int64) (*model.Appointment, error)
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	Update(ctx context.Context, a *model.Appointment) error
	// DeleteCascade removes the appointment and every triage, exam (with its
	// results), prescription and history row referencing it, in one
	// transaction. Returns the number of appointment rows removed (0 or 1).
	DeleteCascade(ctx context.Context, id int64) (int64, error)
}

type TriageRepository interface {
	Create(ctx context.Context, t *model.Triage) error
	Get(ctx context.Context, id int64) (*model.Triage, error)
	Update(ctx context.Context, t *model.Triage) error
	ListByPatient(ctx context.Context, patientID int64) ([]*model.Triage, error)
}

type HistoryRepository interface {
	Create(ctx context.Context, h *model.HistoryEntry) error
	ListByPatient(ctx context.Context, patientID int64) ([]*model.HistoryEntry, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, p *model.Prescription) error
	Get(ctx context.Context, id int64) (*model.Prescription, error)
	List(ctx context.Context, patientID *int64) ([]*model.Prescription, error)
	Update(ctx context.Context, p *model.Prescription) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type ExamRepository interface {
	Create(ctx context.Context, e *model.Exam) error
	Get(ctx context.Context, id int64) (*model.Exam, error)
	List(ctx context.Context, filters *model.ExamFilters) ([]*model.Exam, error)
	Update(ctx context.Context, e *model.Exam) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	CreateResult(ctx context.Context, r *model.ExamResult) error
	GetResult(ctx context.Context, id int64) (*model.ExamResult, error)
	ListResults(ctx context.Context, examID int64) ([]*model.ExamResult, error)
	DeleteResult(ctx context.Context, id int64) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	Get(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type RBACRepository interface {
	Grant(ctx context.Context, role, permissionKey string) error
	Revoke(ctx context.Context, role, permissionKey string) error
	HasGrant(ctx context.Context, role, permissionKey string) (bool, error)
	ListGrants(ctx context.Context) ([]*model.Grant, error)
	ListRoleGrants(ctx context.Context, role string) ([]string, error)
	ListPermissions(ctx context.Context) ([]*model.Permission, error)
}

type AuditRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, filters *model.AuditFilters) ([]*model.AuditLog, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type SettingsRepository interface {
	Get(ctx context.Context) (*model.Settings, error)
	Update(ctx context.Context, s *model.Settings) error
}

type DoctorRepository interface {
	Create(ctx context.Context, d *model.Doctor) error
	Get(ctx context.Context, id int64) (*model.Doctor, error)
	List(ctx context.Context) ([]*model.Doctor, error)
	Update(ctx context.Context, d *model.Doctor) error
	Delete(ctx context.Context, id int64) (int64, error)
}

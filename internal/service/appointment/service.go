package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rvaldiviezo/clinica-api/internal/apperror"
	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/repository"
	"github.com/rvaldiviezo/clinica-api/internal/service/audit"
	"github.com/rvaldiviezo/clinica-api/internal/service/authz"
)

type Service struct {
	repo    repository.AppointmentRepository
	authz   *authz.Service
	auditor *audit.Service
}

func NewService(repo repository.AppointmentRepository, authzSvc *authz.Service, auditor *audit.Service) *Service {
	return &Service{repo: repo, authz: authzSvc, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actor audit.Actor, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	status := req.Status
	if status == "" {
		status = model.AppointmentStatusScheduled
	}

	a := &model.Appointment{
		PatientID: req.PatientID,
		Date:      req.Date,
		Time:      req.Time,
		Type:      req.Type,
		Status:    status,
		Notes:     req.Notes,
		Diagnosis: req.Diagnosis,
		CreatedBy: actor.Name,
		StatusHistory: model.StatusHistory{
			{Status: status, ChangedBy: actor.Name, ChangedAt: time.Now()},
		},
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionCreate,
		fmt.Sprintf("cita #%d programada para %s %s", a.ID, a.Date, a.Time))
	return a, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("cita %d no encontrada", id)
		}
		return nil, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return s.repo.List(ctx, filters)
}

// Update applies the request and appends to the embedded status log when
// the status actually changes.
func (s *Service) Update(ctx context.Context, actor audit.Actor, id int64, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PatientID != nil {
		a.PatientID = req.PatientID
	}
	if req.Date != nil {
		a.Date = *req.Date
	}
	if req.Time != nil {
		a.Time = *req.Time
	}
	if req.Type != nil {
		a.Type = *req.Type
	}
	if req.Notes != nil {
		a.Notes = *req.Notes
	}
	if req.Diagnosis != nil {
		a.Diagnosis = *req.Diagnosis
	}
	if req.Status != nil && *req.Status != a.Status {
		a.Status = *req.Status
		a.StatusHistory = append(a.StatusHistory, model.StatusChange{
			Status:    a.Status,
			ChangedBy: actor.Name,
			ChangedAt: time.Now(),
		})
	}

	if err := s.repo.Update(ctx, a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("cita %d no encontrada", id)
		}
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionUpdate,
		fmt.Sprintf("cita #%d actualizada (estado %s)", a.ID, a.Status))
	return a, nil
}

// Delete removes an appointment and every dependent triage, exam,
// prescription and history row in one transaction. Which permission gates
// the operation depends on the appointment's status: terminal appointments
// (Cancelado, Realizado) are historical records and require
// delete_history_appointments instead of delete_appointments.
func (s *Service) Delete(ctx context.Context, actor audit.Actor, role string, id int64) (int64, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}

	required := model.PermDeleteAppointments
	if model.IsTerminalStatus(a.Status) {
		required = model.PermDeleteHistoryAppointments
	}
	if err := s.authz.Require(ctx, role, required); err != nil {
		return 0, err
	}

	rows, err := s.repo.DeleteCascade(ctx, id)
	if err != nil {
		return 0, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionDelete,
		fmt.Sprintf("cita #%d eliminada junto con sus registros asociados", id))
	return rows, nil
}

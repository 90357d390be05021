package prescription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rvaldiviezo/clinica-api/internal/apperror"
	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/repository"
	"github.com/rvaldiviezo/clinica-api/internal/service/audit"
)

type Service struct {
	repo    repository.PrescriptionRepository
	auditor *audit.Service
}

func NewService(repo repository.PrescriptionRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actor audit.Actor, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	p := &model.Prescription{
		PatientID:        req.PatientID,
		AppointmentID:    req.AppointmentID,
		Medications:      req.Medications,
		Instructions:     req.Instructions,
		DoctorName:       req.DoctorName,
		PrescriptionDate: req.PrescriptionDate,
	}
	if p.DoctorName == "" {
		p.DoctorName = actor.Name
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionCreate,
		fmt.Sprintf("receta #%d emitida para paciente #%d", p.ID, p.PatientID))
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("receta %d no encontrada", id)
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, patientID *int64) ([]*model.Prescription, error) {
	return s.repo.List(ctx, patientID)
}

func (s *Service) Update(ctx context.Context, actor audit.Actor, id int64, req *model.UpdatePrescriptionRequest) (*model.Prescription, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Medications != nil {
		p.Medications = req.Medications
	}
	if req.Instructions != nil {
		p.Instructions = *req.Instructions
	}
	if req.DoctorName != nil {
		p.DoctorName = *req.DoctorName
	}
	if req.PrescriptionDate != nil {
		p.PrescriptionDate = *req.PrescriptionDate
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("receta %d no encontrada", id)
		}
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionUpdate,
		fmt.Sprintf("receta #%d actualizada", p.ID))
	return p, nil
}

func (s *Service) Delete(ctx context.Context, actor audit.Actor, id int64) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.NotFound("receta %d no encontrada", id)
	}

	s.auditor.Log(ctx, actor, model.AuditActionDelete,
		fmt.Sprintf("receta #%d eliminada", id))
	return nil
}

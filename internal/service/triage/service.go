package triage

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
	repo    repository.TriageRepository
	auditor *audit.Service
}

func NewService(repo repository.TriageRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actor audit.Actor, req *model.CreateTriageRequest) (*model.Triage, error) {
	t := &model.Triage{
		PatientID:        req.PatientID,
		AppointmentID:    req.AppointmentID,
		Weight:           req.Weight,
		Height:           req.Height,
		Temperature:      req.Temperature,
		BloodPressure:    req.BloodPressure,
		HeartRate:        req.HeartRate,
		RespiratoryRate:  req.RespiratoryRate,
		OxygenSaturation: req.OxygenSaturation,
		Notes:            req.Notes,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionCreate,
		fmt.Sprintf("triaje #%d registrado para paciente #%d", t.ID, t.PatientID))
	return t, nil
}

func (s *Service) Update(ctx context.Context, actor audit.Actor, id int64, req *model.UpdateTriageRequest) (*model.Triage, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("triaje %d no encontrado", id)
		}
		return nil, err
	}

	if req.Weight != nil {
		t.Weight = *req.Weight
	}
	if req.Height != nil {
		t.Height = *req.Height
	}
	if req.Temperature != nil {
		t.Temperature = *req.Temperature
	}
	if req.BloodPressure != nil {
		t.BloodPressure = *req.BloodPressure
	}
	if req.HeartRate != nil {
		t.HeartRate = *req.HeartRate
	}
	if req.RespiratoryRate != nil {
		t.RespiratoryRate = *req.RespiratoryRate
	}
	if req.OxygenSaturation != nil {
		t.OxygenSaturation = *req.OxygenSaturation
	}
	if req.Notes != nil {
		t.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("triaje %d no encontrado", id)
		}
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionUpdate,
		fmt.Sprintf("triaje #%d actualizado", t.ID))
	return t, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*model.Triage, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

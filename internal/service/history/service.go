package history

import (
	"context"
	"fmt"

	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/repository"
	"github.com/rvaldiviezo/clinica-api/internal/service/audit"
)

type Service struct {
	repo    repository.HistoryRepository
	auditor *audit.Service
}

func NewService(repo repository.HistoryRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actor audit.Actor, req *model.CreateHistoryRequest) (*model.HistoryEntry, error) {
	entry := &model.HistoryEntry{
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		Type:          req.Type,
		Notes:         req.Notes,
		CreatedBy:     actor.Name,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionCreate,
		fmt.Sprintf("nota de historia #%d registrada para paciente #%d", entry.ID, entry.PatientID))
	return entry, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*model.HistoryEntry, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

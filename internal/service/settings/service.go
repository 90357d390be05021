package settings

import (
	"context"
	"fmt"

	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/repository"
	"github.com/rvaldiviezo/clinica-api/internal/service/audit"
)

type Service struct {
	repo    repository.SettingsRepository
	auditor *audit.Service
}

func NewService(repo repository.SettingsRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) Get(ctx context.Context) (*model.Settings, error) {
	return s.repo.Get(ctx)
}

func (s *Service) Update(ctx context.Context, actor audit.Actor, req *model.UpdateSettingsRequest) (*model.Settings, error) {
	current, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.LegalName != nil {
		current.LegalName = *req.LegalName
	}
	if req.TaxID != nil {
		current.TaxID = *req.TaxID
	}
	if req.Phone != nil {
		current.Phone = *req.Phone
	}
	if req.Email != nil {
		current.Email = *req.Email
	}
	if req.Address != nil {
		current.Address = *req.Address
	}
	if req.LogoPath != nil {
		current.LogoPath = *req.LogoPath
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionUpdate,
		fmt.Sprintf("datos de la clínica actualizados (%s)", current.LegalName))
	return current, nil
}

package doctor

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
	repo    repository.DoctorRepository
	auditor *audit.Service
}

func NewService(repo repository.DoctorRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actor audit.Actor, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	d := &model.Doctor{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Specialty: req.Specialty,
		License:   req.License,
		Phone:     req.Phone,
		Email:     req.Email,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionCreate,
		fmt.Sprintf("médico #%d (%s %s) registrado", d.ID, d.FirstName, d.LastName))
	return d, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("médico %d no encontrado", id)
		}
		return nil, err
	}
	return d, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, actor audit.Actor, id int64, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		d.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		d.LastName = *req.LastName
	}
	if req.Specialty != nil {
		d.Specialty = *req.Specialty
	}
	if req.License != nil {
		d.License = *req.License
	}
	if req.Phone != nil {
		d.Phone = *req.Phone
	}
	if req.Email != nil {
		d.Email = *req.Email
	}

	if err := s.repo.Update(ctx, d); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("médico %d no encontrado", id)
		}
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionUpdate,
		fmt.Sprintf("médico #%d actualizado", d.ID))
	return d, nil
}

func (s *Service) Delete(ctx context.Context, actor audit.Actor, id int64) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.NotFound("médico %d no encontrado", id)
	}

	s.auditor.Log(ctx, actor, model.AuditActionDelete,
		fmt.Sprintf("médico #%d eliminado", id))
	return nil
}

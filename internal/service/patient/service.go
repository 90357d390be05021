package patient

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
	repo    repository.PatientRepository
	auditor *audit.Service
}

func NewService(repo repository.PatientRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actor audit.Actor, req *model.CreatePatientRequest) (*model.Patient, error) {
	if req.HistoryNumber == "" {
		return nil, apperror.Validation("el número de historia clínica es obligatorio")
	}

	exists, err := s.repo.HistoryNumberExists(ctx, req.HistoryNumber, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to validate history number: %w", err)
	}
	if exists {
		return nil, apperror.Conflict("ya existe un paciente con el número de historia %s", req.HistoryNumber)
	}

	exists, err = s.repo.DocumentNameExists(ctx, req.DocumentNumber, req.FirstName, req.LastName, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to validate document: %w", err)
	}
	if exists {
		return nil, apperror.Conflict("ya existe un paciente con el documento %s y el mismo nombre", req.DocumentNumber)
	}

	p := &model.Patient{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		HistoryNumber:  req.HistoryNumber,
		BirthDate:      req.BirthDate,
		Gender:         req.Gender,
		Phone:          req.Phone,
		Email:          req.Email,
		Department:     req.Department,
		Province:       req.Province,
		District:       req.District,
		Address:        req.Address,
		Summary:        req.Summary,
		Diagnosis:      req.Diagnosis,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionCreate,
		fmt.Sprintf("paciente #%d (%s) registrado", p.ID, p.FullName()))
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Patient, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("paciente %d no encontrado", id)
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Update(ctx context.Context, actor audit.Actor, id int64, req *model.UpdatePatientRequest) (*model.Patient, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.DocumentType != nil {
		p.DocumentType = *req.DocumentType
	}
	if req.DocumentNumber != nil {
		p.DocumentNumber = *req.DocumentNumber
	}
	if req.BirthDate != nil {
		p.BirthDate = *req.BirthDate
	}
	if req.Gender != nil {
		p.Gender = *req.Gender
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.Department != nil {
		p.Department = *req.Department
	}
	if req.Province != nil {
		p.Province = *req.Province
	}
	if req.District != nil {
		p.District = *req.District
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Summary != nil {
		p.Summary = *req.Summary
	}
	if req.Diagnosis != nil {
		p.Diagnosis = *req.Diagnosis
	}

	exists, err := s.repo.DocumentNameExists(ctx, p.DocumentNumber, p.FirstName, p.LastName, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate document: %w", err)
	}
	if exists {
		return nil, apperror.Conflict("ya existe un paciente con el documento %s y el mismo nombre", p.DocumentNumber)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("paciente %d no encontrado", id)
		}
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionUpdate,
		fmt.Sprintf("paciente #%d actualizado", p.ID))
	return p, nil
}

// Delete refuses to remove a patient that is still referenced. Clinical
// records never disappear implicitly: dependents must be cleaned up first.
// The checks run in a fixed order (appointments, prescriptions, exams) so
// the conflict message is deterministic.
func (s *Service) Delete(ctx context.Context, actor audit.Actor, id int64) error {
	rows, dependency, err := s.repo.DeleteGuarded(ctx, id)
	if err != nil {
		return err
	}
	if dependency != "" {
		return apperror.Conflict("el paciente tiene %s asociados y no puede ser eliminado", dependencyLabel(dependency))
	}
	if rows == 0 {
		return apperror.NotFound("paciente %d no encontrado", id)
	}

	s.auditor.Log(ctx, actor, model.AuditActionDelete,
		fmt.Sprintf("paciente #%d eliminado", id))
	return nil
}

func dependencyLabel(dependency string) string {
	switch dependency {
	case "appointments":
		return "citas"
	case "prescriptions":
		return "recetas"
	case "exams":
		return "exámenes"
	}
	return dependency
}

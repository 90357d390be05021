package report

import (
	"context"

	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/repository"
)

// Service produces the read-only filtered exports behind /reports.
type Service struct {
	patients     repository.PatientRepository
	appointments repository.AppointmentRepository
	exams        repository.ExamRepository
}

func NewService(patients repository.PatientRepository, appointments repository.AppointmentRepository,
	exams repository.ExamRepository) *Service {
	return &Service{patients: patients, appointments: appointments, exams: exams}
}

func (s *Service) Patients(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	return s.patients.List(ctx, filters)
}

func (s *Service) Appointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return s.appointments.List(ctx, filters)
}

func (s *Service) Exams(ctx context.Context, filters *model.ExamFilters) ([]*model.Exam, error) {
	return s.exams.List(ctx, filters)
}

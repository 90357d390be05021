package exam

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rvaldiviezo/clinica-api/internal/apperror"
	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/repository"
	"github.com/rvaldiviezo/clinica-api/internal/service/audit"
	"github.com/rvaldiviezo/clinica-api/internal/storage"
)

type Service struct {
	repo        repository.ExamRepository
	patientRepo repository.PatientRepository
	files       *storage.Store
	auditor     *audit.Service
}

func NewService(repo repository.ExamRepository, patientRepo repository.PatientRepository,
	files *storage.Store, auditor *audit.Service) *Service {
	return &Service{repo: repo, patientRepo: patientRepo, files: files, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actor audit.Actor, req *model.CreateExamRequest) (*model.Exam, error) {
	e := &model.Exam{
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		Type:          req.Type,
		Reason:        req.Reason,
		Status:        model.ExamStatusRequested,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionCreate,
		fmt.Sprintf("examen #%d (%s) solicitado", e.ID, e.Type))
	return e, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Exam, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("examen %d no encontrado", id)
		}
		return nil, err
	}
	return e, nil
}

func (s *Service) List(ctx context.Context, filters *model.ExamFilters) ([]*model.Exam, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Update(ctx context.Context, actor audit.Actor, id int64, req *model.UpdateExamRequest) (*model.Exam, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		e.Type = *req.Type
	}
	if req.Reason != nil {
		e.Reason = *req.Reason
	}
	if req.Status != nil {
		e.Status = *req.Status
	}

	if err := s.repo.Update(ctx, e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("examen %d no encontrado", id)
		}
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionUpdate,
		fmt.Sprintf("examen #%d actualizado", e.ID))
	return e, nil
}

func (s *Service) ListResults(ctx context.Context, examID int64) ([]*model.ExamResult, error) {
	return s.repo.ListResults(ctx, examID)
}

func (s *Service) GetResult(ctx context.Context, resultID int64) (*model.ExamResult, error) {
	r, err := s.repo.GetResult(ctx, resultID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("resultado %d no encontrado", resultID)
		}
		return nil, err
	}
	return r, nil
}

// ResultFilePath resolves the absolute path of a stored result file.
func (s *Service) ResultFilePath(relPath string) string {
	return s.files.AbsPath(relPath)
}

// AttachResult files an uploaded result under the exams directory and
// records it. The filename is built from the patient and exam type when
// those can be resolved; when they cannot, a timestamp-based name is used
// instead so the upload is never lost. Marking the exam as "Resultados
// Listos" is best-effort: an unreachable exam row skips the update.
func (s *Service) AttachResult(ctx context.Context, actor audit.Actor, examID int64,
	stagedPath, originalName, note string) (*model.ExamResult, error) {

	suffix := uuid.New().String()[:8]
	ext := filepath.Ext(originalName)

	var filename string
	if e, err := s.repo.Get(ctx, examID); err == nil {
		if p, err := s.patientRepo.Get(ctx, e.PatientID); err == nil {
			filename = fmt.Sprintf("%s_%s_%s_%s%s",
				storage.SanitizeName(p.FullName()),
				storage.SanitizeName(e.Type),
				time.Now().Format("20060102"), suffix, ext)
		}
	}
	if filename == "" {
		filename = fmt.Sprintf("resultado_%d_%s%s", time.Now().Unix(), suffix, ext)
	}

	relPath, err := s.files.Save(storage.CategoryExams, filename, stagedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to store exam result: %w", err)
	}

	result := &model.ExamResult{
		ExamID:       examID,
		FilePath:     relPath,
		OriginalName: originalName,
		Note:         note,
	}
	if err := s.repo.CreateResult(ctx, result); err != nil {
		s.files.Remove(relPath)
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, examID, model.ExamStatusResultsReady); err != nil {
		log.Warn().Err(err).Int64("exam_id", examID).Msg("could not mark exam results ready")
	}

	s.auditor.Log(ctx, actor, model.AuditActionUpload,
		fmt.Sprintf("resultado #%d adjuntado al examen #%d", result.ID, examID))
	return result, nil
}

// DeleteResult removes the stored file first (a file already gone is
// fine), then the row.
func (s *Service) DeleteResult(ctx context.Context, actor audit.Actor, resultID int64) error {
	result, err := s.repo.GetResult(ctx, resultID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.NotFound("resultado %d no encontrado", resultID)
		}
		return err
	}

	if err := s.files.Remove(result.FilePath); err != nil {
		return err
	}
	if _, err := s.repo.DeleteResult(ctx, resultID); err != nil {
		return err
	}

	s.auditor.Log(ctx, actor, model.AuditActionDelete,
		fmt.Sprintf("resultado #%d del examen #%d eliminado", resultID, result.ExamID))
	return nil
}

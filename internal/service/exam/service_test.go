package exam

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvaldiviezo/clinica-api/internal/apperror"
	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/repository"
	"github.com/rvaldiviezo/clinica-api/internal/repository/sqlite"
	"github.com/rvaldiviezo/clinica-api/internal/service/audit"
	"github.com/rvaldiviezo/clinica-api/internal/storage"
)

type testEnv struct {
	svc         *Service
	files       *storage.Store
	patientRepo repository.PatientRepository
	actor       audit.Actor
	ctx         context.Context
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	files, err := storage.New(t.TempDir())
	require.NoError(t, err)

	patientRepo := sqlite.NewPatientRepository(db)
	auditor := audit.NewService(sqlite.NewAuditRepository(db))
	svc := NewService(sqlite.NewExamRepository(db), patientRepo, files, auditor)

	return &testEnv{
		svc:         svc,
		files:       files,
		patientRepo: patientRepo,
		actor:       audit.Actor{ID: 1, Name: "admin"},
		ctx:         context.Background(),
	}
}

func (e *testEnv) stageFile(t *testing.T, name, content string) string {
	t.Helper()
	path := e.files.TempPath(name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (e *testEnv) createExam(t *testing.T) *model.Exam {
	t.Helper()
	require.NoError(t, e.patientRepo.Create(e.ctx, &model.Patient{
		FirstName:      "María",
		LastName:       "García",
		DocumentType:   "DNI",
		DocumentNumber: "45678912",
		HistoryNumber:  "HC-0001",
	}))

	exam, err := e.svc.Create(e.ctx, e.actor, &model.CreateExamRequest{
		PatientID: 1,
		Type:      "Hemograma Completo",
		Reason:    "control",
	})
	require.NoError(t, err)
	return exam
}

func TestCreateStartsRequested(t *testing.T) {
	e := newTestEnv(t)

	exam := e.createExam(t)
	assert.Equal(t, model.ExamStatusRequested, exam.Status)
}

func TestAttachResultStoresFileAndMarksReady(t *testing.T) {
	e := newTestEnv(t)
	exam := e.createExam(t)

	staged := e.stageFile(t, "staged.pdf", "contenido del resultado")
	result, err := e.svc.AttachResult(e.ctx, e.actor, exam.ID, staged, "resultado.pdf", "ver valores")
	require.NoError(t, err)

	assert.Equal(t, exam.ID, result.ExamID)
	assert.Equal(t, "resultado.pdf", result.OriginalName)
	assert.True(t, strings.HasPrefix(result.FilePath, storage.CategoryExams+string(os.PathSeparator)))
	assert.Contains(t, result.FilePath, "Mar_a_Garc_a")
	assert.Contains(t, result.FilePath, "Hemograma_Completo")

	// The staged file was moved, not copied.
	_, err = os.Stat(staged)
	assert.True(t, os.IsNotExist(err))

	content, err := os.ReadFile(e.files.AbsPath(result.FilePath))
	require.NoError(t, err)
	assert.Equal(t, "contenido del resultado", string(content))

	updated, err := e.svc.Get(e.ctx, exam.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ExamStatusResultsReady, updated.Status)
}

func TestAttachResultDegradedFilename(t *testing.T) {
	e := newTestEnv(t)

	// No exam row: the lookup fails but the upload is still stored under a
	// timestamp-based name.
	staged := e.stageFile(t, "staged.pdf", "datos")
	result, err := e.svc.AttachResult(e.ctx, e.actor, 42, staged, "resultado.pdf", "")
	require.NoError(t, err)

	base := filepath.Base(result.FilePath)
	assert.True(t, strings.HasPrefix(base, "resultado_"))
	assert.True(t, strings.HasSuffix(base, ".pdf"))
}

func TestDeleteResultRemovesFileAndRow(t *testing.T) {
	e := newTestEnv(t)
	exam := e.createExam(t)

	staged := e.stageFile(t, "staged.pdf", "datos")
	result, err := e.svc.AttachResult(e.ctx, e.actor, exam.ID, staged, "resultado.pdf", "")
	require.NoError(t, err)

	require.NoError(t, e.svc.DeleteResult(e.ctx, e.actor, result.ID))

	_, err = os.Stat(e.files.AbsPath(result.FilePath))
	assert.True(t, os.IsNotExist(err))

	_, err = e.svc.GetResult(e.ctx, result.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteResultToleratesMissingFile(t *testing.T) {
	e := newTestEnv(t)
	exam := e.createExam(t)

	staged := e.stageFile(t, "staged.pdf", "datos")
	result, err := e.svc.AttachResult(e.ctx, e.actor, exam.ID, staged, "resultado.pdf", "")
	require.NoError(t, err)

	require.NoError(t, os.Remove(e.files.AbsPath(result.FilePath)))
	assert.NoError(t, e.svc.DeleteResult(e.ctx, e.actor, result.ID))
}

package appointment

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvaldiviezo/clinica-api/internal/apperror"
	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/repository/sqlite"
	"github.com/rvaldiviezo/clinica-api/internal/service/audit"
	"github.com/rvaldiviezo/clinica-api/internal/service/authz"
)

type testEnv struct {
	db    *sqlx.DB
	svc   *Service
	authz *authz.Service
	actor audit.Actor
	ctx   context.Context
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	auditor := audit.NewService(sqlite.NewAuditRepository(db))
	authzSvc := authz.NewService(sqlite.NewRBACRepository(db), auditor)
	svc := NewService(sqlite.NewAppointmentRepository(db), authzSvc, auditor)

	return &testEnv{
		db:    db,
		svc:   svc,
		authz: authzSvc,
		actor: audit.Actor{ID: 1, Name: "Dr. Prueba"},
		ctx:   context.Background(),
	}
}

func (e *testEnv) createAppointment(t *testing.T, status string) *model.Appointment {
	t.Helper()
	a, err := e.svc.Create(e.ctx, e.actor, &model.CreateAppointmentRequest{
		Date:   "2026-09-15",
		Time:   "10:30",
		Type:   "Consulta",
		Status: status,
	})
	require.NoError(t, err)
	return a
}

func (e *testEnv) attachDependents(t *testing.T, appointmentID int64) {
	t.Helper()
	triageRepo := sqlite.NewTriageRepository(e.db)
	examRepo := sqlite.NewExamRepository(e.db)
	prescriptionRepo := sqlite.NewPrescriptionRepository(e.db)
	historyRepo := sqlite.NewHistoryRepository(e.db)

	require.NoError(t, triageRepo.Create(e.ctx, &model.Triage{PatientID: 1, AppointmentID: &appointmentID, Weight: 70}))

	exam := &model.Exam{PatientID: 1, AppointmentID: &appointmentID, Type: "Hemograma", Status: model.ExamStatusRequested}
	require.NoError(t, examRepo.Create(e.ctx, exam))
	require.NoError(t, examRepo.CreateResult(e.ctx, &model.ExamResult{ExamID: exam.ID, FilePath: "exams/x.pdf", OriginalName: "x.pdf"}))

	require.NoError(t, prescriptionRepo.Create(e.ctx, &model.Prescription{
		PatientID: 1, AppointmentID: &appointmentID,
		Medications: model.Medications{{Name: "Paracetamol", Dose: "500mg"}},
	}))
	require.NoError(t, historyRepo.Create(e.ctx, &model.HistoryEntry{PatientID: 1, AppointmentID: &appointmentID, Notes: "nota"}))
}

func (e *testEnv) countRows(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func TestCreateDefaultsToScheduled(t *testing.T) {
	e := newTestEnv(t)

	a := e.createAppointment(t, "")
	assert.Equal(t, model.AppointmentStatusScheduled, a.Status)
	require.Len(t, a.StatusHistory, 1)
	assert.Equal(t, model.AppointmentStatusScheduled, a.StatusHistory[0].Status)
	assert.Equal(t, "Dr. Prueba", a.StatusHistory[0].ChangedBy)
}

func TestUpdateAppendsStatusHistoryOnlyOnChange(t *testing.T) {
	e := newTestEnv(t)
	a := e.createAppointment(t, "")

	// Same status: no new entry.
	same := a.Status
	updated, err := e.svc.Update(e.ctx, e.actor, a.ID, &model.UpdateAppointmentRequest{Status: &same})
	require.NoError(t, err)
	assert.Len(t, updated.StatusHistory, 1)

	confirmed := model.AppointmentStatusConfirmed
	updated, err = e.svc.Update(e.ctx, e.actor, a.ID, &model.UpdateAppointmentRequest{Status: &confirmed})
	require.NoError(t, err)
	require.Len(t, updated.StatusHistory, 2)
	assert.Equal(t, model.AppointmentStatusConfirmed, updated.StatusHistory[1].Status)
}

func TestDeleteCascadesDependents(t *testing.T) {
	e := newTestEnv(t)
	a := e.createAppointment(t, "")
	e.attachDependents(t, a.ID)

	rows, err := e.svc.Delete(e.ctx, e.actor, model.RoleAdmin, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	assert.Equal(t, 0, e.countRows(t, "appointments"))
	assert.Equal(t, 0, e.countRows(t, "triage"))
	assert.Equal(t, 0, e.countRows(t, "exams"))
	assert.Equal(t, 0, e.countRows(t, "exam_results"))
	assert.Equal(t, 0, e.countRows(t, "prescriptions"))
	assert.Equal(t, 0, e.countRows(t, "history"))
}

func TestDeleteTerminalRequiresHistoryPermission(t *testing.T) {
	e := newTestEnv(t)
	a := e.createAppointment(t, model.AppointmentStatusCancelled)

	// delete_appointments alone is not enough for a terminal appointment.
	require.NoError(t, e.authz.Grant(e.ctx, e.actor, "medico", model.PermDeleteAppointments))
	_, err := e.svc.Delete(e.ctx, e.actor, "medico", a.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsPermissionDenied(err))

	require.NoError(t, e.authz.Grant(e.ctx, e.actor, "medico", model.PermDeleteHistoryAppointments))
	_, err = e.svc.Delete(e.ctx, e.actor, "medico", a.ID)
	assert.NoError(t, err)
}

func TestDeleteActiveRequiresDeletePermission(t *testing.T) {
	e := newTestEnv(t)
	a := e.createAppointment(t, "")

	require.NoError(t, e.authz.Grant(e.ctx, e.actor, "medico", model.PermDeleteHistoryAppointments))
	_, err := e.svc.Delete(e.ctx, e.actor, "medico", a.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsPermissionDenied(err))

	require.NoError(t, e.authz.Grant(e.ctx, e.actor, "medico", model.PermDeleteAppointments))
	_, err = e.svc.Delete(e.ctx, e.actor, "medico", a.ID)
	assert.NoError(t, err)
}

func TestDeleteMissingAppointment(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.svc.Delete(e.ctx, e.actor, model.RoleAdmin, 999)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

package patient

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
)

var testActor = audit.Actor{ID: 1, Name: "admin"}

func newTestService(t *testing.T) (*Service, *sqlx.DB) {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	auditor := audit.NewService(sqlite.NewAuditRepository(db))
	return NewService(sqlite.NewPatientRepository(db), auditor), db
}

func createRequest(historyNumber string) *model.CreatePatientRequest {
	return &model.CreatePatientRequest{
		FirstName:      "María",
		LastName:       "García",
		DocumentType:   "DNI",
		DocumentNumber: "45678912",
		HistoryNumber:  historyNumber,
	}
}

func TestCreateRejectsDuplicateHistoryNumber(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, testActor, createRequest("HC-0001"))
	require.NoError(t, err)

	req := createRequest("HC-0001")
	req.FirstName = "Otra"
	req.DocumentNumber = "11111111"
	_, err = svc.Create(ctx, testActor, req)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestCreateRejectsDuplicateDocumentAndName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, testActor, createRequest("HC-0001"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, testActor, createRequest("HC-0002"))
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestCreateRequiresHistoryNumber(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), testActor, createRequest(""))
	require.Error(t, err)
	assert.Equal(t, 400, apperror.Status(err))
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, testActor, createRequest("HC-0001"))
	require.NoError(t, err)

	phone := "999888777"
	updated, err := svc.Update(ctx, testActor, p.ID, &model.UpdatePatientRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "999888777", updated.Phone)
	assert.Equal(t, "María", updated.FirstName)
	assert.Equal(t, "HC-0001", updated.HistoryNumber)
}

func TestDeleteRefusedWhileReferenced(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, testActor, createRequest("HC-0001"))
	require.NoError(t, err)

	appointmentRepo := sqlite.NewAppointmentRepository(db)
	require.NoError(t, appointmentRepo.Create(ctx, &model.Appointment{
		PatientID: &p.ID,
		Date:      "2026-09-15",
		Time:      "10:00",
		Status:    model.AppointmentStatusScheduled,
	}))

	err = svc.Delete(ctx, testActor, p.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	assert.Contains(t, err.Error(), "citas")

	// Still there.
	_, err = svc.Get(ctx, p.ID)
	assert.NoError(t, err)
}

func TestDeleteUnreferencedPatient(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, testActor, createRequest("HC-0001"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, testActor, p.ID))

	_, err = svc.Get(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteMissingPatient(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Delete(context.Background(), testActor, 999)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

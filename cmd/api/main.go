package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rvaldiviezo/clinica-api/internal/config"
	"github.com/rvaldiviezo/clinica-api/internal/handler"
	appointmentHandler "github.com/rvaldiviezo/clinica-api/internal/handler/appointment"
	auditHandler "github.com/rvaldiviezo/clinica-api/internal/handler/audit"
	authHandler "github.com/rvaldiviezo/clinica-api/internal/handler/auth"
	backupHandler "github.com/rvaldiviezo/clinica-api/internal/handler/backup"
	doctorHandler "github.com/rvaldiviezo/clinica-api/internal/handler/doctor"
	examHandler "github.com/rvaldiviezo/clinica-api/internal/handler/exam"
	historyHandler "github.com/rvaldiviezo/clinica-api/internal/handler/history"
	patientHandler "github.com/rvaldiviezo/clinica-api/internal/handler/patient"
	permissionHandler "github.com/rvaldiviezo/clinica-api/internal/handler/permission"
	prescriptionHandler "github.com/rvaldiviezo/clinica-api/internal/handler/prescription"
	reportHandler "github.com/rvaldiviezo/clinica-api/internal/handler/report"
	settingsHandler "github.com/rvaldiviezo/clinica-api/internal/handler/settings"
	triageHandler "github.com/rvaldiviezo/clinica-api/internal/handler/triage"
	"github.com/rvaldiviezo/clinica-api/internal/middleware"
	"github.com/rvaldiviezo/clinica-api/internal/repository/sqlite"
	"github.com/rvaldiviezo/clinica-api/internal/router"
	appointmentService "github.com/rvaldiviezo/clinica-api/internal/service/appointment"
	auditService "github.com/rvaldiviezo/clinica-api/internal/service/audit"
	authService "github.com/rvaldiviezo/clinica-api/internal/service/auth"
	"github.com/rvaldiviezo/clinica-api/internal/service/authz"
	backupService "github.com/rvaldiviezo/clinica-api/internal/service/backup"
	doctorService "github.com/rvaldiviezo/clinica-api/internal/service/doctor"
	examService "github.com/rvaldiviezo/clinica-api/internal/service/exam"
	historyService "github.com/rvaldiviezo/clinica-api/internal/service/history"
	patientService "github.com/rvaldiviezo/clinica-api/internal/service/patient"
	prescriptionService "github.com/rvaldiviezo/clinica-api/internal/service/prescription"
	reportService "github.com/rvaldiviezo/clinica-api/internal/service/report"
	settingsService "github.com/rvaldiviezo/clinica-api/internal/service/settings"
	triageService "github.com/rvaldiviezo/clinica-api/internal/service/triage"
	"github.com/rvaldiviezo/clinica-api/internal/storage"
	"github.com/rvaldiviezo/clinica-api/internal/worker"
	"github.com/rvaldiviezo/clinica-api/pkg/auth"
	"github.com/rvaldiviezo/clinica-api/pkg/metrics"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	files, err := storage.New(cfg.Uploads.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize upload storage")
	}

	patientRepo := sqlite.NewPatientRepository(db)
	appointmentRepo := sqlite.NewAppointmentRepository(db)
	triageRepo := sqlite.NewTriageRepository(db)
	historyRepo := sqlite.NewHistoryRepository(db)
	prescriptionRepo := sqlite.NewPrescriptionRepository(db)
	examRepo := sqlite.NewExamRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	rbacRepo := sqlite.NewRBACRepository(db)
	auditRepo := sqlite.NewAuditRepository(db)
	settingsRepo := sqlite.NewSettingsRepository(db)
	doctorRepo := sqlite.NewDoctorRepository(db)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())

	auditor := auditService.NewService(auditRepo)
	authzSvc := authz.NewService(rbacRepo, auditor)
	authSvc := authService.NewService(userRepo, jwtSvc, auditor)
	patientSvc := patientService.NewService(patientRepo, auditor)
	appointmentSvc := appointmentService.NewService(appointmentRepo, authzSvc, auditor)
	triageSvc := triageService.NewService(triageRepo, auditor)
	historySvc := historyService.NewService(historyRepo, auditor)
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo, auditor)
	examSvc := examService.NewService(examRepo, patientRepo, files, auditor)
	reportSvc := reportService.NewService(patientRepo, appointmentRepo, examRepo)
	settingsSvc := settingsService.NewService(settingsRepo, auditor)
	doctorSvc := doctorService.NewService(doctorRepo, auditor)
	backupSvc := backupService.NewService(cfg.Database.Path, cfg.Backup.Dir, auditor)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := authSvc.EnsureDefaultAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin account")
	}

	handler.RegisterValidators()

	authMW := middleware.NewAuthMiddleware(authSvc, authzSvc)
	m := metrics.New("clinica")

	r := router.New(
		router.Config{
			RateRPS:   cfg.Rate.RPS,
			RateBurst: cfg.Rate.Burst,
			CORS:      middleware.DefaultCORSConfig(),
		},
		m,
		authMW,
		handler.NewHealthHandler(db),
		[]router.PublicHandler{
			authHandler.NewHandler(authSvc),
			patientHandler.NewHandler(patientSvc),
		},
		[]router.Handler{
			appointmentHandler.NewHandler(appointmentSvc),
			triageHandler.NewHandler(triageSvc),
			historyHandler.NewHandler(historySvc),
			prescriptionHandler.NewHandler(prescriptionSvc),
			examHandler.NewHandler(examSvc, files),
			permissionHandler.NewHandler(authzSvc),
			reportHandler.NewHandler(reportSvc),
			settingsHandler.NewHandler(settingsSvc),
			doctorHandler.NewHandler(doctorSvc),
			auditHandler.NewHandler(auditor),
			backupHandler.NewHandler(backupSvc),
		},
	)
	r.Setup()

	cleanup := worker.NewAuditCleanup(auditor, cfg.Audit.Retention())
	go cleanup.Start(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}

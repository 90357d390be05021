package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rvaldiviezo/clinica-api/internal/service/audit"
)

const pruneInterval = 24 * time.Hour

// AuditCleanup prunes expired audit log entries once a day.
type AuditCleanup struct {
	auditor   *audit.Service
	retention time.Duration
}

func NewAuditCleanup(auditor *audit.Service, retention time.Duration) *AuditCleanup {
	return &AuditCleanup{auditor: auditor, retention: retention}
}

// Start runs one pass immediately, then once per interval until ctx is done.
func (w *AuditCleanup) Start(ctx context.Context) {
	w.run(ctx)

	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.run(ctx)
		}
	}
}

func (w *AuditCleanup) run(ctx context.Context) {
	removed, err := w.auditor.Prune(ctx, w.retention)
	if err != nil {
		log.Error().Err(err).Msg("audit log prune failed")
		return
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Msg("audit log prune completed")
	}
}

package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/repository"
)

// Actor identifies who performed an audited action.
type Actor struct {
	ID   int64
	Name string
}

// System is the actor recorded for actions not triggered by a user.
var System = Actor{Name: "sistema"}

type Service struct {
	repo repository.AuditRepository
}

func NewService(repo repository.AuditRepository) *Service {
	return &Service{repo: repo}
}

// Log appends an audit entry. Logging is best-effort: a failure is
// reported to the console and never blocks the primary operation.
func (s *Service) Log(ctx context.Context, actor Actor, action, details string) {
	entry := &model.AuditLog{
		UserID:   actor.ID,
		UserName: actor.Name,
		Action:   action,
		Details:  details,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("failed to write audit log")
	}
}

func (s *Service) List(ctx context.Context, filters *model.AuditFilters) ([]*model.AuditLog, error) {
	return s.repo.List(ctx, filters)
}

// Prune removes entries older than the retention period and returns the
// number removed. When anything was removed, the pruning itself is logged;
// a pass that removes nothing leaves no trace.
func (s *Service) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)

	removed, err := s.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune audit logs: %w", err)
	}
	if removed > 0 {
		s.Log(ctx, System, model.AuditActionPruneLogs,
			fmt.Sprintf("se eliminaron %d registros anteriores a %s", removed, cutoff.Format("2006-01-02")))
	}
	return removed, nil
}

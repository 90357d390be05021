package authz

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/rvaldiviezo/clinica-api/internal/apperror"
	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/repository"
	"github.com/rvaldiviezo/clinica-api/internal/service/audit"
)

const (
	cacheTTL     = 30 * time.Second
	cacheCleanup = 5 * time.Minute
)

// Service answers "may this role do that?". The admin bypass lives here
// and only here: callers must never special-case the admin role themselves.
type Service struct {
	repo    repository.RBACRepository
	auditor *audit.Service
	cache   *gocache.Cache
}

func NewService(repo repository.RBACRepository, auditor *audit.Service) *Service {
	return &Service{
		repo:    repo,
		auditor: auditor,
		cache:   gocache.New(cacheTTL, cacheCleanup),
	}
}

// IsAllowed reports whether role holds permissionKey. The admin role holds
// every permission, including keys absent from the catalog. For any other
// role the answer is exactly "does a grant row exist".
func (s *Service) IsAllowed(ctx context.Context, role, permissionKey string) (bool, error) {
	if role == model.RoleAdmin {
		return true, nil
	}

	grants, err := s.roleGrants(ctx, role)
	if err != nil {
		return false, err
	}
	_, ok := grants[permissionKey]
	return ok, nil
}

// Require is IsAllowed returning a PermissionDenied error on refusal.
func (s *Service) Require(ctx context.Context, role, permissionKey string) error {
	allowed, err := s.IsAllowed(ctx, role, permissionKey)
	if err != nil {
		return fmt.Errorf("failed to check permission: %w", err)
	}
	if !allowed {
		return apperror.PermissionDenied("el rol %q no tiene el permiso %q", role, permissionKey)
	}
	return nil
}

// Grant is idempotent; granting an unknown permission key is allowed, the
// catalog is advisory only.
func (s *Service) Grant(ctx context.Context, actor audit.Actor, role, permissionKey string) error {
	if err := s.repo.Grant(ctx, role, permissionKey); err != nil {
		return err
	}
	s.cache.Delete(role)
	s.auditor.Log(ctx, actor, model.AuditActionGrantPerm,
		fmt.Sprintf("permiso %q otorgado al rol %q", permissionKey, role))
	return nil
}

// Revoke is idempotent; revoking an absent grant is a no-op.
func (s *Service) Revoke(ctx context.Context, actor audit.Actor, role, permissionKey string) error {
	if err := s.repo.Revoke(ctx, role, permissionKey); err != nil {
		return err
	}
	s.cache.Delete(role)
	s.auditor.Log(ctx, actor, model.AuditActionRevokePerm,
		fmt.Sprintf("permiso %q revocado del rol %q", permissionKey, role))
	return nil
}

func (s *Service) ListGrants(ctx context.Context) ([]*model.Grant, error) {
	return s.repo.ListGrants(ctx)
}

func (s *Service) ListPermissions(ctx context.Context) ([]*model.Permission, error) {
	return s.repo.ListPermissions(ctx)
}

func (s *Service) roleGrants(ctx context.Context, role string) (map[string]struct{}, error) {
	if cached, ok := s.cache.Get(role); ok {
		return cached.(map[string]struct{}), nil
	}

	keys, err := s.repo.ListRoleGrants(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to load role grants: %w", err)
	}
	grants := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		grants[key] = struct{}{}
	}
	s.cache.Set(role, grants, gocache.DefaultExpiration)
	return grants, nil
}

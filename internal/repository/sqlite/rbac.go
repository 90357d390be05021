package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rvaldiviezo/clinica-api/internal/model"
	"github.com/rvaldiviezo/clinica-api/internal/repository"
)

type rbacRepository struct {
	db *sqlx.DB
}

func NewRBACRepository(db *sqlx.DB) repository.RBACRepository {
	return &rbacRepository{db: db}
}

// Grant is idempotent: inserting an existing (role, key) pair is a no-op.
func (r *rbacRepository) Grant(ctx context.Context, role, permissionKey string) error {
	query := `
		INSERT INTO role_permissions (role, permission_key)
		VALUES (?, ?)
		ON CONFLICT (role, permission_key) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, role, permissionKey); err != nil {
		return fmt.Errorf("failed to grant permission: %w", err)
	}
	return nil
}

// Revoke is idempotent: removing an absent grant is a no-op.
func (r *rbacRepository) Revoke(ctx context.Context, role, permissionKey string) error {
	query := `DELETE FROM role_permissions WHERE role = ? AND permission_key = ?`
	if _, err := r.db.ExecContext(ctx, query, role, permissionKey); err != nil {
		return fmt.Errorf("failed to revoke permission: %w", err)
	}
	return nil
}

func (r *rbacRepository) HasGrant(ctx context.Context, role, permissionKey string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM role_permissions WHERE role = ? AND permission_key = ?)`
	if err := r.db.GetContext(ctx, &exists, query, role, permissionKey); err != nil {
		return false, fmt.Errorf("failed to check grant: %w", err)
	}
	return exists, nil
}

func (r *rbacRepository) ListGrants(ctx context.Context) ([]*model.Grant, error) {
	var grants []*model.Grant
	query := `SELECT role, permission_key FROM role_permissions ORDER BY role, permission_key`
	if err := r.db.SelectContext(ctx, &grants, query); err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}
	return grants, nil
}

func (r *rbacRepository) ListRoleGrants(ctx context.Context, role string) ([]string, error) {
	var keys []string
	query := `SELECT permission_key FROM role_permissions WHERE role = ? ORDER BY permission_key`
	if err := r.db.SelectContext(ctx, &keys, query, role); err != nil {
		return nil, fmt.Errorf("failed to list role grants: %w", err)
	}
	return keys, nil
}

func (r *rbacRepository) ListPermissions(ctx context.Context) ([]*model.Permission, error) {
	var permissions []*model.Permission
	query := `SELECT key, description FROM permissions ORDER BY key`
	if err := r.db.SelectContext(ctx, &permissions, query); err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return permissions, nil
}

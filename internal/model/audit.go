package model

import "time"

type AuditLog struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	UserName  string    `db:"user_name" json:"user_name"`
	Action    string    `db:"action" json:"action"`
	Details   string    `db:"details" json:"details"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

const (
	AuditActionLogin      = "login"
	AuditActionCreate     = "create"
	AuditActionUpdate     = "update"
	AuditActionDelete     = "delete"
	AuditActionUpload     = "upload"
	AuditActionBackup     = "backup"
	AuditActionPruneLogs  = "prune_logs"
	AuditActionGrantPerm  = "grant_permission"
	AuditActionRevokePerm = "revoke_permission"
)

type AuditFilters struct {
	UserID   *int64 `form:"user_id"`
	Action   string `form:"action"`
	FromDate string `form:"from"`
	ToDate   string `form:"to"`
	Limit    int    `form:"limit"`
}

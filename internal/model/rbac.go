package model

// Permission keys. The catalog below is advisory metadata for the settings
// UI; a grant may reference a key that has no catalog row.
const (
	PermViewDashboardStats = "view_dashboard_stats"
	PermManageUsers        = "manage_users"
	PermManagePermissions  = "manage_permissions"
	PermViewPatients       = "view_patients"
	PermManagePatients     = "manage_patients"
	PermDeletePatients     = "delete_patients"
	PermManageAppointments = "manage_appointments"
	PermDeleteAppointments = "delete_appointments"
	// Deleting an appointment already in a terminal status (Cancelado or
	// Realizado) requires this instead of delete_appointments.
	PermDeleteHistoryAppointments = "delete_history_appointments"
	PermManageTriage              = "manage_triage"
	PermManageHistory             = "manage_history"
	PermManagePrescriptions       = "manage_prescriptions"
	PermManageExams               = "manage_exams"
	PermDeleteExams               = "delete_exams"
	PermManageDoctors             = "manage_doctors"
	PermViewReports               = "view_reports"
	PermManageBackup              = "manage_backup"
	PermManageSettings            = "manage_settings"
	PermViewAuditLogs             = "view_audit_logs"
)

// Permission is a catalog entry describing one grantable capability.
type Permission struct {
	Key         string `db:"key" json:"key"`
	Description string `db:"description" json:"description"`
}

// Grant allows one permission key to one role. Flat allow-list: no
// hierarchy, no deny rules.
type Grant struct {
	Role          string `db:"role" json:"role"`
	PermissionKey string `db:"permission_key" json:"permission_key"`
}

type GrantRequest struct {
	Role          string `json:"role" binding:"required"`
	PermissionKey string `json:"permission_key" binding:"required"`
}

package model

import "time"

// HistoryEntry is a free-text clinical note in the patient's record.
type HistoryEntry struct {
	ID            int64     `db:"id" json:"id"`
	PatientID     int64     `db:"patient_id" json:"patient_id"`
	AppointmentID *int64    `db:"appointment_id" json:"appointment_id"`
	Type          string    `db:"type" json:"type"`
	Notes         string    `db:"notes" json:"notes"`
	CreatedBy     string    `db:"created_by" json:"created_by"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type CreateHistoryRequest struct {
	PatientID     int64  `json:"patient_id" binding:"required"`
	AppointmentID *int64 `json:"appointment_id"`
	Type          string `json:"type"`
	Notes         string `json:"notes" binding:"required"`
}

package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Appointment statuses form an open set; these are the ones the UI offers.
// Cancelado and Realizado are terminal: once there, the appointment is
// historical and its deletion is gated by a different permission.
const (
	AppointmentStatusScheduled = "Programado"
	AppointmentStatusConfirmed = "Confirmado"
	AppointmentStatusCompleted = "Realizado"
	AppointmentStatusCancelled = "Cancelado"
)

func IsTerminalStatus(status string) bool {
	return status == AppointmentStatusCancelled || status == AppointmentStatusCompleted
}

// StatusChange is one entry in the appointment's embedded status log.
type StatusChange struct {
	Status    string    `json:"status"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

// StatusHistory is stored as a JSON text column.
type StatusHistory []StatusChange

func (h StatusHistory) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	b, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (h *StatusHistory) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*h = nil
		return nil
	case []byte:
		return json.Unmarshal(v, h)
	case string:
		return json.Unmarshal([]byte(v), h)
	default:
		return fmt.Errorf("unsupported status history type %T", src)
	}
}

type Appointment struct {
	ID            int64         `db:"id" json:"id"`
	PatientID     *int64        `db:"patient_id" json:"patient_id"`
	Date          string        `db:"date" json:"date"`
	Time          string        `db:"time" json:"time"`
	Type          string        `db:"type" json:"type"`
	Status        string        `db:"status" json:"status"`
	Notes         string        `db:"notes" json:"notes"`
	Diagnosis     string        `db:"diagnosis" json:"diagnosis"`
	StatusHistory StatusHistory `db:"status_history" json:"status_history"`
	CreatedBy     string        `db:"created_by" json:"created_by"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

type CreateAppointmentRequest struct {
	PatientID *int64 `json:"patient_id"`
	Date      string `json:"date" binding:"required,fecha"`
	Time      string `json:"time" binding:"required,hora"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
	Diagnosis string `json:"diagnosis"`
}

type UpdateAppointmentRequest struct {
	PatientID *int64  `json:"patient_id"`
	Date      *string `json:"date" binding:"omitempty,fecha"`
	Time      *string `json:"time" binding:"omitempty,hora"`
	Type      *string `json:"type"`
	Status    *string `json:"status"`
	Notes     *string `json:"notes"`
	Diagnosis *string `json:"diagnosis"`
}

type AppointmentFilters struct {
	PatientID *int64 `form:"patient_id"`
	Status    string `form:"status"`
	FromDate  string `form:"from"`
	ToDate    string `form:"to"`
}

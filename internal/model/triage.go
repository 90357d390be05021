package model

import "time"

// Triage is a vital-sign snapshot taken before a consultation. One record
// per appointment is the expected flow, but not enforced.
type Triage struct {
	ID               int64     `db:"id" json:"id"`
	PatientID        int64     `db:"patient_id" json:"patient_id"`
	AppointmentID    *int64    `db:"appointment_id" json:"appointment_id"`
	Weight           float64   `db:"weight" json:"weight"`
	Height           float64   `db:"height" json:"height"`
	Temperature      float64   `db:"temperature" json:"temperature"`
	BloodPressure    string    `db:"blood_pressure" json:"blood_pressure"`
	HeartRate        int       `db:"heart_rate" json:"heart_rate"`
	RespiratoryRate  int       `db:"respiratory_rate" json:"respiratory_rate"`
	OxygenSaturation int       `db:"oxygen_saturation" json:"oxygen_saturation"`
	Notes            string    `db:"notes" json:"notes"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

type CreateTriageRequest struct {
	PatientID        int64   `json:"patient_id" binding:"required"`
	AppointmentID    *int64  `json:"appointment_id"`
	Weight           float64 `json:"weight"`
	Height           float64 `json:"height"`
	Temperature      float64 `json:"temperature"`
	BloodPressure    string  `json:"blood_pressure"`
	HeartRate        int     `json:"heart_rate"`
	RespiratoryRate  int     `json:"respiratory_rate"`
	OxygenSaturation int     `json:"oxygen_saturation"`
	Notes            string  `json:"notes"`
}

type UpdateTriageRequest struct {
	Weight           *float64 `json:"weight"`
	Height           *float64 `json:"height"`
	Temperature      *float64 `json:"temperature"`
	BloodPressure    *string  `json:"blood_pressure"`
	HeartRate        *int     `json:"heart_rate"`
	RespiratoryRate  *int     `json:"respiratory_rate"`
	OxygenSaturation *int     `json:"oxygen_saturation"`
	Notes            *string  `json:"notes"`
}

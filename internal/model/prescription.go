package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Medication struct {
	Name      string `json:"name"`
	Dose      string `json:"dose"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// Medications is stored serialized as a JSON text column.
type Medications []Medication

func (m Medications) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *Medications) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported medications type %T", src)
	}
}

// Prescription carries two dates on purpose: CreatedAt is when the record
// was entered, PrescriptionDate is the clinically effective date.
type Prescription struct {
	ID               int64       `db:"id" json:"id"`
	PatientID        int64       `db:"patient_id" json:"patient_id"`
	AppointmentID    *int64      `db:"appointment_id" json:"appointment_id"`
	Medications      Medications `db:"medications" json:"medications"`
	Instructions     string      `db:"instructions" json:"instructions"`
	DoctorName       string      `db:"doctor_name" json:"doctor_name"`
	PrescriptionDate string      `db:"prescription_date" json:"prescription_date"`
	CreatedAt        time.Time   `db:"created_at" json:"created_at"`
}

type CreatePrescriptionRequest struct {
	PatientID        int64        `json:"patient_id" binding:"required"`
	AppointmentID    *int64       `json:"appointment_id"`
	Medications      []Medication `json:"medications" binding:"required,min=1"`
	Instructions     string       `json:"instructions"`
	DoctorName       string       `json:"doctor_name"`
	PrescriptionDate string       `json:"prescription_date" binding:"omitempty,fecha"`
}

type UpdatePrescriptionRequest struct {
	Medications      []Medication `json:"medications"`
	Instructions     *string      `json:"instructions"`
	DoctorName       *string      `json:"doctor_name"`
	PrescriptionDate *string      `json:"prescription_date" binding:"omitempty,fecha"`
}

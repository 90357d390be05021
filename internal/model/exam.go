package model

import "time"

const (
	ExamStatusRequested    = "Solicitado"
	ExamStatusResultsReady = "Resultados Listos"
)

type Exam struct {
	ID            int64     `db:"id" json:"id"`
	PatientID     int64     `db:"patient_id" json:"patient_id"`
	AppointmentID *int64    `db:"appointment_id" json:"appointment_id"`
	Type          string    `db:"type" json:"type"`
	Reason        string    `db:"reason" json:"reason"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// ExamResult is one uploaded file attached to an exam request.
type ExamResult struct {
	ID           int64     `db:"id" json:"id"`
	ExamID       int64     `db:"exam_id" json:"exam_id"`
	FilePath     string    `db:"file_path" json:"file_path"`
	OriginalName string    `db:"original_name" json:"original_name"`
	Note         string    `db:"note" json:"note"`
	UploadedAt   time.Time `db:"uploaded_at" json:"uploaded_at"`
}

type CreateExamRequest struct {
	PatientID     int64  `json:"patient_id" binding:"required"`
	AppointmentID *int64 `json:"appointment_id"`
	Type          string `json:"type" binding:"required"`
	Reason        string `json:"reason"`
}

type UpdateExamRequest struct {
	Type   *string `json:"type"`
	Reason *string `json:"reason"`
	Status *string `json:"status"`
}

type ExamFilters struct {
	PatientID *int64 `form:"patient_id"`
	Status    string `form:"status"`
	FromDate  string `form:"from"`
	ToDate    string `form:"to"`
}

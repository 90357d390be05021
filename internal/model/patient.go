package model

import "time"

type Patient struct {
	ID             int64     `db:"id" json:"id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	DocumentType   string    `db:"document_type" json:"document_type"`
	DocumentNumber string    `db:"document_number" json:"document_number"`
	HistoryNumber  string    `db:"history_number" json:"history_number"`
	BirthDate      string    `db:"birth_date" json:"birth_date"`
	Gender         string    `db:"gender" json:"gender"`
	Phone          string    `db:"phone" json:"phone"`
	Email          string    `db:"email" json:"email"`
	Department     string    `db:"department" json:"department"`
	Province       string    `db:"province" json:"province"`
	District       string    `db:"district" json:"district"`
	Address        string    `db:"address" json:"address"`
	Summary        string    `db:"summary" json:"summary"`
	Diagnosis      string    `db:"diagnosis" json:"diagnosis"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

type CreatePatientRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	DocumentType   string `json:"document_type" binding:"required"`
	DocumentNumber string `json:"document_number" binding:"required"`
	HistoryNumber  string `json:"history_number" binding:"required"`
	BirthDate      string `json:"birth_date" binding:"omitempty,fecha"`
	Gender         string `json:"gender"`
	Phone          string `json:"phone"`
	Email          string `json:"email" binding:"omitempty,email"`
	Department     string `json:"department"`
	Province       string `json:"province"`
	District       string `json:"district"`
	Address        string `json:"address"`
	Summary        string `json:"summary"`
	Diagnosis      string `json:"diagnosis"`
}

type UpdatePatientRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	DocumentType   *string `json:"document_type"`
	DocumentNumber *string `json:"document_number"`
	BirthDate      *string `json:"birth_date" binding:"omitempty,fecha"`
	Gender         *string `json:"gender"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Department     *string `json:"department"`
	Province       *string `json:"province"`
	District       *string `json:"district"`
	Address        *string `json:"address"`
	Summary        *string `json:"summary"`
	Diagnosis      *string `json:"diagnosis"`
}

type PatientFilters struct {
	SearchTerm     string `form:"q"`
	DocumentNumber string `form:"document_number"`
	FromDate       string `form:"from"`
	ToDate         string `form:"to"`
}

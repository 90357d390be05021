package model

import "time"

// Settings is the singleton business profile. There is exactly one row.
type Settings struct {
	ID        int64     `db:"id" json:"id"`
	LegalName string    `db:"legal_name" json:"legal_name"`
	TaxID     string    `db:"tax_id" json:"tax_id"`
	Phone     string    `db:"phone" json:"phone"`
	Email     string    `db:"email" json:"email"`
	Address   string    `db:"address" json:"address"`
	LogoPath  string    `db:"logo_path" json:"logo_path"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type UpdateSettingsRequest struct {
	LegalName *string `json:"legal_name"`
	TaxID     *string `json:"tax_id"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Address   *string `json:"address"`
	LogoPath  *string `json:"logo_path"`
}

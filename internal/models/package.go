package models

import "time"

// Package publication statuses.
const (
	PackageStatusActive   = "active"
	PackageStatusInactive = "inactive"
)

// Package is a tour package shown on the public site and managed from the
// admin panel. Titles and descriptions carry English, Sinhala and Tamil
// variants; only the English ones are required.
type Package struct {
	ID            int       `db:"id" json:"id"`
	Category      string    `db:"category" json:"category"`
	TitleEn       string    `db:"title_en" json:"title_en"`
	TitleSi       string    `db:"title_si" json:"title_si"`
	TitleTa       string    `db:"title_ta" json:"title_ta"`
	DescriptionEn string    `db:"description_en" json:"description_en"`
	DescriptionSi string    `db:"description_si" json:"description_si"`
	DescriptionTa string    `db:"description_ta" json:"description_ta"`
	Price         float64   `db:"price" json:"price"`
	Duration      string    `db:"duration" json:"duration"`
	Image         string    `db:"image" json:"image"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

package models

// Service is a marketing service entry rendered on the public services page.
// Rows are seeded by migration and ordered by display_order.
type Service struct {
	ID            int    `db:"id" json:"id"`
	TitleEn       string `db:"title_en" json:"title_en"`
	DescriptionEn string `db:"description_en" json:"description_en"`
	Icon          string `db:"icon" json:"icon"`
	DisplayOrder  int    `db:"display_order" json:"display_order"`
	Status        string `db:"status" json:"status"`
}

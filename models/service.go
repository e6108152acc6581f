package models

// Service is a bookable cleaning service type.
type Service struct {
	ID            int64   `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	NameIt        string  `db:"name_it" json:"nameIt,omitempty"`
	NameEn        string  `db:"name_en" json:"nameEn,omitempty"`
	Description   string  `db:"description" json:"description"`
	DescriptionIt string  `db:"description_it" json:"descriptionIt,omitempty"`
	DescriptionEn string  `db:"description_en" json:"descriptionEn,omitempty"`
	PricePerHour  float64 `db:"price_per_hour" json:"pricePerHour"`
	Enabled       bool    `db:"enabled" json:"enabled"`
}

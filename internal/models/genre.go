package models

// Genre represents a film genre (e.g., "Comedy", "Drama").
// The catalogue is static and seeded at startup.
type Genre struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;unique;not null"`
}

// MpaRating represents an MPA age rating (G, PG, PG-13, R, NC-17).
type MpaRating struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:20;unique;not null"`
}

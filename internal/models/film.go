package models

import (
	"time"

	"gorm.io/gorm"
)

// EarliestReleaseDate is the date of the first public film screening.
// No film can have been released before it.
var EarliestReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// Film represents a film in the catalogue.
type Film struct {
	gorm.Model
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"size:200"`
	ReleaseDate time.Time
	Duration    int `gorm:"not null"`

	MpaRatingID uint
	MpaRating   MpaRating `gorm:"foreignKey:MpaRatingID"`

	Genres    []*Genre    `gorm:"many2many:film_genres;"`
	Directors []*Director `gorm:"many2many:film_directors;"`
}

package storage

import "github.com/TBKaGOC/filmorate/internal/models"

// DefaultGenres returns the static genre catalog in its canonical order.
func DefaultGenres() []models.Genre {
	return []models.Genre{
		{ID: 1, Name: "Comedy"},
		{ID: 2, Name: "Drama"},
		{ID: 3, Name: "Cartoon"},
		{ID: 4, Name: "Thriller"},
		{ID: 5, Name: "Documentary"},
		{ID: 6, Name: "Action"},
	}
}

// DefaultRatings returns the static MPA rating catalog.
func DefaultRatings() []models.MpaRating {
	return []models.MpaRating{
		{ID: 1, Name: "G"},
		{ID: 2, Name: "PG"},
		{ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"},
		{ID: 5, Name: "NC-17"},
	}
}

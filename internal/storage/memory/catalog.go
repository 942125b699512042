package memory

import (
	"fmt"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
)

// GenreStorage serves the static genre catalog from memory.
type GenreStorage struct {
	genres []models.Genre
}

// NewGenreStorage creates a genre store seeded with the default catalog.
func NewGenreStorage() *GenreStorage {
	return &GenreStorage{genres: storage.DefaultGenres()}
}

func (s *GenreStorage) GetGenres() ([]models.Genre, error) {
	return s.genres, nil
}

func (s *GenreStorage) GetGenre(id uint) (*models.Genre, error) {
	for _, g := range s.genres {
		if g.ID == id {
			genre := g
			return &genre, nil
		}
	}
	return nil, fmt.Errorf("genre %d: %w", id, storage.ErrNotFound)
}

// MpaStorage serves the static MPA rating catalog from memory.
type MpaStorage struct {
	ratings []models.MpaRating
}

// NewMpaStorage creates an MPA store seeded with the default catalog.
func NewMpaStorage() *MpaStorage {
	return &MpaStorage{ratings: storage.DefaultRatings()}
}

func (s *MpaStorage) GetRatings() ([]models.MpaRating, error) {
	return s.ratings, nil
}

func (s *MpaStorage) GetRating(id uint) (*models.MpaRating, error) {
	for _, r := range s.ratings {
		if r.ID == id {
			rating := r
			return &rating, nil
		}
	}
	return nil, fmt.Errorf("mpa rating %d: %w", id, storage.ErrNotFound)
}

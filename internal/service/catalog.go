package service

import (
	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
)

// CatalogService serves the static genre and MPA rating catalogs.
type CatalogService struct {
	genres storage.GenreStorage
	mpa    storage.MpaStorage
}

// NewCatalogService creates a catalog service over the given stores.
func NewCatalogService(genres storage.GenreStorage, mpa storage.MpaStorage) *CatalogService {
	return &CatalogService{genres: genres, mpa: mpa}
}

func (s *CatalogService) GetGenres() ([]models.Genre, error) {
	return s.genres.GetGenres()
}

func (s *CatalogService) GetGenre(id uint) (*models.Genre, error) {
	return s.genres.GetGenre(id)
}

func (s *CatalogService) GetRatings() ([]models.MpaRating, error) {
	return s.mpa.GetRatings()
}

func (s *CatalogService) GetRating(id uint) (*models.MpaRating, error) {
	return s.mpa.GetRating(id)
}

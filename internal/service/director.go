package service

import (
	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
)

// DirectorService owns the director records.
type DirectorService struct {
	directors storage.DirectorStorage
}

// NewDirectorService creates a director service over the given store.
func NewDirectorService(directors storage.DirectorStorage) *DirectorService {
	return &DirectorService{directors: directors}
}

func (s *DirectorService) GetDirectors() ([]models.Director, error) {
	return s.directors.GetDirectors()
}

func (s *DirectorService) GetDirector(id uint) (*models.Director, error) {
	return s.directors.GetDirector(id)
}

func (s *DirectorService) CreateDirector(director *models.Director) error {
	return s.directors.AddDirector(director)
}

func (s *DirectorService) UpdateDirector(id uint, name string) (*models.Director, error) {
	director, err := s.directors.GetDirector(id)
	if err != nil {
		return nil, err
	}
	director.Name = name
	if err := s.directors.UpdateDirector(director); err != nil {
		return nil, err
	}
	return director, nil
}

func (s *DirectorService) DeleteDirector(id uint) error {
	return s.directors.DeleteDirector(id)
}

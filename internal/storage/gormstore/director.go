package gormstore

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
)

// DirectorStorage is the database-backed implementation of storage.DirectorStorage.
type DirectorStorage struct {
	db *gorm.DB
}

// NewDirectorStorage creates a director store on top of the given gorm connection.
func NewDirectorStorage(db *gorm.DB) *DirectorStorage {
	return &DirectorStorage{db: db}
}

func (s *DirectorStorage) GetDirectors() ([]models.Director, error) {
	var directors []models.Director
	if err := s.db.Order("id").Find(&directors).Error; err != nil {
		return nil, err
	}
	return directors, nil
}

func (s *DirectorStorage) GetDirector(id uint) (*models.Director, error) {
	var director models.Director
	if err := s.db.First(&director, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("director %d: %w", id, storage.ErrNotFound)
		}
		return nil, err
	}
	return &director, nil
}

func (s *DirectorStorage) AddDirector(director *models.Director) error {
	return s.db.Create(director).Error
}

func (s *DirectorStorage) UpdateDirector(director *models.Director) error {
	ok, err := s.Contains(director.ID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("director %d: %w", director.ID, storage.ErrNotFound)
	}
	return s.db.Save(director).Error
}

func (s *DirectorStorage) DeleteDirector(id uint) error {
	if err := s.db.Exec("DELETE FROM film_directors WHERE director_id = ?", id).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.Director{}, id).Error
}

func (s *DirectorStorage) Contains(id uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Director{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

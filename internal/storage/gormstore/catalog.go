package gormstore

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
)

// GenreStorage serves the seeded genre catalog from the database.
type GenreStorage struct {
	db *gorm.DB
}

// NewGenreStorage creates a genre store on top of the given gorm connection.
func NewGenreStorage(db *gorm.DB) *GenreStorage {
	return &GenreStorage{db: db}
}

func (s *GenreStorage) GetGenres() ([]models.Genre, error) {
	var genres []models.Genre
	if err := s.db.Order("id").Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (s *GenreStorage) GetGenre(id uint) (*models.Genre, error) {
	var genre models.Genre
	if err := s.db.First(&genre, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("genre %d: %w", id, storage.ErrNotFound)
		}
		return nil, err
	}
	return &genre, nil
}

// MpaStorage serves the seeded MPA rating catalog from the database.
type MpaStorage struct {
	db *gorm.DB
}

// NewMpaStorage creates an MPA store on top of the given gorm connection.
func NewMpaStorage(db *gorm.DB) *MpaStorage {
	return &MpaStorage{db: db}
}

func (s *MpaStorage) GetRatings() ([]models.MpaRating, error) {
	var ratings []models.MpaRating
	if err := s.db.Order("id").Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (s *MpaStorage) GetRating(id uint) (*models.MpaRating, error) {
	var rating models.MpaRating
	if err := s.db.First(&rating, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("mpa rating %d: %w", id, storage.ErrNotFound)
		}
		return nil, err
	}
	return &rating, nil
}

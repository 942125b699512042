package gormstore

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
)

const popularityOrder = "count(fl.user_id) DESC, films.id"

// FilmStorage is the database-backed implementation of storage.FilmStorage.
type FilmStorage struct {
	db *gorm.DB
}

// NewFilmStorage creates a film store on top of the given gorm connection.
func NewFilmStorage(db *gorm.DB) *FilmStorage {
	return &FilmStorage{db: db}
}

func (s *FilmStorage) withAssociations() *gorm.DB {
	return s.db.Preload("Genres").Preload("Directors").Preload("MpaRating")
}

func (s *FilmStorage) GetFilms() ([]models.Film, error) {
	var films []models.Film
	if err := s.withAssociations().Order("id").Find(&films).Error; err != nil {
		return nil, err
	}
	return films, nil
}

func (s *FilmStorage) GetFilm(id uint) (*models.Film, error) {
	var film models.Film
	if err := s.withAssociations().First(&film, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("film %d: %w", id, storage.ErrNotFound)
		}
		return nil, err
	}
	return &film, nil
}

func (s *FilmStorage) AddFilm(film *models.Film) error {
	return s.db.Create(film).Error
}

func (s *FilmStorage) UpdateFilm(film *models.Film) error {
	ok, err := s.Contains(film.ID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("film %d: %w", film.ID, storage.ErrNotFound)
	}

	if err := s.db.Omit(clause.Associations).Save(film).Error; err != nil {
		return err
	}
	if err := s.db.Model(film).Association("Genres").Replace(film.Genres); err != nil {
		return err
	}
	return s.db.Model(film).Association("Directors").Replace(film.Directors)
}

func (s *FilmStorage) DeleteFilm(id uint) error {
	if err := s.db.Where("film_id = ?", id).Delete(&models.FilmLike{}).Error; err != nil {
		return err
	}
	if err := s.db.Exec("DELETE FROM film_genres WHERE film_id = ?", id).Error; err != nil {
		return err
	}
	if err := s.db.Exec("DELETE FROM film_directors WHERE film_id = ?", id).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.Film{}, id).Error
}

func (s *FilmStorage) Contains(id uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Film{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *FilmStorage) AddLike(userID, filmID uint) error {
	like := models.FilmLike{FilmID: filmID, UserID: userID}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
}

func (s *FilmStorage) DeleteLike(userID, filmID uint) (bool, error) {
	result := s.db.
		Where("film_id = ? AND user_id = ?", filmID, userID).
		Delete(&models.FilmLike{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *FilmStorage) GetLikers(filmID uint) ([]uint, error) {
	var likers []uint
	if err := s.db.Model(&models.FilmLike{}).
		Where("film_id = ?", filmID).
		Order("user_id").
		Pluck("user_id", &likers).Error; err != nil {
		return nil, err
	}
	return likers, nil
}

func (s *FilmStorage) GetLikedFilms(userID uint) ([]models.Film, error) {
	var films []models.Film
	if err := s.withAssociations().
		Joins("JOIN film_likes fl ON fl.film_id = films.id").
		Where("fl.user_id = ?", userID).
		Order("films.id").
		Find(&films).Error; err != nil {
		return nil, err
	}
	return films, nil
}

func (s *FilmStorage) DeleteUserLikes(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.FilmLike{}).Error
}

func (s *FilmStorage) GetMostPopular(count int, genreID uint, year int) ([]models.Film, error) {
	query := s.withAssociations().
		Joins("LEFT JOIN film_likes fl ON fl.film_id = films.id").
		Group("films.id").
		Order(popularityOrder)

	if genreID != 0 {
		query = query.Joins("JOIN film_genres fg ON fg.film_id = films.id AND fg.genre_id = ?", genreID)
	}
	if year != 0 {
		query = query.Where("EXTRACT(YEAR FROM films.release_date) = ?", year)
	}
	if count > 0 {
		query = query.Limit(count)
	}

	var films []models.Film
	if err := query.Find(&films).Error; err != nil {
		return nil, err
	}
	return films, nil
}

func (s *FilmStorage) GetCommonFilms(userID, friendID uint) ([]models.Film, error) {
	var films []models.Film
	if err := s.withAssociations().
		Joins("JOIN film_likes l1 ON l1.film_id = films.id AND l1.user_id = ?", userID).
		Joins("JOIN film_likes l2 ON l2.film_id = films.id AND l2.user_id = ?", friendID).
		Joins("LEFT JOIN film_likes fl ON fl.film_id = films.id").
		Group("films.id").
		Order(popularityOrder).
		Find(&films).Error; err != nil {
		return nil, err
	}
	return films, nil
}

func (s *FilmStorage) GetDirectorFilms(directorID uint, sortBy string) ([]models.Film, error) {
	query := s.withAssociations().
		Joins("JOIN film_directors fd ON fd.film_id = films.id AND fd.director_id = ?", directorID)

	switch sortBy {
	case storage.SortByYear:
		query = query.Order("films.release_date")
	case storage.SortByLikes:
		query = query.
			Joins("LEFT JOIN film_likes fl ON fl.film_id = films.id").
			Group("films.id").
			Order(popularityOrder)
	default:
		query = query.Order("films.id")
	}

	var films []models.Film
	if err := query.Find(&films).Error; err != nil {
		return nil, err
	}
	return films, nil
}

func (s *FilmStorage) SearchByTitle(query string) ([]models.Film, error) {
	var films []models.Film
	if err := s.withAssociations().
		Joins("LEFT JOIN film_likes fl ON fl.film_id = films.id").
		Where("films.name ILIKE ?", "%"+query+"%").
		Group("films.id").
		Order(popularityOrder).
		Find(&films).Error; err != nil {
		return nil, err
	}
	return films, nil
}

func (s *FilmStorage) SearchByDirector(query string) ([]models.Film, error) {
	var films []models.Film
	if err := s.withAssociations().
		Joins("JOIN film_directors fd ON fd.film_id = films.id").
		Joins("JOIN directors d ON d.id = fd.director_id").
		Joins("LEFT JOIN film_likes fl ON fl.film_id = films.id").
		Where("d.name ILIKE ?", "%"+query+"%").
		Group("films.id").
		Order(popularityOrder).
		Find(&films).Error; err != nil {
		return nil, err
	}
	return films, nil
}

package gormstore

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
)

// ReviewStorage is the database-backed implementation of storage.ReviewStorage.
type ReviewStorage struct {
	db *gorm.DB
}

// NewReviewStorage creates a review store on top of the given gorm connection.
func NewReviewStorage(db *gorm.DB) *ReviewStorage {
	return &ReviewStorage{db: db}
}

func (s *ReviewStorage) GetReview(id uint) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review %d: %w", id, storage.ErrNotFound)
		}
		return nil, err
	}
	return &review, nil
}

func (s *ReviewStorage) GetReviews(filmID uint, count int) ([]models.Review, error) {
	query := s.db.Order("useful DESC, id")
	if filmID != 0 {
		query = query.Where("film_id = ?", filmID)
	}
	if count > 0 {
		query = query.Limit(count)
	}

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewStorage) GetReviewsByFilm(filmID uint) ([]uint, error) {
	var ids []uint
	if err := s.db.Model(&models.Review{}).
		Where("film_id = ?", filmID).
		Order("id").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *ReviewStorage) AddReview(review *models.Review) error {
	return s.db.Create(review).Error
}

func (s *ReviewStorage) UpdateReview(review *models.Review) error {
	ok, err := s.Contains(review.ID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("review %d: %w", review.ID, storage.ErrNotFound)
	}
	return s.db.Save(review).Error
}

func (s *ReviewStorage) DeleteReview(id uint) error {
	if err := s.db.Where("review_id = ?", id).Delete(&models.ReviewReaction{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.Review{}, id).Error
}

func (s *ReviewStorage) Contains(id uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Review{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *ReviewStorage) SetReaction(reviewID, userID uint, value int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("review %d: %w", reviewID, storage.ErrNotFound)
			}
			return err
		}

		old := 0
		var existing models.ReviewReaction
		err := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).First(&existing).Error
		if err == nil {
			old = existing.Value
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if old == value {
			return nil
		}

		reaction := models.ReviewReaction{ReviewID: reviewID, UserID: userID, Value: value}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "review_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&reaction).Error; err != nil {
			return err
		}

		return tx.Model(&models.Review{}).
			Where("id = ?", reviewID).
			Update("useful", gorm.Expr("useful + ?", value-old)).Error
	})
}

func (s *ReviewStorage) DeleteReaction(reviewID, userID uint) (bool, error) {
	removed := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.ReviewReaction
		err := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Delete(&existing).Error; err != nil {
			return err
		}
		removed = true

		return tx.Model(&models.Review{}).
			Where("id = ?", reviewID).
			Update("useful", gorm.Expr("useful - ?", existing.Value)).Error
	})
	return removed, err
}

package service

import (
	"fmt"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
)

// ReviewService owns film reviews, their like/dislike reactions, and the
// REVIEW feed events attributed to the review author.
type ReviewService struct {
	reviews storage.ReviewStorage
	films   storage.FilmStorage
	users   storage.UserStorage
	feed    storage.FeedStorage
}

// NewReviewService creates a review service over the given stores.
func NewReviewService(
	reviews storage.ReviewStorage,
	films storage.FilmStorage,
	users storage.UserStorage,
	feed storage.FeedStorage,
) *ReviewService {
	return &ReviewService{reviews: reviews, films: films, users: users, feed: feed}
}

func (s *ReviewService) GetReview(id uint) (*models.Review, error) {
	return s.reviews.GetReview(id)
}

// GetReviews lists reviews ordered by usefulness, optionally filtered to
// a single film and limited to count entries.
func (s *ReviewService) GetReviews(filmID uint, count int) ([]models.Review, error) {
	if filmID != 0 {
		if err := s.requireFilm(filmID); err != nil {
			return nil, err
		}
	}
	if count <= 0 {
		count = 10
	}
	return s.reviews.GetReviews(filmID, count)
}

// AddReview stores a new review and appends a REVIEW/ADD feed event.
func (s *ReviewService) AddReview(review *models.Review) error {
	if err := s.requireUser(review.UserID); err != nil {
		return err
	}
	if err := s.requireFilm(review.FilmID); err != nil {
		return err
	}
	if err := s.reviews.AddReview(review); err != nil {
		return err
	}
	return s.feed.Append(&models.FeedEvent{
		UserID:    review.UserID,
		EventType: models.EventTypeReview,
		Operation: models.OperationAdd,
		EntityID:  review.ID,
	})
}

// UpdateReview changes the review's content and verdict. Author and film
// are immutable; the event is attributed to the original author.
func (s *ReviewService) UpdateReview(id uint, content string, isPositive bool) (*models.Review, error) {
	review, err := s.reviews.GetReview(id)
	if err != nil {
		return nil, err
	}
	review.Content = content
	review.IsPositive = isPositive
	if err := s.reviews.UpdateReview(review); err != nil {
		return nil, err
	}
	if err := s.feed.Append(&models.FeedEvent{
		UserID:    review.UserID,
		EventType: models.EventTypeReview,
		Operation: models.OperationUpdate,
		EntityID:  review.ID,
	}); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview removes the review and appends a REVIEW/REMOVE feed event
// attributed to its author.
func (s *ReviewService) DeleteReview(id uint) error {
	review, err := s.reviews.GetReview(id)
	if err != nil {
		return err
	}
	if err := s.reviews.DeleteReview(id); err != nil {
		return err
	}
	return s.feed.Append(&models.FeedEvent{
		UserID:    review.UserID,
		EventType: models.EventTypeReview,
		Operation: models.OperationRemove,
		EntityID:  id,
	})
}

// LikeReview records a +1 reaction from the user, replacing any previous
// reaction they held.
func (s *ReviewService) LikeReview(reviewID, userID uint) error {
	if err := s.requireUser(userID); err != nil {
		return err
	}
	return s.reviews.SetReaction(reviewID, userID, 1)
}

// DislikeReview records a -1 reaction from the user.
func (s *ReviewService) DislikeReview(reviewID, userID uint) error {
	if err := s.requireUser(userID); err != nil {
		return err
	}
	return s.reviews.SetReaction(reviewID, userID, -1)
}

// RemoveReaction deletes the user's reaction if any.
func (s *ReviewService) RemoveReaction(reviewID, userID uint) error {
	if err := s.requireUser(userID); err != nil {
		return err
	}
	_, err := s.reviews.DeleteReaction(reviewID, userID)
	return err
}

func (s *ReviewService) requireUser(id uint) error {
	ok, err := s.users.Contains(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (s *ReviewService) requireFilm(id uint) error {
	ok, err := s.films.Contains(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("film %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

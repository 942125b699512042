package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
)

// ReviewStorage is an in-memory implementation of storage.ReviewStorage.
type ReviewStorage struct {
	mu        sync.RWMutex
	reviews   map[uint]models.Review
	reactions map[uint]map[uint]int // review -> user -> ±1
	nextID    uint
}

// NewReviewStorage creates an empty in-memory review store.
func NewReviewStorage() *ReviewStorage {
	return &ReviewStorage{
		reviews:   make(map[uint]models.Review),
		reactions: make(map[uint]map[uint]int),
	}
}

func (s *ReviewStorage) GetReview(id uint) (*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	review, ok := s.reviews[id]
	if !ok {
		return nil, fmt.Errorf("review %d: %w", id, storage.ErrNotFound)
	}
	return &review, nil
}

func (s *ReviewStorage) GetReviews(filmID uint, count int) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := make([]models.Review, 0)
	for _, r := range s.reviews {
		if filmID == 0 || r.FilmID == filmID {
			reviews = append(reviews, r)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		if reviews[i].Useful != reviews[j].Useful {
			return reviews[i].Useful > reviews[j].Useful
		}
		return reviews[i].ID < reviews[j].ID
	})
	if count > 0 && len(reviews) > count {
		reviews = reviews[:count]
	}
	return reviews, nil
}

func (s *ReviewStorage) GetReviewsByFilm(filmID uint) ([]uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uint, 0)
	for id, r := range s.reviews {
		if r.FilmID == filmID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *ReviewStorage) AddReview(review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	review.ID = s.nextID
	s.reviews[review.ID] = *review
	return nil
}

func (s *ReviewStorage) UpdateReview(review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[review.ID]; !ok {
		return fmt.Errorf("review %d: %w", review.ID, storage.ErrNotFound)
	}
	s.reviews[review.ID] = *review
	return nil
}

func (s *ReviewStorage) DeleteReview(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.reviews, id)
	delete(s.reactions, id)
	return nil
}

func (s *ReviewStorage) Contains(id uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.reviews[id]
	return ok, nil
}

func (s *ReviewStorage) SetReaction(reviewID, userID uint, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[reviewID]
	if !ok {
		return fmt.Errorf("review %d: %w", reviewID, storage.ErrNotFound)
	}
	if s.reactions[reviewID] == nil {
		s.reactions[reviewID] = make(map[uint]int)
	}

	old := s.reactions[reviewID][userID]
	if old == value {
		return nil
	}
	s.reactions[reviewID][userID] = value
	review.Useful += value - old
	s.reviews[reviewID] = review
	return nil
}

func (s *ReviewStorage) DeleteReaction(reviewID, userID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[reviewID]
	if !ok {
		return false, fmt.Errorf("review %d: %w", reviewID, storage.ErrNotFound)
	}
	old, ok := s.reactions[reviewID][userID]
	if !ok {
		return false, nil
	}
	delete(s.reactions[reviewID], userID)
	review.Useful -= old
	s.reviews[reviewID] = review
	return true, nil
}

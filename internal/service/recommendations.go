package service

import (
	"fmt"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
)

// RecommendationService suggests films to a user based on behavioral
// similarity with other users: a single linear scan picks the user with
// the largest liked-film overlap and recommends the films that user liked
// which the target has not seen.
type RecommendationService struct {
	users storage.UserStorage
	films storage.FilmStorage
}

// NewRecommendationService creates a recommendation engine over the given stores.
func NewRecommendationService(users storage.UserStorage, films storage.FilmStorage) *RecommendationService {
	return &RecommendationService{users: users, films: films}
}

// GetRecommendations returns the unseen films liked by the most similar
// other user. Candidates are scanned in ascending user id order and
// compared with strict >, so the first user with the maximum overlap wins
// ties. The result is empty when the target likes nothing or no other
// user shares a like with them.
func (s *RecommendationService) GetRecommendations(userID uint) ([]models.Film, error) {
	ok, err := s.users.Contains(userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, storage.ErrNotFound)
	}

	liked, err := s.films.GetLikedFilms(userID)
	if err != nil {
		return nil, err
	}
	if len(liked) == 0 {
		return []models.Film{}, nil
	}

	likedSet := make(map[uint]struct{}, len(liked))
	for _, film := range liked {
		likedSet[film.ID] = struct{}{}
	}

	users, err := s.users.GetUsers()
	if err != nil {
		return nil, err
	}

	maxOverlap := 0
	var bestFilms []models.Film
	for _, other := range users {
		if other.ID == userID {
			continue
		}
		theirs, err := s.films.GetLikedFilms(other.ID)
		if err != nil {
			return nil, err
		}
		overlap := 0
		for _, film := range theirs {
			if _, ok := likedSet[film.ID]; ok {
				overlap++
			}
		}
		if overlap > maxOverlap {
			maxOverlap = overlap
			bestFilms = theirs
		}
	}
	if maxOverlap == 0 {
		return []models.Film{}, nil
	}

	recommendations := make([]models.Film, 0, len(bestFilms))
	for _, film := range bestFilms {
		if _, seen := likedSet[film.ID]; !seen {
			recommendations = append(recommendations, film)
		}
	}
	return recommendations, nil
}

package service

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
)

// FilmInput carries the attributes of a film create request.
type FilmInput struct {
	Name        string
	Description string
	ReleaseDate time.Time
	Duration    int
	MpaID       uint
	GenreIDs    []uint
	DirectorIDs []uint
}

// FilmUpdate carries a partial film update; nil fields are left untouched.
type FilmUpdate struct {
	Name        *string
	Description *string
	ReleaseDate *time.Time
	Duration    *int
	MpaID       *uint
	GenreIDs    []uint
	DirectorIDs []uint
}

// FilmService owns the film catalogue: CRUD with attribute validation,
// the like set, popularity queries and search.
type FilmService struct {
	films     storage.FilmStorage
	users     storage.UserStorage
	genres    storage.GenreStorage
	mpa       storage.MpaStorage
	directors storage.DirectorStorage
	reviews   storage.ReviewStorage
	feed      storage.FeedStorage
}

// NewFilmService creates a film service over the given stores.
func NewFilmService(
	films storage.FilmStorage,
	users storage.UserStorage,
	genres storage.GenreStorage,
	mpa storage.MpaStorage,
	directors storage.DirectorStorage,
	reviews storage.ReviewStorage,
	feed storage.FeedStorage,
) *FilmService {
	return &FilmService{
		films:     films,
		users:     users,
		genres:    genres,
		mpa:       mpa,
		directors: directors,
		reviews:   reviews,
		feed:      feed,
	}
}

func (s *FilmService) GetFilms() ([]models.Film, error) {
	return s.films.GetFilms()
}

func (s *FilmService) GetFilm(id uint) (*models.Film, error) {
	return s.films.GetFilm(id)
}

// CreateFilm validates the input and stores a new film.
func (s *FilmService) CreateFilm(input FilmInput) (*models.Film, error) {
	if err := validateFilmAttributes(input.ReleaseDate, input.Duration, input.Description); err != nil {
		return nil, err
	}

	film := models.Film{
		Name:        input.Name,
		Description: input.Description,
		ReleaseDate: input.ReleaseDate,
		Duration:    input.Duration,
	}
	if err := s.resolveAssociations(&film, input.MpaID, input.GenreIDs, input.DirectorIDs); err != nil {
		return nil, err
	}
	if err := s.films.AddFilm(&film); err != nil {
		return nil, err
	}
	log.Printf("Created film %d (%s)", film.ID, film.Name)
	return &film, nil
}

// UpdateFilm applies a partial update with the same validation as create.
func (s *FilmService) UpdateFilm(id uint, upd FilmUpdate) (*models.Film, error) {
	film, err := s.films.GetFilm(id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		film.Name = *upd.Name
	}
	if upd.Description != nil {
		film.Description = *upd.Description
	}
	if upd.ReleaseDate != nil {
		film.ReleaseDate = *upd.ReleaseDate
	}
	if upd.Duration != nil {
		film.Duration = *upd.Duration
	}
	if err := validateFilmAttributes(film.ReleaseDate, film.Duration, film.Description); err != nil {
		return nil, err
	}

	mpaID := film.MpaRatingID
	if upd.MpaID != nil {
		mpaID = *upd.MpaID
	}
	genreIDs := upd.GenreIDs
	if genreIDs == nil {
		genreIDs = genreIDsOf(film)
	}
	directorIDs := upd.DirectorIDs
	if directorIDs == nil {
		directorIDs = directorIDsOf(film)
	}
	if err := s.resolveAssociations(film, mpaID, genreIDs, directorIDs); err != nil {
		return nil, err
	}

	if err := s.films.UpdateFilm(film); err != nil {
		return nil, err
	}
	log.Printf("Updated film %d", id)
	return film, nil
}

// DeleteFilm removes the film together with its likes, its reviews and
// every feed event referencing the film or those reviews as entity.
func (s *FilmService) DeleteFilm(id uint) error {
	reviewIDs, err := s.reviews.GetReviewsByFilm(id)
	if err != nil {
		return err
	}
	for _, reviewID := range reviewIDs {
		if err := s.reviews.DeleteReview(reviewID); err != nil {
			return err
		}
		if err := s.feed.DeleteByEntity(models.EventTypeReview, reviewID); err != nil {
			return err
		}
	}
	if err := s.feed.DeleteByEntity(models.EventTypeLike, id); err != nil {
		return err
	}
	if err := s.films.DeleteFilm(id); err != nil {
		return err
	}
	log.Printf("Deleted film %d", id)
	return nil
}

// AddLike records that the user likes the film. The like set is
// duplicate-free; a LIKE/ADD event is appended to the liker's feed.
func (s *FilmService) AddLike(userID, filmID uint) error {
	if err := s.requireUser(userID); err != nil {
		return err
	}
	if err := s.requireFilm(filmID); err != nil {
		return err
	}
	if err := s.films.AddLike(userID, filmID); err != nil {
		return err
	}
	return s.feed.Append(&models.FeedEvent{
		UserID:    userID,
		EventType: models.EventTypeLike,
		Operation: models.OperationAdd,
		EntityID:  filmID,
	})
}

// DeleteLike removes the user's like. Unliking a film the user never
// liked is a no-op and emits no feed event.
func (s *FilmService) DeleteLike(userID, filmID uint) error {
	if err := s.requireUser(userID); err != nil {
		return err
	}
	if err := s.requireFilm(filmID); err != nil {
		return err
	}
	removed, err := s.films.DeleteLike(userID, filmID)
	if err != nil || !removed {
		return err
	}
	return s.feed.Append(&models.FeedEvent{
		UserID:    userID,
		EventType: models.EventTypeLike,
		Operation: models.OperationRemove,
		EntityID:  filmID,
	})
}

// GetMostPopular returns up to count films ordered by like count, with
// optional genre and release-year filters.
func (s *FilmService) GetMostPopular(count int, genreID uint, year int) ([]models.Film, error) {
	return s.films.GetMostPopular(count, genreID, year)
}

// GetCommonFilms returns the films both users liked, most popular first.
func (s *FilmService) GetCommonFilms(userID, friendID uint) ([]models.Film, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	if err := s.requireUser(friendID); err != nil {
		return nil, err
	}
	return s.films.GetCommonFilms(userID, friendID)
}

// Search finds films whose title and/or director name contains the query,
// ordered by like count descending with id as tiebreak.
func (s *FilmService) Search(query string, byTitle, byDirector bool) ([]models.Film, error) {
	seen := make(map[uint]struct{})
	var result []models.Film

	if byDirector {
		films, err := s.films.SearchByDirector(query)
		if err != nil {
			return nil, err
		}
		for _, f := range films {
			seen[f.ID] = struct{}{}
		}
		result = append(result, films...)
	}
	if byTitle {
		films, err := s.films.SearchByTitle(query)
		if err != nil {
			return nil, err
		}
		for _, f := range films {
			if _, ok := seen[f.ID]; !ok {
				result = append(result, f)
			}
		}
	}

	sortFilmsByLikes(result, s.films)
	return result, nil
}

// GetDirectorFilms returns a director's films sorted by year or by likes.
func (s *FilmService) GetDirectorFilms(directorID uint, sortBy string) ([]models.Film, error) {
	ok, err := s.directors.Contains(directorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("director %d: %w", directorID, storage.ErrNotFound)
	}
	return s.films.GetDirectorFilms(directorID, sortBy)
}

func (s *FilmService) resolveAssociations(film *models.Film, mpaID uint, genreIDs, directorIDs []uint) error {
	if mpaID != 0 {
		rating, err := s.mpa.GetRating(mpaID)
		if err != nil {
			return err
		}
		film.MpaRatingID = rating.ID
		film.MpaRating = *rating
	}

	film.Genres = film.Genres[:0]
	for _, genreID := range dedupe(genreIDs) {
		genre, err := s.genres.GetGenre(genreID)
		if err != nil {
			return err
		}
		film.Genres = append(film.Genres, genre)
	}

	film.Directors = film.Directors[:0]
	for _, directorID := range dedupe(directorIDs) {
		director, err := s.directors.GetDirector(directorID)
		if err != nil {
			return err
		}
		film.Directors = append(film.Directors, director)
	}
	return nil
}

func (s *FilmService) requireUser(id uint) error {
	ok, err := s.users.Contains(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (s *FilmService) requireFilm(id uint) error {
	ok, err := s.films.Contains(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("film %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

func validateFilmAttributes(releaseDate time.Time, duration int, description string) error {
	if !releaseDate.IsZero() && releaseDate.Before(models.EarliestReleaseDate) {
		return fmt.Errorf("release date precedes the first film screening: %w", storage.ErrCorruptedData)
	}
	if duration <= 0 {
		return fmt.Errorf("duration must be positive: %w", storage.ErrCorruptedData)
	}
	if len(description) > 200 {
		return fmt.Errorf("description exceeds 200 characters: %w", storage.ErrCorruptedData)
	}
	return nil
}

func sortFilmsByLikes(films []models.Film, store storage.FilmStorage) {
	likes := make(map[uint]int, len(films))
	for _, f := range films {
		likers, err := store.GetLikers(f.ID)
		if err == nil {
			likes[f.ID] = len(likers)
		}
	}
	sort.Slice(films, func(i, j int) bool {
		li, lj := likes[films[i].ID], likes[films[j].ID]
		if li != lj {
			return li > lj
		}
		return films[i].ID < films[j].ID
	})
}

func genreIDsOf(film *models.Film) []uint {
	ids := make([]uint, 0, len(film.Genres))
	for _, g := range film.Genres {
		if g != nil {
			ids = append(ids, g.ID)
		}
	}
	return ids
}

func directorIDsOf(film *models.Film) []uint {
	ids := make([]uint, 0, len(film.Directors))
	for _, d := range film.Directors {
		if d != nil {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

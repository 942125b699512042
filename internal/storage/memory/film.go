package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
)

// FilmStorage is an in-memory implementation of storage.FilmStorage.
type FilmStorage struct {
	mu          sync.RWMutex
	films       map[uint]models.Film
	likesByFilm map[uint]map[uint]struct{} // film -> likers
	likesByUser map[uint]map[uint]struct{} // user -> liked films
	nextID      uint
}

// NewFilmStorage creates an empty in-memory film store.
func NewFilmStorage() *FilmStorage {
	return &FilmStorage{
		films:       make(map[uint]models.Film),
		likesByFilm: make(map[uint]map[uint]struct{}),
		likesByUser: make(map[uint]map[uint]struct{}),
	}
}

func (s *FilmStorage) GetFilms() ([]models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	films := make([]models.Film, 0, len(s.films))
	for _, f := range s.films {
		films = append(films, f)
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })
	return films, nil
}

func (s *FilmStorage) GetFilm(id uint) (*models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	film, ok := s.films[id]
	if !ok {
		return nil, fmt.Errorf("film %d: %w", id, storage.ErrNotFound)
	}
	return &film, nil
}

func (s *FilmStorage) AddFilm(film *models.Film) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	film.ID = s.nextID
	s.films[film.ID] = *film
	return nil
}

func (s *FilmStorage) UpdateFilm(film *models.Film) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[film.ID]; !ok {
		return fmt.Errorf("film %d: %w", film.ID, storage.ErrNotFound)
	}
	s.films[film.ID] = *film
	return nil
}

func (s *FilmStorage) DeleteFilm(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.films, id)
	for userID := range s.likesByFilm[id] {
		delete(s.likesByUser[userID], id)
	}
	delete(s.likesByFilm, id)
	return nil
}

func (s *FilmStorage) Contains(id uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.films[id]
	return ok, nil
}

func (s *FilmStorage) AddLike(userID, filmID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[filmID]; !ok {
		return fmt.Errorf("film %d: %w", filmID, storage.ErrNotFound)
	}
	if s.likesByFilm[filmID] == nil {
		s.likesByFilm[filmID] = make(map[uint]struct{})
	}
	if s.likesByUser[userID] == nil {
		s.likesByUser[userID] = make(map[uint]struct{})
	}
	s.likesByFilm[filmID][userID] = struct{}{}
	s.likesByUser[userID][filmID] = struct{}{}
	return nil
}

func (s *FilmStorage) DeleteLike(userID, filmID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.likesByFilm[filmID][userID]; !ok {
		return false, nil
	}
	delete(s.likesByFilm[filmID], userID)
	delete(s.likesByUser[userID], filmID)
	return true, nil
}

func (s *FilmStorage) GetLikers(filmID uint) ([]uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	likers := make([]uint, 0, len(s.likesByFilm[filmID]))
	for userID := range s.likesByFilm[filmID] {
		likers = append(likers, userID)
	}
	sort.Slice(likers, func(i, j int) bool { return likers[i] < likers[j] })
	return likers, nil
}

func (s *FilmStorage) GetLikedFilms(userID uint) ([]models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	films := make([]models.Film, 0, len(s.likesByUser[userID]))
	for filmID := range s.likesByUser[userID] {
		if film, ok := s.films[filmID]; ok {
			films = append(films, film)
		}
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })
	return films, nil
}

func (s *FilmStorage) DeleteUserLikes(userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for filmID := range s.likesByUser[userID] {
		delete(s.likesByFilm[filmID], userID)
	}
	delete(s.likesByUser, userID)
	return nil
}

func (s *FilmStorage) GetMostPopular(count int, genreID uint, year int) ([]models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	films := make([]models.Film, 0, len(s.films))
	for _, f := range s.films {
		if genreID != 0 && !hasGenre(f, genreID) {
			continue
		}
		if year != 0 && f.ReleaseDate.Year() != year {
			continue
		}
		films = append(films, f)
	}
	s.sortByPopularity(films)
	if count > 0 && len(films) > count {
		films = films[:count]
	}
	return films, nil
}

func (s *FilmStorage) GetCommonFilms(userID, friendID uint) ([]models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	common := make([]models.Film, 0)
	for filmID := range s.likesByUser[userID] {
		if _, ok := s.likesByUser[friendID][filmID]; !ok {
			continue
		}
		if film, ok := s.films[filmID]; ok {
			common = append(common, film)
		}
	}
	s.sortByPopularity(common)
	return common, nil
}

func (s *FilmStorage) GetDirectorFilms(directorID uint, sortBy string) ([]models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	films := make([]models.Film, 0)
	for _, f := range s.films {
		if hasDirector(f, directorID) {
			films = append(films, f)
		}
	}

	switch sortBy {
	case storage.SortByYear:
		sort.Slice(films, func(i, j int) bool {
			return films[i].ReleaseDate.Before(films[j].ReleaseDate)
		})
	case storage.SortByLikes:
		s.sortByPopularity(films)
	default:
		sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })
	}
	return films, nil
}

func (s *FilmStorage) SearchByTitle(query string) ([]models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)
	films := make([]models.Film, 0)
	for _, f := range s.films {
		if strings.Contains(strings.ToLower(f.Name), query) {
			films = append(films, f)
		}
	}
	s.sortByPopularity(films)
	return films, nil
}

func (s *FilmStorage) SearchByDirector(query string) ([]models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)
	films := make([]models.Film, 0)
	for _, f := range s.films {
		for _, d := range f.Directors {
			if d != nil && strings.Contains(strings.ToLower(d.Name), query) {
				films = append(films, f)
				break
			}
		}
	}
	s.sortByPopularity(films)
	return films, nil
}

// sortByPopularity orders films by like count descending, id ascending.
// Callers must hold at least a read lock.
func (s *FilmStorage) sortByPopularity(films []models.Film) {
	sort.Slice(films, func(i, j int) bool {
		li, lj := len(s.likesByFilm[films[i].ID]), len(s.likesByFilm[films[j].ID])
		if li != lj {
			return li > lj
		}
		return films[i].ID < films[j].ID
	})
}

func hasGenre(film models.Film, genreID uint) bool {
	for _, g := range film.Genres {
		if g != nil && g.ID == genreID {
			return true
		}
	}
	return false
}

func hasDirector(film models.Film, directorID uint) bool {
	for _, d := range film.Directors {
		if d != nil && d.ID == directorID {
			return true
		}
	}
	return false
}

package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
)

// DirectorStorage is an in-memory implementation of storage.DirectorStorage.
type DirectorStorage struct {
	mu        sync.RWMutex
	directors map[uint]models.Director
	nextID    uint
}

// NewDirectorStorage creates an empty in-memory director store.
func NewDirectorStorage() *DirectorStorage {
	return &DirectorStorage{directors: make(map[uint]models.Director)}
}

func (s *DirectorStorage) GetDirectors() ([]models.Director, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	directors := make([]models.Director, 0, len(s.directors))
	for _, d := range s.directors {
		directors = append(directors, d)
	}
	sort.Slice(directors, func(i, j int) bool { return directors[i].ID < directors[j].ID })
	return directors, nil
}

func (s *DirectorStorage) GetDirector(id uint) (*models.Director, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	director, ok := s.directors[id]
	if !ok {
		return nil, fmt.Errorf("director %d: %w", id, storage.ErrNotFound)
	}
	return &director, nil
}

func (s *DirectorStorage) AddDirector(director *models.Director) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	director.ID = s.nextID
	s.directors[director.ID] = *director
	return nil
}

func (s *DirectorStorage) UpdateDirector(director *models.Director) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.directors[director.ID]; !ok {
		return fmt.Errorf("director %d: %w", director.ID, storage.ErrNotFound)
	}
	s.directors[director.ID] = *director
	return nil
}

func (s *DirectorStorage) DeleteDirector(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.directors, id)
	return nil
}

func (s *DirectorStorage) Contains(id uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.directors[id]
	return ok, nil
}

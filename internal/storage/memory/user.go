package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
)

// UserStorage is an in-memory implementation of storage.UserStorage,
// backed by maps guarded with a RWMutex.
type UserStorage struct {
	mu     sync.RWMutex
	users  map[uint]models.User
	edges  map[uint]map[uint]bool // sender -> recipient -> confirmed
	nextID uint
}

// NewUserStorage creates an empty in-memory user store.
func NewUserStorage() *UserStorage {
	return &UserStorage{
		users: make(map[uint]models.User),
		edges: make(map[uint]map[uint]bool),
	}
}

func (s *UserStorage) GetUsers() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *UserStorage) GetUser(id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	return &user, nil
}

func (s *UserStorage) GetUserByLoginOrEmail(login string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Login == login || u.Email == login {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", login, storage.ErrNotFound)
}

func (s *UserStorage) AddUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return fmt.Errorf("email %q already in use: %w", user.Email, storage.ErrDuplicated)
		}
		if existing.Login == user.Login {
			return fmt.Errorf("login %q already in use: %w", user.Login, storage.ErrDuplicated)
		}
	}

	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = *user
	return nil
}

func (s *UserStorage) UpdateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return fmt.Errorf("user %d: %w", user.ID, storage.ErrNotFound)
	}
	s.users[user.ID] = *user
	return nil
}

func (s *UserStorage) DeleteUser(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	delete(s.edges, id)
	for sender := range s.edges {
		delete(s.edges[sender], id)
	}
	return nil
}

func (s *UserStorage) Contains(id uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[id]
	return ok, nil
}

func (s *UserStorage) UpsertFriendship(senderID, recipientID uint, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.edges[senderID] == nil {
		s.edges[senderID] = make(map[uint]bool)
	}
	s.edges[senderID][recipientID] = confirmed
	return nil
}

func (s *UserStorage) DeleteFriendship(senderID, recipientID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.edges[senderID][recipientID]; !ok {
		return false, nil
	}
	delete(s.edges[senderID], recipientID)
	return true, nil
}

func (s *UserStorage) FriendshipExists(senderID, recipientID uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.edges[senderID][recipientID]
	return ok, nil
}

func (s *UserStorage) GetFriends(id uint) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[id]; !ok {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}

	friends := make([]models.User, 0, len(s.edges[id]))
	for recipientID := range s.edges[id] {
		if friend, ok := s.users[recipientID]; ok {
			friends = append(friends, friend)
		}
	}
	sort.Slice(friends, func(i, j int) bool { return friends[i].ID < friends[j].ID })
	return friends, nil
}

func (s *UserStorage) GetMutualFriends(id1, id2 uint) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mutual := make([]models.User, 0)
	for recipientID := range s.edges[id1] {
		if _, ok := s.edges[id2][recipientID]; !ok {
			continue
		}
		if friend, ok := s.users[recipientID]; ok {
			mutual = append(mutual, friend)
		}
	}
	sort.Slice(mutual, func(i, j int) bool { return mutual[i].ID < mutual[j].ID })
	return mutual, nil
}

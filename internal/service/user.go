package service

import (
	"fmt"
	"log"
	"time"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
)

// UserUpdate carries a partial user update; nil fields are left untouched.
type UserUpdate struct {
	Login    *string
	Email    *string
	Name     *string
	Birthday *time.Time
}

// UserService owns user CRUD, including the uniqueness rules on login and
// email and the deletion cascade over edges, likes and feed events.
type UserService struct {
	users storage.UserStorage
	films storage.FilmStorage
	feed  storage.FeedStorage
}

// NewUserService creates a user service over the given stores.
func NewUserService(users storage.UserStorage, films storage.FilmStorage, feed storage.FeedStorage) *UserService {
	return &UserService{users: users, films: films, feed: feed}
}

func (s *UserService) GetUsers() ([]models.User, error) {
	return s.users.GetUsers()
}

func (s *UserService) GetUser(id uint) (*models.User, error) {
	return s.users.GetUser(id)
}

// CreateUser registers a new user. A blank display name defaults to the
// login. Fails with ErrDuplicated when the login or email is taken.
func (s *UserService) CreateUser(user *models.User) error {
	if user.Name == "" {
		user.Name = user.Login
	}
	if err := s.users.AddUser(user); err != nil {
		return err
	}
	log.Printf("Created user %d (%s)", user.ID, user.Login)
	return nil
}

// UpdateUser applies a partial update, enforcing the same uniqueness rules
// as registration (the user's own login and email do not conflict).
func (s *UserService) UpdateUser(id uint, upd UserUpdate) (*models.User, error) {
	user, err := s.users.GetUser(id)
	if err != nil {
		return nil, err
	}

	if upd.Email != nil && *upd.Email != user.Email {
		if err := s.requireFree("", *upd.Email, id); err != nil {
			return nil, err
		}
		user.Email = *upd.Email
	}
	if upd.Login != nil && *upd.Login != user.Login {
		if err := s.requireFree(*upd.Login, "", id); err != nil {
			return nil, err
		}
		if user.Name == user.Login {
			user.Name = *upd.Login
		}
		user.Login = *upd.Login
	}
	if upd.Name != nil {
		if *upd.Name != "" {
			user.Name = *upd.Name
		} else {
			user.Name = user.Login
		}
	}
	if upd.Birthday != nil {
		user.Birthday = *upd.Birthday
	}

	if err := s.users.UpdateUser(user); err != nil {
		return nil, err
	}
	log.Printf("Updated user %d", id)
	return user, nil
}

// DeleteUser removes the user together with all friendship edges touching
// them, their likes, and every feed event they acted in.
func (s *UserService) DeleteUser(id uint) error {
	if err := s.films.DeleteUserLikes(id); err != nil {
		return err
	}
	if err := s.feed.DeleteByUser(id); err != nil {
		return err
	}
	if err := s.users.DeleteUser(id); err != nil {
		return err
	}
	log.Printf("Deleted user %d", id)
	return nil
}

func (s *UserService) requireFree(login, email string, selfID uint) error {
	all, err := s.users.GetUsers()
	if err != nil {
		return err
	}
	for _, existing := range all {
		if existing.ID == selfID {
			continue
		}
		if login != "" && existing.Login == login {
			return fmt.Errorf("login %q already in use: %w", login, storage.ErrDuplicated)
		}
		if email != "" && existing.Email == email {
			return fmt.Errorf("email %q already in use: %w", email, storage.ErrDuplicated)
		}
	}
	return nil
}

package gormstore

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
)

// UserStorage is the database-backed implementation of storage.UserStorage.
type UserStorage struct {
	db *gorm.DB
}

// NewUserStorage creates a user store on top of the given gorm connection.
func NewUserStorage(db *gorm.DB) *UserStorage {
	return &UserStorage{db: db}
}

func (s *UserStorage) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStorage) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStorage) GetUserByLoginOrEmail(login string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("login = ? OR email = ?", login, login).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", login, storage.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStorage) AddUser(user *models.User) error {
	var count int64
	if err := s.db.Model(&models.User{}).
		Where("login = ? OR email = ?", user.Login, user.Email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("login %q or email %q already in use: %w",
			user.Login, user.Email, storage.ErrDuplicated)
	}
	return s.db.Create(user).Error
}

func (s *UserStorage) UpdateUser(user *models.User) error {
	ok, err := s.Contains(user.ID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("user %d: %w", user.ID, storage.ErrNotFound)
	}
	return s.db.Save(user).Error
}

func (s *UserStorage) DeleteUser(id uint) error {
	if err := s.db.
		Where("sender_id = ? OR recipient_id = ?", id, id).
		Delete(&models.Friendship{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.User{}, id).Error
}

func (s *UserStorage) Contains(id uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *UserStorage) UpsertFriendship(senderID, recipientID uint, confirmed bool) error {
	edge := models.Friendship{
		SenderID:    senderID,
		RecipientID: recipientID,
		Confirmed:   confirmed,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sender_id"}, {Name: "recipient_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"confirmed", "updated_at"}),
	}).Create(&edge).Error
}

func (s *UserStorage) DeleteFriendship(senderID, recipientID uint) (bool, error) {
	result := s.db.
		Where("sender_id = ? AND recipient_id = ?", senderID, recipientID).
		Delete(&models.Friendship{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *UserStorage) FriendshipExists(senderID, recipientID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Friendship{}).
		Where("sender_id = ? AND recipient_id = ?", senderID, recipientID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *UserStorage) GetFriends(id uint) ([]models.User, error) {
	ok, err := s.Contains(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}

	var friends []models.User
	if err := s.db.
		Joins("JOIN friendships f ON f.recipient_id = users.id").
		Where("f.sender_id = ?", id).
		Order("users.id").
		Find(&friends).Error; err != nil {
		return nil, err
	}
	return friends, nil
}

func (s *UserStorage) GetMutualFriends(id1, id2 uint) ([]models.User, error) {
	var mutual []models.User
	if err := s.db.
		Joins("JOIN friendships f1 ON f1.recipient_id = users.id AND f1.sender_id = ?", id1).
		Joins("JOIN friendships f2 ON f2.recipient_id = users.id AND f2.sender_id = ?", id2).
		Order("users.id").
		Find(&mutual).Error; err != nil {
		return nil, err
	}
	return mutual, nil
}

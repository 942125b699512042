package gormstore

import (
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/TBKaGOC/filmorate/internal/models"
)

// FeedStorage is the database-backed implementation of storage.FeedStorage.
type FeedStorage struct {
	db *gorm.DB

	mu     sync.Mutex
	lastTS int64
}

// NewFeedStorage creates a feed store on top of the given gorm connection.
func NewFeedStorage(db *gorm.DB) *FeedStorage {
	return &FeedStorage{db: db}
}

func (s *FeedStorage) Append(event *models.FeedEvent) error {
	s.mu.Lock()
	ts := time.Now().UnixMilli()
	if ts < s.lastTS {
		ts = s.lastTS
	}
	s.lastTS = ts
	s.mu.Unlock()

	event.Timestamp = ts
	return s.db.Create(event).Error
}

func (s *FeedStorage) ListByUser(userID uint, limit int) ([]models.FeedEvent, error) {
	query := s.db.
		Where("user_id = ?", userID).
		Order("timestamp DESC, event_id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var events []models.FeedEvent
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (s *FeedStorage) DeleteByUser(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.FeedEvent{}).Error
}

func (s *FeedStorage) DeleteByEntity(eventType models.FeedEventType, entityID uint) error {
	return s.db.
		Where("event_type = ? AND entity_id = ?", eventType, entityID).
		Delete(&models.FeedEvent{}).Error
}

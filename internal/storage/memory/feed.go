package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/TBKaGOC/filmorate/internal/models"
)

// FeedStorage is an in-memory implementation of storage.FeedStorage.
// Timestamps are monotonically non-decreasing across insertions even when
// the wall clock does not advance between two appends.
type FeedStorage struct {
	mu     sync.Mutex
	events []models.FeedEvent
	nextID uint
	lastTS int64
}

// NewFeedStorage creates an empty in-memory feed store.
func NewFeedStorage() *FeedStorage {
	return &FeedStorage{}
}

func (s *FeedStorage) Append(event *models.FeedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := time.Now().UnixMilli()
	if ts < s.lastTS {
		ts = s.lastTS
	}
	s.lastTS = ts

	s.nextID++
	event.EventID = s.nextID
	event.Timestamp = ts
	s.events = append(s.events, *event)
	return nil
}

func (s *FeedStorage) ListByUser(userID uint, limit int) ([]models.FeedEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]models.FeedEvent, 0)
	for _, e := range s.events {
		if e.UserID == userID {
			events = append(events, e)
		}
	}
	// Most recent first; event id breaks ties between equal timestamps.
	sort.Slice(events, func(i, j int) bool {
		if events[i].Timestamp != events[j].Timestamp {
			return events[i].Timestamp > events[j].Timestamp
		}
		return events[i].EventID > events[j].EventID
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (s *FeedStorage) DeleteByUser(userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.events[:0]
	for _, e := range s.events {
		if e.UserID != userID {
			kept = append(kept, e)
		}
	}
	s.events = kept
	return nil
}

func (s *FeedStorage) DeleteByEntity(eventType models.FeedEventType, entityID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.events[:0]
	for _, e := range s.events {
		if e.EventType != eventType || e.EntityID != entityID {
			kept = append(kept, e)
		}
	}
	s.events = kept
	return nil
}

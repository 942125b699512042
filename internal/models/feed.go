package models

// FeedEventType classifies the domain mutation a feed event records.
type FeedEventType string

const (
	EventTypeFriend FeedEventType = "FRIEND"
	EventTypeLike   FeedEventType = "LIKE"
	EventTypeReview FeedEventType = "REVIEW"
)

// FeedOperation is the kind of mutation applied to the entity.
type FeedOperation string

const (
	OperationAdd    FeedOperation = "ADD"
	OperationRemove FeedOperation = "REMOVE"
	OperationUpdate FeedOperation = "UPDATE"
)

// FeedEvent is an immutable entry in a user's activity feed. Events are
// append-only: once written they are never mutated, only removed as a
// cascade of user or entity deletion.
type FeedEvent struct {
	EventID   uint          `gorm:"primaryKey"`
	Timestamp int64         `gorm:"not null;index"`
	UserID    uint          `gorm:"not null;index"`
	EventType FeedEventType `gorm:"size:20;not null"`
	Operation FeedOperation `gorm:"size:20;not null"`
	EntityID  uint          `gorm:"not null;index"`
}

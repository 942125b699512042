package models

import "time"

// Friendship represents a directed friendship edge between two users:
// the sender requested (or confirmed) friendship with the recipient.
// The primary key is a composite of (SenderID, RecipientID) to ensure
// there is never more than one edge per ordered pair.
type Friendship struct {
	SenderID    uint `gorm:"primaryKey"`
	RecipientID uint `gorm:"primaryKey"`

	// Confirmed is false while the request is pending. Once the recipient
	// reciprocates, both directions of the edge exist and are confirmed.
	Confirmed bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Sender    User `gorm:"foreignKey:SenderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Recipient User `gorm:"foreignKey:RecipientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

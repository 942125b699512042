package models

import (
	"time"

	"gorm.io/gorm"
)

// Review represents a user's review of a film. Useful is the running
// score of like/dislike reactions from other users.
type Review struct {
	gorm.Model
	Content    string `gorm:"not null"`
	IsPositive bool   `gorm:"not null"`
	FilmID     uint   `gorm:"not null;index"`
	UserID     uint   `gorm:"not null;index"`
	Useful     int    `gorm:"not null;default:0"`
}

// ReviewReaction records a single user's like (+1) or dislike (-1) of a
// review. A user holds at most one reaction per review.
type ReviewReaction struct {
	ReviewID  uint `gorm:"primaryKey"`
	UserID    uint `gorm:"primaryKey"`
	Value     int  `gorm:"not null"`
	CreatedAt time.Time
}

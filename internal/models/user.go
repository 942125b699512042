package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered user of the service.
type User struct {
	gorm.Model
	Login        string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	Name         string `gorm:"size:255"`
	Birthday     time.Time
	PasswordHash string `gorm:"size:255"`
}

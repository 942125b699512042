package models

import "gorm.io/gorm"

// Director represents a film director.
type Director struct {
	gorm.Model
	Name string `gorm:"size:255;not null"`
}

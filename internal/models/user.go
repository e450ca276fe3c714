package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the model for a bot user. A row is created the first time a
// chat id is observed and only LastInteraction changes after that; the
// bot never deletes users.
type User struct {
	gorm.Model
	ChatID          int64     `gorm:"uniqueIndex;not null"`
	FirstSeen       time.Time `gorm:"not null"`
	LastInteraction time.Time `gorm:"index;not null"`
}

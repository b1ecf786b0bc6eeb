package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User stores recipient metadata. TelegramChatID is optional; when set,
// in-app notifications are also mirrored to the linked chat.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email          string    `gorm:"uniqueIndex"`
	Name           string
	TelegramChatID *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// NotificationPreference holds a user's opt-outs. A user without a row
// gets DefaultPreferences.
type NotificationPreference struct {
	UserID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeadlineReminders bool      `gorm:"default:true"`
	EmailEnabled      bool      `gorm:"default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DefaultPreferences is the policy applied when a user has never saved
// preferences: send everything.
var DefaultPreferences = NotificationPreference{
	DeadlineReminders: true,
	EmailEnabled:      true,
}

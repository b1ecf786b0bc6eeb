package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is an in-app inbox record. Creation is best-effort from the
// delivery processor's point of view.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;index"`
	TaskID    uuid.UUID  `gorm:"type:uuid;index"`
	Title     string
	Message   string
	ReadAt    *time.Time
	CreatedAt time.Time
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project groups tasks and names the manager escalations go to.
type Project struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name      string
	ManagerID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Channel selects the delivery medium for a reminder.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelInApp Channel = "inapp"
	ChannelBoth  Channel = "both"
)

// IncludesEmail reports whether the channel asks for email delivery.
func (c Channel) IncludesEmail() bool {
	return c == ChannelEmail || c == ChannelBoth
}

// Reminder is a single-fire notification tied to a task and a recipient.
// Sent flips to true exactly once when the delivery processor claims it;
// editing FireAt re-arms the reminder by resetting Sent.
type Reminder struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID      uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_reminder_slot"`
	RecipientID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_reminder_slot"`
	FireAt      time.Time `gorm:"index;uniqueIndex:idx_reminder_slot"`
	Channel     Channel   `gorm:"type:varchar(10)"`
	Sent        bool      `gorm:"default:false;index"`
	Escalation  bool      `gorm:"default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskStatus tracks a task through its lifecycle.
type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "open"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// Task is the entity reminders are scheduled against. The reminder engine
// only reads it; the wider project-management API owns its lifecycle.
type Task struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID  uuid.UUID `gorm:"type:uuid;index"`
	AssigneeID uuid.UUID `gorm:"type:uuid;index"`
	Title      string
	Deadline   *time.Time
	Status     TaskStatus `gorm:"type:varchar(20);default:open"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Finished reports whether the task no longer needs reminders.
func (t *Task) Finished() bool {
	return t.Status == TaskStatusCompleted || t.Status == TaskStatusCancelled
}

// Overdue reports whether the task has a deadline that already passed.
func (t *Task) Overdue(now time.Time) bool {
	return t.Deadline != nil && t.Deadline.Before(now)
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reminder-engine/internal/model"
)

// ReminderRepository handles CRUD for reminders.
type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *model.Reminder) error {
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

// CreateBatch inserts all reminders in one statement. Rows colliding with an
// existing (task, recipient, fire_at) slot are skipped, so re-requesting the
// same schedule does not pile up duplicates. The insert itself is
// all-or-nothing.
func (r *ReminderRepository) CreateBatch(ctx context.Context, reminders []model.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&reminders).Error; err != nil {
		return fmt.Errorf("create reminders: %w", err)
	}
	return nil
}

func (r *ReminderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Reminder, error) {
	var reminder model.Reminder
	err := r.db.WithContext(ctx).First(&reminder, "id = ?", id).Error
	switch {
	case err == nil:
		return &reminder, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, model.ErrReminderNotFound
	default:
		return nil, fmt.Errorf("find reminder: %w", err)
	}
}

func (r *ReminderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Reminder, error) {
	var reminders []model.Reminder
	if err := r.db.WithContext(ctx).
		Where("recipient_id = ?", userID).
		Order("fire_at ASC").
		Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminders, nil
}

// ListPending returns due, unsent reminders oldest-first, capped at limit.
// Oldest-first means the most overdue reminders are serviced before fresher
// ones when a backlog builds up.
func (r *ReminderRepository) ListPending(ctx context.Context, now time.Time, limit int) ([]model.Reminder, error) {
	var reminders []model.Reminder
	if err := r.db.WithContext(ctx).
		Where("sent = ? AND fire_at <= ?", false, now).
		Order("fire_at ASC").
		Limit(limit).
		Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("list pending reminders: %w", err)
	}
	return reminders, nil
}

// ListOverdue returns unsent, non-escalation reminders whose task deadline
// has passed without the task being finished. Escalation reminders are
// excluded so the monitor never consumes its own output before it fires.
func (r *ReminderRepository) ListOverdue(ctx context.Context, now time.Time) ([]model.Reminder, error) {
	var reminders []model.Reminder
	if err := r.db.WithContext(ctx).
		Joins("JOIN tasks ON tasks.id = reminders.task_id").
		Where("reminders.sent = ? AND reminders.escalation = ?", false, false).
		Where("tasks.deadline IS NOT NULL AND tasks.deadline < ?", now).
		Where("tasks.status NOT IN ?", []model.TaskStatus{model.TaskStatusCompleted, model.TaskStatusCancelled}).
		Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("list overdue reminders: %w", err)
	}
	return reminders, nil
}

// MarkSent flips sent to true only if the reminder is still unsent, and
// reports whether this call won the claim. Zero rows affected means another
// worker got there first (or the reminder is gone), not an error.
func (r *ReminderRepository) MarkSent(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Reminder{}).
		Where("id = ? AND sent = ?", id, false).
		Update("sent", true)
	if res.Error != nil {
		return false, fmt.Errorf("mark reminder sent: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Update moves a reminder's fire time and/or channel. Moving fire_at re-arms
// the reminder for another delivery.
func (r *ReminderRepository) Update(ctx context.Context, reminder *model.Reminder) error {
	res := r.db.WithContext(ctx).
		Model(&model.Reminder{}).
		Where("id = ?", reminder.ID).
		Updates(map[string]interface{}{
			"fire_at": reminder.FireAt,
			"channel": reminder.Channel,
			"sent":    reminder.Sent,
		})
	if res.Error != nil {
		return fmt.Errorf("update reminder: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrReminderNotFound
	}
	return nil
}

func (r *ReminderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Reminder{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete reminder: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrReminderNotFound
	}
	return nil
}

// DeleteByTask removes every reminder attached to a task, e.g. when the task
// itself is deleted.
func (r *ReminderRepository) DeleteByTask(ctx context.Context, taskID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Delete(&model.Reminder{}).Error; err != nil {
		return fmt.Errorf("delete reminders by task: %w", err)
	}
	return nil
}

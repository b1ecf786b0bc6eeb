package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"reminder-engine/internal/model"
	"reminder-engine/internal/repository"
)

// ReminderService exposes the caller-facing reminder operations: listing,
// rescheduling and deletion.
type ReminderService struct {
	reminderRepo *repository.ReminderRepository
}

func NewReminderService(reminderRepo *repository.ReminderRepository) *ReminderService {
	return &ReminderService{reminderRepo: reminderRepo}
}

func (s *ReminderService) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Reminder, error) {
	return s.reminderRepo.ListByUser(ctx, userID)
}

// Reschedule moves a reminder to a new fire time and optionally a new
// channel. The new time must be strictly in the future, same as at creation.
// Moving fire_at re-arms the reminder: Sent drops back to false so it will
// be delivered again.
func (s *ReminderService) Reschedule(ctx context.Context, now time.Time, id uuid.UUID, fireAt time.Time, channel model.Channel) (*model.Reminder, error) {
	if !fireAt.After(now) {
		return nil, model.ErrFireAtInPast
	}

	reminder, err := s.reminderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reminder.FireAt = fireAt
	if channel != "" {
		reminder.Channel = channel
	}
	reminder.Sent = false

	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *ReminderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.reminderRepo.Delete(ctx, id)
}

// DeleteForTask drops every reminder attached to a task.
func (s *ReminderService) DeleteForTask(ctx context.Context, taskID uuid.UUID) error {
	return s.reminderRepo.DeleteByTask(ctx, taskID)
}

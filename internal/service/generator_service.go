package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"reminder-engine/internal/model"
	"reminder-engine/internal/repository"
)

// StandardOffsets are the default lead times used when a task acquires a
// deadline: one day, three days, one week and two weeks before it.
var StandardOffsets = []time.Duration{
	24 * time.Hour,
	3 * 24 * time.Hour,
	7 * 24 * time.Hour,
	14 * 24 * time.Hour,
}

// GeneratorService turns task deadlines into scheduled reminders.
type GeneratorService struct {
	taskRepo     *repository.TaskRepository
	reminderRepo *repository.ReminderRepository
}

func NewGeneratorService(taskRepo *repository.TaskRepository, reminderRepo *repository.ReminderRepository) *GeneratorService {
	return &GeneratorService{taskRepo: taskRepo, reminderRepo: reminderRepo}
}

// GenerateStandard schedules reminders at fixed lead times before the task's
// deadline. Offsets that compute to an instant at or before now are skipped,
// never clamped; every offset having passed is a valid empty result, not an
// error. The task must have a deadline.
func (s *GeneratorService) GenerateStandard(ctx context.Context, now time.Time, taskID, recipientID uuid.UUID, offsets []time.Duration, channel model.Channel) ([]model.Reminder, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Deadline == nil {
		return nil, model.ErrNoDeadline
	}
	if len(offsets) == 0 {
		offsets = StandardOffsets
	}

	var reminders []model.Reminder
	for _, offset := range offsets {
		candidate := task.Deadline.Add(-offset)
		if !candidate.After(now) {
			continue
		}
		reminders = append(reminders, model.Reminder{
			TaskID:      taskID,
			RecipientID: recipientID,
			FireAt:      candidate,
			Channel:     channel,
		})
	}

	if err := s.reminderRepo.CreateBatch(ctx, reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// GenerateCustom schedules reminders at caller-supplied instants. An instant
// is accepted only when it lies strictly between now and the deadline;
// everything else is skipped silently. The task must have a deadline.
func (s *GeneratorService) GenerateCustom(ctx context.Context, now time.Time, taskID, recipientID uuid.UUID, instants []time.Time, channel model.Channel) ([]model.Reminder, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Deadline == nil {
		return nil, model.ErrNoDeadline
	}

	var reminders []model.Reminder
	for _, instant := range instants {
		if !instant.After(now) || !instant.Before(*task.Deadline) {
			continue
		}
		reminders = append(reminders, model.Reminder{
			TaskID:      taskID,
			RecipientID: recipientID,
			FireAt:      instant,
			Channel:     channel,
		})
	}

	if err := s.reminderRepo.CreateBatch(ctx, reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

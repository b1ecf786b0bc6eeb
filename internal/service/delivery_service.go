package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"reminder-engine/internal/model"
	"reminder-engine/internal/notify"
	"reminder-engine/internal/repository"
)

// BatchResult summarizes one delivery pass. Per-reminder failures are
// aggregated here instead of aborting the batch.
type BatchResult struct {
	Processed int
	Sent      int
	Failed    int
	Errors    []string
}

// DeliveryService drains due reminders and dispatches notifications.
// Delivery is at-most-once: a reminder is claimed before any transport is
// touched, and transport failures are recorded rather than retried.
type DeliveryService struct {
	reminderRepo     *repository.ReminderRepository
	taskRepo         *repository.TaskRepository
	userRepo         *repository.UserRepository
	notificationRepo *repository.NotificationRepository
	mailer           notify.Mailer
	pusher           notify.Pusher
}

// NewDeliveryService builds a delivery processor. mailer and pusher may be
// nil when the corresponding transport is not configured.
func NewDeliveryService(
	reminderRepo *repository.ReminderRepository,
	taskRepo *repository.TaskRepository,
	userRepo *repository.UserRepository,
	notificationRepo *repository.NotificationRepository,
	mailer notify.Mailer,
	pusher notify.Pusher,
) *DeliveryService {
	return &DeliveryService{
		reminderRepo:     reminderRepo,
		taskRepo:         taskRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		mailer:           mailer,
		pusher:           pusher,
	}
}

// ProcessBatch services up to maxBatch due reminders, most overdue first.
// Each reminder is claimed with a conditional update before delivery, so
// concurrent replicas running their own timers never dispatch the same
// reminder twice: losing the claim means skipping the reminder. One bad
// reminder never blocks the rest of the batch.
func (s *DeliveryService) ProcessBatch(ctx context.Context, now time.Time, maxBatch int) (BatchResult, error) {
	var res BatchResult

	pending, err := s.reminderRepo.ListPending(ctx, now, maxBatch)
	if err != nil {
		return res, err
	}

	for _, rem := range pending {
		claimed, err := s.reminderRepo.MarkSent(ctx, rem.ID)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("claim reminder %s: %v", rem.ID, err))
			continue
		}
		if !claimed {
			// another worker already took this one
			continue
		}
		res.Processed++

		dispatched, err := s.deliver(ctx, rem, &res)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("reminder %s: %v", rem.ID, err))
			continue
		}
		if dispatched {
			res.Sent++
		}
	}

	return res, nil
}

// deliver dispatches one claimed reminder. A false return without error
// means the recipient opted out: the claim still stands so the reminder is
// never reprocessed. Transport failures are appended to res.Errors and do
// not fail the reminder.
func (s *DeliveryService) deliver(ctx context.Context, rem model.Reminder, res *BatchResult) (bool, error) {
	prefs, err := s.userRepo.GetPreferences(ctx, rem.RecipientID)
	if err != nil {
		return false, err
	}
	if !prefs.DeadlineReminders {
		return false, nil
	}

	task, err := s.taskRepo.FindByID(ctx, rem.TaskID)
	if err != nil {
		return false, err
	}
	user, err := s.userRepo.FindByID(ctx, rem.RecipientID)
	if err != nil {
		return false, err
	}

	title, body := reminderText(task, rem)

	if err := s.notificationRepo.Create(ctx, &model.Notification{
		UserID:  rem.RecipientID,
		TaskID:  rem.TaskID,
		Title:   title,
		Message: body,
	}); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("notification for reminder %s: %v", rem.ID, err))
	} else if s.pusher != nil && user.TelegramChatID != nil {
		if err := s.pusher.Push(ctx, *user.TelegramChatID, title+"\n"+body); err != nil {
			log.Printf("telegram push for reminder %s: %v", rem.ID, err)
		}
	}

	if rem.Channel.IncludesEmail() && prefs.EmailEnabled {
		if s.mailer == nil {
			res.Errors = append(res.Errors, fmt.Sprintf("email for reminder %s: transport not configured", rem.ID))
		} else if err := s.mailer.Send(ctx, user.Email, title, body); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("email for reminder %s: %v", rem.ID, err))
		}
	}

	return true, nil
}

func reminderText(task *model.Task, rem model.Reminder) (title, body string) {
	if rem.Escalation {
		title = fmt.Sprintf("Overdue task: %s", task.Title)
		body = fmt.Sprintf("Task %q is past its deadline and still open.", task.Title)
		if task.Deadline != nil {
			body = fmt.Sprintf("Task %q was due %s and is still open.",
				task.Title, task.Deadline.Format("2006-01-02 15:04"))
		}
		return title, body
	}

	title = fmt.Sprintf("Deadline reminder: %s", task.Title)
	if task.Deadline != nil {
		body = fmt.Sprintf("Task %q is due %s.", task.Title, task.Deadline.Format("2006-01-02 15:04"))
	} else {
		body = fmt.Sprintf("Task %q has a reminder scheduled.", task.Title)
	}
	return title, body
}

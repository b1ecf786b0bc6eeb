package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"reminder-engine/internal/model"
	"reminder-engine/internal/repository"
)

// DefaultEscalationDays spaces out manager escalations after a deadline has
// passed: the day after the scan, then three and seven days out.
var DefaultEscalationDays = []int{1, 3, 7}

// EscalationService watches for tasks that blew their deadline without being
// completed and raises the alarm with the project manager.
type EscalationService struct {
	reminderRepo *repository.ReminderRepository
	taskRepo     *repository.TaskRepository
	projectRepo  *repository.ProjectRepository
	days         []int
}

// NewEscalationService builds the monitor. days configures the offsets used
// by the periodic scan; nil means DefaultEscalationDays.
func NewEscalationService(reminderRepo *repository.ReminderRepository, taskRepo *repository.TaskRepository, projectRepo *repository.ProjectRepository, days []int) *EscalationService {
	if len(days) == 0 {
		days = DefaultEscalationDays
	}
	return &EscalationService{reminderRepo: reminderRepo, taskRepo: taskRepo, projectRepo: projectRepo, days: days}
}

// ScanAndEscalate finds unsent reminders for overdue, unfinished tasks and
// creates manager escalations for them. Every scanned reminder is marked
// sent whether or not an escalation came out of it, so the overdue set
// shrinks on each run and a stale reminder never spams the manager twice.
// Returns how many escalation reminders were created.
func (s *EscalationService) ScanAndEscalate(ctx context.Context, now time.Time) (int, error) {
	overdue, err := s.reminderRepo.ListOverdue(ctx, now)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, rem := range overdue {
		n, err := s.escalate(ctx, now, rem)
		if err != nil {
			log.Printf("escalate reminder %s: %v", rem.ID, err)
		}
		created += n

		// Consume the original regardless of the outcome above.
		if _, err := s.reminderRepo.MarkSent(ctx, rem.ID); err != nil {
			log.Printf("consume overdue reminder %s: %v", rem.ID, err)
		}
	}

	return created, nil
}

func (s *EscalationService) escalate(ctx context.Context, now time.Time, rem model.Reminder) (int, error) {
	task, err := s.taskRepo.FindByID(ctx, rem.TaskID)
	if err != nil {
		return 0, err
	}

	managerID, err := s.projectRepo.GetManagerID(ctx, task.ProjectID)
	if err != nil {
		return 0, err
	}
	if managerID == nil || *managerID == rem.RecipientID {
		return 0, nil
	}

	made, err := s.CreateEscalation(ctx, now, rem.TaskID, *managerID, s.days)
	if err != nil {
		return 0, err
	}
	return len(made), nil
}

// CreateEscalation schedules manager reminders at now plus each day offset,
// on the combined channel. Escalations may land past the original deadline
// on purpose: the task is already late.
func (s *EscalationService) CreateEscalation(ctx context.Context, now time.Time, taskID, managerID uuid.UUID, escalationDays []int) ([]model.Reminder, error) {
	if len(escalationDays) == 0 {
		escalationDays = DefaultEscalationDays
	}

	reminders := make([]model.Reminder, 0, len(escalationDays))
	for _, days := range escalationDays {
		reminders = append(reminders, model.Reminder{
			TaskID:      taskID,
			RecipientID: managerID,
			FireAt:      now.AddDate(0, 0, days),
			Channel:     model.ChannelBoth,
			Escalation:  true,
		})
	}

	if err := s.reminderRepo.CreateBatch(ctx, reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

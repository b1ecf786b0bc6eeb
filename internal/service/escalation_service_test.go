package service

import (
	"context"
	"testing"
	"time"

	"reminder-engine/internal/model"
)

func TestScanAndEscalateCreatesManagerReminders(t *testing.T) {
	env := newTestEnv(t)
	svc := NewEscalationService(env.reminders, env.tasks, env.projects, nil)
	ctx := context.Background()
	now := time.Now()

	manager := env.createUser(t, "manager@example.com")
	project := env.createProject(t, &manager.ID)
	task := env.createTask(t, project.ID, timePtr(now.Add(-24*time.Hour)), model.TaskStatusOpen)
	assignee := env.createUser(t, "dev@example.com")
	original := env.createDueReminder(t, task.ID, assignee.ID, now.Add(-48*time.Hour), model.ChannelEmail)

	created, err := svc.ScanAndEscalate(ctx, now)
	if err != nil {
		t.Fatalf("scan and escalate: %v", err)
	}
	if created != len(DefaultEscalationDays) {
		t.Fatalf("expected %d escalations, got %d", len(DefaultEscalationDays), created)
	}

	escalations, err := env.reminders.ListByUser(ctx, manager.ID)
	if err != nil {
		t.Fatalf("list manager reminders: %v", err)
	}
	if len(escalations) != len(DefaultEscalationDays) {
		t.Fatalf("expected %d manager reminders, got %d", len(DefaultEscalationDays), len(escalations))
	}
	for _, rem := range escalations {
		if !rem.Escalation {
			t.Fatalf("expected escalation flag on manager reminder %s", rem.ID)
		}
		if rem.Channel != model.ChannelBoth {
			t.Fatalf("expected combined channel, got %s", rem.Channel)
		}
		if !rem.FireAt.After(now) {
			t.Fatalf("escalation scheduled in the past: %v", rem.FireAt)
		}
	}

	reloaded, err := env.reminders.FindByID(ctx, original.ID)
	if err != nil {
		t.Fatalf("reload original: %v", err)
	}
	if !reloaded.Sent {
		t.Fatalf("expected original reminder to be consumed")
	}
}

func TestScanAndEscalateTerminates(t *testing.T) {
	env := newTestEnv(t)
	svc := NewEscalationService(env.reminders, env.tasks, env.projects, nil)
	ctx := context.Background()
	now := time.Now()

	manager := env.createUser(t, "manager@example.com")
	project := env.createProject(t, &manager.ID)
	task := env.createTask(t, project.ID, timePtr(now.Add(-24*time.Hour)), model.TaskStatusOpen)
	assignee := env.createUser(t, "dev@example.com")
	env.createDueReminder(t, task.ID, assignee.ID, now.Add(-48*time.Hour), model.ChannelEmail)

	first, err := svc.ScanAndEscalate(ctx, now)
	if err != nil {
		t.Fatalf("first scan: %v", err)
	}
	if first == 0 {
		t.Fatalf("expected first scan to escalate")
	}

	second, err := svc.ScanAndEscalate(ctx, now)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if second != 0 {
		t.Fatalf("expected second scan to find nothing, created %d", second)
	}
}

func TestScanAndEscalateConsumesWithoutManager(t *testing.T) {
	env := newTestEnv(t)
	svc := NewEscalationService(env.reminders, env.tasks, env.projects, nil)
	ctx := context.Background()
	now := time.Now()

	// Reminder already addressed to the manager: no escalation, but the
	// reminder is still consumed so the scan set shrinks.
	manager := env.createUser(t, "manager@example.com")
	project := env.createProject(t, &manager.ID)
	task := env.createTask(t, project.ID, timePtr(now.Add(-24*time.Hour)), model.TaskStatusOpen)
	original := env.createDueReminder(t, task.ID, manager.ID, now.Add(-48*time.Hour), model.ChannelEmail)

	created, err := svc.ScanAndEscalate(ctx, now)
	if err != nil {
		t.Fatalf("scan and escalate: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected no escalation for the manager's own reminder, got %d", created)
	}

	reloaded, err := env.reminders.FindByID(ctx, original.ID)
	if err != nil {
		t.Fatalf("reload original: %v", err)
	}
	if !reloaded.Sent {
		t.Fatalf("expected original reminder to be consumed")
	}
}

func TestScanAndEscalateIgnoresFinishedTasks(t *testing.T) {
	env := newTestEnv(t)
	svc := NewEscalationService(env.reminders, env.tasks, env.projects, nil)
	ctx := context.Background()
	now := time.Now()

	manager := env.createUser(t, "manager@example.com")
	project := env.createProject(t, &manager.ID)
	task := env.createTask(t, project.ID, timePtr(now.Add(-24*time.Hour)), model.TaskStatusCompleted)
	assignee := env.createUser(t, "dev@example.com")
	original := env.createDueReminder(t, task.ID, assignee.ID, now.Add(-48*time.Hour), model.ChannelEmail)

	created, err := svc.ScanAndEscalate(ctx, now)
	if err != nil {
		t.Fatalf("scan and escalate: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected no escalation for a completed task, got %d", created)
	}

	reloaded, err := env.reminders.FindByID(ctx, original.ID)
	if err != nil {
		t.Fatalf("reload original: %v", err)
	}
	if reloaded.Sent {
		t.Fatalf("completed task's reminder must not be consumed by the monitor")
	}
}

func TestCreateEscalationIgnoresDeadlineWindow(t *testing.T) {
	env := newTestEnv(t)
	svc := NewEscalationService(env.reminders, env.tasks, env.projects, nil)
	ctx := context.Background()
	now := time.Now()

	manager := env.createUser(t, "manager@example.com")
	project := env.createProject(t, &manager.ID)
	// Deadline long gone; escalations are allowed to land past it.
	task := env.createTask(t, project.ID, timePtr(now.Add(-10*24*time.Hour)), model.TaskStatusOpen)

	created, err := svc.CreateEscalation(ctx, now, task.ID, manager.ID, []int{1})
	if err != nil {
		t.Fatalf("create escalation: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 escalation, got %d", len(created))
	}
	if !created[0].FireAt.After(now) {
		t.Fatalf("escalation must fire in the future, got %v", created[0].FireAt)
	}
}

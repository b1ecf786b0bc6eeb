package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reminder-engine/internal/model"
	"reminder-engine/internal/repository"
)

type testEnv struct {
	db            *gorm.DB
	reminders     *repository.ReminderRepository
	tasks         *repository.TaskRepository
	users         *repository.UserRepository
	projects      *repository.ProjectRepository
	notifications *repository.NotificationRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repository.NewDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return &testEnv{
		db:            db,
		reminders:     repository.NewReminderRepository(db),
		tasks:         repository.NewTaskRepository(db),
		users:         repository.NewUserRepository(db),
		projects:      repository.NewProjectRepository(db),
		notifications: repository.NewNotificationRepository(db),
	}
}

func (e *testEnv) createUser(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, Name: email}
	if err := e.users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func (e *testEnv) createProject(t *testing.T, managerID *uuid.UUID) *model.Project {
	t.Helper()
	project := &model.Project{Name: "Launch", ManagerID: managerID}
	if err := e.projects.Create(context.Background(), project); err != nil {
		t.Fatalf("create project: %v", err)
	}
	return project
}

func (e *testEnv) createTask(t *testing.T, projectID uuid.UUID, deadline *time.Time, status model.TaskStatus) *model.Task {
	t.Helper()
	task := &model.Task{
		ProjectID: projectID,
		Title:     "Ship the release",
		Deadline:  deadline,
		Status:    status,
	}
	if err := e.tasks.Create(context.Background(), task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func (e *testEnv) createDueReminder(t *testing.T, taskID, recipientID uuid.UUID, fireAt time.Time, channel model.Channel) *model.Reminder {
	t.Helper()
	reminder := &model.Reminder{
		TaskID:      taskID,
		RecipientID: recipientID,
		FireAt:      fireAt,
		Channel:     channel,
	}
	if err := e.reminders.Create(context.Background(), reminder); err != nil {
		t.Fatalf("create reminder: %v", err)
	}
	return reminder
}

type fakeMailer struct {
	sent []string
	fail bool
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.fail {
		return errors.New("smtp down")
	}
	m.sent = append(m.sent, to)
	return nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}

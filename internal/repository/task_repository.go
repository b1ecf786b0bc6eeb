package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reminder-engine/internal/model"
)

// TaskRepository reads tasks on behalf of the reminder engine.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	switch {
	case err == nil:
		return &task, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, model.ErrTaskNotFound
	default:
		return nil, fmt.Errorf("find task: %w", err)
	}
}

func (r *TaskRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.TaskStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("set task status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrTaskNotFound
	}
	return nil
}

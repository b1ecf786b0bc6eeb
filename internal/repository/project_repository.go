package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reminder-engine/internal/model"
)

// ProjectRepository resolves project managers for escalations.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// GetManagerID returns the project's manager, or nil when the project has no
// manager assigned or does not exist.
func (r *ProjectRepository) GetManagerID(ctx context.Context, projectID uuid.UUID) (*uuid.UUID, error) {
	var project model.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", projectID).Error
	switch {
	case err == nil:
		return project.ManagerID, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find project: %w", err)
	}
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reminder-engine/internal/model"
)

// UserRepository resolves recipients and their notification preferences.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// GetPreferences returns the user's saved preferences, or
// model.DefaultPreferences when none exist. Missing preferences mean the
// user never opted out of anything.
func (r *UserRepository) GetPreferences(ctx context.Context, userID uuid.UUID) (model.NotificationPreference, error) {
	var prefs model.NotificationPreference
	err := r.db.WithContext(ctx).First(&prefs, "user_id = ?", userID).Error
	switch {
	case err == nil:
		return prefs, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		prefs = model.DefaultPreferences
		prefs.UserID = userID
		return prefs, nil
	default:
		return prefs, fmt.Errorf("find preferences: %w", err)
	}
}

func (r *UserRepository) SavePreferences(ctx context.Context, prefs *model.NotificationPreference) error {
	if err := r.db.WithContext(ctx).Save(prefs).Error; err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

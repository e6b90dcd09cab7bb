// internal/repository/user.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dangerclosesec/colab/internal/domain"
	"github.com/dangerclosesec/colab/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepositoryIface interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindProfile(ctx context.Context, username string) (*model.User, error)
	FindByGitHandles(ctx context.Context, handles []string) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(user)
	if result.Error != nil {
		return fmt.Errorf("failed to create user: %w", translateError(result.Error))
	}
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", result.Error)
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", result.Error)
	}
	return &user, nil
}

// FindProfile loads a user together with owned projects, collaborations
// and saved preferences.
func (r *UserRepository) FindProfile(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).
		Preload("OwnedProjects", func(db *gorm.DB) *gorm.DB {
			return db.Order("projects.created_at DESC")
		}).
		Preload("OwnedProjects.Sector").
		Preload("Collaborations").
		Preload("Collaborations.Owner").
		Preload("PreferredSectors").
		Preload("PreferredStacks").
		Where("username = ?", username).
		First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user profile: %w", result.Error)
	}
	return &user, nil
}

// FindByGitHandles returns the registered users whose linked account is
// one of handles, ignoring case.
func (r *UserRepository) FindByGitHandles(ctx context.Context, handles []string) ([]model.User, error) {
	var users []model.User
	if len(handles) == 0 {
		return users, nil
	}

	lowered := make([]string, 0, len(handles))
	for _, h := range handles {
		lowered = append(lowered, strings.ToLower(h))
	}

	result := r.db.WithContext(ctx).Where("lower(git_handle) IN ?", lowered).Find(&users)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find users by git handle: %w", result.Error)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Save(user)
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", translateError(result.Error))
	}
	return nil
}

// Delete removes the user. Owned projects and association rows go with it
// through ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

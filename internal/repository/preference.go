// internal/repository/preference.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/colab/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Preferences is the set of sectors and stacks a user wants to see.
type Preferences struct {
	Sectors []model.Sector
	Stacks  []model.Stack
}

type PreferenceRepositoryIface interface {
	Find(ctx context.Context, userID uuid.UUID) (*Preferences, error)
	Replace(ctx context.Context, userID uuid.UUID, sectorIDs, stackIDs []uint) error
	FindInterestedUsers(ctx context.Context, project *model.Project) ([]model.User, error)
}

type PreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

func (r *PreferenceRepository) Find(ctx context.Context, userID uuid.UUID) (*Preferences, error) {
	prefs := &Preferences{}

	err := r.db.WithContext(ctx).
		Joins("JOIN user_preference_sectors ups ON ups.sector_id = sectors.id").
		Where("ups.user_id = ?", userID).
		Order("sectors.id").
		Find(&prefs.Sectors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find preferred sectors: %w", err)
	}

	err = r.db.WithContext(ctx).
		Joins("JOIN user_preference_stacks ups ON ups.stack_id = stacks.id").
		Where("ups.user_id = ?", userID).
		Order("stacks.name").
		Find(&prefs.Stacks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find preferred stacks: %w", err)
	}

	return prefs, nil
}

// Replace swaps the user's saved preferences for the given ids in one
// transaction.
func (r *PreferenceRepository) Replace(ctx context.Context, userID uuid.UUID, sectorIDs, stackIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserPreferenceSector{}).Error; err != nil {
			return fmt.Errorf("failed to clear preferred sectors: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserPreferenceStack{}).Error; err != nil {
			return fmt.Errorf("failed to clear preferred stacks: %w", err)
		}

		if len(sectorIDs) > 0 {
			rows := make([]model.UserPreferenceSector, 0, len(sectorIDs))
			for _, id := range dedupe(sectorIDs) {
				rows = append(rows, model.UserPreferenceSector{UserID: userID, SectorID: id})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to save preferred sectors: %w", err)
			}
		}

		if len(stackIDs) > 0 {
			rows := make([]model.UserPreferenceStack, 0, len(stackIDs))
			for _, id := range dedupe(stackIDs) {
				rows = append(rows, model.UserPreferenceStack{UserID: userID, StackID: id})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to save preferred stacks: %w", err)
			}
		}

		return nil
	})
}

// FindInterestedUsers returns the users, other than the owner, whose
// preferences match the project's sector or any of its stacks.
func (r *PreferenceRepository) FindInterestedUsers(ctx context.Context, project *model.Project) ([]model.User, error) {
	stackIDs := make([]uint, 0, len(project.Stacks))
	for _, s := range project.Stacks {
		stackIDs = append(stackIDs, s.ID)
	}

	query := r.db.WithContext(ctx).
		Where("users.id <> ?", project.OwnerID)

	if len(stackIDs) > 0 {
		query = query.Where(
			"(EXISTS (SELECT 1 FROM user_preference_sectors ups WHERE ups.user_id = users.id AND ups.sector_id = ?)"+
				" OR EXISTS (SELECT 1 FROM user_preference_stacks upst WHERE upst.user_id = users.id AND upst.stack_id IN ?))",
			project.SectorID, stackIDs,
		)
	} else {
		query = query.Where(
			"EXISTS (SELECT 1 FROM user_preference_sectors ups WHERE ups.user_id = users.id AND ups.sector_id = ?)",
			project.SectorID,
		)
	}

	var users []model.User
	if err := query.Order("users.username").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to find interested users: %w", err)
	}
	return users, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// internal/repository/catalog.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/colab/internal/domain"
	"github.com/dangerclosesec/colab/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogRepositoryIface covers the seeded lookup tables: stacks and sectors.
type CatalogRepositoryIface interface {
	ListSectors(ctx context.Context) ([]model.Sector, error)
	ListStacks(ctx context.Context) ([]model.Stack, error)
	FindSectorByID(ctx context.Context, id uint) (*model.Sector, error)
	FindStacksByNames(ctx context.Context, names []string) ([]model.Stack, error)
	SeedSectors(ctx context.Context, names []string) (int64, error)
	SeedStacks(ctx context.Context, names []string) (int64, error)
}

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListSectors(ctx context.Context) ([]model.Sector, error) {
	var sectors []model.Sector
	if err := r.db.WithContext(ctx).Order("id").Find(&sectors).Error; err != nil {
		return nil, fmt.Errorf("failed to list sectors: %w", err)
	}
	return sectors, nil
}

func (r *CatalogRepository) ListStacks(ctx context.Context) ([]model.Stack, error) {
	var stacks []model.Stack
	if err := r.db.WithContext(ctx).Order("name").Find(&stacks).Error; err != nil {
		return nil, fmt.Errorf("failed to list stacks: %w", err)
	}
	return stacks, nil
}

func (r *CatalogRepository) FindSectorByID(ctx context.Context, id uint) (*model.Sector, error) {
	var sector model.Sector
	result := r.db.WithContext(ctx).First(&sector, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSectorNotFound
		}
		return nil, fmt.Errorf("failed to find sector: %w", result.Error)
	}
	return &sector, nil
}

// FindStacksByNames returns the stacks whose name is in names. Unknown
// names are ignored.
func (r *CatalogRepository) FindStacksByNames(ctx context.Context, names []string) ([]model.Stack, error) {
	var stacks []model.Stack
	if len(names) == 0 {
		return stacks, nil
	}

	if err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&stacks).Error; err != nil {
		return nil, fmt.Errorf("failed to find stacks: %w", err)
	}
	return stacks, nil
}

// SeedSectors inserts the named sectors, skipping existing ones, and
// returns how many rows were added.
func (r *CatalogRepository) SeedSectors(ctx context.Context, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}

	rows := make([]model.Sector, 0, len(names))
	for _, name := range names {
		rows = append(rows, model.Sector{Name: name})
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to seed sectors: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// SeedStacks inserts the named stacks, skipping existing ones, and
// returns how many rows were added.
func (r *CatalogRepository) SeedStacks(ctx context.Context, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}

	rows := make([]model.Stack, 0, len(names))
	for _, name := range names {
		rows = append(rows, model.Stack{Name: name})
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		CreateInBatches(&rows, 500)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to seed stacks: %w", result.Error)
	}
	return result.RowsAffected, nil
}

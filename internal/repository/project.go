// internal/repository/project.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dangerclosesec/colab/internal/domain"
	"github.com/dangerclosesec/colab/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProjectFilter selects projects for a listing page.
type ProjectFilter struct {
	ViewerID uuid.UUID
	// Owned restricts the listing to the viewer's projects instead of
	// excluding them.
	Owned         bool
	SectorIDs     []uint
	StackIDs      []uint
	PreferredOnly bool
}

type ProjectRepositoryIface interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ProjectFilter) ([]model.Project, error)
	FindAllWithLinks(ctx context.Context) ([]*model.Project, error)
	FindCreatedSince(ctx context.Context, since time.Time) ([]model.Project, error)
	AttachStacks(ctx context.Context, projectID uuid.UUID, stackIDs []uint) error
	AttachCollaborators(ctx context.Context, projectID uuid.UUID, userIDs []uuid.UUID) error
}

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(project)
	if result.Error != nil {
		return fmt.Errorf("failed to create project: %w", translateError(result.Error))
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	result := r.withDetails(r.db.WithContext(ctx)).First(&project, "projects.id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", result.Error)
	}
	return &project, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Save(project)
	if result.Error != nil {
		return fmt.Errorf("failed to update project: %w", translateError(result.Error))
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Project{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// List returns the projects matching filter. Stack and preference
// matches are expressed as EXISTS sub-queries, so every project appears
// at most once regardless of how many of its stacks match.
func (r *ProjectRepository) List(ctx context.Context, filter ProjectFilter) ([]model.Project, error) {
	query := r.db.WithContext(ctx).Model(&model.Project{})

	if filter.Owned {
		query = query.Where("projects.owner_id = ?", filter.ViewerID)
	} else {
		query = query.Where("projects.owner_id <> ?", filter.ViewerID)
	}

	var (
		matches []string
		args    []interface{}
	)
	if len(filter.SectorIDs) > 0 {
		matches = append(matches, "projects.sector_id IN ?")
		args = append(args, filter.SectorIDs)
	}
	if len(filter.StackIDs) > 0 {
		matches = append(matches,
			"EXISTS (SELECT 1 FROM project_stacks ps WHERE ps.project_id = projects.id AND ps.stack_id IN ?)")
		args = append(args, filter.StackIDs)
	}
	if len(matches) > 0 {
		query = query.Where("("+strings.Join(matches, " OR ")+")", args...)
	}

	if filter.PreferredOnly {
		query = query.Where(
			"(projects.sector_id IN (SELECT ups.sector_id FROM user_preference_sectors ups WHERE ups.user_id = ?)"+
				" OR EXISTS (SELECT 1 FROM project_stacks ps"+
				" JOIN user_preference_stacks upst ON upst.stack_id = ps.stack_id"+
				" WHERE ps.project_id = projects.id AND upst.user_id = ?))",
			filter.ViewerID, filter.ViewerID,
		)
	}

	var projects []model.Project
	result := r.withDetails(query).
		Order("projects.created_at DESC").
		Find(&projects)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list projects: %w", result.Error)
	}
	return projects, nil
}

// FindAllWithLinks returns every project with its stacks and collaborators
// loaded. Used by the reconciliation jobs.
func (r *ProjectRepository) FindAllWithLinks(ctx context.Context) ([]*model.Project, error) {
	var projects []*model.Project
	result := r.db.WithContext(ctx).
		Preload("Stacks").
		Preload("Collaborators").
		Order("projects.created_at").
		Find(&projects)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find all projects: %w", result.Error)
	}
	return projects, nil
}

// FindCreatedSince returns projects created at or after since.
func (r *ProjectRepository) FindCreatedSince(ctx context.Context, since time.Time) ([]model.Project, error) {
	var projects []model.Project
	result := r.withDetails(r.db.WithContext(ctx)).
		Where("projects.created_at >= ?", since).
		Order("projects.created_at").
		Find(&projects)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find recent projects: %w", result.Error)
	}
	return projects, nil
}

// AttachStacks links stacks to a project. Existing links are left alone.
func (r *ProjectRepository) AttachStacks(ctx context.Context, projectID uuid.UUID, stackIDs []uint) error {
	if len(stackIDs) == 0 {
		return nil
	}

	rows := make([]model.ProjectStack, 0, len(stackIDs))
	for _, id := range stackIDs {
		rows = append(rows, model.ProjectStack{ProjectID: projectID, StackID: id})
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if result.Error != nil {
		return fmt.Errorf("failed to attach stacks: %w", result.Error)
	}
	return nil
}

// AttachCollaborators links users to a project. Existing links are left alone.
func (r *ProjectRepository) AttachCollaborators(ctx context.Context, projectID uuid.UUID, userIDs []uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}

	rows := make([]model.Collaboration, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, model.Collaboration{ProjectID: projectID, UserID: id})
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if result.Error != nil {
		return fmt.Errorf("failed to attach collaborators: %w", result.Error)
	}
	return nil
}

func (r *ProjectRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Owner").
		Preload("Sector").
		Preload("Stacks", func(db *gorm.DB) *gorm.DB {
			return db.Order("stacks.name")
		}).
		Preload("Collaborators")
}

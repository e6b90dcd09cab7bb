// internal/service/project.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dangerclosesec/colab/internal/domain"
	"github.com/dangerclosesec/colab/internal/github"
	"github.com/dangerclosesec/colab/internal/model"
	"github.com/dangerclosesec/colab/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ProjectService struct {
	projects repository.ProjectRepositoryIface
	users    repository.UserRepositoryIface
	catalog  repository.CatalogRepositoryIface
	github   github.MetadataClient
	validate *validator.Validate
}

func NewProjectService(
	projects repository.ProjectRepositoryIface,
	users repository.UserRepositoryIface,
	catalog repository.CatalogRepositoryIface,
	githubClient github.MetadataClient,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		users:    users,
		catalog:  catalog,
		github:   githubClient,
		validate: newValidator(),
	}
}

type ProjectInput struct {
	Title       string `form:"title" validate:"required,max=100"`
	Description string `form:"description" validate:"max=100"`
	GitRepo     string `form:"git_repo" validate:"required,max=150"`
	SectorID    uint   `form:"sector" validate:"required"`
}

func (in *ProjectInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.GitRepo = strings.Trim(strings.TrimSpace(in.GitRepo), "/")
}

// Create adds a project owned by ownerUsername. The repository must be
// public and live under the owner's git handle. The stacks and
// collaborators GitHub currently reports are attached straight away.
func (s *ProjectService) Create(ctx context.Context, actor, ownerUsername string, input ProjectInput) (*model.Project, error) {
	if actor == "" || actor != ownerUsername {
		return nil, domain.ErrUnauthorized
	}

	input.normalize()
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	owner, err := s.users.FindByUsername(ctx, ownerUsername)
	if err != nil {
		return nil, err
	}

	if err := s.checkSector(ctx, input.SectorID); err != nil {
		return nil, err
	}
	if err := s.checkRepository(ctx, owner, input.GitRepo); err != nil {
		return nil, err
	}

	project := &model.Project{
		Title:       input.Title,
		Description: input.Description,
		GitRepo:     input.GitRepo,
		OwnerID:     owner.ID,
		SectorID:    input.SectorID,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.linkMetadata(ctx, project)

	return project, nil
}

// linkMetadata attaches current stacks and collaborators. Failures are
// logged only; the scheduled refresh jobs fill the gaps later.
func (s *ProjectService) linkMetadata(ctx context.Context, project *model.Project) {
	if languages, err := s.github.Languages(ctx, project.GitRepo); err != nil {
		slog.WarnContext(ctx, "fetching languages for new project", "project_id", project.ID.String(), "error", err)
	} else if _, err := attachStacksByName(ctx, s.catalog, s.projects, project.ID, languages); err != nil {
		slog.WarnContext(ctx, "attaching stacks to new project", "project_id", project.ID.String(), "error", err)
	}

	if handles, err := s.github.Contributors(ctx, project.GitRepo); err != nil {
		slog.WarnContext(ctx, "fetching contributors for new project", "project_id", project.ID.String(), "error", err)
	} else if _, err := attachCollaboratorsByHandle(ctx, s.users, s.projects, project.ID, handles); err != nil {
		slog.WarnContext(ctx, "attaching collaborators to new project", "project_id", project.ID.String(), "error", err)
	}
}

func (s *ProjectService) checkSector(ctx context.Context, sectorID uint) error {
	if _, err := s.catalog.FindSectorByID(ctx, sectorID); err != nil {
		if errors.Is(err, domain.ErrSectorNotFound) {
			return fieldError("sector", "Choose a valid sector.", err)
		}
		return err
	}
	return nil
}

func (s *ProjectService) checkRepository(ctx context.Context, owner *model.User, repo string) error {
	exists, err := s.github.RepositoryExists(ctx, repo)
	if err != nil {
		slog.WarnContext(ctx, "repository lookup failed", "git_repo", repo, "error", err)
		exists = false
	}
	if !exists {
		return fieldError("git_repo", "The repository is private or doesn't exist.", domain.ErrRepositoryUnavailable)
	}

	if !model.OwnedBy(repo, owner.GitHandle) {
		return fieldError("git_repo", "You can only add a repository that is owned by you.", domain.ErrRepositoryNotOwned)
	}
	return nil
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	return s.projects.FindByID(ctx, id)
}

// GetOwned loads a project and checks that actor owns it.
func (s *ProjectService) GetOwned(ctx context.Context, actor string, id uuid.UUID) (*model.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor == "" || project.Owner.Username != actor {
		return nil, domain.ErrUnauthorized
	}
	return project, nil
}

// Update edits a project. Only its owner may do so. A changed repository
// goes through the same checks as on creation.
func (s *ProjectService) Update(ctx context.Context, actor string, id uuid.UUID, input ProjectInput) (*model.Project, error) {
	project, err := s.GetOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	input.normalize()
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	if input.SectorID != project.SectorID {
		if err := s.checkSector(ctx, input.SectorID); err != nil {
			return nil, err
		}
	}

	repoChanged := !strings.EqualFold(input.GitRepo, project.GitRepo)
	if repoChanged {
		if err := s.checkRepository(ctx, &project.Owner, input.GitRepo); err != nil {
			return nil, err
		}
	}

	project.Title = input.Title
	project.Description = input.Description
	project.GitRepo = input.GitRepo
	project.SectorID = input.SectorID

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	if repoChanged {
		s.linkMetadata(ctx, project)
	}

	return project, nil
}

// Delete removes a project. Only its owner may do so.
func (s *ProjectService) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	project, err := s.GetOwned(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, project.ID); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// List returns projects for the listing pages and the JSON API.
func (s *ProjectService) List(ctx context.Context, filter repository.ProjectFilter) ([]model.Project, error) {
	if filter.ViewerID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	projects, err := s.projects.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// attachStacksByName links the known stacks among names to the project
// and returns how many were linked. Names without a Stack row are ignored.
func attachStacksByName(
	ctx context.Context,
	catalog repository.CatalogRepositoryIface,
	projects repository.ProjectRepositoryIface,
	projectID uuid.UUID,
	names []string,
) (int, error) {
	if len(names) == 0 {
		return 0, nil
	}

	stacks, err := catalog.FindStacksByNames(ctx, names)
	if err != nil {
		return 0, err
	}
	if len(stacks) == 0 {
		return 0, nil
	}

	ids := make([]uint, 0, len(stacks))
	for _, stack := range stacks {
		ids = append(ids, stack.ID)
	}
	if err := projects.AttachStacks(ctx, projectID, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// attachCollaboratorsByHandle links the registered users among handles to
// the project and returns how many were linked.
func attachCollaboratorsByHandle(
	ctx context.Context,
	users repository.UserRepositoryIface,
	projects repository.ProjectRepositoryIface,
	projectID uuid.UUID,
	handles []string,
) (int, error) {
	if len(handles) == 0 {
		return 0, nil
	}

	matched, err := users.FindByGitHandles(ctx, handles)
	if err != nil {
		return 0, err
	}
	if len(matched) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(matched))
	for _, u := range matched {
		ids = append(ids, u.ID)
	}
	if err := projects.AttachCollaborators(ctx, projectID, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

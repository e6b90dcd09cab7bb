// internal/service/reconciliation.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dangerclosesec/colab/internal/github"
	"github.com/dangerclosesec/colab/internal/model"
	"github.com/dangerclosesec/colab/internal/repository"
)

// RunSummary reports what one reconciliation pass did.
type RunSummary struct {
	Projects int `json:"projects"`
	Updated  int `json:"updated"`
	Failed   int `json:"failed"`
	Linked   int `json:"linked"`
}

// ReconciliationService brings project stacks and collaborators in line
// with what GitHub reports.
type ReconciliationService struct {
	projects  repository.ProjectRepositoryIface
	users     repository.UserRepositoryIface
	catalog   repository.CatalogRepositoryIface
	github    github.MetadataClient
	batchSize int
	dryRun    bool // If true, don't make changes, just log
	logger    *slog.Logger
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(
	projects repository.ProjectRepositoryIface,
	users repository.UserRepositoryIface,
	catalog repository.CatalogRepositoryIface,
	githubClient github.MetadataClient,
	logger *slog.Logger,
) *ReconciliationService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ReconciliationService{
		projects:  projects,
		users:     users,
		catalog:   catalog,
		github:    githubClient,
		batchSize: 100,
		logger:    logger,
	}
}

// SetBatchSize sets how many projects are processed between context checks
func (s *ReconciliationService) SetBatchSize(size int) {
	if size > 0 {
		s.batchSize = size
	}
}

// SetDryRun sets whether to actually make changes or just log what would be done
func (s *ReconciliationService) SetDryRun(dryRun bool) {
	s.dryRun = dryRun
}

// RefreshStacks attaches the stacks GitHub reports for each project that
// are not linked yet. A project whose lookup fails is skipped.
func (s *ReconciliationService) RefreshStacks(ctx context.Context) (RunSummary, error) {
	return s.reconcile(ctx, "stacks", func(ctx context.Context, project *model.Project) (int, error) {
		languages, err := s.github.Languages(ctx, project.GitRepo)
		if err != nil {
			return 0, err
		}

		missing := missingNames(languages, project.StackNames(), false)
		if len(missing) == 0 {
			return 0, nil
		}

		if s.dryRun {
			s.logger.Info("would attach stacks (dry run)",
				"project_id", project.ID.String(),
				"git_repo", project.GitRepo,
				"stacks", missing,
			)
			return 0, nil
		}

		return attachStacksByName(ctx, s.catalog, s.projects, project.ID, missing)
	})
}

// RefreshCollaborators attaches registered users who contribute to each
// project's repository. Users who stopped contributing are kept.
func (s *ReconciliationService) RefreshCollaborators(ctx context.Context) (RunSummary, error) {
	return s.reconcile(ctx, "collaborators", func(ctx context.Context, project *model.Project) (int, error) {
		handles, err := s.github.Contributors(ctx, project.GitRepo)
		if err != nil {
			return 0, err
		}

		// GitHub logins are case-insensitive
		missing := missingNames(handles, project.CollaboratorHandles(), true)
		if len(missing) == 0 {
			return 0, nil
		}

		if s.dryRun {
			s.logger.Info("would attach collaborators (dry run)",
				"project_id", project.ID.String(),
				"git_repo", project.GitRepo,
				"handles", missing,
			)
			return 0, nil
		}

		return attachCollaboratorsByHandle(ctx, s.users, s.projects, project.ID, missing)
	})
}

// RefreshAll runs both refreshes, stacks first.
func (s *ReconciliationService) RefreshAll(ctx context.Context) error {
	if _, err := s.RefreshStacks(ctx); err != nil {
		return fmt.Errorf("refreshing stacks: %w", err)
	}
	if _, err := s.RefreshCollaborators(ctx); err != nil {
		return fmt.Errorf("refreshing collaborators: %w", err)
	}
	return nil
}

func (s *ReconciliationService) reconcile(
	ctx context.Context,
	job string,
	fn func(context.Context, *model.Project) (int, error),
) (RunSummary, error) {
	var summary RunSummary

	projects, err := s.projects.FindAllWithLinks(ctx)
	if err != nil {
		return summary, fmt.Errorf("fetching projects: %w", err)
	}
	summary.Projects = len(projects)

	s.logger.Info("reconciling projects", "job", job, "count", len(projects), "dry_run", s.dryRun)

	// Process in batches
	for i := 0; i < len(projects); i += s.batchSize {
		end := i + s.batchSize
		if end > len(projects) {
			end = len(projects)
		}

		batch := projects[i:end]
		s.logger.Debug("processing project batch", "job", job, "start", i, "end", end, "size", len(batch))

		for _, project := range batch {
			linked, err := fn(ctx, project)
			if err != nil {
				summary.Failed++
				s.logger.Error("failed to reconcile project",
					"job", job,
					"project_id", project.ID.String(),
					"git_repo", project.GitRepo,
					"error", err,
				)
				// Continue with other projects
				continue
			}
			if linked > 0 {
				summary.Updated++
				summary.Linked += linked
			}
		}

		// Check if context is done between batches
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}
	}

	s.logger.Info("completed reconciliation",
		"job", job,
		"projects", summary.Projects,
		"updated", summary.Updated,
		"failed", summary.Failed,
		"linked", summary.Linked,
	)

	return summary, nil
}

// missingNames returns the entries of fetched that are not in current.
func missingNames(fetched, current []string, foldCase bool) []string {
	key := func(s string) string {
		if foldCase {
			return strings.ToLower(s)
		}
		return s
	}

	have := make(map[string]struct{}, len(current))
	for _, name := range current {
		have[key(name)] = struct{}{}
	}

	var missing []string
	for _, name := range fetched {
		if _, ok := have[key(name)]; ok {
			continue
		}
		have[key(name)] = struct{}{}
		missing = append(missing, name)
	}
	return missing
}

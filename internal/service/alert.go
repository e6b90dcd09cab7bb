// internal/service/alert.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dangerclosesec/colab/internal/email"
	"github.com/dangerclosesec/colab/internal/email/mailer"
	"github.com/dangerclosesec/colab/internal/repository"
)

// AlertService emails users about new projects that match their
// saved preferences.
type AlertService struct {
	projects    repository.ProjectRepositoryIface
	preferences repository.PreferenceRepositoryIface
	sender      email.Sender
	baseURL     string
	window      time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

func NewAlertService(
	projects repository.ProjectRepositoryIface,
	preferences repository.PreferenceRepositoryIface,
	sender email.Sender,
	baseURL string,
	window time.Duration,
	logger *slog.Logger,
) *AlertService {
	if window <= 0 {
		window = 24 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AlertService{
		projects:    projects,
		preferences: preferences,
		sender:      sender,
		baseURL:     strings.TrimRight(baseURL, "/"),
		window:      window,
		now:         time.Now,
		logger:      logger,
	}
}

// SendNewProjectAlerts emails every interested user about projects created
// within the last window. It returns the number of emails sent. A failed
// email is logged and does not stop the run.
func (s *AlertService) SendNewProjectAlerts(ctx context.Context) (int, error) {
	since := s.now().Add(-s.window)

	projects, err := s.projects.FindCreatedSince(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("fetching new projects: %w", err)
	}

	sent := 0
	for i := range projects {
		project := &projects[i]

		users, err := s.preferences.FindInterestedUsers(ctx, project)
		if err != nil {
			s.logger.Error("failed to find interested users", "project_id", project.ID.String(), "error", err)
			continue
		}

		for _, user := range users {
			if err := ctx.Err(); err != nil {
				return sent, err
			}

			data := mailer.NewProjectAlertData{
				FirstName:   user.FirstName,
				Title:       project.Title,
				Description: project.Description,
				GitRepo:     project.GitRepo,
				Sector:      project.Sector.Name,
				Stacks:      project.StackNames(),
				Owner:       project.Owner.Username,
				ProjectLink: s.baseURL + "/projects/" + project.ID.String(),
			}

			if err := mailer.SendNewProjectAlert(ctx, s.sender, user.Email, data); err != nil {
				s.logger.Error("failed to send new project alert",
					"project_id", project.ID.String(),
					"user_id", user.ID.String(),
					"error", err,
				)
				continue
			}
			sent++
		}
	}

	s.logger.Info("sent new project alerts", "projects", len(projects), "emails", sent, "since", since)
	return sent, nil
}

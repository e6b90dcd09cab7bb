package main

import (
	"context"
	"log/slog"

	"github.com/dangerclosesec/colab/internal/config"
	"github.com/dangerclosesec/colab/internal/scheduler"
	"github.com/dangerclosesec/colab/internal/service"
)

// schedulerJobs builds the periodic jobs. The alert job is left out when
// alerts is nil.
func schedulerJobs(cfg *config.Config, reconciler *service.ReconciliationService, alerts *service.AlertService) []scheduler.Job {
	jobs := []scheduler.Job{
		{
			Name:     "stacks",
			Schedule: cfg.Scheduler.StackSchedule,
			Timeout:  cfg.Scheduler.RunTimeout,
			Run: func(ctx context.Context) error {
				summary, err := reconciler.RefreshStacks(ctx)
				slog.InfoContext(ctx, "stack refresh finished", "summary", summary)
				return err
			},
		},
		{
			Name:     "collaborators",
			Schedule: cfg.Scheduler.CollaboratorSchedule,
			Timeout:  cfg.Scheduler.RunTimeout,
			Run: func(ctx context.Context) error {
				summary, err := reconciler.RefreshCollaborators(ctx)
				slog.InfoContext(ctx, "collaborator refresh finished", "summary", summary)
				return err
			},
		},
	}

	if alerts != nil {
		jobs = append(jobs, scheduler.Job{
			Name:     "alerts",
			Schedule: cfg.Scheduler.AlertSchedule,
			Timeout:  cfg.Scheduler.RunTimeout,
			Run: func(ctx context.Context) error {
				sent, err := alerts.SendNewProjectAlerts(ctx)
				slog.InfoContext(ctx, "new project alerts sent", "emails", sent)
				return err
			},
		})
	}

	return jobs
}

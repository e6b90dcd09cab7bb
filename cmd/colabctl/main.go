// cmd/colabctl/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dangerclosesec/colab/internal/config"
	"github.com/dangerclosesec/colab/internal/database"
	"github.com/dangerclosesec/colab/internal/github"
	"github.com/dangerclosesec/colab/internal/repository"
	"github.com/dangerclosesec/colab/internal/service"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	dbConnString string
	verbose      bool

	stacksFile string

	reconcileJob string
	batchSize    int
	dryRun       bool
	timeout      time.Duration

	logger *slog.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbConnString, "db", "d", "", "Database connection string (defaults to DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	seedStacksCmd.Flags().StringVarP(&stacksFile, "file", "f", "", "File with one stack name per line")
	seedStacksCmd.MarkFlagRequired("file")

	reconcileCmd.Flags().StringVar(&reconcileJob, "job", "all", "Job to run: all, stacks, collaborators")
	reconcileCmd.Flags().IntVar(&batchSize, "batch-size", 100, "Number of projects to process between cancellation checks")
	reconcileCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print what would be done without making changes")
	reconcileCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "Maximum time to run reconciliation")

	seedCmd.AddCommand(seedSectorsCmd)
	seedCmd.AddCommand(seedStacksCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(reconcileCmd)
}

var rootCmd = &cobra.Command{
	Use:   "colabctl",
	Short: "colabctl administers a colab installation",
	Long:  `colabctl applies database migrations, seeds the sector and stack catalogs and runs GitHub reconciliation on demand.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
	SilenceUsage: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return database.Migrate(cfg.Database.URL, logger)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the sector and stack catalogs",
}

var seedSectorsCmd = &cobra.Command{
	Use:   "sectors",
	Short: "Insert the fixed list of sectors",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}

		catalog := service.NewCatalogService(repository.NewCatalogRepository(db))
		inserted, err := catalog.SeedSectors(cmd.Context())
		if err != nil {
			return fmt.Errorf("seeding sectors: %w", err)
		}

		logger.Info("sectors seeded", "inserted", inserted)
		return nil
	},
}

var seedStacksCmd = &cobra.Command{
	Use:   "stacks",
	Short: "Insert stack names read from a file",
	Long:  `Insert stack names read from a file, one per line. Blank lines and lines starting with # are ignored. Existing stacks are left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(stacksFile)
		if err != nil {
			return fmt.Errorf("opening stacks file: %w", err)
		}
		defer f.Close()

		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}

		catalog := service.NewCatalogService(repository.NewCatalogRepository(db))
		inserted, err := catalog.SeedStacks(cmd.Context(), f)
		if err != nil {
			return fmt.Errorf("seeding stacks: %w", err)
		}

		logger.Info("stacks seeded", "file", stacksFile, "inserted", inserted)
		return nil
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Refresh project stacks and collaborators from GitHub",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		db, err := database.Open(ctx, cfg)
		if err != nil {
			return err
		}

		githubClient, err := github.NewClient(&github.Config{
			BaseURL: cfg.GitHub.BaseURL,
			Token:   cfg.GitHub.Token,
			Timeout: cfg.GitHub.Timeout,
		})
		if err != nil {
			return err
		}

		reconciler := service.NewReconciliationService(
			repository.NewProjectRepository(db),
			repository.NewUserRepository(db),
			repository.NewCatalogRepository(db),
			githubClient,
			logger,
		)
		reconciler.SetBatchSize(batchSize)
		reconciler.SetDryRun(dryRun)

		switch reconcileJob {
		case "all":
			logger.Info("reconciling stacks and collaborators")
			err = reconciler.RefreshAll(ctx)
		case "stacks":
			logger.Info("reconciling stacks only")
			_, err = reconciler.RefreshStacks(ctx)
		case "collaborators":
			logger.Info("reconciling collaborators only")
			_, err = reconciler.RefreshCollaborators(ctx)
		default:
			return fmt.Errorf("unknown job %q: want all, stacks or collaborators", reconcileJob)
		}
		if err != nil {
			return fmt.Errorf("reconciliation failed: %w", err)
		}

		logger.Info("reconciliation completed successfully")
		return nil
	},
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if dbConnString != "" {
		cfg.Database.URL = dbConnString
	}
	return cfg, nil
}

func openDatabase(ctx context.Context) (*gorm.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return database.Open(ctx, cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

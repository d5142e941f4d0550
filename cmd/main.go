package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"slices"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/mutabay/readme-agent/internal/cli/command/backups"
	"github.com/mutabay/readme-agent/internal/cli/command/configcmd"
	"github.com/mutabay/readme-agent/internal/cli/command/generate"
	"github.com/mutabay/readme-agent/internal/cli/command/health"
	"github.com/mutabay/readme-agent/internal/cli/command/refine"
	"github.com/mutabay/readme-agent/internal/cli/command/repos"
	"github.com/mutabay/readme-agent/internal/cli/registry"
	"github.com/mutabay/readme-agent/internal/config"
	"github.com/mutabay/readme-agent/internal/i18n"
	"github.com/mutabay/readme-agent/internal/infrastructure/ai"
	"github.com/mutabay/readme-agent/internal/infrastructure/backup"
	"github.com/mutabay/readme-agent/internal/infrastructure/vcs/github"
	"github.com/mutabay/readme-agent/internal/logger"
	"github.com/mutabay/readme-agent/internal/services"
	"github.com/mutabay/readme-agent/internal/version"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error starting the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func initializeApp() (*cli.Command, error) {
	_ = godotenv.Load()

	logger.Initialize(
		slices.Contains(os.Args, "--debug"),
		slices.Contains(os.Args, "--verbose"),
	)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}

	cfg, err := config.LoadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	translations, err := i18n.NewTranslations(cfg.Language, "")
	if err != nil {
		return nil, fmt.Errorf("loading translations: %w", err)
	}

	ctx := context.Background()
	provider, err := ai.NewProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("configuring the LLM provider: %w", err)
	}

	if cfg.GitHubToken == "" {
		log.Println(translations.GetMessage("error_missing_token", 0, nil))
	}
	host := github.NewClient(cfg.GitHubToken)

	store, err := backup.NewFileStore(cfg.BackupDir)
	if err != nil {
		return nil, fmt.Errorf("preparing the backup store: %w", err)
	}

	thresholds := services.DefaultThresholds()
	analyzer := services.NewAnalyzerService(provider, thresholds)
	generator := services.NewGeneratorService(provider, thresholds)
	reviewer := services.NewReviewerService(provider, thresholds)
	pipeline := services.NewPipelineService(host, store, analyzer, generator, reviewer)
	discovery := services.NewDiscoveryService(host)
	publisher := services.NewPublisherService(host, cfg.PRBranchPrefix)

	registerCommand := registry.NewRegistry(cfg, translations)

	if err := registerCommand.Register("repos", repos.NewCommandFactory(discovery)); err != nil {
		return nil, err
	}
	if err := registerCommand.Register("generate", generate.NewCommandFactory(pipeline, publisher)); err != nil {
		return nil, err
	}
	if err := registerCommand.Register("refine", refine.NewCommandFactory(host, generator, publisher)); err != nil {
		return nil, err
	}
	if err := registerCommand.Register("backups", backups.NewCommandFactory(store, publisher)); err != nil {
		return nil, err
	}
	if err := registerCommand.Register("health", health.NewCommandFactory(provider, host)); err != nil {
		return nil, err
	}
	if err := registerCommand.Register("config", configcmd.NewCommandFactory()); err != nil {
		return nil, err
	}

	return &cli.Command{
		Name:        "readme-agent",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.Version,
		Description: translations.GetMessage("app_description", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log at debug level with source locations",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log progress information",
			},
		},
		Commands:              registerCommand.CreateCommands(),
		EnableShellCompletion: true,
	}, nil
}

package refine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/mutabay/readme-agent/internal/config"
	"github.com/mutabay/readme-agent/internal/i18n"
	"github.com/mutabay/readme-agent/internal/services"
)

type readmeFetcher interface {
	GetFileContent(ctx context.Context, fullName, path, branch string) (string, bool, error)
}

type refiner interface {
	Refine(ctx context.Context, currentReadme, feedback string) (string, error)
}

type publisherService interface {
	Publish(ctx context.Context, fullName, content, message string, viaPR bool) (services.PublishResult, error)
}

type CommandFactory struct {
	host      readmeFetcher
	generator refiner
	publisher publisherService
}

func NewCommandFactory(host readmeFetcher, generator refiner, publisher publisherService) *CommandFactory {
	return &CommandFactory{host: host, generator: generator, publisher: publisher}
}

func (f *CommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "refine",
		Usage: t.GetMessage("refine_command_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "repo",
				Aliases:  []string{"r"},
				Usage:    "repository whose README to refine, as owner/name",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "feedback",
				Aliases:  []string{"f"},
				Usage:    "what to change, in plain language",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "commit",
				Usage: "commit the refined README directly to the default branch",
			},
			&cli.BoolFlag{
				Name:  "pr",
				Usage: "submit the refined README through a pull request",
			},
		},
		Action: f.createAction(t),
	}
}

func (f *CommandFactory) createAction(t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		repo := command.String("repo")
		if !strings.Contains(repo, "/") {
			return fmt.Errorf("invalid repository %q, expected owner/name", repo)
		}

		commit := command.Bool("commit")
		pr := command.Bool("pr")
		if commit && pr {
			return errors.New("--commit and --pr are mutually exclusive")
		}

		current, ok, err := f.host.GetFileContent(ctx, repo, "README.md", "")
		if err != nil {
			return fmt.Errorf("fetching current README: %w", err)
		}
		if !ok || strings.TrimSpace(current) == "" {
			return fmt.Errorf("%s has no README to refine, run generate first", repo)
		}

		refined, err := f.generator.Refine(ctx, current, command.String("feedback"))
		if err != nil {
			return err
		}

		if !commit && !pr {
			fmt.Println(refined)
			fmt.Println()
			fmt.Println(color.HiBlackString(t.GetMessage("preview_hint", 0, nil)))
			return nil
		}

		published, err := f.publisher.Publish(ctx, repo, refined, "docs: refine README.md", pr)
		if err != nil {
			return fmt.Errorf("publishing refined README: %w", err)
		}

		fmt.Println(t.GetMessage("readme_committed", 0, map[string]interface{}{
			"Repo":   repo,
			"Action": published.Commit.Action,
			"Branch": published.Branch,
		}))
		if published.PR != nil {
			fmt.Println(t.GetMessage("pr_created", 0, map[string]interface{}{
				"Repo":   repo,
				"Number": published.PR.Number,
				"URL":    published.PR.URL,
			}))
		}
		return nil
	}
}

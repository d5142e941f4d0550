package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/mutabay/readme-agent/internal/config"
	"github.com/mutabay/readme-agent/internal/domain/models"
	"github.com/mutabay/readme-agent/internal/i18n"
	"github.com/mutabay/readme-agent/internal/services"
)

type pipelineService interface {
	Run(ctx context.Context, selected []string) []models.RepoResult
}

type publisherService interface {
	Publish(ctx context.Context, fullName, content, message string, viaPR bool) (services.PublishResult, error)
}

type CommandFactory struct {
	pipeline  pipelineService
	publisher publisherService
}

func NewCommandFactory(pipeline pipelineService, publisher publisherService) *CommandFactory {
	return &CommandFactory{pipeline: pipeline, publisher: publisher}
}

func (f *CommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   t.GetMessage("generate_command_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Usage:   "repository to process as owner/name, repeatable",
			},
			&cli.BoolFlag{
				Name:  "commit",
				Usage: "commit the generated README directly to the default branch",
			},
			&cli.BoolFlag{
				Name:  "pr",
				Usage: "submit the generated README through a pull request",
			},
			&cli.BoolFlag{
				Name:  "show",
				Usage: "print the generated README to stdout",
			},
		},
		Action: f.createAction(t),
	}
}

func (f *CommandFactory) createAction(t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		selected := command.StringSlice("repo")
		if len(selected) == 0 {
			return errors.New(t.GetMessage("no_repos_selected", 0, nil))
		}
		for _, name := range selected {
			if !strings.Contains(name, "/") {
				return fmt.Errorf("invalid repository %q, expected owner/name", name)
			}
		}

		commit := command.Bool("commit")
		pr := command.Bool("pr")
		if commit && pr {
			return errors.New("--commit and --pr are mutually exclusive")
		}

		results := f.pipeline.Run(ctx, selected)

		succeeded := 0
		for _, result := range results {
			if !result.Success {
				color.Red(t.GetMessage("generation_failed", 0, map[string]interface{}{
					"Repo":  result.RepoName,
					"Error": result.Err,
				}))
				continue
			}
			succeeded++

			fmt.Println(t.GetMessage("generation_ok", 0, map[string]interface{}{
				"Repo":   result.RepoName,
				"Signal": string(result.Signal),
				"Score":  result.QualityScore,
			}))

			if command.Bool("show") {
				fmt.Println()
				fmt.Println(result.Readme)
				fmt.Println()
			}

			if commit || pr {
				f.publish(ctx, t, result, pr)
			} else {
				fmt.Println(color.HiBlackString(t.GetMessage("preview_hint", 0, nil)))
			}
		}

		fmt.Println()
		fmt.Println(t.GetMessage("generation_summary", succeeded, map[string]interface{}{"Count": succeeded}))

		if succeeded == 0 {
			return errors.New("no README could be generated")
		}
		return nil
	}
}

func (f *CommandFactory) publish(ctx context.Context, t *i18n.Translations, result models.RepoResult, viaPR bool) {
	published, err := f.publisher.Publish(ctx, result.RepoName, result.Readme, "docs: update README.md", viaPR)
	if err != nil {
		color.Red(t.GetMessage("publish_failed", 0, map[string]interface{}{
			"Repo":  result.RepoName,
			"Error": err,
		}))
		return
	}

	fmt.Println(t.GetMessage("readme_committed", 0, map[string]interface{}{
		"Repo":   result.RepoName,
		"Action": published.Commit.Action,
		"Branch": published.Branch,
	}))
	if published.PR != nil {
		fmt.Println(t.GetMessage("pr_created", 0, map[string]interface{}{
			"Repo":   result.RepoName,
			"Number": published.PR.Number,
			"URL":    published.PR.URL,
		}))
	}
}

package repos

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/mutabay/readme-agent/internal/config"
	"github.com/mutabay/readme-agent/internal/domain/models"
	"github.com/mutabay/readme-agent/internal/i18n"
	"github.com/mutabay/readme-agent/internal/services"
)

type discoveryService interface {
	User(ctx context.Context) (models.User, error)
	ListRepositories(ctx context.Context, filter services.RepoFilter) ([]models.RepoSummary, error)
}

type CommandFactory struct {
	discovery discoveryService
}

func NewCommandFactory(discovery discoveryService) *CommandFactory {
	return &CommandFactory{discovery: discovery}
}

func (f *CommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "repos",
		Aliases: []string{"ls"},
		Usage:   t.GetMessage("repos_command_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Usage:   "only repositories with this primary language",
			},
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "only repositories whose name contains this text",
			},
			&cli.StringFlag{
				Name:  "sort",
				Value: "updated",
				Usage: "sort order: updated, stars or name",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "show at most this many repositories",
			},
			&cli.BoolFlag{
				Name:  "missing-readme",
				Usage: "only repositories without a README.md",
			},
		},
		Action: f.createAction(t),
	}
}

func (f *CommandFactory) createAction(t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		user, err := f.discovery.User(ctx)
		if err != nil {
			return fmt.Errorf("connecting to GitHub: %w", err)
		}
		fmt.Println(t.GetMessage("connected_as", 0, map[string]interface{}{"Login": user.Login}))

		repos, err := f.discovery.ListRepositories(ctx, services.RepoFilter{
			Language:      command.String("language"),
			Name:          command.String("name"),
			Sort:          command.String("sort"),
			Limit:         int(command.Int("limit")),
			MissingReadme: command.Bool("missing-readme"),
		})
		if err != nil {
			return fmt.Errorf("listing repositories: %w", err)
		}

		if len(repos) == 0 {
			fmt.Println(t.GetMessage("no_repos_found", 0, nil))
			return nil
		}

		for _, r := range repos {
			printRepo(r)
		}

		stats := services.Summarize(repos)
		fmt.Println()
		fmt.Println(t.GetMessage("repos_summary", 0, map[string]interface{}{
			"Total":   stats.Total,
			"Public":  stats.Public,
			"Private": stats.Private,
			"Stars":   stats.TotalStars,
		}))
		return nil
	}
}

func printRepo(r models.RepoSummary) {
	visibility := color.GreenString("public")
	if r.Private {
		visibility = color.YellowString("private")
	}

	lang := r.Language
	if lang == "" {
		lang = "-"
	}

	fmt.Printf("%-40s %-12s %s ★ %d  %s\n",
		color.CyanString(r.FullName), lang, visibility, r.Stars,
		color.HiBlackString(r.UpdatedAt.Format("2006-01-02")))
}

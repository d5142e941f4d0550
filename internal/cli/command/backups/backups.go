package backups

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/mutabay/readme-agent/internal/config"
	"github.com/mutabay/readme-agent/internal/domain/models"
	"github.com/mutabay/readme-agent/internal/domain/ports"
	"github.com/mutabay/readme-agent/internal/i18n"
	"github.com/mutabay/readme-agent/internal/services"
)

type publisherService interface {
	Publish(ctx context.Context, fullName, content, message string, viaPR bool) (services.PublishResult, error)
}

type CommandFactory struct {
	store     ports.BackupStore
	publisher publisherService
}

func NewCommandFactory(store ports.BackupStore, publisher publisherService) *CommandFactory {
	return &CommandFactory{store: store, publisher: publisher}
}

func (f *CommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "backups",
		Aliases: []string{"bk"},
		Usage:   t.GetMessage("backups_command_usage", 0, nil),
		Commands: []*cli.Command{
			f.listCommand(t),
			f.showCommand(t),
			f.restoreCommand(t),
			f.deleteCommand(t),
			f.cleanupCommand(t, cfg),
		},
	}
}

func (f *CommandFactory) listCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List stored backups, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Usage:   "only backups of this repository (owner/name)",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			var records []models.BackupRecord
			var err error
			if repo := command.String("repo"); repo != "" {
				records, err = f.store.ListForRepo(repo)
			} else {
				records, err = f.store.ListAll()
			}
			if err != nil {
				return fmt.Errorf("listing backups: %w", err)
			}

			if len(records) == 0 {
				fmt.Println(t.GetMessage("no_backups", 0, nil))
				return nil
			}

			for _, r := range records {
				fmt.Printf("%s  %-30s %6d B  %s\n",
					color.CyanString(r.ID), r.RepoName, r.Size,
					color.HiBlackString(r.CreatedAt.Format("2006-01-02 15:04:05")))
			}
			return nil
		},
	}
}

func (f *CommandFactory) showCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the content of a backup",
		ArgsUsage: "<backup-id>",
		Action: func(ctx context.Context, command *cli.Command) error {
			id := command.Args().First()
			if id == "" {
				return errors.New("backup id is required")
			}

			record, ok, err := f.store.Read(id)
			if err != nil {
				return fmt.Errorf("reading backup: %w", err)
			}
			if !ok {
				return errors.New(t.GetMessage("backup_not_found", 0, map[string]interface{}{"ID": id}))
			}

			fmt.Println(record.Content)
			return nil
		},
	}
}

func (f *CommandFactory) restoreCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:      "restore",
		Usage:     "Commit a backed-up README back to its repository",
		ArgsUsage: "<backup-id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "pr",
				Usage: "restore through a pull request instead of a direct commit",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			id := command.Args().First()
			if id == "" {
				return errors.New("backup id is required")
			}

			record, ok, err := f.store.Read(id)
			if err != nil {
				return fmt.Errorf("reading backup: %w", err)
			}
			if !ok {
				return errors.New(t.GetMessage("backup_not_found", 0, map[string]interface{}{"ID": id}))
			}

			published, err := f.publisher.Publish(ctx, record.RepoName, record.Content,
				"docs: restore README.md from backup", command.Bool("pr"))
			if err != nil {
				return fmt.Errorf("restoring backup: %w", err)
			}

			fmt.Println(t.GetMessage("backup_restored", 0, map[string]interface{}{"Repo": record.RepoName}))
			if published.PR != nil {
				fmt.Println(t.GetMessage("pr_created", 0, map[string]interface{}{
					"Repo":   record.RepoName,
					"Number": published.PR.Number,
					"URL":    published.PR.URL,
				}))
			}
			return nil
		},
	}
}

func (f *CommandFactory) deleteCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a backup",
		ArgsUsage: "<backup-id>",
		Action: func(ctx context.Context, command *cli.Command) error {
			id := command.Args().First()
			if id == "" {
				return errors.New("backup id is required")
			}

			deleted, err := f.store.Delete(id)
			if err != nil {
				return fmt.Errorf("deleting backup: %w", err)
			}
			if !deleted {
				return errors.New(t.GetMessage("backup_not_found", 0, map[string]interface{}{"ID": id}))
			}

			fmt.Println(t.GetMessage("backup_deleted", 0, nil))
			return nil
		},
	}
}

func (f *CommandFactory) cleanupCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "cleanup",
		Usage: "Remove old backups, keeping the newest per repository",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "keep",
				Value: cfg.KeepBackups,
				Usage: "how many backups to keep per repository",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			keep := int(command.Int("keep"))
			if keep < 1 {
				return errors.New("--keep must be at least 1")
			}

			removed, err := f.store.Cleanup(keep)
			if err != nil {
				return fmt.Errorf("cleaning up backups: %w", err)
			}

			fmt.Println(t.GetMessage("backups_cleaned", removed, map[string]interface{}{"Count": removed}))
			return nil
		},
	}
}

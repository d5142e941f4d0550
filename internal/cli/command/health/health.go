package health

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/mutabay/readme-agent/internal/config"
	"github.com/mutabay/readme-agent/internal/domain/models"
	"github.com/mutabay/readme-agent/internal/domain/ports"
	"github.com/mutabay/readme-agent/internal/i18n"
)

type userFetcher interface {
	GetAuthenticatedUser(ctx context.Context) (models.User, error)
}

type CommandFactory struct {
	provider ports.AIProvider
	host     userFetcher
}

func NewCommandFactory(provider ports.AIProvider, host userFetcher) *CommandFactory {
	return &CommandFactory{provider: provider, host: host}
}

func (f *CommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:   "health",
		Usage:  t.GetMessage("health_command_usage", 0, nil),
		Action: f.createAction(t),
	}
}

func (f *CommandFactory) createAction(t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		status := f.provider.TestConnection(ctx)
		if status.Connected {
			color.Green(t.GetMessage("health_connected", 0, map[string]interface{}{
				"Provider": status.Provider,
				"Model":    status.Model,
			}))
			for _, m := range status.Models {
				fmt.Println("  " + color.HiBlackString(m))
			}
		} else {
			color.Red(t.GetMessage("health_disconnected", 0, map[string]interface{}{
				"Provider": status.Provider,
				"Error":    status.Error,
			}))
		}

		user, err := f.host.GetAuthenticatedUser(ctx)
		if err != nil {
			color.Red("GitHub: %v", err)
			return fmt.Errorf("health check failed")
		}
		color.Green(t.GetMessage("connected_as", 0, map[string]interface{}{"Login": user.Login}))

		if !status.Connected {
			return fmt.Errorf("health check failed")
		}
		return nil
	}
}

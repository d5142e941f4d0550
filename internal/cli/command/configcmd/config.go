package configcmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/mutabay/readme-agent/internal/config"
	"github.com/mutabay/readme-agent/internal/i18n"
)

type CommandFactory struct{}

func NewCommandFactory() *CommandFactory {
	return &CommandFactory{}
}

func (f *CommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: t.GetMessage("config_command_usage", 0, nil),
		Commands: []*cli.Command{
			f.showCommand(t, cfg),
			f.setCommand(t, cfg),
		},
	}
}

func (f *CommandFactory) showCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the current configuration",
		Action: func(ctx context.Context, command *cli.Command) error {
			fmt.Println(t.GetMessage("current_config", 0, nil))
			printEntry("language", cfg.Language)
			printEntry("provider", cfg.Provider)
			printEntry("gemini-model", cfg.GeminiModel)
			printEntry("gemini-api-key", mask(cfg.GeminiAPIKey))
			printEntry("openai-model", cfg.OpenAIModel)
			printEntry("openai-api-key", mask(cfg.OpenAIAPIKey))
			printEntry("ollama-model", cfg.OllamaModel)
			printEntry("ollama-base-url", cfg.OllamaBaseURL)
			printEntry("llm-timeout", fmt.Sprintf("%ds", cfg.LLMTimeoutSeconds))
			printEntry("github-token", mask(cfg.GitHubToken))
			printEntry("backup-dir", cfg.BackupDir)
			printEntry("keep-backups", strconv.Itoa(cfg.KeepBackups))
			printEntry("pr-branch-prefix", cfg.PRBranchPrefix)
			return nil
		},
	}
}

func (f *CommandFactory) setCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Change one configuration value",
		ArgsUsage: "<key> <value>",
		Action: func(ctx context.Context, command *cli.Command) error {
			key := command.Args().Get(0)
			value := command.Args().Get(1)
			if key == "" || value == "" {
				return errors.New("usage: config set <key> <value>")
			}

			if err := apply(cfg, key, value); err != nil {
				return err
			}
			if err := config.SaveConfig(cfg); err != nil {
				return fmt.Errorf("saving configuration: %w", err)
			}

			fmt.Println(t.GetMessage("config_saved", 0, nil))
			return nil
		},
	}
}

func apply(cfg *config.Config, key, value string) error {
	switch key {
	case "language":
		cfg.Language = value
	case "provider":
		cfg.Provider = value
	case "gemini-api-key":
		cfg.GeminiAPIKey = value
	case "gemini-model":
		cfg.GeminiModel = value
	case "openai-api-key":
		cfg.OpenAIAPIKey = value
	case "openai-model":
		cfg.OpenAIModel = value
	case "ollama-model":
		cfg.OllamaModel = value
	case "ollama-base-url":
		cfg.OllamaBaseURL = value
	case "github-token":
		cfg.GitHubToken = value
	case "pr-branch-prefix":
		cfg.PRBranchPrefix = value
	case "llm-timeout":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("llm-timeout must be a positive number of seconds")
		}
		cfg.LLMTimeoutSeconds = n
	case "keep-backups":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("keep-backups must be a positive number")
		}
		cfg.KeepBackups = n
	default:
		return fmt.Errorf("unknown configuration key %q", key)
	}
	return nil
}

func printEntry(key, value string) {
	if value == "" {
		value = "-"
	}
	fmt.Printf("  %-18s %s\n", color.CyanString(key), value)
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

package i18n

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

// NewTranslations builds the message bundle from the embedded English
// defaults plus any locale files found under localesDir
// (active.<lang>.toml). localesDir may be empty.
func NewTranslations(defaultLang, localesDir string) (*Translations, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")

	if localesDir != "" {
		files, err := filepath.Glob(filepath.Join(localesDir, "active.*.toml"))
		if err != nil {
			return nil, fmt.Errorf("reading locales: %w", err)
		}
		for _, file := range files {
			if _, err := bundle.LoadMessageFile(file); err != nil {
				return nil, fmt.Errorf("loading locale file %s: %w", file, err)
			}
		}
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[app_usage]
	other = "Analyze your GitHub repositories and keep their READMEs fresh with an LLM"

	[app_description]
	other = "readme-agent inspects a repository, builds a fact sheet from its manifests and structure, asks a language model for a README, reviews the result and can commit it back directly or through a pull request. Existing READMEs are backed up locally before anything is overwritten."

	[repos_command_usage]
	other = "List your repositories with optional language and name filters"

	[connected_as]
	other = "Connected as {{.Login}}"

	[repos_summary]
	other = "{{.Total}} repositories ({{.Public}} public, {{.Private}} private, {{.Stars}} stars total)"

	[no_repos_found]
	other = "No repositories matched the given filters"

	[generate_command_usage]
	other = "Generate (or refresh) READMEs for the selected repositories"

	[no_repos_selected]
	other = "No repositories selected. Pass at least one --repo owner/name"

	[generation_ok]
	other = "{{.Repo}}: README generated ({{.Signal}}, quality {{.Score}}/100)"

	[generation_failed]
	other = "{{.Repo}}: generation failed: {{.Error}}"

	[generation_summary]
	one = "{{.Count}} README generated"
	other = "{{.Count}} READMEs generated"

	[readme_committed]
	other = "{{.Repo}}: README {{.Action}} on {{.Branch}}"

	[pr_created]
	other = "{{.Repo}}: pull request #{{.Number}} opened: {{.URL}}"

	[publish_failed]
	other = "{{.Repo}}: publishing README failed: {{.Error}}"

	[preview_hint]
	other = "Re-run with --commit to push directly, or --pr to open a pull request"

	[refine_command_usage]
	other = "Rework an existing README based on your feedback"

	[backups_command_usage]
	other = "Inspect, restore and prune local README backups"

	[no_backups]
	other = "No backups stored yet"

	[backup_not_found]
	other = "Backup '{{.ID}}' not found"

	[backup_deleted]
	other = "Backup deleted"

	[backup_restored]
	other = "README for {{.Repo}} restored from backup"

	[backups_cleaned]
	one = "{{.Count}} old backup removed"
	other = "{{.Count}} old backups removed"

	[health_command_usage]
	other = "Check the configured LLM provider"

	[health_connected]
	other = "{{.Provider}} is reachable (model: {{.Model}})"

	[health_disconnected]
	other = "{{.Provider}} is not reachable: {{.Error}}"

	[config_command_usage]
	other = "Show or change the configuration"

	[config_saved]
	other = "Configuration saved"

	[current_config]
	other = "Current configuration"

	[error_missing_token]
	other = "No GitHub token configured. Set GITHUB_TOKEN or run 'readme-agent config set github-token <token>'"
	`

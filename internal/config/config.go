package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	Language string `json:"language"`

	// Provider selects the LLM backend: "gemini", "openai" or "ollama".
	Provider      string `json:"provider"`
	GeminiAPIKey  string `json:"gemini_api_key,omitempty"`
	GeminiModel   string `json:"gemini_model"`
	OpenAIAPIKey  string `json:"openai_api_key,omitempty"`
	OpenAIModel   string `json:"openai_model"`
	OllamaModel   string `json:"ollama_model"`
	OllamaBaseURL string `json:"ollama_base_url"`

	// LLMTimeoutSeconds bounds every single model call. There is no retry:
	// a timed-out call falls back per stage.
	LLMTimeoutSeconds int `json:"llm_timeout_seconds"`

	GitHubToken string `json:"github_token,omitempty"`

	BackupDir   string `json:"backup_dir"`
	KeepBackups int    `json:"keep_backups"`

	// PRBranchPrefix names the branch created for pull-request submission;
	// a timestamp suffix is appended per run.
	PRBranchPrefix string `json:"pr_branch_prefix"`

	PathFile string `json:"path_file"`
}

const (
	defaultLang           = "en"
	defaultProvider       = "ollama"
	defaultGeminiModel    = "gemini-1.5-flash"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultOllamaModel    = "llama3.1:8b"
	defaultOllamaBaseURL  = "http://localhost:11434"
	defaultTimeoutSeconds = 120
	defaultKeepBackups    = 5
	defaultBranchPrefix   = "readme-update"
)

// LoadConfig reads the config file under path (a directory containing
// .readme-agent/config.json, or a direct path to a .json file), creating
// a default one when missing. Secrets and provider selection can be
// overridden by environment variables after loading.
func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, ".readme-agent")
		configPath = filepath.Join(configDir, "config.json")

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("creating config directory: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg, err := createDefaultConfig(configPath)
		if err != nil {
			return nil, err
		}
		applyEnvOverrides(cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decoding config file: %w", err)
	}
	cfg.PathFile = configPath
	fillDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loaded config is not valid: %w", err)
	}

	return &cfg, nil
}

func createDefaultConfig(path string) (*Config, error) {
	cfg := &Config{PathFile: path}
	fillDefaults(cfg)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	if err := SaveConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fillDefaults(cfg *Config) {
	if cfg.Language == "" {
		cfg.Language = defaultLang
	}
	if cfg.Provider == "" {
		cfg.Provider = defaultProvider
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = defaultGeminiModel
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = defaultOpenAIModel
	}
	if cfg.OllamaModel == "" {
		cfg.OllamaModel = defaultOllamaModel
	}
	if cfg.OllamaBaseURL == "" {
		cfg.OllamaBaseURL = defaultOllamaBaseURL
	}
	if cfg.LLMTimeoutSeconds <= 0 {
		cfg.LLMTimeoutSeconds = defaultTimeoutSeconds
	}
	if cfg.KeepBackups <= 0 {
		cfg.KeepBackups = defaultKeepBackups
	}
	if cfg.PRBranchPrefix == "" {
		cfg.PRBranchPrefix = defaultBranchPrefix
	}
	if cfg.BackupDir == "" && cfg.PathFile != "" {
		cfg.BackupDir = filepath.Join(filepath.Dir(cfg.PathFile), "backups")
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.GitHubToken = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIAPIKey = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		cfg.OllamaModel = v
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		cfg.OllamaBaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAIModel = v
	}
}

// SaveConfig writes the config back to its PathFile. API keys that came
// from the environment are persisted too; use env-only secrets by leaving
// the file fields empty.
func SaveConfig(cfg *Config) error {
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("config to save is not valid: %w", err)
	}

	if cfg.PathFile == "" {
		return errors.New("config file path is not set")
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(cfg.PathFile, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.Language == "" {
		return errors.New("language must not be empty")
	}
	switch cfg.Provider {
	case "gemini", "openai", "ollama":
	default:
		return fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
	if cfg.LLMTimeoutSeconds <= 0 {
		return errors.New("llm_timeout_seconds must be greater than 0")
	}
	if cfg.KeepBackups <= 0 {
		return errors.New("keep_backups must be greater than 0")
	}
	return nil
}

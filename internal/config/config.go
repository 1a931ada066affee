package config

import (
	"os"
	"strconv"

	"gmail-ai-assistant/internal/models"

	"gopkg.in/yaml.v2"
)

const (
	defaultCredentialsPath = "config/credentials.json"
	defaultTokenPath       = "config/token.json"
	defaultFetchLimit      = 50
	defaultGenerationHost  = "http://localhost:11434"
	defaultGenerationModel = "deepseek-r1:7b"
	defaultEmailsPath      = "data/emails"
	defaultDraftsPath      = "data/drafts"
)

// Load reads the configuration from the specified YAML file, then applies
// environment overrides and defaults. A missing file is not an error: every
// value can come from the environment or a default.
func Load(filepath string) (*models.Config, error) {
	var config models.Config

	configFile, err := os.ReadFile(filepath)
	if err == nil {
		if err := yaml.Unmarshal(configFile, &config); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnv(&config)
	applyDefaults(&config)

	return &config, nil
}

// applyEnv overlays environment variables on top of file values. The names
// match the ones the companion .env file documents.
func applyEnv(config *models.Config) {
	setFromEnv(&config.Gmail.CredentialsPath, "GMAIL_CREDENTIALS_PATH")
	setFromEnv(&config.Gmail.TokenPath, "GMAIL_TOKEN_PATH")
	setFromEnv(&config.Gmail.UserEmail, "GMAIL_USER_EMAIL")
	setFromEnv(&config.Generation.Host, "OLLAMA_HOST")
	setFromEnv(&config.Generation.Model, "OLLAMA_MODEL")
	setFromEnv(&config.Storage.EmailsPath, "EMAILS_STORAGE_PATH")
	setFromEnv(&config.Storage.DraftsPath, "DRAFTS_STORAGE_PATH")

	if value := os.Getenv("EMAIL_FETCH_LIMIT"); value != "" {
		if limit, err := strconv.Atoi(value); err == nil && limit > 0 {
			config.FetchLimit = limit
		}
	}
}

func applyDefaults(config *models.Config) {
	if config.Gmail.CredentialsPath == "" {
		config.Gmail.CredentialsPath = defaultCredentialsPath
	}
	if config.Gmail.TokenPath == "" {
		config.Gmail.TokenPath = defaultTokenPath
	}
	if config.Generation.Host == "" {
		config.Generation.Host = defaultGenerationHost
	}
	if config.Generation.Model == "" {
		config.Generation.Model = defaultGenerationModel
	}
	if config.Storage.EmailsPath == "" {
		config.Storage.EmailsPath = defaultEmailsPath
	}
	if config.Storage.DraftsPath == "" {
		config.Storage.DraftsPath = defaultDraftsPath
	}
	if config.FetchLimit <= 0 {
		config.FetchLimit = defaultFetchLimit
	}
}

func setFromEnv(target *string, name string) {
	if value := os.Getenv(name); value != "" {
		*target = value
	}
}

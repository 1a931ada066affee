package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	yamlContent := `gmail:
  credentialsPath: "secrets/credentials.json"
  tokenPath: "secrets/token.json"
  userEmail: "assistant@example.com"
generation:
  host: "http://ollama.internal:11434"
  model: "test-model:latest"
storage:
  emailsPath: "/var/data/emails"
  draftsPath: "/var/data/drafts"
fetchLimit: 25
`

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Gmail.CredentialsPath != "secrets/credentials.json" {
		t.Errorf("Expected credentialsPath 'secrets/credentials.json', got '%s'", cfg.Gmail.CredentialsPath)
	}
	if cfg.Gmail.UserEmail != "assistant@example.com" {
		t.Errorf("Expected userEmail 'assistant@example.com', got '%s'", cfg.Gmail.UserEmail)
	}
	if cfg.Generation.Host != "http://ollama.internal:11434" {
		t.Errorf("Expected generation host 'http://ollama.internal:11434', got '%s'", cfg.Generation.Host)
	}
	if cfg.Generation.Model != "test-model:latest" {
		t.Errorf("Expected model 'test-model:latest', got '%s'", cfg.Generation.Model)
	}
	if cfg.Storage.DraftsPath != "/var/data/drafts" {
		t.Errorf("Expected draftsPath '/var/data/drafts', got '%s'", cfg.Storage.DraftsPath)
	}
	if cfg.FetchLimit != 25 {
		t.Errorf("Expected fetchLimit 25, got %d", cfg.FetchLimit)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load() error on missing file: %v", err)
	}

	if cfg.FetchLimit != defaultFetchLimit {
		t.Errorf("Expected default fetchLimit %d, got %d", defaultFetchLimit, cfg.FetchLimit)
	}
	if cfg.Generation.Host != defaultGenerationHost {
		t.Errorf("Expected default generation host '%s', got '%s'", defaultGenerationHost, cfg.Generation.Host)
	}
	if cfg.Storage.EmailsPath != defaultEmailsPath {
		t.Errorf("Expected default emailsPath '%s', got '%s'", defaultEmailsPath, cfg.Storage.EmailsPath)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	yamlContent := `generation:
  host: "http://from-file:11434"
fetchLimit: 10
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}

	t.Setenv("OLLAMA_HOST", "http://from-env:11434")
	t.Setenv("EMAIL_FETCH_LIMIT", "7")
	t.Setenv("GMAIL_USER_EMAIL", "env@example.com")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Generation.Host != "http://from-env:11434" {
		t.Errorf("Expected env override for host, got '%s'", cfg.Generation.Host)
	}
	if cfg.FetchLimit != 7 {
		t.Errorf("Expected env override fetchLimit 7, got %d", cfg.FetchLimit)
	}
	if cfg.Gmail.UserEmail != "env@example.com" {
		t.Errorf("Expected env override userEmail, got '%s'", cfg.Gmail.UserEmail)
	}
}

func TestLoadInvalidFetchLimitEnvIgnored(t *testing.T) {
	t.Setenv("EMAIL_FETCH_LIMIT", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.FetchLimit != defaultFetchLimit {
		t.Errorf("Expected default fetchLimit %d, got %d", defaultFetchLimit, cfg.FetchLimit)
	}
}

package models

// Config represents the application configuration
type Config struct {
	Gmail      GmailConfig      `yaml:"gmail"`
	Generation GenerationConfig `yaml:"generation"`
	Storage    StorageConfig    `yaml:"storage"`
	FetchLimit int              `yaml:"fetchLimit"`
}

// GmailConfig locates the OAuth2 credential material and the mailbox account
type GmailConfig struct {
	CredentialsPath string `yaml:"credentialsPath"`
	TokenPath       string `yaml:"tokenPath"`
	UserEmail       string `yaml:"userEmail"`
}

// GenerationConfig points at the language-model completion endpoint
type GenerationConfig struct {
	Host  string `yaml:"host"`
	Model string `yaml:"model"`
}

// StorageConfig holds the directories for processed records and drafts
type StorageConfig struct {
	EmailsPath string `yaml:"emailsPath"`
	DraftsPath string `yaml:"draftsPath"`
}

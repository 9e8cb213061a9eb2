// Package config provides configuration management for the issue manager.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/sgaunet/issue-manager/pkg/constants"
	"github.com/sgaunet/issue-manager/pkg/hooks"
	"github.com/sgaunet/issue-manager/pkg/tracker"
	"gopkg.in/yaml.v3"
)

var (
	// ErrGitHubCredentials is returned when the GitHub API key or app name is missing.
	ErrGitHubCredentials = errors.New("GitHub API key or app name is empty")
	// ErrGitLabCredentials is returned when the GitLab API key is missing.
	ErrGitLabCredentials = errors.New("GitLab API key is empty")
	// ErrInvalidPageSize is returned when the page size is out of range.
	ErrInvalidPageSize = errors.New("invalid page size")
	// ErrInvalidS3Config is returned when the S3 section is incomplete.
	ErrInvalidS3Config = errors.New("invalid S3 configuration")
)

// S3Config holds the configuration for the S3 storage backend used for
// export and import files.
type S3Config struct {
	Endpoint   string `env:"S3ENDPOINT"            env-default:"" yaml:"endpoint"`
	BucketName string `env:"S3BUCKETNAME"          env-default:"" yaml:"bucketName"`
	BucketPath string `env:"S3BUCKETPATH"          env-default:"" yaml:"bucketPath"`
	Region     string `env:"S3REGION"              env-default:"" yaml:"region"`
	AccessKey  string `env:"AWS_ACCESS_KEY_ID"     yaml:"accessKey"`
	SecretKey  string `env:"AWS_SECRET_ACCESS_KEY" yaml:"secretKey"`
}

// GitHubConfig holds the GitHub credentials.
type GitHubConfig struct {
	APIKey  string `env:"GITHUB_API_KEY"  yaml:"apiKey"`
	AppName string `env:"GITHUB_APP_NAME" yaml:"appName"`
	BaseURL string `env:"GITHUB_API_URL"  env-default:"https://api.github.com/" yaml:"baseURL"`
}

// GitLabConfig holds the GitLab credentials.
type GitLabConfig struct {
	APIKey    string `env:"GITLAB_API_KEY"    yaml:"apiKey"`
	BaseURL   string `env:"GITLAB_API_URL"    env-default:"https://gitlab.com/api/v4/" yaml:"baseURL"`
	UserAgent string `env:"GITLAB_USER_AGENT" yaml:"userAgent"`
}

// Config holds the application configuration.
type Config struct {
	Provider   string       `env:"ISSUE_PROVIDER"   env-default:"github" yaml:"provider"`
	Repository string       `env:"ISSUE_REPOSITORY" env-default:""       yaml:"repository"`
	PageSize   int          `env:"ISSUE_PAGE_SIZE"  env-default:"50"     yaml:"pageSize"`
	LocalPath  string       `env:"LOCALPATH"        env-default:""       yaml:"localpath"`
	GitHub     GitHubConfig `yaml:"github"`
	GitLab     GitLabConfig `yaml:"gitlab"`
	Hooks      hooks.Hooks  `yaml:"hooks"`
	S3cfg      S3Config     `yaml:"s3cfg"`
	DebugLevel string       `env:"DEBUGLEVEL"       env-default:"info"   yaml:"debugLevel"`
	NoLogTime  bool         `env:"NOLOGTIME"        env-default:"false"  yaml:"noLogTime"`
}

// NewConfigFromFile returns a new Config struct from the given file.
func NewConfigFromFile(filePath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(filePath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from file %s: %w", filePath, err)
	}
	return &cfg, nil
}

// NewConfigFromEnv returns a new Config struct from the environment variables.
func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := cleanenv.ReadEnv(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}
	return &cfg, nil
}

// SelectedProvider parses the configured provider name.
func (c *Config) SelectedProvider() (tracker.Provider, error) {
	p, err := tracker.ParseProvider(c.Provider)
	if err != nil {
		return "", fmt.Errorf("provider %q: %w", c.Provider, err)
	}
	return p, nil
}

// Validate checks the settings that do not depend on the selected provider.
// Credentials are checked separately by CheckProviderCredentials so that a
// console session can start with only one provider configured.
func (c *Config) Validate() error {
	if _, err := c.SelectedProvider(); err != nil {
		return err
	}
	if c.PageSize < constants.MinPageSize || c.PageSize > constants.MaxPageSize {
		return fmt.Errorf("%w: %d (expected %d to %d)", ErrInvalidPageSize,
			c.PageSize, constants.MinPageSize, constants.MaxPageSize)
	}
	if c.S3cfg.BucketName != "" {
		if err := c.validateS3(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateS3() error {
	n := len(c.S3cfg.BucketName)
	if n < constants.S3BucketNameMinLength || n > constants.S3BucketNameMaxLength {
		return fmt.Errorf("%w: bucket name must be %d to %d characters, got %q", ErrInvalidS3Config,
			constants.S3BucketNameMinLength, constants.S3BucketNameMaxLength, c.S3cfg.BucketName)
	}
	if c.S3cfg.Region == "" {
		return fmt.Errorf("%w: region is required when a bucket is set", ErrInvalidS3Config)
	}
	return nil
}

// CheckProviderCredentials returns an error when the credentials needed by
// provider are missing or blank.
func (c *Config) CheckProviderCredentials(provider tracker.Provider) error {
	switch provider {
	case tracker.ProviderGitHub:
		if isBlank(c.GitHub.APIKey) || isBlank(c.GitHub.AppName) {
			return ErrGitHubCredentials
		}
	case tracker.ProviderGitLab:
		if isBlank(c.GitLab.APIKey) {
			return ErrGitLabCredentials
		}
	default:
		return fmt.Errorf("%q: %w", provider, tracker.ErrUnknownProvider)
	}
	return nil
}

// IsS3ConfigValid returns true if export and import files go to S3.
func (c *Config) IsS3ConfigValid() bool {
	return len(c.S3cfg.BucketName) > 0 && len(c.S3cfg.Region) > 0
}

func (c *Config) String() string {
	cyaml, err := yaml.Marshal(c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return string(cyaml)
}

// Redacted returns a YAML representation of the config with sensitive fields redacted.
func (c *Config) Redacted() string {
	redacted := *c
	redact(&redacted.GitHub.APIKey)
	redact(&redacted.GitLab.APIKey)
	redact(&redacted.S3cfg.AccessKey)
	redact(&redacted.S3cfg.SecretKey)
	cyaml, err := yaml.Marshal(redacted)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return string(cyaml)
}

// Usage prints the usage of the config.
func (c *Config) Usage() {
	f := cleanenv.Usage(c, nil)
	f()
}

func redact(s *string) {
	if *s != "" {
		*s = constants.RedactedValue
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Package app wires the configuration to a provider adapter, a storage
// backend and the Access Service.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sgaunet/issue-manager/pkg/config"
	"github.com/sgaunet/issue-manager/pkg/github"
	"github.com/sgaunet/issue-manager/pkg/gitlab"
	"github.com/sgaunet/issue-manager/pkg/ratelimit"
	"github.com/sgaunet/issue-manager/pkg/service"
	"github.com/sgaunet/issue-manager/pkg/storage"
	"github.com/sgaunet/issue-manager/pkg/storage/localstorage"
	"github.com/sgaunet/issue-manager/pkg/storage/s3storage"
	"github.com/sgaunet/issue-manager/pkg/tracker"
)

// ErrLocalPathNotDir is returned when LOCALPATH is set but is not a directory.
var ErrLocalPathNotDir = errors.New("local path is not a directory")

// App holds the loaded configuration and the storage shared by every
// Service it builds.
type App struct {
	cfg      *config.Config
	storage  storage.Storage
	progress service.ProgressReporter
	log      Logger
}

// Logger interface defines the logging methods used by the application.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

// NewApp loads the configuration from configFile, or from the environment
// when configFile is empty, and returns the App built on it.
func NewApp(ctx context.Context, configFile string) (*App, error) {
	var cfg *config.Config
	var err error
	if len(configFile) > 0 {
		cfg, err = config.NewConfigFromFile(configFile)
		if err != nil {
			return nil, err
		}
	} else {
		cfg, err = config.NewConfigFromEnv()
		if err != nil {
			return nil, err
		}
	}
	return NewAppWithConfig(ctx, cfg)
}

// NewAppWithConfig validates cfg and selects the storage backend: S3 when
// the S3 section is complete, the local directory LocalPath otherwise.
func NewAppWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &App{
		cfg:      cfg,
		progress: service.NewNoOpProgressReporter(),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	if cfg.IsS3ConfigValid() {
		var opts []s3storage.Option
		if cfg.S3cfg.AccessKey != "" && cfg.S3cfg.SecretKey != "" {
			opts = append(opts, s3storage.WithStaticCredentials(cfg.S3cfg.AccessKey, cfg.S3cfg.SecretKey))
		}
		s3, err := s3storage.NewS3Storage(ctx, cfg.S3cfg.Region, cfg.S3cfg.Endpoint,
			cfg.S3cfg.BucketName, cfg.S3cfg.BucketPath, opts...)
		if err != nil {
			return nil, err
		}
		app.storage = s3
		return app, nil
	}

	if len(cfg.LocalPath) > 0 {
		if stat, err := os.Stat(cfg.LocalPath); err != nil || !stat.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrLocalPathNotDir, cfg.LocalPath)
		}
	}
	app.storage = localstorage.NewLocalStorage(cfg.LocalPath)
	return app, nil
}

// Config returns the configuration the App was built with.
func (a *App) Config() *config.Config {
	return a.cfg
}

// SetLogger sets the logger of the App and of every package it wires. A
// *slog.Logger also enables console progress reporting.
func (a *App) SetLogger(l Logger) {
	a.log = l
	github.SetLogger(l)
	gitlab.SetLogger(l)
	ratelimit.SetLogger(l)
	service.SetLogger(l)
	if sl, ok := l.(*slog.Logger); ok {
		a.progress = service.NewConsoleProgressReporter(sl)
	}
}

// NewRepository returns a fresh adapter for provider, with its own
// throttle. Credentials are checked first.
func (a *App) NewRepository(provider tracker.Provider) (tracker.Repository, error) {
	if err := a.cfg.CheckProviderCredentials(provider); err != nil {
		return nil, err
	}

	switch provider {
	case tracker.ProviderGitHub:
		return github.NewClient(a.cfg.GitHub.APIKey, a.cfg.GitHub.AppName,
			github.WithBaseURL(a.cfg.GitHub.BaseURL)), nil
	case tracker.ProviderGitLab:
		c, err := gitlab.NewClient(a.cfg.GitLab.APIKey,
			gitlab.WithBaseURL(a.cfg.GitLab.BaseURL),
			gitlab.WithUserAgent(a.cfg.GitLab.UserAgent))
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%q: %w", provider, tracker.ErrUnknownProvider)
	}
}

// ServiceFor returns a Service over a new adapter for provider.
func (a *App) ServiceFor(provider tracker.Provider) (*service.Service, error) {
	repo, err := a.NewRepository(provider)
	if err != nil {
		return nil, err
	}
	a.log.Debug("service selected", "provider", provider.DisplayName())
	return service.New(repo,
		service.WithStorage(a.storage),
		service.WithHooks(&a.cfg.Hooks),
		service.WithPageSize(a.cfg.PageSize),
		service.WithProgressReporter(a.progress),
	), nil
}

// Package service provides the Access Service: the single entry point that
// turns repository calls into uniform Results, paginates listings and drives
// bulk export and import.
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/sgaunet/issue-manager/pkg/constants"
	"github.com/sgaunet/issue-manager/pkg/storage"
	"github.com/sgaunet/issue-manager/pkg/storage/localstorage"
	"github.com/sgaunet/issue-manager/pkg/tracker"
)

var log Logger

// Logger interface defines the logging methods used by the service.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

func init() {
	log = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetLogger sets the logger.
func SetLogger(l Logger) {
	if l != nil {
		log = l
	}
}

// HookRunner runs the user commands around export and import.
// *hooks.Hooks implements it.
type HookRunner interface {
	HasPostExport() bool
	ExecutePostExport(ctx context.Context, file string) error
	HasPreImport() bool
	ExecutePreImport(ctx context.Context, file string) error
}

// Service wraps exactly one tracker.Repository.
type Service struct {
	repo     tracker.Repository
	files    storage.Storage
	progress ProgressReporter
	hooks    HookRunner
	pageSize int
}

// Option configures a Service.
type Option func(*Service)

// WithStorage sets where export files are written and import files read.
// Default: the local file system relative to the working directory.
func WithStorage(s storage.Storage) Option {
	return func(svc *Service) {
		if s != nil {
			svc.files = s
		}
	}
}

// WithProgressReporter sets the progress reporter. Default: no-op.
func WithProgressReporter(p ProgressReporter) Option {
	return func(svc *Service) {
		if p != nil {
			svc.progress = p
		}
	}
}

// WithHooks sets the export/import hooks.
func WithHooks(h HookRunner) Option {
	return func(svc *Service) {
		svc.hooks = h
	}
}

// WithPageSize sets the page size used by ListAllIssues. Values below 1 are ignored.
func WithPageSize(size int) Option {
	return func(svc *Service) {
		if size >= constants.MinPageSize {
			svc.pageSize = size
		}
	}
}

// New returns a Service over repo.
func New(repo tracker.Repository, opts ...Option) *Service {
	svc := &Service{
		repo:     repo,
		files:    localstorage.NewLocalStorage(""),
		progress: NewNoOpProgressReporter(),
		pageSize: constants.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// PageSize returns the page size used by ListAllIssues.
func (s *Service) PageSize() int {
	return s.pageSize
}

// AddIssue creates an issue.
func (s *Service) AddIssue(ctx context.Context, repo string, req tracker.CreateIssueRequest) tracker.Result[tracker.Issue] {
	return result(guard("add issue", func() (tracker.Issue, error) {
		return s.repo.AddIssue(ctx, repo, req)
	}))
}

// UpdateIssue replaces the title and description of an issue.
func (s *Service) UpdateIssue(ctx context.Context, repo string, req tracker.UpdateIssueRequest) tracker.Result[tracker.Issue] {
	return result(guard("update issue", func() (tracker.Issue, error) {
		return s.repo.UpdateIssue(ctx, repo, req)
	}))
}

// CloseIssue closes an issue.
func (s *Service) CloseIssue(ctx context.Context, repo string, id int64) tracker.Result[tracker.Issue] {
	return result(guard("close issue", func() (tracker.Issue, error) {
		return s.repo.CloseIssue(ctx, repo, id)
	}))
}

// ListAllIssues fetches every page, starting at page 1, until a page
// shorter than the page size comes back. The first failure aborts the
// listing and nothing fetched so far is returned.
func (s *Service) ListAllIssues(ctx context.Context, repo string) tracker.Result[[]tracker.Issue] {
	s.progress.StartPhase(PhaseListing)

	all := []tracker.Issue{}
	for page := constants.FirstPage; ; page++ {
		issues, err := guard("list issues", func() ([]tracker.Issue, error) {
			return s.repo.ListIssues(ctx, repo, page, s.pageSize)
		})
		if err != nil {
			s.progress.FailPhase(PhaseListing, err)
			log.Debug("ListAllIssues aborted", "repo", repo, "page", page, "error", err)
			return tracker.Failure[[]tracker.Issue](tracker.AsError(err))
		}
		all = append(all, issues...)
		s.progress.UpdatePhase(PhaseListing, len(all), 0)

		if len(issues) < s.pageSize {
			break
		}
	}

	s.progress.CompletePhase(PhaseListing)
	log.Debug("ListAllIssues", "repo", repo, "count", len(all))
	return tracker.Success(all)
}

// result converts an adapter outcome into a Result. Errors that are not
// *tracker.Error become KindUnexpected.
func result[T any](data T, err error) tracker.Result[T] {
	if err != nil {
		return tracker.Failure[T](tracker.AsError(err))
	}
	return tracker.Success(data)
}

// guard calls a repository operation and reports a panic inside it as a
// KindUnexpected error.
func guard[T any](op string, fn func() (T, error)) (data T, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("repository call panicked", "op", op, "panic", r)
			err = tracker.NewError(tracker.KindUnexpected, op+" failed unexpectedly", fmt.Sprint(r))
		}
	}()
	return fn()
}

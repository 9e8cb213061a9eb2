// Package tracker defines the provider-neutral issue model shared by the
// GitHub and GitLab adapters.
package tracker

import (
	"context"
	"fmt"
	"strings"
)

//go:generate go tool github.com/matryer/moq -out mocks/repository.go -pkg mocks . Repository

// Provider identifies a remote issue-tracking service.
type Provider string

const (
	// ProviderGitHub is the GitHub REST API.
	ProviderGitHub Provider = "github"
	// ProviderGitLab is the GitLab REST API (v4).
	ProviderGitLab Provider = "gitlab"
)

// Providers lists the supported providers in display order.
var Providers = []Provider{ProviderGitHub, ProviderGitLab}

// ParseProvider maps a provider name to a Provider, ignoring case.
func ParseProvider(name string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(name))) {
	case ProviderGitHub:
		return ProviderGitHub, nil
	case ProviderGitLab:
		return ProviderGitLab, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}

// DisplayName returns the human readable provider name.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderGitHub:
		return "GitHub"
	case ProviderGitLab:
		return "GitLab"
	default:
		return string(p)
	}
}

// Issue is a remote ticket as seen by this client.
// ID is the provider's per-repository number (GitHub number, GitLab iid).
// An absent description is the empty string.
type Issue struct {
	ID          int64
	Name        string
	Description string
}

// CreateIssueRequest carries the fields of an issue to create.
type CreateIssueRequest struct {
	Title       string
	Description string
}

// UpdateIssueRequest carries the replacement title and description of an issue.
type UpdateIssueRequest struct {
	ID          int64
	Title       string
	Description string
}

// Repository is the capability every provider adapter implements.
// Failures are returned as *Error values; context errors are returned as-is.
type Repository interface {
	AddIssue(ctx context.Context, repo string, req CreateIssueRequest) (Issue, error)
	UpdateIssue(ctx context.Context, repo string, req UpdateIssueRequest) (Issue, error)
	CloseIssue(ctx context.Context, repo string, id int64) (Issue, error)
	ListIssues(ctx context.Context, repo string, page, pageSize int) ([]Issue, error)
}

// Result is the uniform outcome of an Access Service operation.
// Data is meaningful when Successful; Error is set when not.
type Result[T any] struct {
	Successful bool
	Data       T
	Error      *Error
}

// Success wraps data in a successful Result.
func Success[T any](data T) Result[T] {
	return Result[T]{Successful: true, Data: data}
}

// Failure returns a failed Result carrying err.
func Failure[T any](err *Error) Result[T] {
	return Result[T]{Error: err}
}

// FailureWithData returns a failed Result that still carries data, used for
// import rows whose creation was rejected.
func FailureWithData[T any](data T, err *Error) Result[T] {
	return Result[T]{Data: data, Error: err}
}

package gitlab

import (
	"fmt"

	"github.com/sgaunet/issue-manager/pkg/tracker"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

//go:generate go tool github.com/matryer/moq -out mocks/issues.go -pkg mocks . IssuesService

// IssuesService defines the subset of the GitLab Issues API used by Client.
type IssuesService interface {
	//nolint:lll // GitLab API method signatures are inherently long
	ListProjectIssues(pid any, opt *gitlab.ListProjectIssuesOptions, options ...gitlab.RequestOptionFunc) ([]*gitlab.Issue, *gitlab.Response, error)
	//nolint:lll // GitLab API method signatures are inherently long
	CreateIssue(pid any, opt *gitlab.CreateIssueOptions, options ...gitlab.RequestOptionFunc) (*gitlab.Issue, *gitlab.Response, error)
	//nolint:lll // GitLab API method signatures are inherently long
	UpdateIssue(pid any, issue int64, opt *gitlab.UpdateIssueOptions, options ...gitlab.RequestOptionFunc) (*gitlab.Issue, *gitlab.Response, error)
}

// issuesServiceWrapper wraps the official GitLab issues service.
type issuesServiceWrapper struct {
	service gitlab.IssuesServiceInterface
}

// newIssuesService wraps the issues service of an official GitLab client.
//
//nolint:ireturn // Interface return is intentional for dependency injection
func newIssuesService(client *gitlab.Client) IssuesService {
	return &issuesServiceWrapper{service: client.Issues}
}

//nolint:lll,wrapcheck // Wrapper method with long signature, error passthrough intentional
func (w *issuesServiceWrapper) ListProjectIssues(pid any, opt *gitlab.ListProjectIssuesOptions, options ...gitlab.RequestOptionFunc) (issues []*gitlab.Issue, resp *gitlab.Response, err error) {
	defer recoverDecodePanic(&err)
	return w.service.ListProjectIssues(pid, opt, options...)
}

//nolint:lll,wrapcheck // Wrapper method with long signature, error passthrough intentional
func (w *issuesServiceWrapper) CreateIssue(pid any, opt *gitlab.CreateIssueOptions, options ...gitlab.RequestOptionFunc) (issue *gitlab.Issue, resp *gitlab.Response, err error) {
	defer recoverDecodePanic(&err)
	return w.service.CreateIssue(pid, opt, options...)
}

//nolint:lll,wrapcheck // Wrapper method with long signature, error passthrough intentional
func (w *issuesServiceWrapper) UpdateIssue(pid any, iid int64, opt *gitlab.UpdateIssueOptions, options ...gitlab.RequestOptionFunc) (issue *gitlab.Issue, resp *gitlab.Response, err error) {
	defer recoverDecodePanic(&err)
	return w.service.UpdateIssue(pid, iid, opt, options...)
}

// recoverDecodePanic turns a panic raised while client-go decodes an issue
// (it dereferences a missing "id" field) into a malformed response error.
func recoverDecodePanic(err *error) {
	if r := recover(); r != nil {
		log.Warn("gitlab response could not be decoded", "panic", r)
		*err = tracker.MalformedError(fmt.Errorf("%v", r))
	}
}

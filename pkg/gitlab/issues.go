package gitlab

import (
	"context"
	"strings"

	"github.com/sgaunet/issue-manager/pkg/tracker"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const (
	listScopeAll     = "all"
	stateEventClose  = "close"
	invalidRepoError = "repository must not be empty"
)

var _ tracker.Repository = (*Client)(nil)

// AddIssue creates an issue in the project identified by repo (id or path).
func (c *Client) AddIssue(ctx context.Context, repo string, req tracker.CreateIssueRequest) (tracker.Issue, error) {
	if err := validateRepo(repo); err != nil {
		return tracker.Issue{}, err
	}
	opts := &gitlab.CreateIssueOptions{
		Title:       gitlab.Ptr(req.Title),
		Description: gitlab.Ptr(req.Description),
	}
	issue, _, err := c.issues.CreateIssue(repo, opts, gitlab.WithContext(ctx))
	return convertResult(ctx, "create issue", issue, err)
}

// UpdateIssue replaces the title and description of an issue.
func (c *Client) UpdateIssue(ctx context.Context, repo string, req tracker.UpdateIssueRequest) (tracker.Issue, error) {
	if err := validateRepo(repo); err != nil {
		return tracker.Issue{}, err
	}
	opts := &gitlab.UpdateIssueOptions{
		Title:       gitlab.Ptr(req.Title),
		Description: gitlab.Ptr(req.Description),
	}
	issue, _, err := c.issues.UpdateIssue(repo, req.ID, opts, gitlab.WithContext(ctx))
	return convertResult(ctx, "update issue", issue, err)
}

// CloseIssue closes an issue through a state event.
func (c *Client) CloseIssue(ctx context.Context, repo string, id int64) (tracker.Issue, error) {
	if err := validateRepo(repo); err != nil {
		return tracker.Issue{}, err
	}
	opts := &gitlab.UpdateIssueOptions{
		StateEvent: gitlab.Ptr(stateEventClose),
	}
	issue, _, err := c.issues.UpdateIssue(repo, id, opts, gitlab.WithContext(ctx))
	return convertResult(ctx, "close issue", issue, err)
}

// ListIssues returns one page of issues of any state and author.
func (c *Client) ListIssues(ctx context.Context, repo string, page, pageSize int) ([]tracker.Issue, error) {
	if err := validateRepo(repo); err != nil {
		return nil, err
	}
	opts := &gitlab.ListProjectIssuesOptions{
		ListOptions: gitlab.ListOptions{Page: int64(page), PerPage: int64(pageSize)},
		Scope:       gitlab.Ptr(listScopeAll),
	}
	glIssues, _, err := c.issues.ListProjectIssues(repo, opts, gitlab.WithContext(ctx))
	if err != nil {
		return nil, classify(ctx, "list issues", err)
	}

	issues := make([]tracker.Issue, 0, len(glIssues))
	for _, gi := range glIssues {
		if gi == nil {
			continue
		}
		issues = append(issues, convertIssue(gi))
	}
	log.Debug("ListIssues", "repo", repo, "page", page, "count", len(issues))
	return issues, nil
}

func convertResult(ctx context.Context, op string, issue *gitlab.Issue, err error) (tracker.Issue, error) {
	if err != nil {
		return tracker.Issue{}, classify(ctx, op, err)
	}
	if issue == nil {
		return tracker.Issue{}, emptyIssueError()
	}
	return convertIssue(issue), nil
}

func convertIssue(gi *gitlab.Issue) tracker.Issue {
	return tracker.Issue{
		ID:          gi.IID,
		Name:        gi.Title,
		Description: gi.Description,
	}
}

func validateRepo(repo string) error {
	if strings.TrimSpace(repo) == "" {
		return tracker.NewError(tracker.KindInvalidRepository, invalidRepoError, "")
	}
	return nil
}

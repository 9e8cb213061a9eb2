package github

import "github.com/sgaunet/issue-manager/pkg/tracker"

// githubIssue is the subset of the GitHub issue payload used by this client.
type githubIssue struct {
	Number int64   `json:"number"`
	Title  string  `json:"title"`
	Body   *string `json:"body"`
	State  string  `json:"state"`
}

func (g githubIssue) convert() tracker.Issue {
	issue := tracker.Issue{ID: g.Number, Name: g.Title}
	if g.Body != nil {
		issue.Description = *g.Body
	}
	return issue
}

func convertIssues(ghIssues []githubIssue) []tracker.Issue {
	issues := make([]tracker.Issue, 0, len(ghIssues))
	for _, g := range ghIssues {
		issues = append(issues, g.convert())
	}
	return issues
}

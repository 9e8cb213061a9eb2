package render

import (
	"fmt"
	"strings"

	"github.com/sgaunet/issue-manager/pkg/constants"
	"github.com/sgaunet/issue-manager/pkg/tracker"
)

// IssueDetail renders one issue with its description as markdown.
func IssueDetail(issue tracker.Issue) string {
	header := fmt.Sprintf("#%d  %s", issue.ID, issue.Name)
	if !ColorsEnabled() {
		if issue.Description == "" {
			return header + "\n"
		}
		return header + "\n\n" + issue.Description + "\n"
	}

	sections := []string{labelStyle.Render(header)}
	if issue.Description != "" {
		rendered, err := Markdown(issue.Description)
		if err != nil {
			rendered = issue.Description
		}
		sections = append(sections, rendered)
	}
	return strings.Join(sections, "\n\n") + "\n"
}

// Error renders a failed Result's error on one line.
func Error(err *tracker.Error) string {
	if err == nil {
		return ""
	}
	return Failure(err)
}

// Failure renders any error on one line.
func Failure(err error) string {
	return StyledText("Error: "+err.Error(), errorStyle)
}

// Success renders a confirmation message.
func Success(msg string) string {
	return StyledText(msg, successStyle)
}

// Separator renders a horizontal rule.
func Separator() string {
	return StyledText(strings.Repeat("-", constants.SeparatorWidth), dimStyle)
}

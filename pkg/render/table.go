package render

import (
	"fmt"
	"strconv"
	"strings"

	humanize "github.com/dustin/go-humanize"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/sgaunet/issue-manager/pkg/constants"
	"github.com/sgaunet/issue-manager/pkg/tracker"
)

const (
	markImported = "✔"
	markFailed   = "✘"
)

// IssueTable renders issues as an Id/Name/Description table.
func IssueTable(issues []tracker.Issue) string {
	if len(issues) == 0 {
		return StyledText("No issues found.", dimStyle)
	}

	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, issueRow(issue))
	}
	headers := []string{"Id", "Name", "Description"}

	if !ColorsEnabled() {
		return plainTable(headers, rows)
	}
	return styledTable(headers, rows, nil)
}

// ImportResultsTable renders one row per imported line:
// Imported/Id/Name/Description/Error. A successful row shows the created
// issue, a failed row the issue read from the file.
func ImportResultsTable(results []tracker.Result[tracker.Issue]) string {
	if len(results) == 0 {
		return StyledText("Nothing to import.", dimStyle)
	}

	headers := []string{"Imported", "Id", "Name", "Description", "Error"}
	rows := make([][]string, 0, len(results))
	failed := make([]bool, 0, len(results))
	for _, r := range results {
		mark := markImported
		errMsg := ""
		if !r.Successful {
			mark = markFailed
			if r.Error != nil {
				errMsg = r.Error.Message
			}
		}
		rows = append(rows, append([]string{mark}, append(issueRow(r.Data), truncate(errMsg, constants.MaxCellWidth))...))
		failed = append(failed, !r.Successful)
	}

	if !ColorsEnabled() {
		return plainTable(headers, rows)
	}
	return styledTable(headers, rows, failed)
}

// ListSummary describes the number of issues fetched from repo.
func ListSummary(repo string, count int) string {
	noun := "issues"
	if count == 1 {
		noun = "issue"
	}
	return fmt.Sprintf("%s %s in %s", humanize.Comma(int64(count)), noun, repo)
}

// ImportSummary counts imported and failed rows.
func ImportSummary(results []tracker.Result[tracker.Issue]) string {
	var ok, ko int64
	for _, r := range results {
		if r.Successful {
			ok++
		} else {
			ko++
		}
	}
	summary := fmt.Sprintf("%s imported, %s failed", humanize.Comma(ok), humanize.Comma(ko))
	if ko > 0 {
		return StyledText(summary, errorStyle)
	}
	return StyledText(summary, successStyle)
}

func issueRow(issue tracker.Issue) []string {
	return []string{
		strconv.FormatInt(issue.ID, 10),
		truncate(issue.Name, constants.MaxCellWidth),
		truncate(oneLine(issue.Description), constants.MaxCellWidth),
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// styledTable renders a bordered table. failed marks rows drawn in red;
// nil means none.
func styledTable(headers []string, rows [][]string, failed []bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
			if row == table.HeaderRow {
				return s.Bold(true).Foreground(lipgloss.Color("15"))
			}
			if row >= 0 && row < len(failed) && failed[row] {
				return s.Foreground(lipgloss.Color("9"))
			}
			return s
		})
	return t.Render()
}

func plainTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			if i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers)
	total := 0
	for _, w := range widths {
		total += w
	}
	b.WriteString(strings.Repeat("-", total+2*(len(widths)-1)))
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}

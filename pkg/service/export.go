package service

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/sgaunet/issue-manager/pkg/constants"
	"github.com/sgaunet/issue-manager/pkg/tracker"
)

// ExportIssues lists every issue of repo and writes them to path as
// Id;Name;Description lines. It returns the listing Result; when the
// listing fails nothing is written.
func (s *Service) ExportIssues(ctx context.Context, repo, path string) tracker.Result[[]tracker.Issue] {
	listed := s.ListAllIssues(ctx, repo)
	if !listed.Successful {
		return listed
	}

	s.progress.StartPhase(PhaseExport)
	content := formatExport(listed.Data)
	if err := s.files.SaveFile(ctx, bytes.NewReader(content), path); err != nil {
		s.progress.FailPhase(PhaseExport, err)
		return tracker.Failure[[]tracker.Issue](
			tracker.NewError(tracker.KindUnexpected, "failed to write export file '"+path+"'", err.Error()))
	}
	s.progress.CompletePhase(PhaseExport)
	log.Info("issues exported", "repo", repo, "file", path, "count", len(listed.Data))

	if s.hooks != nil && s.hooks.HasPostExport() {
		log.Info("ExportIssues (call postexport hook)", "file", path)
		if err := s.hooks.ExecutePostExport(ctx, path); err != nil {
			log.Warn("postexport hook failed", "file", path, "error", err)
		}
	}
	return listed
}

// formatExport renders issues in the export file format. Fields are not
// escaped: a ';' or newline inside a field breaks re-import.
func formatExport(issues []tracker.Issue) []byte {
	var b bytes.Buffer
	b.WriteString(constants.ExportHeader)
	b.WriteString(constants.LineTerminator)
	for _, issue := range issues {
		b.WriteString(strings.Join([]string{
			strconv.FormatInt(issue.ID, 10),
			issue.Name,
			issue.Description,
		}, constants.FieldDelimiter))
		b.WriteString(constants.LineTerminator)
	}
	return b.Bytes()
}

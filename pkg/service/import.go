package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sgaunet/issue-manager/pkg/constants"
	"github.com/sgaunet/issue-manager/pkg/storage"
	"github.com/sgaunet/issue-manager/pkg/tracker"
)

// ImportIssues reads path and creates one issue per data line, in file
// order. The whole file is validated before the first creation: a missing
// file or a malformed line is returned as a fatal *tracker.Error and nothing
// is created. A rejected creation is reported in its row Result, which keeps
// the issue read from the file, and does not stop the following rows.
func (s *Service) ImportIssues(ctx context.Context, repo, path string) ([]tracker.Result[tracker.Issue], error) {
	if s.hooks != nil && s.hooks.HasPreImport() {
		log.Info("ImportIssues (call preimport hook)", "file", path)
		if err := s.hooks.ExecutePreImport(ctx, path); err != nil {
			return nil, tracker.NewError(tracker.KindUnexpected, "preimport hook failed", err.Error())
		}
	}

	s.progress.StartPhase(PhaseParse)
	staged, err := s.readImportFile(ctx, path)
	if err != nil {
		s.progress.FailPhase(PhaseParse, err)
		return nil, err
	}
	s.progress.CompletePhase(PhaseParse)

	s.progress.StartPhase(PhaseImport)
	results := make([]tracker.Result[tracker.Issue], 0, len(staged))
	for i, issue := range staged {
		if ctxErr := ctx.Err(); ctxErr != nil {
			s.progress.FailPhase(PhaseImport, ctxErr)
			return results, fmt.Errorf("import interrupted after %d of %d issues: %w", i, len(staged), ctxErr)
		}

		req := tracker.CreateIssueRequest{Title: issue.Name, Description: issue.Description}
		created, err := guard("add issue", func() (tracker.Issue, error) {
			return s.repo.AddIssue(ctx, repo, req)
		})
		if err != nil {
			log.Warn("Failed to create issue", "title", issue.Name, "error", err)
			results = append(results, tracker.FailureWithData(issue, tracker.AsError(err)))
		} else {
			results = append(results, tracker.Success(created))
		}
		s.progress.UpdatePhase(PhaseImport, i+1, len(staged))
	}
	s.progress.CompletePhase(PhaseImport)

	return results, nil
}

// readImportFile parses every data line of path. The first line is the
// header and is skipped without being checked; data lines are numbered
// from 1 in error messages.
func (s *Service) readImportFile(ctx context.Context, path string) ([]tracker.Issue, error) {
	rc, err := s.files.Open(ctx, path)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return nil, tracker.NewError(tracker.KindFileNotFound, fmt.Sprintf("File '%s' not found", path), "")
		}
		return nil, tracker.NewError(tracker.KindUnexpected, fmt.Sprintf("failed to open '%s'", path), err.Error())
	}
	defer func() { _ = rc.Close() }()

	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, constants.InitialLineBuffer), constants.MaxLineSize)

	var staged []tracker.Issue
	header := true
	lineNumber := 0
	for scanner.Scan() {
		if header {
			header = false
			continue
		}
		lineNumber++
		issue, err := parseLine(strings.TrimSuffix(scanner.Text(), "\r"), lineNumber)
		if err != nil {
			return nil, err
		}
		staged = append(staged, issue)
	}
	if err := scanner.Err(); err != nil {
		return nil, tracker.NewError(tracker.KindUnexpected, fmt.Sprintf("failed to read '%s'", path), err.Error())
	}
	return staged, nil
}

func parseLine(line string, lineNumber int) (tracker.Issue, error) {
	fields := strings.Split(line, constants.FieldDelimiter)
	if len(fields) != constants.ExportFieldCount {
		return tracker.Issue{}, tracker.NewError(tracker.KindInvalidLineFormat,
			fmt.Sprintf("Invalid line format at line %d. Expected '%s'", lineNumber, constants.ExportHeader), "")
	}
	id, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil {
		return tracker.Issue{}, tracker.NewError(tracker.KindInvalidLineFormat,
			fmt.Sprintf("Invalid id '%s' at line %d. Expected an integer", fields[0], lineNumber), "")
	}
	return tracker.Issue{ID: id, Name: fields[1], Description: fields[2]}, nil
}

package service

import (
	"fmt"
	"log/slog"
)

// Phase identifies a step of a long running operation.
type Phase string

const (
	// PhaseListing fetches every page of issues.
	PhaseListing Phase = "listing"
	// PhaseExport writes the export file.
	PhaseExport Phase = "export"
	// PhaseParse reads and validates the import file.
	PhaseParse Phase = "parse"
	// PhaseImport creates the imported issues.
	PhaseImport Phase = "import"
)

// ProgressReporter provides user-visible progress reporting.
type ProgressReporter interface {
	// StartPhase signals the beginning of a phase.
	StartPhase(phase Phase)

	// UpdatePhase provides mid-phase progress. total is 0 when unknown.
	UpdatePhase(phase Phase, current, total int)

	// CompletePhase signals successful phase completion.
	CompletePhase(phase Phase)

	// FailPhase signals phase failure.
	FailPhase(phase Phase, err error)
}

// ConsoleProgressReporter implements ProgressReporter on a slog logger.
type ConsoleProgressReporter struct {
	logger *slog.Logger
}

// NewConsoleProgressReporter creates a new console progress reporter.
func NewConsoleProgressReporter(logger *slog.Logger) *ConsoleProgressReporter {
	return &ConsoleProgressReporter{
		logger: logger,
	}
}

// StartPhase logs the start of a phase.
func (r *ConsoleProgressReporter) StartPhase(phase Phase) {
	r.logger.Info(fmt.Sprintf("%s...", phaseMessage(phase)))
}

// UpdatePhase logs mid-phase progress.
func (r *ConsoleProgressReporter) UpdatePhase(phase Phase, current, total int) {
	if total > 0 {
		r.logger.Info(fmt.Sprintf("%s... (%d/%d)", phaseMessage(phase), current, total))
		return
	}
	r.logger.Debug(fmt.Sprintf("%s... (%d so far)", phaseMessage(phase), current))
}

// CompletePhase logs successful phase completion.
func (r *ConsoleProgressReporter) CompletePhase(phase Phase) {
	r.logger.Info(fmt.Sprintf("%s ✓", phaseMessage(phase)))
}

// FailPhase logs phase failure.
func (r *ConsoleProgressReporter) FailPhase(phase Phase, err error) {
	r.logger.Error(fmt.Sprintf("%s ✗ %v", phaseMessage(phase), err))
}

func phaseMessage(phase Phase) string {
	switch phase {
	case PhaseListing:
		return "Fetching issues"
	case PhaseExport:
		return "Writing export file"
	case PhaseParse:
		return "Reading import file"
	case PhaseImport:
		return "Creating issues"
	default:
		return string(phase)
	}
}

// NoOpProgressReporter is a progress reporter that does nothing.
type NoOpProgressReporter struct{}

// NewNoOpProgressReporter creates a new no-op progress reporter.
func NewNoOpProgressReporter() *NoOpProgressReporter {
	return &NoOpProgressReporter{}
}

// StartPhase does nothing.
func (r *NoOpProgressReporter) StartPhase(_ Phase) {}

// UpdatePhase does nothing.
func (r *NoOpProgressReporter) UpdatePhase(_ Phase, _, _ int) {}

// CompletePhase does nothing.
func (r *NoOpProgressReporter) CompletePhase(_ Phase) {}

// FailPhase does nothing.
func (r *NoOpProgressReporter) FailPhase(_ Phase, _ error) {}

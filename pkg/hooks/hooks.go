// Package hooks runs user commands around export and import.
package hooks

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/go-andiamo/splitter"
)

const (
	exportFilePlaceholder = "%EXPORTFILE%"
	importFilePlaceholder = "%IMPORTFILE%"
)

// Hooks holds the commands run after an export and before an import.
type Hooks struct {
	PostExport string `env:"POSTEXPORT" env-default:"" yaml:"postexport"`
	PreImport  string `env:"PREIMPORT"  env-default:"" yaml:"preimport"`
}

// GeneratePostExportCmd returns the post export command for file.
func (h *Hooks) GeneratePostExportCmd(file string) string {
	return strings.ReplaceAll(h.PostExport, exportFilePlaceholder, file)
}

// GeneratePreImportCmd returns the pre import command for file.
func (h *Hooks) GeneratePreImportCmd(file string) string {
	return strings.ReplaceAll(h.PreImport, importFilePlaceholder, file)
}

// HasPostExport returns true if a post export command is defined.
func (h *Hooks) HasPostExport() bool {
	return h.PostExport != ""
}

// HasPreImport returns true if a pre import command is defined.
func (h *Hooks) HasPreImport() bool {
	return h.PreImport != ""
}

// ExecutePostExport executes the post export command.
func (h *Hooks) ExecutePostExport(ctx context.Context, file string) error {
	return execute(ctx, h.GeneratePostExportCmd(file))
}

// ExecutePreImport executes the pre import command.
func (h *Hooks) ExecutePreImport(ctx context.Context, file string) error {
	return execute(ctx, h.GeneratePreImportCmd(file))
}

// execute executes the given command.
func execute(ctx context.Context, command string) error {
	if command == "" {
		return nil
	}
	commandSplitter, err := splitter.NewSplitter(' ', splitter.SingleQuotes, splitter.DoubleQuotes)
	if err != nil {
		return fmt.Errorf("failed to create command splitter: %w", err)
	}
	trimmer := splitter.Trim("'\"")
	splitCmd, err := commandSplitter.Split(command, trimmer)
	if err != nil {
		return fmt.Errorf("failed to parse command '%s': %w", command, err)
	}
	if len(splitCmd) == 0 {
		return nil
	}
	//nolint:gosec // G204: Command execution with user input is intentional for hook functionality
	out, err := exec.CommandContext(ctx, splitCmd[0], splitCmd[1:]...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to execute %s: %w (%s)", command, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Package console implements the interactive prompt: pick a service and a
// repository, then run issue commands against them.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-andiamo/splitter"
	"github.com/sgaunet/issue-manager/pkg/constants"
	"github.com/sgaunet/issue-manager/pkg/render"
	"github.com/sgaunet/issue-manager/pkg/tracker"
)

// ErrUsage is returned for a command with missing or invalid arguments.
var ErrUsage = errors.New("usage")

// Service is the part of *service.Service the console drives.
type Service interface {
	AddIssue(ctx context.Context, repo string, req tracker.CreateIssueRequest) tracker.Result[tracker.Issue]
	UpdateIssue(ctx context.Context, repo string, req tracker.UpdateIssueRequest) tracker.Result[tracker.Issue]
	CloseIssue(ctx context.Context, repo string, id int64) tracker.Result[tracker.Issue]
	ListAllIssues(ctx context.Context, repo string) tracker.Result[[]tracker.Issue]
	ExportIssues(ctx context.Context, repo, path string) tracker.Result[[]tracker.Issue]
	ImportIssues(ctx context.Context, repo, path string) ([]tracker.Result[tracker.Issue], error)
}

// ServiceFactory builds a Service for provider, with a fresh adapter.
type ServiceFactory func(provider tracker.Provider) (Service, error)

// Console reads commands line by line and writes their outcome.
type Console struct {
	in       io.Reader
	out      io.Writer
	factory  ServiceFactory
	split    splitter.Splitter
	provider tracker.Provider
	svc      Service
	repo     string
}

// Option configures a Console.
type Option func(*Console)

// WithRepository preselects the repository.
func WithRepository(repo string) Option {
	return func(c *Console) {
		c.repo = strings.TrimSpace(repo)
	}
}

// New returns a Console reading from in and writing to out.
func New(in io.Reader, out io.Writer, factory ServiceFactory, opts ...Option) (*Console, error) {
	split, err := splitter.NewSplitter(' ', splitter.SingleQuotes, splitter.DoubleQuotes)
	if err != nil {
		return nil, fmt.Errorf("failed to create command splitter: %w", err)
	}
	c := &Console{
		in:      in,
		out:     out,
		factory: factory,
		split:   split,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SelectService switches to provider. The previous selection is kept when
// the new one cannot be built.
func (c *Console) SelectService(provider tracker.Provider) error {
	svc, err := c.factory(provider)
	if err != nil {
		return err
	}
	c.provider = provider
	c.svc = svc
	return nil
}

// Run reads commands until exit, end of input or cancellation of ctx.
func (c *Console) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(c.in)
	scanner.Buffer(make([]byte, 0, constants.InitialLineBuffer), constants.MaxLineSize)

	c.printStatus()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, constants.Prompt)
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read command: %w", err)
			}
			return nil
		}
		quit, err := c.Execute(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintln(c.out, render.Failure(err))
		}
		if quit {
			return nil
		}
	}
}

// Execute runs a single command line. quit is true for exit.
func (c *Console) Execute(ctx context.Context, line string) (quit bool, err error) {
	args, err := c.tokenize(line)
	if err != nil {
		return false, err
	}
	if len(args) == 0 {
		return false, nil
	}

	cmd, args := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "exit", "quit":
		return true, nil
	case "help", "?":
		fmt.Fprint(c.out, helpText)
		return false, nil
	case "service":
		return false, c.cmdService(args)
	case "repo":
		return false, c.cmdRepo(args)
	case "status":
		c.printStatus()
		return false, nil
	}

	if err := c.ready(); err != nil {
		return false, err
	}
	switch cmd {
	case "add":
		return false, c.cmdAdd(ctx, args)
	case "update":
		return false, c.cmdUpdate(ctx, args)
	case "close":
		return false, c.cmdClose(ctx, args)
	case "list":
		return false, c.cmdList(ctx)
	case "export":
		return false, c.cmdExport(ctx, args)
	case "import":
		return false, c.cmdImport(ctx, args)
	default:
		return false, fmt.Errorf("unknown command %q, type help for the list of commands", cmd)
	}
}

func (c *Console) tokenize(line string) ([]string, error) {
	parts, err := c.split.Split(strings.TrimSpace(line), splitter.Trim("'\""))
	if err != nil {
		return nil, fmt.Errorf("failed to parse command: %w", err)
	}
	args := parts[:0]
	for _, p := range parts {
		if p != "" {
			args = append(args, p)
		}
	}
	return args, nil
}

func (c *Console) ready() error {
	if c.svc == nil {
		return errors.New("no service selected, use: service <github|gitlab>")
	}
	if c.repo == "" {
		return errors.New("no repository selected, use: repo <path>")
	}
	return nil
}

func (c *Console) printStatus() {
	service := "none"
	if c.svc != nil {
		service = c.provider.DisplayName()
	}
	repo := c.repo
	if repo == "" {
		repo = "none"
	}
	fmt.Fprintln(c.out, render.Separator())
	fmt.Fprintf(c.out, "Service: %s | Repository: %s\n", service, repo)
	fmt.Fprintln(c.out, render.Separator())
}

func (c *Console) cmdService(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: service <github|gitlab>", ErrUsage)
	}
	provider, err := tracker.ParseProvider(args[0])
	if err != nil {
		return fmt.Errorf("%q: %w", args[0], err)
	}
	if err := c.SelectService(provider); err != nil {
		return err
	}
	c.printStatus()
	return nil
}

func (c *Console) cmdRepo(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: repo <path>", ErrUsage)
	}
	c.repo = args[0]
	c.printStatus()
	return nil
}

func (c *Console) cmdAdd(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: add <title> [description]", ErrUsage)
	}
	req := tracker.CreateIssueRequest{Title: args[0]}
	if len(args) == 2 {
		req.Description = args[1]
	}
	return c.printIssueResult(c.svc.AddIssue(ctx, c.repo, req), "Issue created")
}

func (c *Console) cmdUpdate(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: update <id> <title> [description]", ErrUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	req := tracker.UpdateIssueRequest{ID: id, Title: args[1]}
	if len(args) == 3 {
		req.Description = args[2]
	}
	return c.printIssueResult(c.svc.UpdateIssue(ctx, c.repo, req), "Issue updated")
}

func (c *Console) cmdClose(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: close <id>", ErrUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return c.printIssueResult(c.svc.CloseIssue(ctx, c.repo, id), "Issue closed")
}

func (c *Console) cmdList(ctx context.Context) error {
	res := c.svc.ListAllIssues(ctx, c.repo)
	if !res.Successful {
		return res.Error
	}
	fmt.Fprintln(c.out, render.IssueTable(res.Data))
	fmt.Fprintln(c.out, render.ListSummary(c.repo, len(res.Data)))
	return nil
}

func (c *Console) cmdExport(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: export <file>", ErrUsage)
	}
	res := c.svc.ExportIssues(ctx, c.repo, args[0])
	if !res.Successful {
		return res.Error
	}
	fmt.Fprintln(c.out, render.Success(fmt.Sprintf("Exported %s to %s", render.ListSummary(c.repo, len(res.Data)), args[0])))
	return nil
}

func (c *Console) cmdImport(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: import <file>", ErrUsage)
	}
	results, err := c.svc.ImportIssues(ctx, c.repo, args[0])
	if len(results) > 0 {
		fmt.Fprintln(c.out, render.ImportResultsTable(results))
		fmt.Fprintln(c.out, render.ImportSummary(results))
	}
	if err != nil {
		return fmt.Errorf("import of %s failed: %w", args[0], err)
	}
	if len(results) == 0 {
		fmt.Fprintln(c.out, render.ImportResultsTable(results))
	}
	return nil
}

func (c *Console) printIssueResult(res tracker.Result[tracker.Issue], done string) error {
	if !res.Successful {
		return res.Error
	}
	fmt.Fprintln(c.out, render.Success(done))
	fmt.Fprint(c.out, render.IssueDetail(res.Data))
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q, expected an integer", s)
	}
	return id, nil
}

const helpText = `Commands:
  service <github|gitlab>              select the issue tracker
  repo <path>                          select the repository (owner/name or group/project)
  status                               show the current selection
  add <title> [description]            create an issue
  update <id> <title> [description]    replace the title and description of an issue
  close <id>                           close an issue
  list                                 list every issue
  export <file>                        write every issue to file (Id;Name;Description)
  import <file>                        create one issue per line of file
  help                                 show this help
  exit                                 leave
Quote arguments containing spaces: add "Crash on start" "Steps to reproduce..."
`

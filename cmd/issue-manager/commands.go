package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sgaunet/issue-manager/pkg/console"
	"github.com/sgaunet/issue-manager/pkg/render"
	"github.com/sgaunet/issue-manager/pkg/service"
	"github.com/sgaunet/issue-manager/pkg/tracker"
	"github.com/spf13/cobra"
)

var errPartialImport = errors.New("some issues could not be imported")

// selectedService returns a Service for the configured provider and the selected
// repository.
func (c *cli) selectedService() (*service.Service, string, error) {
	repo, err := c.repository()
	if err != nil {
		return nil, "", err
	}
	provider, err := c.cfg.SelectedProvider()
	if err != nil {
		return nil, "", err
	}
	svc, err := c.app.ServiceFor(provider)
	if err != nil {
		return nil, "", err
	}
	return svc, repo, nil
}

func (c *cli) printIssue(res tracker.Result[tracker.Issue], done string) error {
	if !res.Successful {
		return res.Error
	}
	fmt.Fprintln(c.out, render.Success(done))
	fmt.Fprint(c.out, render.IssueDetail(res.Data))
	return nil
}

func (c *cli) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <title> [description]",
		Short: "Create an issue",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, repo, err := c.selectedService()
			if err != nil {
				return err
			}
			req := tracker.CreateIssueRequest{Title: args[0]}
			if len(args) == 2 {
				req.Description = args[1]
			}
			return c.printIssue(svc.AddIssue(cmd.Context(), repo, req), "Issue created")
		},
	}
}

func (c *cli) updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <title> [description]",
		Short: "Replace the title and description of an issue",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, repo, err := c.selectedService()
			if err != nil {
				return err
			}
			req := tracker.UpdateIssueRequest{ID: id, Title: args[1]}
			if len(args) == 3 {
				req.Description = args[2]
			}
			return c.printIssue(svc.UpdateIssue(cmd.Context(), repo, req), "Issue updated")
		},
	}
}

func (c *cli) closeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <id>",
		Short: "Close an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, repo, err := c.selectedService()
			if err != nil {
				return err
			}
			return c.printIssue(svc.CloseIssue(cmd.Context(), repo, id), "Issue closed")
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every issue of the repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, repo, err := c.selectedService()
			if err != nil {
				return err
			}
			res := svc.ListAllIssues(cmd.Context(), repo)
			if !res.Successful {
				return res.Error
			}
			fmt.Fprintln(c.out, render.IssueTable(res.Data))
			fmt.Fprintln(c.out, render.ListSummary(repo, len(res.Data)))
			return nil
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write every issue to file as Id;Name;Description lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, repo, err := c.selectedService()
			if err != nil {
				return err
			}
			res := svc.ExportIssues(cmd.Context(), repo, args[0])
			if !res.Successful {
				return res.Error
			}
			fmt.Fprintln(c.out, render.Success(fmt.Sprintf("Exported %s to %s", render.ListSummary(repo, len(res.Data)), args[0])))
			return nil
		},
	}
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Create one issue per line of file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, repo, err := c.selectedService()
			if err != nil {
				return err
			}
			results, err := svc.ImportIssues(cmd.Context(), repo, args[0])
			if len(results) > 0 || err == nil {
				fmt.Fprintln(c.out, render.ImportResultsTable(results))
				fmt.Fprintln(c.out, render.ImportSummary(results))
			}
			if err != nil {
				return fmt.Errorf("import of %s failed: %w", args[0], err)
			}
			for _, r := range results {
				if !r.Successful {
					return errPartialImport
				}
			}
			return nil
		},
	}
}

func (c *cli) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runShell(cmd.Context())
		},
	}
}

func (c *cli) runShell(ctx context.Context) error {
	factory := func(p tracker.Provider) (console.Service, error) {
		svc, err := c.app.ServiceFor(p)
		if err != nil {
			return nil, err
		}
		return svc, nil
	}
	sh, err := console.New(c.in, c.out, factory, console.WithRepository(c.cfg.Repository))
	if err != nil {
		return err
	}
	if provider, err := c.cfg.SelectedProvider(); err == nil {
		if err := sh.SelectService(provider); err != nil {
			fmt.Fprintln(c.out, render.Failure(err))
		}
	}
	return sh.Run(ctx)
}

func (c *cli) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "config",
		Short:       "Print the environment variables and the current configuration",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipAppAnnotation: "true"},
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfiguration(c.flags.configFile)
			if err != nil {
				return err
			}
			applyCliOverrides(cfg, c.flags)
			cfg.Usage()
			fmt.Fprintln(c.out, render.Separator())
			fmt.Fprintln(c.out, "issue-manager configuration:")
			fmt.Fprint(c.out, cfg.Redacted())
			return nil
		},
	}
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipAppAnnotation: "true"},
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintln(c.out, version)
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q, expected an integer", s)
	}
	return id, nil
}

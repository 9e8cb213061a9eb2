package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/sgaunet/issue-manager/pkg/app"
	"github.com/sgaunet/issue-manager/pkg/config"
	"github.com/spf13/cobra"
)

var errNoRepository = errors.New("no repository selected, use --repo or ISSUE_REPOSITORY")

const skipAppAnnotation = "skipApp"

// cliFlags holds command-line flag values.
type cliFlags struct {
	configFile string
	provider   string
	repo       string
	pageSize   int
	localPath  string
}

// cli carries what the subcommands share once the root pre-run is done.
type cli struct {
	flags  cliFlags
	cfg    *config.Config
	app    *app.App
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func loadConfiguration(cfgFile string) (*config.Config, error) {
	if len(cfgFile) > 0 {
		cfg, err := config.NewConfigFromFile(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
		return cfg, nil
	}
	return config.NewConfigFromEnv()
}

// applyCliOverrides applies command-line flag values to the configuration.
func applyCliOverrides(cfg *config.Config, flags cliFlags) {
	if flags.provider != "" {
		cfg.Provider = flags.provider
	}
	if flags.repo != "" {
		cfg.Repository = flags.repo
	}
	if flags.pageSize > 0 {
		cfg.PageSize = flags.pageSize
	}
	if flags.localPath != "" {
		cfg.LocalPath = flags.localPath
	}
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	c := &cli{in: in, out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:           "issue-manager",
		Short:         "Manage GitHub and GitLab issues from the terminal",
		Long:          "Create, update, close, list, export and import issues of a GitHub or GitLab repository.\nWithout a subcommand an interactive shell is started.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, ok := cmd.Annotations[skipAppAnnotation]; ok {
				return nil
			}
			return c.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runShell(cmd.Context())
		},
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&c.flags.configFile, "config", "c", "", "Path to configuration file (YAML)")
	pf.StringVarP(&c.flags.provider, "provider", "p", "", "Issue tracker: github or gitlab (default: ISSUE_PROVIDER or github)")
	pf.StringVarP(&c.flags.repo, "repo", "r", "", "Repository: owner/name on GitHub, group/project on GitLab")
	pf.IntVar(&c.flags.pageSize, "page-size", 0, "Issues fetched per page when listing (default: 50)")
	pf.StringVar(&c.flags.localPath, "dir", "", "Directory for export and import files when S3 is not configured")

	rootCmd.AddCommand(
		c.addCmd(),
		c.updateCmd(),
		c.closeCmd(),
		c.listCmd(),
		c.exportCmd(),
		c.importCmd(),
		c.shellCmd(),
		c.configCmd(),
		c.versionCmd(),
	)
	return rootCmd
}

// setup loads the configuration, applies the flags and builds the App.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := loadConfiguration(c.flags.configFile)
	if err != nil {
		return err
	}
	applyCliOverrides(cfg, c.flags)

	a, err := app.NewAppWithConfig(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	a.SetLogger(initTrace(c.errOut, cfg.DebugLevel, cfg.NoLogTime))

	c.cfg = cfg
	c.app = a
	return nil
}

func (c *cli) repository() (string, error) {
	if c.cfg.Repository == "" {
		return "", errNoRepository
	}
	return c.cfg.Repository, nil
}

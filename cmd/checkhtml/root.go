package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/checkhtml/internal/config"
	"github.com/jonathan/checkhtml/internal/fetch"
	"github.com/jonathan/checkhtml/internal/grader"
	"github.com/jonathan/checkhtml/internal/guard"
	"github.com/jonathan/checkhtml/internal/logger"
	"github.com/jonathan/checkhtml/internal/report"
)

const (
	defaultChecksFile = "checks.json"
	defaultHTMLFile   = "index.html"
	defaultURL        = "http://intense-earth-7167.herokuapp.com/"
)

// pipeline names which input the checks run against.
type pipeline int

const (
	localPipeline pipeline = iota
	remotePipeline
)

type checkOptions struct {
	checks     string
	file       string
	url        string
	format     string
	render     bool
	configPath string
	verbose    bool
}

// subcommands holds the constructors registered by each command file's init.
// Each newRootCmd call builds its own subcommand tree from them.
var subcommands []func(opts *checkOptions) *cobra.Command

func registerSubcommand(newCmd func(opts *checkOptions) *cobra.Command) {
	subcommands = append(subcommands, newCmd)
}

func newRootCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "checkhtml",
		Short: "Check an HTML page for the presence of CSS selectors",
		Long: `checkhtml loads an HTML document from a local file or a URL, looks up every
CSS selector listed in a JSON checks file and prints a JSON object mapping each
selector to whether at least one element matched.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to YAML config file (default $XDG_CONFIG_HOME/checkhtml/config.yml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")

	cmd.Flags().StringVarP(&opts.checks, "checks", "c", defaultChecksFile, "Path to checks JSON file")
	cmd.Flags().StringVarP(&opts.file, "file", "f", defaultHTMLFile, "Path to HTML file")
	cmd.Flags().StringVarP(&opts.url, "url", "u", defaultURL, "URL of the HTML page (--url= with no value checks the default URL)")
	cmd.Flags().StringVar(&opts.format, "format", report.FormatJSON, "Output format: json or markdown")
	cmd.Flags().BoolVar(&opts.render, "render", false, "Render the URL in headless Chrome before checking")
	cmd.MarkFlagsMutuallyExclusive("file", "url")

	for _, newSubcommand := range subcommands {
		cmd.AddCommand(newSubcommand(opts))
	}

	return cmd
}

// pipelineFor selects the remote pipeline only when --url was given explicitly.
func pipelineFor(cmd *cobra.Command) pipeline {
	if cmd.Flags().Changed("url") {
		return remotePipeline
	}
	return localPipeline
}

// setup loads configuration and returns a context carrying the run's logger.
func setup(ctx context.Context, opts *checkOptions) (context.Context, *config.Config, error) {
	cfg, err := config.LoadConfig(config.FindConfigFile(opts.configPath))
	if err != nil {
		return nil, nil, err
	}

	l, err := logger.New(cfg.Environment, opts.verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger.WithLogger(ctx, l), cfg, nil
}

func runCheck(cmd *cobra.Command, opts *checkOptions) error {
	ctx, cfg, err := setup(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Get(ctx).Sync() }()

	w, err := report.New(opts.format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	checksPath, err := guard.FileExists(opts.checks)
	if err != nil {
		return err
	}

	var result *grader.Result
	switch pipelineFor(cmd) {
	case remotePipeline:
		target := opts.url
		if target == "" {
			target = defaultURL
		}
		logger.Info(ctx, "checking remote page", zap.String("url", target), zap.Bool("render", opts.render))

		remote := &grader.Remote{
			Source: &fetch.Fetcher{
				Options: &fetch.Options{
					Timeout:   cfg.Fetch.Timeout,
					UserAgent: cfg.Fetch.UserAgent,
					Headers:   cfg.Fetch.Headers,
				},
				Render:        opts.render,
				RenderTimeout: cfg.Fetch.RenderTimeout,
			},
			TempDir: cfg.TempDir,
		}
		result, err = remote.Check(ctx, target, checksPath)
	default:
		htmlPath, guardErr := guard.FileExists(opts.file)
		if guardErr != nil {
			return guardErr
		}
		logger.Info(ctx, "checking local file", zap.String("path", htmlPath))

		result, err = grader.CheckFile(ctx, htmlPath, checksPath)
	}
	if err != nil {
		return err
	}

	return w.Write(result)
}

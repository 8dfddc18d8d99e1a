package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/gabesx/Code-churn/internal/api"
	"github.com/gabesx/Code-churn/internal/api/gitlab"
	"github.com/gabesx/Code-churn/internal/config"
	"github.com/gabesx/Code-churn/internal/domain"
	"github.com/gabesx/Code-churn/internal/report"
	"github.com/gabesx/Code-churn/internal/service"
)

// collectCommand builds the collect subcommand, the main entry point.
func collectCommand() *cobra.Command {
	var (
		configFile  string
		baseURL     string
		project     string
		token       string
		authMethod  string
		state       string
		pageSize    int
		output      string
		format      string
		httpTimeout int
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Fetch merge requests and write the churn report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if configFile != "" {
				if err := cfg.ApplyFile(configFile); err != nil {
					return err
				}
			}

			// Explicit flags win over file and environment
			flags := cmd.Flags()
			if flags.Changed("base-url") {
				cfg.BaseURL = baseURL
			}
			if flags.Changed("project") {
				cfg.Project = project
			}
			if flags.Changed("token") {
				cfg.Token = token
			}
			if flags.Changed("auth-method") {
				cfg.AuthMethod = authMethod
			}
			if flags.Changed("state") {
				cfg.State = state
			}
			if flags.Changed("page-size") {
				cfg.PageSize = pageSize
			}
			if flags.Changed("output") {
				cfg.Output = output
			}
			if flags.Changed("format") {
				cfg.Format = format
			}
			if flags.Changed("http-timeout") {
				cfg.HTTPTimeoutSeconds = httpTimeout
			}
			if flags.Changed("verbose") {
				cfg.Verbose = verbose
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			return runCollect(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "path to YAML config file")
	flags.StringVar(&baseURL, "base-url", "", "GitLab API base URL")
	flags.StringVarP(&project, "project", "p", "", "project ID or namespace/project path")
	flags.StringVarP(&token, "token", "t", "", "GitLab access token")
	flags.StringVar(&authMethod, "auth-method", "", "authentication method: private-token or oauth")
	flags.StringVar(&state, "state", "", "merge request state filter (all, opened, merged, closed)")
	flags.IntVar(&pageSize, "page-size", 0, "listing page size")
	flags.StringVarP(&output, "output", "o", "", "report file path")
	flags.StringVarP(&format, "format", "f", "", "report format: csv or table")
	flags.IntVar(&httpTimeout, "http-timeout", 0, "HTTP request timeout in seconds")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

// runCollect wires up all dependencies and executes one collection run.
// This is the composition root where all dependencies are created and
// injected. Follows SOLID principles and IoC (Inversion of Control).
func runCollect(ctx context.Context, cfg *config.Config) error {
	logger := newLogger(cfg.Verbose)

	gitlabClient := gitlab.NewClient(api.ClientConfig{
		BaseURL:  cfg.BaseURL,
		Token:    privateToken(cfg),
		PageSize: cfg.PageSize,
		State:    cfg.State,
	}, newHTTPClient(cfg))

	// Wrap with per-call debug logging, visible with --verbose
	client := api.NewLoggingClient(gitlabClient, logger)

	churn := service.NewChurnService(client, logger)

	logger.Info("collecting merge request churn", "project", cfg.Project, "state", cfg.State)

	reports, stats := churn.CollectProject(ctx, cfg.Project)

	if !stats.ListingComplete {
		logger.Warn("listing ended early, the report covers fetched pages only",
			"pages", stats.PagesFetched)
	}
	if stats.ChangesFailed > 0 {
		logger.Warn("some merge requests report zero churn because their changes could not be fetched",
			"failed", stats.ChangesFailed)
	}

	if err := writeReport(cfg, logger, reports); err != nil {
		return err
	}

	var totalAdded, totalRemoved int
	for _, r := range reports {
		totalAdded += r.TotalAdded
		totalRemoved += r.TotalRemoved
	}

	logger.Info("done",
		"merge_requests", stats.MergeRequests,
		"pages", stats.PagesFetched,
		"lines_added", humanize.Comma(int64(totalAdded)),
		"lines_removed", humanize.Comma(int64(totalRemoved)),
		"elapsed", stats.Elapsed.Round(time.Millisecond),
	)

	return nil
}

// newLogger builds the process logger. It also satisfies the
// Printf-style Logger interfaces of the internal packages.
func newLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "code-churn",
	})

	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	return logger
}

// newHTTPClient builds the HTTP client for API calls. In OAuth mode the
// oauth2 transport injects the bearer token into every request.
func newHTTPClient(cfg *config.Config) *http.Client {
	base := &http.Client{
		Timeout: cfg.HTTPTimeout(), // Set reasonable timeout for API requests
	}

	if !cfg.UsesOAuth() {
		return base
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}))
	client.Timeout = cfg.HTTPTimeout()

	return client
}

// privateToken returns the token for the PRIVATE-TOKEN header, empty in
// OAuth mode where the transport already carries the credential.
func privateToken(cfg *config.Config) string {
	if cfg.UsesOAuth() {
		return ""
	}

	return cfg.Token
}

func writeReport(cfg *config.Config, logger *log.Logger, reports []domain.MergeRequestReport) error {
	if cfg.Format == config.FormatTable {
		return report.NewTableRenderer().Render(os.Stdout, reports)
	}

	writer := report.NewFileWriter(cfg.Output, report.NewCSVRenderer(), logger)

	return writer.Write(reports)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/glabrego/stackq-cli/internal/app"
	"github.com/glabrego/stackq-cli/internal/config"
	"github.com/glabrego/stackq-cli/internal/debug"
	"github.com/glabrego/stackq-cli/internal/stackexchange"
	"github.com/glabrego/stackq-cli/internal/tui"
)

// errUsage and errNoResults mean the diagnostic was already printed.
var (
	errUsage     = errors.New("usage")
	errNoResults = errors.New("no results")
)

type rootFlags struct {
	site     string
	pageSize int
	debugLog string
	plain    bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags rootFlags
	cmd := &cobra.Command{
		Use:   "stackq [flags] <query...>",
		Short: "Search Stack Exchange and read answers in the terminal",
		Long: `stackq searches a Stack Exchange site for answered questions matching the
query and opens an interactive list. Select a question to read its answers.

Configuration comes from STACKQ_* environment variables or a .env file.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				cmd.SetOut(cmd.ErrOrStderr())
				_ = cmd.Usage()
				return errUsage
			}
			return run(cmd, query, flags, stdout)
		},
	}
	cmd.SetErr(stderr)

	cmd.Flags().StringVar(&flags.site, "site", "", "Stack Exchange site to search (overrides STACKQ_SITE)")
	cmd.Flags().IntVar(&flags.pageSize, "page-size", 0, "number of questions to fetch (overrides STACKQ_PAGE_SIZE)")
	cmd.Flags().StringVar(&flags.debugLog, "debug-log", "", "append diagnostics to this file (overrides STACKQ_DEBUG_LOG)")
	cmd.Flags().BoolVar(&flags.plain, "plain", false, "print the results and exit instead of starting the interactive list")
	return cmd
}

func loadConfig(cmd *cobra.Command, flags rootFlags) (config.Config, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return config.Config{}, fmt.Errorf("config error: %w", err)
	}
	if cmd.Flags().Changed("site") {
		cfg.Site = flags.site
	}
	if cmd.Flags().Changed("page-size") {
		cfg.PageSize = flags.pageSize
	}
	if cmd.Flags().Changed("debug-log") {
		cfg.DebugLog = flags.debugLog
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config error: %w", err)
	}
	return cfg, nil
}

func run(cmd *cobra.Command, query string, flags rootFlags, stdout io.Writer) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	if err := debug.Init(cfg.DebugLog); err != nil {
		return err
	}
	defer debug.Close()
	debug.LogKV("startup", "config", "site", cfg.Site, "page_size", cfg.PageSize, "timeout", cfg.HTTPTimeout)

	client := stackexchange.NewClient(cfg.APIBaseURL, stackexchange.Options{
		Site:     cfg.Site,
		PageSize: cfg.PageSize,
		APIKey:   cfg.APIKey,
	}, &http.Client{Timeout: cfg.HTTPTimeout})
	service := app.NewService(client)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	searchCtx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout)
	questions, err := service.Search(searchCtx, query)
	cancel()
	if errors.Is(err, app.ErrNoResults) {
		debug.Logf("startup", "no results for query=%q", query)
		color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "No results found for query: %s\n", query)
		return errNoResults
	}
	if err != nil {
		debug.Logf("startup", "search failed: %v", err)
		return err
	}
	debug.LogKV("startup", "search done", "query", query, "questions", len(questions))

	if flags.plain || !isTerminal(stdout) {
		return writePlain(stdout, query, questions)
	}

	model := tui.NewModel(service, questions, tui.Options{
		Query:        query,
		FetchTimeout: cfg.HTTPTimeout,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(stdout))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

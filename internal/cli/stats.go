package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/yaklabco/govimwiki/internal/logging"
	"github.com/yaklabco/govimwiki/internal/ui/pretty"
	"github.com/yaklabco/govimwiki/pkg/analysis"
	"github.com/yaklabco/govimwiki/pkg/config"
	"github.com/yaklabco/govimwiki/pkg/runner"
)

type statsFlags struct {
	json            bool
	outline         bool
	byKind          bool
	detectLanguages bool
	summary         bool
	sortBy          string
	desc            bool
	ignore          []string
	followSymlinks  bool
}

func newStatsCommand() *cobra.Command {
	var cfg config.Config
	flags := &statsFlags{}

	cmd := &cobra.Command{
		Use:   "stats [paths...]",
		Short: "Summarize pages across a wiki",
		Long: `Parse every wiki page under the given paths and print per-page statistics:
element counts, todo progress, links and outlines.

By default, reads all configured extensions in the current directory and
subdirectories.

Examples:
  govimwiki stats                      # Current directory
  govimwiki stats ~/vimwiki --sort progress
  govimwiki stats --json > report.json
  govimwiki stats --outline --by-kind`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.json, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&flags.outline, "outline", false, "print each page's header outline")
	cmd.Flags().BoolVar(&flags.byKind, "by-kind", false, "print element counts per kind")
	cmd.Flags().BoolVar(&flags.detectLanguages, "detect-languages", false,
		"guess the language of untagged code blocks")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print run statistics")
	cmd.Flags().StringVar(&flags.sortBy, "sort", string(analysis.SortByPath), "sort pages by: path, elements, progress, open")
	cmd.Flags().BoolVar(&flags.desc, "desc", false, "sort in descending order")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "traverse symlinked directories")

	return cmd
}

func runStats(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *statsFlags) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	sortBy, err := analysis.ParseSortField(flags.sortBy)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	cliCfg.Ignore = flags.ignore
	cliCfg.JSON = flags.json
	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	loader, err := newLoader(ctx, cfg, registry)
	if err != nil {
		return err
	}
	defer closeLoader(logger, loader)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	runOpts := runner.OptionsFromConfig(cfg, args...)
	runOpts.WorkingDir = workDir
	runOpts.FollowSymlinks = flags.followSymlinks

	logger.Debug("starting stats run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	started := time.Now()
	result, err := runner.New(loader).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("stats run failed: %w", err)
	}
	elapsed := time.Since(started)
	logMetrics(logger, registry)

	report := analysis.Analyze(result, analysis.Options{
		IncludeOutline:  flags.outline || cfg.JSON,
		IncludeByKind:   flags.byKind || cfg.JSON,
		DetectLanguages: flags.detectLanguages,
		SortBy:          sortBy,
		SortDesc:        flags.desc,
		WorkingDir:      workDir,
	})

	out := cmd.OutOrStdout()
	if cfg.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
	} else {
		printStats(cmd, report, result.Stats, elapsed, flags)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrLoadFailures
	}
	return nil
}

func printStats(cmd *cobra.Command, report *analysis.Report, stats runner.Stats, elapsed time.Duration, flags *statsFlags) {
	out := cmd.OutOrStdout()
	styles := stylesFor(cmd)
	table := pretty.NewTableFormatter(styles, pretty.TermWidth(out))

	if stats.FilesDiscovered == 0 {
		fmt.Fprint(out, styles.FormatSummaryOneLine(stats))
		return
	}

	fmt.Fprint(out, table.FormatReport(report))
	if flags.outline {
		for _, pa := range report.Pages {
			fmt.Fprint(out, "\n"+styles.FormatOutline(pa))
		}
	}
	if flags.byKind {
		fmt.Fprint(out, "\n"+table.FormatByKind(report.ByKind))
	}
	if flags.summary {
		fmt.Fprint(out, styles.FormatSummary(stats, elapsed))
	}
}

// logMetrics logs the loader counters at debug level.
func logMetrics(logger *log.Logger, gatherer prometheus.Gatherer) {
	families, err := gatherer.Gather()
	if err != nil {
		logger.Debug("gather metrics", logging.FieldError, err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				logger.Debug("metric", "name", mf.GetName(), "value", c.GetValue())
			}
		}
	}
}

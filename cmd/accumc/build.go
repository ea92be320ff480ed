package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"accumc/internal/driver"
	"accumc/internal/observ"
	"accumc/internal/ui"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [dir]",
	Short: "Compile every source file of a directory",
	Long: `Build compiles every source file under dir (default: the project root
or the working directory) in parallel, writing each output next to its source.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().Int("jobs", 0, "max parallel workers (0 = from config)")
	buildCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	buildCmd.Flags().Bool("cache", false, "reuse compiled output from the disk cache")
	buildCmd.Flags().String("dialect", "", "target dialect (lcc|verbose)")
	buildCmd.Flags().Bool("no-banner", false, "omit the listing header")
}

func runBuild(cmd *cobra.Command, args []string) error {
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	dialect, err := cmd.Flags().GetString("dialect")
	if err != nil {
		return fmt.Errorf("failed to get dialect flag: %w", err)
	}
	noBanner, err := cmd.Flags().GetBool("no-banner")
	if err != nil {
		return fmt.Errorf("failed to get no-banner flag: %w", err)
	}

	opts, cfg, err := compileOptions(cmd, dialect, noBanner)
	if err != nil {
		return err
	}
	if jobs > 0 {
		opts.Jobs = jobs
	}
	if useCache || cfg.Build.Cache {
		cache, err := driver.OpenDiskCache("accumc")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Cache = cache
	}

	dir, err := buildDir(args)
	if err != nil {
		return err
	}
	files, err := driver.ListSources(dir, opts.SourceExt)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s (*%s)", driver.ErrNoSources, dir, opts.SourceExt)
	}

	start := time.Now()
	var results []*driver.FileResult
	if shouldUseTUI(mode) {
		results, err = runBuildWithUI(cmd.Context(), "accumc build", files, dir, opts)
	} else {
		results, err = driver.BuildDir(cmd.Context(), dir, opts)
	}

	for _, fr := range results {
		printDiagnostics(cmd, fr)
	}
	if timingsEnabled(cmd) {
		total := observ.NewTimer()
		for _, fr := range results {
			if fr != nil {
				total.Merge(fr.Timer)
			}
		}
		printTimings(cmd.ErrOrStderr(), total)
	}
	printBuildSummary(cmd.OutOrStdout(), results, time.Since(start))

	if err != nil {
		dumpTraceOnFailure(cmd)
		return err
	}
	if driver.BuildFailed(results) {
		dumpTraceOnFailure(cmd)
		return errDiagnostics
	}
	return nil
}

// buildDir returns the explicit argument, else the project root, else ".".
func buildDir(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return projectRootOr(wd), nil
}

func printBuildSummary(out io.Writer, results []*driver.FileResult, elapsed time.Duration) {
	var ok, cached, failed int
	for _, fr := range results {
		switch {
		case fr == nil || fr.Failed():
			failed++
		case fr.Cached:
			cached++
			ok++
		default:
			ok++
		}
	}
	fmt.Fprintf(out, "built %d file(s), %d cached, %d failed in %s\n", ok, cached, failed, elapsed.Round(time.Millisecond))
}

type buildOutcome struct {
	results []*driver.FileResult
	err     error
}

func runBuildWithUI(ctx context.Context, title string, files []string, dir string, opts driver.Options) ([]*driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan buildOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.BuildDir(ctx, dir, opts)
		outcomeCh <- buildOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// UI мог выйти раньше (Ctrl+C): не даём воркерам зависнуть на канале
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
